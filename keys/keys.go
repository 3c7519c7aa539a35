// Package keys defines the fixed-size key material types shared across
// the wallet core, and the address codec contract this core relies on
// but does not implement.
package keys

import "encoding/hex"

const keySize = 32

// PublicKey is an Edwards25519 public point, serialized in its
// canonical compressed form.
type PublicKey [keySize]byte

// SecretKey is an Edwards25519 scalar.
type SecretKey [keySize]byte

// KeyImage is the one-way-derived identifier that prevents an output
// from being spent twice.
type KeyImage [keySize]byte

// KeyDerivation is the shared secret produced by combining a
// transaction public key with a recipient's private view key (or vice
// versa); see primitives.KeyOps.GenerateKeyDerivation.
type KeyDerivation [keySize]byte

func (k PublicKey) String() string     { return hex.EncodeToString(k[:]) }
func (k SecretKey) String() string     { return hex.EncodeToString(k[:]) }
func (k KeyImage) String() string      { return hex.EncodeToString(k[:]) }
func (k KeyDerivation) String() string { return hex.EncodeToString(k[:]) }

// Bytes returns the key's raw bytes.
func (k PublicKey) Bytes() []byte { return k[:] }

// Bytes returns the key's raw bytes.
func (k SecretKey) Bytes() []byte { return k[:] }

// Bytes returns the key's raw bytes.
func (k KeyImage) Bytes() []byte { return k[:] }

// PublicKeyFromHex parses a hex-encoded public key.
func PublicKeyFromHex(s string) (PublicKey, error) {
	var out PublicKey
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, err
	}
	if len(b) != keySize {
		return out, errKeyLength
	}
	copy(out[:], b)
	return out, nil
}

var errKeyLength = keyLengthError{}

type keyLengthError struct{}

func (keyLengthError) Error() string { return "keys: wrong key length, expected 32 bytes" }

// AddressCodec is the external collaborator that decodes base58
// addresses into key material. This core never encodes or decodes
// base58 itself — that responsibility (and the wallet file format it
// depends on) belongs to a sibling component.
type AddressCodec interface {
	// AddressToKeys decodes a standard address into its public spend
	// and public view keys.
	AddressToKeys(address string) (spend, view PublicKey, err error)

	// ExtractIntegratedAddressData splits an integrated address into
	// its base address and the embedded payment ID.
	ExtractIntegratedAddressData(address string) (baseAddress string, paymentID string, err error)

	// AddressesToSpendKeys decodes a batch of addresses down to their
	// public spend keys only, e.g. to build a take-from filter set.
	AddressesToSpendKeys(addresses []string) ([]PublicKey, error)
}
