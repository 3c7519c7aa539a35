// Package primitives implements the curve and hash operations the build
// core needs: key generation, key derivation, key images, and ring
// signature generation/verification. In the reference C++ system these
// live in a sibling Crypto:: library within the same repository, so they
// are modeled here as an internal dependency rather than an external
// collaborator.
package primitives

import (
	"crypto/rand"
	"encoding/binary"

	"filippo.io/edwards25519"

	"github.com/zentcash/zentwallet/keys"
)

// KeyOps is the curve/hash primitive surface the build core depends on.
type KeyOps interface {
	// GenerateKeyPair produces a fresh random key pair.
	GenerateKeyPair() (keys.PublicKey, keys.SecretKey, error)

	// GenerateKeyDerivation computes the shared secret for a
	// transaction public key and a private view/spend key.
	GenerateKeyDerivation(txPublicKey keys.PublicKey, privateKey keys.SecretKey) (keys.KeyDerivation, error)

	// DerivePublicKey computes the one-time public key for output
	// index from a derivation and the recipient's public spend key.
	DerivePublicKey(derivation keys.KeyDerivation, index uint64, base keys.PublicKey) (keys.PublicKey, error)

	// DeriveSecretKey computes the one-time private ephemeral for
	// output index from a derivation and the owner's private spend
	// key.
	DeriveSecretKey(derivation keys.KeyDerivation, index uint64, base keys.SecretKey) (keys.SecretKey, error)

	// GenerateKeyImage computes the key image for a one-time public
	// key and its matching private ephemeral.
	GenerateKeyImage(publicEphemeral keys.PublicKey, privateEphemeral keys.SecretKey) (keys.KeyImage, error)

	// UnderivePublicKey recovers the candidate base public key for a
	// one-time public key given the derivation and output index — the
	// inverse of DerivePublicKey. The build core's relay step uses this
	// to test whether an output it observes belongs to one of the
	// wallet's own public spend keys.
	UnderivePublicKey(derivation keys.KeyDerivation, index uint64, oneTimePublicKey keys.PublicKey) (keys.PublicKey, error)

	// GenerateRingSignature produces a ring signature proving
	// knowledge of the secret at realIndex among ring, binding the
	// key image and prefixHash.
	GenerateRingSignature(prefixHash [32]byte, image keys.KeyImage, ring []keys.PublicKey, realIndex int, secret keys.SecretKey) (RingSignature, error)

	// CheckRingSignature verifies a ring signature produced by
	// GenerateRingSignature.
	CheckRingSignature(prefixHash [32]byte, image keys.KeyImage, ring []keys.PublicKey, sig RingSignature) bool
}

// Ed25519Ops is the default KeyOps implementation, built on
// filippo.io/edwards25519 for group arithmetic.
type Ed25519Ops struct{}

var _ KeyOps = Ed25519Ops{}

// GenerateKeyPair implements KeyOps.
func (Ed25519Ops) GenerateKeyPair() (keys.PublicKey, keys.SecretKey, error) {
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return keys.PublicKey{}, keys.SecretKey{}, err
	}

	scalar, err := hashToScalar(seed[:])
	if err != nil {
		return keys.PublicKey{}, keys.SecretKey{}, err
	}

	point := edwards25519.NewIdentityPoint().ScalarBaseMult(scalar)

	return publicKeyFromPoint(point), secretKeyFromScalar(scalar), nil
}

// GenerateKeyDerivation implements KeyOps. It computes 8*a*R, where the
// cofactor multiplication clears any small-order component contributed
// by a maliciously chosen transaction public key.
func (Ed25519Ops) GenerateKeyDerivation(txPublicKey keys.PublicKey, privateKey keys.SecretKey) (keys.KeyDerivation, error) {
	point, err := pointFromPublicKey(txPublicKey)
	if err != nil {
		return keys.KeyDerivation{}, err
	}

	scalar, err := scalarFromSecretKey(privateKey)
	if err != nil {
		return keys.KeyDerivation{}, err
	}

	shared := edwards25519.NewIdentityPoint().ScalarMult(scalar, point)
	shared = shared.MultByCofactor(shared)

	var out keys.KeyDerivation
	copy(out[:], shared.Bytes())
	return out, nil
}

func scalarFromDerivation(derivation keys.KeyDerivation, index uint64) (*edwards25519.Scalar, error) {
	var idxBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(idxBuf[:], index)
	return hashToScalar(derivation[:], idxBuf[:n])
}

// DerivePublicKey implements KeyOps.
func (Ed25519Ops) DerivePublicKey(derivation keys.KeyDerivation, index uint64, base keys.PublicKey) (keys.PublicKey, error) {
	scalar, err := scalarFromDerivation(derivation, index)
	if err != nil {
		return keys.PublicKey{}, err
	}

	basePoint, err := pointFromPublicKey(base)
	if err != nil {
		return keys.PublicKey{}, err
	}

	offset := edwards25519.NewIdentityPoint().ScalarBaseMult(scalar)
	result := edwards25519.NewIdentityPoint().Add(offset, basePoint)

	return publicKeyFromPoint(result), nil
}

// DeriveSecretKey implements KeyOps.
func (Ed25519Ops) DeriveSecretKey(derivation keys.KeyDerivation, index uint64, base keys.SecretKey) (keys.SecretKey, error) {
	scalar, err := scalarFromDerivation(derivation, index)
	if err != nil {
		return keys.SecretKey{}, err
	}

	baseScalar, err := scalarFromSecretKey(base)
	if err != nil {
		return keys.SecretKey{}, err
	}

	result := edwards25519.NewScalar().Add(scalar, baseScalar)

	return secretKeyFromScalar(result), nil
}

// UnderivePublicKey implements KeyOps. It computes P - Hs(derivation,
// index)*G, recovering the base public key that DerivePublicKey would
// have started from.
func (Ed25519Ops) UnderivePublicKey(derivation keys.KeyDerivation, index uint64, oneTimePublicKey keys.PublicKey) (keys.PublicKey, error) {
	scalar, err := scalarFromDerivation(derivation, index)
	if err != nil {
		return keys.PublicKey{}, err
	}

	oneTimePoint, err := pointFromPublicKey(oneTimePublicKey)
	if err != nil {
		return keys.PublicKey{}, err
	}

	offset := edwards25519.NewIdentityPoint().ScalarBaseMult(scalar)
	result := edwards25519.NewIdentityPoint().Subtract(oneTimePoint, offset)

	return publicKeyFromPoint(result), nil
}

// GenerateKeyImage implements KeyOps.
func (Ed25519Ops) GenerateKeyImage(publicEphemeral keys.PublicKey, privateEphemeral keys.SecretKey) (keys.KeyImage, error) {
	hp, err := hashToPoint(publicEphemeral[:])
	if err != nil {
		return keys.KeyImage{}, err
	}

	scalar, err := scalarFromSecretKey(privateEphemeral)
	if err != nil {
		return keys.KeyImage{}, err
	}

	image := edwards25519.NewIdentityPoint().ScalarMult(scalar, hp)

	var out keys.KeyImage
	copy(out[:], image.Bytes())
	return out, nil
}
