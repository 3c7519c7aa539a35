package main

import (
	"fmt"
	"strings"

	"github.com/zentcash/zentwallet/keys"
)

// hexPairCodec is a stand-in keys.AddressCodec: it treats an "address"
// as a literal "spendHex:viewHex" pair instead of decoding base58. The
// real address format (and the wallet file it's tied to) is explicitly
// out of scope for this core; this exists only so the CLI has something
// concrete to wire sendtx.Sender's Codec field to.
type hexPairCodec struct{}

func (hexPairCodec) AddressToKeys(address string) (keys.PublicKey, keys.PublicKey, error) {
	parts := strings.SplitN(address, ":", 2)
	if len(parts) != 2 {
		return keys.PublicKey{}, keys.PublicKey{}, fmt.Errorf("address %q is not a spendHex:viewHex pair", address)
	}

	spend, err := keys.PublicKeyFromHex(parts[0])
	if err != nil {
		return keys.PublicKey{}, keys.PublicKey{}, fmt.Errorf("decode spend key: %w", err)
	}

	view, err := keys.PublicKeyFromHex(parts[1])
	if err != nil {
		return keys.PublicKey{}, keys.PublicKey{}, fmt.Errorf("decode view key: %w", err)
	}

	return spend, view, nil
}

func (hexPairCodec) ExtractIntegratedAddressData(address string) (string, string, error) {
	return address, "", nil
}

func (c hexPairCodec) AddressesToSpendKeys(addresses []string) ([]keys.PublicKey, error) {
	out := make([]keys.PublicKey, 0, len(addresses))
	for _, a := range addresses {
		spend, _, err := c.AddressToKeys(a)
		if err != nil {
			return nil, err
		}
		out = append(out, spend)
	}
	return out, nil
}

var _ keys.AddressCodec = hexPairCodec{}
