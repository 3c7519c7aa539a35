package primitives

import (
	"filippo.io/edwards25519"

	"github.com/zentcash/zentwallet/keys"
)

func scalarFromSecretKey(s keys.SecretKey) (*edwards25519.Scalar, error) {
	return edwards25519.NewScalar().SetCanonicalBytes(s[:])
}

func secretKeyFromScalar(s *edwards25519.Scalar) keys.SecretKey {
	var out keys.SecretKey
	copy(out[:], s.Bytes())
	return out
}

func pointFromPublicKey(p keys.PublicKey) (*edwards25519.Point, error) {
	return edwards25519.NewIdentityPoint().SetBytes(p[:])
}

func publicKeyFromPoint(p *edwards25519.Point) keys.PublicKey {
	var out keys.PublicKey
	copy(out[:], p.Bytes())
	return out
}

// baseMult returns scalar*G, the public point matching a secret scalar.
func baseMult(scalar *edwards25519.Scalar) *edwards25519.Point {
	return edwards25519.NewIdentityPoint().ScalarBaseMult(scalar)
}
