package primitives

import (
	"encoding/binary"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/sha3"
)

// Keccak256 hashes the concatenation of chunks with Keccak-256. The
// reference chain uses the original Keccak padding (as does Ethereum),
// not the NIST SHA3 finalization, so this uses the legacy constructor
// golang.org/x/crypto/sha3 keeps around for exactly that compatibility
// reason.
func Keccak256(chunks ...[]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	for _, c := range chunks {
		h.Write(c)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// hashToScalar reduces the Keccak-256 digest of chunks into a canonical
// Edwards25519 scalar. SetUniformBytes expects 64 bytes of input for its
// wide reduction; zero-extending a 32-byte hash before reducing is the
// standard way to turn a narrow digest into a uniformly reduced scalar.
func hashToScalar(chunks ...[]byte) (*edwards25519.Scalar, error) {
	digest := Keccak256(chunks...)

	var wide [64]byte
	copy(wide[:32], digest[:])

	return edwards25519.NewScalar().SetUniformBytes(wide[:])
}

// hashToPoint deterministically maps data onto the curve by probing
// successive Keccak-256 digests (with an incrementing counter appended)
// until one decodes as a valid compressed point. This is not the
// reference chain's exact elligator-based map, but it is deterministic
// and every call site (ring signature generation and verification) uses
// it identically, which is all correctness here depends on.
func hashToPoint(data []byte) (*edwards25519.Point, error) {
	var counter [8]byte
	for i := uint64(0); i < 1<<16; i++ {
		binary.LittleEndian.PutUint64(counter[:], i)
		digest := Keccak256(data, counter[:])
		if p, err := edwards25519.NewIdentityPoint().SetBytes(digest[:]); err == nil {
			return p.MultByCofactor(p), nil
		}
	}
	return nil, errHashToPointExhausted
}

type hashToPointExhaustedError struct{}

func (hashToPointExhaustedError) Error() string {
	return "primitives: exhausted candidates mapping bytes to a curve point"
}

var errHashToPointExhausted = hashToPointExhaustedError{}
