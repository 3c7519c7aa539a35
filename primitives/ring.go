package primitives

import (
	"crypto/rand"

	"filippo.io/edwards25519"

	"github.com/zentcash/zentwallet/keys"
)

// RingSignature is one (c, r) scalar pair per ring member, in ring order.
type RingSignature []RingSignatureElement

// RingSignatureElement is a single challenge/response pair.
type RingSignatureElement struct {
	C [32]byte
	R [32]byte
}

func randomScalar() (*edwards25519.Scalar, error) {
	var b [64]byte
	if _, err := rand.Read(b[:]); err != nil {
		return nil, err
	}
	return edwards25519.NewScalar().SetUniformBytes(b[:])
}

// GenerateRingSignature implements KeyOps. It produces a classic
// CryptoNote/LSAG ring signature: a set of decoy (c, r) pairs chosen at
// random, closed over at the real index so that the sum of all
// challenges equals a hash binding every commitment and the key image.
func (Ed25519Ops) GenerateRingSignature(prefixHash [32]byte, image keys.KeyImage, ring []keys.PublicKey, realIndex int, secret keys.SecretKey) (RingSignature, error) {
	if realIndex < 0 || realIndex >= len(ring) {
		return nil, errRingIndexRange
	}

	imagePoint, err := pointFromPublicKey(keys.PublicKey(image))
	if err != nil {
		return nil, err
	}

	n := len(ring)
	points := make([]*edwards25519.Point, n)
	hp := make([]*edwards25519.Point, n)
	for i, pub := range ring {
		p, err := pointFromPublicKey(pub)
		if err != nil {
			return nil, err
		}
		points[i] = p

		h, err := hashToPoint(pub[:])
		if err != nil {
			return nil, err
		}
		hp[i] = h
	}

	sig := make(RingSignature, n)
	cSum := edwards25519.NewScalar()

	lrBuf := make([][]byte, 0, 2*n+1)
	lrBuf = append(lrBuf, prefixHash[:])

	l := make([]*edwards25519.Point, n)
	r := make([]*edwards25519.Point, n)

	k, err := randomScalar()
	if err != nil {
		return nil, err
	}
	l[realIndex] = edwards25519.NewIdentityPoint().ScalarBaseMult(k)
	r[realIndex] = edwards25519.NewIdentityPoint().ScalarMult(k, hp[realIndex])

	for i := 0; i < n; i++ {
		if i == realIndex {
			continue
		}

		ci, err := randomScalar()
		if err != nil {
			return nil, err
		}
		ri, err := randomScalar()
		if err != nil {
			return nil, err
		}

		sig[i].C = *scalarBytes(ci)
		sig[i].R = *scalarBytes(ri)

		cSum = edwards25519.NewScalar().Add(cSum, ci)

		// L_i = c_i*P_i + r_i*G
		cp := edwards25519.NewIdentityPoint().ScalarMult(ci, points[i])
		rg := edwards25519.NewIdentityPoint().ScalarBaseMult(ri)
		l[i] = edwards25519.NewIdentityPoint().Add(cp, rg)

		// R_i = c_i*I + r_i*Hp(P_i)
		ci_img := edwards25519.NewIdentityPoint().ScalarMult(ci, imagePoint)
		ri_hp := edwards25519.NewIdentityPoint().ScalarMult(ri, hp[i])
		r[i] = edwards25519.NewIdentityPoint().Add(ci_img, ri_hp)
	}

	for i := 0; i < n; i++ {
		lrBuf = append(lrBuf, l[i].Bytes(), r[i].Bytes())
	}

	h, err := hashToScalar(lrBuf...)
	if err != nil {
		return nil, err
	}

	cs := edwards25519.NewScalar().Subtract(h, cSum)

	x, err := scalarFromSecretKey(secret)
	if err != nil {
		return nil, err
	}

	csx := edwards25519.NewScalar().Multiply(cs, x)
	rs := edwards25519.NewScalar().Subtract(k, csx)

	sig[realIndex].C = *scalarBytes(cs)
	sig[realIndex].R = *scalarBytes(rs)

	return sig, nil
}

// CheckRingSignature implements KeyOps. It recomputes every ring
// member's commitment from the published (c, r) pair and accepts the
// signature iff the challenge hash closes over the sum of all c values.
func (Ed25519Ops) CheckRingSignature(prefixHash [32]byte, image keys.KeyImage, ring []keys.PublicKey, sig RingSignature) bool {
	if len(sig) != len(ring) {
		return false
	}

	imagePoint, err := pointFromPublicKey(keys.PublicKey(image))
	if err != nil {
		return false
	}

	n := len(ring)
	cSum := edwards25519.NewScalar()
	lrBuf := make([][]byte, 0, 2*n+1)
	lrBuf = append(lrBuf, prefixHash[:])

	l := make([]*edwards25519.Point, n)
	r := make([]*edwards25519.Point, n)

	for i := 0; i < n; i++ {
		point, err := pointFromPublicKey(ring[i])
		if err != nil {
			return false
		}
		hp, err := hashToPoint(ring[i][:])
		if err != nil {
			return false
		}

		ci, err := edwards25519.NewScalar().SetCanonicalBytes(sig[i].C[:])
		if err != nil {
			return false
		}
		ri, err := edwards25519.NewScalar().SetCanonicalBytes(sig[i].R[:])
		if err != nil {
			return false
		}

		cp := edwards25519.NewIdentityPoint().ScalarMult(ci, point)
		rg := edwards25519.NewIdentityPoint().ScalarBaseMult(ri)
		l[i] = edwards25519.NewIdentityPoint().Add(cp, rg)

		ciImg := edwards25519.NewIdentityPoint().ScalarMult(ci, imagePoint)
		riHp := edwards25519.NewIdentityPoint().ScalarMult(ri, hp)
		r[i] = edwards25519.NewIdentityPoint().Add(ciImg, riHp)

		cSum = edwards25519.NewScalar().Add(cSum, ci)
	}

	for i := 0; i < n; i++ {
		lrBuf = append(lrBuf, l[i].Bytes(), r[i].Bytes())
	}

	h, err := hashToScalar(lrBuf...)
	if err != nil {
		return false
	}

	return h.Equal(cSum) == 1
}

func scalarBytes(s *edwards25519.Scalar) *[32]byte {
	var out [32]byte
	copy(out[:], s.Bytes())
	return &out
}

type ringIndexRangeError struct{}

func (ringIndexRangeError) Error() string {
	return "primitives: real index out of range for ring"
}

var errRingIndexRange = ringIndexRangeError{}
