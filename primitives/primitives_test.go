package primitives

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zentcash/zentwallet/keys"
)

func TestGenerateKeyPairRoundTrip(t *testing.T) {
	ops := Ed25519Ops{}

	pub, sec, err := ops.GenerateKeyPair()
	require.NoError(t, err)

	scalar, err := scalarFromSecretKey(sec)
	require.NoError(t, err)

	derivedPub := publicKeyFromPoint(baseMult(scalar))
	require.Equal(t, pub, derivedPub)
}

func TestDeriveKeyPairMatches(t *testing.T) {
	ops := Ed25519Ops{}

	txPub, txSec, err := ops.GenerateKeyPair()
	require.NoError(t, err)

	viewPub, viewSec, err := ops.GenerateKeyPair()
	require.NoError(t, err)

	spendPub, spendSec, err := ops.GenerateKeyPair()
	require.NoError(t, err)

	derivationSender, err := ops.GenerateKeyDerivation(viewPub, txSec)
	require.NoError(t, err)

	derivationReceiver, err := ops.GenerateKeyDerivation(txPub, viewSec)
	require.NoError(t, err)

	require.Equal(t, derivationSender, derivationReceiver)

	const outIndex = 3

	oneTimePub, err := ops.DerivePublicKey(derivationReceiver, outIndex, spendPub)
	require.NoError(t, err)

	oneTimeSec, err := ops.DeriveSecretKey(derivationReceiver, outIndex, spendSec)
	require.NoError(t, err)

	oneTimeScalar, err := scalarFromSecretKey(oneTimeSec)
	require.NoError(t, err)

	require.Equal(t, oneTimePub, publicKeyFromPoint(baseMult(oneTimeScalar)))
}

func TestUnderivePublicKeyInvertsDerivePublicKey(t *testing.T) {
	ops := Ed25519Ops{}

	txPub, txSec, err := ops.GenerateKeyPair()
	require.NoError(t, err)

	viewPub, viewSec, err := ops.GenerateKeyPair()
	require.NoError(t, err)

	spendPub, _, err := ops.GenerateKeyPair()
	require.NoError(t, err)

	derivationSender, err := ops.GenerateKeyDerivation(viewPub, txSec)
	require.NoError(t, err)

	const outIndex = 7

	oneTimePub, err := ops.DerivePublicKey(derivationSender, outIndex, spendPub)
	require.NoError(t, err)

	derivationReceiver, err := ops.GenerateKeyDerivation(txPub, viewSec)
	require.NoError(t, err)

	recovered, err := ops.UnderivePublicKey(derivationReceiver, outIndex, oneTimePub)
	require.NoError(t, err)
	require.Equal(t, spendPub, recovered)

	other, _, err := ops.GenerateKeyPair()
	require.NoError(t, err)
	mismatched, err := ops.UnderivePublicKey(derivationReceiver, outIndex, other)
	require.NoError(t, err)
	require.NotEqual(t, spendPub, mismatched)
}

func TestKeyImageDeterministic(t *testing.T) {
	ops := Ed25519Ops{}

	pub, sec, err := ops.GenerateKeyPair()
	require.NoError(t, err)

	img1, err := ops.GenerateKeyImage(pub, sec)
	require.NoError(t, err)

	img2, err := ops.GenerateKeyImage(pub, sec)
	require.NoError(t, err)

	require.Equal(t, img1, img2)
}

func TestRingSignatureGenerateAndVerify(t *testing.T) {
	ops := Ed25519Ops{}

	const ringSize = 5
	const realIndex = 2

	ring := make([]keys.PublicKey, ringSize)
	secrets := make([]keys.SecretKey, ringSize)
	for i := range ring {
		pub, sec, err := ops.GenerateKeyPair()
		require.NoError(t, err)
		ring[i] = pub
		secrets[i] = sec
	}

	image, err := ops.GenerateKeyImage(ring[realIndex], secrets[realIndex])
	require.NoError(t, err)

	prefixHash := Keccak256([]byte("test prefix"))

	sig, err := ops.GenerateRingSignature(prefixHash, image, ring, realIndex, secrets[realIndex])
	require.NoError(t, err)
	require.Len(t, sig, ringSize)

	require.True(t, ops.CheckRingSignature(prefixHash, image, ring, sig))

	badHash := Keccak256([]byte("different prefix"))
	require.False(t, ops.CheckRingSignature(badHash, image, ring, sig))
}

func TestRingSignatureRejectsWrongRingSize(t *testing.T) {
	ops := Ed25519Ops{}

	pub, sec, err := ops.GenerateKeyPair()
	require.NoError(t, err)

	image, err := ops.GenerateKeyImage(pub, sec)
	require.NoError(t, err)

	prefixHash := Keccak256([]byte("prefix"))

	require.False(t, ops.CheckRingSignature(prefixHash, image, []keys.PublicKey{pub}, RingSignature{}))
}
