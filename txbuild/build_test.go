package txbuild

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zentcash/zentwallet/keys"
	"github.com/zentcash/zentwallet/primitives"
)

func makeSpendableInput(t *testing.T, ops primitives.KeyOps, amount Amount, globalIndex uint64) (SpendableInput, keys.SecretKey, keys.SecretKey) {
	t.Helper()

	spendPub, spendSec, err := ops.GenerateKeyPair()
	require.NoError(t, err)

	viewPub, viewSec, err := ops.GenerateKeyPair()
	require.NoError(t, err)

	txPub, txSec, err := ops.GenerateKeyPair()
	require.NoError(t, err)

	derivation, err := ops.GenerateKeyDerivation(viewPub, txSec)
	require.NoError(t, err)

	oneTimePub, err := ops.DerivePublicKey(derivation, 0, spendPub)
	require.NoError(t, err)

	recvDerivation, err := ops.GenerateKeyDerivation(txPub, viewSec)
	require.NoError(t, err)
	oneTimeSec, err := ops.DeriveSecretKey(recvDerivation, 0, spendSec)
	require.NoError(t, err)

	image, err := ops.GenerateKeyImage(oneTimePub, oneTimeSec)
	require.NoError(t, err)

	input := SpendableInput{
		KeyImage:             image,
		Amount:               amount,
		TxPublicKey:          txPub,
		IndexWithinTx:        0,
		GlobalOutputIndex:    globalIndex,
		OneTimePublicKey:     oneTimePub,
		OwnerPublicSpendKey:  spendPub,
		OwnerPrivateSpendKey: spendSec,
		PrivateEphemeral:     &oneTimeSec,
	}

	return input, spendSec, viewSec
}

func TestBuildSingleDestinationMixin3(t *testing.T) {
	ops := primitives.Ed25519Ops{}
	d := newFakeDaemon(ops)

	input, _, viewSec := makeSpendableInput(t, ops, 1_000_000, 5)

	destSpendPub, _, err := ops.GenerateKeyPair()
	require.NoError(t, err)
	destViewPub, _, err := ops.GenerateKeyPair()
	require.NoError(t, err)

	destinations := []Destination{
		{ReceiverPublicSpendKey: destSpendPub, ReceiverPublicViewKey: destViewPub, Amount: 500_000},
	}

	changeAmounts, err := SplitAmountIntoDenominations(499_990, true)
	require.NoError(t, err)
	for _, a := range changeAmounts {
		destinations = append(destinations, Destination{
			ReceiverPublicSpendKey: input.OwnerPublicSpendKey,
			ReceiverPublicViewKey:  destViewPub,
			Amount:                 a,
		})
	}

	result, finalized, err := Build(ops, d, BuildParams{
		Inputs:         []SpendableInput{input},
		Destinations:   destinations,
		Mixin:          3,
		PrivateViewKey: viewSec,
	})
	require.NoError(t, err)

	require.Len(t, result.Transaction.Inputs, 1)
	require.Len(t, result.Transaction.Outputs, 6)
	require.Len(t, result.Transaction.Signatures[0], 4)
	require.Equal(t, 1, finalized.PreGenerated)

	var outSum Amount
	for _, o := range result.Transaction.Outputs {
		outSum += o.Amount
	}
	require.Equal(t, Amount(999_990), outSum)
}

func TestBuildFailsNotEnoughFakeOutputs(t *testing.T) {
	ops := primitives.Ed25519Ops{}
	d := newFakeDaemon(ops)
	d.insufficient[1_000_000] = true

	input, _, viewSec := makeSpendableInput(t, ops, 1_000_000, 5)

	destSpendPub, _, err := ops.GenerateKeyPair()
	require.NoError(t, err)
	destViewPub, _, err := ops.GenerateKeyPair()
	require.NoError(t, err)

	_, _, err = Build(ops, d, BuildParams{
		Inputs:         []SpendableInput{input},
		Destinations:   []Destination{{ReceiverPublicSpendKey: destSpendPub, ReceiverPublicViewKey: destViewPub, Amount: 1_000_000}},
		Mixin:          3,
		PrivateViewKey: viewSec,
	})
	require.Error(t, err)

	var buildErr *Error
	require.True(t, errors.As(err, &buildErr))
	require.Equal(t, ErrNotEnoughFakeOutputs, buildErr.Kind)
}
