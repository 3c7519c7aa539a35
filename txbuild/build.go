package txbuild

import (
	"github.com/zentcash/zentwallet/chainparams"
	"github.com/zentcash/zentwallet/daemon"
	"github.com/zentcash/zentwallet/keys"
	"github.com/zentcash/zentwallet/primitives"
)

// BuildParams is everything one attempt at assembling and signing a
// transaction needs. The fee/size loop in sendtx calls Build once per
// iteration, varying Destinations (and therefore the fee baked into
// them) between attempts.
type BuildParams struct {
	Inputs         []SpendableInput
	Destinations   []Destination
	Mixin          uint64
	UnlockTime     uint64
	PrivateViewKey keys.SecretKey
	Extra          ExtraOptions
}

// Build runs components B through F in sequence: ring assembly, input
// finalization, output derivation, extra-field assembly, and signing.
// It logs the pre-generated/on-demand derivation counts and returns the
// finalized inputs alongside the result.
func Build(ops primitives.KeyOps, client daemon.Client, params BuildParams) (TransactionResult, FinalizedInputs, error) {
	rings, err := AssembleRings(client, params.Inputs, params.Mixin)
	if err != nil {
		return TransactionResult{}, FinalizedInputs{}, err
	}

	finalized, err := FinalizeInputs(ops, params.PrivateViewKey, rings)
	if err != nil {
		return TransactionResult{}, FinalizedInputs{}, err
	}
	log.Debugf("Finalized %d inputs: %d pre-generated ephemerals, %d derived on demand",
		len(finalized.Inputs), finalized.PreGenerated, finalized.OnDemand)

	built, err := BuildOutputs(ops, params.Destinations)
	if err != nil {
		return TransactionResult{}, FinalizedInputs{}, err
	}

	outputAmounts := make([]Amount, len(built.Outputs))
	for i, o := range built.Outputs {
		outputAmounts[i] = o.Amount
	}
	if err := VerifyAmountsArePretty(outputAmounts); err != nil {
		return TransactionResult{}, FinalizedInputs{}, err
	}

	extra := BuildExtra(built.TxPublicKey, params.Extra)

	tx := Transaction{
		Version:    chainparams.CurrentTransactionVersion,
		UnlockTime: params.UnlockTime,
		Inputs:     finalized.Inputs,
		Outputs:    built.Outputs,
		Extra:      extra,
	}

	if err := SignTransaction(ops, &tx, rings, finalized.PrivateEphemerals); err != nil {
		return TransactionResult{}, FinalizedInputs{}, err
	}

	result := TransactionResult{
		Transaction: tx,
		Outputs:     built.Outputs,
		TxPublicKey: built.TxPublicKey,
		TxSecretKey: built.TxSecretKey,
	}

	return result, finalized, nil
}
