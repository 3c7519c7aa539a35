package txbuild

import (
	"sort"

	"github.com/zentcash/zentwallet/keys"
	"github.com/zentcash/zentwallet/primitives"
)

// BuiltOutputs is the result of component D: the generated transaction
// key pair and the derived one-time outputs, in final (sorted) order.
type BuiltOutputs struct {
	TxPublicKey keys.PublicKey
	TxSecretKey keys.SecretKey
	Outputs     []KeyOutput
}

// BuildOutputs sorts destinations ascending by amount to obscure
// recipient grouping, generates a fresh transaction key pair, and
// derives each destination's one-time public key. The sort index is
// assigned after sorting and is significant: it is the output index fed
// into key derivation.
func BuildOutputs(ops primitives.KeyOps, destinations []Destination) (BuiltOutputs, error) {
	sorted := make([]Destination, len(destinations))
	copy(sorted, destinations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount < sorted[j].Amount
	})

	txPublic, txSecret, err := ops.GenerateKeyPair()
	if err != nil {
		return BuiltOutputs{}, err
	}

	outputs := make([]KeyOutput, len(sorted))
	for i, dest := range sorted {
		derivation, err := ops.GenerateKeyDerivation(dest.ReceiverPublicViewKey, txSecret)
		if err != nil {
			return BuiltOutputs{}, err
		}

		oneTimePub, err := ops.DerivePublicKey(derivation, uint64(i), dest.ReceiverPublicSpendKey)
		if err != nil {
			return BuiltOutputs{}, err
		}

		outputs[i] = KeyOutput{OneTimePublicKey: oneTimePub, Amount: dest.Amount}
	}

	return BuiltOutputs{TxPublicKey: txPublic, TxSecretKey: txSecret, Outputs: outputs}, nil
}
