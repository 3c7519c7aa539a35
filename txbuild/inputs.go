package txbuild

import (
	"sort"

	"github.com/zentcash/zentwallet/keys"
	"github.com/zentcash/zentwallet/primitives"
)

// FinalizedInputs is the result of component C: the wire-ready KeyInput
// list and the parallel private-ephemeral vector the signer needs.
type FinalizedInputs struct {
	Inputs            []KeyInput
	PrivateEphemerals []keys.SecretKey

	// PreGenerated and OnDemand count how many ephemerals were reused
	// from SpendableInput.PrivateEphemeral versus derived fresh, for
	// the observability collaborator.
	PreGenerated int
	OnDemand     int
}

// FinalizeInputs derives (or reuses) each obscured input's private
// ephemeral and relative-encodes its ring's sorted absolute indexes.
func FinalizeInputs(ops primitives.KeyOps, privateViewKey keys.SecretKey, obscured []ObscuredInput) (FinalizedInputs, error) {
	result := FinalizedInputs{
		Inputs:            make([]KeyInput, len(obscured)),
		PrivateEphemerals: make([]keys.SecretKey, len(obscured)),
	}

	for i, in := range obscured {
		ephemeral, err := resolvePrivateEphemeral(ops, privateViewKey, in)
		if err != nil {
			return FinalizedInputs{}, err
		}
		if in.PrivateEphemeral != nil {
			result.PreGenerated++
		} else {
			result.OnDemand++
		}
		result.PrivateEphemerals[i] = ephemeral

		indexes := make([]uint64, len(in.Outputs))
		for j, m := range in.Outputs {
			indexes[j] = m.GlobalIndex
		}
		sort.Slice(indexes, func(a, b int) bool { return indexes[a] < indexes[b] })

		result.Inputs[i] = KeyInput{
			Amount:                in.Amount,
			KeyImage:              in.KeyImage,
			RelativeOutputIndexes: relativeEncode(indexes),
		}
	}

	return result, nil
}

func resolvePrivateEphemeral(ops primitives.KeyOps, privateViewKey keys.SecretKey, in ObscuredInput) (keys.SecretKey, error) {
	if in.PrivateEphemeral != nil {
		return *in.PrivateEphemeral, nil
	}

	derivation, err := ops.GenerateKeyDerivation(in.RealTxPublicKey, privateViewKey)
	if err != nil {
		return keys.SecretKey{}, err
	}

	return ops.DeriveSecretKey(derivation, in.RealOutputTxIndex, in.OwnerPrivateSpendKey)
}

// relativeEncode turns a sorted absolute index sequence into the wire's
// relative (delta) form: the first element is the absolute value, each
// subsequent element is the delta to its predecessor.
func relativeEncode(sortedAbsolute []uint64) []uint64 {
	out := make([]uint64, len(sortedAbsolute))
	var prev uint64
	for i, v := range sortedAbsolute {
		if i == 0 {
			out[i] = v
		} else {
			out[i] = v - prev
		}
		prev = v
	}
	return out
}

// RelativeDecode is the left inverse of relativeEncode: it recovers the
// sorted absolute index sequence from its relative encoding.
func RelativeDecode(relative []uint64) []uint64 {
	out := make([]uint64, len(relative))
	var running uint64
	for i, v := range relative {
		running += v
		out[i] = running
	}
	return out
}
