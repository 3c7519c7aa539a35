package sendtx

import (
	"github.com/zentcash/zentwallet/daemon"
	"github.com/zentcash/zentwallet/keys"
	"github.com/zentcash/zentwallet/primitives"
	"github.com/zentcash/zentwallet/txbuild"
)

// maxFeeLoopIterations bounds the adjust-to-actual sub-loop (spec.md
// §9): an explicit guard against pathological non-convergence rather
// than an unbounded retry.
const maxFeeLoopIterations = 8

// buildResult is what the fee/size loop hands back once it has accepted
// a built, signed transaction.
type buildResult struct {
	result         txbuild.TransactionResult
	changeRequired txbuild.Amount
	fee            txbuild.Amount
}

// attemptFeePerByte runs the adjust-to-actual sub-loop of component G:
// build, measure the actual signed size, compare its fee against the
// estimate, and either accept, raise the fee and retry, or signal that
// more inputs are required. ok is false with needed set when the outer
// loop should select another input and call this again; err is set only
// for terminal build failures.
func attemptFeePerByte(
	ops primitives.KeyOps,
	client daemon.Client,
	codec keys.AddressCodec,
	inputs []txbuild.SpendableInput,
	sumOfInputs txbuild.Amount,
	amountPreFee txbuild.Amount,
	estimatedFee txbuild.Amount,
	rate float64,
	destinations []AddressAmount,
	changeAddress string,
	mixin uint64,
	privateViewKey keys.SecretKey,
	unlockTime uint64,
	extra txbuild.ExtraOptions,
	sendAll bool,
) (built buildResult, ok bool, needed txbuild.Amount, err error) {
	amountIncludingFee := amountPreFee + estimatedFee

	for i := 0; i < maxFeeLoopIterations; i++ {
		changeRequired := sumOfInputs - amountIncludingFee

		dests, derr := setupDestinations(codec, destinations, changeRequired, changeAddress)
		if derr != nil {
			return buildResult{}, false, 0, derr
		}

		result, _, berr := txbuild.Build(ops, client, txbuild.BuildParams{
			Inputs:         inputs,
			Destinations:   dests,
			Mixin:          mixin,
			UnlockTime:     unlockTime,
			PrivateViewKey: privateViewKey,
			Extra:          extra,
		})
		if berr != nil {
			return buildResult{}, false, 0, berr
		}

		actualSize := len(result.Transaction.Bytes())
		actualFee := feeForSize(actualSize, rate)

		paidFee := amountIncludingFee - amountPreFee

		if paidFee >= actualFee {
			return buildResult{result: result, changeRequired: changeRequired, fee: paidFee}, true, 0, nil
		}

		if sendAll {
			amountPreFee = amountIncludingFee - actualFee
			destinations = withFirstAmount(destinations, amountPreFee)
		}

		if amountPreFee+actualFee > sumOfInputs {
			return buildResult{}, false, amountPreFee + actualFee, nil
		}

		estimatedFee = actualFee
		amountIncludingFee = amountPreFee + estimatedFee
	}

	return buildResult{}, false, amountPreFee + estimatedFee, nil
}
