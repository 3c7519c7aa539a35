package txbuild

import "github.com/zentcash/zentwallet/chainparams"

// SplitAmountIntoDenominations decomposes amount into canonical "pretty"
// denominations: for each nonzero decimal digit d at position k, it
// emits d*10^k. When preventTooLarge is set, any emitted denomination
// exceeding chainparams.MaxOutputSizeClient is split into 10 equal
// chunks, recursively, until every chunk is within the limit.
//
// Order is preserved for test determinism: ascending by digit position
// k, and within a split group, insertion order.
func SplitAmountIntoDenominations(amount Amount, preventTooLarge bool) ([]Amount, error) {
	var out []Amount

	multiplier := Amount(1)
	for amount > 0 {
		digit := amount % 10
		amount /= 10

		if digit == 0 {
			multiplier *= 10
			continue
		}

		denomination := digit * multiplier
		if preventTooLarge && denomination > chainparams.MaxOutputSizeClient {
			chunks, err := splitOversizedDenomination(denomination)
			if err != nil {
				return nil, err
			}
			out = append(out, chunks...)
		} else {
			out = append(out, denomination)
		}

		multiplier *= 10
	}

	return out, nil
}

// splitOversizedDenomination splits a single too-large denomination into
// 10 equal chunks, recursing into any chunk that is itself still too
// large.
func splitOversizedDenomination(denomination Amount) ([]Amount, error) {
	if denomination%10 != 0 {
		return nil, NewErrorContext(ErrOutputDecomposition,
			"denomination not evenly divisible while splitting oversized output")
	}

	chunk := denomination / 10

	var out []Amount
	for i := 0; i < 10; i++ {
		if chunk > chainparams.MaxOutputSizeClient {
			nested, err := splitOversizedDenomination(chunk)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
			continue
		}
		out = append(out, chunk)
	}

	return out, nil
}

// VerifyAmountsArePretty fails the build if any amount is not a member
// of chainparams.PrettyAmounts.
func VerifyAmountsArePretty(amounts []Amount) error {
	for _, a := range amounts {
		if !chainparams.IsPrettyAmount(a) {
			return NewErrorContext(ErrAmountsNotPretty, "amount is not a canonical denomination")
		}
	}
	return nil
}
