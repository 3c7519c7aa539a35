package chainparams

import "strconv"

// DecimalPlaces is the number of atomic-unit decimal places the
// reference chain displays amounts with.
const DecimalPlaces = 2

// FormatAmount renders an atomic-unit amount using the chain's display
// decimal point, e.g. 123456 -> "1234.56".
//
// encoding/binary's Uvarint covers the wire format; nothing in the
// dependency graph does currency-specific decimal formatting, so this
// is hand rolled rather than borrowed.
func FormatAmount(amount uint64) string {
	divisor := uint64(1)
	for i := 0; i < DecimalPlaces; i++ {
		divisor *= 10
	}

	whole := amount / divisor
	frac := amount % divisor

	fracStr := strconv.FormatUint(frac, 10)
	for len(fracStr) < DecimalPlaces {
		fracStr = "0" + fracStr
	}

	return strconv.FormatUint(whole, 10) + "." + fracStr
}
