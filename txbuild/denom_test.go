package txbuild

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitAmountIntoDenominations(t *testing.T) {
	cases := []struct {
		name   string
		amount Amount
		want   []Amount
	}{
		{"zero", 0, nil},
		{"single digit", 5, []Amount{5}},
		{"scenario one change", 499_990, []Amount{90, 900, 9_000, 90_000, 400_000}},
		{"fusion sum", 1_200, []Amount{200, 1_000}},
		{"exact round", 500_000, []Amount{500_000}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := SplitAmountIntoDenominations(c.amount, true)
			require.NoError(t, err)
			require.Equal(t, c.want, got)

			var sum Amount
			for _, a := range got {
				sum += a
			}
			require.Equal(t, c.amount, sum)

			require.NoError(t, VerifyAmountsArePretty(got))
		})
	}
}

func TestSplitAmountOversizedDenomination(t *testing.T) {
	// A denomination of 9 * 10^11, comfortably above MaxOutputSizeClient,
	// must be split into chunks that are each within the limit and that
	// individually remain pretty amounts.
	amount := Amount(9) * 100_000_000_000

	got, err := SplitAmountIntoDenominations(amount, true)
	require.NoError(t, err)

	var sum Amount
	for _, a := range got {
		require.LessOrEqual(t, a, Amount(400_000_000_00))
		require.True(t, isPowerOfTenTimesDigit(a))
		sum += a
	}
	require.Equal(t, amount, sum)
}

func isPowerOfTenTimesDigit(a Amount) bool {
	if a == 0 {
		return false
	}
	for a%10 == 0 {
		a /= 10
	}
	return a >= 1 && a <= 9
}
