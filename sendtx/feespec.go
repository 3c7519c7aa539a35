package sendtx

import (
	"math"

	"github.com/zentcash/zentwallet/chainparams"
	"github.com/zentcash/zentwallet/txbuild"
)

// FeeKind discriminates the three FeeSpec variants of spec.md §3.
type FeeKind int

const (
	// FeeMinimum selects the network's minimum fee-per-byte rate.
	FeeMinimum FeeKind = iota

	// FeePerByte selects an explicit fee-per-byte rate.
	FeePerByte

	// FeeFixed selects an exact fee amount, accepted only if it clears
	// the network minimum for the transaction's actual built size.
	FeeFixed
)

// FeeSpec is the tagged fee-selection variant a send chooses; exactly
// one of Rate or Fixed is meaningful, selected by Kind.
type FeeSpec struct {
	Kind  FeeKind
	Rate  float64
	Fixed txbuild.Amount
}

// Minimum builds a FeeSpec that uses the network's minimum fee rate.
func Minimum() FeeSpec { return FeeSpec{Kind: FeeMinimum} }

// PerByte builds a FeeSpec that uses an explicit fee-per-byte rate.
func PerByte(rate float64) FeeSpec { return FeeSpec{Kind: FeePerByte, Rate: rate} }

// Fixed builds a FeeSpec that requires an exact fee amount.
func Fixed(amount txbuild.Amount) FeeSpec { return FeeSpec{Kind: FeeFixed, Fixed: amount} }

// rate returns the fee-per-byte rate this spec implies; meaningless for
// FeeFixed, which never estimates a size-dependent fee ahead of build.
func (f FeeSpec) rate() float64 {
	if f.Kind == FeePerByte {
		return f.Rate
	}
	return chainparams.MinimumFeePerByteV1
}

// roundFeeUpToChunk rounds raw up to the next multiple of
// chainparams.FeePerByteChunkSize, the rounding granularity the network
// uses so a fee estimate stays stable across small size fluctuations.
func roundFeeUpToChunk(raw uint64) uint64 {
	chunk := chainparams.FeePerByteChunkSize
	return ((raw + chunk - 1) / chunk) * chunk
}

// feeForSize computes the fee-per-byte fee for a transaction of the
// given size at rate, rounded up to the chunk granularity.
func feeForSize(size int, rate float64) txbuild.Amount {
	raw := uint64(math.Ceil(rate * float64(size)))
	return roundFeeUpToChunk(raw)
}

// estimateTransactionSize is the closed-form size estimate component G
// uses to guess a fee before ring assembly and signing actually happen.
// Every term mirrors the wire codec in txbuild/serialize.go: a key
// input is a tag byte, an amount varint, an output-count varint,
// mixin+1 relative-index varints, and a 32-byte key image; a key output
// is an amount varint, a tag byte, and a 32-byte one-time public key;
// each ring signature contributes (mixin+1) (c, r) scalar pairs.
func estimateTransactionSize(mixin uint64, numInputs, numDestinations int, hasPaymentID bool, extraDataSize int) int {
	const (
		versionAndUnlockTime = 2
		countVarint          = 1
		avgIndexVarint       = 2
		keyImageSize         = 32
		amountVarint         = 4
		outputTag            = 1
		outputKeySize        = 32
		sigScalarPairSize    = 64
		txPubKeySize         = 32
	)

	ringSize := int(mixin + 1)

	inputSize := 1 + amountVarint + countVarint + ringSize*avgIndexVarint + keyImageSize
	signatureSize := ringSize * sigScalarPairSize
	outputSize := amountVarint + outputTag + outputKeySize

	size := versionAndUnlockTime + countVarint
	size += numInputs * (inputSize + signatureSize)
	size += countVarint
	size += numDestinations * outputSize

	extraSize := 1 + txPubKeySize // pubkey tag + transaction public key
	if hasPaymentID || extraDataSize > 0 {
		extraSize += 2 // extra-nonce tag + length varint
		if hasPaymentID {
			extraSize += 1 + 32 // payment-id tag + hash
		}
		if extraDataSize > 0 {
			extraSize += 1 + 1 + extraDataSize // arbitrary-data tag + length varint + bytes
		}
	}
	size += 1 // extra length varint
	size += extraSize

	return size
}
