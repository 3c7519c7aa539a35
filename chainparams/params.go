// Package chainparams holds the client-side consensus constants this
// wallet core needs in order to build valid transactions. Values are
// transcribed from the reference chain's parameter table; this package
// does not implement consensus rules, only the numbers the build core
// needs to stay within them.
package chainparams

// MinimumFee is the smallest fixed fee the network will relay.
const MinimumFee uint64 = 10

// FeePerByteChunkSize is the rounding granularity for a fee-per-byte
// calculation. Fees are always rounded up to a multiple of this many
// atomic units, which keeps fee estimates stable across small size
// fluctuations.
const FeePerByteChunkSize uint64 = 256

// MinimumFeePerByteV1 is the minimum allowed fee rate, expressed in
// atomic units per byte.
const MinimumFeePerByteV1 float64 = 25.6 / float64(FeePerByteChunkSize)

// MaxOutputSizeClient is the largest amount a single output is allowed
// to carry. Denominations above this are split further by the wallet
// before they are ever sent to the node.
const MaxOutputSizeClient uint64 = 400_000_000_00

// NormalTxMaxOutputCountV1 bounds the number of outputs a non-fusion
// transaction may contain.
const NormalTxMaxOutputCountV1 = 90

// FusionTxMinInputCount is the fewest inputs a fusion transaction may
// consume; fewer available inputs means the wallet is already optimized.
const FusionTxMinInputCount = 12

// FusionTxMinInOutCountRatio is the minimum ratio of inputs to outputs a
// fusion transaction must maintain.
const FusionTxMinInOutCountRatio = 4

// blockGrantedFullRewardZoneCurrent is the reference chain's block size
// soft cap, transcribed from CryptoNoteConfig.h. FusionTxMaxSize is
// derived from it the same way the reference chain derives its own
// FUSION_TX_MAX_SIZE.
const blockGrantedFullRewardZoneCurrent = 100_000

// FusionTxMaxSize is the largest a fusion transaction's wire encoding is
// allowed to be.
const FusionTxMaxSize = blockGrantedFullRewardZoneCurrent * 30 / 100

// MaxTransactionSize returns the largest a non-fusion transaction's wire
// encoding is allowed to be at the given height. Only the steady-state
// value is modeled, the same simplification MixinRangeAt makes.
func MaxTransactionSize(currentHeight uint64) uint64 {
	return blockGrantedFullRewardZoneCurrent
}

// IntegratedAddressLength is the base58 length of an integrated address
// (standard address length plus the encoded payment ID block).
const IntegratedAddressLength = 97 + ((64 * 11) / 8)

// CurrentTransactionVersion is the transaction format version this core
// builds.
const CurrentTransactionVersion uint8 = 1

// Extra-field tag bytes used by the extra-field builder (component E).
// The payment-ID and arbitrary-data tags appear inside the extra-nonce
// sub-blob; the nonce and pubkey tags appear at the top level.
const (
	ExtraPaymentIDTag    byte = 0x00
	ExtraArbitraryDataID byte = 0x02
	ExtraNonceTag        byte = 0x01
	ExtraPubkeyTag       byte = 0x02
)

// KeyInputTag and KeyOutputTag are the discriminants of the tagged
// transaction-input/output unions on the wire. Coinbase inputs (tag
// 0xff) are out of scope for this core; only key inputs are ever built
// here.
const (
	KeyInputTag  byte = 0x02
	KeyOutputTag byte = 0x02
)

// MixinRange describes the allowable [min, max] mixin (decoy count) for
// a given block height, along with the default a caller should use when
// none is specified. The reference chain tightens and loosens this range
// across several hard forks; only two ranges are carried here (before
// and from MixinLimitsHeight) since this core does not implement
// historical replay.
type MixinRange struct {
	Min     uint64
	Max     uint64
	Default uint64
}

// MixinLimitsHeight is the height at which MixinRangeAt's steady-state
// range takes effect.
const MixinLimitsHeight = 150000

// MixinRangeAt returns the allowed mixin range for the given block
// height.
func MixinRangeAt(height uint64) MixinRange {
	if height < MixinLimitsHeight {
		return MixinRange{Min: 0, Max: 3, Default: 3}
	}
	return MixinRange{Min: 1, Max: 3, Default: 3}
}

// PrettyAmounts is the canonical set of decomposition elements: every
// d*10^k for d in [1,9] and k in [0, maxDenominationPower]. Any output
// amount that is not a member of this set fails verification.
var PrettyAmounts = buildPrettyAmounts()

const maxDenominationPower = 12

func buildPrettyAmounts() map[uint64]struct{} {
	set := make(map[uint64]struct{}, 9*(maxDenominationPower+1))
	multiplier := uint64(1)
	for k := 0; k <= maxDenominationPower; k++ {
		for d := uint64(1); d <= 9; d++ {
			set[d*multiplier] = struct{}{}
		}
		multiplier *= 10
	}
	return set
}

// IsPrettyAmount reports whether amount is a valid canonical
// denomination.
func IsPrettyAmount(amount uint64) bool {
	_, ok := PrettyAmounts[amount]
	return ok
}
