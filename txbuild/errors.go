package txbuild

import "fmt"

// ErrorKind enumerates every terminal (and one recoverable) failure mode
// a send attempt can end in.
type ErrorKind int

const (
	// ErrDaemonOffline means a node RPC call failed at the transport
	// level.
	ErrDaemonOffline ErrorKind = iota

	// ErrDaemonError means the node accepted the request but returned
	// a remote error message.
	ErrDaemonError

	// ErrNotEnoughBalance is recoverable by the fee/size loop: it
	// carries Needed so the caller can select another input and
	// retry, rather than failing the send outright.
	ErrNotEnoughBalance

	// ErrNotEnoughFakeOutputs means the node could not supply enough
	// decoys for some amount in the ring.
	ErrNotEnoughFakeOutputs

	// ErrFusionMixinTooLarge means decoys could not be obtained to
	// satisfy the fusion input/output ratio.
	ErrFusionMixinTooLarge

	// ErrFullyOptimized means a fusion attempt found fewer than
	// FusionTxMinInputCount eligible inputs; the wallet has nothing
	// left worth consolidating.
	ErrFullyOptimized

	// ErrFeeTooSmall means a caller-supplied fixed fee fell below the
	// network minimum for the actual transaction size.
	ErrFeeTooSmall

	// ErrUnexpectedFee means the signed transaction's actual
	// input/output difference didn't match the fee the loop computed.
	ErrUnexpectedFee

	// ErrAmountsNotPretty means an output amount failed canonical
	// denomination verification.
	ErrAmountsNotPretty

	// ErrFailedToCreateRingSignature means self-verification of a
	// freshly generated ring signature failed.
	ErrFailedToCreateRingSignature

	// ErrOutputDecomposition means the denomination splitter could not
	// decompose an amount (e.g. chunking did not converge).
	ErrOutputDecomposition

	// ErrTooManyInputsToFitInBlock means the assembled transaction
	// would exceed protocol size limits regardless of fee.
	ErrTooManyInputsToFitInBlock

	// ErrPreparedTransactionExpired means a previously prepared
	// transaction's inputs are no longer all spendable.
	ErrPreparedTransactionExpired

	// ErrInputKeyImageAlreadySpent means the node reported that a key
	// image this build consumed has already been spent on the network.
	ErrInputKeyImageAlreadySpent
)

var errorKindNames = map[ErrorKind]string{
	ErrDaemonOffline:               "daemon offline",
	ErrDaemonError:                 "daemon error",
	ErrNotEnoughBalance:            "not enough balance",
	ErrNotEnoughFakeOutputs:        "not enough fake outputs",
	ErrFusionMixinTooLarge:         "fusion mixin too large",
	ErrFullyOptimized:              "fully optimized",
	ErrFeeTooSmall:                 "fee too small",
	ErrUnexpectedFee:               "unexpected fee",
	ErrAmountsNotPretty:            "amounts not pretty",
	ErrFailedToCreateRingSignature: "failed to create ring signature",
	ErrOutputDecomposition:         "output decomposition failed",
	ErrTooManyInputsToFitInBlock:   "too many inputs to fit in block",
	ErrPreparedTransactionExpired:  "prepared transaction expired",
	ErrInputKeyImageAlreadySpent:   "input key image already spent",
}

// Error is the single error type every stage of the build pipeline
// returns. Context carries a free-form message (e.g. the daemon's raw
// error string); Needed carries the recoverable-retry amount for
// ErrNotEnoughBalance.
type Error struct {
	Kind    ErrorKind
	Context string
	Needed  uint64
}

func (e *Error) Error() string {
	name := errorKindNames[e.Kind]
	switch {
	case e.Kind == ErrNotEnoughBalance:
		return fmt.Sprintf("%s: needed %d", name, e.Needed)
	case e.Context != "":
		return fmt.Sprintf("%s: %s", name, e.Context)
	default:
		return name
	}
}

// NewError builds an Error with no context.
func NewError(kind ErrorKind) *Error {
	return &Error{Kind: kind}
}

// NewErrorContext builds an Error carrying a free-form context string.
func NewErrorContext(kind ErrorKind, context string) *Error {
	return &Error{Kind: kind, Context: context}
}

// NewNotEnoughBalance builds the recoverable ErrNotEnoughBalance error.
func NewNotEnoughBalance(needed uint64) *Error {
	return &Error{Kind: ErrNotEnoughBalance, Needed: needed}
}
