// Package txbuild assembles ring-signature transactions: denomination
// splitting, ring assembly, input finalization, output derivation, the
// tx_extra blob, signing, and the exact CryptoNote wire encoding. It owns
// components A through F and K of the transaction construction
// core; the fee/size feedback loop and relay live one layer up, in
// sendtx, which drives this package.
package txbuild

import (
	"github.com/decred/dcrd/chaincfg/chainhash"

	"github.com/zentcash/zentwallet/keys"
	"github.com/zentcash/zentwallet/primitives"
)

// Amount is an atomic-unit quantity.
type Amount = uint64

// TransactionHash and PaymentID are opaque 32-byte identifiers; both
// reuse chainhash.Hash rather than a locally defined array type since
// neither needs scalar/point arithmetic.
type TransactionHash = chainhash.Hash
type PaymentID = chainhash.Hash

// SpendableInput is a previously received output owned by the wallet.
// PrivateEphemeral is nil when it must be derived on demand (component
// C), non-nil when the subwallet container pre-derived it during sync.
type SpendableInput struct {
	KeyImage             keys.KeyImage
	Amount               Amount
	ParentTxHash         TransactionHash
	TxPublicKey          keys.PublicKey
	IndexWithinTx        uint64
	GlobalOutputIndex    uint64
	OneTimePublicKey     keys.PublicKey
	UnlockHeightOrTime   uint64
	OwnerPublicSpendKey  keys.PublicKey
	OwnerPrivateSpendKey keys.SecretKey
	PrivateEphemeral     *keys.SecretKey
}

// Destination is a payment recipient and amount.
type Destination struct {
	ReceiverPublicSpendKey keys.PublicKey
	ReceiverPublicViewKey  keys.PublicKey
	Amount                 Amount
}

// KeyOutput is an output after key derivation.
type KeyOutput struct {
	OneTimePublicKey keys.PublicKey
	Amount           Amount
}

// KeyInput is the on-wire representation of a spent input: the absolute
// indexes of its ring are relative-delta encoded (sorted ascending,
// first element absolute, each subsequent a delta to its predecessor).
type KeyInput struct {
	Amount                Amount
	KeyImage              keys.KeyImage
	RelativeOutputIndexes []uint64
}

// RingMember is one entry in an ObscuredInput's output set.
type RingMember struct {
	GlobalIndex      uint64
	OneTimePublicKey keys.PublicKey
}

// ObscuredInput is the ring membership for one real input, assembled by
// component B and consumed by components C and F.
type ObscuredInput struct {
	Outputs              []RingMember
	RealOutputPosition   int
	RealTxPublicKey      keys.PublicKey
	RealOutputTxIndex    uint64
	Amount               Amount
	OwnerPublicSpendKey  keys.PublicKey
	OwnerPrivateSpendKey keys.SecretKey
	KeyImage             keys.KeyImage
	PrivateEphemeral     *keys.SecretKey
}

// Transaction is the logical, in-memory form of a built transaction.
// Signatures[i] corresponds to Inputs[i] and must have the same length
// as Inputs[i].RelativeOutputIndexes.
type Transaction struct {
	Version    uint8
	UnlockTime uint64
	Inputs     []KeyInput
	Outputs    []KeyOutput
	Extra      []byte
	Signatures []primitives.RingSignature
}

// TransactionResult is what the build pipeline hands back to the fee
// loop: the built transaction, the pre-wire outputs (for bookkeeping),
// and the fresh per-transaction key pair.
type TransactionResult struct {
	Transaction Transaction
	Outputs     []KeyOutput
	TxPublicKey keys.PublicKey
	TxSecretKey keys.SecretKey
}
