// Package subwallet is the shared-state external collaborator spec.md
// §6 calls the "subwallet container": it owns the spendable/locked/
// unconfirmed bookkeeping sets and serializes mutation against
// concurrent send attempts. The build core never caches any of its
// derived data across RPC calls — it takes a reference and reads a
// fresh snapshot every time.
package subwallet

import (
	"sort"
	"sync"

	"github.com/zentcash/zentwallet/keys"
	"github.com/zentcash/zentwallet/txbuild"
)

// UnconfirmedIncoming records a not-yet-confirmed output this wallet
// received (typically a change output from its own send).
type UnconfirmedIncoming struct {
	Amount       txbuild.Amount
	OneTimePK    keys.PublicKey
	ParentTxHash txbuild.TransactionHash
}

// Transfer is one spend-key-keyed balance delta within an unconfirmed
// transaction.
type Transfer struct {
	PublicSpendKey keys.PublicKey
	Amount         int64
}

// Transaction is the bookkeeping record stored for a relayed send; it
// is distinct from txbuild.Transaction, which is the on-wire form.
type Transaction struct {
	Hash        txbuild.TransactionHash
	Transfers   []Transfer
	Timestamp   uint64
	BlockHeight uint64
	UnlockTime  uint64
	IsCoinbase  bool
	Fee         txbuild.Amount
}

// FusionInputsResult is get_fusion_transaction_inputs's return value.
type FusionInputsResult struct {
	Inputs           []txbuild.SpendableInput
	MaxInputsPossible int
	FoundMoney        txbuild.Amount
}

// Container is the subwallet external collaborator interface from
// spec.md §6. Every mutating method must serialize against concurrent
// callers; cryptographic/build work happens outside any lock the
// implementation holds.
type Container interface {
	PrimaryAddress() string
	PrivateViewKey() keys.SecretKey
	PublicSpendKeys() []keys.PublicKey

	// GetSpendableTransactionInputs returns spendable inputs ordered by
	// selection policy. If subset is non-nil, only inputs owned by one
	// of those spend keys are eligible.
	GetSpendableTransactionInputs(all bool, subset []keys.PublicKey, currentHeight uint64) []txbuild.SpendableInput

	GetFusionTransactionInputs(all bool, subset []keys.PublicKey, mixin uint64, currentHeight uint64, optimizeTarget *txbuild.Amount) FusionInputsResult

	HaveSpendableInput(image keys.KeyImage, currentHeight uint64) bool

	MarkInputAsLocked(image keys.KeyImage, owner keys.PublicKey)
	MarkInputAsSpent(image keys.KeyImage, height uint64)

	StoreUnconfirmedIncomingInput(incoming UnconfirmedIncoming, owner keys.PublicKey)
	AddUnconfirmedTransaction(tx Transaction)
	StoreTxPrivateKey(secret keys.SecretKey, txHash txbuild.TransactionHash)
}

type ownedInput struct {
	input       txbuild.SpendableInput
	owner       keys.PublicKey
	spent       bool
	spentHeight uint64
	locked      bool
}

// MemoryContainer is an in-memory Container implementation: a single
// mutex guards every bookkeeping set, matching the contract in spec.md
// §5 (one mutex for selection and commit, crypto work outside it).
type MemoryContainer struct {
	mu sync.Mutex

	primaryAddress string
	privateViewKey keys.SecretKey

	inputs []*ownedInput

	unconfirmedIncoming map[keys.PublicKey][]UnconfirmedIncoming
	unconfirmedTxs      []Transaction
	txSecretKeys        map[txbuild.TransactionHash]keys.SecretKey
}

var _ Container = (*MemoryContainer)(nil)

// NewMemoryContainer builds an empty in-memory container.
func NewMemoryContainer(primaryAddress string, privateViewKey keys.SecretKey) *MemoryContainer {
	return &MemoryContainer{
		primaryAddress:       primaryAddress,
		privateViewKey:       privateViewKey,
		unconfirmedIncoming:  make(map[keys.PublicKey][]UnconfirmedIncoming),
		txSecretKeys:         make(map[txbuild.TransactionHash]keys.SecretKey),
	}
}

// AddSpendableInput seeds the container with a known-spendable input,
// owned by owner. Tests and sync pipelines use this to populate state;
// it is not part of the Container interface.
func (c *MemoryContainer) AddSpendableInput(input txbuild.SpendableInput, owner keys.PublicKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inputs = append(c.inputs, &ownedInput{input: input, owner: owner})
}

// PrimaryAddress implements Container.
func (c *MemoryContainer) PrimaryAddress() string { return c.primaryAddress }

// PrivateViewKey implements Container.
func (c *MemoryContainer) PrivateViewKey() keys.SecretKey { return c.privateViewKey }

// PublicSpendKeys implements Container.
func (c *MemoryContainer) PublicSpendKeys() []keys.PublicKey {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[keys.PublicKey]struct{})
	var out []keys.PublicKey
	for _, oi := range c.inputs {
		if _, ok := seen[oi.owner]; ok {
			continue
		}
		seen[oi.owner] = struct{}{}
		out = append(out, oi.owner)
	}
	return out
}

func inSubset(subset []keys.PublicKey, key keys.PublicKey) bool {
	if subset == nil {
		return true
	}
	for _, k := range subset {
		if k == key {
			return true
		}
	}
	return false
}

// GetSpendableTransactionInputs implements Container. The selection
// policy used here is oldest-global-index-first, a deterministic,
// stable order real implementations commonly prefer to minimize ring
// predictability across repeated sends from the same set.
func (c *MemoryContainer) GetSpendableTransactionInputs(all bool, subset []keys.PublicKey, currentHeight uint64) []txbuild.SpendableInput {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []txbuild.SpendableInput
	for _, oi := range c.inputs {
		if oi.spent || oi.locked {
			continue
		}
		if !all && !inSubset(subset, oi.owner) {
			continue
		}
		if oi.input.UnlockHeightOrTime > currentHeight {
			continue
		}
		out = append(out, oi.input)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].GlobalOutputIndex < out[j].GlobalOutputIndex
	})
	return out
}

// GetFusionTransactionInputs implements Container. It selects spendable
// inputs whose amount is shared by more than mixin eligible inputs
// (grouping that shares the same amount makes for the cheapest
// consolidation), most plentiful amount first.
func (c *MemoryContainer) GetFusionTransactionInputs(all bool, subset []keys.PublicKey, mixin uint64, currentHeight uint64, optimizeTarget *txbuild.Amount) FusionInputsResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	byAmount := make(map[txbuild.Amount][]txbuild.SpendableInput)
	for _, oi := range c.inputs {
		if oi.spent || oi.locked {
			continue
		}
		if !all && !inSubset(subset, oi.owner) {
			continue
		}
		if oi.input.UnlockHeightOrTime > currentHeight {
			continue
		}
		byAmount[oi.input.Amount] = append(byAmount[oi.input.Amount], oi.input)
	}

	var amounts []txbuild.Amount
	for a, group := range byAmount {
		if uint64(len(group)) > mixin {
			amounts = append(amounts, a)
		}
	}
	sort.Slice(amounts, func(i, j int) bool { return len(byAmount[amounts[i]]) > len(byAmount[amounts[j]]) })

	var selected []txbuild.SpendableInput
	maxPossible := 0
	var found txbuild.Amount
	for _, a := range amounts {
		maxPossible += len(byAmount[a])
		for _, in := range byAmount[a] {
			selected = append(selected, in)
			found += in.Amount
		}
	}

	return FusionInputsResult{Inputs: selected, MaxInputsPossible: maxPossible, FoundMoney: found}
}

// HaveSpendableInput implements Container.
func (c *MemoryContainer) HaveSpendableInput(image keys.KeyImage, currentHeight uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, oi := range c.inputs {
		if oi.input.KeyImage != image {
			continue
		}
		return !oi.spent && !oi.locked && oi.input.UnlockHeightOrTime <= currentHeight
	}
	return false
}

// MarkInputAsLocked implements Container.
func (c *MemoryContainer) MarkInputAsLocked(image keys.KeyImage, owner keys.PublicKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, oi := range c.inputs {
		if oi.input.KeyImage == image && oi.owner == owner {
			oi.locked = true
			return
		}
	}
}

// MarkInputAsSpent implements Container.
func (c *MemoryContainer) MarkInputAsSpent(image keys.KeyImage, height uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, oi := range c.inputs {
		if oi.input.KeyImage == image {
			oi.spent = true
			oi.spentHeight = height
			return
		}
	}
}

// StoreUnconfirmedIncomingInput implements Container.
func (c *MemoryContainer) StoreUnconfirmedIncomingInput(incoming UnconfirmedIncoming, owner keys.PublicKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unconfirmedIncoming[owner] = append(c.unconfirmedIncoming[owner], incoming)
}

// AddUnconfirmedTransaction implements Container.
func (c *MemoryContainer) AddUnconfirmedTransaction(tx Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unconfirmedTxs = append(c.unconfirmedTxs, tx)
}

// StoreTxPrivateKey implements Container.
func (c *MemoryContainer) StoreTxPrivateKey(secret keys.SecretKey, txHash txbuild.TransactionHash) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.txSecretKeys[txHash] = secret
}

// UnconfirmedTransactions returns a snapshot of every recorded
// unconfirmed transaction, for tests and bookkeeping inspection.
func (c *MemoryContainer) UnconfirmedTransactions() []Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Transaction, len(c.unconfirmedTxs))
	copy(out, c.unconfirmedTxs)
	return out
}

// LockedKeyImages returns every key image currently marked locked, for
// tests asserting bookkeeping atomicity.
func (c *MemoryContainer) LockedKeyImages() []keys.KeyImage {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []keys.KeyImage
	for _, oi := range c.inputs {
		if oi.locked {
			out = append(out, oi.input.KeyImage)
		}
	}
	return out
}
