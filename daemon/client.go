// Package daemon is the node RPC collaborator: it requests decoy
// outputs, current chain height, the node's relay fee, and submits
// finished transactions. The transport is a thin adapter around an
// existing JSON-RPC client rather than a hand-rolled HTTP client.
package daemon

import (
	"github.com/zentcash/zentwallet/keys"
)

// AmountOuts is the node-supplied candidate outputs for one amount.
type AmountOuts struct {
	Amount uint64
	Outs   []Out
}

// Out is a single candidate output returned by get_random_outs.
type Out struct {
	GlobalAmountIndex uint64
	OutKey            keys.PublicKey
}

// Client is the node RPC collaborator spec.md §6 describes. This core
// never picks which node to talk to or how requests travel the wire;
// it only calls these methods.
type Client interface {
	// NetworkBlockCount returns the node's current chain height.
	NetworkBlockCount() (uint64, error)

	// NodeFee returns the node operator's optional fee and the address
	// it should be paid to, if the node charges one.
	NodeFee() (amount uint64, address string, err error)

	// GetRandomOutsByAmounts requests count decoys per distinct amount
	// in amounts.
	GetRandomOutsByAmounts(amounts []uint64, count uint64) (ok bool, perAmount []AmountOuts, err error)

	// SendTransaction submits raw transaction bytes to the node.
	SendTransaction(raw []byte) (ok bool, connectionError bool, errorMessage string, err error)
}
