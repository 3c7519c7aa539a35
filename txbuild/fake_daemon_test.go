package txbuild

import (
	"github.com/zentcash/zentwallet/daemon"
	"github.com/zentcash/zentwallet/primitives"
)

// fakeDaemon is a minimal in-memory daemon.Client for exercising the
// ring assembler without a network. Decoys are freshly generated key
// pairs, numbered per amount as 0, 1000, 2000, ... across calls.
type fakeDaemon struct {
	ops          primitives.KeyOps
	nextIndex    map[Amount]uint64
	insufficient map[Amount]bool
}

func newFakeDaemon(ops primitives.KeyOps) *fakeDaemon {
	return &fakeDaemon{ops: ops, nextIndex: make(map[Amount]uint64), insufficient: make(map[Amount]bool)}
}

func (f *fakeDaemon) NetworkBlockCount() (uint64, error) { return 1000, nil }

func (f *fakeDaemon) NodeFee() (uint64, string, error) { return 0, "", nil }

func (f *fakeDaemon) GetRandomOutsByAmounts(amounts []uint64, count uint64) (bool, []daemon.AmountOuts, error) {
	result := make([]daemon.AmountOuts, 0, len(amounts))
	for _, amount := range amounts {
		want := count
		if f.insufficient[amount] && want > 1 {
			want = 1
		}

		outs := make([]daemon.Out, 0, want)
		for i := uint64(0); i < want; i++ {
			pub, _, err := f.ops.GenerateKeyPair()
			if err != nil {
				return false, nil, err
			}
			idx := f.nextIndex[amount]
			f.nextIndex[amount] = idx + 1000
			outs = append(outs, daemon.Out{GlobalAmountIndex: idx, OutKey: pub})
		}
		result = append(result, daemon.AmountOuts{Amount: amount, Outs: outs})
	}
	return true, result, nil
}

func (f *fakeDaemon) SendTransaction(raw []byte) (bool, bool, string, error) {
	return true, false, "", nil
}

var _ daemon.Client = (*fakeDaemon)(nil)
