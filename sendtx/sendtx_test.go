package sendtx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zentcash/zentwallet/daemon"
	"github.com/zentcash/zentwallet/keys"
	"github.com/zentcash/zentwallet/primitives"
	"github.com/zentcash/zentwallet/subwallet"
	"github.com/zentcash/zentwallet/txbuild"
)

// fakeDaemon is a minimal in-memory daemon.Client, grounded on
// txbuild's own fakeDaemon test double.
type fakeDaemon struct {
	ops            primitives.KeyOps
	nextIndex      map[txbuild.Amount]uint64
	height         uint64
	sendErrMessage string
	sendOK         bool
	sent           [][]byte
}

func newFakeDaemon(ops primitives.KeyOps) *fakeDaemon {
	return &fakeDaemon{ops: ops, nextIndex: make(map[txbuild.Amount]uint64), height: 1000, sendOK: true}
}

func (f *fakeDaemon) NetworkBlockCount() (uint64, error) { return f.height, nil }

func (f *fakeDaemon) NodeFee() (uint64, string, error) { return 0, "", nil }

func (f *fakeDaemon) GetRandomOutsByAmounts(amounts []uint64, count uint64) (bool, []daemon.AmountOuts, error) {
	result := make([]daemon.AmountOuts, 0, len(amounts))
	for _, amount := range amounts {
		outs := make([]daemon.Out, 0, count)
		for i := uint64(0); i < count; i++ {
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
	f.sent = append(f.sent, raw)
	if !f.sendOK {
		return false, false, f.sendErrMessage, nil
	}
	return true, false, "", nil
}

var _ daemon.Client = (*fakeDaemon)(nil)

// fakeCodec maps addresses directly to key material by string identity;
// real base58 decoding is out of scope for this core.
type fakeCodec struct {
	byAddress map[string][2]keys.PublicKey
}

func newFakeCodec() *fakeCodec {
	return &fakeCodec{byAddress: make(map[string][2]keys.PublicKey)}
}

func (c *fakeCodec) register(address string, spend, view keys.PublicKey) {
	c.byAddress[address] = [2]keys.PublicKey{spend, view}
}

func (c *fakeCodec) AddressToKeys(address string) (keys.PublicKey, keys.PublicKey, error) {
	pair, ok := c.byAddress[address]
	if !ok {
		return keys.PublicKey{}, keys.PublicKey{}, fmt.Errorf("unknown address %s", address)
	}
	return pair[0], pair[1], nil
}

func (c *fakeCodec) ExtractIntegratedAddressData(address string) (string, string, error) {
	return address, "", nil
}

func (c *fakeCodec) AddressesToSpendKeys(addresses []string) ([]keys.PublicKey, error) {
	out := make([]keys.PublicKey, 0, len(addresses))
	for _, a := range addresses {
		pair, ok := c.byAddress[a]
		if !ok {
			return nil, fmt.Errorf("unknown address %s", a)
		}
		out = append(out, pair[0])
	}
	return out, nil
}

var _ keys.AddressCodec = (*fakeCodec)(nil)

type testWallet struct {
	ops     primitives.KeyOps
	spendPk keys.PublicKey
	spendSk keys.SecretKey
	viewPk  keys.PublicKey
	viewSk  keys.SecretKey
	address string
	wallet  *subwallet.MemoryContainer
	codec   *fakeCodec
	daemon  *fakeDaemon
}

func newTestWallet(t *testing.T) *testWallet {
	t.Helper()

	ops := primitives.Ed25519Ops{}

	spendPk, spendSk, err := ops.GenerateKeyPair()
	require.NoError(t, err)
	viewPk, viewSk, err := ops.GenerateKeyPair()
	require.NoError(t, err)

	const address = "ztx1primaryaddress"

	codec := newFakeCodec()
	codec.register(address, spendPk, viewPk)

	w := subwallet.NewMemoryContainer(address, viewSk)

	return &testWallet{
		ops: ops, spendPk: spendPk, spendSk: spendSk, viewPk: viewPk, viewSk: viewSk,
		address: address, wallet: w, codec: codec, daemon: newFakeDaemon(ops),
	}
}

// addInput seeds the wallet with one spendable input of amount, owned by
// the test wallet's own spend key, derivable from a fresh per-input
// transaction key pair.
func (tw *testWallet) addInput(t *testing.T, amount txbuild.Amount, globalIndex uint64) {
	t.Helper()

	txPub, txSec, err := tw.ops.GenerateKeyPair()
	require.NoError(t, err)

	derivation, err := tw.ops.GenerateKeyDerivation(tw.viewPk, txSec)
	require.NoError(t, err)

	oneTimePub, err := tw.ops.DerivePublicKey(derivation, 0, tw.spendPk)
	require.NoError(t, err)

	recvDerivation, err := tw.ops.GenerateKeyDerivation(txPub, tw.viewSk)
	require.NoError(t, err)
	oneTimeSec, err := tw.ops.DeriveSecretKey(recvDerivation, 0, tw.spendSk)
	require.NoError(t, err)

	image, err := tw.ops.GenerateKeyImage(oneTimePub, oneTimeSec)
	require.NoError(t, err)

	tw.wallet.AddSpendableInput(txbuild.SpendableInput{
		KeyImage:             image,
		Amount:               amount,
		TxPublicKey:          txPub,
		GlobalOutputIndex:    globalIndex,
		OneTimePublicKey:     oneTimePub,
		OwnerPublicSpendKey:  tw.spendPk,
		OwnerPrivateSpendKey: tw.spendSk,
		PrivateEphemeral:     &oneTimeSec,
	}, tw.spendPk)
}

func (tw *testWallet) sender() *Sender {
	return &Sender{Ops: tw.ops, Client: tw.daemon, Wallet: tw.wallet, Codec: tw.codec}
}

func TestSendSingleDestinationMixin3FixedFee(t *testing.T) {
	tw := newTestWallet(t)
	tw.addInput(t, 1_000_000, 5)

	destSpend, destView, err := tw.ops.GenerateKeyPair()
	require.NoError(t, err)
	const destAddress = "ztx1destination"
	tw.codec.register(destAddress, destSpend, destView)

	s := tw.sender()
	hash, err := s.Send(Params{
		Destinations: []AddressAmount{{Address: destAddress, Amount: 500_000}},
		Mixin:        3,
		Fee:          Fixed(10),
		UnlockTime:   0,
	})
	require.NoError(t, err)
	require.NotEqual(t, txbuild.TransactionHash{}, hash)

	txs := tw.wallet.UnconfirmedTransactions()
	require.Len(t, txs, 1)
	require.Equal(t, txbuild.Amount(10), txs[0].Fee)

	locked := tw.wallet.LockedKeyImages()
	require.Len(t, locked, 1)
}

func TestSendAllFeePerByte(t *testing.T) {
	tw := newTestWallet(t)
	tw.addInput(t, 2_000_000, 5)

	destSpend, destView, err := tw.ops.GenerateKeyPair()
	require.NoError(t, err)
	const destAddress = "ztx1sendall"
	tw.codec.register(destAddress, destSpend, destView)

	s := tw.sender()
	hash, err := s.Send(Params{
		Destinations: []AddressAmount{{Address: destAddress, Amount: 2_000_000}},
		Mixin:        3,
		Fee:          Minimum(),
		SendAll:      true,
	})
	require.NoError(t, err)
	require.NotEqual(t, txbuild.TransactionHash{}, hash)

	txs := tw.wallet.UnconfirmedTransactions()
	require.Len(t, txs, 1)
	require.Greater(t, txs[0].Fee, txbuild.Amount(0))
}

func TestSendNotEnoughBalance(t *testing.T) {
	tw := newTestWallet(t)
	tw.addInput(t, 1_000, 5)

	destSpend, destView, err := tw.ops.GenerateKeyPair()
	require.NoError(t, err)
	const destAddress = "ztx1notenough"
	tw.codec.register(destAddress, destSpend, destView)

	s := tw.sender()
	_, err = s.Send(Params{
		Destinations: []AddressAmount{{Address: destAddress, Amount: 1_000_000}},
		Mixin:        3,
		Fee:          Fixed(10),
	})
	require.Error(t, err)

	var buildErr *txbuild.Error
	require.True(t, errors.As(err, &buildErr))
	require.Equal(t, txbuild.ErrNotEnoughBalance, buildErr.Kind)
}

func TestSendFusionHappyPath(t *testing.T) {
	tw := newTestWallet(t)
	for i := 0; i < 12; i++ {
		tw.addInput(t, 1_000_000, uint64(i))
	}

	s := tw.sender()
	hash, err := s.SendFusion(FusionParams{Mixin: 3})
	require.NoError(t, err)
	require.NotEqual(t, txbuild.TransactionHash{}, hash)

	locked := tw.wallet.LockedKeyImages()
	require.Len(t, locked, 12)
}

func TestSendFusionFullyOptimizedWithoutRelaying(t *testing.T) {
	tw := newTestWallet(t)
	tw.addInput(t, 1_000_000, 0)

	s := tw.sender()
	_, err := s.SendFusion(FusionParams{Mixin: 3})
	require.Error(t, err)

	var buildErr *txbuild.Error
	require.True(t, errors.As(err, &buildErr))
	require.Equal(t, txbuild.ErrFullyOptimized, buildErr.Kind)

	require.Empty(t, tw.daemon.sent)
}

func TestSendDaemonReportsAlreadySpent(t *testing.T) {
	tw := newTestWallet(t)
	tw.addInput(t, 1_000_000, 5)

	destSpend, destView, err := tw.ops.GenerateKeyPair()
	require.NoError(t, err)
	const destAddress = "ztx1alreadyspent"
	tw.codec.register(destAddress, destSpend, destView)

	tw.daemon.sendOK = false
	tw.daemon.sendErrMessage = alreadySpentSubstring + keyImagePrefix +
		"1111111111111111111111111111111111111111111111111111111111111111"[:64]

	s := tw.sender()
	_, err = s.Send(Params{
		Destinations: []AddressAmount{{Address: destAddress, Amount: 500_000}},
		Mixin:        3,
		Fee:          Fixed(10),
	})
	require.Error(t, err)

	var buildErr *txbuild.Error
	require.True(t, errors.As(err, &buildErr))
	require.Equal(t, txbuild.ErrDaemonError, buildErr.Kind)

	require.Empty(t, tw.wallet.UnconfirmedTransactions())
}
