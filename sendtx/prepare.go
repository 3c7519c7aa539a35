package sendtx

import "github.com/zentcash/zentwallet/txbuild"

// PreparedTransactionInfo is everything SendPrepared needs to relay a
// transaction that was built ahead of time via Prepare (component I).
type PreparedTransactionInfo struct {
	Fee             txbuild.Amount
	PaymentID       string
	Inputs          []txbuild.SpendableInput
	ChangeAddress   string
	ChangeRequired  txbuild.Amount
	TxResult        txbuild.TransactionResult
	TransactionHash txbuild.TransactionHash
}

// SendPrepared relays a transaction built earlier by Prepare. It first
// re-checks that every input the transaction consumes is still
// spendable at the current tip — another send may have consumed one of
// them in the meantime — and fails with ErrPreparedTransactionExpired
// rather than relay a transaction whose inputs have gone stale.
func (s *Sender) SendPrepared(info PreparedTransactionInfo) (txbuild.TransactionHash, error) {
	currentHeight, err := s.Client.NetworkBlockCount()
	if err != nil {
		return txbuild.TransactionHash{}, txbuild.NewErrorContext(txbuild.ErrDaemonOffline, err.Error())
	}

	for _, in := range info.Inputs {
		if !s.Wallet.HaveSpendableInput(in.KeyImage, currentHeight) {
			return txbuild.TransactionHash{}, txbuild.NewError(txbuild.ErrPreparedTransactionExpired)
		}
	}

	return s.relay(info.Inputs, info.TxResult, info.Fee, info.PaymentID, info.ChangeAddress, info.ChangeRequired)
}
