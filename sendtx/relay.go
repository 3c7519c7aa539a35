package sendtx

import (
	"encoding/hex"
	"strings"

	"github.com/zentcash/zentwallet/keys"
	"github.com/zentcash/zentwallet/subwallet"
	"github.com/zentcash/zentwallet/txbuild"
)

const alreadySpentSubstring = "Transaction contains an input which has already been spent - "
const keyImagePrefix = "Key image: "
const keyImageHexLength = 64

// relay implements component H: submit the transaction to the node,
// and only on success, record the outgoing transfer, any change as an
// unconfirmed incoming input, the per-transaction secret key, and lock
// every consumed key image. A failed relay — daemon offline or any
// remote error other than known-spent — leaves no side effects besides
// the single key-image update §7 carves out for the known-spent case.
func (s *Sender) relay(
	inputs []txbuild.SpendableInput,
	result txbuild.TransactionResult,
	fee txbuild.Amount,
	paymentID string,
	changeAddress string,
	changeRequired txbuild.Amount,
) (txbuild.TransactionHash, error) {
	raw := result.Transaction.Bytes()

	ok, connectionError, errorMessage, err := s.Client.SendTransaction(raw)
	if err != nil || connectionError {
		msg := errorMessage
		if err != nil {
			msg = err.Error()
		}
		return txbuild.TransactionHash{}, txbuild.NewErrorContext(txbuild.ErrDaemonOffline, msg)
	}

	if !ok {
		if image, found := extractAlreadySpentKeyImage(errorMessage); found {
			log.Warnf("key image %s reported already spent, marking locally", image)
			s.Wallet.MarkInputAsSpent(image, 0)
		}
		return txbuild.TransactionHash{}, txbuild.NewErrorContext(txbuild.ErrDaemonError, errorMessage)
	}

	hash := result.Transaction.Hash()

	if err := s.recordSentTransaction(inputs, result, fee, changeAddress, changeRequired, hash); err != nil {
		return hash, err
	}

	return hash, nil
}

// recordSentTransaction performs every local bookkeeping write spec.md
// §4.H prescribes for a successfully relayed transaction.
func (s *Sender) recordSentTransaction(
	inputs []txbuild.SpendableInput,
	result txbuild.TransactionResult,
	fee txbuild.Amount,
	changeAddress string,
	changeRequired txbuild.Amount,
	hash txbuild.TransactionHash,
) error {
	transfers := make(map[keys.PublicKey]int64)
	for _, in := range inputs {
		transfers[in.OwnerPublicSpendKey] -= int64(in.Amount)
	}

	if changeRequired != 0 {
		changeSpendKey, _, err := s.Codec.AddressToKeys(changeAddress)
		if err != nil {
			return err
		}
		transfers[changeSpendKey] += int64(changeRequired)
	}

	transferList := make([]subwallet.Transfer, 0, len(transfers))
	for spend, amount := range transfers {
		transferList = append(transferList, subwallet.Transfer{PublicSpendKey: spend, Amount: amount})
	}

	s.Wallet.AddUnconfirmedTransaction(subwallet.Transaction{
		Hash:      hash,
		Transfers: transferList,
		Fee:       fee,
	})

	if err := s.storeUnconfirmedIncoming(result, hash); err != nil {
		return err
	}

	s.Wallet.StoreTxPrivateKey(result.TxSecretKey, hash)

	for _, in := range inputs {
		s.Wallet.MarkInputAsLocked(in.KeyImage, in.OwnerPublicSpendKey)
	}

	return nil
}

// storeUnconfirmedIncoming finds which of a newly built transaction's
// outputs derive back to one of this wallet's own public spend keys
// (i.e. change, or a self-send) and records each as an unconfirmed
// incoming input.
func (s *Sender) storeUnconfirmedIncoming(result txbuild.TransactionResult, hash txbuild.TransactionHash) error {
	derivation, err := s.Ops.GenerateKeyDerivation(result.TxPublicKey, s.Wallet.PrivateViewKey())
	if err != nil {
		return err
	}

	ours := make(map[keys.PublicKey]struct{})
	for _, k := range s.Wallet.PublicSpendKeys() {
		ours[k] = struct{}{}
	}

	for i, out := range result.Outputs {
		candidate, err := s.Ops.UnderivePublicKey(derivation, uint64(i), out.OneTimePublicKey)
		if err != nil {
			return err
		}
		if _, ok := ours[candidate]; !ok {
			continue
		}

		s.Wallet.StoreUnconfirmedIncomingInput(subwallet.UnconfirmedIncoming{
			Amount:       out.Amount,
			OneTimePK:    out.OneTimePublicKey,
			ParentTxHash: hash,
		}, candidate)
	}

	return nil
}

// extractAlreadySpentKeyImage defensively parses the daemon's
// known-spent error message: the known substring must appear in the
// message, then the text after the key-image marker must be a
// strict-length hex string, rather than trusting the message's shape
// beyond that.
func extractAlreadySpentKeyImage(message string) (keys.KeyImage, bool) {
	if !strings.Contains(message, alreadySpentSubstring) {
		return keys.KeyImage{}, false
	}

	idx := strings.Index(message, keyImagePrefix)
	if idx < 0 {
		return keys.KeyImage{}, false
	}

	hexPart := strings.TrimSpace(message[idx+len(keyImagePrefix):])
	if len(hexPart) != keyImageHexLength {
		return keys.KeyImage{}, false
	}

	raw, err := hex.DecodeString(hexPart)
	if err != nil {
		return keys.KeyImage{}, false
	}

	var image keys.KeyImage
	copy(image[:], raw)
	return image, true
}
