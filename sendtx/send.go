// Package sendtx is the fee/size feedback loop and relay layer that
// drives txbuild: it is components G (fee/size loop), H (relay &
// bookkeeping), and I (prepared-tx) of the transaction construction
// core. It selects inputs from the subwallet container, calls
// txbuild.Build (components B through F) once per iteration while
// converging on a fee, and — for a live send — submits the result to
// the node and updates local bookkeeping atomically.
package sendtx

import (
	"encoding/hex"

	"github.com/zentcash/zentwallet/chainparams"
	"github.com/zentcash/zentwallet/daemon"
	"github.com/zentcash/zentwallet/keys"
	"github.com/zentcash/zentwallet/primitives"
	"github.com/zentcash/zentwallet/subwallet"
	"github.com/zentcash/zentwallet/txbuild"
)

// Params describes a normal (non-fusion) send: destinations, ring
// width, fee policy, and selection/change controls.
type Params struct {
	Destinations      []AddressAmount
	Mixin             uint64
	Fee               FeeSpec
	PaymentID         string
	ArbitraryData     []byte
	TakeFromAddresses []string
	ChangeAddress     string
	UnlockTime        uint64
	SendAll           bool
}

// Sender wires the curve primitives, node RPC client, subwallet
// container, and address codec together to drive components G through
// I of the transaction construction core.
type Sender struct {
	Ops    primitives.KeyOps
	Client daemon.Client
	Wallet subwallet.Container
	Codec  keys.AddressCodec
}

// Send builds, signs, and relays a transaction in one call.
func (s *Sender) Send(params Params) (txbuild.TransactionHash, error) {
	_, hash, err := s.sendAdvanced(params, true)
	return hash, err
}

// Prepare builds and signs a transaction without relaying it,
// capturing everything SendPrepared needs to relay it later (component
// I).
func (s *Sender) Prepare(params Params) (PreparedTransactionInfo, error) {
	info, _, err := s.sendAdvanced(params, false)
	return info, err
}

func paymentIDFromHex(s string) (txbuild.PaymentID, error) {
	var out txbuild.PaymentID
	raw, err := hex.DecodeString(s)
	if err != nil {
		return out, err
	}
	if err := out.SetBytes(raw); err != nil {
		return out, err
	}
	return out, nil
}

// sendAdvanced implements the full outer fee/size loop of component G:
// it accumulates spendable inputs one at a time, and for each prefix
// that covers the destination total, attempts to accept a built
// transaction — either directly (fixed fee) or via the adjust-to-actual
// sub-loop (fee-per-byte/minimum). relay selects whether the accepted
// result is submitted to the node (component H) or just captured for
// later (component I).
func (s *Sender) sendAdvanced(params Params, relay bool) (PreparedTransactionInfo, txbuild.TransactionHash, error) {
	currentHeight, err := s.Client.NetworkBlockCount()
	if err != nil {
		return PreparedTransactionInfo{}, txbuild.TransactionHash{}, txbuild.NewErrorContext(txbuild.ErrDaemonOffline, err.Error())
	}

	destinations := append([]AddressAmount{}, params.Destinations...)

	feeAmount, feeAddress, err := s.Client.NodeFee()
	if err != nil {
		return PreparedTransactionInfo{}, txbuild.TransactionHash{}, txbuild.NewErrorContext(txbuild.ErrDaemonOffline, err.Error())
	}
	if feeAmount != 0 {
		destinations = append(destinations, AddressAmount{Address: feeAddress, Amount: feeAmount})
	}

	changeAddress := params.ChangeAddress
	if changeAddress == "" {
		changeAddress = s.Wallet.PrimaryAddress()
	}

	destinations, paymentID, err := resolveIntegratedAddresses(s.Codec, destinations, params.PaymentID)
	if err != nil {
		return PreparedTransactionInfo{}, txbuild.TransactionHash{}, err
	}

	var extraOpts txbuild.ExtraOptions
	if paymentID != "" {
		h, err := paymentIDFromHex(paymentID)
		if err != nil {
			return PreparedTransactionInfo{}, txbuild.TransactionHash{}, err
		}
		extraOpts.PaymentID = &h
	}
	extraOpts.ArbitraryData = params.ArbitraryData

	var takeFrom []keys.PublicKey
	takeFromAll := len(params.TakeFromAddresses) == 0
	if !takeFromAll {
		takeFrom, err = s.Codec.AddressesToSpendKeys(params.TakeFromAddresses)
		if err != nil {
			return PreparedTransactionInfo{}, txbuild.TransactionHash{}, err
		}
	}

	totalAmount := sumDestinations(destinations)
	if params.Fee.Kind == FeeFixed {
		totalAmount += params.Fee.Fixed
	}

	available := s.Wallet.GetSpendableTransactionInputs(takeFromAll, takeFrom, currentHeight)

	rate := params.Fee.rate()
	privateViewKey := s.Wallet.PrivateViewKey()

	var (
		inputs         []txbuild.SpendableInput
		sumOfInputs    txbuild.Amount
		accepted       buildResult
		gotResult      bool
		requiredAmount = totalAmount
	)

	for _, in := range available {
		inputs = append(inputs, in)
		sumOfInputs += in.Amount

		if sumOfInputs < totalAmount {
			continue
		}

		changeRequired := sumOfInputs - totalAmount

		if params.Fee.Kind == FeeFixed {
			dests, err := setupDestinations(s.Codec, destinations, changeRequired, changeAddress)
			if err != nil {
				return PreparedTransactionInfo{}, txbuild.TransactionHash{}, err
			}

			built, _, err := txbuild.Build(s.Ops, s.Client, txbuild.BuildParams{
				Inputs: inputs, Destinations: dests, Mixin: params.Mixin,
				UnlockTime: params.UnlockTime, PrivateViewKey: privateViewKey, Extra: extraOpts,
			})
			if err != nil {
				return PreparedTransactionInfo{}, txbuild.TransactionHash{}, err
			}

			minFee := feeForSize(len(built.Transaction.Bytes()), chainparams.MinimumFeePerByteV1)
			if params.Fee.Fixed < minFee {
				return PreparedTransactionInfo{}, txbuild.TransactionHash{}, txbuild.NewError(txbuild.ErrFeeTooSmall)
			}

			accepted = buildResult{result: built, changeRequired: changeRequired, fee: params.Fee.Fixed}
			gotResult = true
			break
		}

		dests, err := setupDestinations(s.Codec, destinations, changeRequired, changeAddress)
		if err != nil {
			return PreparedTransactionInfo{}, txbuild.TransactionHash{}, err
		}

		estimatedSize := estimateTransactionSize(params.Mixin, len(inputs), len(dests), paymentID != "", len(params.ArbitraryData))
		estimatedFee := feeForSize(estimatedSize, rate)

		workingDestinations := destinations
		workingTotal := totalAmount
		if params.SendAll {
			if estimatedFee > destinations[0].Amount {
				return PreparedTransactionInfo{Fee: estimatedFee}, txbuild.TransactionHash{}, txbuild.NewNotEnoughBalance(uint64(estimatedFee))
			}
			workingTotal = totalAmount - estimatedFee
			workingDestinations = withFirstAmount(destinations, destinations[0].Amount-estimatedFee)
		}

		estimatedAmount := workingTotal + estimatedFee
		if sumOfInputs < estimatedAmount {
			requiredAmount = estimatedAmount
			continue
		}

		result, ok, needed, err := attemptFeePerByte(
			s.Ops, s.Client, s.Codec, inputs, sumOfInputs, workingTotal, estimatedFee, rate,
			workingDestinations, changeAddress, params.Mixin, privateViewKey,
			params.UnlockTime, extraOpts, params.SendAll,
		)
		if err != nil {
			return PreparedTransactionInfo{}, txbuild.TransactionHash{}, err
		}
		if !ok {
			requiredAmount = needed
			continue
		}

		accepted = result
		gotResult = true
		break
	}

	if !gotResult {
		return PreparedTransactionInfo{Fee: requiredAmount}, txbuild.TransactionHash{}, txbuild.NewNotEnoughBalance(uint64(requiredAmount))
	}

	if len(accepted.result.Transaction.Bytes()) > int(chainparams.MaxTransactionSize(currentHeight)) {
		return PreparedTransactionInfo{}, txbuild.TransactionHash{}, txbuild.NewErrorContext(
			txbuild.ErrTooManyInputsToFitInBlock, "decrease the amount sent or perform a fusion transaction")
	}

	var inputSum, outputSum txbuild.Amount
	for _, in := range inputs {
		inputSum += in.Amount
	}
	for _, out := range accepted.result.Transaction.Outputs {
		outputSum += out.Amount
	}
	actualFee := inputSum - outputSum
	if actualFee != accepted.fee {
		return PreparedTransactionInfo{}, txbuild.TransactionHash{}, txbuild.NewError(txbuild.ErrUnexpectedFee)
	}

	info := PreparedTransactionInfo{
		Fee:            actualFee,
		PaymentID:      paymentID,
		Inputs:         inputs,
		ChangeAddress:  changeAddress,
		ChangeRequired: accepted.changeRequired,
		TxResult:       accepted.result,
	}

	if !relay {
		info.TransactionHash = accepted.result.Transaction.Hash()
		return info, info.TransactionHash, nil
	}

	hash, err := s.relay(inputs, accepted.result, actualFee, paymentID, changeAddress, accepted.changeRequired)
	info.TransactionHash = hash
	return info, hash, err
}
