package sendtx

import (
	"github.com/zentcash/zentwallet/chainparams"
	"github.com/zentcash/zentwallet/keys"
	"github.com/zentcash/zentwallet/txbuild"
)

// FusionParams describes a consolidation send: no destination amount,
// no fee, no change — just input count reduction (spec.md §4.G fusion
// variant).
type FusionParams struct {
	Mixin              uint64
	TakeFromAddresses  []string
	DestinationAddress string
}

// SendFusion builds, signs, and relays a fusion transaction: it repeatedly
// selects the largest eligible input set, shrinking it by one input at a
// time until the in/out count ratio and max-size constraints are both
// satisfied, then relays with zero fee and no change output. Grounded on
// sendFusionTransactionAdvanced.
func (s *Sender) SendFusion(params FusionParams) (txbuild.TransactionHash, error) {
	currentHeight, err := s.Client.NetworkBlockCount()
	if err != nil {
		return txbuild.TransactionHash{}, txbuild.NewErrorContext(txbuild.ErrDaemonOffline, err.Error())
	}

	destinationAddress := params.DestinationAddress
	if destinationAddress == "" {
		destinationAddress = s.Wallet.PrimaryAddress()
	}

	takeFromAll := len(params.TakeFromAddresses) == 0
	var takeFrom []keys.PublicKey
	if !takeFromAll {
		takeFrom, err = s.Codec.AddressesToSpendKeys(params.TakeFromAddresses)
		if err != nil {
			return txbuild.TransactionHash{}, err
		}
	}

	fusionInputs := s.Wallet.GetFusionTransactionInputs(takeFromAll, takeFrom, params.Mixin, currentHeight, nil)
	if len(fusionInputs.Inputs) < chainparams.FusionTxMinInputCount {
		return txbuild.TransactionHash{}, txbuild.NewError(txbuild.ErrFullyOptimized)
	}
	if fusionInputs.MaxInputsPossible < chainparams.FusionTxMinInputCount {
		return txbuild.TransactionHash{}, txbuild.NewError(txbuild.ErrFusionMixinTooLarge)
	}

	destSpend, destView, err := s.Codec.AddressToKeys(destinationAddress)
	if err != nil {
		return txbuild.TransactionHash{}, err
	}

	privateViewKey := s.Wallet.PrivateViewKey()
	inputs := fusionInputs.Inputs

	for {
		if len(inputs) < chainparams.FusionTxMinInputCount {
			return txbuild.TransactionHash{}, txbuild.NewError(txbuild.ErrFullyOptimized)
		}

		var foundMoney txbuild.Amount
		for _, in := range inputs {
			foundMoney += in.Amount
		}

		denominations, err := txbuild.SplitAmountIntoDenominations(foundMoney, false)
		if err != nil {
			return txbuild.TransactionHash{}, err
		}

		if len(inputs)/len(denominations) < chainparams.FusionTxMinInOutCountRatio {
			inputs = inputs[:len(inputs)-1]
			continue
		}

		destinations := make([]txbuild.Destination, 0, len(denominations))
		for _, amount := range denominations {
			destinations = append(destinations, txbuild.Destination{
				ReceiverPublicSpendKey: destSpend,
				ReceiverPublicViewKey:  destView,
				Amount:                 amount,
			})
		}

		result, _, err := txbuild.Build(s.Ops, s.Client, txbuild.BuildParams{
			Inputs:         inputs,
			Destinations:   destinations,
			Mixin:          params.Mixin,
			PrivateViewKey: privateViewKey,
		})
		if err != nil {
			return txbuild.TransactionHash{}, err
		}

		if len(result.Transaction.Bytes()) > chainparams.FusionTxMaxSize {
			inputs = inputs[:len(inputs)-1]
			continue
		}

		return s.relay(inputs, result, 0, "", "", 0)
	}
}
