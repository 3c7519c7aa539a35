package sendtx

import (
	"github.com/zentcash/zentwallet/chainparams"
	"github.com/zentcash/zentwallet/keys"
	"github.com/zentcash/zentwallet/txbuild"
)

// AddressAmount pairs a base58 destination address with an atomic-unit
// amount — the caller-facing destination shape, resolved to key
// material via the address codec before a build attempt.
type AddressAmount struct {
	Address string
	Amount  txbuild.Amount
}

func sumDestinations(destinations []AddressAmount) txbuild.Amount {
	var sum txbuild.Amount
	for _, d := range destinations {
		sum += d.Amount
	}
	return sum
}

// withFirstAmount returns a copy of destinations with the first
// element's amount replaced; used by the send-all fee adjustment, which
// must never mutate the caller's slice.
func withFirstAmount(destinations []AddressAmount, amount txbuild.Amount) []AddressAmount {
	out := make([]AddressAmount, len(destinations))
	copy(out, destinations)
	out[0].Amount = amount
	return out
}

// resolveIntegratedAddresses rewrites any integrated address in
// destinations to its base address, returning the payment ID embedded
// in the last one found. Validating that multiple integrated addresses
// don't carry conflicting payment IDs is the caller's job; this only
// performs the substitution spec.md §4.E's extra-field builder and the
// fee loop depend on.
func resolveIntegratedAddresses(codec keys.AddressCodec, destinations []AddressAmount, paymentID string) ([]AddressAmount, string, error) {
	out := make([]AddressAmount, len(destinations))
	for i, d := range destinations {
		if len(d.Address) != chainparams.IntegratedAddressLength {
			out[i] = d
			continue
		}

		base, extractedPaymentID, err := codec.ExtractIntegratedAddressData(d.Address)
		if err != nil {
			return nil, "", err
		}

		out[i] = AddressAmount{Address: base, Amount: d.Amount}
		paymentID = extractedPaymentID
	}
	return out, paymentID, nil
}

// setupDestinations resolves each address to its receiver keys, appends
// a change destination when changeRequired is nonzero, and decomposes
// every amount into canonical denominations (component A) — the final
// txbuild.Destination list the build pipeline consumes.
func setupDestinations(codec keys.AddressCodec, destinations []AddressAmount, changeRequired txbuild.Amount, changeAddress string) ([]txbuild.Destination, error) {
	all := destinations
	if changeRequired != 0 {
		all = make([]AddressAmount, 0, len(destinations)+1)
		all = append(all, destinations...)
		all = append(all, AddressAmount{Address: changeAddress, Amount: changeRequired})
	}

	var out []txbuild.Destination
	for _, d := range all {
		spend, view, err := codec.AddressToKeys(d.Address)
		if err != nil {
			return nil, err
		}

		denominations, err := txbuild.SplitAmountIntoDenominations(d.Amount, true)
		if err != nil {
			return nil, err
		}

		for _, amount := range denominations {
			out = append(out, txbuild.Destination{
				ReceiverPublicSpendKey: spend,
				ReceiverPublicViewKey:  view,
				Amount:                 amount,
			})
		}
	}

	return out, nil
}
