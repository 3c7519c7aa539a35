package txbuild

import (
	"sort"

	"github.com/zentcash/zentwallet/daemon"
)

// AssembleRings implements component B. It requests mixin+1 decoys per
// distinct amount from the node in one call (one extra so the real
// output can be excluded from the candidate set), groups them by
// amount, and merges each real output into sorted position.
func AssembleRings(client daemon.Client, inputs []SpendableInput, mixin uint64) ([]ObscuredInput, error) {
	if mixin == 0 {
		return assembleSelfOnlyRings(inputs), nil
	}

	amounts := distinctAmounts(inputs)

	ok, perAmount, err := client.GetRandomOutsByAmounts(amounts, mixin+1)
	if err != nil {
		return nil, NewErrorContext(ErrDaemonOffline, err.Error())
	}
	if !ok {
		return nil, NewErrorContext(ErrDaemonOffline, "node rejected get_random_outs request")
	}

	decoysByAmount := make(map[Amount][]daemon.Out, len(perAmount))
	for _, group := range perAmount {
		if uint64(len(group.Outs)) < mixin {
			return nil, NewErrorContext(ErrNotEnoughFakeOutputs, "not enough fake outputs for requested amount")
		}
		decoysByAmount[group.Amount] = group.Outs
	}
	for _, a := range amounts {
		if _, ok := decoysByAmount[a]; !ok {
			return nil, NewErrorContext(ErrNotEnoughFakeOutputs, "node returned no fake outputs for requested amount")
		}
	}

	obscured := make([]ObscuredInput, len(inputs))
	for i, in := range inputs {
		decoys := decoysByAmount[in.Amount]
		if uint64(len(decoys)) < mixin {
			return nil, NewErrorContext(ErrNotEnoughFakeOutputs, "not enough fake outputs for requested amount")
		}

		members := make([]RingMember, 0, mixin+1)
		for _, d := range decoys {
			if d.GlobalAmountIndex == in.GlobalOutputIndex {
				continue
			}
			members = append(members, RingMember{GlobalIndex: d.GlobalAmountIndex, OneTimePublicKey: d.OutKey})
			if uint64(len(members)) == mixin {
				break
			}
		}
		if uint64(len(members)) < mixin {
			return nil, NewErrorContext(ErrNotEnoughFakeOutputs, "not enough distinct fake outputs for requested amount")
		}

		members = append(members, RingMember{GlobalIndex: in.GlobalOutputIndex, OneTimePublicKey: in.OneTimePublicKey})
		sort.Slice(members, func(a, b int) bool { return members[a].GlobalIndex < members[b].GlobalIndex })

		realPos := 0
		for idx, m := range members {
			if m.GlobalIndex == in.GlobalOutputIndex {
				realPos = idx
				break
			}
		}

		obscured[i] = ObscuredInput{
			Outputs:              members,
			RealOutputPosition:   realPos,
			RealTxPublicKey:      in.TxPublicKey,
			RealOutputTxIndex:    in.IndexWithinTx,
			Amount:               in.Amount,
			OwnerPublicSpendKey:  in.OwnerPublicSpendKey,
			OwnerPrivateSpendKey: in.OwnerPrivateSpendKey,
			KeyImage:             in.KeyImage,
			PrivateEphemeral:     in.PrivateEphemeral,
		}
	}

	return obscured, nil
}

func assembleSelfOnlyRings(inputs []SpendableInput) []ObscuredInput {
	obscured := make([]ObscuredInput, len(inputs))
	for i, in := range inputs {
		obscured[i] = ObscuredInput{
			Outputs: []RingMember{
				{GlobalIndex: in.GlobalOutputIndex, OneTimePublicKey: in.OneTimePublicKey},
			},
			RealOutputPosition:   0,
			RealTxPublicKey:      in.TxPublicKey,
			RealOutputTxIndex:    in.IndexWithinTx,
			Amount:               in.Amount,
			OwnerPublicSpendKey:  in.OwnerPublicSpendKey,
			OwnerPrivateSpendKey: in.OwnerPrivateSpendKey,
			KeyImage:             in.KeyImage,
			PrivateEphemeral:     in.PrivateEphemeral,
		}
	}
	return obscured
}

func distinctAmounts(inputs []SpendableInput) []Amount {
	seen := make(map[Amount]struct{}, len(inputs))
	var amounts []Amount
	for _, in := range inputs {
		if _, ok := seen[in.Amount]; ok {
			continue
		}
		seen[in.Amount] = struct{}{}
		amounts = append(amounts, in.Amount)
	}
	return amounts
}
