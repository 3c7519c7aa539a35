package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-errors/errors"
	"github.com/urfave/cli"

	"github.com/zentcash/zentwallet/keys"
	"github.com/zentcash/zentwallet/sendtx"
)

var sendCommand = cli.Command{
	Name:      "send",
	Category:  "Transactions",
	Usage:     "Build, sign, and relay a transaction.",
	ArgsUsage: "primary-spend:view private-view-hex address:amount [address:amount...]",
	Flags:     []cli.Flag{mixinFlag},
	Action:    send,
}

func send(ctx *cli.Context) error {
	args := ctx.Args()
	if len(args) < 3 {
		return cli.ShowCommandHelp(ctx, "send")
	}

	primaryAddress := args.Get(0)

	privateViewKey, err := parseSecretKeyArg(args.Get(1))
	if err != nil {
		return err
	}

	destinations, err := parseDestinationArgs(args[2:])
	if err != nil {
		return err
	}

	s, err := newSender(ctx, primaryAddress, privateViewKey, hexPairCodec{})
	if err != nil {
		return err
	}

	hash, err := s.Send(sendtx.Params{
		Destinations: destinations,
		Mixin:        ctx.Uint64(mixinFlag.Name),
		Fee:          sendtx.Minimum(),
	})
	if err != nil {
		return errors.Wrap(err, 1)
	}

	fmt.Println(hash.String())
	return nil
}

func parseSecretKeyArg(s string) (keys.SecretKey, error) {
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 32 {
		return keys.SecretKey{}, fmt.Errorf("invalid secret key %q", s)
	}
	var out keys.SecretKey
	copy(out[:], raw)
	return out, nil
}

func parseDestinationArgs(raw []string) ([]sendtx.AddressAmount, error) {
	out := make([]sendtx.AddressAmount, 0, len(raw))
	for _, arg := range raw {
		idx := strings.LastIndex(arg, ":")
		if idx < 0 {
			return nil, fmt.Errorf("destination %q is not address:amount", arg)
		}

		amount, err := strconv.ParseUint(arg[idx+1:], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("destination %q: invalid amount: %w", arg, err)
		}

		out = append(out, sendtx.AddressAmount{Address: arg[:idx], Amount: amount})
	}
	return out, nil
}
