package main

import (
	"fmt"

	"github.com/go-errors/errors"
	"github.com/urfave/cli"

	"github.com/zentcash/zentwallet/sendtx"
)

var fusionCommand = cli.Command{
	Name:      "fusion",
	Category:  "Transactions",
	Usage:     "Consolidate inputs into a single fusion transaction.",
	ArgsUsage: "primary-address private-view-hex",
	Flags:     []cli.Flag{mixinFlag},
	Action:    fusion,
}

func fusion(ctx *cli.Context) error {
	args := ctx.Args()
	if len(args) != 2 {
		return cli.ShowCommandHelp(ctx, "fusion")
	}

	privateViewKey, err := parseSecretKeyArg(args.Get(1))
	if err != nil {
		return err
	}

	s, err := newSender(ctx, args.Get(0), privateViewKey, hexPairCodec{})
	if err != nil {
		return err
	}

	hash, err := s.SendFusion(sendtx.FusionParams{Mixin: ctx.Uint64(mixinFlag.Name)})
	if err != nil {
		return errors.Wrap(err, 1)
	}

	fmt.Println(hash.String())
	return nil
}
