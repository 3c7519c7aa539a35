package main

import (
	"fmt"

	"github.com/go-errors/errors"
	"github.com/urfave/cli"

	"github.com/zentcash/zentwallet/sendtx"
)

var prepareCommand = cli.Command{
	Name:     "prepare",
	Category: "Transactions",
	Usage: "Build and sign a transaction without relaying it, then relay it " +
		"immediately — demonstrating the prepare/send-prepared split within " +
		"one process, since persisting a prepared transaction across separate " +
		"CLI invocations needs a serialization format this core doesn't define.",
	ArgsUsage: "primary-address private-view-hex address:amount [address:amount...]",
	Flags:     []cli.Flag{mixinFlag},
	Action:    prepare,
}

func prepare(ctx *cli.Context) error {
	args := ctx.Args()
	if len(args) < 3 {
		return cli.ShowCommandHelp(ctx, "prepare")
	}

	privateViewKey, err := parseSecretKeyArg(args.Get(1))
	if err != nil {
		return err
	}

	destinations, err := parseDestinationArgs(args[2:])
	if err != nil {
		return err
	}

	s, err := newSender(ctx, args.Get(0), privateViewKey, hexPairCodec{})
	if err != nil {
		return err
	}

	info, err := s.Prepare(sendtx.Params{
		Destinations: destinations,
		Mixin:        ctx.Uint64(mixinFlag.Name),
		Fee:          sendtx.Minimum(),
	})
	if err != nil {
		return errors.Wrap(err, 1)
	}
	fmt.Printf("prepared %s, fee %d, inputs %d\n", info.TransactionHash, info.Fee, len(info.Inputs))

	hash, err := s.SendPrepared(info)
	if err != nil {
		return errors.Wrap(err, 1)
	}
	fmt.Println(hash.String())
	return nil
}
