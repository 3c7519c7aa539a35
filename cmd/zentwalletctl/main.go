// Command zentwalletctl is a thin command-line front end over the
// transaction construction core: it wires the node RPC client, the
// in-memory subwallet container, and the curve primitives together into
// a sendtx.Sender, the same wiring shape degeri-dcrlnd's dcrlncli gives
// its RPC clients.
package main

import (
	"fmt"
	"os"

	"github.com/decred/dcrd/rpcclient/v7"
	"github.com/decred/slog"
	"github.com/go-errors/errors"
	"github.com/urfave/cli"

	zentwallet "github.com/zentcash/zentwallet"
	"github.com/zentcash/zentwallet/daemon"
	"github.com/zentcash/zentwallet/keys"
	"github.com/zentcash/zentwallet/primitives"
	"github.com/zentcash/zentwallet/sendtx"
	"github.com/zentcash/zentwallet/subwallet"
)

var (
	rpcServerFlag = cli.StringFlag{Name: "rpcserver", Value: "127.0.0.1:11898", Usage: "host:port of the node's JSON-RPC interface"}
	rpcUserFlag   = cli.StringFlag{Name: "rpcuser", Usage: "node RPC username"}
	rpcPassFlag   = cli.StringFlag{Name: "rpcpass", Usage: "node RPC password"}
	mixinFlag     = cli.Uint64Flag{Name: "mixin", Value: 3, Usage: "ring size minus one"}
)

func main() {
	app := cli.NewApp()
	app.Name = "zentwalletctl"
	app.Usage = "build, sign, and relay transactions against a running node"
	app.Flags = []cli.Flag{rpcServerFlag, rpcUserFlag, rpcPassFlag}
	app.Commands = []cli.Command{sendCommand, fusionCommand, prepareCommand}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, 1).Error())
		os.Exit(1)
	}
}

// newSender dials the node and builds a Sender over an empty in-memory
// subwallet container seeded with the given keys. A real deployment
// would instead restore the container's input set from a wallet file;
// that persistence format is out of scope here (see keys.AddressCodec's
// doc comment), so this CLI only demonstrates the wiring.
func newSender(ctx *cli.Context, primaryAddress string, privateViewKey keys.SecretKey, codec keys.AddressCodec) (*sendtx.Sender, error) {
	cfg := &rpcclient.ConnConfig{
		Host:         ctx.GlobalString(rpcServerFlag.Name),
		User:         ctx.GlobalString(rpcUserFlag.Name),
		Pass:         ctx.GlobalString(rpcPassFlag.Name),
		HTTPPostMode: true,
		DisableTLS:   true,
	}

	rpc, err := rpcclient.New(cfg, nil)
	if err != nil {
		return nil, errors.Errorf("connect to node: %v", err)
	}

	backend := slog.NewBackend(os.Stderr)
	zentwallet.SetupLoggers(backend, slog.LevelInfo)

	return &sendtx.Sender{
		Ops:    primitives.Ed25519Ops{},
		Client: daemon.NewRPCClient(rpc),
		Wallet: subwallet.NewMemoryContainer(primaryAddress, privateViewKey),
		Codec:  codec,
	}, nil
}
