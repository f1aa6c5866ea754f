package main

import (
	"context"
	"fmt"
	"os"

	"cow-registry/internal/app"
	"cow-registry/internal/middleware"
	"cow-registry/internal/platform/config"
	"cow-registry/internal/platform/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
)

const (
	FlagConfig  = "config"
	FlagAccount = "account"
)

const metaOptions = "app-options"

func main() {
	if err := newCLI(app.Options{}).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newCLI arma el cli.App. base se pasa a app.New en cada comando (en tests,
// backends compartidos entre corridas).
func newCLI(base app.Options) *cli.App {
	return &cli.App{
		Name:  "cowctl",
		Usage: "command line client for the CowOwnership registry",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    FlagConfig,
				Usage:   "config file path",
				EnvVars: []string{"CONFIG_FILE"},
				Value:   config.DefaultConfigFile,
			},
			&cli.StringFlag{
				Name:  FlagAccount,
				Usage: "sender/owner account; defaults to the provider's first account",
			},
		},
		Commands: []*cli.Command{
			cowsCmd,
			mediaCmd,
			ownerCmd,
			countCmd,
			adminCmd,
		},
		Metadata: map[string]interface{}{metaOptions: base},
	}
}

// withApp carga config, arma la App y corre fn. --account fija la cuenta activa.
func withApp(cctx *cli.Context, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load(cctx.String(FlagConfig))
	if err != nil {
		return err
	}

	opts, _ := cctx.App.Metadata[metaOptions].(app.Options)
	if opts.Logger == nil {
		opts.Logger = logger.New(logger.Options{
			Level:  logger.ParseLevel(cfg.Log.Level),
			Format: logger.ParseFormat(cfg.Log.Format),
			App:    "cowctl",
			Out:    cctx.App.ErrWriter,
		})
	}

	ctx := cctx.Context
	if acc := cctx.String(FlagAccount); acc != "" {
		if !common.IsHexAddress(acc) {
			return fmt.Errorf("invalid account %q", acc)
		}
		ctx = middleware.WithAccount(ctx, common.HexToAddress(acc).Hex())
	}

	a, err := app.New(ctx, cfg, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

// ownerOrActive devuelve --owner si vino; si no, la cuenta activa.
func ownerOrActive(ctx context.Context, cctx *cli.Context, a *app.App) (string, error) {
	if o := cctx.String("owner"); o != "" {
		return o, nil
	}
	return a.Accounts.ActiveAccount(ctx)
}
