package main

import (
	"context"
	"fmt"

	"cow-registry/internal/app"

	"github.com/urfave/cli/v2"
)

var adminCmd = &cli.Command{
	Name:  "admin",
	Usage: "contract administrator (Ownable)",
	Subcommands: []*cli.Command{
		adminShowCmd,
		adminTransferCmd,
	},
}

var adminShowCmd = &cli.Command{
	Name:  "show",
	Usage: "show the contract administrator",
	Action: func(cctx *cli.Context) error {
		return withApp(cctx, func(ctx context.Context, a *app.App) error {
			admin, err := a.Registry.Admin(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cctx.App.Writer, admin)
			return nil
		})
	},
}

var adminTransferCmd = &cli.Command{
	Name:  "transfer",
	Usage: "hand contract administration to another address (transferOwnership)",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "to", Required: true},
	},
	Action: func(cctx *cli.Context) error {
		return withApp(cctx, func(ctx context.Context, a *app.App) error {
			from, err := a.Accounts.ActiveAccount(ctx)
			if err != nil {
				return err
			}
			tx, err := a.Registry.TransferAdmin(ctx, from, cctx.String("to"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cctx.App.Writer, "Tx: ", tx.Hash)
			return nil
		})
	},
}
