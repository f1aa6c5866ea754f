package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"cow-registry/internal/app"
	"cow-registry/internal/domain/cows"
	"cow-registry/internal/view"

	"github.com/urfave/cli/v2"
)

var cowsCmd = &cli.Command{
	Name:  "cows",
	Usage: "cow records",
	Subcommands: []*cli.Command{
		cowsListCmd,
		cowsBirthCmd,
	},
}

var cowsListCmd = &cli.Command{
	Name:  "list",
	Usage: "list cows owned by an account",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "owner", Usage: "owner address; defaults to the active account"},
	},
	Action: func(cctx *cli.Context) error {
		return withApp(cctx, func(ctx context.Context, a *app.App) error {
			owner, err := ownerOrActive(ctx, cctx, a)
			if err != nil {
				return err
			}

			res, err := a.Sync.Collect(ctx, owner)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cctx.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NUMBER\tTYPE\tSEX\tMOM\tBIRTH\tMEDIA")
			for _, c := range res.Cows {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
					c.Number, c.Type, c.Sex, c.Mom, c.BirthDate.Format(view.DateLayout), c.MediaURL)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			for _, f := range res.Failures {
				fmt.Fprintf(cctx.App.ErrWriter, "cow %d: %v\n", f.Number, f.Err)
			}
			return nil
		})
	},
}

var cowsBirthCmd = &cli.Command{
	Name:  "birth",
	Usage: "record a birth (cowBirth) from the active account",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "mom", Usage: "mother's cow number (0 = none)", Value: "0"},
		&cli.StringFlag{Name: "type", Usage: "category label", Required: true},
		&cli.StringFlag{Name: "sex", Usage: "sex label", Required: true},
	},
	Action: func(cctx *cli.Context) error {
		return withApp(cctx, func(ctx context.Context, a *app.App) error {
			tx, err := a.Commands.Create(ctx, cows.BirthInput{
				Mom:  cctx.String("mom"),
				Type: cctx.String("type"),
				Sex:  cctx.String("sex"),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cctx.App.Writer, a.Status.Current().Text)
			fmt.Fprintln(cctx.App.Writer, "Cow: ", tx.CowNumber)
			fmt.Fprintln(cctx.App.Writer, "Tx: ", tx.Hash)
			return nil
		})
	},
}

var ownerCmd = &cli.Command{
	Name:  "owner",
	Usage: "show the owner of a cow",
	Flags: []cli.Flag{
		&cli.Uint64Flag{Name: "cow", Required: true},
	},
	Action: func(cctx *cli.Context) error {
		return withApp(cctx, func(ctx context.Context, a *app.App) error {
			owner, err := a.Registry.OwnerByCow(ctx, cctx.Uint64("cow"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cctx.App.Writer, owner)
			return nil
		})
	},
}

var countCmd = &cli.Command{
	Name:  "count",
	Usage: "count cows owned by an account",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "owner", Usage: "owner address; defaults to the active account"},
	},
	Action: func(cctx *cli.Context) error {
		return withApp(cctx, func(ctx context.Context, a *app.App) error {
			owner, err := ownerOrActive(ctx, cctx, a)
			if err != nil {
				return err
			}
			n, err := a.Registry.CountByOwner(ctx, owner)
			if err != nil {
				return err
			}
			fmt.Fprintln(cctx.App.Writer, n)
			return nil
		})
	},
}
