package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"cow-registry/internal/app"
	"cow-registry/internal/domain/cows"
	"cow-registry/internal/ports/contentstore"

	"github.com/urfave/cli/v2"
)

var mediaCmd = &cli.Command{
	Name:  "media",
	Usage: "cow media on IPFS",
	Subcommands: []*cli.Command{
		mediaUploadCmd,
	},
}

var mediaUploadCmd = &cli.Command{
	Name:  "upload",
	Usage: "store a file on IPFS and link it to a cow (setCowURI)",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "cow", Required: true},
		&cli.PathFlag{Name: "file", Required: true},
	},
	Action: func(cctx *cli.Context) error {
		path := cctx.Path("file")
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		return withApp(cctx, func(ctx context.Context, a *app.App) error {
			res, err := a.Commands.Upload(ctx, cows.UploadInput{
				CowID:    cctx.String("cow"),
				Filename: filepath.Base(path),
				File:     f,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cctx.App.Writer, "Cid: ", res.ContentHash)
			fmt.Fprintln(cctx.App.Writer, "URL: ", contentstore.GatewayURL(a.Config.Content.GatewayURL, res.ContentHash))
			fmt.Fprintln(cctx.App.Writer, "Tx: ", res.Tx.Hash)
			return nil
		})
	},
}
