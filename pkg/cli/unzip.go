package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/lescientifik/tcia-dl/pkg/usecase"
)

func cmdUnzip() *cli.Command {
	return &cli.Command{
		Name:      "unzip",
		Usage:     "Extract every ZIP archive found under a folder",
		ArgsUsage: "<folder>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			folder := cmd.Args().First()
			if folder == "" {
				return goerr.New("folder argument is required")
			}

			count, err := usecase.ExtractAll(ctx, folder)
			if err != nil {
				return err
			}

			ctxlog.From(ctx).Info("Extraction complete",
				"folder", folder,
				"archives", count,
			)
			return nil
		},
	}
}
