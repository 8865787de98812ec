package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/lescientifik/tcia-dl/pkg/domain/model"
)

func cmdManifest() *cli.Command {
	var manifestPath string

	return &cli.Command{
		Name:  "manifest",
		Usage: "Print the series UIDs listed in a TCIA manifest",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "manifest",
				Aliases:     []string{"m"},
				Usage:       "Path to the TCIA manifest file (*.tcia)",
				Required:    true,
				Destination: &manifestPath,
				Sources:     cli.EnvVars("TCIA_DL_MANIFEST"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			file, err := os.Open(manifestPath)
			if err != nil {
				return goerr.Wrap(err, "failed to open manifest", goerr.V("manifest", manifestPath))
			}
			defer file.Close()

			manifest, err := model.ParseManifest(file)
			if err != nil {
				return err
			}

			for _, uid := range manifest.Series {
				fmt.Println(uid)
			}

			ctxlog.From(ctx).Debug("Manifest parsed",
				"manifest", manifestPath,
				"series_count", len(manifest.Series),
			)
			return nil
		},
	}
}
