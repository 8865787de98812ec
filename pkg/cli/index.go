package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/lescientifik/tcia-dl/pkg/domain/model"
	"github.com/lescientifik/tcia-dl/pkg/infra/dicomfile"
	"github.com/lescientifik/tcia-dl/pkg/usecase"
)

func cmdIndex() *cli.Command {
	var (
		outPath    string
		jobs       int
		withFilter bool
	)

	return &cli.Command{
		Name:      "index",
		Usage:     "Build a CSV database of DICOM header metadata",
		ArgsUsage: "<folder>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Usage:       "Destination CSV path (default: <folder>/metadatas.csv)",
				Destination: &outPath,
				Sources:     cli.EnvVars("TCIA_DL_INDEX_OUT"),
			},
			&cli.IntFlag{
				Name:        "jobs",
				Aliases:     []string{"j"},
				Usage:       "Number of concurrent header readers",
				Value:       model.DefaultIndexJobs,
				Destination: &jobs,
				Sources:     cli.EnvVars("TCIA_DL_INDEX_JOBS"),
			},
			&cli.BoolFlag{
				Name:        "filter",
				Usage:       "Add a keep column from the slice filters",
				Destination: &withFilter,
				Sources:     cli.EnvVars("TCIA_DL_INDEX_FILTER"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			root := cmd.Args().First()
			if root == "" {
				return goerr.New("folder argument is required")
			}

			report, err := usecase.NewIndex(dicomfile.NewReader()).BuildIndex(ctx, &model.IndexRequest{
				Root:       root,
				OutPath:    outPath,
				Jobs:       jobs,
				WithFilter: withFilter,
			})
			if err != nil {
				return err
			}

			ctxlog.From(ctx).Info("Index complete",
				"csv", report.OutPath,
				"indexed", report.Indexed,
				"skipped", report.Skipped,
			)
			return nil
		},
	}
}
