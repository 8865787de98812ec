package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/lescientifik/tcia-dl/pkg/cli/config"
	"github.com/lescientifik/tcia-dl/pkg/domain/model"
	"github.com/lescientifik/tcia-dl/pkg/infra/tcia"
	"github.com/lescientifik/tcia-dl/pkg/usecase"
	"github.com/lescientifik/tcia-dl/pkg/utils/fsutil"
)

func cmdDownload() *cli.Command {
	var (
		downloadCfg config.Download
		tciaCfg     config.TCIA
		configPath  string
	)

	flags := append(downloadCfg.Flags(), tciaCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to a TOML config file with download defaults",
		Destination: &configPath,
		Sources:     cli.EnvVars("TCIA_DL_CONFIG"),
	})

	return &cli.Command{
		Name:    "download",
		Aliases: []string{"dl"},
		Usage:   "Download every series of a TCIA manifest and extract the archives",
		Flags:   flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := ctxlog.From(ctx)

			if configPath != "" {
				fileCfg, err := config.LoadFile(configPath)
				if err != nil {
					return err
				}
				if err := fileCfg.Apply(cmd, &tciaCfg, &downloadCfg); err != nil {
					return err
				}
			}

			if err := fsutil.MkdirSafe(downloadCfg.Out); err != nil {
				return err
			}

			// tee the logs into a run log inside the destination directory
			logPath := filepath.Join(downloadCfg.Out, time.Now().Format("20060102_1504")+"_log.jsonl")
			logFile, err := os.Create(logPath)
			if err != nil {
				return goerr.Wrap(err, "failed to create run log file", goerr.V("path", logPath))
			}
			defer logFile.Close()

			runID := uuid.NewString()
			logger = slog.New(config.Tee(
				logger.Handler(),
				config.NewJSONHandler(logFile, slog.LevelDebug, tciaCfg.APIKey),
			)).With(slog.String("run_id", runID))
			ctx = ctxlog.With(ctx, logger)

			logger.Info("Starting tcia-dl",
				slog.String("manifest", downloadCfg.Manifest),
				slog.String("out", downloadCfg.Out),
				slog.String("log_file", logPath),
			)

			client := tcia.New(
				tcia.WithEndpoint(tciaCfg.Endpoint),
				tcia.WithAPIKey(tciaCfg.APIKey),
				tcia.WithTimeout(tciaCfg.Timeout),
			)

			report, err := usecase.NewDownload(client).Run(ctx, &model.DownloadRequest{
				RunID:        runID,
				ManifestPath: downloadCfg.Manifest,
				OutDir:       downloadCfg.Out,
				Workers:      downloadCfg.Workers,
				KeepArchive:  downloadCfg.KeepArchive,
			})
			if err != nil {
				return err
			}

			printSummary(report)

			if failed := report.Failed(); failed > 0 {
				return goerr.New("some series failed to download",
					goerr.V("failed", failed),
					goerr.V("run_id", report.RunID),
				)
			}
			return nil
		},
	}
}

// printSummary writes a human readable run summary to stdout
func printSummary(report *model.RunReport) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Printf("\n%s series downloaded to %s (%d bytes in %s)\n",
		green(report.Succeeded()),
		report.OutDir,
		report.TotalBytes(),
		report.Duration.Round(time.Millisecond),
	)

	if report.Failed() == 0 {
		return
	}

	fmt.Printf("%s series failed:\n", red(report.Failed()))
	for _, result := range report.Results {
		if result.Err != nil {
			fmt.Printf("  %s  %s: %v\n", red("✗"), result.SeriesUID, result.Err)
		}
	}
}
