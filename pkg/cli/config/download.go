package config

import (
	"github.com/urfave/cli/v3"

	"github.com/lescientifik/tcia-dl/pkg/domain/model"
)

// Download holds download command configuration
type Download struct {
	Manifest    string
	Out         string
	Workers     int
	KeepArchive bool
}

// Flags returns CLI flags for download configuration
func (c *Download) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "manifest",
			Aliases:     []string{"m"},
			Usage:       "Path to the TCIA manifest file (*.tcia)",
			Required:    true,
			Destination: &c.Manifest,
			Sources:     cli.EnvVars("TCIA_DL_MANIFEST"),
		},
		&cli.StringFlag{
			Name:        "out",
			Aliases:     []string{"o"},
			Usage:       "Directory to download the series into (must be new or empty)",
			Required:    true,
			Destination: &c.Out,
			Sources:     cli.EnvVars("TCIA_DL_OUT"),
		},
		&cli.IntFlag{
			Name:        "workers",
			Usage:       "Number of concurrent series downloads",
			Value:       model.DefaultWorkers,
			Destination: &c.Workers,
			Sources:     cli.EnvVars("TCIA_DL_WORKERS"),
		},
		&cli.BoolFlag{
			Name:        "keep-archive",
			Usage:       "Keep the .zip archives after extraction",
			Destination: &c.KeepArchive,
			Sources:     cli.EnvVars("TCIA_DL_KEEP_ARCHIVE"),
		},
	}
}
