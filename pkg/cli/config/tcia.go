package config

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/lescientifik/tcia-dl/pkg/domain/types"
)

// TCIA holds TCIA API client configuration
type TCIA struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// Flags returns CLI flags for TCIA client configuration
func (c *TCIA) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "endpoint",
			Usage:       "TCIA getImage endpoint URL",
			Value:       types.DefaultEndpoint,
			Destination: &c.Endpoint,
			Sources:     cli.EnvVars("TCIA_DL_ENDPOINT"),
		},
		&cli.StringFlag{
			Name:        "api-key",
			Usage:       "NBIA API key for restricted collections",
			Destination: &c.APIKey,
			Sources:     cli.EnvVars("TCIA_DL_API_KEY"),
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Per-series download timeout",
			Value:       15 * time.Minute,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("TCIA_DL_TIMEOUT"),
		},
	}
}
