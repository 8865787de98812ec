package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// FileConfig is the optional TOML configuration file with defaults for the
// download command. Command line flags and environment variables win over
// file values.
type FileConfig struct {
	Endpoint string `toml:"endpoint"`
	APIKey   string `toml:"api_key"`
	Workers  int    `toml:"workers"`
	Timeout  string `toml:"timeout"`
}

// LoadFile reads and parses a TOML configuration file
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var cfg FileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}
	return &cfg, nil
}

// Apply copies file values into the configs for every flag the user did
// not set explicitly
func (f *FileConfig) Apply(cmd *cli.Command, tciaCfg *TCIA, downloadCfg *Download) error {
	if f.Endpoint != "" && !cmd.IsSet("endpoint") {
		tciaCfg.Endpoint = f.Endpoint
	}
	if f.APIKey != "" && !cmd.IsSet("api-key") {
		tciaCfg.APIKey = f.APIKey
	}
	if f.Workers > 0 && !cmd.IsSet("workers") {
		downloadCfg.Workers = f.Workers
	}
	if f.Timeout != "" && !cmd.IsSet("timeout") {
		timeout, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return goerr.Wrap(err, "invalid timeout in config file", goerr.V("timeout", f.Timeout))
		}
		tciaCfg.Timeout = timeout
	}
	return nil
}
