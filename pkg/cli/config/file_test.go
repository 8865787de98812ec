package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"

	"github.com/lescientifik/tcia-dl/pkg/cli/config"
)

// newTestCommand returns a command with no flags parsed, so IsSet reports
// false for every name
func newTestCommand() *cli.Command {
	return &cli.Command{}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tcia-dl.toml")
	content := `endpoint = "https://example.com/getImage"
api_key = "file-key"
workers = 3
timeout = "5m"
`
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.LoadFile(path)
	gt.NoError(t, err)
	gt.String(t, cfg.Endpoint).Equal("https://example.com/getImage")
	gt.String(t, cfg.APIKey).Equal("file-key")
	gt.Number(t, cfg.Workers).Equal(3)
	gt.String(t, cfg.Timeout).Equal("5m")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := config.LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	gt.Error(t, err)
}

func TestLoadFile_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.toml")
	gt.NoError(t, os.WriteFile(path, []byte("workers = [not toml"), 0o644))

	_, err := config.LoadFile(path)
	gt.Error(t, err)
}

func TestFileConfig_Apply_ParsesTimeout(t *testing.T) {
	fileCfg := &config.FileConfig{Timeout: "2h"}
	tciaCfg := &config.TCIA{Timeout: 15 * time.Minute}
	downloadCfg := &config.Download{}

	// no flags were parsed, so nothing is explicitly set
	gt.NoError(t, fileCfg.Apply(newTestCommand(), tciaCfg, downloadCfg))
	gt.Value(t, tciaCfg.Timeout).Equal(2 * time.Hour)
}

func TestFileConfig_Apply_InvalidTimeout(t *testing.T) {
	fileCfg := &config.FileConfig{Timeout: "soon"}
	gt.Error(t, fileCfg.Apply(newTestCommand(), &config.TCIA{}, &config.Download{}))
}

func TestFileConfig_Apply_FillsUnsetValues(t *testing.T) {
	fileCfg := &config.FileConfig{
		Endpoint: "https://mirror.example.com/getImage",
		APIKey:   "file-key",
		Workers:  2,
	}
	tciaCfg := &config.TCIA{Endpoint: "https://default.example.com"}
	downloadCfg := &config.Download{Workers: 6}

	gt.NoError(t, fileCfg.Apply(newTestCommand(), tciaCfg, downloadCfg))
	gt.String(t, tciaCfg.Endpoint).Equal("https://mirror.example.com/getImage")
	gt.String(t, tciaCfg.APIKey).Equal("file-key")
	gt.Number(t, downloadCfg.Workers).Equal(2)
}
