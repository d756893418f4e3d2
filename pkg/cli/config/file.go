package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// File holds the optional TOML defaults file configuration
type File struct {
	Path string
}

// Flags returns CLI flags for the defaults file
func (c *File) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "TOML file providing default option values",
			Destination: &c.Path,
			Sources:     cli.EnvVars("IAGET_CONFIG"),
		},
	}
}

// FileValues are the settings a defaults file may provide. A value from
// the file applies only when the corresponding flag was not set on the
// command line or via environment variable.
type FileValues struct {
	BaseURL   string `toml:"base_url"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Jobs      int64  `toml:"jobs"`
}

// Load reads the defaults file. Returns nil without error when no file
// is configured.
func (c *File) Load() (*FileValues, error) {
	if c.Path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", c.Path))
	}

	var values FileValues
	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", c.Path))
	}

	return &values, nil
}
