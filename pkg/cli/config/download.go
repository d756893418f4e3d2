package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/iaget/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Download holds download mode configuration
type Download struct {
	Quiet bool
	Force bool
	Jobs  int64
}

// Flags returns CLI flags for download configuration
func (c *Download) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "quiet",
			Aliases:     []string{"q"},
			Usage:       "Suppress progress and summary output",
			Destination: &c.Quiet,
			Sources:     cli.EnvVars("IAGET_QUIET"),
		},
		&cli.BoolFlag{
			Name:        "force",
			Aliases:     []string{"f"},
			Usage:       "Disable resume, re-download files fully",
			Destination: &c.Force,
			Sources:     cli.EnvVars("IAGET_FORCE"),
		},
		&cli.Int64Flag{
			Name:        "jobs",
			Aliases:     []string{"j"},
			Usage:       "Number of concurrent downloads",
			Value:       4,
			Destination: &c.Jobs,
			Sources:     cli.EnvVars("IAGET_JOBS"),
		},
	}
}

// Validate checks the configured values
func (c *Download) Validate() error {
	if c.Jobs < 1 {
		return goerr.New("jobs must be at least 1",
			goerr.T(types.ErrTagInvalidArgument),
			goerr.V("jobs", c.Jobs),
		)
	}
	return nil
}
