package config

import (
	"github.com/m-mizutani/iaget/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Archive holds archive service configuration
type Archive struct {
	BaseURL   string
	AccessKey string
	SecretKey string `masq:"secret"`
}

// Flags returns CLI flags for archive service configuration
func (c *Archive) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Archive service base URL",
			Value:       types.DefaultBaseURL,
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("IAGET_BASE_URL"),
		},
		&cli.StringFlag{
			Name:        "access-key",
			Usage:       "IAS3 access key for restricted items",
			Destination: &c.AccessKey,
			Sources:     cli.EnvVars("IAGET_ACCESS_KEY"),
		},
		&cli.StringFlag{
			Name:        "secret-key",
			Usage:       "IAS3 secret key for restricted items",
			Destination: &c.SecretKey,
			Sources:     cli.EnvVars("IAGET_SECRET_KEY"),
		},
	}
}

// Authorization returns the IAS3 Authorization header value, or an empty
// string when no credentials are configured
func (c *Archive) Authorization() string {
	if c.AccessKey == "" || c.SecretKey == "" {
		return ""
	}
	return "LOW " + c.AccessKey + ":" + c.SecretKey
}
