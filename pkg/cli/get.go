package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/iaget/pkg/cli/config"
	"github.com/m-mizutani/iaget/pkg/domain/model"
	"github.com/m-mizutani/iaget/pkg/domain/types"
	"github.com/m-mizutani/iaget/pkg/infra/archive"
	"github.com/m-mizutani/iaget/pkg/infra/transfer"
	"github.com/m-mizutani/iaget/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func run(ctx context.Context, c *cli.Command, archiveCfg *config.Archive, downloadCfg *config.Download, fileCfg *config.File) error {
	logger := ctxlog.From(ctx)

	if err := applyFileDefaults(c, archiveCfg, downloadCfg, fileCfg); err != nil {
		return err
	}
	if err := downloadCfg.Validate(); err != nil {
		return err
	}

	req, err := buildRequest(c, downloadCfg)
	if err != nil {
		return err
	}

	logger.Debug("Resolved configuration",
		slog.String("base_url", archiveCfg.BaseURL),
		slog.Any("archive", archiveCfg),
		slog.Any("request", req),
	)

	client := archive.NewClient(
		archive.WithBaseURL(archiveCfg.BaseURL),
		archive.WithAuthorization(archiveCfg.Authorization()),
	)
	listing := usecase.NewListing(client)

	// listing modes print and exit, no destination check, no download
	switch {
	case c.Bool("list"):
		return listing.Files(ctx, os.Stdout, req.Identifier)
	case c.Bool("list-urls"):
		return listing.URLs(ctx, os.Stdout, req)
	}

	if fi, err := os.Stat(req.Destination); err != nil || !fi.IsDir() {
		return goerr.New("destination directory does not exist",
			goerr.T(types.ErrTagInvalidArgument),
			goerr.V("destination", req.Destination),
		)
	}

	// in-flight transfers stop when the operator interrupts the process
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := transfer.New(transfer.WithAuthorization(archiveCfg.Authorization()))

	return usecase.NewDownload(client, engine, os.Stderr).Run(ctx, req)
}

func buildRequest(c *cli.Command, downloadCfg *config.Download) (*model.Request, error) {
	identifier := c.Args().Get(0)
	if identifier == "" {
		return nil, goerr.New("Identifier not provided", goerr.T(types.ErrTagInvalidArgument))
	}
	if c.Args().Len() > 2 {
		return nil, goerr.New("too many arguments",
			goerr.T(types.ErrTagInvalidArgument),
			goerr.V("args", c.Args().Slice()),
		)
	}

	destination := c.Args().Get(1)
	if destination == "" {
		destination = "."
	}

	return &model.Request{
		Identifier:  identifier,
		Destination: destination,
		Quiet:       downloadCfg.Quiet,
		Force:       downloadCfg.Force,
		Jobs:        int(downloadCfg.Jobs),
	}, nil
}

// applyFileDefaults fills settings from the TOML defaults file, but only
// where the flag was not set on the command line or via environment
func applyFileDefaults(c *cli.Command, archiveCfg *config.Archive, downloadCfg *config.Download, fileCfg *config.File) error {
	values, err := fileCfg.Load()
	if err != nil || values == nil {
		return err
	}

	if values.BaseURL != "" && !c.IsSet("base-url") {
		archiveCfg.BaseURL = values.BaseURL
	}
	if values.AccessKey != "" && !c.IsSet("access-key") {
		archiveCfg.AccessKey = values.AccessKey
	}
	if values.SecretKey != "" && !c.IsSet("secret-key") {
		archiveCfg.SecretKey = values.SecretKey
	}
	if values.Jobs > 0 && !c.IsSet("jobs") {
		downloadCfg.Jobs = values.Jobs
	}

	return nil
}
