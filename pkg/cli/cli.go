package cli

import (
	"context"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/iaget/pkg/cli/config"
	"github.com/m-mizutani/iaget/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg   config.Logger
		fileCfg     config.File
		archiveCfg  config.Archive
		downloadCfg config.Download
	)
	var logger *slog.Logger

	flags := loggerCfg.Flags()
	flags = append(flags, fileCfg.Flags()...)
	flags = append(flags, archiveCfg.Flags()...)
	flags = append(flags, downloadCfg.Flags()...)
	flags = append(flags, modeFlags()...)

	app := &cli.Command{
		Name:      types.AppName,
		Usage:     "Download all files of an archive.org item",
		Version:   types.Version,
		ArgsUsage: "<identifier> [destination]",
		Flags:     flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// .env is a convenience for credentials, absence is fine
			_ = godotenv.Load()

			// quiet mode silences informational logs too, unless the
			// operator chose a level explicitly
			if downloadCfg.Quiet && !c.IsSet("log-level") {
				loggerCfg.Level = "error"
			}

			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return run(ctx, c, &archiveCfg, &downloadCfg, &fileCfg)
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}

func modeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "list",
			Usage: "Print 'name size' per manifest entry and exit",
		},
		&cli.BoolFlag{
			Name:  "list-urls",
			Usage: "Print resolved download URLs and exit",
		},
	}
}
