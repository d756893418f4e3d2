package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/iaget/pkg/domain/interfaces"
	"github.com/m-mizutani/iaget/pkg/domain/model"
	"github.com/m-mizutani/iaget/pkg/infra/urlcache"
	"github.com/m-mizutani/iaget/pkg/utils/humanize"
)

type downloadUseCase struct {
	client     interfaces.ArchiveClient
	engine     interfaces.TransferEngine
	summaryOut io.Writer
}

// NewDownload creates a new instance of DownloadUseCase. The summary
// line goes to w unless the request is quiet.
func NewDownload(client interfaces.ArchiveClient, engine interfaces.TransferEngine, w io.Writer) interfaces.DownloadUseCase {
	return &downloadUseCase{
		client:     client,
		engine:     engine,
		summaryOut: w,
	}
}

// Run resolves the item's download URLs (through the cache), plans the
// output paths and executes the batch transfer
func (uc *downloadUseCase) Run(ctx context.Context, req *model.Request) error {
	logger := ctxlog.From(ctx)

	cache := urlcache.New(req.Destination)
	urls, err := cache.GetOrFetch(ctx, resolveURLs(uc.client, req.Identifier))
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return goerr.New("item has no files", goerr.V("identifier", req.Identifier))
	}

	plan := BuildPlan(urls, req.Destination)

	logger.Info("Starting batch download",
		slog.String("identifier", req.Identifier),
		slog.String("destination", req.Destination),
		slog.Int("files", len(plan)),
		slog.Int("jobs", req.Jobs),
		slog.Bool("force", req.Force),
	)

	stats, err := uc.engine.Run(ctx, plan, req)
	if stats != nil && !req.Quiet {
		uc.printSummary(stats)
	}
	if err != nil {
		return goerr.Wrap(err, "batch download failed", goerr.V("identifier", req.Identifier))
	}

	return nil
}

func (uc *downloadUseCase) printSummary(stats *model.TransferStats) {
	elapsed := stats.Elapsed.Round(time.Millisecond)

	if stats.Failed > 0 {
		color.New(color.FgYellow).Fprintf(uc.summaryOut, "done with errors: %d/%d files failed, %s in %s\n",
			stats.Failed, stats.Files, humanize.Bytes(stats.Bytes), elapsed)
		return
	}

	color.New(color.FgGreen).Fprintf(uc.summaryOut, "done: %d files, %s in %s\n",
		stats.Files, humanize.Bytes(stats.Bytes), elapsed)
}
