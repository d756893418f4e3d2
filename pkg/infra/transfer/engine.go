// Package transfer downloads a planned batch of files with bounded
// concurrency. Each entry is one resumable HTTP GET; an existing partial
// file continues from its current size unless force mode is set.
package transfer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/k0kubun/go-ansi"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/iaget/pkg/domain/model"
	"github.com/m-mizutani/iaget/pkg/domain/types"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// Engine executes batch downloads
type Engine struct {
	httpClient    *http.Client
	authorization string
	progressOut   io.Writer
}

type Option func(*Engine)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(e *Engine) {
		e.httpClient = httpClient
	}
}

// WithAuthorization sets an Authorization header value sent with every
// download request
func WithAuthorization(header string) Option {
	return func(e *Engine) {
		e.authorization = header
	}
}

// WithProgressOutput redirects progress bar output (stderr by default)
func WithProgressOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.progressOut = w
	}
}

// New creates a transfer engine. No timeout on the HTTP client: large
// downloads legitimately run for hours, cancellation comes from ctx.
func New(options ...Option) *Engine {
	e := &Engine{
		httpClient:  &http.Client{},
		progressOut: ansi.NewAnsiStderr(),
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// Run downloads every plan entry with at most req.Jobs concurrent
// workers. The invocation record is written to <destination>/download.sh
// before any transfer starts. Entries that fail are logged and counted;
// the rest of the batch keeps going. When two entries share an output
// path, only the last one is downloaded.
func (e *Engine) Run(ctx context.Context, plan model.Plan, req *model.Request) (*model.TransferStats, error) {
	logger := ctxlog.From(ctx)
	started := time.Now()

	plan = dedupeByOutputPath(plan)

	if err := writeScript(req.Destination, plan, req); err != nil {
		logger.Warn("Failed to write invocation record", slog.Any("error", err))
	}

	var bar *progressbar.ProgressBar
	if !req.Quiet {
		bar = e.newBar(len(plan))
	}

	var failed, bytes atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(req.Jobs)

	for _, entry := range plan {
		g.Go(func() error {
			n, err := e.fetch(ctx, entry, req.Force, bar)
			bytes.Add(n)
			if err != nil {
				// a cancelled batch is not a per-entry failure
				if ctx.Err() != nil {
					return ctx.Err()
				}
				failed.Add(1)
				logger.Error("Transfer failed",
					slog.String("url", entry.URL),
					slog.String("output", entry.OutputPath),
					slog.Any("error", err),
				)
				// other entries keep going
				return nil
			}

			logger.Debug("Transfer complete",
				slog.String("output", entry.OutputPath),
				slog.Int64("bytes", n),
			)
			return nil
		})
	}

	err := g.Wait()
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(e.progressOut)
	}

	stats := &model.TransferStats{
		Files:   len(plan),
		Failed:  int(failed.Load()),
		Bytes:   bytes.Load(),
		Elapsed: time.Since(started),
	}

	if err != nil {
		return stats, goerr.Wrap(err, "batch cancelled")
	}
	if stats.Failed > 0 {
		return stats, goerr.New("some transfers failed",
			goerr.V("failed", stats.Failed),
			goerr.V("total", stats.Files),
		)
	}
	return stats, nil
}

// fetch downloads one entry, resuming from the local file size unless
// force is set. Returns the number of bytes written.
func (e *Engine) fetch(ctx context.Context, entry model.PlanEntry, force bool, bar *progressbar.ProgressBar) (int64, error) {
	var offset int64
	if !force {
		if fi, err := os.Stat(entry.OutputPath); err == nil {
			offset = fi.Size()
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, entry.URL, nil)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create download request", goerr.V("url", entry.URL))
	}
	req.Header.Set("User-Agent", types.AppName+"/"+types.Version)
	if e.authorization != "" {
		req.Header.Set("Authorization", e.authorization)
	}
	if offset > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return 0, goerr.Wrap(err, "download request failed",
			goerr.T(types.ErrTagRemote),
			goerr.V("url", entry.URL),
		)
	}
	defer resp.Body.Close()

	var flags int
	switch resp.StatusCode {
	case http.StatusPartialContent:
		// server honored the Range, continue the partial file
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	case http.StatusOK:
		// full body, restart the file even if we asked for a range
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case http.StatusRequestedRangeNotSatisfiable:
		// local file already covers the whole resource
		return 0, nil
	default:
		return 0, goerr.New("unexpected status from download endpoint",
			goerr.T(types.ErrTagRemote),
			goerr.V("status", resp.StatusCode),
			goerr.V("url", entry.URL),
		)
	}

	f, err := os.OpenFile(entry.OutputPath, flags, 0644)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to open output file", goerr.V("path", entry.OutputPath))
	}
	defer f.Close()

	var w io.Writer = f
	if bar != nil {
		w = io.MultiWriter(f, bar)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, goerr.Wrap(err, "transfer interrupted",
			goerr.V("url", entry.URL),
			goerr.V("written", n),
		)
	}
	return n, nil
}

func (e *Engine) newBar(files int) *progressbar.ProgressBar {
	// total byte count is unknown (URLs may come from the cache file,
	// which holds no sizes), so run in counting mode
	return progressbar.NewOptions64(
		-1,
		progressbar.OptionSetWriter(e.progressOut),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(fmt.Sprintf("downloading %d files", files)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
}

// dedupeByOutputPath keeps the last entry for each output path so two
// workers never write the same file concurrently
func dedupeByOutputPath(plan model.Plan) model.Plan {
	last := make(map[string]int, len(plan))
	for i, entry := range plan {
		last[entry.OutputPath] = i
	}

	out := make(model.Plan, 0, len(last))
	for i, entry := range plan {
		if last[entry.OutputPath] == i {
			out = append(out, entry)
		}
	}
	return out
}
