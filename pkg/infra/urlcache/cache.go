// Package urlcache persists a derived download URL list under the
// destination directory so repeated invocations skip the metadata fetch.
//
// The cache policy is deliberately minimal: the presence of the sentinel
// file is the only validity signal. The content is never checked against
// the identifier and never expires; deleting the file is the invalidation
// mechanism.
package urlcache

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// FileName is the sentinel file holding one download URL per line
const FileName = "source.txt"

// FetchFunc produces the URL list on a cache miss
type FetchFunc func(ctx context.Context) ([]string, error)

// Cache is a sentinel-file cache scoped to one destination directory
type Cache struct {
	path string
}

// New creates a cache over <destination>/source.txt
func New(destination string) *Cache {
	return &Cache{
		path: filepath.Join(destination, FileName),
	}
}

// Path returns the sentinel file location
func (c *Cache) Path() string {
	return c.path
}

// GetOrFetch returns the cached URL list if the sentinel file exists,
// otherwise calls fetch and writes the result. Non-empty lines are
// returned verbatim in file order. A failed cache write is logged and
// ignored; the cache is an optimization, not a requirement.
func (c *Cache) GetOrFetch(ctx context.Context, fetch FetchFunc) ([]string, error) {
	logger := ctxlog.From(ctx)

	if data, err := os.ReadFile(c.path); err == nil {
		urls := splitLines(string(data))
		logger.Debug("Using cached URL list",
			slog.String("path", c.path),
			slog.Int("count", len(urls)),
		)
		return urls, nil
	}

	urls, err := fetch(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve download URLs")
	}

	content := strings.Join(urls, "\n") + "\n"
	if err := os.WriteFile(c.path, []byte(content), 0644); err != nil {
		logger.Warn("Failed to write URL cache",
			slog.String("path", c.path),
			slog.Any("error", err),
		)
	} else {
		logger.Debug("Wrote URL cache",
			slog.String("path", c.path),
			slog.Int("count", len(urls)),
		)
	}

	return urls, nil
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
