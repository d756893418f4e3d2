package urlcache_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/iaget/pkg/infra/urlcache"
)

func TestCache_GetOrFetch_Hit(t *testing.T) {
	dir := t.TempDir()
	cached := "https://archive.org/download/foo/a.txt\nhttps://archive.org/download/foo/b.txt\n"
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "source.txt"), []byte(cached), 0644))

	cache := urlcache.New(dir)

	urls, err := cache.GetOrFetch(context.Background(), func(ctx context.Context) ([]string, error) {
		t.Fatal("fetch must not be called on cache hit")
		return nil, nil
	})
	gt.NoError(t, err)
	gt.Array(t, urls).Equal([]string{
		"https://archive.org/download/foo/a.txt",
		"https://archive.org/download/foo/b.txt",
	})
}

func TestCache_GetOrFetch_Miss(t *testing.T) {
	dir := t.TempDir()
	cache := urlcache.New(dir)

	fetchCalls := 0
	fetch := func(ctx context.Context) ([]string, error) {
		fetchCalls++
		return []string{
			"https://archive.org/download/foo/x.txt",
			"https://archive.org/download/foo/y.txt",
		}, nil
	}

	urls, err := cache.GetOrFetch(context.Background(), fetch)
	gt.NoError(t, err)
	gt.Array(t, urls).Length(2)
	gt.Number(t, fetchCalls).Equal(1)

	// the sentinel file now holds one URL per line
	data := gt.R1(os.ReadFile(filepath.Join(dir, "source.txt"))).NoError(t)
	gt.Value(t, string(data)).Equal(
		"https://archive.org/download/foo/x.txt\nhttps://archive.org/download/foo/y.txt\n")

	// second call reads the cache, no further fetch
	urls2, err := cache.GetOrFetch(context.Background(), fetch)
	gt.NoError(t, err)
	gt.Array(t, urls2).Equal(urls)
	gt.Number(t, fetchCalls).Equal(1)
}

func TestCache_GetOrFetch_FetchError(t *testing.T) {
	dir := t.TempDir()
	cache := urlcache.New(dir)

	_, err := cache.GetOrFetch(context.Background(), func(ctx context.Context) ([]string, error) {
		return nil, errors.New("metadata endpoint down")
	})
	gt.Error(t, err)

	// no sentinel file is left behind on failure
	_, statErr := os.Stat(filepath.Join(dir, "source.txt"))
	gt.True(t, os.IsNotExist(statErr))
}

func TestCache_GetOrFetch_SkipsEmptyLines(t *testing.T) {
	dir := t.TempDir()
	content := "https://archive.org/download/foo/a.txt\n\nhttps://archive.org/download/foo/b.txt\n\n"
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "source.txt"), []byte(content), 0644))

	urls, err := urlcache.New(dir).GetOrFetch(context.Background(), nil)
	gt.NoError(t, err)
	gt.Array(t, urls).Length(2)
}
