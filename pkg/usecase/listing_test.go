package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/iaget/pkg/domain/model"
	"github.com/m-mizutani/iaget/pkg/infra/archive"
	"github.com/m-mizutani/iaget/pkg/usecase"
)

// mockArchiveClient is a mock implementation of ArchiveClient
type mockArchiveClient struct {
	files      []model.FileEntry
	err        error
	fetchCalls int
}

func (m *mockArchiveClient) FetchManifest(ctx context.Context, identifier string) ([]model.FileEntry, error) {
	m.fetchCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.files, nil
}

func (m *mockArchiveClient) DownloadURL(identifier, filename string) string {
	return archive.DownloadURL("https://archive.org", identifier, filename)
}

func TestListing_Files(t *testing.T) {
	client := &mockArchiveClient{
		files: []model.FileEntry{
			{Name: "a b.txt", Size: 10},
			{Name: "second.bin", Size: 2048},
		},
	}

	var buf bytes.Buffer
	uc := usecase.NewListing(client)

	gt.NoError(t, uc.Files(context.Background(), &buf, "foo"))
	gt.Value(t, buf.String()).Equal("a b.txt 10\nsecond.bin 2048\n")
	gt.Number(t, client.fetchCalls).Equal(1)

	// re-listing re-fetches; files mode never caches
	buf.Reset()
	gt.NoError(t, uc.Files(context.Background(), &buf, "foo"))
	gt.Number(t, client.fetchCalls).Equal(2)
}

func TestListing_Files_FetchError(t *testing.T) {
	client := &mockArchiveClient{err: errors.New("endpoint down")}

	var buf bytes.Buffer
	err := usecase.NewListing(client).Files(context.Background(), &buf, "foo")
	gt.Error(t, err)
	gt.Value(t, buf.String()).Equal("")
}

func TestListing_URLs(t *testing.T) {
	client := &mockArchiveClient{
		files: []model.FileEntry{{Name: "a b.txt", Size: 10}},
	}

	dest := t.TempDir()
	req := &model.Request{Identifier: "foo", Destination: dest}

	var buf bytes.Buffer
	uc := usecase.NewListing(client)

	gt.NoError(t, uc.URLs(context.Background(), &buf, req))
	gt.Value(t, buf.String()).Equal("https://archive.org/download/foo/a%20b.txt\n")

	// first call populated the cache file
	data := gt.R1(os.ReadFile(filepath.Join(dest, "source.txt"))).NoError(t)
	gt.Value(t, string(data)).Equal("https://archive.org/download/foo/a%20b.txt\n")

	// second call is served from the cache
	buf.Reset()
	gt.NoError(t, uc.URLs(context.Background(), &buf, req))
	gt.Value(t, buf.String()).Equal("https://archive.org/download/foo/a%20b.txt\n")
	gt.Number(t, client.fetchCalls).Equal(1)
}
