package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/iaget/pkg/domain/interfaces"
	"github.com/m-mizutani/iaget/pkg/domain/model"
	"github.com/m-mizutani/iaget/pkg/infra/urlcache"
)

type listingUseCase struct {
	client interfaces.ArchiveClient
}

// NewListing creates a new instance of ListingUseCase
func NewListing(client interfaces.ArchiveClient) interfaces.ListingUseCase {
	return &listingUseCase{
		client: client,
	}
}

// Files writes one "<name> <size>" line per manifest entry, in manifest
// order. Always re-fetches; listing the manifest does not touch the cache.
func (uc *listingUseCase) Files(ctx context.Context, w io.Writer, identifier string) error {
	files, err := uc.client.FetchManifest(ctx, identifier)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch manifest", goerr.V("identifier", identifier))
	}

	for _, f := range files {
		if _, err := fmt.Fprintf(w, "%s %d\n", f.Name, f.Size); err != nil {
			return goerr.Wrap(err, "failed to write listing")
		}
	}
	return nil
}

// URLs writes one resolved download URL per line. It shares the URL
// cache with download mode, so the first call against a destination
// creates <destination>/source.txt.
func (uc *listingUseCase) URLs(ctx context.Context, w io.Writer, req *model.Request) error {
	cache := urlcache.New(req.Destination)

	urls, err := cache.GetOrFetch(ctx, resolveURLs(uc.client, req.Identifier))
	if err != nil {
		return err
	}

	for _, url := range urls {
		if _, err := fmt.Fprintln(w, url); err != nil {
			return goerr.Wrap(err, "failed to write listing")
		}
	}
	return nil
}

// resolveURLs maps the item's manifest through DownloadURL, preserving
// manifest order
func resolveURLs(client interfaces.ArchiveClient, identifier string) urlcache.FetchFunc {
	return func(ctx context.Context) ([]string, error) {
		files, err := client.FetchManifest(ctx, identifier)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to fetch manifest", goerr.V("identifier", identifier))
		}

		urls := make([]string, 0, len(files))
		for _, f := range files {
			urls = append(urls, client.DownloadURL(identifier, f.Name))
		}
		return urls, nil
	}
}
