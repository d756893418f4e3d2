package interfaces

import (
	"context"
	"io"

	"github.com/m-mizutani/iaget/pkg/domain/model"
)

// DownloadUseCase defines the full fetch-plan-transfer flow
type DownloadUseCase interface {
	// Run resolves the item's download URLs, plans output paths and
	// executes the batch transfer
	Run(ctx context.Context, req *model.Request) error
}

// ListingUseCase defines the modes that print the manifest without downloading
type ListingUseCase interface {
	// Files writes one "<name> <size>" line per manifest entry
	Files(ctx context.Context, w io.Writer, identifier string) error

	// URLs writes one resolved download URL per line. It goes through the
	// URL cache and may create the cache file as a side effect.
	URLs(ctx context.Context, w io.Writer, req *model.Request) error
}
