package interfaces

import (
	"context"

	"github.com/m-mizutani/iaget/pkg/domain/model"
)

// ArchiveClient defines operations against the remote archive service
type ArchiveClient interface {
	// FetchManifest retrieves the file manifest for an item identifier
	FetchManifest(ctx context.Context, identifier string) ([]model.FileEntry, error)

	// DownloadURL returns the download URL for one file of an item
	DownloadURL(identifier, filename string) string
}

// TransferEngine executes a batch of downloads with bounded concurrency
type TransferEngine interface {
	// Run downloads every plan entry and returns aggregate statistics.
	// The returned error reports only that some entries failed; per-entry
	// failures are logged as they happen.
	Run(ctx context.Context, plan model.Plan, req *model.Request) (*model.TransferStats, error)
}
