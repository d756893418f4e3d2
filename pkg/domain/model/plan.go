package model

import "time"

// PlanEntry maps one download URL to its local output path
type PlanEntry struct {
	URL        string
	OutputPath string
}

// Plan is an ordered batch of transfers
type Plan []PlanEntry

// TransferStats is the aggregate result of one batch execution
type TransferStats struct {
	Files   int           // entries attempted
	Failed  int           // entries that ended in error
	Bytes   int64         // bytes written across all entries
	Elapsed time.Duration // wall time of the whole batch
}
