package ports

import (
	"context"
	"time"

	"bridgelens/domain/player"
)

// RunReport is the output of one analysis run.
type RunReport struct {
	// RunID uniquely identifies the run.
	RunID string
	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time

	// BoardsRead counts raw records seen; BoardsCleaned those that survived
	// validation.
	BoardsRead    int
	BoardsCleaned int
	// AuctionsAnalyzed and PlaysAnalyzed count oracle evaluations.
	AuctionsAnalyzed int
	PlaysAnalyzed    int

	// Players holds the merged per-player accumulators.
	Players player.Table

	// Defect tallies, keyed by defect message.
	BoardDefects   map[string]int
	AuctionDefects map[string]int
	PlayDefects    map[string]int
}

// ReportSink defines the interface for writing an analysis run's outputs.
type ReportSink interface {
	Write(ctx context.Context, report *RunReport) error
}
