package ports

import (
	"context"

	"bridgelens/domain/bridge"
	"bridgelens/domain/mistake"
)

// Oracle batch limits imposed by the double dummy solver.
const (
	MaxTableBatch = 32
	MaxPlayBatch  = 20
)

// PlayRequest asks the oracle to evaluate one played board.
type PlayRequest struct {
	// Deal in PBN notation.
	Deal string
	// Trump of the contract.
	Trump bridge.Denom
	// Leader is the opening lead seat.
	Leader bridge.Seat
	// Play is the flat play trace in true played order.
	Play string
}

// Oracle defines the interface to a double dummy solver.
type Oracle interface {
	// TrickTables solves up to MaxTableBatch deals, returning one trick
	// table per deal, in input order.
	TrickTables(ctx context.Context, deals []string) ([]mistake.TrickTable, error)

	// PlayTrajectories evaluates up to MaxPlayBatch play traces, returning
	// one trajectory per request, in input order.
	PlayTrajectories(ctx context.Context, requests []PlayRequest) ([]mistake.Trajectory, error)
}
