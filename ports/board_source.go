package ports

import (
	"context"

	"bridgelens/domain/board"
)

// BoardSource defines the interface for reading raw board records from the
// backing store.
type BoardSource interface {
	// Records streams every raw board record. The returned function is
	// called once per record; iteration stops on the first error.
	Records(ctx context.Context, fn func(board.Record) error) error
}
