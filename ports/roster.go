package ports

import "context"

// Roster defines the interface for resolving raw player names against a
// federation roster.
type Roster interface {
	// Load fetches the roster. Must be called before Normalize.
	Load(ctx context.Context) error

	// Normalize resolves a raw name to its canonical "name,mp,pp" key.
	// Unresolvable and ambiguous names map to the shared ",-1,-1" key.
	Normalize(name string) string
}
