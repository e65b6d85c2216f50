// Package testkit provides in-memory port implementations for tests.
package testkit

import (
	"context"
	"fmt"
	"sync"

	"bridgelens/domain/board"
	"bridgelens/domain/mistake"
	"bridgelens/ports"
)

// BoardSource replays a fixed slice of records.
type BoardSource struct {
	RecordList []board.Record
}

func NewBoardSource(records ...board.Record) *BoardSource {
	return &BoardSource{RecordList: records}
}

func (s *BoardSource) Records(ctx context.Context, fn func(board.Record) error) error {
	for _, rec := range s.RecordList {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

// Oracle serves canned solver results keyed by deal and by play string. It
// records the batches it received so tests can assert on chunking.
type Oracle struct {
	Tables       map[string]mistake.TrickTable
	Trajectories map[string]mistake.Trajectory

	mu           sync.Mutex
	TableBatches [][]string
	PlayBatches  [][]ports.PlayRequest
}

func NewOracle() *Oracle {
	return &Oracle{
		Tables:       make(map[string]mistake.TrickTable),
		Trajectories: make(map[string]mistake.Trajectory),
	}
}

func (o *Oracle) TrickTables(ctx context.Context, deals []string) ([]mistake.TrickTable, error) {
	if len(deals) > ports.MaxTableBatch {
		return nil, fmt.Errorf("table batch of %d exceeds %d", len(deals), ports.MaxTableBatch)
	}
	o.mu.Lock()
	o.TableBatches = append(o.TableBatches, deals)
	o.mu.Unlock()
	out := make([]mistake.TrickTable, len(deals))
	for i, deal := range deals {
		table, ok := o.Tables[deal]
		if !ok {
			return nil, fmt.Errorf("no scripted table for deal %q", deal)
		}
		out[i] = table
	}
	return out, nil
}

func (o *Oracle) PlayTrajectories(ctx context.Context, reqs []ports.PlayRequest) ([]mistake.Trajectory, error) {
	if len(reqs) > ports.MaxPlayBatch {
		return nil, fmt.Errorf("play batch of %d exceeds %d", len(reqs), ports.MaxPlayBatch)
	}
	o.mu.Lock()
	o.PlayBatches = append(o.PlayBatches, reqs)
	o.mu.Unlock()
	out := make([]mistake.Trajectory, len(reqs))
	for i, req := range reqs {
		traj, ok := o.Trajectories[req.Play]
		if !ok {
			return nil, fmt.Errorf("no scripted trajectory for play %q", req.Play)
		}
		out[i] = traj
	}
	return out, nil
}

// Roster resolves names from a fixed map. Unlisted names fall through
// unchanged, so tests can opt in per name.
type Roster struct {
	Entries map[string]string
	Loaded  bool
}

func NewRoster(entries map[string]string) *Roster {
	if entries == nil {
		entries = make(map[string]string)
	}
	return &Roster{Entries: entries}
}

func (r *Roster) Load(ctx context.Context) error {
	r.Loaded = true
	return nil
}

func (r *Roster) Normalize(name string) string {
	if resolved, ok := r.Entries[name]; ok {
		return resolved
	}
	return name
}
