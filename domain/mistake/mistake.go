// Package mistake attributes bidding and play mistakes to players by
// comparing what happened to the optimal results of an oracle that sees all
// four hands.
package mistake

import (
	"bridgelens/domain/auction"
	"bridgelens/domain/bridge"
	"bridgelens/domain/player"
)

// TrickTable holds, per denomination and declaring seat, the number of
// tricks that seat takes as declarer against optimal play on both sides.
type TrickTable [5][4]int

// Tricks returns the optimal trick count for the seat declaring the
// denomination.
func (t TrickTable) Tricks(denom bridge.Denom, declarer bridge.Seat) int {
	return t[denom][declarer]
}

// Trajectory is the optimal declarer trick count along a play sequence:
// the value of the full deal before any card, then the value after each
// card played.
type Trajectory []int

// worstScore is below every reachable duplicate score, so any real score
// beats an empty comparison.
const worstScore = -7600

// Engine attributes mistakes from oracle results. Safe for use from a
// single goroutine; run one engine per worker and merge the tables.
type Engine struct {
	candidates *auction.CandidateCache
}

// NewEngine returns an engine with an empty candidate cache.
func NewEngine() *Engine {
	return &Engine{candidates: auction.NewCandidateCache()}
}

// candidate is one possible mistake on a board, with the score swing it
// cost. Only the largest swing on a board is charged; ties split the
// charge evenly.
type candidate struct {
	kind      player.MistakeKind
	magnitude int
}

// assign charges the largest-magnitude candidates to both seats of the
// side.
func assign(cands []candidate, names [4]string, seats [2]bridge.Seat, players player.Table) {
	if len(cands) == 0 {
		return
	}
	largest := cands[0].magnitude
	for _, c := range cands[1:] {
		if c.magnitude > largest {
			largest = c.magnitude
		}
	}
	var tied []candidate
	for _, c := range cands {
		if c.magnitude == largest {
			tied = append(tied, c)
		}
	}
	for _, seat := range seats {
		acc := players.Get(names[seat])
		for _, c := range tied {
			acc.AddAuctionMistake(c.kind, len(tied), c.magnitude)
		}
	}
}
