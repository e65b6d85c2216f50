package auction

import (
	"strconv"
	"sync"

	"bridgelens/domain/bridge"
)

// SeatSet is a set of seats, one bit per seat.
type SeatSet uint8

// AllSeats contains every seat.
const AllSeats SeatSet = 0b1111

// Has reports whether the seat is in the set.
func (s SeatSet) Has(seat bridge.Seat) bool {
	return seat >= 0 && s&(1<<uint(seat)) != 0
}

// Remove deletes the seat from the set.
func (s *SeatSet) Remove(seat bridge.Seat) {
	*s &^= 1 << uint(seat)
}

// Seats lists the members in seat order.
func (s SeatSet) Seats() []bridge.Seat {
	var seats []bridge.Seat
	for seat := bridge.North; seat <= bridge.West; seat++ {
		if s.Has(seat) {
			seats = append(seats, seat)
		}
	}
	return seats
}

// CandidateTable holds, per denomination, the set of seats that could still
// become declarer in that denomination.
type CandidateTable [5]SeatSet

// DeclarerCandidates computes the candidate table for a (possibly partial)
// auction. Every seat starts eligible in every denomination; whenever a seat
// bids a denomination while its partner is still eligible there, the partner
// is removed, since only the first bidder of a denomination on a side may
// later declare it.
func DeclarerCandidates(a Auction, bidstart bridge.Seat) CandidateTable {
	var table CandidateTable
	for d := range table {
		table[d] = AllSeats
	}

	bidder := bidstart
	for _, token := range a {
		if bid, ok := bridge.ParseContractBid(token); ok {
			if table[bid.Denom].Has(bidder) && table[bid.Denom].Has(bidder.Partner()) {
				table[bid.Denom].Remove(bidder.Partner())
			}
		}
		bidder = bidder.Next()
	}
	return table
}

// CandidateCache memoizes DeclarerCandidates per (auction, bidstart). The
// computation is pure, so a whole-run cache is safe.
type CandidateCache struct {
	mu sync.Mutex
	m  map[string]CandidateTable
}

// NewCandidateCache returns an empty cache.
func NewCandidateCache() *CandidateCache {
	return &CandidateCache{m: make(map[string]CandidateTable)}
}

// Get returns the candidate table for the auction, computing it at most
// once per distinct (auction, bidstart) pair.
func (c *CandidateCache) Get(a Auction, bidstart bridge.Seat) CandidateTable {
	key := strconv.Itoa(int(bidstart)) + "|" + a.String()

	c.mu.Lock()
	defer c.mu.Unlock()
	if table, ok := c.m[key]; ok {
		return table
	}
	table := DeclarerCandidates(a, bidstart)
	c.m[key] = table
	return table
}
