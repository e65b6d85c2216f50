package auction

import (
	"errors"
	"fmt"
	"strings"

	"bridgelens/domain/bridge"
)

// Auction error kinds, the closed AuctionError set. A failed auction is
// recorded as a per-board defect and treated as absent; it never rejects
// the whole board.
var (
	ErrAuction = errors.New("invalid auction")

	ErrMissingAuction = fmt.Errorf("%w: missing auction", ErrAuction)
	ErrPassSequence   = fmt.Errorf("%w: passed out in the middle of the auction, or did not end with three passes", ErrAuction)
	ErrContractBid    = fmt.Errorf("%w: contract bid was made in a non-increasing fashion", ErrAuction)
	ErrDoubleBid      = fmt.Errorf("%w: illegal double bid", ErrAuction)
	ErrRedoubleBid    = fmt.Errorf("%w: illegal redouble bid", ErrAuction)
)

// Auction is a validated sequence of canonical bid tokens. A nil Auction
// means the record carried no usable auction.
type Auction []string

func (a Auction) String() string {
	return strings.Join(a, " ")
}

// ContractBidAt reports whether the token at the given position is a
// contract bid, and which.
func (a Auction) ContractBidAt(pos int) (bridge.ContractBid, bool) {
	return bridge.ParseContractBid(a[pos])
}

// Validate normalizes and validates a raw auction string.
//
// Legality, after normalization: the token sequence must end in exactly
// three passes and that suffix must be the only run of three consecutive
// passes from position one onward (an auction opening with passes is only
// exempt when those passes are the terminal run). Contract bids must be
// strictly increasing. Within the run of non-contract-bid tokens following
// each contract bid, a double is legal only at an even position (the side
// that did not just bid), before any double or redouble in that run, and
// only once a contract bid exists; a redouble is legal only at an odd
// position, after a double and before any redouble.
func Validate(raw string) (Auction, error) {
	if raw == "" {
		return nil, ErrMissingAuction
	}

	tokens := NormalizeBids(raw)
	joined := strings.Join(tokens, " ")

	// The terminal-pass rule operates on the joined token string: the first
	// occurrence of "P P P" at or after index 1 must sit exactly at the end.
	// Note this accepts a four-pass passed-out auction ("P P P P" matches at
	// index 2) while rejecting a bare three-pass sequence.
	passAt := -1
	if len(joined) > 1 {
		if i := strings.Index(joined[1:], "P P P"); i >= 0 {
			passAt = i + 1
		}
	}
	if passAt != len(joined)-5 {
		return nil, ErrPassSequence
	}

	// Strictly increasing contract bids.
	lastBid := -1
	for _, token := range tokens {
		if bid, ok := bridge.ParseContractBid(token); ok {
			if bid.Index() <= lastBid {
				return nil, ErrContractBid
			}
			lastBid = bid.Index()
		}
	}

	// Double/redouble legality per run of tokens between contract bids.
	contractBids := 0
	runPos := 0
	doubled, redoubled := false, false
	for _, token := range tokens {
		if _, ok := bridge.ParseContractBid(token); ok {
			contractBids++
			runPos = 0
			doubled, redoubled = false, false
			continue
		}
		switch token {
		case "X":
			if doubled || redoubled || runPos%2 == 1 || contractBids == 0 {
				return nil, ErrDoubleBid
			}
			doubled = true
		case "R":
			if !doubled || redoubled || runPos%2 == 0 || contractBids == 0 {
				return nil, ErrRedoubleBid
			}
			redoubled = true
		}
		runPos++
	}

	return Auction(tokens), nil
}
