// Package board assembles raw deal records into validated, internally
// consistent Board values. Every derivable field (contract from auction,
// declarer from auction, lead from declarer) must either match the directly
// supplied value or be absent in the source; nothing is silently corrected.
package board

import (
	"bridgelens/domain/auction"
	"bridgelens/domain/bridge"
	"bridgelens/domain/play"
)

// Record is a raw board record as retrieved from the record source. All
// fields are untrusted strings.
type Record struct {
	Event      string
	Date       string
	NorthName  string
	EastName   string
	SouthName  string
	WestName   string
	Deal       string
	Vulnerable string
	Dealer     string
	BidStart   string
	Auction    string
	Contract   string
	Declarer   string
	Lead       string
	Play       string
	Result     string
}

// Board is a validated board record.
type Board struct {
	// Names holds the player names indexed by seat; the analyzer replaces
	// them with roster-normalized names before attribution.
	Names [4]string
	// Deal is the PBN deal notation as supplied.
	Deal string
	// BidStart is the seat letter of the first bidder, "" if unknown.
	BidStart string
	// Auction is the validated auction, nil when absent or defective.
	Auction auction.Auction
	// Contract is the canonical contract string: "" unknown, "P" passed
	// out, otherwise e.g. "3DX".
	Contract string
	// Declarer and Lead are seat letters, "P" on a passed-out board.
	Declarer string
	Lead     string
	// Play is the true-order flat play trace, "" when absent or defective;
	// PlayOrder lists the seat that played each card of Play.
	Play      string
	PlayOrder []bridge.Seat
	// Claim is the declarer's total claimed trick count, ClaimNone if no
	// claim was recorded.
	Claim int
	// Vulnerability per partnership.
	NSVulnerable bool
	EWVulnerable bool
	// Year the board was played, 0 if undeterminable.
	Year int
}

// Notes carries the non-fatal defects found while cleaning a board.
type Notes struct {
	AuctionDefect error
	PlayDefect    error
}

// Clean validates a raw record and assembles the Board. A BoardError kind
// rejects the record outright; auction and play defects are returned in
// Notes with the affected field left absent.
func Clean(rec Record) (Board, Notes, error) {
	var b Board
	var notes Notes

	if rec.NorthName == "" && rec.EastName == "" && rec.SouthName == "" && rec.WestName == "" {
		return Board{}, notes, ErrMissingNames
	}
	b.Names = [4]string{rec.NorthName, rec.EastName, rec.SouthName, rec.WestName}

	hands, err := bridge.ValidateDeal(rec.Deal)
	if err != nil {
		return Board{}, notes, err
	}
	b.Deal = rec.Deal

	// Prefer bidstart over dealer when both are present: a dealer who did
	// not open the bidding does not change the game, unlike a misattributed
	// declarer.
	bidstart := rec.BidStart
	if _, ok := bridge.ParseSeat(bidstart); !ok {
		bidstart = ""
	}
	if bidstart == "" {
		if _, ok := bridge.ParseSeat(rec.Dealer); ok {
			bidstart = rec.Dealer
		}
	}
	b.BidStart = bidstart

	// Without a bid start the auction cannot be interpreted.
	if b.BidStart != "" {
		validated, err := auction.Validate(rec.Auction)
		if err != nil {
			notes.AuctionDefect = err
		} else {
			b.Auction = validated
		}
	}

	contract, err := reconcile(bridge.NormalizeContract(rec.Contract), auction.ContractFromAuction(b.Auction))
	if err != nil {
		return Board{}, notes, ErrContractContradiction
	}
	b.Contract = contract

	declarer := rec.Declarer
	if _, ok := bridge.ParseSeat(declarer); !ok {
		declarer = ""
	}
	// An absent or passed-out auction derives the passed-out declarer, so a
	// listed declarer without a supporting auction is a contradiction.
	derivedDeclarer := auction.DeclarerFromAuction(b.Auction, b.BidStartSeat())
	if derivedDeclarer == "" {
		derivedDeclarer = "P"
	}
	b.Declarer, err = reconcile(declarer, derivedDeclarer)
	if err != nil {
		return Board{}, notes, ErrDeclarerContradiction
	}

	b.Lead, err = reconcile(rec.Lead, auction.LeadFromDeclarer(b.Declarer))
	if err != nil {
		return Board{}, notes, ErrLeadContradiction
	}

	tricksPlayed, declarerTricks := -1, -1
	if b.Contract != "P" {
		result, err := play.Validate(rec.Play, seatOf(b.Lead), hands, trumpOf(b.Contract))
		if err != nil {
			notes.PlayDefect = err
		} else {
			b.Play = result.Flat
			b.PlayOrder = result.SeatOrder
			tricksPlayed = result.TricksPlayed
			declarerTricks = result.DeclarerTricks
		}
	} else if rec.Play != "" {
		return Board{}, notes, ErrPassContradiction
	}

	// A claim is recorded for incomplete, but not absent, play sequences.
	b.Claim = ClaimNone
	if notes.PlayDefect == nil && b.Contract != "P" && len(b.Play) != 104 {
		b.Claim, err = ComputeClaim(rec.Result, tricksPlayed, declarerTricks)
		if err != nil {
			return Board{}, notes, err
		}
	}

	b.NSVulnerable, b.EWVulnerable = ParseVulnerability(rec.Vulnerable)
	b.Year = Year(rec.Event, rec.Date)

	return b, notes, nil
}

func seatOf(letter string) bridge.Seat {
	seat, ok := bridge.ParseSeat(letter)
	if !ok {
		return bridge.SeatNone
	}
	return seat
}

func trumpOf(contract string) bridge.Denom {
	c, ok := bridge.ParseContract(contract)
	if !ok || c.PassedOut {
		return bridge.DenomNone
	}
	return c.Bid.Denom
}

// ContractValue parses the board's contract. The second return is false
// when the contract is absent or passed out.
func (b Board) ContractValue() (bridge.Contract, bool) {
	c, ok := bridge.ParseContract(b.Contract)
	if !ok || c.PassedOut {
		return bridge.Contract{}, false
	}
	return c, true
}

// DeclarerSeat returns the declarer's seat, or SeatNone on a passed-out or
// incomplete board.
func (b Board) DeclarerSeat() bridge.Seat {
	return seatOf(b.Declarer)
}

// BidStartSeat returns the first bidder's seat, or SeatNone when unknown.
func (b Board) BidStartSeat() bridge.Seat {
	return seatOf(b.BidStart)
}

// LeadSeat returns the opening leader's seat, or SeatNone when unknown.
func (b Board) LeadSeat() (bridge.Seat, bool) {
	seat := seatOf(b.Lead)
	return seat, seat != bridge.SeatNone
}

// VulnerableFor reports whether the given side is vulnerable.
func (b Board) VulnerableFor(side bridge.Side) bool {
	if side == bridge.NorthSouth {
		return b.NSVulnerable
	}
	return b.EWVulnerable
}
