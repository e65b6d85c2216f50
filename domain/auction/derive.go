package auction

import (
	"bridgelens/domain/bridge"
)

// ContractFromAuction reads the auction backwards and returns the canonical
// contract string it implies: the last contract bid with any doubling seen
// after it (a redouble dominates a double), "P" for an all-pass auction, or
// "" when the auction is absent.
func ContractFromAuction(a Auction) string {
	if len(a) == 0 {
		return ""
	}

	doubling := ""
	for i := len(a) - 1; i >= 0; i-- {
		switch token := a[i]; token {
		case "R":
			doubling = "R"
		case "X":
			if doubling != "R" {
				doubling = "X"
			}
		case "P":
		default:
			return token + doubling
		}
	}
	return "P"
}

// DeclarerFromAuction returns the seat letter of the declarer: the first
// member of the auction-winning side to have bid the denomination of the
// final contract. Returns "" when the auction is absent, the bid start is
// unknown, or the auction was passed out.
func DeclarerFromAuction(a Auction, bidstart bridge.Seat) string {
	if len(a) == 0 || bidstart == bridge.SeatNone {
		return ""
	}

	// firstBidder[denom][side] is the first seat of that side to bid the
	// denomination.
	var firstBidder [5][2]bridge.Seat
	for d := range firstBidder {
		firstBidder[d] = [2]bridge.Seat{bridge.SeatNone, bridge.SeatNone}
	}

	winningSide := bridge.Side(-1)
	winningDenom := bridge.DenomNone
	bidder := bidstart
	for _, token := range a {
		if bid, ok := bridge.ParseContractBid(token); ok {
			if firstBidder[bid.Denom][bidder.Side()] == bridge.SeatNone {
				firstBidder[bid.Denom][bidder.Side()] = bidder
			}
			winningSide = bidder.Side()
			winningDenom = bid.Denom
		}
		bidder = bidder.Next()
	}

	if winningDenom == bridge.DenomNone {
		return ""
	}
	return firstBidder[winningDenom][winningSide].String()
}

// LeadFromDeclarer returns the opening leader: the seat immediately
// clockwise of the declarer. A passed-out sentinel maps to itself and an
// absent declarer stays absent.
func LeadFromDeclarer(declarer string) string {
	if declarer == "" || declarer == "P" {
		return declarer
	}
	seat, ok := bridge.ParseSeat(declarer)
	if !ok {
		return ""
	}
	return seat.Next().String()
}
