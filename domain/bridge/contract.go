package bridge

import "strings"

// ContractBid is a level plus denomination bid in an auction.
type ContractBid struct {
	Level int
	Denom Denom
}

func (b ContractBid) String() string {
	if b.Level < 1 || b.Level > 7 {
		return ""
	}
	return string(rune('0'+b.Level)) + b.Denom.String()
}

// Index is the bid's position in the total ordering of the 35 contract
// bids, 1C lowest through 7N highest.
func (b ContractBid) Index() int {
	return (b.Level-1)*5 + int(b.Denom)
}

// ParseContractBid parses a canonical two-character contract bid such as "3D" or "7N".
func ParseContractBid(raw string) (ContractBid, bool) {
	if len(raw) != 2 || raw[0] < '1' || raw[0] > '7' {
		return ContractBid{}, false
	}
	denom, ok := ParseDenom(raw[1:])
	if !ok {
		return ContractBid{}, false
	}
	return ContractBid{Level: int(raw[0] - '0'), Denom: denom}, true
}

// ContractBids lists every contract bid in ascending order.
func ContractBids() []ContractBid {
	bids := make([]ContractBid, 0, 35)
	for level := 1; level <= 7; level++ {
		for denom := Clubs; denom <= NoTrump; denom++ {
			bids = append(bids, ContractBid{Level: level, Denom: denom})
		}
	}
	return bids
}

// Doubling is the doubled state of a contract.
type Doubling int

const (
	Undoubled Doubling = iota
	Doubled
	Redoubled
)

func (d Doubling) String() string {
	switch d {
	case Doubled:
		return "X"
	case Redoubled:
		return "R"
	default:
		return ""
	}
}

// Contract is the final contract of an auction, or the passed-out sentinel.
type Contract struct {
	Bid       ContractBid
	Doubling  Doubling
	PassedOut bool
}

// String renders the canonical contract notation: "P" for passed out,
// otherwise level, denomination and doubling suffix, e.g. "4SX".
func (c Contract) String() string {
	if c.PassedOut {
		return "P"
	}
	return c.Bid.String() + c.Doubling.String()
}

// ParseContract parses a canonical contract string ("P", "3D", "4SX", "7NR").
func ParseContract(raw string) (Contract, bool) {
	if raw == "P" {
		return Contract{PassedOut: true}, true
	}
	if len(raw) < 2 || len(raw) > 3 {
		return Contract{}, false
	}
	bid, ok := ParseContractBid(raw[:2])
	if !ok {
		return Contract{}, false
	}
	c := Contract{Bid: bid}
	if len(raw) == 3 {
		switch raw[2] {
		case 'X':
			c.Doubling = Doubled
		case 'R':
			c.Doubling = Redoubled
		default:
			return Contract{}, false
		}
	}
	return c, true
}

// NormalizeContract rewrites the raw database contract notation into the
// canonical one: "Pass" in any case becomes "P", the "NT" denomination
// becomes "N" and a trailing "XX" becomes "R". Unrecognized input is
// returned with only those rewrites applied, for the caller to reject.
func NormalizeContract(raw string) string {
	if strings.EqualFold(raw, "PASS") {
		return "P"
	}
	if len(raw) >= 2 && raw[len(raw)-2:] == "XX" {
		raw = raw[:len(raw)-2] + "R"
	}
	if len(raw) >= 3 && raw[1:3] == "NT" {
		raw = raw[:2] + raw[3:]
	}
	return raw
}
