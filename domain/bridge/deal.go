package bridge

import (
	"errors"
	"fmt"
	"strings"
)

// Deal error kinds. These belong to the closed BoardError set; the board
// package folds them into its classification.
var (
	ErrMissingDeal    = errors.New("missing deal")
	ErrUnbalancedDeal = errors.New("deal had a hand that did not have 13 cards")
	ErrInvalidCard    = errors.New("invalid card in the deal, or a card appeared twice")
)

// Deal holds the thirteen cards of each seat, indexed by Seat.
type Deal [4][]Card

// ValidateDeal parses and validates the PBN deal notation:
//
//	"N:AK75.54.987653.A Q.AT983.42.JT753 642.KQJ7.AQJ.962 JT983.62.KT.KQ84"
//
// The leading letter names the seat holding the first hand; suits within a
// hand are ordered spades, hearts, diamonds, clubs. A deal is valid when
// every card is legal, appears exactly once, and every hand has 13 cards.
func ValidateDeal(deal string) (Deal, error) {
	if deal == "" {
		return Deal{}, ErrMissingDeal
	}

	first, ok := ParseSeat(deal[:1])
	if !ok || len(deal) < 2 || deal[1] != ':' {
		return Deal{}, fmt.Errorf("%w: bad deal prefix", ErrInvalidCard)
	}

	// One multiset per suit, to catch duplicates and invented cards.
	remaining := [4]map[Rank]bool{}
	for i := range remaining {
		remaining[i] = make(map[Rank]bool, 13)
		for _, r := range Ranks() {
			remaining[i][r] = true
		}
	}
	suitOrder := [4]Denom{Spades, Hearts, Diamonds, Clubs}

	var hands Deal
	handStrings := strings.Split(deal[2:], " ")
	if len(handStrings) != 4 {
		return Deal{}, ErrUnbalancedDeal
	}
	for pos, hand := range handStrings {
		suits := strings.Split(hand, ".")
		total := 0
		for _, suit := range suits {
			total += len(suit)
		}
		if total != 13 {
			return Deal{}, ErrUnbalancedDeal
		}
		if len(suits) != 4 {
			return Deal{}, fmt.Errorf("%w: malformed hand %q", ErrInvalidCard, hand)
		}
		seat := (Seat(pos) + first) % 4
		for suitPos, suit := range suits {
			for i := 0; i < len(suit); i++ {
				rank, ok := ParseRank(suit[i])
				if !ok || !remaining[suitPos][rank] {
					return Deal{}, ErrInvalidCard
				}
				remaining[suitPos][rank] = false
				hands[seat] = append(hands[seat], Card{Suit: suitOrder[suitPos], Rank: rank})
			}
		}
	}

	return hands, nil
}

// Copy returns a deep copy of the deal; hand slices are never shared.
func (d Deal) Copy() Deal {
	var out Deal
	for seat, hand := range d {
		out[seat] = append([]Card(nil), hand...)
	}
	return out
}
