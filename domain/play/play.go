package play

import (
	"errors"
	"fmt"
	"strings"

	"bridgelens/domain/bridge"
)

// Play sequence error kinds, the closed PlaySequenceError set. A failed play
// sequence is recorded as a per-board defect and treated as absent; the rest
// of the board stays valid.
var (
	ErrPlay = errors.New("invalid play sequence")

	ErrMissingInfo    = fmt.Errorf("%w: missing play sequence, lead, or trump", ErrPlay)
	ErrFirstCardDash  = fmt.Errorf("%w: first card played to a trick is a dash", ErrPlay)
	ErrCardAfterDash  = fmt.Errorf("%w: a card is played to a trick after a dash", ErrPlay)
	ErrUnbalanced     = fmt.Errorf("%w: the number of legal plays is not divisible by 4", ErrPlay)
	ErrMultipleClaim  = fmt.Errorf("%w: dashes appeared in more than one trick", ErrPlay)
	ErrIllegalPlay    = fmt.Errorf("%w: a card is played twice or the player never had it", ErrPlay)
	ErrRevoke         = fmt.Errorf("%w: a player reneged", ErrPlay)
)

// Dash is the placeholder filling out a trick truncated by a claim.
const Dash = "-"

// playReplacer rewrites the two recognizable malformed play tokens: one
// known concatenation of two cards, and the doubled-dash spelling of the
// claim placeholder.
var playReplacer = strings.NewReplacer("HTHQ", "HT HQ", "--", Dash)

// NormalizePlays splits a raw play string into tokens, rewriting the
// recognizable malformed ones. Tokens that are neither held cards nor
// placeholders are dropped later, by Validate, against the deal.
func NormalizePlays(raw string) []string {
	return strings.Split(playReplacer.Replace(raw), " ")
}

// entry is one slot of a trick: a card, or the claim placeholder.
type entry struct {
	card bridge.Card
	dash bool
}

// Result is the outcome of validating a play sequence.
type Result struct {
	// Flat is the cards in true played order, concatenated without
	// separators, placeholders omitted. This is the play trace handed to
	// the oracle.
	Flat string
	// SeatOrder lists, per card of Flat, the seat that played it.
	SeatOrder []bridge.Seat
	// TricksPlayed counts completed tricks (no placeholders).
	TricksPlayed int
	// DeclarerTricks counts completed tricks won by declarer or dummy.
	DeclarerTricks int
}

// Validate checks a raw play sequence against the deal and reconstructs the
// true play order.
//
// The raw sequence lists tricks in groups of four, each group starting from
// the original lead seat's slot regardless of who actually led that trick.
// Validate consumes each card from the seat its slot implies, reorders every
// completed group to start from the actual trick leader, verifies claim
// placeholders and revokes, and tracks the trick winner as the next leader.
// The caller's hands are never mutated.
func Validate(raw string, lead bridge.Seat, hands bridge.Deal, trump bridge.Denom) (Result, error) {
	if raw == "" || lead == bridge.SeatNone || trump == bridge.DenomNone {
		return Result{}, ErrMissingInfo
	}

	hands = hands.Copy()

	// Drop tokens that are neither placeholders nor cards of the deal.
	held := make(map[bridge.Card]bool, 52)
	for _, hand := range hands {
		for _, card := range hand {
			held[card] = true
		}
	}
	var plays []entry
	for _, token := range NormalizePlays(raw) {
		if token == Dash {
			plays = append(plays, entry{dash: true})
			continue
		}
		if card, ok := bridge.ParseCard(token); ok && held[card] {
			plays = append(plays, entry{card: card})
		}
	}

	if len(plays)%4 != 0 {
		return Result{}, ErrUnbalanced
	}

	var res Result
	var flat strings.Builder
	declarer := (lead + 3) % 4
	leader := lead
	var trick []entry
	claimed := false

	for pos, play := range plays {
		if claimed {
			// A claim truncates the board; nothing may follow it.
			return Result{}, ErrMultipleClaim
		}

		if !play.dash {
			seat := (lead + bridge.Seat(pos)) % 4
			if !removeCard(&hands[seat], play.card) {
				return Result{}, ErrIllegalPlay
			}
		}
		trick = append(trick, play)

		if pos%4 != 3 {
			continue
		}

		// Reorder the listed trick to true play order, starting from the
		// actual leader of this trick.
		ordered := make([]entry, 0, 4)
		for k := 0; k < 4; k++ {
			slot := (int(leader) - int(lead) + k + 4) % 4
			ordered = append(ordered, trick[slot])
			if !trick[slot].dash {
				flat.WriteString(trick[slot].card.String())
				res.SeatOrder = append(res.SeatOrder, (leader+bridge.Seat(k))%4)
			}
		}

		dashes, err := countDashes(ordered)
		if err != nil {
			return Result{}, err
		}
		if reneged(ordered[:4-dashes], hands, leader) {
			return Result{}, ErrRevoke
		}

		if dashes == 0 {
			leader = trickWinner(ordered, trump, leader)
			if leader == declarer || leader == declarer.Partner() {
				res.DeclarerTricks++
			}
			res.TricksPlayed++
		} else {
			claimed = true
		}
		trick = trick[:0]
	}

	res.Flat = flat.String()
	return res, nil
}

func removeCard(hand *[]bridge.Card, card bridge.Card) bool {
	for i, held := range *hand {
		if held == card {
			*hand = append((*hand)[:i], (*hand)[i+1:]...)
			return true
		}
	}
	return false
}

// countDashes validates the placeholders of a trick in true play order: the
// first slot must be a real card, and no card may follow a placeholder.
func countDashes(ordered []entry) (int, error) {
	dashes := 0
	for pos, e := range ordered {
		if e.dash {
			if pos == 0 {
				return 0, ErrFirstCardDash
			}
			dashes++
		} else if dashes > 0 {
			return 0, ErrCardAfterDash
		}
	}
	return dashes, nil
}

// reneged reports whether any seat failed to follow the led suit while still
// holding a card of it. hands is the holding state after the trick's cards
// were removed; the trick may be partial.
func reneged(trick []entry, hands bridge.Deal, leader bridge.Seat) bool {
	if len(trick) == 0 {
		return false
	}
	ledSuit := trick[0].card.Suit
	for pos := 1; pos < len(trick); pos++ {
		if trick[pos].card.Suit == ledSuit {
			continue
		}
		seat := (leader + bridge.Seat(pos)) % 4
		for _, held := range hands[seat] {
			if held.Suit == ledSuit {
				return true
			}
		}
	}
	return false
}

// trickWinner determines the winning seat of a full trick in true play
// order: the highest trump if any trump was played, otherwise the highest
// card of the led suit.
func trickWinner(trick []entry, trump bridge.Denom, leader bridge.Seat) bridge.Seat {
	ledSuit := trick[0].card.Suit
	highestTrump := bridge.Rank(-1)
	highestLed := bridge.Rank(-1)
	winner := bridge.SeatNone
	for pos, e := range trick {
		switch {
		case e.card.Suit == trump && e.card.Rank > highestTrump:
			highestTrump = e.card.Rank
			winner = (leader + bridge.Seat(pos)) % 4
		case e.card.Suit == ledSuit && highestTrump == -1 && e.card.Rank > highestLed:
			highestLed = e.card.Rank
			winner = (leader + bridge.Seat(pos)) % 4
		}
	}
	return winner
}
