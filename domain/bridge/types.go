package bridge

// Seat is one of the four positions at the table, in clockwise rotation order.
type Seat int

const (
	North Seat = iota
	East
	South
	West

	// SeatNone marks an absent or unparseable seat.
	SeatNone Seat = -1
)

var seatLetters = [4]string{"N", "E", "S", "W"}

func (s Seat) String() string {
	if s < North || s > West {
		return ""
	}
	return seatLetters[s]
}

// ParseSeat maps a seat letter to a Seat. Anything else is SeatNone.
func ParseSeat(raw string) (Seat, bool) {
	for i, letter := range seatLetters {
		if raw == letter {
			return Seat(i), true
		}
	}
	return SeatNone, false
}

// Next returns the seat immediately clockwise.
func (s Seat) Next() Seat {
	return (s + 1) % 4
}

// Partner returns the seat across the table.
func (s Seat) Partner() Seat {
	return (s + 2) % 4
}

// Side is a partnership: North-South or East-West.
type Side int

const (
	NorthSouth Side = iota
	EastWest
)

// Side returns the partnership the seat belongs to.
func (s Seat) Side() Side {
	return Side(s % 2)
}

// Seats of the side, in seat order.
func (sd Side) Seats() [2]Seat {
	if sd == NorthSouth {
		return [2]Seat{North, South}
	}
	return [2]Seat{East, West}
}

// Denom is a denomination: one of the four suits or no-trump.
// The ordering is the contract-bid ranking order, clubs lowest.
type Denom int

const (
	Clubs Denom = iota
	Diamonds
	Hearts
	Spades
	NoTrump

	// DenomNone marks an absent or unparseable denomination.
	DenomNone Denom = -1
)

var denomLetters = [5]string{"C", "D", "H", "S", "N"}

func (d Denom) String() string {
	if d < Clubs || d > NoTrump {
		return ""
	}
	return denomLetters[d]
}

// ParseDenom maps a denomination letter to a Denom.
func ParseDenom(raw string) (Denom, bool) {
	for i, letter := range denomLetters {
		if raw == letter {
			return Denom(i), true
		}
	}
	return DenomNone, false
}

// Rank is a card rank, two low through ace high.
type Rank int

const (
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

var rankLetters = map[Rank]byte{Ten: 'T', Jack: 'J', Queen: 'Q', King: 'K', Ace: 'A'}

func (r Rank) String() string {
	if r >= 2 && r <= 9 {
		return string(rune('0' + r))
	}
	if letter, ok := rankLetters[r]; ok {
		return string(letter)
	}
	return ""
}

// ParseRank maps a rank character ('2'..'9', 'T', 'J', 'Q', 'K', 'A') to a Rank.
func ParseRank(c byte) (Rank, bool) {
	if c >= '2' && c <= '9' {
		return Rank(c - '0'), true
	}
	for rank, letter := range rankLetters {
		if c == letter {
			return rank, true
		}
	}
	return 0, false
}

// Ranks lists all thirteen ranks, ace high first (deal notation order).
func Ranks() []Rank {
	ranks := []Rank{Ace, King, Queen, Jack, Ten}
	for r := Rank(9); r >= 2; r-- {
		ranks = append(ranks, r)
	}
	return ranks
}

// Card is a single playing card. Suit is never NoTrump.
type Card struct {
	Suit Denom
	Rank Rank
}

func (c Card) String() string {
	return c.Suit.String() + c.Rank.String()
}

// ParseCard parses the two-character suit-then-rank card notation, e.g. "SA" or "H7".
func ParseCard(raw string) (Card, bool) {
	if len(raw) != 2 {
		return Card{}, false
	}
	suit, ok := ParseDenom(raw[:1])
	if !ok || suit == NoTrump {
		return Card{}, false
	}
	rank, ok := ParseRank(raw[1])
	if !ok {
		return Card{}, false
	}
	return Card{Suit: suit, Rank: rank}, true
}
