// Package player accumulates per-player activity counts and attributed
// mistakes. Every counter pairs a plain count with a weighted counterpart
// holding the summed score-difference magnitudes.
package player

// MistakeKind identifies one auction mistake family.
type MistakeKind int

const (
	DefenderMissedCurrentDouble MistakeKind = iota
	DefenderErroneouslyDoubled
	DefenderMissedHigherContract
	DeclarerMissedHigherContract
	DeclarerMissedDoublingOpponentsLastBid
	DeclarerMissedOpponentsLastRedouble
	DeclarerMissedRedoublingOpponentsErroneousDouble
	DeclarerMissedOpponentsLastBid
	DeclarerErroneousRedouble
	PassedHigherContract

	numMistakeKinds
)

// Accumulator holds the attributed statistics of one player. Auction
// mistake counters are fractional: when several mistake candidates tie for
// the largest magnitude, each is credited an equal share.
type Accumulator struct {
	Name string

	AuctionsAnalyzed int

	Claims                int
	ClaimMistakes         int
	WeightedClaimMistakes int

	Leads                int
	LeadMistakes         int
	WeightedLeadMistakes int

	CardsPlayedAsDeclarer          int
	PlayMistakesAsDeclarer         int
	WeightedPlayMistakesAsDeclarer int

	CardsPlayedAsDefender          int
	PlayMistakesAsDefender         int
	WeightedPlayMistakesAsDefender int

	AuctionMistakes         [numMistakeKinds]float64
	WeightedAuctionMistakes [numMistakeKinds]float64
}

// AddAuctionMistake credits the player a 1/ties share of one auction
// mistake of the given score magnitude.
func (a *Accumulator) AddAuctionMistake(kind MistakeKind, ties int, magnitude int) {
	a.AuctionMistakes[kind] += 1 / float64(ties)
	a.WeightedAuctionMistakes[kind] += float64(magnitude) / float64(ties)
}

// Merge adds every counter of other into a. Names are not compared; the
// caller merges accumulators of the same player.
func (a *Accumulator) Merge(other *Accumulator) {
	a.AuctionsAnalyzed += other.AuctionsAnalyzed
	a.Claims += other.Claims
	a.ClaimMistakes += other.ClaimMistakes
	a.WeightedClaimMistakes += other.WeightedClaimMistakes
	a.Leads += other.Leads
	a.LeadMistakes += other.LeadMistakes
	a.WeightedLeadMistakes += other.WeightedLeadMistakes
	a.CardsPlayedAsDeclarer += other.CardsPlayedAsDeclarer
	a.PlayMistakesAsDeclarer += other.PlayMistakesAsDeclarer
	a.WeightedPlayMistakesAsDeclarer += other.WeightedPlayMistakesAsDeclarer
	a.CardsPlayedAsDefender += other.CardsPlayedAsDefender
	a.PlayMistakesAsDefender += other.PlayMistakesAsDefender
	a.WeightedPlayMistakesAsDefender += other.WeightedPlayMistakesAsDefender
	for k := MistakeKind(0); k < numMistakeKinds; k++ {
		a.AuctionMistakes[k] += other.AuctionMistakes[k]
		a.WeightedAuctionMistakes[k] += other.WeightedAuctionMistakes[k]
	}
}

// Table maps player names to their accumulators.
type Table map[string]*Accumulator

// Get returns the accumulator for name, creating it on first use.
func (t Table) Get(name string) *Accumulator {
	a, ok := t[name]
	if !ok {
		a = &Accumulator{Name: name}
		t[name] = a
	}
	return a
}

// Merge folds every accumulator of other into t, by name.
func (t Table) Merge(other Table) {
	for name, a := range other {
		t.Get(name).Merge(a)
	}
}
