package mistake

import (
	"bridgelens/domain/board"
	"bridgelens/domain/bridge"
	"bridgelens/domain/player"
	"bridgelens/domain/scoring"
)

// AnalyzePlay attributes play mistakes for one board against the oracle's
// trajectory of its play sequence. The board must have a validated play
// and a known contract. A card that moves the oracle value is a mistake,
// weighted by the score swing it caused: against the declarer's side for
// the declarer (and dummy, whose cards the declarer chose), in its favor
// for a defender.
func (e *Engine) AnalyzePlay(b board.Board, trajectory Trajectory, players player.Table) {
	if len(trajectory) == 0 {
		return
	}

	contract, _ := b.ContractValue()
	declarerSeat := b.DeclarerSeat()
	dummySeat := declarerSeat.Partner()
	declarer := players.Get(b.Names[declarerSeat])
	vulnerable := b.VulnerableFor(declarerSeat.Side())

	score := func(tricks int) int {
		return scoring.Score(contract, tricks, vulnerable, b.Year)
	}

	previous := trajectory[0]
	last := previous
	for pos := 1; pos < len(trajectory); pos++ {
		value := trajectory[pos]
		seat := b.PlayOrder[pos-1]

		switch {
		case seat == declarerSeat || seat == dummySeat:
			declarer.CardsPlayedAsDeclarer++
			if value < previous {
				declarer.PlayMistakesAsDeclarer++
				declarer.WeightedPlayMistakesAsDeclarer += score(previous) - score(value)
			}
		case pos == 1:
			leader := players.Get(b.Names[seat])
			leader.Leads++
			if value > previous {
				leader.LeadMistakes++
				leader.WeightedLeadMistakes += score(value) - score(previous)
			}
		default:
			defender := players.Get(b.Names[seat])
			defender.CardsPlayedAsDefender++
			if value > previous {
				defender.PlayMistakesAsDefender++
				defender.WeightedPlayMistakesAsDefender += score(value) - score(previous)
			}
		}

		previous = value
		last = value
	}

	if b.Claim == board.ClaimNone {
		return
	}

	for _, name := range b.Names {
		players.Get(name).Claims++
	}

	// The oracle value after the last played card is what the claim is
	// measured against: conceding more is a defender mistake, claiming
	// less a declarer one.
	switch {
	case last < b.Claim:
		for _, seat := range [2]bridge.Seat{declarerSeat.Next(), declarerSeat.Next().Partner()} {
			defender := players.Get(b.Names[seat])
			defender.ClaimMistakes++
			defender.WeightedClaimMistakes += score(b.Claim) - score(last)
		}
	case last > b.Claim:
		declarer.ClaimMistakes++
		declarer.WeightedClaimMistakes += score(last) - score(b.Claim)
	}
}
