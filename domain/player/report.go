package player

import "strconv"

// mistakeColumns lists the auction mistake kinds in report column order.
var mistakeColumns = [numMistakeKinds]struct {
	kind MistakeKind
	name string
}{
	{DefenderMissedCurrentDouble, "defender_missed_current_double"},
	{DefenderErroneouslyDoubled, "defender_erroneously_doubled"},
	{DefenderMissedHigherContract, "defender_missed_higher_contract"},
	{DeclarerMissedHigherContract, "declarer_missed_higher_contract"},
	{DeclarerMissedDoublingOpponentsLastBid, "declarer_missed_doubling_opponents_last_bid"},
	{DeclarerMissedOpponentsLastRedouble, "declarer_missed_opponents_last_redouble"},
	{DeclarerMissedRedoublingOpponentsErroneousDouble, "declarer_missed_redoubling_opponents_erroneous_double"},
	{DeclarerMissedOpponentsLastBid, "declarer_missed_opponents_last_bid"},
	{DeclarerErroneousRedouble, "declarer_erroneous_redouble"},
	{PassedHigherContract, "passed_higher_contract"},
}

// ReportHeader is the report's column order. Play statistics come first,
// then the auction mistake families, each count immediately followed by its
// weighted counterpart.
func ReportHeader() []string {
	header := []string{
		"name",
		"claims", "claim_mistakes", "weighted_claim_mistakes",
		"leads", "lead_mistakes", "weighted_lead_mistakes",
		"cards_played_as_declarer", "play_mistakes_as_declarer", "weighted_play_mistakes_as_declarer",
		"cards_played_as_defender", "play_mistakes_as_defender", "weighted_play_mistakes_as_defender",
		"auctions_analyzed",
	}
	for _, col := range mistakeColumns {
		header = append(header, col.name, "weighted_"+col.name)
	}
	return header
}

// Row renders the accumulator in ReportHeader order.
func (a *Accumulator) Row() []string {
	row := []string{
		a.Name,
		strconv.Itoa(a.Claims), strconv.Itoa(a.ClaimMistakes), strconv.Itoa(a.WeightedClaimMistakes),
		strconv.Itoa(a.Leads), strconv.Itoa(a.LeadMistakes), strconv.Itoa(a.WeightedLeadMistakes),
		strconv.Itoa(a.CardsPlayedAsDeclarer), strconv.Itoa(a.PlayMistakesAsDeclarer), strconv.Itoa(a.WeightedPlayMistakesAsDeclarer),
		strconv.Itoa(a.CardsPlayedAsDefender), strconv.Itoa(a.PlayMistakesAsDefender), strconv.Itoa(a.WeightedPlayMistakesAsDefender),
		strconv.Itoa(a.AuctionsAnalyzed),
	}
	for _, col := range mistakeColumns {
		row = append(row,
			formatCount(a.AuctionMistakes[col.kind]),
			formatCount(a.WeightedAuctionMistakes[col.kind]))
	}
	return row
}

// formatCount renders a possibly fractional counter, without a decimal
// point when the value is whole.
func formatCount(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
