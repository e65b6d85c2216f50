package player

import (
	"math"
	"testing"
)

func TestAddAuctionMistakeTieShares(t *testing.T) {
	a := &Accumulator{Name: "N"}
	// Three candidates tied for the largest magnitude.
	a.AddAuctionMistake(DefenderMissedCurrentDouble, 3, 300)
	a.AddAuctionMistake(DefenderErroneouslyDoubled, 3, 300)
	a.AddAuctionMistake(DefenderMissedHigherContract, 3, 300)

	total := 0.0
	weighted := 0.0
	for k := MistakeKind(0); k < numMistakeKinds; k++ {
		total += a.AuctionMistakes[k]
		weighted += a.WeightedAuctionMistakes[k]
	}
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("mistake shares sum to %v, want 1", total)
	}
	if math.Abs(weighted-300) > 1e-9 {
		t.Errorf("weighted shares sum to %v, want 300", weighted)
	}
}

func TestTableMerge(t *testing.T) {
	left := Table{}
	a := left.Get("Smith")
	a.Leads = 2
	a.LeadMistakes = 1
	a.WeightedLeadMistakes = 140
	a.AddAuctionMistake(PassedHigherContract, 2, 100)

	right := Table{}
	b := right.Get("Smith")
	b.Leads = 3
	b.AddAuctionMistake(PassedHigherContract, 2, 100)
	right.Get("Jones").Claims = 4

	left.Merge(right)

	merged := left["Smith"]
	if merged.Leads != 5 || merged.LeadMistakes != 1 || merged.WeightedLeadMistakes != 140 {
		t.Errorf("merged lead counters = %d/%d/%d, want 5/1/140",
			merged.Leads, merged.LeadMistakes, merged.WeightedLeadMistakes)
	}
	if got := merged.AuctionMistakes[PassedHigherContract]; math.Abs(got-1) > 1e-9 {
		t.Errorf("merged passed_higher_contract = %v, want 1", got)
	}
	if got := merged.WeightedAuctionMistakes[PassedHigherContract]; math.Abs(got-100) > 1e-9 {
		t.Errorf("merged weighted passed_higher_contract = %v, want 100", got)
	}
	if left["Jones"].Claims != 4 {
		t.Errorf("Jones claims = %d, want 4", left["Jones"].Claims)
	}
}

func TestReportRowMatchesHeader(t *testing.T) {
	header := ReportHeader()
	a := &Accumulator{Name: "Smith"}
	a.Claims = 3
	a.AuctionsAnalyzed = 7
	a.AddAuctionMistake(DeclarerErroneousRedouble, 1, 50)

	row := a.Row()
	if len(row) != len(header) {
		t.Fatalf("row has %d columns, header has %d", len(row), len(header))
	}

	at := func(column string) string {
		for i, name := range header {
			if name == column {
				return row[i]
			}
		}
		t.Fatalf("no column %q", column)
		return ""
	}
	if at("name") != "Smith" {
		t.Errorf("name column = %q", at("name"))
	}
	if at("claims") != "3" {
		t.Errorf("claims column = %q", at("claims"))
	}
	if at("auctions_analyzed") != "7" {
		t.Errorf("auctions_analyzed column = %q", at("auctions_analyzed"))
	}
	if at("declarer_erroneous_redouble") != "1" {
		t.Errorf("declarer_erroneous_redouble column = %q", at("declarer_erroneous_redouble"))
	}
	if at("weighted_declarer_erroneous_redouble") != "50" {
		t.Errorf("weighted_declarer_erroneous_redouble column = %q", at("weighted_declarer_erroneous_redouble"))
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{3, "3"},
		{0.5, "0.5"},
		{1.0 / 3, "0.3333333333333333"},
	}
	for _, tt := range tests {
		if got := formatCount(tt.v); got != tt.want {
			t.Errorf("formatCount(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
