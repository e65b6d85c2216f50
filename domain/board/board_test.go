package board

import (
	"errors"
	"reflect"
	"testing"

	"bridgelens/domain/auction"
	"bridgelens/domain/bridge"
	"bridgelens/domain/play"
)

const testDeal = "N:AK75.54.987653.A Q.AT983.42.JT753 642.KQJ7.AQJ.962 JT983.62.KT.KQ84"

// goodRecord yields a fully consistent record; tests mutate single fields.
func goodRecord() Record {
	return Record{
		Event:      "2000 Bridge",
		Date:       "2000.??.??",
		NorthName:  "North",
		EastName:   "East",
		SouthName:  "South",
		WestName:   "West",
		Deal:       testDeal,
		Vulnerable: "All",
		Dealer:     "N",
		BidStart:   "N",
		Auction:    "1D 1H X P P 2C 2D 3C 3D P P P",
		Contract:   "3D",
		Declarer:   "N",
		Lead:       "E",
		Play:       "SQ S2 S3 SK - - - S5",
		Result:     "9",
	}
}

func TestClean(t *testing.T) {
	got, notes, err := Clean(goodRecord())
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if notes.AuctionDefect != nil || notes.PlayDefect != nil {
		t.Fatalf("Clean() notes = %+v, want none", notes)
	}

	want := Board{
		Names:        [4]string{"North", "East", "South", "West"},
		Deal:         testDeal,
		BidStart:     "N",
		Auction:      auction.Auction{"1D", "1H", "X", "P", "P", "2C", "2D", "3C", "3D", "P", "P", "P"},
		Contract:     "3D",
		Declarer:     "N",
		Lead:         "E",
		Play:         "SQS2S3SKS5",
		PlayOrder:    []bridge.Seat{bridge.East, bridge.South, bridge.West, bridge.North, bridge.North},
		Claim:        9,
		NSVulnerable: true,
		EWVulnerable: true,
		Year:         2000,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Clean() = %+v, want %+v", got, want)
	}
}

func TestCleanRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Record)
		want   error
	}{
		{
			"all names missing",
			func(r *Record) { r.NorthName, r.EastName, r.SouthName, r.WestName = "", "", "", "" },
			ErrMissingNames,
		},
		{
			"contract contradicts auction",
			func(r *Record) { r.Contract = "4D" },
			ErrContractContradiction,
		},
		{
			"declarer contradicts auction",
			func(r *Record) { r.Declarer = "E" },
			ErrDeclarerContradiction,
		},
		{
			"lead contradicts declarer",
			func(r *Record) { r.Lead = "S" },
			ErrLeadContradiction,
		},
		{
			"short hand",
			func(r *Record) { r.Deal = "N:AK7.54.987653.A Q.AT983.42.JT753 642.KQJ7.AQJ.962 JT983.62.KT.KQ84" },
			bridge.ErrUnbalancedDeal,
		},
		{
			"play recorded on a passed-out board",
			func(r *Record) {
				r.Auction = "P P P P"
				r.Contract = "P"
				r.Declarer = "P"
				r.Lead = "P"
			},
			ErrPassContradiction,
		},
		{
			"claim below tricks already won",
			func(r *Record) { r.Result = "0" },
			ErrClaim,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := goodRecord()
			tt.mutate(&rec)
			_, _, err := Clean(rec)
			if !errors.Is(err, tt.want) {
				t.Errorf("Clean() error = %v, want %v", err, tt.want)
			}
			if !IsBoardError(err) {
				t.Errorf("IsBoardError(%v) = false, want true", err)
			}
		})
	}
}

// A defective auction does not reject the board by itself; the auction is
// treated as absent and the directly supplied fields stand alone. With no
// usable lead the play is defective too, and a recorded result is then not
// interpreted as a claim.
func TestCleanAuctionDefect(t *testing.T) {
	rec := goodRecord()
	rec.Auction = "1D 1D P P P"
	rec.Declarer = ""
	rec.Lead = ""

	got, notes, err := Clean(rec)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if !errors.Is(notes.AuctionDefect, auction.ErrContractBid) {
		t.Errorf("AuctionDefect = %v, want %v", notes.AuctionDefect, auction.ErrContractBid)
	}
	if !errors.Is(notes.PlayDefect, play.ErrMissingInfo) {
		t.Errorf("PlayDefect = %v, want %v", notes.PlayDefect, play.ErrMissingInfo)
	}
	if got.Auction != nil {
		t.Errorf("Auction = %v, want none", got.Auction)
	}
	if got.Contract != "3D" {
		t.Errorf("Contract = %q, want %q", got.Contract, "3D")
	}
	if got.Play != "" || got.PlayOrder != nil {
		t.Errorf("Play = %q %v, want absent", got.Play, got.PlayOrder)
	}
	if got.Claim != ClaimNone {
		t.Errorf("Claim = %d, want %d", got.Claim, ClaimNone)
	}
}

// The play is validated against the reconciled lead, so a missing lead
// column is recovered from the auction.
func TestCleanDerivedLeadDrivesPlay(t *testing.T) {
	rec := goodRecord()
	rec.Lead = ""

	got, notes, err := Clean(rec)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if notes.PlayDefect != nil {
		t.Fatalf("PlayDefect = %v, want none", notes.PlayDefect)
	}
	if got.Lead != "E" {
		t.Errorf("Lead = %q, want %q", got.Lead, "E")
	}
	if got.Play != "SQS2S3SKS5" {
		t.Errorf("Play = %q, want %q", got.Play, "SQS2S3SKS5")
	}
}

func TestCleanBidStartFallsBackToDealer(t *testing.T) {
	rec := goodRecord()
	rec.BidStart = ""
	rec.Dealer = "N"

	got, _, err := Clean(rec)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if got.BidStart != "N" {
		t.Errorf("BidStart = %q, want %q", got.BidStart, "N")
	}
}

func TestComputeClaim(t *testing.T) {
	tests := []struct {
		name           string
		result         string
		tricksPlayed   int
		declarerTricks int
		want           int
		wantErr        error
	}{
		{"valid", "10", 6, 5, 10, nil},
		{"not a number", "?", 6, 5, ClaimNone, nil},
		{"out of range", "14", 6, 5, ClaimNone, nil},
		{"fewer than declarer already won", "8", 10, 9, ClaimNone, ErrClaim},
		{"more than could still be won", "12", 12, 10, ClaimNone, ErrClaim},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeClaim(tt.result, tt.tricksPlayed, tt.declarerTricks)
			if got != tt.want || !errors.Is(err, tt.wantErr) {
				t.Errorf("ComputeClaim(%q, %d, %d) = %d, %v, want %d, %v",
					tt.result, tt.tricksPlayed, tt.declarerTricks, got, err, tt.want, tt.wantErr)
			}
		})
	}
}

func TestYear(t *testing.T) {
	tests := []struct {
		event string
		date  string
		want  int
	}{
		{"2016", "2010.??.??", 2010},
		{"2000 Bridge Game", "#", 2000},
		{"Bridge 2017", "?", 0},
		{"Bridge1954", "", 0},
		{"Bridge1982Champs", "2032.??.??", 1982},
		{"1999 Cup 2017", "", 0},
		{"", "", 0},
	}
	for _, tt := range tests {
		if got := Year(tt.event, tt.date); got != tt.want {
			t.Errorf("Year(%q, %q) = %d, want %d", tt.event, tt.date, got, tt.want)
		}
	}
}

func TestParseVulnerability(t *testing.T) {
	tests := []struct {
		raw    string
		ns, ew bool
	}{
		{"None", false, false},
		{"NS", true, false},
		{"EW", false, true},
		{"All", true, true},
		{"NZ", true, false},
		{"All]", true, true},
		{"", false, false},
	}
	for _, tt := range tests {
		ns, ew := ParseVulnerability(tt.raw)
		if ns != tt.ns || ew != tt.ew {
			t.Errorf("ParseVulnerability(%q) = %t, %t, want %t, %t", tt.raw, ns, ew, tt.ns, tt.ew)
		}
	}
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		direct, derived string
		want            string
		wantErr         bool
	}{
		{"0", "0", "0", false},
		{"", "", "", false},
		{"0", "", "0", false},
		{"", "0", "0", false},
		{"0", "1", "", true},
	}
	for _, tt := range tests {
		got, err := reconcile(tt.direct, tt.derived)
		if got != tt.want || (err != nil) != tt.wantErr {
			t.Errorf("reconcile(%q, %q) = %q, %v, want %q, error %t",
				tt.direct, tt.derived, got, err, tt.want, tt.wantErr)
		}
	}
}
