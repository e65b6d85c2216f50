package app

import (
	"context"
	"testing"

	"bridgelens/domain/board"
	"bridgelens/domain/mistake"
	"bridgelens/domain/player"
	"bridgelens/internal"
	"bridgelens/internal/testkit"
	"bridgelens/ports"
)

const testDeal = "N:AK75.54.987653.A Q.AT983.42.JT753 642.KQJ7.AQJ.962 JT983.62.KT.KQ84"

func testRecord() board.Record {
	return board.Record{
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

func flatTable(tricks int) mistake.TrickTable {
	var table mistake.TrickTable
	for d := range table {
		for s := range table[d] {
			table[d][s] = tricks
		}
	}
	return table
}

func testOracle() *testkit.Oracle {
	oracle := testkit.NewOracle()
	oracle.Tables[testDeal] = flatTable(9)
	oracle.Trajectories["SQS2S3SKS5"] = mistake.Trajectory{9, 9, 9, 9, 9, 9}
	return oracle
}

func quietLogger() *internal.Logger {
	return internal.NewLogger(internal.LogLevelError)
}

func TestRun(t *testing.T) {
	source := testkit.NewBoardSource(testRecord())
	oracle := testOracle()
	roster := testkit.NewRoster(map[string]string{
		"North": "North Pro,100,5",
		"East":  "East Pro,50,2",
	})

	svc := NewAnalyzerService(source, oracle, roster, quietLogger(), 2)
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !roster.Loaded {
		t.Error("roster was not loaded")
	}
	if report.RunID == "" {
		t.Error("RunID is empty")
	}
	if report.BoardsRead != 1 || report.BoardsCleaned != 1 {
		t.Errorf("read %d cleaned %d, want 1 and 1", report.BoardsRead, report.BoardsCleaned)
	}
	if report.AuctionsAnalyzed != 1 || report.PlaysAnalyzed != 1 {
		t.Errorf("auctions %d plays %d, want 1 and 1", report.AuctionsAnalyzed, report.PlaysAnalyzed)
	}
	if len(report.BoardDefects)+len(report.AuctionDefects)+len(report.PlayDefects) != 0 {
		t.Errorf("defects recorded on a clean board: %v %v %v",
			report.BoardDefects, report.AuctionDefects, report.PlayDefects)
	}

	declarer, ok := report.Players["North Pro,100,5"]
	if !ok {
		t.Fatalf("normalized declarer missing from %v", keys(report.Players))
	}
	if declarer.AuctionsAnalyzed != 1 {
		t.Errorf("declarer AuctionsAnalyzed = %d, want 1", declarer.AuctionsAnalyzed)
	}
	// Dummy's three cards after the lead are charged to the declarer.
	if declarer.CardsPlayedAsDeclarer != 3 {
		t.Errorf("declarer CardsPlayedAsDeclarer = %d, want 3", declarer.CardsPlayedAsDeclarer)
	}
	if declarer.Claims != 1 || declarer.ClaimMistakes != 0 {
		t.Errorf("declarer claims = %d/%d, want 1/0", declarer.Claims, declarer.ClaimMistakes)
	}

	leader, ok := report.Players["East Pro,50,2"]
	if !ok {
		t.Fatalf("normalized leader missing from %v", keys(report.Players))
	}
	if leader.Leads != 1 || leader.LeadMistakes != 0 {
		t.Errorf("leader leads = %d/%d, want 1/0", leader.Leads, leader.LeadMistakes)
	}

	// Names without a roster entry pass through unchanged.
	west, ok := report.Players["West"]
	if !ok {
		t.Fatalf("West missing from %v", keys(report.Players))
	}
	if west.CardsPlayedAsDefender != 1 {
		t.Errorf("West CardsPlayedAsDefender = %d, want 1", west.CardsPlayedAsDefender)
	}
}

func TestRunWithoutRoster(t *testing.T) {
	svc := NewAnalyzerService(testkit.NewBoardSource(testRecord()), testOracle(), nil, quietLogger(), 1)
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if _, ok := report.Players["North"]; !ok {
		t.Errorf("recorded name missing from %v", keys(report.Players))
	}
}

func TestCleanTalliesDefects(t *testing.T) {
	good := testRecord()

	rejected := testRecord()
	rejected.Deal = "N:AK7.54.987653.A Q.AT983.42.JT753 642.KQJ7.AQJ.962 JT983.62.KT.KQ84"

	defective := testRecord()
	defective.Auction = "1D 1D P P P"
	defective.Declarer = ""
	defective.Lead = ""

	svc := NewAnalyzerService(testkit.NewBoardSource(good, rejected, defective), testOracle(), nil, quietLogger(), 1)
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.BoardsRead != 3 || report.BoardsCleaned != 2 {
		t.Errorf("read %d cleaned %d, want 3 and 2", report.BoardsRead, report.BoardsCleaned)
	}
	if total(report.BoardDefects) != 1 {
		t.Errorf("BoardDefects = %v, want one tally", report.BoardDefects)
	}
	if total(report.AuctionDefects) != 1 {
		t.Errorf("AuctionDefects = %v, want one tally", report.AuctionDefects)
	}
	if total(report.PlayDefects) != 1 {
		t.Errorf("PlayDefects = %v, want one tally", report.PlayDefects)
	}
	// The defective board has no usable auction or play left to solve.
	if report.AuctionsAnalyzed != 1 || report.PlaysAnalyzed != 1 {
		t.Errorf("auctions %d plays %d, want 1 and 1", report.AuctionsAnalyzed, report.PlaysAnalyzed)
	}
}

func TestRunChunksOracleBatches(t *testing.T) {
	records := make([]board.Record, 45)
	for i := range records {
		records[i] = testRecord()
	}

	oracle := testOracle()
	svc := NewAnalyzerService(testkit.NewBoardSource(records...), oracle, nil, quietLogger(), 1)
	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := tableBatchSizes(oracle.TableBatches); !equalInts(got, []int{32, 13}) {
		t.Errorf("table batches = %v, want [32 13]", got)
	}
	if got := playBatchSizes(oracle.PlayBatches); !equalInts(got, []int{20, 20, 5}) {
		t.Errorf("play batches = %v, want [20 20 5]", got)
	}
}

func keys(players player.Table) []string {
	names := make([]string, 0, len(players))
	for name := range players {
		names = append(names, name)
	}
	return names
}

func total(tallies map[string]int) int {
	sum := 0
	for _, n := range tallies {
		sum += n
	}
	return sum
}

func tableBatchSizes(batches [][]string) []int {
	sizes := make([]int, len(batches))
	for i, b := range batches {
		sizes[i] = len(b)
	}
	return sizes
}

func playBatchSizes(batches [][]ports.PlayRequest) []int {
	sizes := make([]int, len(batches))
	for i, b := range batches {
		sizes[i] = len(b)
	}
	return sizes
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
