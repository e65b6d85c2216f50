package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"bridgelens/domain/player"
	"bridgelens/ports"
)

// writeSummary renders summary.html: run counts, defect tallies and
// aggregate mistake statistics.
func (w *Writer) writeSummary(report *ports.RunReport) error {
	md := summaryMarkdown(report)
	html := markdown.ToHTML([]byte(md), nil, nil)
	return os.WriteFile(filepath.Join(w.dir, "summary.html"), html, 0o644)
}

func summaryMarkdown(report *ports.RunReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Analysis run %s\n\n", report.RunID)
	fmt.Fprintf(&b, "Started %s, finished %s.\n\n",
		report.StartedAt.Format("2006-01-02 15:04:05"),
		report.FinishedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "- Boards read: %d\n", report.BoardsRead)
	fmt.Fprintf(&b, "- Boards cleaned: %d\n", report.BoardsCleaned)
	fmt.Fprintf(&b, "- Auctions analyzed: %d\n", report.AuctionsAnalyzed)
	fmt.Fprintf(&b, "- Plays analyzed: %d\n", report.PlaysAnalyzed)
	fmt.Fprintf(&b, "- Players seen: %d\n\n", len(report.Players))

	writeMistakeStats(&b, report.Players)
	writeDefectSection(&b, "Board defects", report.BoardDefects)
	writeDefectSection(&b, "Auction defects", report.AuctionDefects)
	writeDefectSection(&b, "Play defects", report.PlayDefects)

	return b.String()
}

// writeMistakeStats summarizes the distribution of weighted mistakes per
// player, and correlates roster masterpoints against weighted mistakes for
// the players that resolved to a roster entry.
func writeMistakeStats(b *strings.Builder, players player.Table) {
	var weighted []float64
	var masterpoints, matchedWeighted []float64
	for name, a := range players {
		total := totalWeightedMistakes(a)
		weighted = append(weighted, total)
		if mp, ok := masterpointsOf(name); ok {
			masterpoints = append(masterpoints, mp)
			matchedWeighted = append(matchedWeighted, total)
		}
	}
	if len(weighted) == 0 {
		return
	}

	mean, _ := stats.Mean(weighted)
	median, _ := stats.Median(weighted)
	p90, _ := stats.Percentile(weighted, 90)

	fmt.Fprintf(b, "## Weighted mistakes per player\n\n")
	fmt.Fprintf(b, "- Mean: %.1f\n", mean)
	fmt.Fprintf(b, "- Median: %.1f\n", median)
	fmt.Fprintf(b, "- 90th percentile: %.1f\n", p90)

	if len(masterpoints) >= 2 {
		r := stat.Correlation(masterpoints, matchedWeighted, nil)
		fmt.Fprintf(b, "- Correlation of masterpoints and weighted mistakes: %.3f (%d ranked players)\n", r, len(masterpoints))
	}
	fmt.Fprint(b, "\n")
}

// totalWeightedMistakes sums every weighted mistake counter of one player.
func totalWeightedMistakes(a *player.Accumulator) float64 {
	total := float64(a.WeightedClaimMistakes + a.WeightedLeadMistakes +
		a.WeightedPlayMistakesAsDeclarer + a.WeightedPlayMistakesAsDefender)
	for _, v := range a.WeightedAuctionMistakes {
		total += v
	}
	return total
}

// masterpointsOf extracts the masterpoints from a roster-normalized player
// key ("Full Name,mp,pp"). Unresolved players carry -1 and are skipped.
func masterpointsOf(name string) (float64, bool) {
	parts := strings.Split(name, ",")
	if len(parts) < 3 {
		return 0, false
	}
	mp, err := strconv.ParseFloat(parts[len(parts)-2], 64)
	if err != nil || mp < 0 {
		return 0, false
	}
	return mp, true
}

func writeDefectSection(b *strings.Builder, title string, tally map[string]int) {
	if len(tally) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, row := range defectRows("", tally) {
		fmt.Fprintf(b, "- %s: %s\n", row[1], row[2])
	}
	fmt.Fprint(b, "\n")
}
