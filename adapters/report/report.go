// Package report writes an analysis run's outputs: the per-player CSV and
// spreadsheet, and an HTML summary with aggregate statistics.
package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"bridgelens/domain/player"
	apperrors "bridgelens/internal/errors"
	"bridgelens/ports"
)

// Writer implements the ReportSink interface over an output directory.
type Writer struct {
	dir string
}

// NewWriter creates a report writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write renders players.csv, players.xlsx and summary.html into the
// output directory.
func (w *Writer) Write(ctx context.Context, report *ports.RunReport) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return apperrors.Wrap(err, "failed to create report directory")
	}

	rows := sortedRows(report.Players)

	if err := w.writeCSV(rows); err != nil {
		return apperrors.Wrap(err, "failed to write player csv")
	}
	if err := w.writeWorkbook(report, rows); err != nil {
		return apperrors.Wrap(err, "failed to write player workbook")
	}
	if err := w.writeSummary(report); err != nil {
		return apperrors.Wrap(err, "failed to write summary")
	}
	return nil
}

// sortedRows renders every accumulator, ordered by player name.
func sortedRows(players player.Table) [][]string {
	names := make([]string, 0, len(players))
	for name := range players {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, players[name].Row())
	}
	return rows
}

func (w *Writer) writeCSV(rows [][]string) error {
	f, err := os.Create(filepath.Join(w.dir, "players.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(player.ReportHeader()); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func (w *Writer) writeWorkbook(report *ports.RunReport, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	const players = "Players"
	f.SetSheetName("Sheet1", players)
	if err := writeGrid(f, players, append([][]string{player.ReportHeader()}, rows...)); err != nil {
		return err
	}

	const defects = "Defects"
	if _, err := f.NewSheet(defects); err != nil {
		return err
	}
	grid := [][]string{{"category", "defect", "count"}}
	grid = append(grid, defectRows("board", report.BoardDefects)...)
	grid = append(grid, defectRows("auction", report.AuctionDefects)...)
	grid = append(grid, defectRows("play", report.PlayDefects)...)
	if err := writeGrid(f, defects, grid); err != nil {
		return err
	}

	return f.SaveAs(filepath.Join(w.dir, "players.xlsx"))
}

func writeGrid(f *excelize.File, sheet string, grid [][]string) error {
	for i, row := range grid {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// defectRows lists a defect tally in descending count order.
func defectRows(category string, tally map[string]int) [][]string {
	type kv struct {
		defect string
		count  int
	}
	sorted := make([]kv, 0, len(tally))
	for defect, count := range tally {
		sorted = append(sorted, kv{defect, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].defect < sorted[j].defect
	})

	rows := make([][]string, 0, len(sorted))
	for _, e := range sorted {
		rows = append(rows, []string{category, e.defect, fmt.Sprintf("%d", e.count)})
	}
	return rows
}
