// Package app orchestrates the analysis pipeline: read raw records, clean
// them into boards, run the oracle over auctions and play traces, and
// attribute mistakes to players.
package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"bridgelens/domain/board"
	"bridgelens/domain/mistake"
	"bridgelens/domain/player"
	"bridgelens/internal"
	apperrors "bridgelens/internal/errors"
	"bridgelens/ports"
)

// AnalyzerService runs the full pipeline.
type AnalyzerService struct {
	source  ports.BoardSource
	oracle  ports.Oracle
	roster  ports.Roster
	logger  *internal.Logger
	workers int
}

// NewAnalyzerService creates an analyzer. roster may be nil, in which case
// player names stay as recorded. workers below 1 is treated as 1.
func NewAnalyzerService(source ports.BoardSource, oracle ports.Oracle, roster ports.Roster, logger *internal.Logger, workers int) *AnalyzerService {
	if workers < 1 {
		workers = 1
	}
	return &AnalyzerService{
		source:  source,
		oracle:  oracle,
		roster:  roster,
		logger:  logger,
		workers: workers,
	}
}

// CleanResult is the outcome of the cleaning phase.
type CleanResult struct {
	Boards     []board.Board
	BoardsRead int
	// Defect tallies, keyed by defect message. BoardDefects rejected their
	// records; the others left boards valid with a field absent.
	BoardDefects   map[string]int
	AuctionDefects map[string]int
	PlayDefects    map[string]int
}

// Clean validates every record of the source. Rejected records are tallied
// and skipped, never fatal. Player names are roster-normalized when a
// roster is configured.
func (s *AnalyzerService) Clean(ctx context.Context) (*CleanResult, error) {
	res := &CleanResult{
		BoardDefects:   make(map[string]int),
		AuctionDefects: make(map[string]int),
		PlayDefects:    make(map[string]int),
	}

	err := s.source.Records(ctx, func(rec board.Record) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		res.BoardsRead++

		b, notes, err := board.Clean(rec)
		if err != nil {
			res.BoardDefects[err.Error()]++
			return nil
		}
		if notes.AuctionDefect != nil {
			res.AuctionDefects[notes.AuctionDefect.Error()]++
		}
		if notes.PlayDefect != nil {
			res.PlayDefects[notes.PlayDefect.Error()]++
		}

		if s.roster != nil {
			for i, name := range b.Names {
				b.Names[i] = s.roster.Normalize(name)
			}
		}
		res.Boards = append(res.Boards, b)
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read boards")
	}

	s.logger.Info("cleaned %d of %d boards", len(res.Boards), res.BoardsRead)
	if rejected := res.BoardsRead - len(res.Boards); rejected > 0 {
		s.logger.Warn("rejected %d boards across %d defect kinds", rejected, len(res.BoardDefects))
	}
	return res, nil
}

// Run executes the full pipeline and returns the report.
func (s *AnalyzerService) Run(ctx context.Context) (*ports.RunReport, error) {
	started := time.Now()

	if s.roster != nil {
		s.logger.Info("loading roster")
		if err := s.roster.Load(ctx); err != nil {
			return nil, apperrors.Wrap(err, "failed to load roster")
		}
	}

	cleaned, err := s.Clean(ctx)
	if err != nil {
		return nil, err
	}

	players, auctions, plays, err := s.analyze(ctx, cleaned.Boards)
	if err != nil {
		return nil, err
	}

	return &ports.RunReport{
		RunID:            uuid.NewString(),
		StartedAt:        started,
		FinishedAt:       time.Now(),
		BoardsRead:       cleaned.BoardsRead,
		BoardsCleaned:    len(cleaned.Boards),
		AuctionsAnalyzed: auctions,
		PlaysAnalyzed:    plays,
		Players:          players,
		BoardDefects:     cleaned.BoardDefects,
		AuctionDefects:   cleaned.AuctionDefects,
		PlayDefects:      cleaned.PlayDefects,
	}, nil
}

// job is one oracle batch: auction boards solve trick tables, play boards
// solve trajectories.
type job struct {
	auctions bool
	boards   []board.Board
}

// analyze runs the oracle phases over the cleaned boards with a pool of
// workers. Each worker owns a private accumulator table and engine; the
// tables merge additively, so the outcome does not depend on scheduling.
func (s *AnalyzerService) analyze(ctx context.Context, boards []board.Board) (player.Table, int, int, error) {
	var auctionable, playable []board.Board
	for _, b := range boards {
		if len(b.Auction) > 0 && b.BidStart != "" {
			auctionable = append(auctionable, b)
		}
		if b.Play != "" && b.Contract != "" {
			playable = append(playable, b)
		}
	}
	s.logger.Info("analyzing %d auctions and %d plays", len(auctionable), len(playable))

	merged := player.Table{}
	// Every named player appears in the report, analyzed or not.
	for _, b := range boards {
		for _, name := range b.Names {
			merged.Get(name)
		}
	}

	jobs := make(chan job)
	tables := make([]player.Table, s.workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < s.workers; w++ {
		table := player.Table{}
		tables[w] = table
		engine := mistake.NewEngine()
		g.Go(func() error {
			for j := range jobs {
				var err error
				if j.auctions {
					err = s.analyzeAuctions(ctx, engine, j.boards, table)
				} else {
					err = s.analyzePlays(ctx, engine, j.boards, table)
				}
				if err != nil {
					return err
				}
			}
			return nil
		})
	}

	feed := func(auctions bool, boards []board.Board, batch int) bool {
		for start := 0; start < len(boards); start += batch {
			end := start + batch
			if end > len(boards) {
				end = len(boards)
			}
			select {
			case jobs <- job{auctions: auctions, boards: boards[start:end]}:
			case <-ctx.Done():
				return false
			}
		}
		return true
	}
	s.logger.Debug("dispatching %d table batches and %d play batches to %d workers",
		batchCount(len(auctionable), ports.MaxTableBatch), batchCount(len(playable), ports.MaxPlayBatch), s.workers)
	feed(true, auctionable, ports.MaxTableBatch)
	feed(false, playable, ports.MaxPlayBatch)
	close(jobs)

	if err := g.Wait(); err != nil {
		s.logger.Error("analysis failed: %v", err)
		return nil, 0, 0, apperrors.Wrap(err, "analysis failed")
	}

	for _, table := range tables {
		merged.Merge(table)
	}
	return merged, len(auctionable), len(playable), nil
}

func batchCount(n, size int) int {
	return (n + size - 1) / size
}

func (s *AnalyzerService) analyzeAuctions(ctx context.Context, engine *mistake.Engine, boards []board.Board, table player.Table) error {
	deals := make([]string, len(boards))
	for i, b := range boards {
		deals[i] = b.Deal
	}
	trickTables, err := s.oracle.TrickTables(ctx, deals)
	if err != nil {
		return err
	}
	for i, b := range boards {
		engine.AnalyzeAuction(b, trickTables[i], table)
	}
	return nil
}

func (s *AnalyzerService) analyzePlays(ctx context.Context, engine *mistake.Engine, boards []board.Board, table player.Table) error {
	requests := make([]ports.PlayRequest, len(boards))
	for i, b := range boards {
		contract, _ := b.ContractValue()
		leadSeat, _ := b.LeadSeat()
		requests[i] = ports.PlayRequest{
			Deal:   b.Deal,
			Trump:  contract.Bid.Denom,
			Leader: leadSeat,
			Play:   b.Play,
		}
	}
	trajectories, err := s.oracle.PlayTrajectories(ctx, requests)
	if err != nil {
		return err
	}
	for i, b := range boards {
		engine.AnalyzePlay(b, trajectories[i], table)
	}
	return nil
}
