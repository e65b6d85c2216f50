package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"bridgelens/adapters/boardstore"
	"bridgelens/adapters/dds"
	"bridgelens/adapters/report"
	"bridgelens/adapters/wbf"
	"bridgelens/app"
	"bridgelens/internal"
	"bridgelens/internal/config"
	apperrors "bridgelens/internal/errors"
	"bridgelens/ports"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "bridgelens",
		Short: "Double-dummy mistake attribution for recorded bridge deals",
	}

	rootCmd.AddCommand(
		newCleanCmd(),
		newAnalyzeCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", apperrors.GetCode(err), err)
		os.Exit(1)
	}
}

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Validate the recorded deals and report defect tallies",
		Long: `Read every deal record from the database, validate it, and print
how many records were rejected and why. No solving is performed.

Example: DATABASE_URL=deals.db bridgelens clean`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd.Context())
		},
	}
}

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Run the full pipeline and write player reports",
		Long: `Clean the recorded deals, solve auctions and play sequences against
the double-dummy solver, attribute mistakes to players, and write the
report files to the output directory.

Example: DATABASE_URL=deals.db SOLVER_URL=http://localhost:9000 bridgelens analyze`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context())
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}

func runClean(ctx context.Context) error {
	cfg, logger, err := loadEnvironment()
	if err != nil {
		return err
	}

	db, err := boardstore.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := app.NewAnalyzerService(boardstore.New(db), nil, nil, logger, cfg.Analysis.Workers)
	result, err := svc.Clean(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Boards read: %d\n", result.BoardsRead)
	fmt.Printf("Boards kept: %d\n", len(result.Boards))
	printTallies("Rejected boards", result.BoardDefects)
	printTallies("Auction defects", result.AuctionDefects)
	printTallies("Play defects", result.PlayDefects)
	return nil
}

func runAnalyze(ctx context.Context) error {
	cfg, logger, err := loadEnvironment()
	if err != nil {
		return err
	}
	if err := cfg.RequireSolver(); err != nil {
		return err
	}

	db, err := boardstore.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	oracle := dds.NewClientWithHTTP(cfg.Solver.URL, solverHTTPClient(cfg.Solver.Timeout))

	var roster ports.Roster
	if cfg.Roster.Enabled {
		if cfg.Roster.URL != "" {
			roster = wbf.NewWithURL(cfg.Roster.URL)
		} else {
			roster = wbf.New()
		}
	}

	svc := app.NewAnalyzerService(boardstore.New(db), oracle, roster, logger, cfg.Analysis.Workers)
	runReport, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	writer := report.NewWriter(cfg.Output.Dir)
	if err := writer.Write(ctx, runReport); err != nil {
		return err
	}

	fmt.Printf("Run %s finished in %s\n", runReport.RunID, runReport.FinishedAt.Sub(runReport.StartedAt).Round(time.Millisecond))
	fmt.Printf("Boards: %d read, %d cleaned\n", runReport.BoardsRead, runReport.BoardsCleaned)
	fmt.Printf("Analyzed: %d auctions, %d plays, %d players\n",
		runReport.AuctionsAnalyzed, runReport.PlaysAnalyzed, len(runReport.Players))
	fmt.Printf("Reports written to %s\n", cfg.Output.Dir)
	return nil
}

func loadEnvironment() (*config.Config, *internal.Logger, error) {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, internal.NewDefaultLogger(), nil
}

func solverHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func printTallies(title string, tallies map[string]int) {
	if len(tallies) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	names := make([]string, 0, len(tallies))
	for name := range tallies {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if tallies[names[i]] != tallies[names[j]] {
			return tallies[names[i]] > tallies[names[j]]
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		fmt.Printf("  %6d  %s\n", tallies[name], name)
	}
}
