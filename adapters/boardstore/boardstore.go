// Package boardstore reads raw deal records from the bridgedeals table of
// a SQLite or Postgres database.
package boardstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"bridgelens/domain/board"
	"bridgelens/ports"
)

const recordQuery = `SELECT
	event, date, northname, eastname, southname, westname, deal, vulnerable,
	dealer, bidstart, auction, contract, declarer, lead, play, result
FROM bridgedeals`

// source implements the BoardSource interface over a SQL database.
type source struct {
	db *sqlx.DB
}

// New creates a board source over an open database handle.
func New(db *sqlx.DB) ports.BoardSource {
	return &source{db: db}
}

// Open connects to the database named by dsn. Postgres-style DSNs get the
// postgres driver; anything else is treated as a SQLite file path.
func Open(dsn string) (*sqlx.DB, error) {
	driver := "sqlite"
	if strings.HasPrefix(dsn, "postgres://") || strings.Contains(dsn, "host=") {
		driver = "postgres"
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open board database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach board database: %w", err)
	}
	return db, nil
}

// Records streams every row of the bridgedeals table. NULL columns read as
// empty strings; a numeric result column reads as its decimal form.
func (s *source) Records(ctx context.Context, fn func(board.Record) error) error {
	rows, err := s.db.QueryContext(ctx, recordQuery)
	if err != nil {
		return fmt.Errorf("failed to query boards: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cols [16]sql.NullString
		dests := make([]interface{}, len(cols))
		for i := range cols {
			dests[i] = &cols[i]
		}
		if err := rows.Scan(dests...); err != nil {
			return fmt.Errorf("failed to scan board row: %w", err)
		}

		rec := board.Record{
			Event:      cols[0].String,
			Date:       cols[1].String,
			NorthName:  cols[2].String,
			EastName:   cols[3].String,
			SouthName:  cols[4].String,
			WestName:   cols[5].String,
			Deal:       cols[6].String,
			Vulnerable: cols[7].String,
			Dealer:     cols[8].String,
			BidStart:   cols[9].String,
			Auction:    cols[10].String,
			Contract:   cols[11].String,
			Declarer:   cols[12].String,
			Lead:       cols[13].String,
			Play:       cols[14].String,
			Result:     cols[15].String,
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return rows.Err()
}
