// Package store keeps finished episode results in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"monopoly/experiments/metrics"

	_ "github.com/mattn/go-sqlite3"
)

var ErrClosed = errors.New("store: database closed")

const schema = `
CREATE TABLE IF NOT EXISTS episodes (
	id                 TEXT PRIMARY KEY,
	seed               INTEGER NOT NULL,
	learned_seat       INTEGER NOT NULL,
	players            INTEGER NOT NULL,
	winner             INTEGER NOT NULL,
	turns              INTEGER NOT NULL,
	bankruptcies       INTEGER NOT NULL,
	offers_proposed    INTEGER NOT NULL,
	offers_executed    INTEGER NOT NULL,
	offers_rejected    INTEGER NOT NULL,
	offers_invalidated INTEGER NOT NULL,
	start_time         TEXT NOT NULL,
	duration_ns        INTEGER NOT NULL
)`

// DB serialises every call through one goroutine, since SQLite does not
// support concurrent writers.
type DB struct {
	dbChan   chan func(*sql.DB)
	doneChan chan struct{}
}

// New opens (creating if needed) the database stored at the given filename.
func New(fn string) (*DB, error) {
	sdb, err := sql.Open("sqlite3", fn)
	if err != nil {
		return nil, fmt.Errorf("failed to open episode store: %w", err)
	}
	if _, err := sdb.Exec(schema); err != nil {
		sdb.Close()
		return nil, fmt.Errorf("failed to create episode schema: %w", err)
	}

	db := &DB{
		dbChan:   make(chan func(*sql.DB)),
		doneChan: make(chan struct{}),
	}
	go db.run(sdb)
	return db, nil
}

// run handles all database calls, one at a time.
func (s *DB) run(sdb *sql.DB) {
	for {
		select {
		case dbFn := <-s.dbChan:
			dbFn(sdb)
		case <-s.doneChan:
			sdb.Close()
			return
		}
	}
}

func (s *DB) Close() error {
	close(s.doneChan)
	return nil
}

// do runs fn on the database goroutine and waits for its result.
func (s *DB) do(ctx context.Context, fn func(*sql.DB) error) error {
	select {
	case <-s.doneChan:
		return ErrClosed
	default:
	}
	errChan := make(chan error, 1)
	select {
	case s.dbChan <- func(sdb *sql.DB) { errChan <- fn(sdb) }:
	case <-s.doneChan:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-errChan
}

func (s *DB) SaveEpisode(ctx context.Context, r metrics.EpisodeRecord) error {
	return s.do(ctx, func(sdb *sql.DB) error {
		_, err := sdb.ExecContext(ctx, `INSERT INTO episodes
			(id, seed, learned_seat, players, winner, turns, bankruptcies,
			 offers_proposed, offers_executed, offers_rejected, offers_invalidated, start_time, duration_ns)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, int64(r.Seed), r.LearnedSeat, r.Players, r.Winner, r.TotalTurns, r.Bankruptcies,
			r.Offers.Proposed, r.Offers.Executed, r.Offers.Rejected, r.Offers.Invalidated,
			r.StartTime.UTC().Format(time.RFC3339Nano), int64(r.Duration))
		if err != nil {
			return fmt.Errorf("failed to save episode %s: %w", r.ID, err)
		}
		return nil
	})
}

// Episodes returns every stored episode in start order.
func (s *DB) Episodes(ctx context.Context) ([]metrics.EpisodeRecord, error) {
	var out []metrics.EpisodeRecord
	err := s.do(ctx, func(sdb *sql.DB) error {
		rows, err := sdb.QueryContext(ctx, `SELECT
			id, seed, learned_seat, players, winner, turns, bankruptcies,
			offers_proposed, offers_executed, offers_rejected, offers_invalidated, start_time, duration_ns
			FROM episodes ORDER BY start_time, id`)
		if err != nil {
			return fmt.Errorf("failed to query episodes: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				r        metrics.EpisodeRecord
				seed     int64
				start    string
				duration int64
			)
			err := rows.Scan(&r.ID, &seed, &r.LearnedSeat, &r.Players, &r.Winner, &r.TotalTurns, &r.Bankruptcies,
				&r.Offers.Proposed, &r.Offers.Executed, &r.Offers.Rejected, &r.Offers.Invalidated, &start, &duration)
			if err != nil {
				return fmt.Errorf("failed to scan episode: %w", err)
			}
			r.Seed = uint64(seed)
			r.Duration = time.Duration(duration)
			if r.StartTime, err = time.Parse(time.RFC3339Nano, start); err != nil {
				return fmt.Errorf("bad start time for episode %s: %w", r.ID, err)
			}
			r.EndTime = r.StartTime.Add(r.Duration)
			out = append(out, r)
		}
		return rows.Err()
	})
	return out, err
}

// WinRate reports the share of episodes with a learned agent in the given
// seat that the seat won, and how many such episodes there are.
func (s *DB) WinRate(ctx context.Context, seat int) (float64, int, error) {
	var wins, total int
	err := s.do(ctx, func(sdb *sql.DB) error {
		row := sdb.QueryRowContext(ctx, `SELECT
			COALESCE(SUM(CASE WHEN winner = learned_seat THEN 1 ELSE 0 END), 0), COUNT(*)
			FROM episodes WHERE learned_seat = ?`, seat)
		if err := row.Scan(&wins, &total); err != nil {
			return fmt.Errorf("failed to compute win rate: %w", err)
		}
		return nil
	})
	if err != nil || total == 0 {
		return 0, total, err
	}
	return float64(wins) / float64(total), total, nil
}
