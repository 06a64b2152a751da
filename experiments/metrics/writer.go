package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type EpisodeRecord struct {
	ID          string // episode UUID
	Seed        uint64
	LearnedSeat int // player ID of the learned agent, -1 when all seats are fixed
	EpisodeMetric
}

type TurnRecord struct {
	Episode string // EpisodeRecord.ID
	TurnMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped directory for one experiment under dir.
func NewWriter(dir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteEpisodeRecords(records []EpisodeRecord) error {
	path := filepath.Join(w.baseDir, "episode_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create episode records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "seed", "learned_seat", "players", "winner", "turns", "bankruptcies",
		"offers_proposed", "offers_executed", "offers_rejected", "offers_invalidated", "start_time", "end_time", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write episode records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.ID,
			strconv.FormatUint(record.Seed, 10),
			strconv.Itoa(record.LearnedSeat),
			strconv.Itoa(record.Players),
			strconv.Itoa(record.Winner),
			strconv.Itoa(record.TotalTurns),
			strconv.Itoa(record.Bankruptcies),
			strconv.Itoa(record.Offers.Proposed),
			strconv.Itoa(record.Offers.Executed),
			strconv.Itoa(record.Offers.Rejected),
			strconv.Itoa(record.Offers.Invalidated),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write episode record row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteTurnRecords(records []TurnRecord) error {
	path := filepath.Join(w.baseDir, "turn_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create turn records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"episode", "turn", "player", "position", "cash", "net_worth", "jailed"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write turn records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.Episode,
			strconv.Itoa(record.Turn),
			strconv.Itoa(record.Player),
			strconv.Itoa(record.Position),
			strconv.Itoa(record.Cash),
			strconv.FormatFloat(record.NetWorth, 'f', 2, 64),
			strconv.FormatBool(record.Jailed),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write turn record row: %w", err)
		}
	}

	return nil
}
