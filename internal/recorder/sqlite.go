package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance while the server writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp          INTEGER NOT NULL,
			symbol             TEXT NOT NULL,
			timeframe          TEXT,
			signal             TEXT,
			revenue_change_pct REAL,
			price_change_pct   REAL,
			gap                REAL,
			periods            TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_ts ON analyses(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_symbol ON analyses(symbol)`,

		`CREATE TABLE IF NOT EXISTS headlines (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			symbol    TEXT NOT NULL,
			title     TEXT,
			source    TEXT,
			sentiment TEXT,
			evidence  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_headlines_ts ON headlines(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_headlines_symbol ON headlines(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAnalysis(rec *AnalysisRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO analyses
		(timestamp, symbol, timeframe, signal, revenue_change_pct, price_change_pct, gap, periods)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Symbol, rec.Timeframe, rec.Signal,
		rec.RevenueChangePct, rec.PriceChangePct, rec.Gap, rec.Periods,
	)
	return err
}

func (r *SQLiteRecorder) RecordHeadline(rec *HeadlineRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO headlines
		(timestamp, symbol, title, source, sentiment, evidence)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Symbol, rec.Title, rec.Source,
		rec.Sentiment, rec.Evidence,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
