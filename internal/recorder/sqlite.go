package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists refresh history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers don't block refresh writes.
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
		`CREATE TABLE IF NOT EXISTS quote_snapshots (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT NOT NULL,
			name           TEXT,
			currency       TEXT,
			price          REAL,
			change_percent REAL,
			sma50          REAL,
			sma200         REAL,
			trend          TEXT,
			volatility     REAL,
			time_range     TEXT,
			data_interval  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_ts ON quote_snapshots(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_symbol ON quote_snapshots(symbol)`,

		`CREATE TABLE IF NOT EXISTS fetch_failures (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			symbol    TEXT NOT NULL,
			time_range    TEXT,
			data_interval TEXT,
			reason    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_failures_ts ON fetch_failures(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordQuote(snap *QuoteSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO quote_snapshots
		(timestamp, symbol, name, currency, price, change_percent,
		 sma50, sma200, trend, volatility, time_range, data_interval)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), snap.Symbol, snap.Name, snap.Currency,
		snap.Price, snap.ChangePercent,
		snap.SMA50.Ptr(), snap.SMA200.Ptr(),
		snap.Trend, snap.Volatility, snap.Range, snap.Interval,
	)
	return err
}

func (r *SQLiteRecorder) RecordFailure(evt *FetchFailure) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO fetch_failures
		(timestamp, symbol, time_range, data_interval, reason)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), evt.Symbol, evt.Range, evt.Interval, evt.Reason,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
