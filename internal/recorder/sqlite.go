package recorder

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"StockSentinel/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists reports to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so the HTTP API can read while the scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log.With().Str("component", "sqlite").Logger()}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			id                   TEXT PRIMARY KEY,
			timestamp            INTEGER NOT NULL,
			symbol               TEXT NOT NULL,
			name                 TEXT,
			last_price           REAL,
			rsi                  REAL,
			macd                 TEXT,
			bollinger            TEXT,
			bullish_votes        INTEGER,
			bearish_votes        INTEGER,
			short_term_6m        TEXT,
			short_term_1y        TEXT,
			long_term_3y         TEXT,
			fundamentals_missing INTEGER,
			body                 TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_symbol_ts ON reports(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS peer_failures (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			report_id TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			peer      TEXT,
			error     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_peer_failures_report ON peer_failures(report_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordReport stores the report and one peer_failures row per skipped peer
// in a single transaction.
func (r *SQLiteRecorder) RecordReport(rep *model.Report) error {
	body, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ts := rep.GeneratedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	id := uuid.NewString()

	var rsi sql.NullFloat64
	if v := rep.TechnicalAnalysis.Indicators.RSI; v != nil {
		rsi = sql.NullFloat64{Float64: *v, Valid: true}
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO reports
		(id, timestamp, symbol, name, last_price, rsi, macd, bollinger,
		 bullish_votes, bearish_votes, short_term_6m, short_term_1y, long_term_3y,
		 fundamentals_missing, body)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		id, ts.Unix(), rep.Symbol, rep.Name, rep.LastPrice, rsi,
		string(rep.TechnicalAnalysis.Indicators.MACD),
		string(rep.TechnicalAnalysis.Indicators.BollingerBands),
		rep.TrendVotes.Bullish, rep.TrendVotes.Bearish,
		string(rep.Recommendations.ShortTerm6M),
		string(rep.Recommendations.ShortTerm1Y),
		string(rep.Recommendations.LongTerm3Y),
		rep.FundamentalsMissing, string(body),
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}

	for _, pe := range rep.PeerErrors {
		peer := ""
		var pfe *model.PeerFetchError
		if errors.As(pe, &pfe) {
			peer = pfe.Peer
		}
		if _, err := tx.Exec(`INSERT INTO peer_failures (report_id, timestamp, peer, error) VALUES (?,?,?,?)`,
			id, ts.Unix(), peer, pe.Error()); err != nil {
			return fmt.Errorf("insert peer failure: %w", err)
		}
	}
	return tx.Commit()
}

// LatestReport returns the most recently stored report for symbol.
func (r *SQLiteRecorder) LatestReport(symbol string) (*model.Report, error) {
	var body string
	err := r.db.QueryRow(`SELECT body FROM reports WHERE symbol = ?
		ORDER BY timestamp DESC, rowid DESC LIMIT 1`, symbol).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}
	var rep model.Report
	if err := json.Unmarshal([]byte(body), &rep); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &rep, nil
}

// PeerFailures returns the peers skipped for the given report symbol, newest first.
func (r *SQLiteRecorder) PeerFailures(symbol string) ([]string, error) {
	rows, err := r.db.Query(`SELECT pf.peer FROM peer_failures pf
		JOIN reports rp ON rp.id = pf.report_id
		WHERE rp.symbol = ? ORDER BY pf.id DESC`, symbol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var peers []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		peers = append(peers, p)
	}
	return peers, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
