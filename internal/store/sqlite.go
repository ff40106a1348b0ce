package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"PriceScout/internal/model"
)

// SQLiteStore persists the security catalogue and price history to SQLite.
// Prices are stored as their canonical decimal string so the 6-digit
// precision survives the round trip.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for concurrent reads while the refresh job writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS securities (
			code       INTEGER PRIMARY KEY,
			name       TEXT NOT NULL DEFAULT '',
			kind       TEXT NOT NULL DEFAULT '',
			index_name TEXT NOT NULL DEFAULT '',
			unit_value TEXT NOT NULL DEFAULT '',
			updated_at INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS price_updates (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			code      INTEGER NOT NULL,
			price     TEXT NOT NULL,
			source    TEXT,
			evidence  TEXT,
			url       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_updates_code_ts ON price_updates(code, timestamp)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// UpsertSecurity inserts a security or updates its catalogue fields. The
// unit value is only written by RecordPrice.
func (s *SQLiteStore) UpsertSecurity(sec *model.Security) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO securities (code, name, kind, index_name)
		VALUES (?,?,?,?)
		ON CONFLICT(code) DO UPDATE SET name = excluded.name, kind = excluded.kind, index_name = excluded.index_name`,
		int(sec.Code), sec.Name, sec.Kind, sec.Index,
	)
	return err
}

// ListSecurities returns the catalogue ordered by code.
func (s *SQLiteStore) ListSecurities() ([]model.Security, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT code, name, kind, index_name, unit_value, updated_at FROM securities ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Security
	for rows.Next() {
		var (
			code      int
			sec       model.Security
			unitValue string
			updatedAt int64
		)
		if err := rows.Scan(&code, &sec.Name, &sec.Kind, &sec.Index, &unitValue, &updatedAt); err != nil {
			return nil, err
		}
		sec.Code = model.SecurityCode(code)
		if unitValue != "" {
			if v, err := decimal.NewFromString(unitValue); err == nil {
				sec.UnitValue = v
			}
		}
		if updatedAt > 0 {
			sec.UpdatedAt = time.Unix(updatedAt, 0)
		}
		out = append(out, sec)
	}
	return out, rows.Err()
}

// RecordPrice appends a history row and refreshes the catalogue's latest
// unit value for the code.
func (s *SQLiteStore) RecordPrice(res *model.ExtractionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().Unix()
	if _, err := s.db.Exec(`INSERT INTO price_updates (timestamp, code, price, source, evidence, url)
		VALUES (?,?,?,?,?,?)`,
		now, int(res.Code), res.Price.String(), res.Source, string(res.Evidence), res.URL,
	); err != nil {
		return err
	}

	_, err := s.db.Exec(`UPDATE securities SET unit_value = ?, updated_at = ? WHERE code = ?`,
		res.Price.String(), now, int(res.Code))
	return err
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
