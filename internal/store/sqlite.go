package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seantiz/proposalgw/internal/model"

	_ "modernc.org/sqlite"
)

const createRecordsTable = `
CREATE TABLE IF NOT EXISTS records (
    seq          INTEGER PRIMARY KEY AUTOINCREMENT,
    id           TEXT NOT NULL UNIQUE,
    proposal_id  TEXT,
    customer_id  TEXT NOT NULL,
    subject      TEXT NOT NULL,
    plan         TEXT NOT NULL,
    gross_amount TEXT NOT NULL,
    net_amount   TEXT,
    status       TEXT NOT NULL,
    created_at   DATETIME NOT NULL
)`

const selectRecord = `SELECT id, proposal_id, customer_id, subject, plan,
	gross_amount, net_amount, status, created_at FROM records`

// Compile-time interface satisfaction check.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the SQLite database at dbPath and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if _, err := db.Exec(createRecordsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create records table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save inserts a new record.
func (s *SQLiteStore) Save(ctx context.Context, r *model.Record) error {
	proposalID := uuid.NullUUID{}
	if r.ProposalID != nil {
		proposalID = uuid.NullUUID{UUID: *r.ProposalID, Valid: true}
	}
	netAmount := decimal.NullDecimal{}
	if r.NetAmount != nil {
		netAmount = decimal.NullDecimal{Decimal: *r.NetAmount, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (
			id, proposal_id, customer_id, subject, plan,
			gross_amount, net_amount, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, proposalID, r.CustomerID, r.Subject, r.Plan,
		r.GrossAmount, netAmount, r.Status, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Record, error) {
	r, err := scanRecord(s.db.QueryRowContext(ctx, selectRecord+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return r, nil
}

// ListAll returns every record ordered by insertion.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]*model.Record, error) {
	rows, err := s.db.QueryContext(ctx, selectRecord+" ORDER BY seq ASC")
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []*model.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*model.Record, error) {
	var (
		r          model.Record
		proposalID uuid.NullUUID
		netAmount  decimal.NullDecimal
	)
	if err := sc.Scan(
		&r.ID, &proposalID, &r.CustomerID, &r.Subject, &r.Plan,
		&r.GrossAmount, &netAmount, &r.Status, &r.CreatedAt,
	); err != nil {
		return nil, err
	}
	if proposalID.Valid {
		id := proposalID.UUID
		r.ProposalID = &id
	}
	if netAmount.Valid {
		amt := netAmount.Decimal
		r.NetAmount = &amt
	}
	return &r, nil
}
