// Package sqlite persists normalized records into the refined SQLite
// artifact. The store is append-only: relations are created if absent and
// extended otherwise, never truncated or merged.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/dvloznov/netflix-refiner/internal/pipeline"
)

// Store wraps the SQLite connection for the refined dataset.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the refined database at path and ensures both
// relations exist. With reset set, any existing database file is removed
// first so the run starts from a clean dataset.
func Open(path string, reset bool) (*Store, error) {
	if reset {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("sqlite.Open: removing existing database: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite.Open: creating output directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("sqlite.Open: opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.Open: pinging database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.Open: migrating: %w", err)
	}
	return s, nil
}

// Close closes the database connection. After Close the file on disk is the
// complete artifact.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS viewing_activity (
		account_id              TEXT NOT NULL,
		start_time              TEXT,
		duration                TEXT,
		duration_sec            INTEGER NOT NULL DEFAULT 0,
		title                   TEXT,
		profile_name            TEXT,
		device_type             TEXT,
		country                 TEXT,
		bookmark                TEXT,
		latest_bookmark         TEXT,
		supplemental_video_type TEXT,
		attributes              TEXT
	);

	CREATE TABLE IF NOT EXISTS billing_history (
		account_id                TEXT NOT NULL,
		transaction_date          TEXT,
		country                   TEXT,
		mop_last_4                TEXT,
		final_invoice_result      TEXT,
		mop_pmt_processor_desc    TEXT,
		pmt_txn_type              TEXT,
		description               TEXT,
		gross_sale_amt            REAL NOT NULL DEFAULT 0,
		pmt_status                TEXT,
		payment_type              TEXT,
		tax_amt                   REAL NOT NULL DEFAULT 0,
		service_period_start_date TEXT,
		item_price_amt            REAL NOT NULL DEFAULT 0,
		mop_creation_date         TEXT,
		currency                  TEXT,
		next_billing_date         TEXT,
		service_period_end_date   TEXT
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// AppendViewingActivity inserts the records in order inside one transaction.
func (s *Store) AppendViewingActivity(ctx context.Context, records []pipeline.ViewingActivityRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("AppendViewingActivity: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO viewing_activity (
			account_id, start_time, duration, duration_sec, title,
			profile_name, device_type, country, bookmark, latest_bookmark,
			supplemental_video_type, attributes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("AppendViewingActivity: prepare: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		_, err := stmt.ExecContext(ctx,
			r.AccountID, r.StartTime, r.Duration, r.DurationSec, r.Title,
			r.ProfileName, r.DeviceType, r.Country, r.Bookmark, r.LatestBookmark,
			r.SupplementalVideoType, r.Attributes,
		)
		if err != nil {
			return fmt.Errorf("AppendViewingActivity: inserting row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("AppendViewingActivity: commit: %w", err)
	}
	return nil
}

// AppendBillingHistory inserts the records in order inside one transaction.
func (s *Store) AppendBillingHistory(ctx context.Context, records []pipeline.BillingHistoryRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("AppendBillingHistory: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO billing_history (
			account_id, transaction_date, country, mop_last_4,
			final_invoice_result, mop_pmt_processor_desc, pmt_txn_type,
			description, gross_sale_amt, pmt_status, payment_type, tax_amt,
			service_period_start_date, item_price_amt, mop_creation_date,
			currency, next_billing_date, service_period_end_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("AppendBillingHistory: prepare: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		_, err := stmt.ExecContext(ctx,
			r.AccountID, r.TransactionDate, r.Country, r.MopLast4,
			r.FinalInvoiceResult, r.MopPmtProcessorDesc, r.PmtTxnType,
			r.Description, r.GrossSaleAmt, r.PmtStatus, r.PaymentType, r.TaxAmt,
			r.ServicePeriodStartDate, r.ItemPriceAmt, r.MopCreationDate,
			r.Currency, r.NextBillingDate, r.ServicePeriodEndDate,
		)
		if err != nil {
			return fmt.Errorf("AppendBillingHistory: inserting row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("AppendBillingHistory: commit: %w", err)
	}
	return nil
}

// CountViewingActivity returns the number of viewing activity rows.
func (s *Store) CountViewingActivity(ctx context.Context) (int64, error) {
	return s.count(ctx, "viewing_activity")
}

// CountBillingHistory returns the number of billing history rows.
func (s *Store) CountBillingHistory(ctx context.Context) (int64, error) {
	return s.count(ctx, "billing_history")
}

func (s *Store) count(ctx context.Context, table string) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return n, nil
}
