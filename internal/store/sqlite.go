package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"purchases/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists the ledger in a SQLite database. Save replaces
// the whole table in one transaction, matching the full-recompute
// semantics of the service layer.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) ([]core.PurchaseRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, purchase_date, full_name, phone_number, product_name,
		       unit_price_cents, quantity, line_total_cents,
		       cumulative_cents, bonus_hundredths
		FROM purchases
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query purchases: %w", err)
	}
	defer rows.Close()

	var records []core.PurchaseRecord
	for rows.Next() {
		var (
			rec  core.PurchaseRecord
			date string
		)
		if err := rows.Scan(&rec.ID, &date, &rec.CustomerName, &rec.CustomerPhone,
			&rec.ProductName, &rec.UnitPrice.Cents, &rec.Quantity,
			&rec.LineTotal.Cents, &rec.CumulativeSpend.Cents,
			&rec.BonusPoints.Hundredths); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		rec.Date = core.ParseDate(date)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate purchases: %w", err)
	}
	if records == nil {
		records = []core.PurchaseRecord{}
	}
	return records, nil
}

func (s *SQLiteStore) Save(ctx context.Context, records []core.PurchaseRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM purchases`); err != nil {
		return fmt.Errorf("clear purchases: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO purchases (id, purchase_date, full_name, phone_number,
			product_name, unit_price_cents, quantity, line_total_cents,
			cumulative_cents, bonus_hundredths, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	// position preserves the display order produced by recalculation.
	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.ID, rec.Date.String(),
			rec.CustomerName, rec.CustomerPhone, rec.ProductName,
			rec.UnitPrice.Cents, rec.Quantity, rec.LineTotal.Cents,
			rec.CumulativeSpend.Cents, rec.BonusPoints.Hundredths, i); err != nil {
			return fmt.Errorf("insert purchase %s: %w", rec.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
