package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"purchases/internal/core"
)

// Columns is the canonical persisted layout: the nine ledger columns in
// their contractual order, plus the synthetic record identifier.
var Columns = []string{
	"Date",
	"FullName",
	"PhoneNumber",
	"ProductName",
	"UnitPrice",
	"Quantity",
	"LineTotal",
	"CumulativeSpend",
	"BonusPoints",
	"RecordID",
}

// CSVStore persists the ledger as a flat CSV file. Saves write a temp
// file in the target directory and rename it over the old file, so a
// crash mid-write never leaves a truncated table behind.
type CSVStore struct {
	path string
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Load reads the record set. A missing file is an empty table. Malformed
// numeric and date cells are coerced to safe defaults, never rejected.
func (s *CSVStore) Load(_ context.Context) ([]core.PurchaseRecord, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return []core.PurchaseRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(rows) <= 1 {
		return []core.PurchaseRecord{}, nil
	}

	records := make([]core.PurchaseRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 6 {
			continue
		}
		rec := core.PurchaseRecord{
			Date:            core.ParseDate(cell(row, 0)),
			CustomerName:    cell(row, 1),
			CustomerPhone:   cell(row, 2),
			ProductName:     cell(row, 3),
			UnitPrice:       core.CoerceMoney(cell(row, 4)),
			Quantity:        core.CoerceQuantity(cell(row, 5)),
			LineTotal:       core.CoerceMoney(cell(row, 6)),
			CumulativeSpend: core.CoerceMoney(cell(row, 7)),
			BonusPoints:     core.Points{Hundredths: core.CoerceMoney(cell(row, 8)).Cents},
			ID:              cell(row, 9),
		}
		// Tables written before the identifier column existed get a
		// fresh ID on load.
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		records = append(records, rec)
	}
	return records, nil
}

// Save replaces the file atomically: write temp, fsync, rename.
func (s *CSVStore) Save(_ context.Context, records []core.PurchaseRecord) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(Columns); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Date.String(),
			rec.CustomerName,
			rec.CustomerPhone,
			rec.ProductName,
			rec.UnitPrice.String(),
			strconv.Itoa(rec.Quantity),
			rec.LineTotal.String(),
			rec.CumulativeSpend.String(),
			rec.BonusPoints.String(),
			rec.ID,
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush rows: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

func (s *CSVStore) Close() error { return nil }

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
