// Package export writes the purchase ledger as an XLSX report.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"purchases/internal/core"
	"purchases/internal/store"
)

// SheetName is the worksheet holding the ledger table.
const SheetName = "Purchases"

// WriteReport writes the record set to an XLSX workbook at path.
func WriteReport(path string, records []core.PurchaseRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	for i, col := range store.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, col); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		if err := f.SetCellStyle(SheetName, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
	}

	for row, r := range records {
		values := []interface{}{
			r.Date.String(),
			r.CustomerName,
			r.CustomerPhone,
			r.ProductName,
			r.UnitPrice.Float64(),
			r.Quantity,
			r.LineTotal.Float64(),
			r.CumulativeSpend.Float64(),
			r.BonusPoints.Float64(),
			r.ID,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", row+1, err)
			}
		}
	}

	if err := f.SetColWidth(SheetName, "A", "J", 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Target adapts WriteReport to the mirror target interface, rewriting a
// fixed workbook path on every sync.
type Target struct {
	path string
}

func NewTarget(path string) *Target {
	return &Target{path: path}
}

func (t *Target) Name() string { return "xlsx" }

func (t *Target) WriteTable(_ context.Context, records []core.PurchaseRecord) error {
	return WriteReport(t.path, records)
}
