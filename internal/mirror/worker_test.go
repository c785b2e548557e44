package mirror

import (
	"context"
	"errors"
	"testing"

	"purchases/internal/amqp"
	"purchases/internal/core"
	"purchases/internal/store"
)

type captureTarget struct {
	name   string
	tables [][]core.PurchaseRecord
	err    error
}

func (t *captureTarget) Name() string { return t.name }

func (t *captureTarget) WriteTable(_ context.Context, records []core.PurchaseRecord) error {
	if t.err != nil {
		return t.err
	}
	t.tables = append(t.tables, records)
	return nil
}

func TestHandleSyncMessageMirrorsRecalculatedTable(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	s.Save(ctx, []core.PurchaseRecord{
		{ID: "a", Date: core.ParseDate("2024-01-01"), CustomerName: "n", CustomerPhone: "555", ProductName: "x", UnitPrice: core.Money{Cents: 1000}, Quantity: 2},
		{ID: "b", Date: core.ParseDate("2024-01-05"), CustomerName: "n", CustomerPhone: "555", ProductName: "y", UnitPrice: core.Money{Cents: 500}, Quantity: 1},
	})

	target := &captureTarget{name: "capture"}
	w := NewSyncWorker(s, []Target{target}, 10)

	if err := w.HandleSyncMessage(ctx, amqp.NewLedgerSyncMessage(1, 2)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(target.tables) != 1 {
		t.Fatalf("expected 1 mirrored table, got %d", len(target.tables))
	}
	table := target.tables[0]
	if len(table) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table))
	}
	if table[0].Date.String() != "2024-01-05" {
		t.Fatalf("table not in display order: %s first", table[0].Date)
	}
	if table[0].CumulativeSpend.Cents != 2500 || table[0].BonusPoints.Hundredths != 250 {
		t.Fatalf("table not recalculated: %+v", table[0])
	}
}

func TestResyncReportsTargetFailureButContinues(t *testing.T) {
	s := store.NewMemoryStore()
	bad := &captureTarget{name: "bad", err: errors.New("boom")}
	good := &captureTarget{name: "good"}
	w := NewSyncWorker(s, []Target{bad, good}, 0)

	err := w.Resync(context.Background())
	if err == nil {
		t.Fatal("expected error from failing target")
	}
	if len(good.tables) != 1 {
		t.Fatalf("healthy target should still be written, got %d tables", len(good.tables))
	}
}
