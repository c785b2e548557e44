// Package mirror pushes the recalculated ledger to external read-only
// targets (Google Sheets, XLSX reports). Mirroring is eventually
// consistent and best effort; the core never depends on it.
package mirror

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"purchases/internal/amqp"
	"purchases/internal/core"
	"purchases/internal/store"
)

// Target receives the full recalculated table on every sync.
type Target interface {
	Name() string
	WriteTable(ctx context.Context, records []core.PurchaseRecord) error
}

// SyncWorker reloads the store on every ledger change event and rewrites
// each configured target.
type SyncWorker struct {
	store            store.RecordStore
	targets          []Target
	bonusRatePercent float64
}

func NewSyncWorker(store store.RecordStore, targets []Target, bonusRatePercent float64) *SyncWorker {
	return &SyncWorker{
		store:            store,
		targets:          targets,
		bonusRatePercent: bonusRatePercent,
	}
}

// HandleSyncMessage processes one ledger change event.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.LedgerSyncMessage) error {
	slog.InfoContext(ctx, "Processing ledger sync message",
		"revision", msg.Revision,
		"records", msg.Records)
	return w.Resync(ctx)
}

// Resync mirrors the current table to every target. The message carries
// no row data, so a resync after a missed message converges to the same
// state.
func (w *SyncWorker) Resync(ctx context.Context) error {
	records, err := w.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	records = core.Recalculate(records, w.bonusRatePercent)

	var firstErr error
	for _, t := range w.targets {
		if err := t.WriteTable(ctx, records); err != nil {
			slog.ErrorContext(ctx, "Mirror target failed",
				"error", err,
				"target", t.Name(),
				"records", len(records))
			if firstErr == nil {
				firstErr = fmt.Errorf("mirror to %s: %w", t.Name(), err)
			}
			continue
		}
		slog.InfoContext(ctx, "Mirrored ledger",
			"target", t.Name(),
			"records", len(records))
	}
	return firstErr
}

// RunPeriodic resyncs on the given interval until the context is
// cancelled, covering messages lost while the worker was down.
func (w *SyncWorker) RunPeriodic(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Resync(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic resync failed", "error", err)
			}
		}
	}
}
