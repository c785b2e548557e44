// Package services orchestrates ledger mutations: every add or delete
// runs the full load -> mutate -> recalculate -> save cycle.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"purchases/internal/amqp"
	"purchases/internal/core"
	"purchases/internal/store"
)

// LedgerService owns the record store and an optional AMQP client used
// to announce mutations to the mirror worker. Operations are synchronous
// and single-writer; concurrent sessions on the same backing store are
// last-writer-wins.
type LedgerService struct {
	store      store.RecordStore
	amqpClient *amqp.Client
	revision   atomic.Int64
}

// AddRecordInput carries raw form input for a new purchase. Price and
// quantity arrive as text so that malformed values degrade to zero (the
// coercion policy) instead of failing the operation.
type AddRecordInput struct {
	Date          string
	CustomerName  string
	CustomerPhone string
	ProductName   string
	UnitPrice     string
	Quantity      string
}

func NewLedgerService(store store.RecordStore, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		store:      store,
		amqpClient: amqpClient,
	}
}

// AddRecord validates the input, appends a new record and persists the
// recalculated set. The returned record carries its derived fields.
func (s *LedgerService) AddRecord(ctx context.Context, in AddRecordInput, bonusRatePercent float64) (core.PurchaseRecord, error) {
	date := core.ParseDate(in.Date)
	if in.Date == "" {
		// The entry form defaults the date to today.
		now := time.Now().UTC()
		date = core.NewDate(now.Year(), int(now.Month()), now.Day())
	}

	rec := core.PurchaseRecord{
		ID:            uuid.NewString(),
		Date:          date,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		ProductName:   in.ProductName,
		UnitPrice:     core.CoerceMoney(in.UnitPrice),
		Quantity:      core.CoerceQuantity(in.Quantity),
	}
	if err := rec.Validate(); err != nil {
		return core.PurchaseRecord{}, err
	}

	records, err := s.store.Load(ctx)
	if err != nil {
		return core.PurchaseRecord{}, fmt.Errorf("load records: %w", err)
	}
	records = append(records, rec)
	records = core.Recalculate(records, bonusRatePercent)

	if err := s.store.Save(ctx, records); err != nil {
		return core.PurchaseRecord{}, fmt.Errorf("save records: %w", err)
	}
	s.publishSync(ctx, len(records))

	slog.InfoContext(ctx, "Record added",
		"record_id", rec.ID,
		"phone", rec.CustomerPhone,
		"product", rec.ProductName,
		"amount_cents", rec.UnitPrice.Cents,
		"records", len(records))

	for _, r := range records {
		if r.ID == rec.ID {
			return r, nil
		}
	}
	return rec, nil
}

// DeleteRecords removes the records with the given IDs and persists the
// recalculated remainder. An empty selection is rejected with
// core.ErrEmptySelection; unknown IDs are skipped and the number of
// records actually removed is returned.
func (s *LedgerService) DeleteRecords(ctx context.Context, ids []string, bonusRatePercent float64) (int, error) {
	if len(ids) == 0 {
		return 0, core.ErrEmptySelection
	}

	records, err := s.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load records: %w", err)
	}

	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}
	remaining := make([]core.PurchaseRecord, 0, len(records))
	for _, r := range records {
		if !selected[r.ID] {
			remaining = append(remaining, r)
		}
	}
	deleted := len(records) - len(remaining)
	if deleted == 0 {
		slog.WarnContext(ctx, "No records matched the selection", "records", len(ids))
		return 0, nil
	}

	remaining = core.Recalculate(remaining, bonusRatePercent)
	if err := s.store.Save(ctx, remaining); err != nil {
		return 0, fmt.Errorf("save records: %w", err)
	}
	s.publishSync(ctx, len(remaining))

	slog.InfoContext(ctx, "Records deleted",
		"records", deleted,
		"remaining", len(remaining))
	return deleted, nil
}

// List returns the recalculated record set in presentation order
// without persisting it.
func (s *LedgerService) List(ctx context.Context, bonusRatePercent float64) ([]core.PurchaseRecord, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	return core.Recalculate(records, bonusRatePercent), nil
}

// Search returns the recalculated records whose phone contains the
// query. A blank query returns the full set.
func (s *LedgerService) Search(ctx context.Context, phoneQuery string, bonusRatePercent float64) ([]core.PurchaseRecord, error) {
	records, err := s.List(ctx, bonusRatePercent)
	if err != nil {
		return nil, err
	}
	return core.FilterByPhone(records, phoneQuery), nil
}

// publishSync announces the mutation. Publish failures never fail the
// mutation: the store is already consistent, mirrors catch up on the
// next periodic resync.
func (s *LedgerService) publishSync(ctx context.Context, records int) {
	if s.amqpClient == nil {
		return
	}
	msg := amqp.NewLedgerSyncMessage(s.revision.Add(1), records)
	if err := s.amqpClient.PublishLedgerSync(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger sync message",
			"error", err,
			"revision", msg.Revision)
	}
}

// Close closes the store and the AMQP connection.
func (s *LedgerService) Close() error {
	var errs []error
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}
	return nil
}
