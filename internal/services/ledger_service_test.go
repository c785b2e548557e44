package services

import (
	"context"
	"errors"
	"testing"

	"purchases/internal/core"
	"purchases/internal/store"
)

func newTestService() *LedgerService {
	return NewLedgerService(store.NewMemoryStore(), nil)
}

func TestAddRecordValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cases := []struct {
		name string
		in   AddRecordInput
		want error
	}{
		{"empty name", AddRecordInput{CustomerPhone: "555", ProductName: "Tea"}, core.ErrEmptyCustomerName},
		{"empty phone", AddRecordInput{CustomerName: "Anna", ProductName: "Tea"}, core.ErrEmptyCustomerPhone},
		{"empty product", AddRecordInput{CustomerName: "Anna", CustomerPhone: "555"}, core.ErrEmptyProductName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AddRecord(ctx, tc.in, 10); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}

	// Nothing persisted on rejection.
	records, err := svc.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("rejected adds must not persist, got %d records", len(records))
	}
}

func TestAddRecordRecalculatesAndPersists(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.AddRecord(ctx, AddRecordInput{
		Date: "2024-01-01", CustomerName: "Anna", CustomerPhone: "555",
		ProductName: "Coffee", UnitPrice: "10.00", Quantity: "2",
	}, 10)
	if err != nil {
		t.Fatalf("add first: %v", err)
	}
	if first.LineTotal.Cents != 2000 || first.CumulativeSpend.Cents != 2000 || first.BonusPoints.Hundredths != 200 {
		t.Fatalf("first record derived fields: %+v", first)
	}

	second, err := svc.AddRecord(ctx, AddRecordInput{
		Date: "2024-01-05", CustomerName: "Anna", CustomerPhone: "555",
		ProductName: "Tea", UnitPrice: "5.00", Quantity: "1",
	}, 10)
	if err != nil {
		t.Fatalf("add second: %v", err)
	}
	if second.CumulativeSpend.Cents != 2500 || second.BonusPoints.Hundredths != 250 {
		t.Fatalf("second record derived fields: %+v", second)
	}

	records, err := svc.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Date.String() != "2024-01-05" {
		t.Fatalf("newest record should display first, got %s", records[0].Date)
	}
}

func TestAddRecordCoercesMalformedNumbers(t *testing.T) {
	svc := newTestService()
	rec, err := svc.AddRecord(context.Background(), AddRecordInput{
		Date: "2024-01-01", CustomerName: "Anna", CustomerPhone: "555",
		ProductName: "Tea", UnitPrice: "not-a-number", Quantity: "bad",
	}, 10)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if rec.UnitPrice.Cents != 0 || rec.Quantity != 0 || rec.LineTotal.Cents != 0 {
		t.Fatalf("coercion defaults not applied: %+v", rec)
	}
}

func TestDeleteRecords(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, _ := svc.AddRecord(ctx, AddRecordInput{
		Date: "2024-01-01", CustomerName: "Anna", CustomerPhone: "555",
		ProductName: "Coffee", UnitPrice: "10.00", Quantity: "2",
	}, 10)
	second, _ := svc.AddRecord(ctx, AddRecordInput{
		Date: "2024-01-05", CustomerName: "Anna", CustomerPhone: "555",
		ProductName: "Tea", UnitPrice: "5.00", Quantity: "1",
	}, 10)

	deleted, err := svc.DeleteRecords(ctx, []string{second.ID}, 10)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("deleted = %d, want 1", deleted)
	}

	records, err := svc.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].ID != first.ID {
		t.Fatalf("unexpected remaining records: %+v", records)
	}
	if records[0].CumulativeSpend.Cents != 2000 || records[0].BonusPoints.Hundredths != 200 {
		t.Fatalf("remaining record not recalculated: %+v", records[0])
	}
}

func TestDeleteRecordsEmptySelection(t *testing.T) {
	svc := newTestService()
	if _, err := svc.DeleteRecords(context.Background(), nil, 10); !errors.Is(err, core.ErrEmptySelection) {
		t.Fatalf("got %v, want ErrEmptySelection", err)
	}
}

func TestDeleteRecordsUnknownIDs(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	svc.AddRecord(ctx, AddRecordInput{
		Date: "2024-01-01", CustomerName: "Anna", CustomerPhone: "555",
		ProductName: "Coffee", UnitPrice: "1.00", Quantity: "1",
	}, 0)

	deleted, err := svc.DeleteRecords(ctx, []string{"no-such-id"}, 0)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("deleted = %d, want 0", deleted)
	}
	records, _ := svc.List(ctx, 0)
	if len(records) != 1 {
		t.Fatalf("record set should be unchanged, got %d records", len(records))
	}
}

func TestSearch(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	svc.AddRecord(ctx, AddRecordInput{
		Date: "2024-01-01", CustomerName: "Anna", CustomerPhone: "555-1234",
		ProductName: "Coffee", UnitPrice: "1.00", Quantity: "1",
	}, 0)
	svc.AddRecord(ctx, AddRecordInput{
		Date: "2024-01-02", CustomerName: "Boris", CustomerPhone: "555-5678",
		ProductName: "Tea", UnitPrice: "1.00", Quantity: "1",
	}, 0)

	both, err := svc.Search(ctx, "555", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(both) != 2 {
		t.Fatalf("search 555: got %d, want 2", len(both))
	}
	one, _ := svc.Search(ctx, "1234", 0)
	if len(one) != 1 || one[0].CustomerPhone != "555-1234" {
		t.Fatalf("search 1234: %+v", one)
	}
	all, _ := svc.Search(ctx, "", 0)
	if len(all) != 2 {
		t.Fatalf("blank search: got %d, want 2", len(all))
	}
}

func TestCloseWithNilComponents(t *testing.T) {
	svc := &LedgerService{}
	if err := svc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
