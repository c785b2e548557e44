package core

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the canonical text form of a purchase date.
const DateLayout = "2006-01-02"

type (
	// Date is a calendar date without time of day.
	Date struct {
		time.Time
	}

	// PurchaseRecord is one retail transaction line. LineTotal,
	// CumulativeSpend and BonusPoints are derived fields owned by
	// Recalculate; they are never edited in place.
	PurchaseRecord struct {
		ID            string
		Date          Date
		CustomerName  string
		CustomerPhone string
		ProductName   string
		UnitPrice     Money
		Quantity      int

		LineTotal       Money
		CumulativeSpend Money
		BonusPoints     Points
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyCustomerName  = errors.New("empty customer name")
	ErrEmptyCustomerPhone = errors.New("empty customer phone")
	ErrEmptyProductName   = errors.New("empty product name")
	ErrEmptySelection     = errors.New("empty selection")
)

// dateLayouts are the accepted input forms, tried in order.
var dateLayouts = []string{
	DateLayout,
	"2006/01/02",
	"02.01.2006",
}

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// EpochDate is the sentinel minimum date assigned to records whose date
// text could not be parsed. Epoch records accumulate first within their
// customer group and display last in the descending presentation order.
func EpochDate() Date {
	return NewDate(1970, 1, 1)
}

// ParseDate parses a calendar date string. Unparsable or missing input
// degrades to the epoch sentinel, never to an error.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t.UTC()}
		}
	}
	return EpochDate()
}

// String renders the date in the canonical YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// Validate checks the user-supplied fields of a new record. Derived
// fields and numeric coercion are the engine's concern, so only the
// required free-text fields are enforced here.
func (r PurchaseRecord) Validate() error {
	if strings.TrimSpace(r.CustomerName) == "" {
		return ErrEmptyCustomerName
	}
	if strings.TrimSpace(r.CustomerPhone) == "" {
		return ErrEmptyCustomerPhone
	}
	if strings.TrimSpace(r.ProductName) == "" {
		return ErrEmptyProductName
	}
	return nil
}
