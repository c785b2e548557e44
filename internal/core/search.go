package core

import "strings"

// FilterByPhone returns the records whose customer phone contains the
// query as a case-sensitive substring. A blank query returns the full
// set unfiltered.
func FilterByPhone(records []PurchaseRecord, query string) []PurchaseRecord {
	query = strings.TrimSpace(query)
	if query == "" {
		return records
	}
	out := make([]PurchaseRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(r.CustomerPhone, query) {
			out = append(out, r)
		}
	}
	return out
}
