package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"purchases/internal/core"
	"purchases/internal/services"
)

type recordResponse struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	ProductName     string `json:"product_name"`
	UnitPrice       string `json:"unit_price"`
	Quantity        int    `json:"quantity"`
	LineTotal       string `json:"line_total"`
	CumulativeSpend string `json:"cumulative_spend"`
	BonusPoints     string `json:"bonus_points"`
}

type addRecordRequest struct {
	Date             string   `json:"date"`
	CustomerName     string   `json:"customer_name"`
	CustomerPhone    string   `json:"customer_phone"`
	ProductName      string   `json:"product_name"`
	UnitPrice        string   `json:"unit_price"`
	Quantity         string   `json:"quantity"`
	BonusRatePercent *float64 `json:"bonus_rate_percent,omitempty"`
}

type deleteRecordsRequest struct {
	IDs              []string `json:"ids"`
	BonusRatePercent *float64 `json:"bonus_rate_percent,omitempty"`
}

func toResponse(r core.PurchaseRecord) recordResponse {
	return recordResponse{
		ID:              r.ID,
		Date:            r.Date.String(),
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		ProductName:     r.ProductName,
		UnitPrice:       r.UnitPrice.String(),
		Quantity:        r.Quantity,
		LineTotal:       r.LineTotal.String(),
		CumulativeSpend: r.CumulativeSpend.String(),
		BonusPoints:     r.BonusPoints.String(),
	}
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("phone")
	records, err := s.svc.Search(r.Context(), query, s.bonusRatePercent)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list records", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return
	}
	s.metrics.SearchesTotal.Inc()

	out := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toResponse(rec))
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": out})
}

func (s *Server) handleAddRecord(w http.ResponseWriter, r *http.Request) {
	var req addRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rec, err := s.svc.AddRecord(r.Context(), services.AddRecordInput{
		Date:          req.Date,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		ProductName:   req.ProductName,
		UnitPrice:     req.UnitPrice,
		Quantity:      req.Quantity,
	}, s.rate(req.BonusRatePercent))
	switch {
	case errors.Is(err, core.ErrEmptyCustomerName),
		errors.Is(err, core.ErrEmptyCustomerPhone),
		errors.Is(err, core.ErrEmptyProductName):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Failed to add record",
			"error", err,
			"phone", req.CustomerPhone,
			"product", req.ProductName)
		writeError(w, http.StatusInternalServerError, "failed to save record")
		return
	}

	s.metrics.AddsTotal.Inc()
	s.updateLedgerSize(r)

	slog.InfoContext(r.Context(), "Record created",
		"record_id", rec.ID,
		"phone", rec.CustomerPhone,
		"product", rec.ProductName)
	writeJSON(w, http.StatusCreated, toResponse(rec))
}

func (s *Server) handleDeleteRecords(w http.ResponseWriter, r *http.Request) {
	var req deleteRecordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	deleted, err := s.svc.DeleteRecords(r.Context(), req.IDs, s.rate(req.BonusRatePercent))
	switch {
	case errors.Is(err, core.ErrEmptySelection):
		writeError(w, http.StatusBadRequest, "no records selected")
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Failed to delete records", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete records")
		return
	}

	s.metrics.DeletesTotal.Inc()
	s.updateLedgerSize(r)

	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

func (s *Server) rate(override *float64) float64 {
	if override != nil {
		return *override
	}
	return s.bonusRatePercent
}

func (s *Server) updateLedgerSize(r *http.Request) {
	if records, err := s.svc.List(r.Context(), s.bonusRatePercent); err == nil {
		s.metrics.LedgerSize.Set(float64(len(records)))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
