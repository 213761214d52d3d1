package http

import (
	"encoding/json"
	"net/http"

	"bloodlink-backend/internal/service"
)

type FundHandler struct {
	fundService service.FundService
}

func NewFundHandler(fundService service.FundService) *FundHandler {
	return &FundHandler{fundService: fundService}
}

// CreatePaymentIntent opens a gateway intent and hands back the client
// secret the frontend needs to collect the payment.
func (h *FundHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var body struct {
		AmountCents int64 `json:"amount_cents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, clientSecret, err := h.fundService.CreatePaymentIntent(r.Context(), claims.UserID, body.AmountCents)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"payment_intent_id": id,
		"client_secret":     clientSecret,
	})
}

// RecordFund appends the ledger row once the gateway confirms the payment.
func (h *FundHandler) RecordFund(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var body struct {
		TransactionID string `json:"transaction_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.TransactionID == "" {
		writeError(w, http.StatusBadRequest, "transaction_id is required")
		return
	}

	record, err := h.fundService.RecordFund(r.Context(), claims.UserID, body.TransactionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (h *FundHandler) ListFunds(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	page, pageSize := pagination(r)

	records, total, count, err := h.fundService.ListFunds(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"funds":              records,
		"total_amount_cents": total,
		"total_count":        count,
	})
}
