package http

import (
	"encoding/json"
	"net/http"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/service"
)

type RequestHandler struct {
	requestService service.RequestService
}

func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

type donationRequestPayload struct {
	RecipientName     string `json:"recipient_name"`
	RecipientEmail    string `json:"recipient_email"`
	BloodGroup        string `json:"blood_group"`
	RecipientDistrict string `json:"recipient_district"`
	RecipientUpazila  string `json:"recipient_upazila"`
	HospitalName      string `json:"hospital_name"`
	Address           string `json:"address"`
	DonationDate      string `json:"donation_date"`
	DonationTime      string `json:"donation_time"`
	RequestMessage    string `json:"request_message"`
}

func (p donationRequestPayload) toDomain() *domain.DonationRequest {
	return &domain.DonationRequest{
		RecipientName:     p.RecipientName,
		RecipientEmail:    p.RecipientEmail,
		BloodGroup:        domain.BloodGroup(p.BloodGroup),
		RecipientDistrict: p.RecipientDistrict,
		RecipientUpazila:  p.RecipientUpazila,
		HospitalName:      p.HospitalName,
		Address:           p.Address,
		DonationDate:      p.DonationDate,
		DonationTime:      p.DonationTime,
		RequestMessage:    p.RequestMessage,
	}
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var payload donationRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.RecipientName == "" || payload.HospitalName == "" || payload.DonationDate == "" {
		writeError(w, http.StatusBadRequest, "recipient_name, hospital_name and donation_date are required")
		return
	}
	if !domain.BloodGroup(payload.BloodGroup).Valid() {
		writeError(w, http.StatusBadRequest, "invalid blood_group")
		return
	}

	req := payload.toDomain()
	if err := h.requestService.Create(r.Context(), claims.UserID, req); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, err := h.requestService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *RequestHandler) MyRequests(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	page, pageSize := pagination(r)

	requests, count, err := h.requestService.MyRequests(r.Context(), claims.UserID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"requests":    requests,
		"total_count": count,
	})
}

func (h *RequestHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	requests, count, err := h.requestService.ListPending(r.Context(), page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"requests":    requests,
		"total_count": count,
	})
}

func (h *RequestHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	page, pageSize := pagination(r)

	requests, count, err := h.requestService.ListAll(r.Context(), claims.UserID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"requests":    requests,
		"total_count": count,
	})
}

func (h *RequestHandler) Edit(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload donationRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !domain.BloodGroup(payload.BloodGroup).Valid() {
		writeError(w, http.StatusBadRequest, "invalid blood_group")
		return
	}

	req := payload.toDomain()
	req.ID = id
	updated, err := h.requestService.Edit(r.Context(), claims.UserID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Claim volunteers the caller as donor for a pending request. Losing the
// race with another volunteer comes back as a conflict.
func (h *RequestHandler) Claim(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, err := h.requestService.Claim(r.Context(), claims.UserID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *RequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var req *domain.DonationRequest
	switch domain.RequestStatus(body.Status) {
	case domain.RequestStatusDone:
		req, err = h.requestService.MarkDone(r.Context(), claims.UserID, id)
	case domain.RequestStatusCanceled:
		req, err = h.requestService.Cancel(r.Context(), claims.UserID, id)
	default:
		writeError(w, http.StatusBadRequest, "status must be done or canceled")
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *RequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.requestService.Delete(r.Context(), claims.UserID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "request deleted"})
}
