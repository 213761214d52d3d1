package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	user, err := h.userService.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req struct {
		Name             string `json:"name"`
		Phone            string `json:"phone"`
		BloodGroup       string `json:"blood_group"`
		District         string `json:"district"`
		Upazila          string `json:"upazila"`
		AvatarURL        string `json:"avatar_url"`
		LastDonationDate string `json:"last_donation_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), claims.UserID, service.ProfileInput{
		Name:             req.Name,
		Phone:            req.Phone,
		BloodGroup:       req.BloodGroup,
		District:         req.District,
		Upazila:          req.Upazila,
		AvatarURL:        req.AvatarURL,
		LastDonationDate: req.LastDonationDate,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ResolveRole answers the public role lookup by email.
func (h *UserHandler) ResolveRole(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	role, status, err := h.userService.ResolveRole(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"role":   string(role),
		"status": string(status),
	})
}

func (h *UserHandler) SearchDonors(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	q := r.URL.Query()

	users, count, err := h.userService.SearchDonors(r.Context(),
		q.Get("blood_group"), q.Get("district"), q.Get("upazila"), page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"donors":      users,
		"total_count": count,
	})
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	page, pageSize := pagination(r)

	users, count, err := h.userService.ListUsers(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"users":       users,
		"total_count": count,
	})
}

func (h *UserHandler) SetRoleStatus(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	rawID := mux.Vars(r)["id"]
	targetID, err := strconv.ParseInt(rawID, 10, 32)
	if err != nil || targetID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req struct {
		Role   string `json:"role"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.userService.SetRoleStatus(r.Context(), claims.UserID, int32(targetID),
		domain.Role(req.Role), domain.UserStatus(req.Status))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user updated"})
}
