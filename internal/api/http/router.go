package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"bloodlink-backend/internal/security"
)

// Handlers groups everything the router needs.
type Handlers struct {
	Auth    *AuthHandler
	User    *UserHandler
	Request *RequestHandler
	Blog    *BlogHandler
	Fund    *FundHandler
}

// NewRouter builds the API router with auth middleware applied to every
// route. Per-route security levels come from the endpoint security map.
func NewRouter(h Handlers, tm security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)
	r.Use(AuthMiddleware(tm))

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", handleHealth).Methods(http.MethodGet)

	// Auth
	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/token", h.Auth.ExchangeToken).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost)

	// Users
	api.HandleFunc("/users/me", h.User.GetProfile).Methods(http.MethodGet)
	api.HandleFunc("/users/me", h.User.UpdateProfile).Methods(http.MethodPatch)
	api.HandleFunc("/users/role/{email}", h.User.ResolveRole).Methods(http.MethodGet)
	api.HandleFunc("/users/role-status/{id}", h.User.SetRoleStatus).Methods(http.MethodPatch)
	api.HandleFunc("/users", h.User.ListUsers).Methods(http.MethodGet)
	api.HandleFunc("/donors/search", h.User.SearchDonors).Methods(http.MethodGet)

	// Donation requests. Literal paths register before the {id} pattern so
	// mux never shadows them.
	api.HandleFunc("/donation-requests", h.Request.Create).Methods(http.MethodPost)
	api.HandleFunc("/donation-requests/pending", h.Request.ListPending).Methods(http.MethodGet)
	api.HandleFunc("/donation-requests/my-requests", h.Request.MyRequests).Methods(http.MethodGet)
	api.HandleFunc("/donation-requests/admin/all-requests", h.Request.ListAll).Methods(http.MethodGet)
	api.HandleFunc("/donation-requests/{id}", h.Request.Get).Methods(http.MethodGet)
	api.HandleFunc("/donation-requests/{id}", h.Request.Edit).Methods(http.MethodPatch)
	api.HandleFunc("/donation-requests/{id}/claim", h.Request.Claim).Methods(http.MethodPost)
	api.HandleFunc("/donation-requests/{id}/status", h.Request.UpdateStatus).Methods(http.MethodPatch)
	api.HandleFunc("/donation-requests/{id}", h.Request.Delete).Methods(http.MethodDelete)

	// Funding
	api.HandleFunc("/payment/create-payment-intent", h.Fund.CreatePaymentIntent).Methods(http.MethodPost)
	api.HandleFunc("/funds", h.Fund.RecordFund).Methods(http.MethodPost)
	api.HandleFunc("/funds", h.Fund.ListFunds).Methods(http.MethodGet)

	// Content
	api.HandleFunc("/content/blog-posts", h.Blog.ListPublished).Methods(http.MethodGet)
	api.HandleFunc("/content/blog-posts", h.Blog.Create).Methods(http.MethodPost)
	api.HandleFunc("/content/admin/blog-posts", h.Blog.ListAll).Methods(http.MethodGet)
	api.HandleFunc("/content/blog-posts/{id}", h.Blog.GetPublished).Methods(http.MethodGet)
	api.HandleFunc("/content/blog-posts/{id}", h.Blog.Update).Methods(http.MethodPatch)
	api.HandleFunc("/content/blog-posts/{id}/status", h.Blog.SetStatus).Methods(http.MethodPatch)
	api.HandleFunc("/content/blog-posts/{id}/duplicate", h.Blog.Duplicate).Methods(http.MethodPost)
	api.HandleFunc("/content/blog-posts/{id}", h.Blog.Delete).Methods(http.MethodDelete)

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
