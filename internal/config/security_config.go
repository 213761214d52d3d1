package config

type SecurityLevel int

const (
	SecurityPublic  SecurityLevel = iota // No authentication
	SecurityRefresh                      // Refresh token required
	SecurityAccess                       // Access token required
)

// EndpointSecurityConfig maps "METHOD template" route keys to their
// required security level. Routes absent from the map default to
// SecurityAccess: an unregistered endpoint fails closed.
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Auth - Public
	"POST /api/v1/auth/register": SecurityPublic,
	"POST /api/v1/auth/login":    SecurityPublic,
	"POST /api/v1/auth/token":    SecurityPublic,

	// Auth - Refresh Protected
	"POST /api/v1/auth/refresh": SecurityRefresh,

	// Health - Public
	"GET /api/v1/health": SecurityPublic,

	// Identity resolver - Public (read-only; the interim default role it
	// may return is never trusted by write paths)
	"GET /api/v1/users/role/{email}": SecurityPublic,

	// Public donation-request reads
	"GET /api/v1/donation-requests/pending": SecurityPublic,
	"GET /api/v1/donation-requests/{id}":    SecurityPublic,

	// Public blog reads (published posts only)
	"GET /api/v1/content/blog-posts":      SecurityPublic,
	"GET /api/v1/content/blog-posts/{id}": SecurityPublic,

	// Users - Access Protected
	"GET /api/v1/users/me":                 SecurityAccess,
	"PATCH /api/v1/users/me":               SecurityAccess,
	"GET /api/v1/users":                    SecurityAccess,
	"PATCH /api/v1/users/role-status/{id}": SecurityAccess,
	"GET /api/v1/donors/search":            SecurityAccess,

	// Donation requests - Access Protected
	"POST /api/v1/donation-requests":                   SecurityAccess,
	"GET /api/v1/donation-requests/my-requests":        SecurityAccess,
	"PATCH /api/v1/donation-requests/{id}":             SecurityAccess,
	"POST /api/v1/donation-requests/{id}/claim":        SecurityAccess,
	"PATCH /api/v1/donation-requests/{id}/status":      SecurityAccess,
	"DELETE /api/v1/donation-requests/{id}":            SecurityAccess,
	"GET /api/v1/donation-requests/admin/all-requests": SecurityAccess,

	// Funding - Access Protected
	"POST /api/v1/payment/create-payment-intent": SecurityAccess,
	"POST /api/v1/funds":                         SecurityAccess,
	"GET /api/v1/funds":                          SecurityAccess,

	// Content management - Access Protected (role checks in the service)
	"GET /api/v1/content/admin/blog-posts":           SecurityAccess,
	"POST /api/v1/content/blog-posts":                SecurityAccess,
	"PATCH /api/v1/content/blog-posts/{id}":          SecurityAccess,
	"PATCH /api/v1/content/blog-posts/{id}/status":   SecurityAccess,
	"POST /api/v1/content/blog-posts/{id}/duplicate": SecurityAccess,
	"DELETE /api/v1/content/blog-posts/{id}":         SecurityAccess,
}

// GetSecurityLevel returns the security level for a route key, defaulting
// to SecurityAccess for anything unknown.
func GetSecurityLevel(routeKey string) SecurityLevel {
	if level, ok := EndpointSecurityConfig[routeKey]; ok {
		return level
	}
	return SecurityAccess
}
