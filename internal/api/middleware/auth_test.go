package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitebooking/booking-engine/internal/domain"
)

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		role       string
		wantStatus int
		wantUserID int64
		wantRole   domain.Role
	}{
		{name: "valid user", userID: "7", role: "user", wantStatus: http.StatusOK, wantUserID: 7, wantRole: domain.RoleUser},
		{name: "valid owner", userID: "10", role: "owner", wantStatus: http.StatusOK, wantUserID: 10, wantRole: domain.RoleOwner},
		{name: "valid admin", userID: "99", role: "admin", wantStatus: http.StatusOK, wantUserID: 99, wantRole: domain.RoleAdmin},
		{name: "role defaults to user", userID: "7", role: "", wantStatus: http.StatusOK, wantUserID: 7, wantRole: domain.RoleUser},
		{name: "missing user id", userID: "", wantStatus: http.StatusUnauthorized},
		{name: "non-numeric user id", userID: "abc", wantStatus: http.StatusUnauthorized},
		{name: "zero user id", userID: "0", wantStatus: http.StatusUnauthorized},
		{name: "negative user id", userID: "-5", wantStatus: http.StatusUnauthorized},
		{name: "unknown role", userID: "7", role: "superuser", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPrincipal domain.Principal
			var called bool

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				principal, ok := GetPrincipal(r.Context())
				require.True(t, ok)
				gotPrincipal = principal
				called = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/1", nil)
			if tt.userID != "" {
				req.Header.Set("X-User-ID", tt.userID)
			}
			if tt.role != "" {
				req.Header.Set("X-User-Role", tt.role)
			}

			rec := httptest.NewRecorder()
			Auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.True(t, called)
				assert.Equal(t, tt.wantUserID, gotPrincipal.UserID)
				assert.Equal(t, tt.wantRole, gotPrincipal.Role)
			} else {
				assert.False(t, called)
			}
		})
	}
}

func TestGetPrincipal_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetPrincipal(req.Context())
	assert.False(t, ok)
}
