package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "testsecret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func resolveWith(t *testing.T, authHeader string) Identity {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var got Identity
	r := gin.New()
	r.Use(ResolveIdentity(testSecret))
	r.GET("/whoami", func(c *gin.Context) {
		got = CurrentIdentity(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	return got
}

func TestResolveIdentity(t *testing.T) {
	valid := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "7",
		"name":  "Alice",
		"email": "alice@example.com",
		"role":  "Admin",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	expired := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "7",
		"role": "admin",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, "othersecret", jwt.MapClaims{
		"sub":  "7",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name      string
		header    string
		wantAdmin bool
		wantID    uint
	}{
		{"no header", "", false, 0},
		{"not bearer", "Basic abc", false, 0},
		{"garbage token", "Bearer not-a-jwt", false, 0},
		{"expired token", "Bearer " + expired, false, 0},
		{"wrong signing key", "Bearer " + wrongKey, false, 0},
		{"valid admin, mixed-case role", "Bearer " + valid, true, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := resolveWith(t, tt.header)
			if identity.IsAdmin() != tt.wantAdmin {
				t.Fatalf("IsAdmin = %v, want %v", identity.IsAdmin(), tt.wantAdmin)
			}
			if identity.UserID != tt.wantID {
				t.Fatalf("UserID = %d, want %d", identity.UserID, tt.wantID)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ResolveIdentity(testSecret))
	r.GET("/admin-only", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// anonymous is forbidden, not unauthorized: the resolver never fails a
	// request, the gate does
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("anonymous status = %d, want 403", w.Code)
	}

	normal := signToken(t, testSecret, jwt.MapClaims{
		"sub": "2", "role": "normal", "exp": time.Now().Add(time.Hour).Unix(),
	})
	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+normal)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("normal-user status = %d, want 403", w.Code)
	}

	admin := signToken(t, testSecret, jwt.MapClaims{
		"sub": "1", "role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	})
	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want 200", w.Code)
	}
}
