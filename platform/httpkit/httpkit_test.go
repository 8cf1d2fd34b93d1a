package httpkit

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"contactcenter_backend/platform/apperr"
	"contactcenter_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type jwtConfig struct{ secret string }

func (c jwtConfig) GetJWTAccessSecret() string { return c.secret }

func init() {
	gin.SetMode(gin.TestMode)
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestHandleErrorMapsKinds(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.InvalidArgument("bad page"), http.StatusBadRequest},
		{fmt.Errorf("kpis: %w", apperr.Unavailable("leads store timed out", errors.New("deadline"))), http.StatusServiceUnavailable},
		{errors.New("pgx: conn closed"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
		if !HandleError(c, tc.err) {
			t.Fatal("expected error to be handled")
		}
		if w.Code != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.want, w.Code)
		}
	}
}

func TestAuthRequired(t *testing.T) {
	cfg := jwtConfig{secret: "s3cret"}
	r := gin.New()
	r.Use(RequestID(logger.Nop()))
	r.GET("/me", AuthRequired(cfg), RequireRole("operator"), func(c *gin.Context) {
		c.String(http.StatusOK, MustGetIdentity(c).Subject())
	})

	valid := signed(t, cfg.secret, jwt.MapClaims{
		"sub": "admin", "type": TokenTypeAccess, "roles": []string{"operator"},
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	refresh := signed(t, cfg.secret, jwt.MapClaims{
		"sub": "admin", "type": "refresh", "exp": time.Now().Add(time.Hour).Unix(),
	})
	expired := signed(t, cfg.secret, jwt.MapClaims{
		"sub": "admin", "type": TokenTypeAccess, "exp": time.Now().Add(-time.Hour).Unix(),
	})
	noRole := signed(t, cfg.secret, jwt.MapClaims{
		"sub": "admin", "type": TokenTypeAccess, "exp": time.Now().Add(time.Hour).Unix(),
	})

	cases := []struct {
		header string
		want   int
	}{
		{"", http.StatusUnauthorized},
		{"Bearer " + valid, http.StatusOK},
		{"Bearer " + refresh, http.StatusUnauthorized},
		{"Bearer " + expired, http.StatusUnauthorized},
		{"Bearer " + signed(t, "other", jwt.MapClaims{"sub": "admin", "type": TokenTypeAccess}), http.StatusUnauthorized},
		{"Bearer " + noRole, http.StatusForbidden},
	}

	for i, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Fatalf("case %d: expected %d, got %d", i, tc.want, w.Code)
		}
		if tc.want == http.StatusOK && w.Body.String() != "admin" {
			t.Fatalf("expected subject admin, got %q", w.Body.String())
		}
		if w.Header().Get(RequestIDHeader) == "" {
			t.Fatalf("case %d: expected request id header", i)
		}
	}
}

func TestRateLimit(t *testing.T) {
	limiter := NewIPRateLimiter(0, 2, logger.Nop())
	r := gin.New()
	r.GET("/x", limiter.RateLimit(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusNoContent || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}
}
