package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func doRole(t *testing.T, role interface{}, allowed ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}

	handler := RequireRole(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec
}

func TestRequireRole(t *testing.T) {
	if rec := doRole(t, "admin", "admin"); rec.Code != http.StatusOK {
		t.Fatalf("admin on admin route: expected 200, got %d", rec.Code)
	}
	if rec := doRole(t, "user", "user", "admin"); rec.Code != http.StatusOK {
		t.Fatalf("user on shared route: expected 200, got %d", rec.Code)
	}
	if rec := doRole(t, "user", "admin"); rec.Code != http.StatusForbidden {
		t.Fatalf("user on admin route: expected 403, got %d", rec.Code)
	}
}

func TestRequireRoleMissingClaim(t *testing.T) {
	if rec := doRole(t, nil, "admin"); rec.Code != http.StatusForbidden {
		t.Fatalf("missing role: expected 403, got %d", rec.Code)
	}
	// A non-string claim is treated the same as a missing one.
	if rec := doRole(t, 42, "admin"); rec.Code != http.StatusForbidden {
		t.Fatalf("non-string role: expected 403, got %d", rec.Code)
	}
}
