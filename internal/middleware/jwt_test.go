package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/movigo/movies-api/internal/utils"
)

const testSecret = "middleware-test-secret"

func doJWT(t *testing.T, secret, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/movies", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := JWTAuth(secret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec, c
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, "user-1", "rey@example.com", "admin", 60)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	rec, c := doJWT(t, testSecret, "Bearer "+tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if c.Get("user_id") != "user-1" || c.Get("email") != "rey@example.com" || c.Get("role") != "admin" {
		t.Fatalf("claims not injected: %v %v %v", c.Get("user_id"), c.Get("email"), c.Get("role"))
	}
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _ := doJWT(t, testSecret, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthWrongScheme(t *testing.T) {
	rec, _ := doJWT(t, testSecret, "Basic dXNlcjpwYXNz")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("another-secret", "user-1", "rey@example.com", "user", 60)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec, _ := doJWT(t, testSecret, "Bearer "+tok.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, "user-1", "rey@example.com", "user", -5)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec, _ := doJWT(t, testSecret, "Bearer "+tok.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthGarbageToken(t *testing.T) {
	rec, _ := doJWT(t, testSecret, "Bearer not.a.jwt")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
