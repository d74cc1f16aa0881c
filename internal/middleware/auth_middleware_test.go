package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"miniMercado/pkg/utils"
)

type stubTokenValidator struct {
	userID string
	err    error
}

func (s *stubTokenValidator) ValidateToken(ctx context.Context, token string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.userID, nil
}

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"user_id": c.Get("user_id")})
}

func doRequest(t *testing.T, validator TokenValidator, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := AuthMiddleware(validator)(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec
}

func TestAuthMiddlewareAcceptsLiveToken(t *testing.T) {
	utils.InitJWT("test-secret", time.Hour)

	token, err := utils.GenerateJWT("42")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	rec := doRequest(t, &stubTokenValidator{userID: "42"}, "Bearer "+token)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestAuthMiddlewareRejectsLoggedOutToken(t *testing.T) {
	utils.InitJWT("test-secret", time.Hour)

	token, err := utils.GenerateJWT("42")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	// The token is signed and unexpired, but logout removed it from the
	// session store. Replaying it must not reach the handler.
	rec := doRequest(t, &stubTokenValidator{err: errors.New("token not found")}, "Bearer "+token)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for a logged-out token, got %d", rec.Code)
	}
}

func TestAuthMiddlewareRejectsUserMismatch(t *testing.T) {
	utils.InitJWT("test-secret", time.Hour)

	token, err := utils.GenerateJWT("42")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	rec := doRequest(t, &stubTokenValidator{userID: "7"}, "Bearer "+token)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for a user mismatch, got %d", rec.Code)
	}
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	rec := doRequest(t, &stubTokenValidator{userID: "42"}, "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without a header, got %d", rec.Code)
	}
}
