package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eduPlatformReco/business/recommend"
	"eduPlatformReco/pkg/utils"

	jsonres "eduPlatformReco/pkg/response"

	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func adminRoute() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.POST("/admin", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("user_id").(string))
	}, AuthMiddleware(testSecret), AdminOnly())
	return e
}

func TestAuthMiddleware_AdminOnly(t *testing.T) {
	admin, _ := utils.GenerateJWT("9", "admin", testSecret, time.Hour)
	viewer, _ := utils.GenerateJWT("9", "viewer", testSecret, time.Hour)
	forged, _ := utils.GenerateJWT("9", "ADMIN", "other", time.Hour)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"admin", "Bearer " + admin, http.StatusOK},
		{"not admin", "Bearer " + viewer, http.StatusForbidden},
		{"wrong secret", "Bearer " + forged, http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
		{"bad scheme", "Basic " + admin, http.StatusUnauthorized},
	}

	e := adminRoute()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	var seen string
	e.GET("/", func(c echo.Context) error {
		seen = recommend.TraceIDFromContext(c.Request().Context())
		return c.NoContent(http.StatusNoContent)
	}, RequestID())

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		got := rec.Header().Get(echo.HeaderXRequestID)
		if got == "" || got != seen {
			t.Errorf("header %q, context %q", got, seen)
		}
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderXRequestID, "abc-123")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if seen != "abc-123" || rec.Header().Get(echo.HeaderXRequestID) != "abc-123" {
			t.Errorf("request id not propagated, context %q", seen)
		}
	})
}

func TestErrorHandler_NotFound(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var body jsonres.ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success || body.Error.Code != "NOT_FOUND" {
		t.Errorf("unexpected body %+v", body)
	}
}
