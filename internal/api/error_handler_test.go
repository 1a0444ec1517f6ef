package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bluemoon/resident-portal/internal/core/domain"
	"github.com/bluemoon/resident-portal/internal/core/navigation"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"no route", fmt.Errorf("%w: /x", navigation.ErrNoRoute), http.StatusNotFound},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"forbidden", &domain.CommandError{Status: http.StatusForbidden}, http.StatusForbidden},
		{"unauthenticated", &domain.CommandError{Status: http.StatusUnauthorized}, http.StatusUnauthorized},
		{"echo error", echo.NewHTTPError(http.StatusTooManyRequests, "slow down"), http.StatusTooManyRequests},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error == "" {
				t.Fatalf("expected error message")
			}
			if tc.want == http.StatusInternalServerError && body.Error == "boom" {
				t.Fatalf("internal error details must not leak")
			}
		})
	}
}
