package acl_test

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/content-render-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen11/content-render-service/internal/domain"
)

func problemResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/problem+json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestTranslateHTTPError_SentinelMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "404 maps to not found", status: http.StatusNotFound, wantErr: domain.ErrNotFound},
		{name: "400 maps to validation", status: http.StatusBadRequest, wantErr: domain.ErrValidation},
		{name: "422 maps to validation", status: http.StatusUnprocessableEntity, wantErr: domain.ErrValidation},
		{name: "409 maps to conflict", status: http.StatusConflict, wantErr: domain.ErrConflict},
		{name: "401 maps to forbidden", status: http.StatusUnauthorized, wantErr: domain.ErrForbidden},
		{name: "403 maps to forbidden", status: http.StatusForbidden, wantErr: domain.ErrForbidden},
		{name: "500 maps to unavailable", status: http.StatusInternalServerError, wantErr: domain.ErrUnavailable},
		{name: "503 maps to unavailable", status: http.StatusServiceUnavailable, wantErr: domain.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := acl.TranslateHTTPError(problemResponse(tt.status, `{}`))

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTranslateHTTPError_UsesProblemDetail(t *testing.T) {
	t.Parallel()

	resp := problemResponse(http.StatusNotFound, `{"detail": "document has been unpublished"}`)

	err := acl.TranslateHTTPError(resp)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "document has been unpublished")
}

func TestTranslateHTTPError_FieldErrors(t *testing.T) {
	t.Parallel()

	body := `{"detail": "validation failed", "errors": [
		{"location": "body.route", "message": "must start with /"}
	]}`

	err := acl.TranslateHTTPError(problemResponse(http.StatusUnprocessableEntity, body))

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must start with /", verr.Fields["route"])
}

func TestTranslateHTTPError_NonProblemBody(t *testing.T) {
	t.Parallel()

	resp := &http.Response{
		StatusCode: http.StatusInternalServerError,
		Header:     http.Header{"Content-Type": []string{"text/html"}},
		Body:       io.NopCloser(strings.NewReader("<html>gateway error</html>")),
	}

	err := acl.TranslateHTTPError(resp)

	require.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Contains(t, err.Error(), http.StatusText(http.StatusInternalServerError))
}

func TestTranslateHTTPError_UnexpectedStatus(t *testing.T) {
	t.Parallel()

	err := acl.TranslateHTTPError(problemResponse(http.StatusTeapot, `{}`))

	require.Error(t, err)
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("unexpected status should not map to a sentinel, got %v", err)
	}
}
