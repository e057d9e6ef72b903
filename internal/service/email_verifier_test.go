package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "starblog/internal/errors"
)

func checkerStub(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestEmailVerifier_Verify(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantRejected bool
		wantPlainErr bool
	}{
		{
			name:   "deliverable webmail address",
			status: http.StatusOK,
			body:   `{"data":{"gibberish":false,"webmail":true}}`,
		},
		{
			name:         "gibberish address",
			status:       http.StatusOK,
			body:         `{"data":{"gibberish":true,"webmail":true}}`,
			wantRejected: true,
		},
		{
			name:         "non-webmail address",
			status:       http.StatusOK,
			body:         `{"data":{"gibberish":false,"webmail":false}}`,
			wantRejected: true,
		},
		{
			name:         "checker returns server error",
			status:       http.StatusInternalServerError,
			body:         `{}`,
			wantPlainErr: true,
		},
		{
			name:         "checker returns malformed payload",
			status:       http.StatusOK,
			body:         `not json`,
			wantPlainErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := checkerStub(t, tt.status, tt.body)
			defer server.Close()

			verifier := NewEmailVerifier(server.URL+"/lookup/%s", nil)
			err := verifier.Verify(context.Background(), "someone@example.com")

			switch {
			case tt.wantRejected:
				assert.ErrorIs(t, err, apperrors.ErrEmailRejected)
			case tt.wantPlainErr:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, apperrors.ErrEmailRejected)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestEmailVerifier_UnreachableChecker(t *testing.T) {
	server := checkerStub(t, http.StatusOK, `{}`)
	server.Close()

	verifier := NewEmailVerifier(server.URL+"/lookup/%s", nil)
	err := verifier.Verify(context.Background(), "someone@example.com")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrEmailRejected)
}
