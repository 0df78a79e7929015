package auth

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "civreg/pkg/domain-errors"
	"civreg/pkg/requestcontext"
)

type stubValidator struct {
	claims *OperatorClaims
	err    error
}

func (s stubValidator) ValidateToken(string) (*OperatorClaims, error) {
	return s.claims, s.err
}

func TestRequireOperator(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		header     string
		validator  stubValidator
		wantStatus int
		wantOp     string
	}{
		{
			name:       "valid token passes operator through",
			header:     "Bearer good",
			validator:  stubValidator{claims: &OperatorClaims{Operator: "clerk-07"}},
			wantStatus: http.StatusOK,
			wantOp:     "clerk-07",
		},
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "validator rejects",
			header:     "Bearer bad",
			validator:  stubValidator{err: dErrors.New(dErrors.CodeUnauthorized, "invalid token")},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotOp string
			h := RequireOperator(tt.validator, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotOp = requestcontext.Operator(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/residents", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOp, gotOp)
			if tt.wantStatus == http.StatusUnauthorized {
				var body map[string]string
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Equal(t, "unauthorized", body["error"])
			}
		})
	}
}
