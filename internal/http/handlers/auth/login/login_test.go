package login_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/reminder-planner/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/reminder-planner/internal/http/response"
	services "github.com/magabrotheeeer/reminder-planner/internal/services/auth"
)

type serviceStub struct {
	loginFn func(ctx context.Context, username, password string) (*services.TokenPair, error)
}

func (s *serviceStub) Login(ctx context.Context, username, password string) (*services.TokenPair, error) {
	return s.loginFn(ctx, username, password)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		service    *serviceStub
		wantStatus int
	}{
		{
			name: "successful login",
			body: `{"username":"alice","password":"password123"}`,
			service: &serviceStub{
				loginFn: func(context.Context, string, string) (*services.TokenPair, error) {
					return &services.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
				},
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing password",
			body:       `{"username":"alice"}`,
			service:    &serviceStub{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "invalid credentials",
			body: `{"username":"alice","password":"wrong"}`,
			service: &serviceStub{
				loginFn: func(context.Context, string, string) (*services.TokenPair, error) {
					return nil, services.ErrInvalidCredentials
				},
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "disabled account",
			body: `{"username":"alice","password":"password123"}`,
			service: &serviceStub{
				loginFn: func(context.Context, string, string) (*services.TokenPair, error) {
					return nil, services.ErrUserDisabled
				},
			},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := login.New(discardLogger(), tt.service)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				var resp response.Response
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				data, ok := resp.Data.(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "access", data["access_token"])
				assert.Equal(t, "refresh", data["refresh_token"])
				assert.Equal(t, "alice", data["username"])
			}
		})
	}
}
