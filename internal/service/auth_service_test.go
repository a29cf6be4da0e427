package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/atcommodities/erp/internal/auth"
	"github.com/atcommodities/erp/internal/middleware"
)

func TestAuthService_ProtectsRecords(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	records := setupTestServer(t, connect.WithInterceptors(
		middleware.RequireAuth(jwtManager),
		middleware.LoggingInterceptor(),
	))

	authenticator := auth.NewPasswordAuthenticator(records.store).WithCost(bcrypt.MinCost)
	authSvc := NewAuthService(authenticator, jwtManager, slog.New(slog.NewTextHandler(io.Discard, nil)))
	mux := http.NewServeMux()
	mux.Handle(NewAuthServiceHandler(authSvc))
	authServer := httptest.NewServer(mux)
	t.Cleanup(authServer.Close)

	reg := mustCall[RegisterRequest, AuthResponse](t, authServer.URL, RegisterProcedure, &RegisterRequest{
		Email:       "Accounts@ATCommodities.com",
		DisplayName: "Aisha",
		Password:    "ledger-2026",
	})
	if reg.Token == "" || reg.Operator.Email != "accounts@atcommodities.com" {
		t.Fatalf("unexpected register response: %+v", reg)
	}

	t.Run("duplicate register", func(t *testing.T) {
		_, err := call[RegisterRequest, AuthResponse](t, authServer.URL, RegisterProcedure, &RegisterRequest{
			Email: "accounts@atcommodities.com", DisplayName: "Again", Password: "ledger-2026",
		})
		wantCode(t, err, connect.CodeAlreadyExists)
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := call[RegisterRequest, AuthResponse](t, authServer.URL, RegisterProcedure, &RegisterRequest{
			Email: "new@atcommodities.com", DisplayName: "New", Password: "short",
		})
		wantCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := call[LoginRequest, AuthResponse](t, authServer.URL, LoginProcedure, &LoginRequest{
			Email: "accounts@atcommodities.com", Password: "not-it-at-all",
		})
		wantCode(t, err, connect.CodeUnauthenticated)
	})

	login := mustCall[LoginRequest, AuthResponse](t, authServer.URL, LoginProcedure, &LoginRequest{
		Email: "accounts@atcommodities.com", Password: "ledger-2026",
	})

	client := connect.NewClient[ListClientsRequest, ListClientsResponse](
		http.DefaultClient, records.url+ListClientsProcedure, CodecOption(),
	)

	t.Run("no token", func(t *testing.T) {
		_, err := client.CallUnary(context.Background(), connect.NewRequest(&ListClientsRequest{}))
		wantCode(t, err, connect.CodeUnauthenticated)
	})

	t.Run("with token", func(t *testing.T) {
		req := connect.NewRequest(&ListClientsRequest{})
		req.Header().Set("Authorization", "Bearer "+login.Token)
		resp, err := client.CallUnary(context.Background(), req)
		if err != nil {
			t.Fatalf("ListClients failed: %v", err)
		}
		if len(resp.Msg.Clients) != 2 {
			t.Errorf("expected 2 clients, got %d", len(resp.Msg.Clients))
		}
	})
}
