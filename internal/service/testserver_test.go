package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/groups"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/storage/memory"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

type testClients struct {
	auth  apiconnect.AuthServiceClient
	group apiconnect.GroupServiceClient
	split apiconnect.SplitServiceClient
}

// setupTestServer mounts every service over an in-memory store, with the
// same interceptors as the server binary.
func setupTestServer(t *testing.T) testClients {
	t.Helper()

	store := memory.New()
	jwtManager := auth.NewJWTManager("test-secret-that-is-long-enough-32", time.Hour)
	engine := groups.New(store)

	authSvc := NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store, slog.Default())
	groupSvc := NewGroupService(engine)
	splitSvc := NewSplitService()

	optional := connect.WithInterceptors(middleware.OptionalAuth(jwtManager), middleware.LoggingInterceptor())
	required := connect.WithInterceptors(middleware.OptionalAuth(jwtManager), middleware.LoggingInterceptor(), middleware.RequireAuth(jwtManager))

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(authSvc, optional))
	mux.Handle(apiconnect.NewGroupServiceHandler(groupSvc, required))
	mux.Handle(apiconnect.NewSplitServiceHandler(splitSvc, required))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return testClients{
		auth:  apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		group: apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL),
		split: apiconnect.NewSplitServiceClient(http.DefaultClient, server.URL),
	}
}

// authed wraps msg in a request carrying the bearer token.
func authed[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

type testUser struct {
	ID    string
	Token string
}

func register(t *testing.T, c testClients, email, name string) testUser {
	t.Helper()
	resp, err := c.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       email,
		DisplayName: name,
		Password:    "correct-horse",
	}))
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", email, err)
	}
	return testUser{ID: resp.Msg.User.ID, Token: resp.Msg.Token}
}

func wantCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got nil error", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("code = %v, want %v (err: %v)", got, want, err)
	}
}
