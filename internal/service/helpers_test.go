package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/splitpay/internal/auth"
	"github.com/mmynk/splitpay/internal/ledger"
	"github.com/mmynk/splitpay/internal/middleware"
	"github.com/mmynk/splitpay/internal/storage/sqlite"
)

// testAuthInterceptor trusts an X-Test-User header instead of a JWT so
// tests can switch callers per request. The real JWT path is covered in
// auth_service_test.go.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if userID := req.Header().Get("X-Test-User"); userID != "" {
				ctx = middleware.WithUserID(ctx, userID)
			}
			return next(ctx, req)
		}
	}
}

// asUser marks the request as coming from the given test user.
func asUser[T any](req *connect.Request[T], userID string) *connect.Request[T] {
	req.Header().Set("X-Test-User", userID)
	return req
}

// setupTestServer starts a server with the group and ledger services
// behind the test auth interceptor.
func setupTestServer(t *testing.T) (*GroupServiceClient, *LedgerServiceClient) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	authOpt := connect.WithInterceptors(testAuthInterceptor())

	groupSvc := NewGroupService(ledger.NewRegistry(store))
	groupPath, groupHandler := NewGroupServiceHandler(groupSvc, authOpt)

	ledgerSvc := NewLedgerService(
		ledger.NewLedger(store, ledger.SystemClock{}),
		ledger.NewSettler(store),
		ledger.NewQuery(store),
	)
	ledgerPath, ledgerHandler := NewLedgerServiceHandler(ledgerSvc, authOpt)

	mux := http.NewServeMux()
	mux.Handle(groupPath, groupHandler)
	mux.Handle(ledgerPath, ledgerHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	groupClient := NewGroupServiceClient(http.DefaultClient, server.URL)
	ledgerClient := NewLedgerServiceClient(http.DefaultClient, server.URL)
	return groupClient, ledgerClient
}

// setupAuthServer starts a server with the auth service open and the
// group service behind real JWT validation.
func setupAuthServer(t *testing.T, jwtManager *auth.JWTManager) (*AuthServiceClient, *GroupServiceClient) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	authSvc := NewAuthService(
		auth.NewPasswordAuthenticator(auth.NewUserStore(store)),
		jwtManager,
		slog.Default(),
	)
	authPath, authHandler := NewAuthServiceHandler(authSvc)

	groupSvc := NewGroupService(ledger.NewRegistry(store))
	groupPath, groupHandler := NewGroupServiceHandler(groupSvc,
		connect.WithInterceptors(middleware.RequireAuth(jwtManager)))

	mux := http.NewServeMux()
	mux.Handle(authPath, authHandler)
	mux.Handle(groupPath, groupHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return NewAuthServiceClient(http.DefaultClient, server.URL),
		NewGroupServiceClient(http.DefaultClient, server.URL)
}
