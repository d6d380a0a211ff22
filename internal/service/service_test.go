package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toma1133/travel-app-sub001/internal/auth"
	"github.com/toma1133/travel-app-sub001/internal/cache"
	"github.com/toma1133/travel-app-sub001/internal/metrics"
	"github.com/toma1133/travel-app-sub001/internal/middleware"
	"github.com/toma1133/travel-app-sub001/internal/storage/sqlite"
	"github.com/toma1133/travel-app-sub001/pkg/api"
)

// testEnv is a running server backed by a temp SQLite database and miniredis.
type testEnv struct {
	url   string
	auth  *api.AuthServiceClient
	store *sqlite.SQLiteStore
}

// testUser is a registered account with authenticated clients.
type testUser struct {
	id       string
	trips    *api.TripServiceClient
	expenses *api.ExpenseServiceClient
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	m := metrics.New(prometheus.NewRegistry())
	loader := cache.NewLoader(cache.NewRedis(rdb, time.Minute), m)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	logging := middleware.LoggingInterceptor(m)
	public := []connect.HandlerOption{connect.WithInterceptors(logging)}
	authenticated := []connect.HandlerOption{connect.WithInterceptors(logging, middleware.RequireAuth(jwtManager))}

	mux := http.NewServeMux()
	NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store, slog.Default()).Mount(mux, public, authenticated)
	NewTripService(store, loader).Mount(mux, authenticated...)
	NewExpenseService(store, loader, m, decimal.RequireFromString("0.1")).Mount(mux, authenticated...)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		rdb.Close()
		store.Close()
	})

	return &testEnv{
		url:   server.URL,
		auth:  api.NewAuthServiceClient(http.DefaultClient, server.URL),
		store: store,
	}
}

func (e *testEnv) register(t *testing.T, email, name string) *testUser {
	t.Helper()
	resp, err := e.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       email,
		DisplayName: name,
		Password:    "password123",
	}))
	require.NoError(t, err, "Register failed")

	bearer := api.WithBearerToken(resp.Msg.Token)
	return &testUser{
		id:       resp.Msg.User.ID,
		trips:    api.NewTripServiceClient(http.DefaultClient, e.url, bearer),
		expenses: api.NewExpenseServiceClient(http.DefaultClient, e.url, bearer),
	}
}

func requireCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, connect.CodeOf(err), "unexpected error: %v", err)
}

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (u *testUser) createTrip(t *testing.T, home, local, rate string) *api.CreateTripResponse {
	t.Helper()
	resp, err := u.trips.CreateTrip(context.Background(), connect.NewRequest(&api.CreateTripRequest{
		Name:          "Kyoto",
		HomeCurrency:  home,
		LocalCurrency: local,
		ExchangeRate:  amt(rate),
	}))
	require.NoError(t, err, "CreateTrip failed")
	return resp.Msg
}

func (u *testUser) addMember(t *testing.T, tripID, name, role string) *api.Member {
	t.Helper()
	resp, err := u.trips.AddMember(context.Background(), connect.NewRequest(&api.AddMemberRequest{
		TripID:      tripID,
		DisplayName: name,
		Role:        role,
	}))
	require.NoError(t, err, "AddMember failed")
	return resp.Msg.Member
}
