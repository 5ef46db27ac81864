package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rogerio-castellano/smart-inventory/internal/auth"
	"github.com/rogerio-castellano/smart-inventory/internal/config"
	api "github.com/rogerio-castellano/smart-inventory/internal/http"
	handler "github.com/rogerio-castellano/smart-inventory/internal/http/handlers"
	"github.com/rogerio-castellano/smart-inventory/internal/inventory"
	"github.com/rogerio-castellano/smart-inventory/internal/repo"
)

// backend describes one persistent storage configuration the suite runs on.
type backend struct {
	name string
	cfg  func(t *testing.T) config.StorageConfig
}

func backends() []backend {
	list := []backend{
		{"file", func(t *testing.T) config.StorageConfig {
			return config.StorageConfig{
				Driver: "file",
				File:   config.FileStorageConfig{Path: filepath.Join(t.TempDir(), "inventory.json")},
			}
		}},
		{"sqlite", func(t *testing.T) config.StorageConfig {
			return config.StorageConfig{
				Driver: "sqlite",
				SQL:    config.SQLStorageConfig{DSN: filepath.Join(t.TempDir(), "inventory.db")},
			}
		}},
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		list = append(list, backend{"postgres", func(t *testing.T) config.StorageConfig {
			cfg := config.StorageConfig{Driver: "postgres", SQL: config.SQLStorageConfig{DSN: dsn}}
			clearStore(t, cfg)
			return cfg
		}})
	}
	return list
}

// clearStore empties a shared database so each test starts from nothing.
func clearStore(t *testing.T, cfg config.StorageConfig) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, closeStore, err := repo.Open(ctx, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("could not open %s store: %v", cfg.Driver, err)
	}
	defer closeStore()
	if err := store.Save(ctx, nil); err != nil {
		t.Fatalf("could not clear %s store: %v", cfg.Driver, err)
	}
}

type env struct {
	router http.Handler
	store  repo.ItemStore
	token  string
}

// newEnv opens the store described by cfg and serves it through the full
// router. Calling it twice with the same cfg simulates a restart.
func newEnv(t *testing.T, cfg config.StorageConfig) *env {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, closeStore, err := repo.Open(ctx, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("could not open %s store: %v", cfg.Driver, err)
	}
	t.Cleanup(func() { _ = closeStore() })

	users, err := auth.DemoUsers(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("error hashing demo users: %v", err)
	}
	authSvc := auth.NewAuthService(
		repo.NewInMemoryUserRepository(users...),
		auth.NewTokenIssuer("integrated-secret", time.Hour),
	)
	srv := handler.NewServer(inventory.New(store), authSvc, zerolog.Nop())
	r := api.NewRouter(srv, authSvc, api.RouterOptions{AuthEnabled: true, Logger: zerolog.Nop()})

	token, err := generateToken(r, "admin@company.com", "admin123")
	if err != nil {
		t.Fatalf("error generating token: %v", err)
	}
	return &env{router: r, store: store, token: token}
}

func generateToken(r http.Handler, email, password string) (string, error) {
	body, _ := json.Marshal(handler.LoginRequest{Email: email, Password: password})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func (e *env) do(method, path string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Authorization", "Bearer "+e.token)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	return v
}

func intPtr(v int) *int { return &v }
