package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rogerio-castellano/smart-inventory/internal/auth"
	api "github.com/rogerio-castellano/smart-inventory/internal/http"
	handler "github.com/rogerio-castellano/smart-inventory/internal/http/handlers"
	"github.com/rogerio-castellano/smart-inventory/internal/inventory"
	"github.com/rogerio-castellano/smart-inventory/internal/repo"
)

var (
	token        string
	managerToken string
	viewerToken  string

	itemStore   *repo.InMemoryItemStore
	authService *auth.AuthService
	server      *handler.Server
)

func init() {
	setupTestRepos()
	r := newRouter()

	var err error
	token, err = generateToken(r, "admin@company.com", "admin123")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
	managerToken, err = generateToken(r, "manager@company.com", "manager123")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
	viewerToken, err = generateToken(r, "viewer@company.com", "viewer123")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos() {
	itemStore = repo.NewInMemoryItemStore()

	users, err := auth.DemoUsers(bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("error hashing demo users: %v", err))
	}
	authService = auth.NewAuthService(
		repo.NewInMemoryUserRepository(users...),
		auth.NewTokenIssuer("handlers-test-secret", time.Hour),
	)

	server = handler.NewServer(inventory.New(itemStore), authService, zerolog.Nop())
}

func newRouter() http.Handler {
	return api.NewRouter(server, authService, api.RouterOptions{AuthEnabled: true, Logger: zerolog.Nop()})
}

func clearAllItems() {
	itemStore.Clear()
}

func generateToken(r http.Handler, email, password string) (string, error) {
	payload := handler.LoginRequest{Email: email, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func doRequest(r http.Handler, method, path, bearer string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createItem(r http.Handler, item handler.CreateItemRequest) *httptest.ResponseRecorder {
	return doRequest(r, http.MethodPost, "/api/inventory", token, item)
}

func updateItem(r http.Handler, id string, patch handler.UpdateItemRequest) *httptest.ResponseRecorder {
	return doRequest(r, http.MethodPut, "/api/inventory/"+id, token, patch)
}

func mustCreateItem(r http.Handler, item handler.CreateItemRequest) (handler.ItemResponse, error) {
	w := createItem(r, item)
	if w.Code != http.StatusCreated {
		return handler.ItemResponse{}, fmt.Errorf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	var created handler.ItemResponse
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		return handler.ItemResponse{}, fmt.Errorf("error decoding create response: %v", err)
	}
	return created, nil
}
