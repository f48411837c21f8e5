package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hongminglow/vi-sinh-loi-be/internal/auth"
	"github.com/hongminglow/vi-sinh-loi-be/internal/http/respond"
	"github.com/hongminglow/vi-sinh-loi-be/internal/middleware"
	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
	"github.com/hongminglow/vi-sinh-loi-be/internal/storage/postgres"
	"github.com/hongminglow/vi-sinh-loi-be/internal/wallet"
)

// TestPostgresIntegration exercises register, wallet creation and login against a live database.
func TestPostgresIntegration(t *testing.T) {
	if os.Getenv("RUN_DB_INTEGRATION") != "true" {
		t.Skip("set RUN_DB_INTEGRATION=true to run this integration test")
	}

	loadDotEnv()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	store, err := postgres.NewStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	defer store.Close()

	secret := mustGetEnv(t, "JWT_SECRET")
	issuer := mustGetEnv(t, "JWT_ISSUER")
	ttl := mustGetTTL(t)
	tokens := auth.NewTokenManager(secret, issuer, ttl)
	log := zap.NewNop()

	wallets := wallet.NewService(store, wallet.Settings{
		WelcomeBalance: decimal.NewFromInt(500_000),
		WelcomeCoins:   100,
		ProfitRate:     decimal.RequireFromString("0.0001"),
		Limits: models.TransactionLimits{
			Daily:          decimal.NewFromInt(50_000_000),
			PerTransaction: decimal.NewFromInt(20_000_000),
		},
	}, wallet.WithLogger(log))

	r := chi.NewRouter()
	NewAuthHandler(store, wallets, tokens, int64(ttl.Seconds()), log).Register(r)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens))
		r.Route("/api", func(r chi.Router) {
			NewWalletHandler(wallets, nil, log).Register(r)
		})
	})

	ts := httptest.NewServer(r)
	defer ts.Close()

	username := fmt.Sprintf("apitest_%d", time.Now().UnixNano())
	email := fmt.Sprintf("%s@example.com", username)
	phone := fmt.Sprintf("+1555%07d", time.Now().UnixNano()%1_000_0000)
	password := fmt.Sprintf("Pass!%d", time.Now().UnixNano())

	registerBody := map[string]string{
		"username": username,
		"email":    email,
		"phone":    phone,
		"password": password,
	}
	user := requestRegister(t, ts.URL, registerBody)

	if user.Username != username || user.Email != email || user.Phone != phone {
		t.Fatalf("register mismatch: got %+v", user)
	}

	loggedIn := requestLogin(t, ts.URL, username, password)
	if loggedIn.User.ID != user.ID {
		t.Fatalf("login returned wrong user id: want %d got %d", user.ID, loggedIn.User.ID)
	}
	if strings.TrimSpace(loggedIn.Token) == "" {
		t.Fatal("login response missing token")
	}
	if loggedIn.HasWallet {
		t.Fatal("fresh user should not have a wallet")
	}

	status := doJSON(t, http.MethodPost, ts.URL+"/api/wallet", loggedIn.Token, map[string]string{"name": "api tester"}, nil)
	if status != http.StatusCreated {
		t.Fatalf("create wallet status = %d", status)
	}
	defer func() {
		_ = store.DeleteWallet(ctx, user.ID)
	}()

	var summary wallet.Summary
	if status := doJSON(t, http.MethodGet, ts.URL+"/api/wallet", loggedIn.Token, nil, &summary); status != http.StatusOK {
		t.Fatalf("summary status = %d", status)
	}
	if !summary.Balance.Equal(decimal.NewFromInt(500_000)) {
		t.Fatalf("welcome balance = %s", summary.Balance)
	}

	if again := requestLogin(t, ts.URL, email, password); !again.HasWallet {
		t.Fatal("login by email should report the new wallet")
	}
	if upper := requestLogin(t, ts.URL, strings.ToUpper(username), password); upper.User.ID != user.ID {
		t.Fatalf("login ignoring case returned user %d", upper.User.ID)
	}

	t.Logf("created user %s (id=%d) with wallet %s", username, user.ID, summary.Profile.WalletID)
}

type loginResponseBody struct {
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	HasWallet bool        `json:"hasWallet"`
}

// doJSON sends body and decodes the envelope data into out when out is non-nil.
func doJSON(t *testing.T, method, url, token string, body, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		env := respond.Envelope{Data: out}
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func requestRegister(t *testing.T, baseURL string, payload map[string]string) models.User {
	t.Helper()
	var out models.User
	if status := doJSON(t, http.MethodPost, baseURL+"/register", "", payload, &out); status != http.StatusOK {
		t.Fatalf("register status = %d", status)
	}
	return out
}

func requestLogin(t *testing.T, baseURL, identifier, password string) loginResponseBody {
	t.Helper()
	var out loginResponseBody
	status := doJSON(t, http.MethodPost, baseURL+"/login", "", map[string]string{
		"identifier": identifier,
		"password":   password,
	}, &out)
	if status != http.StatusOK {
		t.Fatalf("login status = %d", status)
	}
	return out
}

func mustGetEnv(t *testing.T, key string) string {
	t.Helper()
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		t.Fatalf("%s is required", key)
	}
	return val
}

func mustGetTTL(t *testing.T) time.Duration {
	t.Helper()
	minutesStr := mustGetEnv(t, "JWT_TTL_MINUTES")
	minutes, err := strconv.Atoi(minutesStr)
	if err != nil || minutes <= 0 {
		t.Fatalf("invalid JWT_TTL_MINUTES value: %q", minutesStr)
	}
	return time.Duration(minutes) * time.Minute
}

func loadDotEnv() {
	paths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
		"../../../../.env",
	}
	for _, path := range paths {
		_ = godotenv.Overload(path)
	}
}
