package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/vi-sinh-loi-be/internal/auth"
	"github.com/hongminglow/vi-sinh-loi-be/internal/http/respond"
	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
	"github.com/hongminglow/vi-sinh-loi-be/internal/models/dto"
	"github.com/hongminglow/vi-sinh-loi-be/internal/storage"
	"github.com/hongminglow/vi-sinh-loi-be/internal/wallet"
)

// WalletFinder reports whether a user already opened a wallet.
type WalletFinder interface {
	Wallet(ctx context.Context, userID int64) (models.WalletState, error)
}

// AuthHandler owns the register/login endpoints.
type AuthHandler struct {
	store   storage.UserStore
	wallets WalletFinder
	tokens  *auth.TokenManager
	ttlSecs int64
	log     *zap.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store storage.UserStore, wallets WalletFinder, tokens *auth.TokenManager, ttlSecs int64, log *zap.Logger) *AuthHandler {
	return &AuthHandler{store: store, wallets: wallets, tokens: tokens, ttlSecs: ttlSecs, log: log}
}

// Register attaches auth routes to the router.
func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	phone := normalizePhone(req)
	if err := validateCredentials(req.Username, req.Email, phone, req.Password); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        phone,
		PasswordHash: passwordHash,
	}
	created, err := h.store.CreateUser(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			respond.Error(w, http.StatusConflict, "user already exists")
		default:
			h.log.Error("create user", zap.String("username", user.Username), zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	respond.JSON(w, http.StatusOK, "User created successfully", created)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" || strings.TrimSpace(req.Password) == "" {
		respond.Error(w, http.StatusBadRequest, "identifier and password are required")
		return
	}
	if strings.Contains(identifier, "@") {
		identifier = strings.ToLower(identifier)
	}
	user, err := h.store.FindByUsernameOrEmail(r.Context(), identifier)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.log.Error("login: fetch user", zap.String("identifier", identifier), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := h.tokens.Generate(user)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	hasWallet := false
	if _, err := h.wallets.Wallet(r.Context(), user.ID); err == nil {
		hasWallet = true
	} else if !errors.Is(err, wallet.ErrNoWallet) {
		h.log.Warn("login: wallet lookup", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	respond.JSON(w, http.StatusOK, "login successful", dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: h.ttlSecs,
		User:      user,
		HasWallet: hasWallet,
	})
}

func normalizePhone(req dto.RegisterRequest) string {
	if trimmed := strings.TrimSpace(req.Phone); trimmed != "" {
		return trimmed
	}
	return strings.TrimSpace(req.PhoneNumber)
}

func validateCredentials(username, email, phone, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(phone) == "" {
		return errors.New("username, email, and phone are required")
	}
	if !strings.Contains(email, "@") {
		return errors.New("email is invalid")
	}
	if len(strings.TrimSpace(password)) < 8 || !utf8.ValidString(password) {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
