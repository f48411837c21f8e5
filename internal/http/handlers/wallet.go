package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hongminglow/vi-sinh-loi-be/internal/http/respond"
	"github.com/hongminglow/vi-sinh-loi-be/internal/models/dto"
	"github.com/hongminglow/vi-sinh-loi-be/internal/wallet"
)

// WalletHandler exposes every wallet operation under /api.
type WalletHandler struct {
	svc *wallet.Service
	log *zap.Logger
	// guard wraps routes that move money out of the wallet.
	guard func(http.Handler) http.Handler
}

// NewWalletHandler builds the handler. guard may be nil when step-up codes are off.
func NewWalletHandler(svc *wallet.Service, guard func(http.Handler) http.Handler, log *zap.Logger) *WalletHandler {
	if guard == nil {
		guard = func(next http.Handler) http.Handler { return next }
	}
	return &WalletHandler{svc: svc, guard: guard, log: log}
}

// Register mounts the routes on an authenticated router.
func (h *WalletHandler) Register(r chi.Router) {
	r.Route("/wallet", func(r chi.Router) {
		r.Post("/", h.createWallet)
		r.Get("/", h.summary)
		r.Delete("/", h.deleteWallet)
		r.Get("/preferences", h.preferences)
		r.Put("/preferences", h.updatePreferences)
		r.Get("/limits", h.limits)
		r.Put("/limits", h.setLimits)
		r.Post("/limits/reset", h.resetLimits)
	})
	h.registerTransactions(r)
	h.registerSavings(r)
	h.registerRecurring(r)
	h.registerLuckyMoney(r)
	h.registerBills(r)
	h.registerLoans(r)
	h.registerRewards(r)
}

func (h *WalletHandler) createWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.CreateWalletRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	st, err := h.svc.CreateWallet(r.Context(), userID, wallet.CreateWalletInput{
		Name:      req.Name,
		Gender:    req.Gender,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		writeError(w, h.log, "create wallet", err)
		return
	}
	respond.JSON(w, http.StatusCreated, "wallet created", st)
}

func (h *WalletHandler) summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	sum, err := h.svc.Summary(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, "wallet summary", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", sum)
}

func (h *WalletHandler) deleteWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteWallet(r.Context(), userID); err != nil {
		writeError(w, h.log, "delete wallet", err)
		return
	}
	respond.JSON(w, http.StatusOK, "wallet deleted", nil)
}

func (h *WalletHandler) preferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	prefs, err := h.svc.Preferences(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, "get preferences", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", prefs)
}

func (h *WalletHandler) updatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.PreferencesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	prefs, err := h.svc.UpdatePreferences(r.Context(), userID, wallet.PreferencesInput{
		Currency:         req.Currency,
		Theme:            req.Theme,
		BiometricEnabled: req.BiometricEnabled,
		BalanceVisible:   req.BalanceVisible,
		DefaultMessages:  req.DefaultMessages,
	})
	if err != nil {
		writeError(w, h.log, "update preferences", err)
		return
	}
	respond.JSON(w, http.StatusOK, "preferences updated", prefs)
}

func (h *WalletHandler) limits(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	limits, err := h.svc.Limits(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, "get limits", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", limits)
}

func (h *WalletHandler) setLimits(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.LimitsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	limits, err := h.svc.SetLimits(r.Context(), userID, wallet.LimitsInput{Daily: req.Daily, PerTransaction: req.PerTransaction})
	if err != nil {
		writeError(w, h.log, "set limits", err)
		return
	}
	respond.JSON(w, http.StatusOK, "limits updated", limits)
}

func (h *WalletHandler) resetLimits(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	limits, err := h.svc.ResetLimits(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, "reset limits", err)
		return
	}
	respond.JSON(w, http.StatusOK, "limits reset", limits)
}
