package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/vi-sinh-loi-be/internal/http/respond"
	"github.com/hongminglow/vi-sinh-loi-be/internal/models/dto"
	"github.com/hongminglow/vi-sinh-loi-be/internal/wallet"
)

func (h *WalletHandler) registerSavings(r chi.Router) {
	r.Get("/savings", h.savings)
	r.Put("/savings", h.setSavingsGoal)
	r.Post("/savings/deposits", h.addToSavings)

	r.Get("/bank-accounts", h.listAccounts)
	r.Post("/bank-accounts", h.linkAccount)
	r.Delete("/bank-accounts/{id}", h.unlinkAccount)
}

func (h *WalletHandler) savings(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	sv, err := h.svc.Savings(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, "get savings", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", sv)
}

func (h *WalletHandler) setSavingsGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.SavingsGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sv, err := h.svc.SetSavingsGoal(r.Context(), userID, wallet.SavingsInput{Name: req.Name, TargetAmount: req.TargetAmount, ImageURL: req.ImageURL})
	if err != nil {
		writeError(w, h.log, "set savings goal", err)
		return
	}
	respond.JSON(w, http.StatusOK, "savings goal updated", sv)
}

func (h *WalletHandler) addToSavings(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.SavingsDepositRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sv, err := h.svc.AddToSavings(r.Context(), userID, req.Amount)
	if err != nil {
		writeError(w, h.log, "add to savings", err)
		return
	}
	respond.JSON(w, http.StatusCreated, "added to savings", sv)
}

func (h *WalletHandler) listAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	accounts, err := h.svc.ListAccounts(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, "list bank accounts", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", accounts)
}

func (h *WalletHandler) linkAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.LinkAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	acc, err := h.svc.LinkAccount(r.Context(), userID, wallet.LinkAccountInput{
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountHolder: req.AccountHolder,
	})
	if err != nil {
		writeError(w, h.log, "link bank account", err)
		return
	}
	respond.JSON(w, http.StatusCreated, "bank account linked", acc)
}

func (h *WalletHandler) unlinkAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.svc.UnlinkAccount(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, "unlink bank account", err)
		return
	}
	respond.JSON(w, http.StatusOK, "bank account removed", nil)
}
