package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/hongminglow/vi-sinh-loi-be/internal/http/respond"
	"github.com/hongminglow/vi-sinh-loi-be/internal/models/dto"
	"github.com/hongminglow/vi-sinh-loi-be/internal/wallet"
)

func (h *WalletHandler) registerLoans(r chi.Router) {
	r.Route("/loans", func(r chi.Router) {
		r.Get("/", h.listLoans)
		r.Get("/mine", h.myLoans)
		r.Get("/{id}/quote", h.quoteLoan)
		r.Post("/{id}/apply", h.applyLoan)
	})
}

func (h *WalletHandler) listLoans(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	cat, err := h.svc.Loans(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, "list loans", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", cat)
}

func (h *WalletHandler) myLoans(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	loans, err := h.svc.MyLoans(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, "my loans", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", loans)
}

func (h *WalletHandler) quoteLoan(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	amount, err := decimal.NewFromString(q.Get("amount"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "amount must be a number")
		return
	}
	term, err := strconv.Atoi(q.Get("term"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "term must be an integer")
		return
	}
	quote, err := wallet.Quote(chi.URLParam(r, "id"), amount, term)
	if err != nil {
		writeError(w, h.log, "quote loan", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", quote)
}

func (h *WalletHandler) applyLoan(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.LoanApplicationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	contract, err := h.svc.ApplyLoan(r.Context(), userID, chi.URLParam(r, "id"), req.Amount, req.Term)
	if err != nil {
		writeError(w, h.log, "apply loan", err)
		return
	}
	respond.JSON(w, http.StatusCreated, "loan disbursed", contract)
}
