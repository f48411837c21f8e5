package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/vi-sinh-loi-be/internal/http/respond"
	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
	"github.com/hongminglow/vi-sinh-loi-be/internal/models/dto"
	"github.com/hongminglow/vi-sinh-loi-be/internal/wallet"
)

func (h *WalletHandler) registerTransactions(r chi.Router) {
	r.With(h.guard).Post("/transfers/wallet", h.sendToWallet)
	r.With(h.guard).Post("/transfers/bank", h.bankTransfer)
	r.With(h.guard).Post("/withdrawals", h.withdraw)
	r.Post("/topups", h.topUp)
	r.Get("/transactions", h.listTransactions)
	r.Get("/transactions/{id}", h.getTransaction)
	r.Get("/recipients/frequent", h.frequentRecipients)
}

func (h *WalletHandler) sendToWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.WalletTransferRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tx, err := h.svc.SendToWallet(r.Context(), userID, wallet.TransferInput{Recipient: req.RecipientID, Amount: req.Amount, Message: req.Message})
	if err != nil {
		writeError(w, h.log, "send to wallet", err)
		return
	}
	respond.JSON(w, http.StatusCreated, "transfer completed", tx)
}

func (h *WalletHandler) bankTransfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.BankTransferRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tx, err := h.svc.BankTransfer(r.Context(), userID, wallet.TransferInput{Recipient: req.BankInfo, Amount: req.Amount, Message: req.Message})
	if err != nil {
		writeError(w, h.log, "bank transfer", err)
		return
	}
	respond.JSON(w, http.StatusCreated, "transfer completed", tx)
}

func (h *WalletHandler) withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.BankTransferRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tx, err := h.svc.Withdraw(r.Context(), userID, wallet.TransferInput{Recipient: req.BankInfo, Amount: req.Amount, Message: req.Message})
	if err != nil {
		writeError(w, h.log, "withdraw", err)
		return
	}
	respond.JSON(w, http.StatusCreated, "withdrawal completed", tx)
}

func (h *WalletHandler) topUp(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.TopUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tx, err := h.svc.TopUp(r.Context(), userID, req.Amount, req.Source)
	if err != nil {
		writeError(w, h.log, "top up", err)
		return
	}
	respond.JSON(w, http.StatusCreated, "top up completed", tx)
}

func (h *WalletHandler) listTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	txs, err := h.svc.ListTransactions(r.Context(), userID, wallet.TransactionFilter{
		Type:   models.TransactionType(r.URL.Query().Get("type")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, h.log, "list transactions", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", txs)
}

func (h *WalletHandler) getTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tx, err := h.svc.GetTransaction(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, "get transaction", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", tx)
}

func (h *WalletHandler) frequentRecipients(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	out, err := h.svc.FrequentRecipients(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, "frequent recipients", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", out)
}
