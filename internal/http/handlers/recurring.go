package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/vi-sinh-loi-be/internal/http/respond"
	"github.com/hongminglow/vi-sinh-loi-be/internal/models/dto"
	"github.com/hongminglow/vi-sinh-loi-be/internal/wallet"
)

func (h *WalletHandler) registerRecurring(r chi.Router) {
	r.Route("/recurring", func(r chi.Router) {
		r.Get("/", h.listRecurring)
		r.Post("/", h.createRecurring)
		r.Delete("/{id}", h.deleteRecurring)
		r.Post("/{id}/toggle", h.toggleRecurring)
	})
}

func (h *WalletHandler) listRecurring(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	list, err := h.svc.ListRecurring(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, "list recurring", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", list)
}

func (h *WalletHandler) createRecurring(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.RecurringRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rec, err := h.svc.CreateRecurring(r.Context(), userID, wallet.RecurringInput{
		TemplateTransactionID: req.TemplateTransactionID,
		Frequency:             req.Frequency,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
	})
	if err != nil {
		writeError(w, h.log, "create recurring", err)
		return
	}
	respond.JSON(w, http.StatusCreated, "recurring transaction scheduled", rec)
}

func (h *WalletHandler) deleteRecurring(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteRecurring(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, "delete recurring", err)
		return
	}
	respond.JSON(w, http.StatusOK, "recurring transaction deleted", nil)
}

func (h *WalletHandler) toggleRecurring(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	rec, err := h.svc.ToggleRecurring(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, "toggle recurring", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", rec)
}
