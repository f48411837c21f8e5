package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/vi-sinh-loi-be/internal/http/respond"
	"github.com/hongminglow/vi-sinh-loi-be/internal/models/dto"
	"github.com/hongminglow/vi-sinh-loi-be/internal/wallet"
)

func (h *WalletHandler) registerBills(r chi.Router) {
	r.Route("/bills", func(r chi.Router) {
		r.Get("/providers", h.billProviders)
		r.Get("/lookup", h.lookupBill)
		r.With(h.guard).Post("/pay", h.payBill)
	})
}

func (h *WalletHandler) billProviders(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, "ok", wallet.BillProviders())
}

func (h *WalletHandler) lookupBill(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	bill, err := h.svc.LookupBill(q.Get("providerId"), q.Get("customerId"))
	if err != nil {
		writeError(w, h.log, "lookup bill", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", bill)
}

func (h *WalletHandler) payBill(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.PayBillRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tx, err := h.svc.PayBill(r.Context(), userID, req.ProviderID, req.CustomerID)
	if err != nil {
		writeError(w, h.log, "pay bill", err)
		return
	}
	respond.JSON(w, http.StatusCreated, "bill paid", tx)
}
