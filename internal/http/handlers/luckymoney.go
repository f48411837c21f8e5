package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/vi-sinh-loi-be/internal/http/respond"
	"github.com/hongminglow/vi-sinh-loi-be/internal/models/dto"
	"github.com/hongminglow/vi-sinh-loi-be/internal/wallet"
)

func (h *WalletHandler) registerLuckyMoney(r chi.Router) {
	r.Route("/lucky-money", func(r chi.Router) {
		r.Get("/", h.myPackets)
		r.With(h.guard).Post("/", h.createPacket)
		r.Get("/{shareId}", h.getPacket)
		r.Post("/{shareId}/claim", h.claimPacket)
	})
}

func (h *WalletHandler) createPacket(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.LuckyMoneyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.svc.CreateLuckyMoney(r.Context(), userID, wallet.LuckyMoneyInput{
		Amount:      req.Amount,
		Quantity:    req.Quantity,
		Type:        req.Type,
		Message:     req.Message,
		IsAnonymous: req.IsAnonymous,
	})
	if err != nil {
		writeError(w, h.log, "create lucky money", err)
		return
	}
	respond.JSON(w, http.StatusCreated, "lucky money created", p)
}

func (h *WalletHandler) getPacket(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	p, err := h.svc.GetPacket(r.Context(), userID, chi.URLParam(r, "shareId"))
	if err != nil {
		writeError(w, h.log, "get lucky money", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", p)
}

func (h *WalletHandler) myPackets(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	list, err := h.svc.ListMyPackets(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, "list lucky money", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", list)
}

func (h *WalletHandler) claimPacket(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	res, err := h.svc.ClaimLuckyMoney(r.Context(), userID, chi.URLParam(r, "shareId"))
	if err != nil {
		writeError(w, h.log, "claim lucky money", err)
		return
	}
	respond.JSON(w, http.StatusOK, "lucky money claimed", res)
}
