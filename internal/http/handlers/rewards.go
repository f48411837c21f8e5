package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/vi-sinh-loi-be/internal/http/respond"
)

func (h *WalletHandler) registerRewards(r chi.Router) {
	r.Route("/rewards", func(r chi.Router) {
		r.Get("/tasks", h.rewardTasks)
		r.Get("/vouchers", h.vouchers)
		r.Post("/vouchers/{id}/redeem", h.redeemVoucher)
		r.Get("/my-vouchers", h.myVouchers)
		r.Post("/my-vouchers/{id}/use", h.useVoucher)
	})
}

func (h *WalletHandler) rewardTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tasks, err := h.svc.RewardTasks(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, "reward tasks", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", tasks)
}

func (h *WalletHandler) vouchers(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	cat, err := h.svc.VoucherCatalog(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, "voucher catalog", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", cat)
}

func (h *WalletHandler) redeemVoucher(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	v, err := h.svc.RedeemVoucher(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, "redeem voucher", err)
		return
	}
	respond.JSON(w, http.StatusCreated, "voucher redeemed", v)
}

func (h *WalletHandler) myVouchers(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	list, err := h.svc.MyVouchers(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, "my vouchers", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", list)
}

func (h *WalletHandler) useVoucher(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	v, err := h.svc.UseVoucher(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, "use voucher", err)
		return
	}
	respond.JSON(w, http.StatusOK, "voucher used", v)
}
