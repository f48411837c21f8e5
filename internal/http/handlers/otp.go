package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hongminglow/vi-sinh-loi-be/internal/http/respond"
	"github.com/hongminglow/vi-sinh-loi-be/internal/otp"
)

// OTPHandler issues step-up codes. Delivery is simulated so the code is returned directly.
type OTPHandler struct {
	svc *otp.Service
	log *zap.Logger
}

func NewOTPHandler(svc *otp.Service, log *zap.Logger) *OTPHandler {
	return &OTPHandler{svc: svc, log: log}
}

func (h *OTPHandler) Register(r chi.Router) {
	r.Post("/otp", h.issue)
}

func (h *OTPHandler) issue(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	ch, err := h.svc.Issue(r.Context(), userID)
	if err != nil {
		h.log.Error("issue otp", zap.Int64("user_id", userID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to issue code")
		return
	}
	respond.JSON(w, http.StatusCreated, "verification code sent", ch)
}
