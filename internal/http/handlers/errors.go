package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/vi-sinh-loi-be/internal/http/respond"
	"github.com/hongminglow/vi-sinh-loi-be/internal/wallet"
)

// statusFor maps wallet errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, wallet.ErrInvalidInput), errors.Is(err, wallet.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, wallet.ErrNoWallet), errors.Is(err, wallet.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, wallet.ErrWalletExists),
		errors.Is(err, wallet.ErrPacketExhausted),
		errors.Is(err, wallet.ErrAlreadyClaimed),
		errors.Is(err, wallet.ErrOwnPacket),
		errors.Is(err, wallet.ErrVoucherUnavailable):
		return http.StatusConflict
	case errors.Is(err, wallet.ErrInsufficientBalance),
		errors.Is(err, wallet.ErrPerTransactionLimit),
		errors.Is(err, wallet.ErrDailyLimit),
		errors.Is(err, wallet.ErrNoSavingsGoal),
		errors.Is(err, wallet.ErrNotEligible),
		errors.Is(err, wallet.ErrInsufficientCoins):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(op, zap.Error(err))
		respond.Error(w, status, "internal error")
		return
	}
	respond.Error(w, status, err.Error())
}
