package middleware

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/vi-sinh-loi-be/internal/http/respond"
	"github.com/hongminglow/vi-sinh-loi-be/internal/otp"
)

const (
	HeaderOTPChallenge = "X-OTP-Challenge"
	HeaderOTPCode      = "X-OTP-Code"
)

// OTPVerifier consumes a one-time code issued to a user.
type OTPVerifier interface {
	Verify(ctx context.Context, userID int64, challengeID, code string) error
}

// RequireOTP guards money-moving routes with a single-use code when enabled.
// It must run after Authenticate.
func RequireOTP(enabled bool, verifier OTPVerifier, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserID(r.Context())
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "unauthenticated")
				return
			}
			err := verifier.Verify(r.Context(), userID, r.Header.Get(HeaderOTPChallenge), r.Header.Get(HeaderOTPCode))
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, otp.ErrMissing), errors.Is(err, otp.ErrInvalidCode):
				respond.Error(w, http.StatusForbidden, err.Error())
			default:
				log.Error("verify otp", zap.Int64("user_id", userID), zap.Error(err))
				respond.Error(w, http.StatusInternalServerError, "failed to verify code")
			}
		})
	}
}
