// Package otp issues and verifies short-lived one-time codes used to step up
// money-moving requests. Delivery is simulated: the code is logged and returned.
package otp

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	codeMin = 100000
	codeMax = 999999
)

var (
	ErrInvalidCode = errors.New("invalid or expired verification code")
	ErrMissing     = errors.New("verification code required")
)

// Record is what a Store keeps per challenge.
type Record struct {
	UserID int64  `json:"userId"`
	Code   string `json:"code"`
}

// Store keeps pending challenges. Take must return and delete in one step so a
// challenge can only be used once; it returns (nil, nil) for unknown or expired ids.
type Store interface {
	Put(ctx context.Context, challengeID string, rec Record, ttl time.Duration) error
	Take(ctx context.Context, challengeID string) (*Record, error)
}

// Challenge is returned to the caller after issuing a code.
type Challenge struct {
	ID        string    `json:"challengeId"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Service struct {
	store Store
	ttl   time.Duration
	log   *zap.Logger
	now   func() time.Time
	randN func(n int) int
}

func NewService(store Store, ttl time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, ttl: ttl, log: log, now: time.Now, randN: rand.IntN}
}

// Issue creates a 6-digit code bound to userID.
func (s *Service) Issue(ctx context.Context, userID int64) (Challenge, error) {
	ch := Challenge{
		ID:        uuid.NewString(),
		Code:      strconv.Itoa(codeMin + s.randN(codeMax-codeMin+1)),
		ExpiresAt: s.now().UTC().Add(s.ttl),
	}
	if err := s.store.Put(ctx, ch.ID, Record{UserID: userID, Code: ch.Code}, s.ttl); err != nil {
		return Challenge{}, fmt.Errorf("store otp: %w", err)
	}
	s.log.Info("otp issued", zap.Int64("user_id", userID), zap.String("challenge_id", ch.ID), zap.String("code", ch.Code))
	return ch, nil
}

// Verify consumes the challenge. A wrong code still burns it.
func (s *Service) Verify(ctx context.Context, userID int64, challengeID, code string) error {
	if challengeID == "" || code == "" {
		return ErrMissing
	}
	rec, err := s.store.Take(ctx, challengeID)
	if err != nil {
		return fmt.Errorf("load otp: %w", err)
	}
	if rec == nil || rec.UserID != userID || subtle.ConstantTimeCompare([]byte(rec.Code), []byte(code)) != 1 {
		return ErrInvalidCode
	}
	return nil
}
