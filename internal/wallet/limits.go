package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
)

// spendTypes are the transaction types that count towards the daily limit.
var spendTypes = map[models.TransactionType]bool{
	models.TxOutgoing:    true,
	models.TxWithdrawal:  true,
	models.TxBillPayment: true,
	models.TxLuckyMoney:  true,
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SpentToday sums the debits made since midnight of now's day.
func SpentToday(st models.WalletState, now time.Time) decimal.Decimal {
	midnight := startOfDay(now)
	total := decimal.Zero
	for _, tx := range st.Transactions {
		if tx.Direction != models.Debit || !spendTypes[tx.Type] {
			continue
		}
		if tx.Date.Before(midnight) {
			continue
		}
		total = total.Add(tx.Amount)
	}
	return total
}

// RemainingDaily is the daily limit minus today's spending, never below zero.
func RemainingDaily(st models.WalletState, now time.Time) decimal.Decimal {
	remaining := st.Limits.Daily.Sub(SpentToday(st, now))
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// wholeAmount reports whether d is a positive whole number of currency units.
func wholeAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Floor())
}

// checkDebit validates an outgoing amount against balance and limits.
func checkDebit(st models.WalletState, amount decimal.Decimal, now time.Time) error {
	if !wholeAmount(amount) {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(st.Balance) {
		return ErrInsufficientBalance
	}
	if amount.GreaterThan(st.Limits.PerTransaction) {
		return fmt.Errorf("%w (%s)", ErrPerTransactionLimit, st.Limits.PerTransaction)
	}
	if remaining := RemainingDaily(st, now); amount.GreaterThan(remaining) {
		return fmt.Errorf("%w (remaining %s)", ErrDailyLimit, remaining)
	}
	return nil
}

// LimitsInput carries a partial limits update.
type LimitsInput struct {
	Daily          *decimal.Decimal
	PerTransaction *decimal.Decimal
}

// ApplyLimits merges in into current keeping daily >= perTransaction: raising the
// per-transaction limit above daily raises daily, lowering daily below the
// per-transaction limit lowers it too.
func ApplyLimits(current models.TransactionLimits, in LimitsInput) (models.TransactionLimits, error) {
	out := current
	if in.PerTransaction != nil {
		if !wholeAmount(*in.PerTransaction) {
			return current, fmt.Errorf("%w: per-transaction limit must be a positive whole amount", ErrInvalidInput)
		}
		out.PerTransaction = *in.PerTransaction
		if out.PerTransaction.GreaterThan(out.Daily) {
			out.Daily = out.PerTransaction
		}
	}
	if in.Daily != nil {
		if !wholeAmount(*in.Daily) {
			return current, fmt.Errorf("%w: daily limit must be a positive whole amount", ErrInvalidInput)
		}
		out.Daily = *in.Daily
		if out.Daily.LessThan(out.PerTransaction) {
			out.PerTransaction = out.Daily
		}
	}
	return out, nil
}

func (s *Service) Limits(ctx context.Context, userID int64) (models.TransactionLimits, error) {
	st, err := s.load(ctx, userID)
	if err != nil {
		return models.TransactionLimits{}, err
	}
	return st.Limits, nil
}

func (s *Service) SetLimits(ctx context.Context, userID int64, in LimitsInput) (models.TransactionLimits, error) {
	st, err := s.update(ctx, userID, func(l *ledger) error {
		limits, err := ApplyLimits(l.st.Limits, in)
		if err != nil {
			return err
		}
		l.st.Limits = limits
		return nil
	})
	if err != nil {
		return models.TransactionLimits{}, err
	}
	return st.Limits, nil
}

// ResetLimits restores the configured default limits.
func (s *Service) ResetLimits(ctx context.Context, userID int64) (models.TransactionLimits, error) {
	st, err := s.update(ctx, userID, func(l *ledger) error {
		l.st.Limits = s.settings.Limits
		return nil
	})
	if err != nil {
		return models.TransactionLimits{}, err
	}
	return st.Limits, nil
}
