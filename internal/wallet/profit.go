package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
)

// ProfitFor is floor(balance * rate), or zero when either is not positive.
func ProfitFor(balance, rate decimal.Decimal) decimal.Decimal {
	if !balance.IsPositive() || !rate.IsPositive() {
		return decimal.Zero
	}
	return balance.Mul(rate).Floor()
}

// AccrueProfit credits one period of profit to a wallet. The zero transaction is
// returned when the profit rounds down to nothing.
func (s *Service) AccrueProfit(ctx context.Context, userID int64) (models.Transaction, error) {
	st, err := s.load(ctx, userID)
	if err != nil {
		return models.Transaction{}, err
	}
	if !ProfitFor(st.Balance, st.ProfitRate).IsPositive() {
		return models.Transaction{}, nil
	}
	var out models.Transaction
	_, err = s.update(ctx, userID, func(l *ledger) error {
		profit := ProfitFor(l.st.Balance, l.st.ProfitRate)
		if !profit.IsPositive() {
			return nil
		}
		out = l.credit(models.Transaction{
			Type:        models.TxProfit,
			Amount:      profit,
			Description: "Profit",
		})
		return nil
	})
	return out, err
}

// AccrueAllProfit runs AccrueProfit for every wallet and returns how many were credited.
func (s *Service) AccrueAllProfit(ctx context.Context) (int, error) {
	ids, err := s.store.ListWalletUserIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list wallets: %w", err)
	}
	credited := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return credited, err
		}
		tx, err := s.AccrueProfit(ctx, id)
		if err != nil {
			if !errors.Is(err, ErrNoWallet) {
				s.log.Warn("accrue profit", zap.Int64("user_id", id), zap.Error(err))
			}
			continue
		}
		if tx.ID != "" {
			credited++
		}
	}
	return credited, nil
}
