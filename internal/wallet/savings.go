package wallet

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
)

const savingsRecipient = "Savings goal"

type SavingsInput struct {
	Name         string
	TargetAmount decimal.Decimal
	ImageURL     string
}

type Savings struct {
	Goal     *models.SavingsGoal `json:"goal"`
	Progress decimal.Decimal     `json:"progress"`
}

func (s *Service) Savings(ctx context.Context, userID int64) (Savings, error) {
	st, err := s.load(ctx, userID)
	if err != nil {
		return Savings{}, err
	}
	return Savings{Goal: st.SavingsGoal, Progress: st.SavingsProgress}, nil
}

// SetSavingsGoal replaces the goal. An empty name with a zero target clears the goal and its progress.
func (s *Service) SetSavingsGoal(ctx context.Context, userID int64, in SavingsInput) (Savings, error) {
	name := strings.TrimSpace(in.Name)
	reset := name == "" && in.TargetAmount.IsZero()
	if !reset {
		if name == "" {
			return Savings{}, fmt.Errorf("%w: goal name is required", ErrInvalidInput)
		}
		if !wholeAmount(in.TargetAmount) {
			return Savings{}, fmt.Errorf("%w: target amount must be a positive whole amount", ErrInvalidInput)
		}
	}
	st, err := s.update(ctx, userID, func(l *ledger) error {
		if reset {
			l.st.SavingsGoal = nil
			l.st.SavingsProgress = decimal.Zero
			return nil
		}
		l.st.SavingsGoal = &models.SavingsGoal{Name: name, TargetAmount: in.TargetAmount, ImageURL: strings.TrimSpace(in.ImageURL)}
		return nil
	})
	if err != nil {
		return Savings{}, err
	}
	return Savings{Goal: st.SavingsGoal, Progress: st.SavingsProgress}, nil
}

// AddToSavings moves money from the balance into the savings goal.
func (s *Service) AddToSavings(ctx context.Context, userID int64, amount decimal.Decimal) (Savings, error) {
	if !wholeAmount(amount) {
		return Savings{}, ErrInvalidAmount
	}
	st, err := s.update(ctx, userID, func(l *ledger) error {
		if l.st.SavingsGoal == nil {
			return ErrNoSavingsGoal
		}
		if amount.GreaterThan(l.st.Balance) {
			return ErrInsufficientBalance
		}
		l.debit(models.Transaction{
			Type:        models.TxOutgoing,
			Amount:      amount,
			Description: "Savings for: " + l.st.SavingsGoal.Name,
			Recipient:   savingsRecipient,
		})
		l.st.SavingsProgress = l.st.SavingsProgress.Add(amount)
		l.advanceTask(TaskFirstSavings)
		return nil
	})
	if err != nil {
		return Savings{}, err
	}
	return Savings{Goal: st.SavingsGoal, Progress: st.SavingsProgress}, nil
}
