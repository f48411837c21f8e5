package wallet

import (
	"context"
	"fmt"
	"strings"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
)

type LinkAccountInput struct {
	BankName      string
	AccountNumber string
	AccountHolder string
}

// BankLogoURL derives the VietQR logo for a bank name, e.g. "Vietcombank" -> VIETCOM.
func BankLogoURL(bankName string) string {
	code := strings.ToLower(bankName)
	code = strings.ReplaceAll(code, " ", "")
	code = strings.ReplaceAll(code, "bank", "")
	code = strings.ToUpper(strings.TrimSpace(code))
	return "https://api.vietqr.io/img/" + code + ".png"
}

func (s *Service) LinkAccount(ctx context.Context, userID int64, in LinkAccountInput) (models.LinkedBankAccount, error) {
	acc := models.LinkedBankAccount{
		BankName:      strings.TrimSpace(in.BankName),
		AccountNumber: strings.TrimSpace(in.AccountNumber),
		AccountHolder: strings.ToUpper(strings.TrimSpace(in.AccountHolder)),
	}
	if acc.BankName == "" || acc.AccountNumber == "" || acc.AccountHolder == "" {
		return models.LinkedBankAccount{}, fmt.Errorf("%w: bank name, account number and holder are required", ErrInvalidInput)
	}
	acc.LogoURL = BankLogoURL(acc.BankName)

	_, err := s.update(ctx, userID, func(l *ledger) error {
		for _, existing := range l.st.LinkedAccounts {
			if strings.EqualFold(existing.BankName, acc.BankName) && existing.AccountNumber == acc.AccountNumber {
				return fmt.Errorf("%w: account already linked", ErrInvalidInput)
			}
		}
		acc.ID = l.newID()
		l.st.LinkedAccounts = append(l.st.LinkedAccounts, acc)
		return nil
	})
	if err != nil {
		return models.LinkedBankAccount{}, err
	}
	return acc, nil
}

func (s *Service) ListAccounts(ctx context.Context, userID int64) ([]models.LinkedBankAccount, error) {
	st, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return st.LinkedAccounts, nil
}

func (s *Service) UnlinkAccount(ctx context.Context, userID int64, id string) error {
	_, err := s.update(ctx, userID, func(l *ledger) error {
		for i, acc := range l.st.LinkedAccounts {
			if acc.ID == id {
				l.st.LinkedAccounts = append(l.st.LinkedAccounts[:i], l.st.LinkedAccounts[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
	return err
}
