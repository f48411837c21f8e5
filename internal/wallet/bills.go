package wallet

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
)

const (
	billCustomerName = "NGUYEN VAN A"
	billCategory     = "Bills"
	billDueDays      = 10
)

// hash32 is the classic 31-multiplier string hash over UTF-16 code units with 32-bit wraparound.
func hash32(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(c)
	}
	return h
}

// BillAmount is the deterministic simulated amount due for a customer of a provider.
func BillAmount(customerID, providerID string) decimal.Decimal {
	h := int64(hash32(customerID + providerID))
	if h < 0 {
		h = -h
	}
	return decimal.NewFromInt((h%200)*1000 + 50000)
}

func billFor(p models.ServiceProvider, customerID string, now time.Time) models.BillDetails {
	prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	return models.BillDetails{
		CustomerID:   customerID,
		ProviderID:   p.ID,
		CustomerName: billCustomerName,
		AmountDue:    BillAmount(customerID, p.ID),
		DueDate:      now.AddDate(0, 0, billDueDays),
		Period:       fmt.Sprintf("%d/%d", int(prev.Month()), prev.Year()),
	}
}

// LookupBill simulates fetching the outstanding bill of a customer.
func (s *Service) LookupBill(providerID, customerID string) (models.BillDetails, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return models.BillDetails{}, fmt.Errorf("%w: customer id is required", ErrInvalidInput)
	}
	p, ok := findProvider(providerID)
	if !ok {
		return models.BillDetails{}, ErrNotFound
	}
	return billFor(p, customerID, s.clock()), nil
}

// PayBill pays the looked-up amount due as a bill_payment debit.
func (s *Service) PayBill(ctx context.Context, userID int64, providerID, customerID string) (models.Transaction, error) {
	bill, err := s.LookupBill(providerID, customerID)
	if err != nil {
		return models.Transaction{}, err
	}
	p, _ := findProvider(providerID)
	return s.spend(ctx, userID, bill.AmountDue, func(l *ledger) models.Transaction {
		return l.debit(models.Transaction{
			Type:        models.TxBillPayment,
			Amount:      bill.AmountDue,
			Description: "Payment " + p.Name + " - " + bill.CustomerID,
			Recipient:   p.Name,
			Category:    billCategory,
		})
	})
}
