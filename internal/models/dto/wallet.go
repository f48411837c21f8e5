package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
)

type CreateWalletRequest struct {
	Name      string        `json:"name"`
	Gender    models.Gender `json:"gender"`
	AvatarURL string        `json:"avatarUrl"`
}

type PreferencesRequest struct {
	Currency         *models.Currency        `json:"currency"`
	Theme            *string                 `json:"theme"`
	BiometricEnabled *bool                   `json:"biometricEnabled"`
	BalanceVisible   *bool                   `json:"balanceVisible"`
	DefaultMessages  []models.DefaultMessage `json:"defaultMessages"`
}

type LimitsRequest struct {
	Daily          *decimal.Decimal `json:"daily"`
	PerTransaction *decimal.Decimal `json:"perTransaction"`
}

type WalletTransferRequest struct {
	RecipientID string          `json:"recipientId"`
	Amount      decimal.Decimal `json:"amount"`
	Message     string          `json:"message"`
}

// BankTransferRequest is shared by bank transfers and withdrawals.
type BankTransferRequest struct {
	BankInfo string          `json:"bankInfo"`
	Amount   decimal.Decimal `json:"amount"`
	Message  string          `json:"message"`
}

type TopUpRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Source string          `json:"source"`
}

type SavingsGoalRequest struct {
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	ImageURL     string          `json:"imageUrl"`
}

type SavingsDepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type LinkAccountRequest struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountHolder string `json:"accountHolder"`
}

type RecurringRequest struct {
	TemplateTransactionID string           `json:"templateTransactionId"`
	Frequency             models.Frequency `json:"frequency"`
	StartDate             time.Time        `json:"startDate"`
	EndDate               *time.Time       `json:"endDate"`
}

type LuckyMoneyRequest struct {
	Amount      decimal.Decimal  `json:"amount"`
	Quantity    int              `json:"quantity"`
	Type        models.SplitType `json:"type"`
	Message     string           `json:"message"`
	IsAnonymous bool             `json:"isAnonymous"`
}

type PayBillRequest struct {
	ProviderID string `json:"providerId"`
	CustomerID string `json:"customerId"`
}

type LoanApplicationRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Term   int             `json:"term"`
}
