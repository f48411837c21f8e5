package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type Currency string

const (
	CurrencyVND Currency = "VND"
	CurrencyUSD Currency = "USD"
)

// Wallet is the card-like profile shown on the dashboard.
type Wallet struct {
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatarUrl"`
	WalletID    string    `json:"walletId"`
	Gender      Gender    `json:"gender"`
	IssueDate   time.Time `json:"issueDate"`
	ExpiryDate  time.Time `json:"expiryDate"`
	CoinBalance int64     `json:"coinBalance"`
}

type DefaultMessage struct {
	Text string `json:"text"`
	Icon string `json:"icon,omitempty"`
}

type Preferences struct {
	Currency         Currency         `json:"currency"`
	Theme            string           `json:"theme"`
	BiometricEnabled bool             `json:"biometricEnabled"`
	BalanceVisible   bool             `json:"balanceVisible"`
	DefaultMessages  []DefaultMessage `json:"defaultMessages"`
}

type TransactionLimits struct {
	Daily          decimal.Decimal `json:"daily"`
	PerTransaction decimal.Decimal `json:"perTransaction"`
}

type SavingsGoal struct {
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	ImageURL     string          `json:"imageUrl,omitempty"`
}

type LinkedBankAccount struct {
	ID            string `json:"id"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountHolder string `json:"accountHolder"`
	LogoURL       string `json:"logoUrl"`
}

// WalletState is the whole per-user document. It is loaded, mutated and saved as one unit.
type WalletState struct {
	UserID          int64                  `json:"userId"`
	Profile         Wallet                 `json:"profile"`
	Balance         decimal.Decimal        `json:"balance"`
	Transactions    []Transaction          `json:"transactions"`
	LinkedAccounts  []LinkedBankAccount    `json:"linkedAccounts"`
	Recurring       []RecurringTransaction `json:"recurring"`
	SavingsGoal     *SavingsGoal           `json:"savingsGoal,omitempty"`
	SavingsProgress decimal.Decimal        `json:"savingsProgress"`
	ProfitRate      decimal.Decimal        `json:"profitRate"`
	Preferences     Preferences            `json:"preferences"`
	Limits          TransactionLimits      `json:"limits"`
	RewardTasks     []RewardTask           `json:"rewardTasks"`
	Vouchers        []UserVoucher          `json:"vouchers"`
	Loans           []LoanContract         `json:"loans"`
}
