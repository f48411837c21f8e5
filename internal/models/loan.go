package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is a product in the simulated lending catalog. InterestRate is annual.
type Loan struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	InterestRate   decimal.Decimal `json:"interestRate"`
	MaxAmount      decimal.Decimal `json:"maxAmount"`
	MinTerm        int             `json:"minTerm"`
	MaxTerm        int             `json:"maxTerm"`
	MinCreditScore int             `json:"minCreditScore"`
	Provider       string          `json:"provider"`
	Criteria       []string        `json:"criteria"`
	Terms          []string        `json:"terms"`
	Tag            string          `json:"tag,omitempty"`
}

// LoanContract records a disbursed loan.
type LoanContract struct {
	ID             string          `json:"id"`
	LoanID         string          `json:"loanId"`
	Name           string          `json:"name"`
	Principal      decimal.Decimal `json:"principal"`
	TermMonths     int             `json:"termMonths"`
	InterestRate   decimal.Decimal `json:"interestRate"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TotalRepayment decimal.Decimal `json:"totalRepayment"`
	DisbursedAt    time.Time       `json:"disbursedAt"`
}
