package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

func (f Frequency) Valid() bool {
	return f == Daily || f == Weekly || f == Monthly
}

// RecurringTransaction replays an outgoing transaction on a schedule.
type RecurringTransaction struct {
	ID                    string          `json:"id"`
	TemplateTransactionID string          `json:"templateTransactionId"`
	Frequency             Frequency       `json:"frequency"`
	StartDate             time.Time       `json:"startDate"`
	EndDate               *time.Time      `json:"endDate,omitempty"`
	NextDueDate           time.Time       `json:"nextDueDate"`
	IsActive              bool            `json:"isActive"`
	Amount                decimal.Decimal `json:"amount"`
	Description           string          `json:"description"`
	Recipient             string          `json:"recipient,omitempty"`
	Category              string          `json:"category,omitempty"`
}
