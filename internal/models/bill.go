package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ServiceProvider struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	LogoURL               string `json:"logoUrl"`
	Category              string `json:"category"`
	CustomerIDLabel       string `json:"customerIdLabel"`
	CustomerIDPlaceholder string `json:"customerIdPlaceholder"`
}

type BillDetails struct {
	CustomerID   string          `json:"customerId"`
	ProviderID   string          `json:"providerId"`
	CustomerName string          `json:"customerName"`
	AmountDue    decimal.Decimal `json:"amountDue"`
	DueDate      time.Time       `json:"dueDate"`
	Period       string          `json:"period"`
}
