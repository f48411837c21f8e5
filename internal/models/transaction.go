package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies an entry in the wallet log.
type TransactionType string

const (
	TxIncoming    TransactionType = "incoming"
	TxOutgoing    TransactionType = "outgoing"
	TxProfit      TransactionType = "profit"
	TxTopUp       TransactionType = "topup"
	TxWithdrawal  TransactionType = "withdrawal"
	TxLoan        TransactionType = "loan"
	TxLuckyMoney  TransactionType = "lucky_money"
	TxCoin        TransactionType = "coin"
	TxBillPayment TransactionType = "bill_payment"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TxIncoming, TxOutgoing, TxProfit, TxTopUp, TxWithdrawal, TxLoan, TxLuckyMoney, TxCoin, TxBillPayment:
		return true
	}
	return false
}

// Direction tells whether a transaction added to or took from the balance.
type Direction string

const (
	Credit Direction = "credit"
	Debit  Direction = "debit"
)

// Transaction is a single entry in the wallet log. Amount is always positive.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Direction   Direction       `json:"direction"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Recipient   string          `json:"recipient,omitempty"`
	Sender      string          `json:"sender,omitempty"`
	Category    string          `json:"category,omitempty"`
}
