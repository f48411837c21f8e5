package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SplitType string

const (
	SplitEqual  SplitType = "equal"
	SplitRandom SplitType = "random"
)

type Claim struct {
	UserID     string          `json:"userId"`
	UserName   string          `json:"userName"`
	UserAvatar string          `json:"userAvatar"`
	Amount     decimal.Decimal `json:"amount"`
	ClaimDate  time.Time       `json:"claimDate"`
}

// LuckyMoneyPacket is a gift amount shared among up to Quantity claimants.
// OwnerID is the creator's account id and never leaves the server.
type LuckyMoneyPacket struct {
	ID            string          `json:"id"`
	ShareID       string          `json:"shareId"`
	OwnerID       int64           `json:"-"`
	CreatorUserID string          `json:"creatorUserId"`
	CreatorName   string          `json:"creatorName"`
	CreatorAvatar string          `json:"creatorAvatar"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Quantity      int             `json:"quantity"`
	Type          SplitType       `json:"type"`
	Message       string          `json:"message"`
	Claims        []Claim         `json:"claims"`
	CreationDate  time.Time       `json:"creationDate"`
	IsAnonymous   bool            `json:"isAnonymous"`
}

// Claimed returns the sum of all claim amounts.
func (p LuckyMoneyPacket) Claimed() decimal.Decimal {
	sum := decimal.Zero
	for _, c := range p.Claims {
		sum = sum.Add(c.Amount)
	}
	return sum
}
