package wallet

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
)

const (
	baseCreditScore = 300
	maxCreditScore  = 999
)

var (
	balanceTierHigh = decimal.NewFromInt(20_000_000)
	balanceTierMid  = decimal.NewFromInt(5_000_000)
	balanceTierLow  = decimal.NewFromInt(1_000_000)
	ratioGood       = decimal.RequireFromString("1.2")
	ratioFair       = decimal.RequireFromString("0.8")
)

// CreditScore derives the heuristic score used to gate loans: account age,
// balance tier, transaction volume, income/spending ratio and savings activity.
func CreditScore(st models.WalletState, now time.Time) int {
	score := baseCreditScore

	issued := st.Profile.IssueDate
	months := (now.Year()-issued.Year())*12 + int(now.Month()) - int(issued.Month())
	if months > 0 {
		score += min(months*10, 120)
	}

	switch {
	case st.Balance.GreaterThan(balanceTierHigh):
		score += 250
	case st.Balance.GreaterThan(balanceTierMid):
		score += 150
	case st.Balance.GreaterThan(balanceTierLow):
		score += 50
	}

	switch n := len(st.Transactions); {
	case n > 50:
		score += 150
	case n > 10:
		score += 50
	}

	totalIn, totalOut := decimal.Zero, decimal.Zero
	for _, tx := range st.Transactions {
		// Claimed lucky money is neither income nor spending.
		if tx.Type == models.TxCoin || (tx.Type == models.TxLuckyMoney && tx.Direction == models.Credit) {
			continue
		}
		if tx.Direction == models.Credit {
			totalIn = totalIn.Add(tx.Amount)
		} else {
			totalOut = totalOut.Add(tx.Amount)
		}
	}
	switch {
	case totalOut.IsPositive():
		ratio := totalIn.Div(totalOut)
		if ratio.GreaterThan(ratioGood) {
			score += 100
		} else if ratio.GreaterThanOrEqual(ratioFair) {
			score += 50
		}
	case totalIn.IsPositive():
		score += 100
	}

	if st.SavingsGoal != nil && st.SavingsProgress.IsPositive() {
		score += 50
	}

	return min(score, maxCreditScore)
}
