package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
)

func TestCreditScore(t *testing.T) {
	f := newFixture(t)
	fresh := f.openWallet(t, 1, "mai")
	assert.Equal(t, 400, CreditScore(fresh, testNow), "base plus income-only ratio")

	established := models.WalletState{
		Profile:         models.Wallet{IssueDate: testNow.AddDate(-2, 0, 0)},
		Balance:         amount(25_000_000),
		SavingsGoal:     &models.SavingsGoal{Name: "Car", TargetAmount: amount(100_000_000)},
		SavingsProgress: amount(1),
	}
	for i := range 60 {
		dir, amt := models.Credit, int64(2_000)
		if i%2 == 0 {
			dir, amt = models.Debit, 1_000
		}
		established.Transactions = append(established.Transactions, models.Transaction{Type: models.TxOutgoing, Direction: dir, Amount: amount(amt)})
	}
	assert.Equal(t, 970, CreditScore(established, testNow))

	fair := models.WalletState{
		Profile: models.Wallet{IssueDate: testNow},
		Transactions: []models.Transaction{
			{Type: models.TxTopUp, Direction: models.Credit, Amount: amount(900)},
			{Type: models.TxOutgoing, Direction: models.Debit, Amount: amount(1_000)},
			{Type: models.TxCoin, Direction: models.Credit, Amount: amount(5_000)},
		},
	}
	assert.Equal(t, 350, CreditScore(fair, testNow))

	gifted := models.WalletState{
		Profile: models.Wallet{IssueDate: testNow},
		Transactions: []models.Transaction{
			{Type: models.TxLuckyMoney, Direction: models.Credit, Amount: amount(50_000)},
			{Type: models.TxOutgoing, Direction: models.Debit, Amount: amount(1_000)},
		},
	}
	assert.Equal(t, 300, CreditScore(gifted, testNow), "claimed lucky money is not income")

	sender := models.WalletState{
		Profile: models.Wallet{IssueDate: testNow},
		Transactions: []models.Transaction{
			{Type: models.TxTopUp, Direction: models.Credit, Amount: amount(1_000)},
			{Type: models.TxLuckyMoney, Direction: models.Debit, Amount: amount(1_000)},
		},
	}
	assert.Equal(t, 350, CreditScore(sender, testNow), "sent lucky money is spending")
}
