package wallet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
)

func TestSendToWallet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.openWallet(t, 1, "mai")

	tx, err := f.svc.SendToWallet(ctx, 1, TransferInput{Recipient: "1234", Amount: amount(120_000)})
	require.NoError(t, err)
	assert.Equal(t, models.TxOutgoing, tx.Type)
	assert.Equal(t, models.Debit, tx.Direction)
	assert.Equal(t, "Money transfer", tx.Description)
	requireAmount(t, 380_000, f.balance(t, 1))

	st, err := f.svc.Wallet(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, st.Transactions[0].ID, "newest transaction first")
	assert.Equal(t, 1, st.RewardTasks[0].CurrentCount)
}

func TestDebitRejectionsLeaveStateUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.openWallet(t, 1, "mai")

	cases := []struct {
		name   string
		amount int64
		want   error
	}{
		{"zero", 0, ErrInvalidAmount},
		{"negative", -5, ErrInvalidAmount},
		{"over balance", 600_000, ErrInsufficientBalance},
		{"over per-transaction", 450_000, ErrPerTransactionLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.SendToWallet(ctx, 1, TransferInput{Recipient: "1234", Amount: amount(tc.amount)})
			require.ErrorIs(t, err, tc.want)
			requireAmount(t, 500_000, f.balance(t, 1))
		})
	}

	st, err := f.svc.Wallet(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, st.Transactions, 1)
}

func TestDailyLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.openWallet(t, 1, "mai")
	_, err := f.svc.TopUp(ctx, 1, amount(2_000_000), "Vietcombank, 0123")
	require.NoError(t, err)

	for range 2 {
		_, err := f.svc.BankTransfer(ctx, 1, TransferInput{Recipient: "ACB, 999, TRAN VAN B", Amount: amount(400_000)})
		require.NoError(t, err)
	}
	_, err = f.svc.Withdraw(ctx, 1, TransferInput{Recipient: "ACB", Amount: amount(300_000)})
	require.ErrorIs(t, err, ErrDailyLimit)

	f.clock.Advance(24 * time.Hour)
	_, err = f.svc.Withdraw(ctx, 1, TransferInput{Recipient: "ACB", Amount: amount(300_000)})
	require.NoError(t, err)
}

func TestBankTransferDescription(t *testing.T) {
	f := newFixture(t)
	f.openWallet(t, 1, "mai")

	tx, err := f.svc.BankTransfer(context.Background(), 1, TransferInput{Recipient: "Techcombank, 19033, LE VAN C", Amount: amount(10_000)})
	require.NoError(t, err)
	assert.Equal(t, "Transfer to Techcombank", tx.Description)
	assert.Equal(t, "Techcombank, 19033, LE VAN C", tx.Recipient)
}

func TestTopUpIgnoresLimits(t *testing.T) {
	f := newFixture(t)
	f.openWallet(t, 1, "mai")

	tx, err := f.svc.TopUp(context.Background(), 1, amount(5_000_000), "")
	require.NoError(t, err)
	assert.Equal(t, models.Credit, tx.Direction)
	requireAmount(t, 5_500_000, f.balance(t, 1))

	_, err = f.svc.TopUp(context.Background(), 1, amount(0), "")
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestListTransactions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.openWallet(t, 1, "mai")
	for _, r := range []string{"a", "b", "c"} {
		_, err := f.svc.SendToWallet(ctx, 1, TransferInput{Recipient: r, Amount: amount(1_000)})
		require.NoError(t, err)
	}

	all, err := f.svc.ListTransactions(ctx, 1, TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	out, err := f.svc.ListTransactions(ctx, 1, TransactionFilter{Type: models.TxOutgoing, Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "b", out[0].Recipient)
	assert.Equal(t, "a", out[1].Recipient)

	_, err = f.svc.ListTransactions(ctx, 1, TransactionFilter{Type: "refund"})
	require.ErrorIs(t, err, ErrInvalidInput)

	got, err := f.svc.GetTransaction(ctx, 1, out[0].ID)
	require.NoError(t, err)
	assert.Equal(t, out[0], got)
	_, err = f.svc.GetTransaction(ctx, 1, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFrequentRecipients(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.openWallet(t, 1, "mai")
	for _, r := range []string{"a", "b", "b", "c", "b", "c"} {
		_, err := f.svc.SendToWallet(ctx, 1, TransferInput{Recipient: r, Amount: amount(1_000)})
		require.NoError(t, err)
	}
	_, err := f.svc.SetSavingsGoal(ctx, 1, SavingsInput{Name: "Bike", TargetAmount: amount(1_000_000)})
	require.NoError(t, err)
	_, err = f.svc.AddToSavings(ctx, 1, amount(5_000))
	require.NoError(t, err)

	got, err := f.svc.FrequentRecipients(ctx, 1)
	require.NoError(t, err)
	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"b", "c", savingsRecipient, "a"}, ids)
	assert.Equal(t, 3, got[0].Count)
	assert.Equal(t, "b", got[0].Name)
	assert.Equal(t, defaultAvatar("b"), got[0].AvatarURL)
	assert.Contains(t, got[2].AvatarURL, "seed=Savings+goal")
}

func TestFrequentRecipientsKeepsTopEight(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.openWallet(t, 1, "mai")
	for _, r := range []string{"r1", "r2", "r3", "r4", "r5", "r6", "r7", "r8", "r9", "r9"} {
		_, err := f.svc.SendToWallet(ctx, 1, TransferInput{Recipient: r, Amount: amount(1_000)})
		require.NoError(t, err)
	}

	got, err := f.svc.FrequentRecipients(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, frequentRecipientLimit)
	assert.Equal(t, "r9", got[0].ID)
	assert.Equal(t, "r8", got[1].ID, "ties keep the most recent first")
}
