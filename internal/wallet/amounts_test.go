package wallet

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWholeAmount(t *testing.T) {
	cases := map[string]bool{
		"1":        true,
		"500000":   true,
		"10.00":    true,
		"0":        false,
		"-3":       false,
		"0.5":      false,
		"0.000001": false,
		"12.25":    false,
	}
	for in, want := range cases {
		assert.Equal(t, want, wholeAmount(decimal.RequireFromString(in)), in)
	}
}

func TestFractionalAmountsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.openWallet(t, 1, "mai")
	_, err := f.svc.SetSavingsGoal(ctx, 1, SavingsInput{Name: "Bike", TargetAmount: amount(1_000_000)})
	require.NoError(t, err)

	half := decimal.RequireFromString("0.5")
	tiny := decimal.RequireFromString("0.000001")

	cases := []struct {
		name string
		call func() error
	}{
		{"send to wallet", func() error {
			_, err := f.svc.SendToWallet(ctx, 1, TransferInput{Recipient: "1234", Amount: half})
			return err
		}},
		{"bank transfer", func() error {
			_, err := f.svc.BankTransfer(ctx, 1, TransferInput{Recipient: "ACB, 1", Amount: decimal.RequireFromString("1000.75")})
			return err
		}},
		{"withdraw", func() error {
			_, err := f.svc.Withdraw(ctx, 1, TransferInput{Recipient: "ACB", Amount: half})
			return err
		}},
		{"top up", func() error {
			_, err := f.svc.TopUp(ctx, 1, tiny, "")
			return err
		}},
		{"savings deposit", func() error {
			_, err := f.svc.AddToSavings(ctx, 1, half)
			return err
		}},
		{"lucky money", func() error {
			_, err := f.svc.CreateLuckyMoney(ctx, 1, LuckyMoneyInput{Amount: decimal.RequireFromString("100.5"), Quantity: 1})
			return err
		}},
		{"loan quote", func() error {
			_, err := Quote("loan-004", decimal.RequireFromString("5000000.5"), 2)
			return err
		}},
		{"loan apply", func() error {
			_, err := f.svc.ApplyLoan(ctx, 1, "loan-004", decimal.RequireFromString("5000000.5"), 2)
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.call(), ErrInvalidAmount)
			requireAmount(t, 500_000, f.balance(t, 1))
		})
	}

	st, err := f.svc.Wallet(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, st.Transactions, 1, "only the welcome bonus")
	assert.True(t, st.SavingsProgress.IsZero())
}

func TestFractionalLimitsAndGoalRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.openWallet(t, 1, "mai")

	frac := decimal.RequireFromString("100.5")
	_, err := f.svc.SetLimits(ctx, 1, LimitsInput{Daily: &frac})
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.svc.SetLimits(ctx, 1, LimitsInput{PerTransaction: &frac})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.SetSavingsGoal(ctx, 1, SavingsInput{Name: "Bike", TargetAmount: frac})
	require.ErrorIs(t, err, ErrInvalidInput)
}
