package wallet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
)

func TestHash32(t *testing.T) {
	assert.Equal(t, int32(0), hash32(""))
	assert.Equal(t, int32(97), hash32("a"))
	assert.Equal(t, int32(3105), hash32("ab"))
}

func TestBillAmountRange(t *testing.T) {
	for _, p := range BillProviders() {
		for _, c := range []string{"PE12345678901", "HND123456", "x", "khách hàng"} {
			a := BillAmount(c, p.ID)
			assert.True(t, a.GreaterThanOrEqual(amount(50_000)), a.String())
			assert.True(t, a.LessThanOrEqual(amount(249_000)), a.String())
			assert.True(t, a.Mod(amount(1_000)).IsZero(), a.String())
			assert.True(t, a.Equal(BillAmount(c, p.ID)))
		}
	}
}

func TestLookupAndPayBill(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.openWallet(t, 1, "mai")

	bill, err := f.svc.LookupBill("EVNHCMC", "PE01")
	require.NoError(t, err)
	assert.Equal(t, "NGUYEN VAN A", bill.CustomerName)
	assert.Equal(t, "2/2026", bill.Period)
	assert.Equal(t, testNow.AddDate(0, 0, 10), bill.DueDate)

	tx, err := f.svc.PayBill(ctx, 1, "EVNHCMC", "PE01")
	require.NoError(t, err)
	assert.Equal(t, models.TxBillPayment, tx.Type)
	assert.Equal(t, "Payment HCMC Power - PE01", tx.Description)
	assert.Equal(t, billCategory, tx.Category)
	assert.True(t, tx.Amount.Equal(bill.AmountDue))
	assert.True(t, f.balance(t, 1).Equal(amount(500_000).Sub(bill.AmountDue)))

	_, err = f.svc.LookupBill("NOPE", "PE01")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.PayBill(ctx, 1, "EVNHCMC", " ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestBillPeriodWrapsYear(t *testing.T) {
	p, _ := findProvider("FPT")
	bill := billFor(p, "HND1", testNow.AddDate(0, -2, 0))
	assert.Equal(t, "12/2025", bill.Period)
}
