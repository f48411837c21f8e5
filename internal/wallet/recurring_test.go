package wallet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
)

func TestFirstDueDate(t *testing.T) {
	at := func(y int, m time.Month, d, h int) time.Time { return time.Date(y, m, d, h, 0, 0, 0, time.UTC) }
	cases := []struct {
		name  string
		start time.Time
		freq  models.Frequency
		want  time.Time
	}{
		{"future start", at(2026, 4, 1, 8), models.Daily, at(2026, 4, 1, 8)},
		{"daily on the dot", at(2026, 3, 10, 10), models.Daily, at(2026, 3, 15, 10)},
		{"daily partial day", at(2026, 3, 10, 9), models.Daily, at(2026, 3, 16, 9)},
		{"weekly", at(2026, 3, 1, 8), models.Weekly, at(2026, 3, 22, 8)},
		{"monthly later day", at(2026, 1, 20, 8), models.Monthly, at(2026, 3, 20, 8)},
		{"monthly earlier day", at(2026, 1, 10, 8), models.Monthly, at(2026, 4, 10, 8)},
		{"monthly same day earlier hour", at(2026, 1, 15, 8), models.Monthly, at(2026, 4, 15, 8)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FirstDueDate(tc.start, tc.freq, testNow)
			assert.Equal(t, tc.want, got)
			assert.False(t, got.Before(testNow))
		})
	}
}

func TestAdvance(t *testing.T) {
	assert.Equal(t, testNow.AddDate(0, 0, 1), Advance(testNow, models.Daily))
	assert.Equal(t, testNow.AddDate(0, 0, 7), Advance(testNow, models.Weekly))
	assert.Equal(t, testNow.AddDate(0, 1, 0), Advance(testNow, models.Monthly))
}

func TestRecurringLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.openWallet(t, 1, "mai")

	template, err := f.svc.SendToWallet(ctx, 1, TransferInput{Recipient: "landlord", Amount: amount(100_000), Message: "Rent"})
	require.NoError(t, err)

	end := testNow.AddDate(0, 0, 1)
	r, err := f.svc.CreateRecurring(ctx, 1, RecurringInput{
		TemplateTransactionID: template.ID,
		Frequency:             models.Daily,
		StartDate:             testNow,
		EndDate:               &end,
	})
	require.NoError(t, err)
	assert.True(t, r.IsActive)
	assert.Equal(t, testNow, r.NextDueDate)
	assert.Equal(t, "Rent", r.Description)

	created, err := f.svc.ProcessRecurring(ctx, 1)
	require.NoError(t, err)
	require.Len(t, created, 1)
	requireAmount(t, 300_000, f.balance(t, 1))

	created, err = f.svc.ProcessRecurring(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, created, "not due again until tomorrow")

	f.clock.Advance(24 * time.Hour)
	n, err := f.svc.ProcessAllRecurring(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	list, err := f.svc.ListRecurring(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].IsActive, "next run would be after the end date")

	require.NoError(t, f.svc.DeleteRecurring(ctx, 1, r.ID))
	require.ErrorIs(t, f.svc.DeleteRecurring(ctx, 1, r.ID), ErrNotFound)
}

func TestRecurringSkipsWhenBalanceLow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.openWallet(t, 1, "mai")

	template, err := f.svc.SendToWallet(ctx, 1, TransferInput{Recipient: "gym", Amount: amount(300_000)})
	require.NoError(t, err)
	r, err := f.svc.CreateRecurring(ctx, 1, RecurringInput{TemplateTransactionID: template.ID, Frequency: models.Monthly, StartDate: testNow})
	require.NoError(t, err)

	created, err := f.svc.ProcessRecurring(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, created)
	requireAmount(t, 200_000, f.balance(t, 1))

	list, err := f.svc.ListRecurring(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, r.NextDueDate, list[0].NextDueDate, "skipped schedule stays due")
}

func TestCreateRecurringValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.openWallet(t, 1, "mai")
	welcome := st.Transactions[0].ID

	_, err := f.svc.CreateRecurring(ctx, 1, RecurringInput{TemplateTransactionID: welcome, Frequency: models.Daily, StartDate: testNow})
	require.ErrorIs(t, err, ErrInvalidInput, "top-ups cannot recur")

	_, err = f.svc.CreateRecurring(ctx, 1, RecurringInput{TemplateTransactionID: "nope", Frequency: models.Daily, StartDate: testNow})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.CreateRecurring(ctx, 1, RecurringInput{TemplateTransactionID: welcome, Frequency: "yearly", StartDate: testNow})
	require.ErrorIs(t, err, ErrInvalidInput)

	before := testNow.AddDate(0, 0, -1)
	_, err = f.svc.CreateRecurring(ctx, 1, RecurringInput{TemplateTransactionID: welcome, Frequency: models.Daily, StartDate: testNow, EndDate: &before})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestToggleRecurring(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.openWallet(t, 1, "mai")
	template, err := f.svc.SendToWallet(ctx, 1, TransferInput{Recipient: "x", Amount: amount(1_000)})
	require.NoError(t, err)
	r, err := f.svc.CreateRecurring(ctx, 1, RecurringInput{TemplateTransactionID: template.ID, Frequency: models.Weekly, StartDate: testNow})
	require.NoError(t, err)

	r, err = f.svc.ToggleRecurring(ctx, 1, r.ID)
	require.NoError(t, err)
	assert.False(t, r.IsActive)

	f.clock.Advance(20 * 24 * time.Hour)
	r, err = f.svc.ToggleRecurring(ctx, 1, r.ID)
	require.NoError(t, err)
	assert.True(t, r.IsActive)
	assert.Equal(t, testNow.AddDate(0, 0, 21), r.NextDueDate)

	_, err = f.svc.ToggleRecurring(ctx, 1, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}
