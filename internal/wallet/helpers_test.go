package wallet

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
	"github.com/hongminglow/vi-sinh-loi-be/internal/storage/memory"
)

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// seqRand yields 0, 1, 2, ... modulo n so generated ids differ between calls.
type seqRand struct {
	mu   sync.Mutex
	next int64
}

func (r *seqRand) Int64N(n int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.next % n
	r.next++
	return v
}

type recordingNotifier struct {
	mu  sync.Mutex
	got []models.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
}

func (r *recordingNotifier) all() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Notification(nil), r.got...)
}

type fixture struct {
	svc      *Service
	store    *memory.Store
	clock    *testClock
	notifier *recordingNotifier
}

func testSettings() Settings {
	return Settings{
		WelcomeBalance: decimal.NewFromInt(500_000),
		WelcomeCoins:   100,
		ProfitRate:     decimal.RequireFromString("0.0001"),
		Limits: models.TransactionLimits{
			Daily:          decimal.NewFromInt(1_000_000),
			PerTransaction: decimal.NewFromInt(400_000),
		},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    memory.New(),
		clock:    &testClock{now: testNow},
		notifier: &recordingNotifier{},
	}
	f.svc = NewService(f.store, testSettings(),
		WithClock(f.clock.Now),
		WithRandom((&seqRand{}).Int64N),
		WithNotifier(f.notifier),
	)
	return f
}

func (f *fixture) openWallet(t *testing.T, userID int64, name string) models.WalletState {
	t.Helper()
	st, err := f.svc.CreateWallet(context.Background(), userID, CreateWalletInput{Name: name, Gender: models.GenderFemale})
	require.NoError(t, err)
	return st
}

func (f *fixture) balance(t *testing.T, userID int64) decimal.Decimal {
	t.Helper()
	st, err := f.svc.Wallet(context.Background(), userID)
	require.NoError(t, err)
	return st.Balance
}

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func requireAmount(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, got.Equal(decimal.NewFromInt(want)), "want %d, got %s", want, got)
}
