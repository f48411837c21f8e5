package wallet

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
	"github.com/hongminglow/vi-sinh-loi-be/internal/storage"
)

// Notifier receives notifications after a wallet change commits.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification)
}

// Settings are the defaults applied to newly created wallets.
type Settings struct {
	WelcomeBalance decimal.Decimal
	WelcomeCoins   int64
	ProfitRate     decimal.Decimal
	Limits         models.TransactionLimits
}

// Service implements every wallet operation on top of a WalletStore.
type Service struct {
	store    storage.WalletStore
	notifier Notifier
	log      *zap.Logger
	settings Settings
	now      func() time.Time
	randN    func(n int64) int64
	newID    func() string
}

type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRandom overrides the source of uniform integers in [0, n).
func WithRandom(randN func(n int64) int64) Option {
	return func(s *Service) { s.randN = randN }
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Service) { s.log = log }
}

// NewService wires a Service. Without options it uses the wall clock, math/rand/v2 and a no-op notifier.
func NewService(store storage.WalletStore, settings Settings, opts ...Option) *Service {
	s := &Service{
		store:    store,
		settings: settings,
		log:      zap.NewNop(),
		now:      time.Now,
		randN:    rand.Int64N,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultLimits returns the limits new wallets start with.
func (s *Service) DefaultLimits() models.TransactionLimits {
	return s.settings.Limits
}

func (s *Service) clock() time.Time {
	return s.now().UTC()
}

// ledger applies balance changes to a state and collects the notifications they produce.
type ledger struct {
	st     *models.WalletState
	now    time.Time
	newID  func() string
	events []models.Transaction
}

func (l *ledger) record(tx models.Transaction, dir models.Direction) models.Transaction {
	tx.ID = l.newID()
	tx.Date = l.now
	tx.Direction = dir
	l.st.Transactions = append([]models.Transaction{tx}, l.st.Transactions...)
	l.events = append(l.events, tx)
	return tx
}

func (l *ledger) credit(tx models.Transaction) models.Transaction {
	l.st.Balance = l.st.Balance.Add(tx.Amount)
	return l.record(tx, models.Credit)
}

func (l *ledger) debit(tx models.Transaction) models.Transaction {
	l.st.Balance = l.st.Balance.Sub(tx.Amount)
	return l.record(tx, models.Debit)
}

// notify queues a notification that is not part of the money log, such as coin awards.
func (l *ledger) notify(tx models.Transaction) {
	tx.ID = l.newID()
	tx.Date = l.now
	l.events = append(l.events, tx)
}

// update loads the wallet inside a store transaction, applies fn and saves the result.
// Notifications are published only after the transaction commits.
func (s *Service) update(ctx context.Context, userID int64, fn func(l *ledger) error) (models.WalletState, error) {
	var (
		out    models.WalletState
		events []models.Transaction
	)
	err := s.store.InTx(ctx, func(tx storage.Tx) error {
		st, err := tx.Wallet(ctx, userID)
		if err != nil {
			return mapStoreErr(err)
		}
		l := &ledger{st: &st, now: s.clock(), newID: s.newID}
		if err := fn(l); err != nil {
			return err
		}
		if err := tx.SaveWallet(ctx, st); err != nil {
			return mapStoreErr(err)
		}
		out, events = st, l.events
		return nil
	})
	if err != nil {
		return models.WalletState{}, err
	}
	s.publish(ctx, userID, events)
	return out, nil
}

func (s *Service) load(ctx context.Context, userID int64) (models.WalletState, error) {
	st, err := s.store.GetWallet(ctx, userID)
	if err != nil {
		return models.WalletState{}, mapStoreErr(err)
	}
	return st, nil
}

func (s *Service) publish(ctx context.Context, userID int64, events []models.Transaction) {
	if s.notifier == nil {
		return
	}
	for _, tx := range events {
		s.notifier.Notify(ctx, models.Notification{UserID: userID, Transaction: tx, CreatedAt: tx.Date})
	}
}

func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return ErrNoWallet
	case errors.Is(err, storage.ErrAlreadyExists):
		return ErrWalletExists
	default:
		return err
	}
}
