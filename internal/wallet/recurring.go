package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
)

type RecurringInput struct {
	TemplateTransactionID string
	Frequency             models.Frequency
	StartDate             time.Time
	EndDate               *time.Time
}

// Advance moves t forward by one period of f.
func Advance(t time.Time, f models.Frequency) time.Time {
	switch f {
	case models.Daily:
		return t.AddDate(0, 0, 1)
	case models.Weekly:
		return t.AddDate(0, 0, 7)
	default:
		return t.AddDate(0, 1, 0)
	}
}

// FirstDueDate is the first occurrence of the schedule on or after now.
// Daily and weekly schedules step whole periods; monthly schedules step calendar months.
func FirstDueDate(start time.Time, f models.Frequency, now time.Time) time.Time {
	if !start.Before(now) {
		return start
	}
	elapsed := now.Sub(start)
	switch f {
	case models.Daily:
		return start.AddDate(0, 0, ceilDiv(elapsed, 24*time.Hour))
	case models.Weekly:
		return start.AddDate(0, 0, 7*ceilDiv(elapsed, 7*24*time.Hour))
	}
	months := (now.Year()-start.Year())*12 + int(now.Month()) - int(start.Month())
	if now.Day() > start.Day() {
		months++
	}
	next := start.AddDate(0, months, 0)
	if next.Before(now) {
		next = next.AddDate(0, 1, 0)
	}
	return next
}

func ceilDiv(d, period time.Duration) int {
	n := int(d / period)
	if d%period != 0 {
		n++
	}
	return n
}

// CreateRecurring schedules a copy of an existing outgoing transaction.
func (s *Service) CreateRecurring(ctx context.Context, userID int64, in RecurringInput) (models.RecurringTransaction, error) {
	if !in.Frequency.Valid() {
		return models.RecurringTransaction{}, fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, in.Frequency)
	}
	if in.StartDate.IsZero() {
		return models.RecurringTransaction{}, fmt.Errorf("%w: start date is required", ErrInvalidInput)
	}
	start := in.StartDate.UTC()
	var end *time.Time
	if in.EndDate != nil {
		e := in.EndDate.UTC()
		if e.Before(start) {
			return models.RecurringTransaction{}, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
		}
		end = &e
	}

	var out models.RecurringTransaction
	_, err := s.update(ctx, userID, func(l *ledger) error {
		var template *models.Transaction
		for i := range l.st.Transactions {
			if l.st.Transactions[i].ID == in.TemplateTransactionID {
				template = &l.st.Transactions[i]
				break
			}
		}
		if template == nil {
			return ErrNotFound
		}
		if template.Type != models.TxOutgoing {
			return fmt.Errorf("%w: only outgoing transactions can recur", ErrInvalidInput)
		}
		next := FirstDueDate(start, in.Frequency, l.now)
		out = models.RecurringTransaction{
			ID:                    l.newID(),
			TemplateTransactionID: template.ID,
			Frequency:             in.Frequency,
			StartDate:             start,
			EndDate:               end,
			NextDueDate:           next,
			IsActive:              end == nil || !next.After(*end),
			Amount:                template.Amount,
			Description:           template.Description,
			Recipient:             template.Recipient,
			Category:              template.Category,
		}
		l.st.Recurring = append(l.st.Recurring, out)
		return nil
	})
	if err != nil {
		return models.RecurringTransaction{}, err
	}
	return out, nil
}

func (s *Service) ListRecurring(ctx context.Context, userID int64) ([]models.RecurringTransaction, error) {
	st, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return st.Recurring, nil
}

func (s *Service) DeleteRecurring(ctx context.Context, userID int64, id string) error {
	_, err := s.update(ctx, userID, func(l *ledger) error {
		for i, r := range l.st.Recurring {
			if r.ID == id {
				l.st.Recurring = append(l.st.Recurring[:i], l.st.Recurring[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
	return err
}

// ToggleRecurring flips IsActive. Reactivating a schedule that fell behind moves
// its next due date to the next occurrence from now so missed periods are not replayed.
func (s *Service) ToggleRecurring(ctx context.Context, userID int64, id string) (models.RecurringTransaction, error) {
	var out models.RecurringTransaction
	_, err := s.update(ctx, userID, func(l *ledger) error {
		for i := range l.st.Recurring {
			r := &l.st.Recurring[i]
			if r.ID != id {
				continue
			}
			if !r.IsActive {
				if r.EndDate != nil && l.now.After(*r.EndDate) {
					return fmt.Errorf("%w: schedule already ended", ErrInvalidInput)
				}
				if r.NextDueDate.Before(l.now) {
					r.NextDueDate = FirstDueDate(r.NextDueDate, r.Frequency, l.now)
				}
			}
			r.IsActive = !r.IsActive
			out = *r
			return nil
		}
		return ErrNotFound
	})
	if err != nil {
		return models.RecurringTransaction{}, err
	}
	return out, nil
}

func hasDue(st models.WalletState, now time.Time) bool {
	for _, r := range st.Recurring {
		if r.IsActive && !r.NextDueDate.After(now) {
			return true
		}
	}
	return false
}

// ProcessRecurring executes every due schedule of one wallet at most once and
// returns the transactions it created. Schedules the balance cannot cover stay due.
func (s *Service) ProcessRecurring(ctx context.Context, userID int64) ([]models.Transaction, error) {
	st, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !hasDue(st, s.clock()) {
		return nil, nil
	}
	var created []models.Transaction
	_, err = s.update(ctx, userID, func(l *ledger) error {
		created = created[:0]
		for i := range l.st.Recurring {
			r := &l.st.Recurring[i]
			if !r.IsActive || r.NextDueDate.After(l.now) {
				continue
			}
			if l.st.Balance.LessThan(r.Amount) {
				s.log.Debug("recurring skipped, balance too low",
					zap.Int64("user_id", userID), zap.String("recurring_id", r.ID))
				continue
			}
			created = append(created, l.debit(models.Transaction{
				Type:        models.TxOutgoing,
				Amount:      r.Amount,
				Description: r.Description,
				Recipient:   r.Recipient,
				Category:    r.Category,
			}))
			r.NextDueDate = Advance(r.NextDueDate, r.Frequency)
			if r.EndDate != nil && r.NextDueDate.After(*r.EndDate) {
				r.IsActive = false
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ProcessAllRecurring runs ProcessRecurring for every wallet. Failures are logged
// per wallet and do not stop the pass; the count of executed transactions is returned.
func (s *Service) ProcessAllRecurring(ctx context.Context) (int, error) {
	ids, err := s.store.ListWalletUserIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list wallets: %w", err)
	}
	total := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		created, err := s.ProcessRecurring(ctx, id)
		if err != nil {
			if !errors.Is(err, ErrNoWallet) {
				s.log.Warn("process recurring", zap.Int64("user_id", id), zap.Error(err))
			}
			continue
		}
		total += len(created)
	}
	return total, nil
}
