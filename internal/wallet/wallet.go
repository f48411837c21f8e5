package wallet

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
	"github.com/hongminglow/vi-sinh-loi-be/internal/storage"
)

const (
	walletIDDigits       = 16
	walletNumberAttempts = 5
)

type CreateWalletInput struct {
	Name      string
	Gender    models.Gender
	AvatarURL string
}

// Summary is the dashboard view of a wallet.
type Summary struct {
	Profile         models.Wallet            `json:"profile"`
	Balance         decimal.Decimal          `json:"balance"`
	CreditScore     int                      `json:"creditScore"`
	SpentToday      decimal.Decimal          `json:"spentToday"`
	RemainingDaily  decimal.Decimal          `json:"remainingDaily"`
	Limits          models.TransactionLimits `json:"limits"`
	Preferences     models.Preferences       `json:"preferences"`
	SavingsGoal     *models.SavingsGoal      `json:"savingsGoal,omitempty"`
	SavingsProgress decimal.Decimal          `json:"savingsProgress"`
	ProfitRate      decimal.Decimal          `json:"profitRate"`
}

func defaultAvatar(name string) string {
	return "https://api.dicebear.com/8.x/initials/svg?seed=" + url.QueryEscape(name)
}

func (s *Service) walletNumber() string {
	var b strings.Builder
	b.Grow(walletIDDigits)
	for range walletIDDigits {
		b.WriteByte(byte('0' + s.randN(10)))
	}
	return b.String()
}

// CreateWallet opens the wallet for userID with the welcome balance and coins.
func (s *Service) CreateWallet(ctx context.Context, userID int64, in CreateWalletInput) (models.WalletState, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.WalletState{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	gender := in.Gender
	if gender == "" {
		gender = models.GenderOther
	}
	switch gender {
	case models.GenderMale, models.GenderFemale, models.GenderOther:
	default:
		return models.WalletState{}, fmt.Errorf("%w: unknown gender %q", ErrInvalidInput, in.Gender)
	}
	avatar := strings.TrimSpace(in.AvatarURL)
	if avatar == "" {
		avatar = defaultAvatar(name)
	}

	now := s.clock()
	st := models.WalletState{
		UserID: userID,
		Profile: models.Wallet{
			Name:        strings.ToUpper(name),
			AvatarURL:   avatar,
			WalletID:    s.walletNumber(),
			Gender:      gender,
			IssueDate:   now,
			ExpiryDate:  now.AddDate(5, 0, 0),
			CoinBalance: s.settings.WelcomeCoins,
		},
		Transactions:    []models.Transaction{},
		LinkedAccounts:  []models.LinkedBankAccount{},
		Recurring:       []models.RecurringTransaction{},
		SavingsProgress: decimal.Zero,
		ProfitRate:      s.settings.ProfitRate,
		Preferences: models.Preferences{
			Currency:        models.CurrencyVND,
			Theme:           "blue",
			BalanceVisible:  true,
			DefaultMessages: defaultMessages(),
		},
		Limits:      s.settings.Limits,
		RewardTasks: initialTasks(),
		Vouchers:    []models.UserVoucher{},
		Loans:       []models.LoanContract{},
	}
	for i := range st.RewardTasks {
		st.RewardTasks[i].LastResetDate = dayKey(now)
	}

	l := &ledger{st: &st, now: now, newID: s.newID}
	if s.settings.WelcomeBalance.IsPositive() {
		l.credit(models.Transaction{
			Type:        models.TxTopUp,
			Amount:      s.settings.WelcomeBalance,
			Description: "Welcome bonus",
		})
	}

	if err := s.insertWallet(ctx, &st); err != nil {
		return models.WalletState{}, err
	}
	s.log.Info("wallet created", zap.Int64("user_id", userID), zap.String("wallet_id", st.Profile.WalletID))
	s.publish(ctx, userID, l.events)
	return st, nil
}

// insertWallet stores st, drawing a fresh wallet number when the current one is taken.
func (s *Service) insertWallet(ctx context.Context, st *models.WalletState) error {
	for range walletNumberAttempts {
		err := s.store.CreateWallet(ctx, *st)
		if !errors.Is(err, storage.ErrWalletNumberTaken) {
			return mapStoreErr(err)
		}
		s.log.Warn("wallet number collision", zap.Int64("user_id", st.UserID), zap.String("wallet_id", st.Profile.WalletID))
		st.Profile.WalletID = s.walletNumber()
	}
	return errors.New("could not allocate a free wallet number")
}

func (s *Service) Wallet(ctx context.Context, userID int64) (models.WalletState, error) {
	return s.load(ctx, userID)
}

func (s *Service) Summary(ctx context.Context, userID int64) (Summary, error) {
	st, err := s.load(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	return summarize(st, s.clock()), nil
}

func summarize(st models.WalletState, now time.Time) Summary {
	return Summary{
		Profile:         st.Profile,
		Balance:         st.Balance,
		CreditScore:     CreditScore(st, now),
		SpentToday:      SpentToday(st, now),
		RemainingDaily:  RemainingDaily(st, now),
		Limits:          st.Limits,
		Preferences:     st.Preferences,
		SavingsGoal:     st.SavingsGoal,
		SavingsProgress: st.SavingsProgress,
		ProfitRate:      st.ProfitRate,
	}
}

// DeleteWallet wipes every piece of wallet state, including created packets.
func (s *Service) DeleteWallet(ctx context.Context, userID int64) error {
	return mapStoreErr(s.store.DeleteWallet(ctx, userID))
}

func (s *Service) Preferences(ctx context.Context, userID int64) (models.Preferences, error) {
	st, err := s.load(ctx, userID)
	if err != nil {
		return models.Preferences{}, err
	}
	return st.Preferences, nil
}

// PreferencesInput is a partial update; nil fields are left unchanged.
type PreferencesInput struct {
	Currency         *models.Currency
	Theme            *string
	BiometricEnabled *bool
	BalanceVisible   *bool
	DefaultMessages  []models.DefaultMessage
}

func (s *Service) UpdatePreferences(ctx context.Context, userID int64, in PreferencesInput) (models.Preferences, error) {
	st, err := s.update(ctx, userID, func(l *ledger) error {
		p := &l.st.Preferences
		if in.Currency != nil {
			if *in.Currency != models.CurrencyVND && *in.Currency != models.CurrencyUSD {
				return fmt.Errorf("%w: unsupported currency %q", ErrInvalidInput, *in.Currency)
			}
			p.Currency = *in.Currency
		}
		if in.Theme != nil {
			if strings.TrimSpace(*in.Theme) == "" {
				return fmt.Errorf("%w: theme is required", ErrInvalidInput)
			}
			p.Theme = *in.Theme
		}
		if in.BiometricEnabled != nil {
			p.BiometricEnabled = *in.BiometricEnabled
		}
		if in.BalanceVisible != nil {
			p.BalanceVisible = *in.BalanceVisible
		}
		if in.DefaultMessages != nil {
			msgs := make([]models.DefaultMessage, 0, len(in.DefaultMessages))
			for _, m := range in.DefaultMessages {
				if text := strings.TrimSpace(m.Text); text != "" {
					msgs = append(msgs, models.DefaultMessage{Text: text, Icon: m.Icon})
				}
			}
			p.DefaultMessages = msgs
		}
		return nil
	})
	if err != nil {
		return models.Preferences{}, err
	}
	return st.Preferences, nil
}
