package wallet

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
)

const (
	voucherCodeLength = 6
	voucherValidDays  = 30
	codeAlphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

func dayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// resetTasks zeroes task counters last reset on an earlier day.
func resetTasks(tasks []models.RewardTask, now time.Time) {
	today := dayKey(now)
	for i := range tasks {
		if tasks[i].LastResetDate != today {
			tasks[i].CurrentCount = 0
			tasks[i].LastResetDate = today
		}
	}
}

// advanceTask bumps a task counter and awards its coins when the target is first reached.
func (l *ledger) advanceTask(id string) {
	resetTasks(l.st.RewardTasks, l.now)
	for i := range l.st.RewardTasks {
		t := &l.st.RewardTasks[i]
		if t.ID != id || t.CurrentCount >= t.TargetCount {
			continue
		}
		t.CurrentCount++
		if t.CurrentCount == t.TargetCount {
			l.st.Profile.CoinBalance += t.Coins
			l.notify(models.Transaction{
				Type:        models.TxCoin,
				Direction:   models.Credit,
				Amount:      decimal.NewFromInt(t.Coins),
				Description: "Reward: " + t.Title,
			})
		}
	}
}

// RewardTasks returns the tasks with today's counters.
func (s *Service) RewardTasks(ctx context.Context, userID int64) ([]models.RewardTask, error) {
	st, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	tasks := slices.Clone(st.RewardTasks)
	resetTasks(tasks, s.clock())
	return tasks, nil
}

type VoucherCatalog struct {
	CoinBalance int64            `json:"coinBalance"`
	Vouchers    []models.Voucher `json:"vouchers"`
}

func (s *Service) VoucherCatalog(ctx context.Context, userID int64) (VoucherCatalog, error) {
	st, err := s.load(ctx, userID)
	if err != nil {
		return VoucherCatalog{}, err
	}
	return VoucherCatalog{CoinBalance: st.Profile.CoinBalance, Vouchers: Vouchers()}, nil
}

func (s *Service) voucherCode(merchant string) string {
	var b strings.Builder
	b.WriteString(strings.ToUpper(strings.ReplaceAll(merchant, " ", "")))
	b.WriteByte('-')
	for range voucherCodeLength {
		b.WriteByte(codeAlphabet[s.randN(int64(len(codeAlphabet)))])
	}
	return b.String()
}

// RedeemVoucher exchanges coins for a voucher code valid for 30 days.
func (s *Service) RedeemVoucher(ctx context.Context, userID int64, voucherID string) (models.UserVoucher, error) {
	v, ok := findVoucher(voucherID)
	if !ok {
		return models.UserVoucher{}, ErrNotFound
	}
	var out models.UserVoucher
	_, err := s.update(ctx, userID, func(l *ledger) error {
		if l.st.Profile.CoinBalance < v.CoinCost {
			return fmt.Errorf("%w: need %d coins", ErrInsufficientCoins, v.CoinCost)
		}
		l.st.Profile.CoinBalance -= v.CoinCost
		out = models.UserVoucher{
			ID:           l.newID(),
			VoucherID:    v.ID,
			MerchantName: v.MerchantName,
			MerchantLogo: v.MerchantLogo,
			Description:  v.Description,
			Code:         s.voucherCode(v.MerchantName),
			ExpiryDate:   l.now.AddDate(0, 0, voucherValidDays),
		}
		l.st.Vouchers = append([]models.UserVoucher{out}, l.st.Vouchers...)
		l.notify(models.Transaction{
			Type:        models.TxCoin,
			Direction:   models.Debit,
			Amount:      decimal.NewFromInt(v.CoinCost),
			Description: "Redeemed voucher " + v.MerchantName,
		})
		return nil
	})
	if err != nil {
		return models.UserVoucher{}, err
	}
	return out, nil
}

func (s *Service) MyVouchers(ctx context.Context, userID int64) ([]models.UserVoucher, error) {
	st, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return st.Vouchers, nil
}

// UseVoucher marks an owned voucher as spent.
func (s *Service) UseVoucher(ctx context.Context, userID int64, id string) (models.UserVoucher, error) {
	var out models.UserVoucher
	_, err := s.update(ctx, userID, func(l *ledger) error {
		for i := range l.st.Vouchers {
			v := &l.st.Vouchers[i]
			if v.ID != id {
				continue
			}
			if v.IsUsed || l.now.After(v.ExpiryDate) {
				return ErrVoucherUnavailable
			}
			v.IsUsed = true
			out = *v
			return nil
		}
		return ErrNotFound
	})
	if err != nil {
		return models.UserVoucher{}, err
	}
	return out, nil
}
