package wallet

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
)

const frequentRecipientLimit = 8

type TransferInput struct {
	Recipient string
	Amount    decimal.Decimal
	Message   string
}

// SendToWallet moves money to another wallet identified by recipient.
func (s *Service) SendToWallet(ctx context.Context, userID int64, in TransferInput) (models.Transaction, error) {
	recipient := strings.TrimSpace(in.Recipient)
	if recipient == "" {
		return models.Transaction{}, fmt.Errorf("%w: recipient is required", ErrInvalidInput)
	}
	return s.spend(ctx, userID, in.Amount, func(l *ledger) models.Transaction {
		tx := l.debit(models.Transaction{
			Type:        models.TxOutgoing,
			Amount:      in.Amount,
			Description: orDefault(in.Message, "Money transfer"),
			Recipient:   recipient,
		})
		l.advanceTask(TaskTransfers)
		return tx
	})
}

// BankTransfer sends money to an external bank account. bankInfo is free text,
// usually "<bank>, <account number>, <holder>".
func (s *Service) BankTransfer(ctx context.Context, userID int64, in TransferInput) (models.Transaction, error) {
	recipient := strings.TrimSpace(in.Recipient)
	if recipient == "" {
		return models.Transaction{}, fmt.Errorf("%w: bank information is required", ErrInvalidInput)
	}
	return s.spend(ctx, userID, in.Amount, func(l *ledger) models.Transaction {
		return l.debit(models.Transaction{
			Type:        models.TxOutgoing,
			Amount:      in.Amount,
			Description: orDefault(in.Message, "Transfer to "+bankName(recipient)),
			Recipient:   recipient,
		})
	})
}

func (s *Service) Withdraw(ctx context.Context, userID int64, in TransferInput) (models.Transaction, error) {
	recipient := strings.TrimSpace(in.Recipient)
	if recipient == "" {
		return models.Transaction{}, fmt.Errorf("%w: bank information is required", ErrInvalidInput)
	}
	return s.spend(ctx, userID, in.Amount, func(l *ledger) models.Transaction {
		return l.debit(models.Transaction{
			Type:        models.TxWithdrawal,
			Amount:      in.Amount,
			Description: orDefault(in.Message, "Withdraw to "+bankName(recipient)),
			Recipient:   recipient,
		})
	})
}

// TopUp credits money from an outside source. Top-ups are not limit checked.
func (s *Service) TopUp(ctx context.Context, userID int64, amount decimal.Decimal, source string) (models.Transaction, error) {
	if !wholeAmount(amount) {
		return models.Transaction{}, ErrInvalidAmount
	}
	source = strings.TrimSpace(source)
	var out models.Transaction
	_, err := s.update(ctx, userID, func(l *ledger) error {
		desc := "Top up"
		if source != "" {
			desc = "Top up from " + bankName(source)
		}
		out = l.credit(models.Transaction{
			Type:        models.TxTopUp,
			Amount:      amount,
			Description: desc,
			Sender:      source,
		})
		return nil
	})
	return out, err
}

// spend runs a limit-checked debit. build must record exactly the debit it validated.
func (s *Service) spend(ctx context.Context, userID int64, amount decimal.Decimal, build func(l *ledger) models.Transaction) (models.Transaction, error) {
	var out models.Transaction
	_, err := s.update(ctx, userID, func(l *ledger) error {
		if err := checkDebit(*l.st, amount, l.now); err != nil {
			return err
		}
		out = build(l)
		return nil
	})
	return out, err
}

// TransactionFilter narrows the history listing. Limit 0 means no limit.
type TransactionFilter struct {
	Type   models.TransactionType
	Limit  int
	Offset int
}

// ListTransactions returns the history newest first.
func (s *Service) ListTransactions(ctx context.Context, userID int64, f TransactionFilter) ([]models.Transaction, error) {
	if f.Type != "" && !f.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", ErrInvalidInput, f.Type)
	}
	if f.Limit < 0 || f.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidInput)
	}
	st, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Transaction, 0, len(st.Transactions))
	for _, tx := range st.Transactions {
		if f.Type == "" || tx.Type == f.Type {
			out = append(out, tx)
		}
	}
	if f.Offset >= len(out) {
		return []models.Transaction{}, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *Service) GetTransaction(ctx context.Context, userID int64, id string) (models.Transaction, error) {
	st, err := s.load(ctx, userID)
	if err != nil {
		return models.Transaction{}, err
	}
	for _, tx := range st.Transactions {
		if tx.ID == id {
			return tx, nil
		}
	}
	return models.Transaction{}, ErrNotFound
}

// FrequentRecipient is a quick-send shortcut built from past transfers.
type FrequentRecipient struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	Count     int    `json:"count"`
}

// FrequentRecipients ranks outgoing recipients by transfer count.
// Ties keep the order of the most recent transfer.
func (s *Service) FrequentRecipients(ctx context.Context, userID int64) ([]FrequentRecipient, error) {
	st, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	var order []string
	for _, tx := range st.Transactions {
		if tx.Type != models.TxOutgoing || tx.Recipient == "" {
			continue
		}
		if counts[tx.Recipient] == 0 {
			order = append(order, tx.Recipient)
		}
		counts[tx.Recipient]++
	}
	out := make([]FrequentRecipient, 0, len(order))
	for _, r := range order {
		out = append(out, FrequentRecipient{ID: r, Name: r, AvatarURL: defaultAvatar(r), Count: counts[r]})
	}
	slices.SortStableFunc(out, func(a, b FrequentRecipient) int { return b.Count - a.Count })
	if len(out) > frequentRecipientLimit {
		out = out[:frequentRecipientLimit]
	}
	return out, nil
}

// bankName returns the text before the first comma of a free-form bank description.
func bankName(info string) string {
	name, _, _ := strings.Cut(info, ",")
	return strings.TrimSpace(name)
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}
