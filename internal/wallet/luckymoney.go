package wallet

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
	"github.com/hongminglow/vi-sinh-loi-be/internal/storage"
)

const (
	shareIDLength   = 10
	shareIDAttempts = 5
	shareAlphabet   = "abcdefghijklmnopqrstuvwxyz0123456789"
)

type LuckyMoneyInput struct {
	Amount      decimal.Decimal
	Quantity    int
	Type        models.SplitType
	Message     string
	IsAnonymous bool
}

// ClaimResult is what a claimant receives.
type ClaimResult struct {
	Packet      models.LuckyMoneyPacket `json:"packet"`
	Amount      decimal.Decimal         `json:"amount"`
	Transaction models.Transaction      `json:"transaction"`
}

// SplitAmount decides the next claim of a packet. Equal packets pay
// floor(total/quantity); random packets pay a uniform amount that leaves at
// least one unit for every remaining claimant, and the last claimant takes the rest.
func SplitAmount(p models.LuckyMoneyPacket, randN func(int64) int64) decimal.Decimal {
	remainingClaims := int64(p.Quantity - len(p.Claims))
	if remainingClaims <= 0 {
		return decimal.Zero
	}
	remaining := p.TotalAmount.Sub(p.Claimed())
	var amount decimal.Decimal
	switch {
	case p.Type == models.SplitEqual:
		amount = p.TotalAmount.Div(decimal.NewFromInt(int64(p.Quantity))).Floor()
	case remainingClaims == 1:
		amount = remaining
	default:
		span := remaining.Sub(decimal.NewFromInt(remainingClaims)).IntPart()
		if span <= 0 {
			amount = decimal.NewFromInt(1)
		} else {
			amount = decimal.NewFromInt(randN(span) + 1)
		}
	}
	if amount.LessThan(decimal.NewFromInt(1)) {
		amount = decimal.NewFromInt(1)
	}
	if amount.GreaterThan(remaining) {
		amount = remaining
	}
	return amount
}

func (s *Service) shareCode() string {
	var b strings.Builder
	b.Grow(shareIDLength)
	for range shareIDLength {
		b.WriteByte(shareAlphabet[s.randN(int64(len(shareAlphabet)))])
	}
	return b.String()
}

// CreateLuckyMoney debits the packet total and stores a shareable packet.
func (s *Service) CreateLuckyMoney(ctx context.Context, userID int64, in LuckyMoneyInput) (models.LuckyMoneyPacket, error) {
	if !wholeAmount(in.Amount) {
		return models.LuckyMoneyPacket{}, ErrInvalidAmount
	}
	if in.Quantity < 1 {
		return models.LuckyMoneyPacket{}, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	if in.Type == "" {
		in.Type = models.SplitEqual
	}
	if in.Type != models.SplitEqual && in.Type != models.SplitRandom {
		return models.LuckyMoneyPacket{}, fmt.Errorf("%w: unknown split type %q", ErrInvalidInput, in.Type)
	}
	message := orDefault(in.Message, "Happy new year!")

	var (
		packet models.LuckyMoneyPacket
		events []models.Transaction
	)
	err := s.store.InTx(ctx, func(tx storage.Tx) error {
		st, err := tx.Wallet(ctx, userID)
		if err != nil {
			return mapStoreErr(err)
		}
		l := &ledger{st: &st, now: s.clock(), newID: s.newID}
		if in.Amount.GreaterThan(st.Balance) {
			return ErrInsufficientBalance
		}
		if in.Amount.LessThan(decimal.NewFromInt(int64(in.Quantity))) {
			return fmt.Errorf("%w: amount must cover at least 1 per recipient", ErrInvalidAmount)
		}
		if err := checkDebit(st, in.Amount, l.now); err != nil {
			return err
		}

		shareID, err := s.freeShareID(ctx, tx)
		if err != nil {
			return err
		}
		packet = models.LuckyMoneyPacket{
			ID:            l.newID(),
			ShareID:       shareID,
			OwnerID:       userID,
			CreatorUserID: st.Profile.WalletID,
			CreatorName:   st.Profile.Name,
			CreatorAvatar: st.Profile.AvatarURL,
			TotalAmount:   in.Amount,
			Quantity:      in.Quantity,
			Type:          in.Type,
			Message:       message,
			Claims:        []models.Claim{},
			CreationDate:  l.now,
			IsAnonymous:   in.IsAnonymous,
		}
		l.debit(models.Transaction{
			Type:        models.TxLuckyMoney,
			Amount:      in.Amount,
			Description: "Lucky money: " + message,
			Recipient:   strconv.Itoa(in.Quantity) + " people",
		})
		if err := tx.SavePacket(ctx, packet); err != nil {
			return err
		}
		if err := tx.SaveWallet(ctx, st); err != nil {
			return mapStoreErr(err)
		}
		events = l.events
		return nil
	})
	if err != nil {
		return models.LuckyMoneyPacket{}, err
	}
	s.publish(ctx, userID, events)
	return packet, nil
}

func (s *Service) freeShareID(ctx context.Context, tx storage.Tx) (string, error) {
	for range shareIDAttempts {
		id := s.shareCode()
		_, err := tx.Packet(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			return id, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", errors.New("could not allocate a share id")
}

// ClaimLuckyMoney pays the caller the next share of a packet. The packet row is
// locked before the claimant's wallet so concurrent claims serialise on the packet.
func (s *Service) ClaimLuckyMoney(ctx context.Context, userID int64, shareID string) (ClaimResult, error) {
	var (
		res    ClaimResult
		events []models.Transaction
	)
	err := s.store.InTx(ctx, func(tx storage.Tx) error {
		packet, err := tx.Packet(ctx, shareID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		st, err := tx.Wallet(ctx, userID)
		if err != nil {
			return mapStoreErr(err)
		}
		if len(packet.Claims) >= packet.Quantity || !packet.Claimed().LessThan(packet.TotalAmount) {
			return ErrPacketExhausted
		}
		for _, c := range packet.Claims {
			if c.UserID == st.Profile.WalletID {
				return ErrAlreadyClaimed
			}
		}
		if packet.OwnerID == userID {
			return ErrOwnPacket
		}

		l := &ledger{st: &st, now: s.clock(), newID: s.newID}
		amount := SplitAmount(packet, s.randN)
		packet.Claims = append(packet.Claims, models.Claim{
			UserID:     st.Profile.WalletID,
			UserName:   st.Profile.Name,
			UserAvatar: st.Profile.AvatarURL,
			Amount:     amount,
			ClaimDate:  l.now,
		})
		from := packet.CreatorName
		if packet.IsAnonymous {
			from = "Anonymous"
		}
		credited := l.credit(models.Transaction{
			Type:        models.TxLuckyMoney,
			Amount:      amount,
			Description: "Lucky money from " + from,
			Sender:      from,
		})
		if err := tx.SavePacket(ctx, packet); err != nil {
			return err
		}
		if err := tx.SaveWallet(ctx, st); err != nil {
			return mapStoreErr(err)
		}
		res = ClaimResult{Packet: publicPacket(packet, userID), Amount: amount, Transaction: credited}
		events = l.events
		return nil
	})
	if err != nil {
		return ClaimResult{}, err
	}
	s.publish(ctx, userID, events)
	return res, nil
}

// GetPacket returns a packet by share id. Anonymous packets hide the creator from everyone but the owner.
func (s *Service) GetPacket(ctx context.Context, userID int64, shareID string) (models.LuckyMoneyPacket, error) {
	p, err := s.store.GetPacket(ctx, shareID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.LuckyMoneyPacket{}, ErrNotFound
		}
		return models.LuckyMoneyPacket{}, err
	}
	return publicPacket(p, userID), nil
}

func (s *Service) ListMyPackets(ctx context.Context, userID int64) ([]models.LuckyMoneyPacket, error) {
	return s.store.ListPacketsByOwner(ctx, userID)
}

func publicPacket(p models.LuckyMoneyPacket, viewer int64) models.LuckyMoneyPacket {
	if p.IsAnonymous && p.OwnerID != viewer {
		p.CreatorUserID = ""
		p.CreatorName = "Anonymous"
		p.CreatorAvatar = ""
	}
	return p
}
