package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
	"github.com/hongminglow/vi-sinh-loi-be/internal/storage"
)

// walletNumberConstraint is the default name Postgres gives UNIQUE (wallet_id).
const walletNumberConstraint = "wallets_wallet_id_key"

// CreateWallet inserts the initial wallet document for a user.
func (s *Store) CreateWallet(ctx context.Context, state models.WalletState) error {
	const query = `INSERT INTO wallets (user_id, wallet_id, state) VALUES ($1, $2, $3);`
	if _, err := s.pool.Exec(ctx, query, state.UserID, state.Profile.WalletID, state); err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if constraint == walletNumberConstraint {
				return storage.ErrWalletNumberTaken
			}
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetWallet reads a wallet document without locking it.
func (s *Store) GetWallet(ctx context.Context, userID int64) (models.WalletState, error) {
	return scanWallet(s.pool.QueryRow(ctx, `SELECT state FROM wallets WHERE user_id = $1;`, userID))
}

// DeleteWallet removes the wallet; packets cascade.
func (s *Store) DeleteWallet(ctx context.Context, userID int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM wallets WHERE user_id = $1;`, userID)
	if err != nil {
		return fmt.Errorf("delete wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListWalletUserIDs returns the owners of every wallet, used by the background workers.
func (s *Store) ListWalletUserIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.pool.Query(ctx, `SELECT user_id FROM wallets ORDER BY user_id;`)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("scan wallet ids: %w", err)
	}
	return ids, nil
}

// GetPacket reads a packet by share id.
func (s *Store) GetPacket(ctx context.Context, shareID string) (models.LuckyMoneyPacket, error) {
	return scanPacket(s.pool.QueryRow(ctx, `SELECT owner_user_id, packet FROM lucky_money_packets WHERE share_id = $1;`, shareID))
}

// ListPacketsByOwner returns the packets a user created, newest first.
func (s *Store) ListPacketsByOwner(ctx context.Context, userID int64) ([]models.LuckyMoneyPacket, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT owner_user_id, packet
		FROM lucky_money_packets
		WHERE owner_user_id = $1
		ORDER BY created_at DESC;`, userID)
	if err != nil {
		return nil, fmt.Errorf("list packets: %w", err)
	}
	defer rows.Close()

	packets := []models.LuckyMoneyPacket{}
	for rows.Next() {
		p, err := scanPacket(rows)
		if err != nil {
			return nil, err
		}
		packets = append(packets, p)
	}
	return packets, rows.Err()
}

// InTx runs fn inside a database transaction. Rows read through the Tx are locked FOR UPDATE.
func (s *Store) InTx(ctx context.Context, fn func(tx storage.Tx) error) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(&pgTx{tx: tx})
	})
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) Wallet(ctx context.Context, userID int64) (models.WalletState, error) {
	return scanWallet(t.tx.QueryRow(ctx, `SELECT state FROM wallets WHERE user_id = $1 FOR UPDATE;`, userID))
}

func (t *pgTx) SaveWallet(ctx context.Context, state models.WalletState) error {
	tag, err := t.tx.Exec(ctx, `UPDATE wallets SET state = $2, updated_at = NOW() WHERE user_id = $1;`, state.UserID, state)
	if err != nil {
		return fmt.Errorf("update wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (t *pgTx) Packet(ctx context.Context, shareID string) (models.LuckyMoneyPacket, error) {
	return scanPacket(t.tx.QueryRow(ctx, `SELECT owner_user_id, packet FROM lucky_money_packets WHERE share_id = $1 FOR UPDATE;`, shareID))
}

func (t *pgTx) SavePacket(ctx context.Context, packet models.LuckyMoneyPacket) error {
	const query = `
		INSERT INTO lucky_money_packets (share_id, owner_user_id, packet, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (share_id) DO UPDATE SET packet = EXCLUDED.packet;`
	if _, err := t.tx.Exec(ctx, query, packet.ShareID, packet.OwnerID, packet, packet.CreationDate); err != nil {
		return fmt.Errorf("save packet: %w", err)
	}
	return nil
}

func scanWallet(row pgx.Row) (models.WalletState, error) {
	var state models.WalletState
	if err := row.Scan(&state); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.WalletState{}, storage.ErrNotFound
		}
		return models.WalletState{}, fmt.Errorf("scan wallet: %w", err)
	}
	return state, nil
}

func scanPacket(row pgx.Row) (models.LuckyMoneyPacket, error) {
	var (
		ownerID int64
		packet  models.LuckyMoneyPacket
	)
	if err := row.Scan(&ownerID, &packet); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.LuckyMoneyPacket{}, storage.ErrNotFound
		}
		return models.LuckyMoneyPacket{}, fmt.Errorf("scan packet: %w", err)
	}
	packet.OwnerID = ownerID
	return packet, nil
}
