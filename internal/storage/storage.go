package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrWalletNumberTaken means another wallet already uses the generated wallet number.
var ErrWalletNumberTaken = errors.New("wallet number already taken")

// UserStore captures persistence operations needed by the auth handlers.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByUsernameOrEmail(ctx context.Context, identifier string) (models.User, error)
}

// Tx is a unit of work. Reads through a Tx lock the record until the Tx ends;
// writes become visible only when the enclosing InTx callback returns nil.
type Tx interface {
	Wallet(ctx context.Context, userID int64) (models.WalletState, error)
	SaveWallet(ctx context.Context, state models.WalletState) error
	Packet(ctx context.Context, shareID string) (models.LuckyMoneyPacket, error)
	SavePacket(ctx context.Context, packet models.LuckyMoneyPacket) error
}

// WalletStore persists wallet documents and lucky money packets.
type WalletStore interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
	CreateWallet(ctx context.Context, state models.WalletState) error
	GetWallet(ctx context.Context, userID int64) (models.WalletState, error)
	DeleteWallet(ctx context.Context, userID int64) error
	ListWalletUserIDs(ctx context.Context) ([]int64, error)
	GetPacket(ctx context.Context, shareID string) (models.LuckyMoneyPacket, error)
	ListPacketsByOwner(ctx context.Context, userID int64) ([]models.LuckyMoneyPacket, error)
}
