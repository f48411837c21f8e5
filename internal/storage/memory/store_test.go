package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
	"github.com/hongminglow/vi-sinh-loi-be/internal/storage"
)

func TestCreateUserRejectsDuplicates(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateUser(ctx, models.User{Username: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	_, err = s.CreateUser(ctx, models.User{Username: "ALICE", Email: "other@example.com"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	found, err := s.FindByUsernameOrEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = s.FindByID(ctx, 42)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUsernameLookupIgnoresCase(t *testing.T) {
	s := New()
	ctx := context.Background()
	created, err := s.CreateUser(ctx, models.User{Username: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	for _, identifier := range []string{"Alice", "alice", "ALICE", "Alice@Example.com"} {
		found, err := s.FindByUsernameOrEmail(ctx, identifier)
		require.NoError(t, err, identifier)
		assert.Equal(t, created.ID, found.ID, identifier)
	}
	found, err := s.FindByUsername(ctx, "aLiCe")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	found, err = s.FindByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestCreateWalletReportsTakenNumber(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.CreateWallet(ctx, models.WalletState{UserID: 1, Profile: models.Wallet{WalletID: "1111"}}))

	err := s.CreateWallet(ctx, models.WalletState{UserID: 1, Profile: models.Wallet{WalletID: "2222"}})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	err = s.CreateWallet(ctx, models.WalletState{UserID: 2, Profile: models.Wallet{WalletID: "1111"}})
	assert.ErrorIs(t, err, storage.ErrWalletNumberTaken)
}

func TestInTxRollsBackOnError(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.CreateWallet(ctx, models.WalletState{UserID: 1, Balance: decimal.NewFromInt(100)}))

	boom := errors.New("boom")
	err := s.InTx(ctx, func(tx storage.Tx) error {
		w, err := tx.Wallet(ctx, 1)
		if err != nil {
			return err
		}
		w.Balance = decimal.Zero
		if err := tx.SaveWallet(ctx, w); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	w, err := s.GetWallet(ctx, 1)
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(decimal.NewFromInt(100)), "balance changed to %s", w.Balance)
}

func TestInTxCommitsWalletAndPacket(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.CreateWallet(ctx, models.WalletState{UserID: 7, Balance: decimal.NewFromInt(100)}))

	err := s.InTx(ctx, func(tx storage.Tx) error {
		w, err := tx.Wallet(ctx, 7)
		if err != nil {
			return err
		}
		w.Balance = decimal.NewFromInt(40)
		if err := tx.SaveWallet(ctx, w); err != nil {
			return err
		}
		return tx.SavePacket(ctx, models.LuckyMoneyPacket{
			ShareID:      "share-1",
			OwnerID:      7,
			TotalAmount:  decimal.NewFromInt(60),
			Quantity:     3,
			CreationDate: time.Now(),
		})
	})
	require.NoError(t, err)

	w, err := s.GetWallet(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "40", w.Balance.String())

	packets, err := s.ListPacketsByOwner(ctx, 7)
	require.NoError(t, err)
	require.Len(t, packets, 1)
	assert.Equal(t, int64(7), packets[0].OwnerID)

	require.NoError(t, s.DeleteWallet(ctx, 7))
	_, err = s.GetPacket(ctx, "share-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetWalletReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.CreateWallet(ctx, models.WalletState{
		UserID:       3,
		Transactions: []models.Transaction{{ID: "tx-1", Description: "first"}},
	}))

	w, err := s.GetWallet(ctx, 3)
	require.NoError(t, err)
	w.Transactions[0].Description = "mutated"

	again, err := s.GetWallet(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "first", again.Transactions[0].Description)
}
