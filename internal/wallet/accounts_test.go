package wallet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankLogoURL(t *testing.T) {
	assert.Equal(t, "https://api.vietqr.io/img/VIETCOM.png", BankLogoURL("Vietcombank"))
	assert.Equal(t, "https://api.vietqr.io/img/TECHCOM.png", BankLogoURL("Techcom Bank"))
	assert.Equal(t, "https://api.vietqr.io/img/ACB.png", BankLogoURL("ACB"))
}

func TestLinkedAccounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.openWallet(t, 1, "mai")

	acc, err := f.svc.LinkAccount(ctx, 1, LinkAccountInput{BankName: "Vietcombank", AccountNumber: "0071000123", AccountHolder: "nguyen thi mai"})
	require.NoError(t, err)
	assert.NotEmpty(t, acc.ID)
	assert.Equal(t, "NGUYEN THI MAI", acc.AccountHolder)

	_, err = f.svc.LinkAccount(ctx, 1, LinkAccountInput{BankName: "vietcombank", AccountNumber: "0071000123", AccountHolder: "x"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.LinkAccount(ctx, 1, LinkAccountInput{BankName: "ACB"})
	require.ErrorIs(t, err, ErrInvalidInput)

	list, err := f.svc.ListAccounts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, f.svc.UnlinkAccount(ctx, 1, acc.ID))
	require.ErrorIs(t, f.svc.UnlinkAccount(ctx, 1, acc.ID), ErrNotFound)

	list, err = f.svc.ListAccounts(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}
