package otp

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), time.Minute, nil)

	ch, err := svc.Issue(ctx, 7)
	require.NoError(t, err)
	require.Len(t, ch.Code, 6)
	n, err := strconv.Atoi(ch.Code)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, codeMin)
	assert.LessOrEqual(t, n, codeMax)

	require.NoError(t, svc.Verify(ctx, 7, ch.ID, ch.Code))
	require.ErrorIs(t, svc.Verify(ctx, 7, ch.ID, ch.Code), ErrInvalidCode, "single use")
}

func TestVerifyRejects(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), time.Minute, nil)

	require.ErrorIs(t, svc.Verify(ctx, 7, "", ""), ErrMissing)

	ch, err := svc.Issue(ctx, 7)
	require.NoError(t, err)
	require.ErrorIs(t, svc.Verify(ctx, 8, ch.ID, ch.Code), ErrInvalidCode, "other user")

	ch, err = svc.Issue(ctx, 7)
	require.NoError(t, err)
	wrong := "000000"
	require.ErrorIs(t, svc.Verify(ctx, 7, ch.ID, wrong), ErrInvalidCode)
	require.ErrorIs(t, svc.Verify(ctx, 7, ch.ID, ch.Code), ErrInvalidCode, "a wrong guess burns the challenge")
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Put(ctx, "c1", Record{UserID: 1, Code: "123456"}, time.Minute))
	now = now.Add(2 * time.Minute)

	rec, err := store.Take(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, rec)
}
