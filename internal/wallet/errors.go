package wallet

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrPerTransactionLimit = errors.New("amount exceeds the per-transaction limit")
	ErrDailyLimit          = errors.New("amount exceeds the remaining daily limit")
	ErrNoWallet            = errors.New("wallet not found")
	ErrWalletExists        = errors.New("wallet already exists")
	ErrNotFound            = errors.New("not found")
	ErrNoSavingsGoal       = errors.New("no savings goal set")
	ErrPacketExhausted     = errors.New("lucky money packet fully claimed")
	ErrAlreadyClaimed      = errors.New("lucky money already claimed")
	ErrOwnPacket           = errors.New("cannot claim your own lucky money")
	ErrNotEligible         = errors.New("credit score below loan requirement")
	ErrInsufficientCoins   = errors.New("insufficient coins")
	ErrVoucherUnavailable  = errors.New("voucher already used or expired")
)
