package models

import "time"

type RewardTask struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Coins         int64  `json:"coins"`
	TargetCount   int    `json:"targetCount"`
	CurrentCount  int    `json:"currentCount"`
	LastResetDate string `json:"lastResetDate"`
}

type Voucher struct {
	ID           string `json:"id"`
	MerchantName string `json:"merchantName"`
	MerchantLogo string `json:"merchantLogo"`
	Description  string `json:"description"`
	CoinCost     int64  `json:"coinCost"`
}

type UserVoucher struct {
	ID           string    `json:"id"`
	VoucherID    string    `json:"voucherId"`
	MerchantName string    `json:"merchantName"`
	MerchantLogo string    `json:"merchantLogo"`
	Description  string    `json:"description"`
	Code         string    `json:"code"`
	ExpiryDate   time.Time `json:"expiryDate"`
	IsUsed       bool      `json:"isUsed"`
}
