package wallet

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
)

const (
	TaskTransfers    = "task-001"
	TaskFirstSavings = "task-002"
)

func initialTasks() []models.RewardTask {
	return []models.RewardTask{
		{
			ID:          TaskTransfers,
			Title:       "Send money 5 times",
			Description: "Make 5 transfers to other wallets to earn a reward.",
			Coins:       50,
			TargetCount: 5,
		},
		{
			ID:          TaskFirstSavings,
			Title:       "First savings",
			Description: "Add money to your savings goal for the first time.",
			Coins:       100,
			TargetCount: 1,
		},
	}
}

var voucherCatalog = []models.Voucher{
	{ID: "v-01", MerchantName: "Highlands Coffee", MerchantLogo: "https://cdn.iconscout.com/icon/free/png-256/free-highlands-coffee-3442222-2878220.png", Description: "20K off orders from 50K", CoinCost: 200},
	{ID: "v-02", MerchantName: "The Coffee House", MerchantLogo: "https://cdn.haitrieu.com/wp-content/uploads/2021/11/Logo-The-Coffee-House-H.png", Description: "Buy 1 get 1 (tea line)", CoinCost: 350},
	{ID: "v-03", MerchantName: "Phuc Long", MerchantLogo: "https://static.ybox.vn/2022/4/5/1649124976495-200.png", Description: "15% off the whole bill", CoinCost: 300},
	{ID: "v-04", MerchantName: "KFC", MerchantLogo: "https://upload.wikimedia.org/wikipedia/sco/thumb/b/bf/KFC_logo.svg/2048px-KFC_logo.svg.png", Description: "Free can of Pepsi", CoinCost: 50},
}

var loanCatalog = []models.Loan{
	{
		ID:             "loan-001",
		Name:           "Quick Consumer Loan",
		Description:    "Flexible financing for personal spending, simple paperwork, disbursed within 24h.",
		InterestRate:   decimal.RequireFromString("0.15"),
		MaxAmount:      decimal.NewFromInt(50_000_000),
		MinTerm:        6,
		MaxTerm:        36,
		MinCreditScore: 450,
		Provider:       "Speed Finance",
		Criteria: []string{
			"Vietnamese citizen aged 20-60.",
			"Monthly income of at least 5,000,000 VND.",
			"No bad debt with other credit institutions.",
		},
		Terms: []string{
			"Interest is charged on the declining balance.",
			"Early repayment fee is 2% of the remaining principal.",
			"Overdue interest is 150% of the regular rate.",
		},
	},
	{
		ID:             "loan-002",
		Name:           "0% Shopping Installments",
		Description:    "Shop with partner marketplaces at 0% interest for the first 6 months.",
		InterestRate:   decimal.RequireFromString("0.12"),
		MaxAmount:      decimal.NewFromInt(20_000_000),
		MinTerm:        3,
		MaxTerm:        24,
		MinCreditScore: 600,
		Provider:       "Smart Shopping Partners",
		Criteria: []string{
			"Loyal wallet customer (Silver tier or above).",
			"Good credit history with no overdue debt.",
			"Proof of purchase purpose.",
		},
		Terms: []string{
			"Interest free for the first 6 months on loans under 10,000,000 VND.",
			"12% per year from month 7.",
			"Only valid at partner merchants.",
		},
	},
	{
		ID:             "loan-003",
		Name:           "Tuition Support Loan",
		Description:    "Preferential loan for students and professionals investing in education.",
		InterestRate:   decimal.RequireFromString("0.08"),
		MaxAmount:      decimal.NewFromInt(100_000_000),
		MinTerm:        12,
		MaxTerm:        60,
		MinCreditScore: 680,
		Provider:       "Future Education Fund",
		Criteria: []string{
			"Enrolled in a recognised university, college or course.",
			"Admission letter or student card.",
			"Guarantor required under 22 or without income.",
		},
		Terms: []string{
			"Principal grace period while studying, interest only.",
			"Repayment starts 6 months after graduation.",
			"Fixed preferential rate for the whole term.",
		},
	},
	{
		ID:             "loan-004",
		Name:           "Same-Day Cash Loan",
		Description:    "Urgent cash disbursed within 2 hours.",
		InterestRate:   decimal.RequireFromString("0.35"),
		MaxAmount:      decimal.NewFromInt(10_000_000),
		MinTerm:        1,
		MaxTerm:        3,
		MinCreditScore: 400,
		Provider:       "Lightning Finance",
		Criteria:       []string{"Valid national ID.", "Over 18 years old.", "Verified wallet user."},
		Terms:          []string{"Interest accrues daily.", "High late payment fees.", "No income proof required."},
		Tag:            "same-day",
	},
	{
		ID:             "loan-005",
		Name:           "7-30 Day Advance",
		Description:    "Short-term spending advance repaid in a single payment.",
		InterestRate:   decimal.RequireFromString("0.25"),
		MaxAmount:      decimal.NewFromInt(5_000_000),
		MinTerm:        1,
		MaxTerm:        1,
		MinCreditScore: 500,
		Provider:       "Flexible Finance Services",
		Criteria:       []string{"At least 3 transactions in the last month.", "Aged 18-50."},
		Terms:          []string{"Principal and interest repaid at the end of the term.", "One paid extension allowed."},
		Tag:            "short-term",
	},
}

var billProviders = []models.ServiceProvider{
	{ID: "EVNHCMC", Name: "HCMC Power", LogoURL: "https://portal.cpc.vn/images/logo-cpc.png", Category: "electricity", CustomerIDLabel: "Customer code", CustomerIDPlaceholder: "PE12345678901"},
	{ID: "EVNHN", Name: "Hanoi Power", LogoURL: "https://portal.cpc.vn/images/logo-cpc.png", Category: "electricity", CustomerIDLabel: "Customer code", CustomerIDPlaceholder: "PA09876543210"},
	{ID: "SAWACO", Name: "Gia Dinh Water", LogoURL: "https://upload.wikimedia.org/wikipedia/commons/thumb/d/d2/Logo_T%E1%BB%95ng_c%C3%B4ng_ty_C%E1%BA%A5p_n%C6%B0%E1%BB%9Bc_S%C3%A0i_G%C3%B2n.svg/2048px-Logo_T%E1%BB%95ng_c%C3%B4ng_ty_C%E1%BA%A5p_n%C6%B0%E1%BB%9Bc_S%C3%A0i_G%C3%B2n.svg.png", Category: "water", CustomerIDLabel: "Account book", CustomerIDPlaceholder: "12345678901"},
	{ID: "FPT", Name: "FPT Telecom", LogoURL: "https://inkythuatso.com/uploads/images/2021/11/logo-fpt-telecom-inkythuatso-2-01-25-16-12-07.jpg", Category: "internet", CustomerIDLabel: "Contract number", CustomerIDPlaceholder: "HND123456"},
	{ID: "VNPT", Name: "VNPT", LogoURL: "https://vnpt.com.vn/Design/Image/logo-vnpt.png", Category: "internet", CustomerIDLabel: "Payment code", CustomerIDPlaceholder: "VN12345678"},
	{ID: "KPLUS", Name: "K+ Television", LogoURL: "https://cdn.kplus.vn/Content/Images/logo-kplus.svg", Category: "television", CustomerIDLabel: "Decoder card number", CustomerIDPlaceholder: "1234567890123"},
}

func defaultMessages() []models.DefaultMessage {
	return []models.DefaultMessage{
		{Text: "Lunch money", Icon: "🥪"},
		{Text: "Coffee on me", Icon: "☕️"},
		{Text: "Happy birthday!", Icon: "🎉"},
	}
}

// Vouchers returns the voucher catalog.
func Vouchers() []models.Voucher {
	return slices.Clone(voucherCatalog)
}

// BillProviders returns the supported bill providers.
func BillProviders() []models.ServiceProvider {
	return slices.Clone(billProviders)
}

func findLoan(id string) (models.Loan, bool) {
	for _, loan := range loanCatalog {
		if loan.ID == id {
			return loan, true
		}
	}
	return models.Loan{}, false
}

func findVoucher(id string) (models.Voucher, bool) {
	for _, v := range voucherCatalog {
		if v.ID == id {
			return v, true
		}
	}
	return models.Voucher{}, false
}

func findProvider(id string) (models.ServiceProvider, bool) {
	for _, p := range billProviders {
		if p.ID == id {
			return p, true
		}
	}
	return models.ServiceProvider{}, false
}
