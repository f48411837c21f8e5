package wallet

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
)

var monthsPerYear = decimal.NewFromInt(12)

// MonthlyPayment is the annuity payment P*r(1+r)^n / ((1+r)^n - 1) with r = annualRate/12,
// rounded to whole units. A zero rate spreads the principal evenly.
func MonthlyPayment(principal, annualRate decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(months))
	r := annualRate.Div(monthsPerYear)
	if r.IsZero() {
		return principal.Div(n).Round(0)
	}
	growth := decimal.NewFromInt(1).Add(r).Pow(n)
	return principal.Mul(r).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1))).Round(0)
}

type LoanOffer struct {
	models.Loan
	Eligible bool `json:"eligible"`
}

type LoanCatalog struct {
	CreditScore int         `json:"creditScore"`
	Loans       []LoanOffer `json:"loans"`
}

type LoanQuote struct {
	LoanID         string          `json:"loanId"`
	Amount         decimal.Decimal `json:"amount"`
	TermMonths     int             `json:"termMonths"`
	InterestRate   decimal.Decimal `json:"interestRate"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TotalRepayment decimal.Decimal `json:"totalRepayment"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
}

// Loans lists the catalog with eligibility for the caller's current credit score.
func (s *Service) Loans(ctx context.Context, userID int64) (LoanCatalog, error) {
	st, err := s.load(ctx, userID)
	if err != nil {
		return LoanCatalog{}, err
	}
	score := CreditScore(st, s.clock())
	out := LoanCatalog{CreditScore: score, Loans: make([]LoanOffer, 0, len(loanCatalog))}
	for _, loan := range loanCatalog {
		out.Loans = append(out.Loans, LoanOffer{Loan: loan, Eligible: score >= loan.MinCreditScore})
	}
	return out, nil
}

// Quote validates amount and term against a product and prices the repayment.
func Quote(loanID string, amount decimal.Decimal, term int) (LoanQuote, error) {
	loan, ok := findLoan(loanID)
	if !ok {
		return LoanQuote{}, ErrNotFound
	}
	if !wholeAmount(amount) || amount.GreaterThan(loan.MaxAmount) {
		return LoanQuote{}, fmt.Errorf("%w: amount must be between 1 and %s", ErrInvalidAmount, loan.MaxAmount)
	}
	if term < loan.MinTerm || term > loan.MaxTerm {
		return LoanQuote{}, fmt.Errorf("%w: term must be between %d and %d months", ErrInvalidInput, loan.MinTerm, loan.MaxTerm)
	}
	monthly := MonthlyPayment(amount, loan.InterestRate, term)
	total := monthly.Mul(decimal.NewFromInt(int64(term)))
	return LoanQuote{
		LoanID:         loan.ID,
		Amount:         amount,
		TermMonths:     term,
		InterestRate:   loan.InterestRate,
		MonthlyPayment: monthly,
		TotalRepayment: total,
		TotalInterest:  total.Sub(amount),
	}, nil
}

// ApplyLoan disburses an approved loan into the balance.
func (s *Service) ApplyLoan(ctx context.Context, userID int64, loanID string, amount decimal.Decimal, term int) (models.LoanContract, error) {
	q, err := Quote(loanID, amount, term)
	if err != nil {
		return models.LoanContract{}, err
	}
	loan, _ := findLoan(loanID)

	var contract models.LoanContract
	_, err = s.update(ctx, userID, func(l *ledger) error {
		if CreditScore(*l.st, l.now) < loan.MinCreditScore {
			return ErrNotEligible
		}
		l.credit(models.Transaction{
			Type:        models.TxLoan,
			Amount:      amount,
			Description: "Loan disbursement: " + loan.Name,
			Sender:      loan.Provider,
		})
		contract = models.LoanContract{
			ID:             l.newID(),
			LoanID:         loan.ID,
			Name:           loan.Name,
			Principal:      amount,
			TermMonths:     term,
			InterestRate:   loan.InterestRate,
			MonthlyPayment: q.MonthlyPayment,
			TotalRepayment: q.TotalRepayment,
			DisbursedAt:    l.now,
		}
		l.st.Loans = append(l.st.Loans, contract)
		return nil
	})
	if err != nil {
		return models.LoanContract{}, err
	}
	return contract, nil
}

func (s *Service) MyLoans(ctx context.Context, userID int64) ([]models.LoanContract, error) {
	st, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return st.Loans, nil
}
