package service

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/safespace/risk-dashboard/internal/apperrors"
	"github.com/safespace/risk-dashboard/internal/model"
)

// Loan classification bounds.
const (
	MinCreditScore      = 300
	MaxCreditScore      = 850
	SubprimeCreditScore = 580
	PrimeCreditScore    = 700

	HighDebtToIncome     = 0.5
	ModerateDebtToIncome = 0.3

	MinLoanAmount    = 1000.0
	MinLoanTermYears = 1
	MaxLoanTermYears = 30
	MaxInterestRate  = 15.0
)

// incomeEpsilon keeps the debt-to-income ratio finite for a zero income.
const incomeEpsilon = 1e-9

// LoanService assesses loan applications.
type LoanService struct {
	log zerolog.Logger
}

// NewLoanService creates a new LoanService.
func NewLoanService(log zerolog.Logger) *LoanService {
	return &LoanService{log: log.With().Str("component", "loan").Logger()}
}

// Assess validates app, then classifies it and computes its repayment schedule totals.
func (s *LoanService) Assess(app model.LoanApplication) (model.LoanAssessment, error) {
	if err := checkLoanApplication(app); err != nil {
		return model.LoanAssessment{}, err
	}

	dti := DebtToIncome(app.MonthlyDebt, app.AnnualIncome)
	payment := MonthlyPayment(app.LoanAmount, app.InterestRate, app.TermYears)

	assessment := model.LoanAssessment{
		Application:    app,
		DebtToIncome:   dti,
		Risk:           ClassifyLoan(app.CreditScore, dti),
		MonthlyPayment: payment,
		TotalInterest:  payment*float64(app.TermYears*12) - app.LoanAmount,
	}

	s.log.Debug().
		Int("credit_score", app.CreditScore).
		Float64("dti", dti).
		Str("risk", string(assessment.Risk)).
		Msg("Loan assessed")

	return assessment, nil
}

// ClassifyLoan applies the first matching rule:
// high risk on a subprime score or a DTI above 0.5, medium risk on a score
// between 580 and 700 or a DTI between 0.3 and 0.5, low risk otherwise.
func ClassifyLoan(creditScore int, dti float64) model.LoanRisk {
	if creditScore < SubprimeCreditScore || dti > HighDebtToIncome {
		return model.LoanRiskHigh
	}
	if creditScore <= PrimeCreditScore || (dti >= ModerateDebtToIncome && dti <= HighDebtToIncome) {
		return model.LoanRiskMedium
	}
	return model.LoanRiskLow
}

// DebtToIncome returns annualized monthly debt over annual income.
func DebtToIncome(monthlyDebt, annualIncome float64) float64 {
	return monthlyDebt * 12 / (annualIncome + incomeEpsilon)
}

// MonthlyPayment returns the fixed payment amortizing amount over termYears at
// the annual percentage rate.
func MonthlyPayment(amount, annualRate float64, termYears int) float64 {
	n := float64(termYears * 12)
	if n == 0 {
		return 0
	}
	r := annualRate / 100 / 12
	if r == 0 {
		return amount / n
	}
	return amount * r / (1 - math.Pow(1+r, -n))
}

func checkLoanApplication(app model.LoanApplication) error {
	if app.CreditScore < MinCreditScore || app.CreditScore > MaxCreditScore {
		return fmt.Errorf("%w: got %d", apperrors.ErrInvalidCreditScore, app.CreditScore)
	}
	if app.TermYears < MinLoanTermYears || app.TermYears > MaxLoanTermYears {
		return fmt.Errorf("%w: got %d", apperrors.ErrInvalidLoanTerm, app.TermYears)
	}
	if app.InterestRate < 0 || app.InterestRate > MaxInterestRate {
		return fmt.Errorf("%w: got %.2f", apperrors.ErrInvalidRate, app.InterestRate)
	}
	if app.LoanAmount < MinLoanAmount {
		return fmt.Errorf("%w: got %.2f", apperrors.ErrInvalidLoanAmount, app.LoanAmount)
	}
	if app.AnnualIncome < 0 || app.MonthlyDebt < 0 {
		return apperrors.ErrNegativeAmount
	}
	return nil
}
