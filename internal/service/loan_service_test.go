package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safespace/risk-dashboard/internal/apperrors"
	"github.com/safespace/risk-dashboard/internal/model"
	"github.com/safespace/risk-dashboard/internal/service"
	"github.com/safespace/risk-dashboard/internal/testutil"
)

func TestClassifyLoan(t *testing.T) {
	tests := []struct {
		name        string
		creditScore int
		dti         float64
		want        model.LoanRisk
	}{
		{"subprime score is high risk regardless of dti", 500, 0.0, model.LoanRiskHigh},
		{"subprime score with high dti", 500, 0.9, model.LoanRiskHigh},
		{"prime score with low dti is low risk", 750, 0.1, model.LoanRiskLow},
		{"fair score is medium risk", 650, 0.1, model.LoanRiskMedium},
		{"score 580 is medium risk", 580, 0.1, model.LoanRiskMedium},
		{"score 700 is medium risk", 700, 0.1, model.LoanRiskMedium},
		{"score 701 is low risk", 701, 0.1, model.LoanRiskLow},
		{"dti of 0.3 is medium risk", 800, 0.3, model.LoanRiskMedium},
		{"dti of 0.5 is medium risk", 800, 0.5, model.LoanRiskMedium},
		{"dti above 0.5 is high risk", 800, 0.51, model.LoanRiskHigh},
		{"dti just below 0.3 is low risk", 800, 0.29, model.LoanRiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.ClassifyLoan(tt.creditScore, tt.dti))
		})
	}
}

func TestDebtToIncome(t *testing.T) {
	t.Run("annualizes monthly debt", func(t *testing.T) {
		assert.InDelta(t, 0.1, service.DebtToIncome(500, 60000), 1e-9)
	})

	t.Run("stays finite for zero income", func(t *testing.T) {
		dti := service.DebtToIncome(100, 0)
		assert.Greater(t, dti, 1e9)
		assert.Equal(t, model.LoanRiskHigh, service.ClassifyLoan(800, dti))
	})

	t.Run("is zero without debt", func(t *testing.T) {
		assert.Equal(t, 0.0, service.DebtToIncome(0, 0))
	})
}

func TestMonthlyPayment(t *testing.T) {
	assert.InDelta(t, 1199.10, service.MonthlyPayment(200000, 6, 30), 0.01)
	assert.InDelta(t, 833.33, service.MonthlyPayment(100000, 0, 10), 0.01)
	assert.Equal(t, 0.0, service.MonthlyPayment(100000, 5, 0))
}

func TestLoanService_Assess(t *testing.T) {
	svc := testutil.NewTestLoanService(t)

	valid := model.LoanApplication{
		LoanAmount:   200000,
		TermYears:    30,
		InterestRate: 6,
		CreditScore:  750,
		AnnualIncome: 120000,
		MonthlyDebt:  1000,
	}

	t.Run("classifies a valid application", func(t *testing.T) {
		assessment, err := svc.Assess(valid)
		require.NoError(t, err)

		assert.InDelta(t, 0.1, assessment.DebtToIncome, 1e-9)
		assert.Equal(t, model.LoanRiskLow, assessment.Risk)
		assert.InDelta(t, 1199.10, assessment.MonthlyPayment, 0.01)
		assert.InDelta(t, 1199.10*360-200000, assessment.TotalInterest, 5)
	})

	t.Run("rejects invalid applications", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*model.LoanApplication)
			want   error
		}{
			{"credit score below 300", func(a *model.LoanApplication) { a.CreditScore = 299 }, apperrors.ErrInvalidCreditScore},
			{"credit score above 850", func(a *model.LoanApplication) { a.CreditScore = 851 }, apperrors.ErrInvalidCreditScore},
			{"zero term", func(a *model.LoanApplication) { a.TermYears = 0 }, apperrors.ErrInvalidLoanTerm},
			{"term above 30 years", func(a *model.LoanApplication) { a.TermYears = 31 }, apperrors.ErrInvalidLoanTerm},
			{"negative rate", func(a *model.LoanApplication) { a.InterestRate = -1 }, apperrors.ErrInvalidRate},
			{"rate above 15", func(a *model.LoanApplication) { a.InterestRate = 15.5 }, apperrors.ErrInvalidRate},
			{"loan below minimum", func(a *model.LoanApplication) { a.LoanAmount = 999 }, apperrors.ErrInvalidLoanAmount},
			{"negative income", func(a *model.LoanApplication) { a.AnnualIncome = -1 }, apperrors.ErrNegativeAmount},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				app := valid
				tt.mutate(&app)

				_, err := svc.Assess(app)
				assert.ErrorIs(t, err, tt.want)
			})
		}
	})
}
