package validation

import (
	"fmt"

	"github.com/safespace/risk-dashboard/internal/api/request"
	"github.com/safespace/risk-dashboard/internal/service"
)

// ValidateLoanAssessment validates a loan assessment request against the input
// ranges of the assessment form.
func ValidateLoanAssessment(req request.LoanAssessmentRequest) error {
	errors := make(map[string]string)

	if req.LoanAmount < service.MinLoanAmount {
		errors["loanAmount"] = fmt.Sprintf("loanAmount must be at least %.0f", service.MinLoanAmount)
	}

	if req.TermYears < service.MinLoanTermYears || req.TermYears > service.MaxLoanTermYears {
		errors["termYears"] = fmt.Sprintf("termYears must be between %d and %d", service.MinLoanTermYears, service.MaxLoanTermYears)
	}

	if req.InterestRate < 0 || req.InterestRate > service.MaxInterestRate {
		errors["interestRate"] = fmt.Sprintf("interestRate must be between 0 and %.0f", service.MaxInterestRate)
	}

	if req.CreditScore < service.MinCreditScore || req.CreditScore > service.MaxCreditScore {
		errors["creditScore"] = fmt.Sprintf("creditScore must be between %d and %d", service.MinCreditScore, service.MaxCreditScore)
	}

	if req.AnnualIncome < 0 {
		errors["annualIncome"] = "annualIncome cannot be negative"
	}

	if req.MonthlyDebt < 0 {
		errors["monthlyDebt"] = "monthlyDebt cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
