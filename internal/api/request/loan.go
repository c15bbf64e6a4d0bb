package request

// LoanAssessmentRequest represents the request body for a loan risk assessment.
type LoanAssessmentRequest struct {
	LoanAmount   float64 `json:"loanAmount"`
	TermYears    int     `json:"termYears"`
	InterestRate float64 `json:"interestRate"`
	CreditScore  int     `json:"creditScore"`
	AnnualIncome float64 `json:"annualIncome"`
	MonthlyDebt  float64 `json:"monthlyDebt"`
}
