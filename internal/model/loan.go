package model

// LoanRisk is the classification of a loan application.
type LoanRisk string

const (
	LoanRiskHigh   LoanRisk = "High Risk"
	LoanRiskMedium LoanRisk = "Medium Risk"
	LoanRiskLow    LoanRisk = "Low Risk"
)

// LoanApplication holds the inputs of the loan risk assessment.
type LoanApplication struct {
	LoanAmount   float64 `json:"loanAmount"`
	TermYears    int     `json:"termYears"`
	InterestRate float64 `json:"interestRate"` // annual, in percent
	CreditScore  int     `json:"creditScore"`
	AnnualIncome float64 `json:"annualIncome"`
	MonthlyDebt  float64 `json:"monthlyDebt"`
}

// LoanAssessment is the classified application.
type LoanAssessment struct {
	Application    LoanApplication `json:"application"`
	DebtToIncome   float64         `json:"debtToIncome"`
	Risk           LoanRisk        `json:"risk"`
	MonthlyPayment float64         `json:"monthlyPayment"`
	TotalInterest  float64         `json:"totalInterest"`
}
