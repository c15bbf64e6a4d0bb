package handlers

import (
	"net/http"

	"github.com/safespace/risk-dashboard/internal/api/request"
	"github.com/safespace/risk-dashboard/internal/api/response"
	"github.com/safespace/risk-dashboard/internal/model"
	"github.com/safespace/risk-dashboard/internal/report"
	"github.com/safespace/risk-dashboard/internal/service"
	"github.com/safespace/risk-dashboard/internal/validation"
)

// LoanHandler handles HTTP requests for loan risk assessments.
type LoanHandler struct {
	loanService *service.LoanService
	formatter   *report.Formatter
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(loanService *service.LoanService, formatter *report.Formatter) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
		formatter:   formatter,
	}
}

// LoanAssessmentResponse is an assessment with its amounts formatted for display.
type LoanAssessmentResponse struct {
	model.LoanAssessment
	MonthlyPaymentDisplay string `json:"monthlyPaymentDisplay"`
	TotalInterestDisplay  string `json:"totalInterestDisplay"`
}

// Assess handles POST requests to classify a loan application.
//
// Endpoint: POST /api/loan/assessment
// Request body: request.LoanAssessmentRequest
// Response: 200 OK with LoanAssessmentResponse
// Error: 400 Bad Request on invalid input
func (h *LoanHandler) Assess(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LoanAssessmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateLoanAssessment(req); err != nil {
		response.RespondValidationError(w, err)
		return
	}

	assessment, err := h.loanService.Assess(model.LoanApplication(req))
	if err != nil {
		response.RespondValidationError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, LoanAssessmentResponse{
		LoanAssessment:        assessment,
		MonthlyPaymentDisplay: h.formatter.Money(assessment.MonthlyPayment),
		TotalInterestDisplay:  h.formatter.Money(assessment.TotalInterest),
	})
}
