package validation

import (
	"fmt"
	"strings"

	"github.com/safespace/risk-dashboard/internal/api/request"
	"github.com/safespace/risk-dashboard/internal/apperrors"
	"github.com/safespace/risk-dashboard/internal/model"
)

// ValidateSimulationRequest validates a simulation request.
//
// Required fields:
//   - tickers: At least one, no blanks or duplicates
//
// Optional fields:
//   - allocations: One integer 0-100 per selected ticker, totalling exactly 100
//   - amount: Must not be negative
//   - startDate/endDate: YYYY-MM-DD or RFC3339, start not after end
//   - alignment: "date" or "position"
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateSimulationRequest(req request.SimulationRequest) error {
	errors := make(map[string]string)

	selected := make(map[string]bool, len(req.Tickers))
	if len(req.Tickers) == 0 {
		errors["tickers"] = apperrors.ErrNoTickers.Error()
	}
	for _, t := range req.Tickers {
		switch {
		case strings.TrimSpace(t) == "":
			errors["tickers"] = "tickers cannot be blank"
		case selected[t]:
			errors["tickers"] = fmt.Sprintf("duplicate ticker: %s", t)
		}
		selected[t] = true
	}

	if req.Allocations != nil {
		validateAllocations(errors, req.Tickers, selected, req.Allocations)
	}

	if req.Amount != nil && *req.Amount < 0 {
		errors["amount"] = apperrors.ErrNegativeAmount.Error()
	}

	start, hasStart := validateDate(errors, "startDate", req.StartDate)
	end, hasEnd := validateDate(errors, "endDate", req.EndDate)
	if hasStart && hasEnd && start.After(end) {
		errors["dateRange"] = "startDate must not be after endDate"
	}

	switch model.Alignment(req.Alignment) {
	case "", model.AlignByDate, model.AlignByPosition:
	default:
		errors["alignment"] = fmt.Sprintf("invalid alignment: %s", req.Alignment)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func validateAllocations(errors map[string]string, tickers []string, selected map[string]bool, allocations map[string]int) {
	for _, t := range tickers {
		if _, ok := allocations[t]; !ok {
			errors["allocations."+t] = apperrors.ErrMissingAllocation.Error()
		}
	}

	total := 0
	for t, w := range allocations {
		if !selected[t] {
			errors["allocations."+t] = "allocation for a ticker that is not selected"
		}
		if w < 0 || w > 100 {
			errors["allocations."+t] = apperrors.ErrInvalidAllocation.Error()
		}
		total += w
	}

	if total != 100 {
		errors["allocations"] = apperrors.ErrAllocationTotal.Error()
	}
}
