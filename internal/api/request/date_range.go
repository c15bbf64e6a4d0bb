package request

import (
	"fmt"

	"github.com/safespace/risk-dashboard/internal/apperrors"
	"github.com/safespace/risk-dashboard/internal/dataset"
	"github.com/safespace/risk-dashboard/internal/model"
)

// ParseDateRange extracts an inclusive date window from start_date and end_date
// query parameters. A missing bound is taken from defaults.
//
// Dates may be YYYY-MM-DD or RFC3339. Returns an error wrapping
// ErrInvalidDateRange if a date does not parse or start is after end.
func ParseDateRange(startParam, endParam string, defaults model.DateRange) (model.DateRange, error) {
	r := defaults

	if startParam != "" {
		start, err := dataset.ParseDate(startParam)
		if err != nil {
			return model.DateRange{}, fmt.Errorf("%w: start_date: %w", apperrors.ErrInvalidDateRange, err)
		}
		r.Start = start
	}

	if endParam != "" {
		end, err := dataset.ParseDate(endParam)
		if err != nil {
			return model.DateRange{}, fmt.Errorf("%w: end_date: %w", apperrors.ErrInvalidDateRange, err)
		}
		r.End = end
	}

	if r.Start.After(r.End) {
		return model.DateRange{}, fmt.Errorf("%w: start_date %s is after end_date %s", apperrors.ErrInvalidDateRange,
			r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	}

	return r, nil
}
