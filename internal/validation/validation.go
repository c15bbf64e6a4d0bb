// Package validation checks API request payloads before they reach the services.
// Failures are reported per field in an *Error.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/safespace/risk-dashboard/internal/dataset"
)

// validateDate parses an optional date field, recording a field error when it does not parse.
func validateDate(errors map[string]string, field, value string) (time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, false
	}
	t, err := dataset.ParseDate(value)
	if err != nil {
		errors[field] = fmt.Sprintf("%s must be YYYY-MM-DD or RFC3339", field)
		return time.Time{}, false
	}
	return t, true
}
