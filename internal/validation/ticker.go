package validation

import (
	"fmt"
	"regexp"
)

var tickerPattern = regexp.MustCompile(`^[A-Za-z0-9.^\-]{1,16}$`)

// ValidateTicker checks that ticker looks like an exchange symbol.
func ValidateTicker(ticker string) error {
	if !tickerPattern.MatchString(ticker) {
		return fmt.Errorf("invalid ticker symbol: %q", ticker)
	}
	return nil
}
