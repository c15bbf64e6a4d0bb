package apperrors

import "errors"

// Simulation request errors represent requests the engine refuses to run.
// These errors are fatal to the call and no partial result is produced.
var (
	// ErrAllocationTotal indicates that the allocation percentages do not total exactly 100.
	ErrAllocationTotal = errors.New("allocations must total 100%")

	// ErrNoTickers indicates that a simulation was requested without any ticker.
	ErrNoTickers = errors.New("at least one ticker is required")

	// ErrMissingAllocation indicates a selected ticker without an allocation percentage.
	ErrMissingAllocation = errors.New("missing allocation for ticker")

	// ErrInvalidAllocation indicates an allocation percentage outside 0-100.
	ErrInvalidAllocation = errors.New("allocation must be between 0 and 100")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidAlignment indicates an unknown return alignment mode.
	ErrInvalidAlignment = errors.New("invalid return alignment")
)

// Data errors represent problems with the price data backing a request.
var (
	// ErrInsufficientData indicates fewer than two observations for a ticker in the window.
	// The ticker is skipped and reported; the simulation continues.
	ErrInsufficientData = errors.New("not enough data")

	// ErrDataLoad indicates the configured dataset could not be read or parsed.
	// It is recovered by substituting synthetic prices and never surfaces to callers.
	ErrDataLoad = errors.New("failed to load price dataset")

	// ErrTickerNotFound indicates that no price data exists for the requested ticker.
	ErrTickerNotFound = errors.New("ticker not found")

	// ErrEmptyDataset indicates that a dataset parsed correctly but held no rows.
	ErrEmptyDataset = errors.New("price dataset is empty")
)

// Loan application errors.
var (
	ErrInvalidCreditScore = errors.New("credit score must be between 300 and 850")
	ErrInvalidLoanTerm    = errors.New("loan term must be between 1 and 30 years")
	ErrInvalidRate        = errors.New("interest rate must be between 0 and 15 percent")
	ErrInvalidLoanAmount  = errors.New("loan amount must be at least 1000")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrievePrices = errors.New("failed to retrieve prices")
	ErrFailedToRunSimulation  = errors.New("failed to run simulation")
	ErrFailedToRenderChart    = errors.New("failed to render chart")
	ErrFailedToImportPrices   = errors.New("failed to import prices")
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
	ErrFailedToEncodeResponse = errors.New("failed to encode response")
)
