package testutil

import (
	"context"
	"sync"

	"github.com/safespace/risk-dashboard/internal/model"
)

// MockPriceSource is a mock implementation of service.PriceSource for testing.
// It returns predefined test data instead of reading a file or database.
type MockPriceSource struct {
	mu sync.Mutex

	// MockSeries is the series to return from Load
	MockSeries model.PriceSeries
	// MockError is the error to return from Load
	MockError error
	// LoadCount tracks how many times Load was called
	LoadCount int
}

// NewMockPriceSource creates a new mock source returning series.
func NewMockPriceSource(series model.PriceSeries) *MockPriceSource {
	return &MockPriceSource{MockSeries: series}
}

// Load returns the configured MockSeries and MockError.
func (m *MockPriceSource) Load(_ context.Context) (model.PriceSeries, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LoadCount++
	if m.MockError != nil {
		return nil, m.MockError
	}
	return m.MockSeries, nil
}

// Name identifies the mock in log output.
func (m *MockPriceSource) Name() string {
	return "mock"
}

// Loads returns the number of Load calls so far.
func (m *MockPriceSource) Loads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LoadCount
}

// WithError configures the mock to return the specified error.
func (m *MockPriceSource) WithError(err error) *MockPriceSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MockError = err
	return m
}

// WithSeries configures the mock to return the specified series.
func (m *MockPriceSource) WithSeries(series model.PriceSeries) *MockPriceSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MockSeries = series
	return m
}
