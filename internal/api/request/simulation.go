package request

import (
	"github.com/safespace/risk-dashboard/internal/dataset"
	"github.com/safespace/risk-dashboard/internal/model"
	"github.com/safespace/risk-dashboard/internal/service"
)

// SimulationRequest represents the request body for running a simulation.
// Allocations default to an even split and Amount to 10000 when omitted; empty
// dates default to the dataset bounds.
type SimulationRequest struct {
	Tickers     []string       `json:"tickers"`
	Allocations map[string]int `json:"allocations,omitempty"`
	Amount      *float64       `json:"amount,omitempty"`
	StartDate   string         `json:"startDate,omitempty"`
	EndDate     string         `json:"endDate,omitempty"`
	Alignment   string         `json:"alignment,omitempty"`
}

// ToModel converts the request into engine parameters, applying the defaults of
// omitted fields. Zero dates are left for the engine to fill from the dataset.
func (r SimulationRequest) ToModel() (model.SimulationRequest, error) {
	out := model.SimulationRequest{
		Tickers:     r.Tickers,
		Allocations: model.AllocationSet(r.Allocations),
		Amount:      service.DefaultAmount,
		Alignment:   model.Alignment(r.Alignment),
	}
	if r.Allocations == nil {
		out.Allocations = service.DefaultAllocations(r.Tickers)
	}
	if r.Amount != nil {
		out.Amount = *r.Amount
	}

	var err error
	if r.StartDate != "" {
		if out.Range.Start, err = dataset.ParseDate(r.StartDate); err != nil {
			return model.SimulationRequest{}, err
		}
	}
	if r.EndDate != "" {
		if out.Range.End, err = dataset.ParseDate(r.EndDate); err != nil {
			return model.SimulationRequest{}, err
		}
	}

	return out, nil
}
