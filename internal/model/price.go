package model

import (
	"sort"
	"time"
)

// PricePoint is one closing price observation for a ticker.
type PricePoint struct {
	Date       time.Time `json:"date"`
	Ticker     string    `json:"ticker"`
	ClosePrice float64   `json:"closePrice"`
}

// PriceSeries is an ordered set of observations across any number of tickers.
type PriceSeries []PricePoint

// DataSource tells whether a series came from the configured dataset or the synthetic generator.
type DataSource string

const (
	SourceDataset   DataSource = "dataset"
	SourceSynthetic DataSource = "synthetic"
)

// DateRange is an inclusive window of dates.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the inclusive window.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Filter returns the observations of ticker inside r, sorted by date ascending.
func (s PriceSeries) Filter(ticker string, r DateRange) PriceSeries {
	out := PriceSeries{}
	for _, p := range s {
		if p.Ticker == ticker && r.Contains(p.Date) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Tickers returns the distinct tickers in the series, sorted.
func (s PriceSeries) Tickers() []string {
	seen := make(map[string]struct{})
	tickers := []string{}
	for _, p := range s {
		if _, ok := seen[p.Ticker]; !ok {
			seen[p.Ticker] = struct{}{}
			tickers = append(tickers, p.Ticker)
		}
	}
	sort.Strings(tickers)
	return tickers
}

// Bounds returns the earliest and latest dates in the series.
// ok is false for an empty series.
func (s PriceSeries) Bounds() (r DateRange, ok bool) {
	if len(s) == 0 {
		return DateRange{}, false
	}
	r = DateRange{Start: s[0].Date, End: s[0].Date}
	for _, p := range s[1:] {
		if p.Date.Before(r.Start) {
			r.Start = p.Date
		}
		if p.Date.After(r.End) {
			r.End = p.Date
		}
	}
	return r, true
}

// Closes returns the closing prices in series order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, p := range s {
		closes[i] = p.ClosePrice
	}
	return closes
}

// PriceViolation flags an observation that breaks a dataset invariant.
type PriceViolation struct {
	Ticker string    `json:"ticker"`
	Date   time.Time `json:"date"`
	Reason string    `json:"reason"`
}

// PriceImport summarizes a dataset import into the price store.
type PriceImport struct {
	Rows    int      `json:"rows"`
	Tickers []string `json:"tickers"`
}
