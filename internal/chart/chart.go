// Package chart renders price and portfolio line charts as PNG images.
package chart

import (
	"fmt"
	"strings"
	"time"

	"github.com/vicanso/go-charts/v2"

	"github.com/safespace/risk-dashboard/internal/apperrors"
	"github.com/safespace/risk-dashboard/internal/model"
	"github.com/safespace/risk-dashboard/internal/report"
)

const (
	width  = 900
	height = 500
)

// CumulativeReturns renders the running sum of the portfolio's combined returns.
func CumulativeReturns(run model.SimulationRun) ([]byte, error) {
	p := run.Result.Portfolio
	if p == nil || len(p.CumulativeReturns) == 0 {
		return nil, fmt.Errorf("%w: no portfolio returns to plot", apperrors.ErrInsufficientData)
	}

	title := fmt.Sprintf("Cumulative Returns (%s)", strings.Join(run.Request.Tickers, ", "))
	subtitle := fmt.Sprintf("Return: %s | Sharpe: %s | Vol: %s",
		report.Fixed(p.TotalPercentChange, 2)+"%", report.Fixed(p.SharpeRatio, 2), report.Fixed(p.Volatility, 4))
	if run.Risk != nil {
		subtitle += fmt.Sprintf(" | Risk: %s (%s)", report.Fixed(run.Risk.Score, 2), run.Risk.Level)
	}

	return render(title, subtitle, labels(p.Dates), p.CumulativeReturns)
}

// PriceHistory renders the closing prices of one ticker.
func PriceHistory(ticker string, series model.PriceSeries) ([]byte, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: no prices for %s", apperrors.ErrInsufficientData, ticker)
	}

	dates := make([]time.Time, len(series))
	for i, p := range series {
		dates[i] = p.Date
	}

	subtitle := fmt.Sprintf("%s to %s", dates[0].Format("2006-01-02"), dates[len(dates)-1].Format("2006-01-02"))
	return render(ticker+" Close Price", subtitle, labels(dates), series.Closes())
}

func render(title, subtitle string, xLabels []string, values []float64) ([]byte, error) {
	yMin, yMax := values[0], values[0]
	for _, v := range values {
		if v < yMin {
			yMin = v
		}
		if v > yMax {
			yMax = v
		}
	}

	padding := (yMax - yMin) * 0.05
	if padding == 0 {
		padding = 0.05
	}
	yMin -= padding
	yMax += padding

	splitNum := 6
	if len(xLabels) <= 30 {
		splitNum = len(xLabels) / 3
		if splitNum < 3 {
			splitNum = 3
		}
	}

	p, err := charts.LineRender(
		[][]float64{values},
		charts.TitleTextOptionFunc(title, subtitle),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        xLabels,
			SplitNumber: splitNum,
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{
			Min:         &yMin,
			Max:         &yMax,
			DivideCount: 5,
		}),
		charts.WidthOptionFunc(width),
		charts.HeightOptionFunc(height),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRenderChart, err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRenderChart, err)
	}

	return buf, nil
}

// labels formats x-axis dates: full dates for short series, month and year otherwise.
func labels(dates []time.Time) []string {
	layout := "2006-01-02"
	if len(dates) > 60 {
		layout = "Jan '06"
	}

	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(layout)
	}
	return out
}
