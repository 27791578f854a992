// Package divergence compares a company's revenue trajectory against its
// price trajectory over matching fiscal periods and classifies the gap.
package divergence

import (
	"errors"
	"fmt"
	"sort"

	"ValueScope/internal/model"
)

// ErrInsufficientData is returned when fewer than two periods overlap between
// the revenue and price series. Callers must branch on it and must not render
// a valuation signal.
var ErrInsufficientData = errors.New("divergence: fewer than 2 overlapping periods")

// gapThreshold is the percentage-point gap between revenue change and price
// change beyond which the signal leaves "fair value". A fixed tuning
// constant, not statistically calibrated.
const gapThreshold = 10.0

// YearKey encodes a fiscal year as a period key. Keys are zero-padded so
// that lexicographic order is chronological order.
func YearKey(year int) string { return fmt.Sprintf("%04d", year) }

// QuarterKey encodes a fiscal quarter, e.g. "2023-Q2".
func QuarterKey(year, quarter int) string { return fmt.Sprintf("%04d-Q%d", year, quarter) }

// Compute normalizes both series to index 100 at the first common period and
// classifies the gap between their latest period-over-period changes.
// Only periods present in both series participate; when more than maxPoints
// remain, only the most recent maxPoints are kept.
func Compute(revenue, price map[string]float64, maxPoints int) (*model.DivergenceResult, error) {
	periods := commonPeriods(revenue, price)
	if maxPoints > 0 && len(periods) > maxPoints {
		periods = periods[len(periods)-maxPoints:]
	}
	if len(periods) < 2 {
		return nil, ErrInsufficientData
	}

	revVals := make([]float64, len(periods))
	priceVals := make([]float64, len(periods))
	for i, p := range periods {
		revVals[i] = revenue[p]
		priceVals[i] = price[p]
	}

	result := &model.DivergenceResult{
		Periods:      periods,
		RevenueIndex: indexTo100(revVals),
		PriceIndex:   indexTo100(priceVals),
	}

	n := len(periods)
	result.RevenueChangePct = pctChange(revVals[n-2], revVals[n-1])
	result.PriceChangePct = pctChange(priceVals[n-2], priceVals[n-1])

	gap := result.RevenueChangePct - result.PriceChangePct
	switch {
	case gap > gapThreshold:
		result.Signal = model.SignalUndervalued
	case gap < -gapThreshold:
		result.Signal = model.SignalOvervalued
	default:
		result.Signal = model.SignalFairValue
	}
	return result, nil
}

// commonPeriods returns the keys present in both series in chronological
// order. Period keys are fixed-width, so a plain sort suffices.
func commonPeriods(revenue, price map[string]float64) []string {
	periods := make([]string, 0, len(revenue))
	for p := range revenue {
		if _, ok := price[p]; ok {
			periods = append(periods, p)
		}
	}
	sort.Strings(periods)
	return periods
}

// indexTo100 rebases a series so its first value equals 100. A zero base is
// substituted with 1: the index then reflects raw magnitude, a documented
// approximation that downstream consumers rely on.
func indexTo100(vals []float64) []float64 {
	base := vals[0]
	if base == 0 {
		base = 1
	}
	idx := make([]float64, len(vals))
	for i, v := range vals {
		idx[i] = v / base * 100
	}
	return idx
}

// pctChange returns the percentage change from prev to last, with the same
// zero guard as indexTo100.
func pctChange(prev, last float64) float64 {
	if prev == 0 {
		prev = 1
	}
	return (last - prev) / prev * 100
}
