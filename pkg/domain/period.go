package domain

import dErrors "github.com/john-holland/heycern-m87hey/pkg/domain-errors"

// Period is a domain value identifying one of the historical Earth epochs the
// pipeline can visualize.
//
// Usage: construct via ParsePeriod at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type Period string

// Supported periods, in chronological order.
const (
	PeriodEarlyEarth  Period = "early_earth"
	PeriodArchaean    Period = "archaean"
	PeriodProterozoic Period = "proterozoic"
	PeriodCambrian    Period = "cambrian"
	PeriodTriassic    Period = "triassic"
	PeriodCretaceous  Period = "cretaceous"
)

// periodOrder is the single source of truth for valid periods and their
// chronological position. Evolution runs iterate in this order.
var periodOrder = map[Period]int{
	PeriodEarlyEarth:  0,
	PeriodArchaean:    1,
	PeriodProterozoic: 2,
	PeriodCambrian:    3,
	PeriodTriassic:    4,
	PeriodCretaceous:  5,
}

// ParsePeriod constructs a Period from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "period cannot be empty")
	}
	p := Period(s)
	if !p.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown period")
	}
	return p, nil
}

// IsValid reports whether the period is one of the supported epochs.
func (p Period) IsValid() bool {
	_, ok := periodOrder[p]
	return ok
}

// String returns the string representation of the period.
func (p Period) String() string {
	return string(p)
}

// Periods returns all supported periods in chronological order,
// oldest first.
func Periods() []Period {
	out := make([]Period, len(periodOrder))
	for p, i := range periodOrder {
		out[i] = p
	}
	return out
}
