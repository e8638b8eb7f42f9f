// Package report contains the financial aggregation and reporting use cases.
package report

import (
	"time"

	domainerror "github.com/fintrack/backend/internal/domain/error"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// epochFloor is the lower bound substituted for a missing explicit "from" date.
var epochFloor = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Period preset keywords.
const (
	PresetLast7Days  = "last7days"
	PresetLast30Days = "last30days"
	PresetThisMonth  = "thismonth"
	PresetLastMonth  = "lastmonth"
	PresetThisYear   = "thisyear"
)

// Period is the inclusive [start, end] date window an aggregation is scoped to.
type Period struct {
	Start time.Time
	End   time.Time
}

// IsEmpty reports whether the window matches no dates. A caller-supplied
// start after end is treated as an empty window, not an error.
func (p Period) IsEmpty() bool {
	return p.Start.After(p.End)
}

// PeriodRequest describes how a caller asks for a report window: a named
// preset, explicit YYYY-MM-DD bounds, or nothing at all.
type PeriodRequest struct {
	Preset   string
	FromDate string
	ToDate   string
}

// ResolvePeriod translates a period request into a concrete date window
// relative to today. Malformed explicit dates and unknown presets are hard
// errors; everything else resolves to a well-defined window.
func ResolvePeriod(req PeriodRequest, today time.Time) (Period, error) {
	today = truncateToDate(today)

	if req.Preset != "" {
		return resolvePreset(req.Preset, today)
	}

	if req.FromDate == "" && req.ToDate == "" {
		return Period{Start: firstOfMonth(today), End: today}, nil
	}

	start := epochFloor
	if req.FromDate != "" {
		parsed, err := time.Parse(DateLayout, req.FromDate)
		if err != nil {
			return Period{}, domainerror.NewReportError(
				domainerror.ErrCodeInvalidDateFormat,
				"invalid from date",
				domainerror.ErrInvalidDateFormat,
			)
		}
		start = parsed
	}

	end := today
	if req.ToDate != "" {
		parsed, err := time.Parse(DateLayout, req.ToDate)
		if err != nil {
			return Period{}, domainerror.NewReportError(
				domainerror.ErrCodeInvalidDateFormat,
				"invalid to date",
				domainerror.ErrInvalidDateFormat,
			)
		}
		end = parsed
	}

	return Period{Start: start, End: end}, nil
}

func resolvePreset(preset string, today time.Time) (Period, error) {
	switch preset {
	case PresetLast7Days:
		return Period{Start: today.AddDate(0, 0, -7), End: today}, nil
	case PresetLast30Days:
		return Period{Start: today.AddDate(0, 0, -30), End: today}, nil
	case PresetThisMonth:
		return Period{Start: firstOfMonth(today), End: today}, nil
	case PresetLastMonth:
		lastEnd := firstOfMonth(today).AddDate(0, 0, -1)
		return Period{Start: firstOfMonth(lastEnd), End: lastEnd}, nil
	case PresetThisYear:
		return Period{Start: time.Date(today.Year(), 1, 1, 0, 0, 0, 0, today.Location()), End: today}, nil
	default:
		return Period{}, domainerror.NewReportError(
			domainerror.ErrCodeInvalidPeriodPreset,
			"unknown period preset: "+preset,
			domainerror.ErrInvalidPeriodPreset,
		)
	}
}

func firstOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
