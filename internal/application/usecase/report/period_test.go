package report

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/fintrack/backend/internal/domain/error"
)

func TestResolvePeriod_Presets(t *testing.T) {
	today := date(2024, time.March, 15)

	tests := []struct {
		name      string
		preset    string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "last7days",
			preset:    PresetLast7Days,
			wantStart: date(2024, time.March, 8),
			wantEnd:   today,
		},
		{
			name:      "last30days",
			preset:    PresetLast30Days,
			wantStart: date(2024, time.February, 14),
			wantEnd:   today,
		},
		{
			name:      "thismonth",
			preset:    PresetThisMonth,
			wantStart: date(2024, time.March, 1),
			wantEnd:   today,
		},
		{
			name:      "lastmonth covers the full previous calendar month",
			preset:    PresetLastMonth,
			wantStart: date(2024, time.February, 1),
			wantEnd:   date(2024, time.February, 29),
		},
		{
			name:      "thisyear",
			preset:    PresetThisYear,
			wantStart: date(2024, time.January, 1),
			wantEnd:   today,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePeriod(PeriodRequest{Preset: tt.preset}, today)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Start.Equal(tt.wantStart) {
				t.Errorf("expected start %v, got %v", tt.wantStart, got.Start)
			}
			if !got.End.Equal(tt.wantEnd) {
				t.Errorf("expected end %v, got %v", tt.wantEnd, got.End)
			}
		})
	}
}

func TestResolvePeriod_LastMonthAcrossYearBoundary(t *testing.T) {
	today := date(2024, time.January, 10)

	got, err := ResolvePeriod(PeriodRequest{Preset: PresetLastMonth}, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Start.Equal(date(2023, time.December, 1)) {
		t.Errorf("expected start 2023-12-01, got %v", got.Start)
	}
	if !got.End.Equal(date(2023, time.December, 31)) {
		t.Errorf("expected end 2023-12-31, got %v", got.End)
	}
}

func TestResolvePeriod_DefaultWindow(t *testing.T) {
	today := date(2024, time.March, 15)

	got, err := ResolvePeriod(PeriodRequest{}, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Start.Equal(date(2024, time.March, 1)) {
		t.Errorf("expected start of current month, got %v", got.Start)
	}
	if !got.End.Equal(today) {
		t.Errorf("expected end today, got %v", got.End)
	}
}

func TestResolvePeriod_ExplicitDates(t *testing.T) {
	today := date(2024, time.March, 15)

	t.Run("both dates provided", func(t *testing.T) {
		got, err := ResolvePeriod(PeriodRequest{FromDate: "2024-01-10", ToDate: "2024-02-20"}, today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Start.Equal(date(2024, time.January, 10)) || !got.End.Equal(date(2024, time.February, 20)) {
			t.Errorf("unexpected period: %v - %v", got.Start, got.End)
		}
	})

	t.Run("missing from date falls back to floor", func(t *testing.T) {
		got, err := ResolvePeriod(PeriodRequest{ToDate: "2024-02-20"}, today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Start.Equal(date(2000, time.January, 1)) {
			t.Errorf("expected floor start, got %v", got.Start)
		}
	})

	t.Run("missing to date falls back to today", func(t *testing.T) {
		got, err := ResolvePeriod(PeriodRequest{FromDate: "2024-01-10"}, today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.End.Equal(today) {
			t.Errorf("expected end today, got %v", got.End)
		}
	})

	t.Run("start after end yields an empty period, not an error", func(t *testing.T) {
		got, err := ResolvePeriod(PeriodRequest{FromDate: "2024-03-10", ToDate: "2024-03-01"}, today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.IsEmpty() {
			t.Error("expected empty period")
		}
	})
}

func TestResolvePeriod_Errors(t *testing.T) {
	today := date(2024, time.March, 15)

	tests := []struct {
		name     string
		req      PeriodRequest
		wantErr  error
		wantCode domainerror.ReportErrorCode
	}{
		{
			name:     "out of range month",
			req:      PeriodRequest{FromDate: "2024-13-01"},
			wantErr:  domainerror.ErrInvalidDateFormat,
			wantCode: domainerror.ErrCodeInvalidDateFormat,
		},
		{
			name:     "non-date text",
			req:      PeriodRequest{ToDate: "yesterday"},
			wantErr:  domainerror.ErrInvalidDateFormat,
			wantCode: domainerror.ErrCodeInvalidDateFormat,
		},
		{
			name:     "unknown preset",
			req:      PeriodRequest{Preset: "fortnight"},
			wantErr:  domainerror.ErrInvalidPeriodPreset,
			wantCode: domainerror.ErrCodeInvalidPeriodPreset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolvePeriod(tt.req, today)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}

			var reportErr *domainerror.ReportError
			if !errors.As(err, &reportErr) {
				t.Fatalf("expected ReportError, got %T", err)
			}
			if reportErr.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, reportErr.Code)
			}
		})
	}
}
