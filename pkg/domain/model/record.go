package model

import (
	"time"

	"github.com/secmon-lab/respitrack/pkg/domain/types"
)

// DateLayout is the ISO calendar date format used for dataset keys and query parameters
const DateLayout = "2006-01-02"

// CaseCounts holds the weekly case counts of one region
type CaseCounts struct {
	Flu   int `json:"flu_cases"`
	Covid int `json:"covid_cases"`
	RSV   int `json:"rsv_cases"`
}

// RawDataset maps an ISO date string to per-region case counts
type RawDataset map[string]map[string]CaseCounts

// WeeklyRecord is one week of case counts for the configured region
type WeeklyRecord struct {
	Date  time.Time `json:"date"`
	Flu   int       `json:"flu"`
	Covid int       `json:"covid"`
	RSV   int       `json:"rsv"`
}

// Count returns the value of the given series
func (r WeeklyRecord) Count(series types.Series) int {
	switch series {
	case types.SeriesFlu:
		return r.Flu
	case types.SeriesCovid:
		return r.Covid
	case types.SeriesRSV:
		return r.RSV
	default:
		return 0
	}
}

// DateString formats the record date back to its dataset key
func (r WeeklyRecord) DateString() string {
	return r.Date.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// TruncateDay drops the time of day so dates compare as calendar days
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
