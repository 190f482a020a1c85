package model

import (
	"math"

	"github.com/secmon-lab/respitrack/pkg/domain/types"
)

// SeriesStats holds the aggregate statistics of one series over a set of weeks
type SeriesStats struct {
	Series  types.Series `json:"series"`
	Count   int          `json:"count"`
	Average float64      `json:"average"`
	Peak    int          `json:"peak"`
	Total   int          `json:"total"`
}

// RoundedAverage returns the average rounded to the nearest integer for display
func (s SeriesStats) RoundedAverage() int64 {
	return int64(math.Round(s.Average))
}
