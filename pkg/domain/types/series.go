package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// Series identifies one of the tracked case-count sequences
type Series string

const (
	SeriesFlu   Series = "flu"
	SeriesCovid Series = "covid"
	SeriesRSV   Series = "rsv"
)

// AllSeries returns every series in display order
func AllSeries() []Series {
	return []Series{SeriesFlu, SeriesCovid, SeriesRSV}
}

// String returns the string representation of the series
func (s Series) String() string {
	return string(s)
}

// IsValid checks if the series is one of the tracked series
func (s Series) IsValid() bool {
	switch s {
	case SeriesFlu, SeriesCovid, SeriesRSV:
		return true
	default:
		return false
	}
}

// ParseSeries converts a string into a Series
func ParseSeries(s string) (Series, error) {
	series := Series(s)
	if !series.IsValid() {
		return "", goerr.New("unknown series", goerr.V("series", s))
	}
	return series, nil
}
