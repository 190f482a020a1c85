package model

import (
	"time"

	"github.com/secmon-lab/respitrack/pkg/domain/types"
)

// DateRange is an inclusive interval of calendar dates
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange creates a DateRange truncated to calendar days
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{
		Start: TruncateDay(start),
		End:   TruncateDay(end),
	}
}

// Valid reports whether Start is not after End
func (r DateRange) Valid() bool {
	return !r.Start.After(r.End)
}

// Contains reports whether t falls inside the range, both bounds included
func (r DateRange) Contains(t time.Time) bool {
	day := TruncateDay(t)
	return !day.Before(r.Start) && !day.After(r.End)
}

// StartString returns Start formatted as YYYY-MM-DD
func (r DateRange) StartString() string {
	return r.Start.Format(DateLayout)
}

// EndString returns End formatted as YYYY-MM-DD
func (r DateRange) EndString() string {
	return r.End.Format(DateLayout)
}

// Selection is a date range as supplied by the user. A zero bound means the
// corresponding bound of the data span. An empty Series means every
// configured series.
type Selection struct {
	Start  time.Time
	End    time.Time
	Series []types.Series
}

// Resolve fills unset bounds from span
func (s Selection) Resolve(span DateRange) DateRange {
	start, end := s.Start, s.End
	if start.IsZero() {
		start = span.Start
	}
	if end.IsZero() {
		end = span.End
	}
	return NewDateRange(start, end)
}
