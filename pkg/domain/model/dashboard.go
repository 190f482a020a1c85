package model

import (
	"time"

	"github.com/secmon-lab/respitrack/pkg/domain/types"
)

// Metric is one entry of the top-line metrics panel
type Metric struct {
	Series types.Series `json:"series"`
	Label  string       `json:"label"`
	Value  int          `json:"value"`
	Trend  types.Trend  `json:"trend"`
}

// Point is a single (date, value) sample of a chart series
type Point struct {
	Date  time.Time `json:"date"`
	Value int       `json:"value"`
}

// ChartSeries is one labelled line of a chart
type ChartSeries struct {
	Series types.Series `json:"series"`
	Label  string       `json:"label"`
	Color  string       `json:"color"`
	Points []Point      `json:"points"`
}

// LineChart describes a chart independently of how it is drawn
type LineChart struct {
	Title  string        `json:"title"`
	XLabel string        `json:"x_label"`
	YLabel string        `json:"y_label"`
	Series []ChartSeries `json:"series"`
}

// IsEmpty reports whether the chart has no points to draw
func (c *LineChart) IsEmpty() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return false
		}
	}
	return true
}

// SeriesPanel is the statistics panel of one series
type SeriesPanel struct {
	Label string      `json:"label"`
	Stats SeriesStats `json:"stats"`
}

// DashboardView holds everything needed to render the dashboard once
type DashboardView struct {
	Title         string         `json:"title"`
	Subtitle      string         `json:"subtitle,omitempty"`
	Region        string         `json:"region"`
	LatestDate    time.Time      `json:"latest_date"`
	Metrics       []Metric       `json:"metrics"`
	Overview      *LineChart     `json:"overview"`
	Span          DateRange      `json:"span"`
	Selection     DateRange      `json:"selection"`
	SeriesFilter  []types.Series `json:"series_filter,omitempty"`
	FilteredWeeks int            `json:"filtered_weeks"`
	Filtered      *LineChart     `json:"filtered,omitempty"`
	Stats         []SeriesPanel  `json:"stats,omitempty"` // nil when the filtered view is empty
}

// StatsSuppressed reports whether the statistics panel must not be shown
func (v *DashboardView) StatsSuppressed() bool {
	return v.Stats == nil
}
