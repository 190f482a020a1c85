package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/respitrack/pkg/domain/types"
)

// SeriesDisplay holds how a series is labelled and drawn
type SeriesDisplay struct {
	ID          types.Series `yaml:"id"`
	Label       string       `yaml:"label"`        // Chart legend and statistics heading
	MetricLabel string       `yaml:"metric_label"` // Top-line metric label
	Color       string       `yaml:"color"`        // Color name or hex code
}

// Validate validates the series display settings
func (s *SeriesDisplay) Validate() error {
	if !s.ID.IsValid() {
		return goerr.New("invalid series ID", goerr.V("id", s.ID))
	}
	if s.Label == "" {
		return goerr.New("series label is required", goerr.V("id", s.ID))
	}
	return nil
}

// Config represents the dashboard configuration
type Config struct {
	Title    string          `yaml:"title"`
	Subtitle string          `yaml:"subtitle,omitempty"`
	Region   string          `yaml:"region"`
	Series   []SeriesDisplay `yaml:"series"`
}

// DefaultConfig returns the configuration of the New York County tracker
func DefaultConfig() *Config {
	return &Config{
		Title:    "Respiratory Virus Tracker - New York County",
		Subtitle: "Real historical flu data (2011-2026) + recent COVID-19 and RSV data from NYC DOH",
		Region:   "New York",
		Series: []SeriesDisplay{
			{ID: types.SeriesFlu, Label: "Flu", MetricLabel: "Flu Cases", Color: "blue"},
			{ID: types.SeriesCovid, Label: "COVID-19", MetricLabel: "COVID-19 Cases", Color: "red"},
			{ID: types.SeriesRSV, Label: "RSV", MetricLabel: "RSV Cases", Color: "green"},
		},
	}
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if c.Title == "" {
		return goerr.New("title is required")
	}
	if c.Region == "" {
		return goerr.New("region is required")
	}
	if len(c.Series) == 0 {
		return goerr.New("at least one series is required")
	}

	idMap := make(map[types.Series]bool)
	for i, s := range c.Series {
		if err := s.Validate(); err != nil {
			return goerr.Wrap(err, "invalid series at index",
				goerr.V("index", i),
				goerr.V("id", s.ID))
		}

		if idMap[s.ID] {
			return goerr.New("duplicate series ID",
				goerr.V("id", s.ID))
		}
		idMap[s.ID] = true
	}

	return nil
}

// FindSeries finds the display settings of a series
func (c *Config) FindSeries(id types.Series) *SeriesDisplay {
	for _, s := range c.Series {
		if s.ID == id {
			result := s
			return &result
		}
	}
	return nil
}
