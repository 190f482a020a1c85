package config

import (
	"log/slog"

	"github.com/secmon-lab/respitrack/pkg/service/chart"
	"github.com/urfave/cli/v3"
)

// Chart holds chart rendering configuration
type Chart struct {
	Format string
	Width  int
	Height int
}

// Flags returns CLI flags for Chart configuration
func (c *Chart) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "chart-format",
			Usage:       "Chart image format (png, svg)",
			Category:    "Chart",
			Value:       string(chart.FormatPNG),
			Sources:     cli.EnvVars("RESPITRACK_CHART_FORMAT"),
			Destination: &c.Format,
		},
		&cli.IntFlag{
			Name:        "chart-width",
			Usage:       "Chart width in pixels",
			Category:    "Chart",
			Value:       chart.DefaultWidth,
			Sources:     cli.EnvVars("RESPITRACK_CHART_WIDTH"),
			Destination: &c.Width,
		},
		&cli.IntFlag{
			Name:        "chart-height",
			Usage:       "Chart height in pixels",
			Category:    "Chart",
			Value:       chart.DefaultHeight,
			Sources:     cli.EnvVars("RESPITRACK_CHART_HEIGHT"),
			Destination: &c.Height,
		},
	}
}

// Configure creates the chart renderer
func (c *Chart) Configure() (*chart.Renderer, error) {
	format, err := chart.ParseFormat(c.Format)
	if err != nil {
		return nil, err
	}
	return chart.New(chart.WithFormat(format), chart.WithSize(c.Width, c.Height)), nil
}

// LogValue returns structured log value
func (c Chart) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("format", c.Format),
		slog.Int("width", c.Width),
		slog.Int("height", c.Height),
	)
}
