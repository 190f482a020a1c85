package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/respitrack/pkg/domain/interfaces"
	"github.com/secmon-lab/respitrack/pkg/domain/model"
	"github.com/secmon-lab/respitrack/pkg/domain/types"
)

const (
	xAxisLabel = "Date"
	yAxisLabel = "Number of Cases"
)

// DashboardOption is a functional option for configuring Dashboard
type DashboardOption func(*Dashboard)

// WithConfig sets the dashboard configuration
func WithConfig(cfg *model.Config) DashboardOption {
	return func(d *Dashboard) {
		if cfg != nil {
			d.config = cfg
		}
	}
}

// Dashboard runs the load, build, filter and aggregate pipeline. Every call
// reads the dataset again; nothing is cached between calls.
type Dashboard struct {
	dataset interfaces.Dataset
	config  *model.Config
}

// NewDashboard creates a new Dashboard use case
func NewDashboard(dataset interfaces.Dataset, opts ...DashboardOption) *Dashboard {
	d := &Dashboard{
		dataset: dataset,
		config:  model.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Config returns the dashboard configuration
func (d *Dashboard) Config() *model.Config {
	return d.config
}

// DatasetName returns the name of the underlying dataset
func (d *Dashboard) DatasetName() string {
	return d.dataset.Name()
}

// Table loads the dataset and builds the weekly records of the configured region
func (d *Dashboard) Table(ctx context.Context) ([]model.WeeklyRecord, error) {
	raw, err := d.dataset.Load(ctx)
	if err != nil {
		return nil, err
	}

	records, err := BuildTable(raw, d.config.Region)
	if err != nil {
		return nil, err
	}

	ctxlog.From(ctx).Debug("Weekly table built",
		"region", d.config.Region,
		"weeks", len(records),
	)
	return records, nil
}

// Filtered returns the records inside the resolved selection together with that range
func (d *Dashboard) Filtered(ctx context.Context, sel model.Selection) ([]model.WeeklyRecord, model.DateRange, error) {
	records, err := d.Table(ctx)
	if err != nil {
		return nil, model.DateRange{}, err
	}

	span, err := Span(records)
	if err != nil {
		return nil, model.DateRange{}, err
	}

	selected := sel.Resolve(span)
	return FilterRange(records, selected.Start, selected.End), selected, nil
}

// displays returns the display settings of the selected series in selection
// order, or every configured series when none is selected
func (d *Dashboard) displays(sel model.Selection) ([]model.SeriesDisplay, error) {
	if len(sel.Series) == 0 {
		return d.config.Series, nil
	}

	result := make([]model.SeriesDisplay, 0, len(sel.Series))
	for _, id := range sel.Series {
		display := d.config.FindSeries(id)
		if display == nil {
			return nil, goerr.New("series is not configured",
				goerr.V("series", id),
				goerr.T(model.ErrTagInvalidSelection))
		}
		result = append(result, *display)
	}
	return result, nil
}

// OverviewChart returns the chart of the full data span
func (d *Dashboard) OverviewChart(ctx context.Context) (*model.LineChart, error) {
	records, err := d.Table(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, goerr.New("dataset has no weeks", goerr.T(model.ErrTagEmptySeries))
	}
	return d.overviewChart(records), nil
}

// FilteredChart returns the chart of the selected range
func (d *Dashboard) FilteredChart(ctx context.Context, sel model.Selection) (*model.LineChart, error) {
	displays, err := d.displays(sel)
	if err != nil {
		return nil, err
	}

	filtered, selected, err := d.Filtered(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(filtered) == 0 {
		return nil, goerr.New("no weeks in selected range",
			goerr.V("start", selected.StartString()),
			goerr.V("end", selected.EndString()),
			goerr.T(model.ErrTagEmptySeries),
			goerr.T(model.ErrTagEmptySelection))
	}
	return d.filteredChart(filtered, displays), nil
}

// View builds everything one dashboard render needs. An empty selection
// suppresses the filtered chart and the statistics instead of failing.
func (d *Dashboard) View(ctx context.Context, sel model.Selection) (*model.DashboardView, error) {
	displays, err := d.displays(sel)
	if err != nil {
		return nil, err
	}

	records, err := d.Table(ctx)
	if err != nil {
		return nil, err
	}

	latest, err := Latest(records)
	if err != nil {
		return nil, err
	}
	span, err := Span(records)
	if err != nil {
		return nil, err
	}

	selected := sel.Resolve(span)
	filtered := FilterRange(records, selected.Start, selected.End)

	view := &model.DashboardView{
		Title:         d.config.Title,
		Subtitle:      d.config.Subtitle,
		Region:        d.config.Region,
		LatestDate:    latest.Date,
		Metrics:       metrics(records, latest, displays),
		Overview:      d.overviewChart(records),
		Span:          span,
		Selection:     selected,
		SeriesFilter:  sel.Series,
		FilteredWeeks: len(filtered),
	}

	if len(filtered) == 0 {
		ctxlog.From(ctx).Debug("Selected range is empty, statistics suppressed",
			"start", selected.StartString(),
			"end", selected.EndString(),
		)
		return view, nil
	}

	view.Filtered = d.filteredChart(filtered, displays)
	ids := make([]types.Series, len(displays))
	for i, s := range displays {
		ids[i] = s.ID
	}
	stats, err := AggregateAll(filtered, ids...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to aggregate selected range", goerr.T(model.ErrTagEmptySeries))
	}
	view.Stats = make([]model.SeriesPanel, 0, len(displays))
	for _, s := range displays {
		view.Stats = append(view.Stats, model.SeriesPanel{
			Label: s.Label,
			Stats: stats[s.ID],
		})
	}

	return view, nil
}

func metrics(records []model.WeeklyRecord, latest model.WeeklyRecord, displays []model.SeriesDisplay) []model.Metric {
	metrics := make([]model.Metric, 0, len(displays))
	for _, s := range displays {
		label := s.MetricLabel
		if label == "" {
			label = s.Label + " Cases"
		}
		metrics = append(metrics, model.Metric{
			Series: s.ID,
			Label:  label,
			Value:  latest.Count(s.ID),
			Trend:  TrendOf(records, s.ID),
		})
	}
	return metrics
}

func (d *Dashboard) overviewChart(records []model.WeeklyRecord) *model.LineChart {
	title := fmt.Sprintf("%s County Respiratory Virus Cases - Historical Trends", d.config.Region)
	return lineChart(title, records, d.config.Series)
}

func (d *Dashboard) filteredChart(records []model.WeeklyRecord, displays []model.SeriesDisplay) *model.LineChart {
	return lineChart("Respiratory Viruses in Selected Date Range", records, displays)
}

func lineChart(title string, records []model.WeeklyRecord, displays []model.SeriesDisplay) *model.LineChart {
	chart := &model.LineChart{
		Title:  title,
		XLabel: xAxisLabel,
		YLabel: yAxisLabel,
		Series: make([]model.ChartSeries, 0, len(displays)),
	}
	for _, s := range displays {
		chart.Series = append(chart.Series, model.ChartSeries{
			Series: s.ID,
			Label:  s.Label,
			Color:  s.Color,
			Points: seriesPoints(records, s.ID),
		})
	}
	return chart
}

func seriesPoints(records []model.WeeklyRecord, series types.Series) []model.Point {
	points := make([]model.Point, len(records))
	for i, rec := range records {
		points[i] = model.Point{Date: rec.Date, Value: rec.Count(series)}
	}
	return points
}
