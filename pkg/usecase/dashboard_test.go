package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/respitrack/pkg/domain/model"
	"github.com/secmon-lab/respitrack/pkg/domain/types"
	"github.com/secmon-lab/respitrack/pkg/repository"
	"github.com/secmon-lab/respitrack/pkg/usecase"
)

func newDashboard(raw model.RawDataset) *usecase.Dashboard {
	return usecase.NewDashboard(repository.NewMemory("respiratory_data.json", raw))
}

func TestDashboardViewFullSpan(t *testing.T) {
	ctx := context.Background()
	view, err := newDashboard(threeWeeks()).View(ctx, model.Selection{})
	gt.NoError(t, err).Required()

	gt.Equal(t, view.Title, "Respiratory Virus Tracker - New York County")
	gt.Equal(t, view.LatestDate.Format(model.DateLayout), "2026-01-15")

	gt.A(t, view.Metrics).Length(3)
	gt.Equal(t, view.Metrics[0].Label, "Flu Cases")
	gt.Equal(t, view.Metrics[0].Value, 60)
	gt.Equal(t, view.Metrics[0].Trend, types.TrendDecreasing)
	gt.Equal(t, view.Metrics[1].Label, "COVID-19 Cases")
	gt.Equal(t, view.Metrics[1].Value, 30)
	gt.Equal(t, view.Metrics[2].Value, 12)

	gt.Equal(t, view.Span.StartString(), "2026-01-01")
	gt.Equal(t, view.Span.EndString(), "2026-01-15")
	gt.Equal(t, view.Selection, view.Span)
	gt.Equal(t, view.FilteredWeeks, 3)

	gt.NotNil(t, view.Overview)
	gt.Equal(t, view.Overview.Title, "New York County Respiratory Virus Cases - Historical Trends")
	gt.A(t, view.Overview.Series).Length(3)
	gt.Equal(t, view.Overview.Series[0].Label, "Flu")
	gt.Equal(t, view.Overview.Series[0].Color, "blue")
	gt.A(t, view.Overview.Series[0].Points).Length(3)
	gt.Equal(t, view.Overview.Series[0].Points[0].Value, 100)

	gt.False(t, view.StatsSuppressed())
	gt.A(t, view.Stats).Length(3)
	gt.Equal(t, view.Stats[0].Label, "Flu")
	gt.Equal(t, view.Stats[0].Stats.Average, 80.0)
	gt.Equal(t, view.Stats[0].Stats.Peak, 100)
	gt.Equal(t, view.Stats[0].Stats.Total, 240)
}

func TestDashboardViewSelection(t *testing.T) {
	ctx := context.Background()
	dashboard := newDashboard(threeWeeks())

	t.Run("single week", func(t *testing.T) {
		day := mustDate(t, "2026-01-08")
		view, err := dashboard.View(ctx, model.Selection{Start: day, End: day})
		gt.NoError(t, err).Required()
		gt.Equal(t, view.FilteredWeeks, 1)
		gt.NotNil(t, view.Filtered)
		gt.A(t, view.Filtered.Series[0].Points).Length(1)
		gt.Equal(t, view.Stats[0].Stats.Total, 80)
	})

	t.Run("open end defaults to span end", func(t *testing.T) {
		view, err := dashboard.View(ctx, model.Selection{Start: mustDate(t, "2026-01-08")})
		gt.NoError(t, err).Required()
		gt.Equal(t, view.Selection.EndString(), "2026-01-15")
		gt.Equal(t, view.FilteredWeeks, 2)
	})

	t.Run("range outside span suppresses statistics", func(t *testing.T) {
		view, err := dashboard.View(ctx, model.Selection{
			Start: mustDate(t, "2024-01-01"),
			End:   mustDate(t, "2024-12-31"),
		})
		gt.NoError(t, err).Required()
		gt.Equal(t, view.FilteredWeeks, 0)
		gt.True(t, view.StatsSuppressed())
		gt.Nil(t, view.Filtered)
		gt.NotNil(t, view.Overview)
		gt.A(t, view.Metrics).Length(3)
	})

	t.Run("reversed range suppresses statistics", func(t *testing.T) {
		view, err := dashboard.View(ctx, model.Selection{
			Start: mustDate(t, "2026-01-15"),
			End:   mustDate(t, "2026-01-01"),
		})
		gt.NoError(t, err).Required()
		gt.True(t, view.StatsSuppressed())
	})
}

func TestDashboardViewErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("dataset not found", func(t *testing.T) {
		dashboard := usecase.NewDashboard(repository.NewFile("testdata/does_not_exist.json"))
		view, err := dashboard.View(ctx, model.Selection{})
		gt.Nil(t, view)
		gt.True(t, goerr.HasTag(err, model.ErrTagNotFound))
	})

	t.Run("region missing", func(t *testing.T) {
		raw := threeWeeks()
		raw["2026-01-22"] = map[string]model.CaseCounts{"Kings": {}}
		_, err := newDashboard(raw).View(ctx, model.Selection{})
		gt.True(t, goerr.HasTag(err, model.ErrTagRegionNotFound))
	})

	t.Run("empty dataset", func(t *testing.T) {
		_, err := newDashboard(model.RawDataset{}).View(ctx, model.Selection{})
		gt.True(t, goerr.HasTag(err, model.ErrTagEmptySeries))
	})
}

func TestDashboardWithConfig(t *testing.T) {
	ctx := context.Background()
	cfg := model.DefaultConfig()
	cfg.Region = "Kings"
	cfg.Series = []model.SeriesDisplay{
		{ID: types.SeriesRSV, Label: "RSV", Color: "#00ff00"},
	}

	raw := model.RawDataset{
		"2026-01-01": {"Kings": {RSV: 4}},
		"2026-01-08": {"Kings": {RSV: 9}},
	}
	dashboard := usecase.NewDashboard(repository.NewMemory("kings.json", raw), usecase.WithConfig(cfg))

	view, err := dashboard.View(ctx, model.Selection{})
	gt.NoError(t, err).Required()
	gt.A(t, view.Metrics).Length(1)
	gt.Equal(t, view.Metrics[0].Label, "RSV Cases")
	gt.Equal(t, view.Metrics[0].Trend, types.TrendIncreasing)
	gt.A(t, view.Stats).Length(1)
	gt.Equal(t, view.Stats[0].Stats.Peak, 9)
	gt.Equal(t, dashboard.DatasetName(), "kings.json")
}

func TestDashboardCharts(t *testing.T) {
	ctx := context.Background()
	dashboard := newDashboard(threeWeeks())

	overview, err := dashboard.OverviewChart(ctx)
	gt.NoError(t, err).Required()
	gt.A(t, overview.Series[2].Points).Length(3)

	filtered, err := dashboard.FilteredChart(ctx, model.Selection{Start: mustDate(t, "2026-01-08")})
	gt.NoError(t, err).Required()
	gt.Equal(t, filtered.Title, "Respiratory Viruses in Selected Date Range")
	gt.A(t, filtered.Series[0].Points).Length(2)

	_, err = dashboard.FilteredChart(ctx, model.Selection{
		Start: mustDate(t, "2030-01-01"),
		End:   mustDate(t, "2030-02-01"),
	})
	gt.True(t, goerr.HasTag(err, model.ErrTagEmptySeries))
	gt.True(t, goerr.HasTag(err, model.ErrTagEmptySelection))

	_, err = newDashboard(model.RawDataset{}).OverviewChart(ctx)
	gt.True(t, goerr.HasTag(err, model.ErrTagEmptySeries))
	gt.False(t, goerr.HasTag(err, model.ErrTagEmptySelection))
}

func TestDashboardSeriesSelection(t *testing.T) {
	ctx := context.Background()
	dashboard := newDashboard(threeWeeks())

	t.Run("selected series in selection order", func(t *testing.T) {
		sel := model.Selection{Series: []types.Series{types.SeriesRSV, types.SeriesFlu}}
		view, err := dashboard.View(ctx, sel)
		gt.NoError(t, err).Required()

		gt.A(t, view.Metrics).Length(2)
		gt.Equal(t, view.Metrics[0].Label, "RSV Cases")
		gt.Equal(t, view.Metrics[0].Value, 12)
		gt.Equal(t, view.Metrics[1].Series, types.SeriesFlu)

		gt.A(t, view.Filtered.Series).Length(2)
		gt.Equal(t, view.Filtered.Series[0].Color, "green")
		gt.A(t, view.Stats).Length(2)
		gt.Equal(t, view.Stats[1].Stats.Total, 240)
		gt.Equal(t, view.SeriesFilter, sel.Series)

		// the full-range chart always shows every series
		gt.A(t, view.Overview.Series).Length(3)
	})

	t.Run("filtered chart", func(t *testing.T) {
		c, err := dashboard.FilteredChart(ctx, model.Selection{Series: []types.Series{types.SeriesCovid}})
		gt.NoError(t, err).Required()
		gt.A(t, c.Series).Length(1)
		gt.Equal(t, c.Series[0].Label, "COVID-19")
	})

	t.Run("series missing from the configuration", func(t *testing.T) {
		cfg := model.DefaultConfig()
		cfg.Series = cfg.Series[:1]
		d := usecase.NewDashboard(repository.NewMemory("respiratory_data.json", threeWeeks()), usecase.WithConfig(cfg))

		_, err := d.View(ctx, model.Selection{Series: []types.Series{types.SeriesRSV}})
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidSelection))
	})
}
