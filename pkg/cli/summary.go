package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/respitrack/pkg/cli/config"
	"github.com/secmon-lab/respitrack/pkg/domain/model"
	"github.com/secmon-lab/respitrack/pkg/domain/types"
	"github.com/secmon-lab/respitrack/pkg/usecase"
	"github.com/secmon-lab/respitrack/pkg/utils/apperr"
	"github.com/urfave/cli/v3"
)

func cmdSummary() *cli.Command {
	var (
		dashboardCfg config.Dashboard
		start, end   string
		series       []string
	)

	flags := joinFlags(
		dashboardCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "start",
				Usage:       "First week of the period (YYYY-MM-DD), defaults to the first week in the data",
				Category:    "Period",
				Destination: &start,
			},
			&cli.StringFlag{
				Name:        "end",
				Usage:       "Last week of the period (YYYY-MM-DD), defaults to the last week in the data",
				Category:    "Period",
				Destination: &end,
			},
			&cli.StringSliceFlag{
				Name:        "series",
				Usage:       "Series to include (flu, covid, rsv), defaults to every configured series",
				Category:    "Period",
				Destination: &series,
			},
		},
	)

	return &cli.Command{
		Name:  "summary",
		Usage: "Print the latest weekly counts and statistics of a period",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctxlog.From(ctx).Debug("Running summary",
				slog.Any("dashboard", dashboardCfg),
				slog.String("start", start),
				slog.String("end", end),
			)

			dataset, dashboardConfig, err := dashboardCfg.Configure()
			if err != nil {
				return err
			}

			sel, err := parseSelection(start, end, series)
			if err != nil {
				return err
			}

			dashboardUC := usecase.NewDashboard(dataset, usecase.WithConfig(dashboardConfig))
			view, err := dashboardUC.View(ctx, sel)
			if err != nil {
				apperr.Handle(ctx, err)
				return goerr.New(apperr.Message(err, dashboardUC.DatasetName()))
			}

			return writeSummary(c.Root().Writer, view)
		},
	}
}

func parseSelection(start, end string, series []string) (model.Selection, error) {
	var sel model.Selection
	if start != "" {
		t, err := model.ParseDate(start)
		if err != nil {
			return sel, goerr.Wrap(err, "invalid start date", goerr.V("start", start), goerr.T(model.ErrTagInvalidSelection))
		}
		sel.Start = t
	}
	if end != "" {
		t, err := model.ParseDate(end)
		if err != nil {
			return sel, goerr.Wrap(err, "invalid end date", goerr.V("end", end), goerr.T(model.ErrTagInvalidSelection))
		}
		sel.End = t
	}
	for _, name := range series {
		s, err := types.ParseSeries(name)
		if err != nil {
			return sel, goerr.Wrap(err, "invalid series", goerr.V("series", name), goerr.T(model.ErrTagInvalidSelection))
		}
		sel.Series = append(sel.Series, s)
	}
	return sel, nil
}

func writeSummary(w io.Writer, view *model.DashboardView) error {
	lines := []string{
		view.Title,
		"",
		fmt.Sprintf("Latest Weekly Data (as of %s)", view.LatestDate.Format("January 2, 2006")),
	}
	for _, m := range view.Metrics {
		lines = append(lines, fmt.Sprintf("  %-16s %10s  %s", m.Label, humanize.Comma(int64(m.Value)), m.Trend.Label()))
	}

	lines = append(lines, "",
		fmt.Sprintf("Period %s to %s - %d weeks of data",
			view.Selection.StartString(), view.Selection.EndString(), view.FilteredWeeks))
	if view.StatsSuppressed() {
		lines = append(lines, "  No weekly data in the selected date range.")
	}
	for _, p := range view.Stats {
		lines = append(lines, fmt.Sprintf("  %-10s average %d  peak %d  total %d",
			p.Label, p.Stats.RoundedAverage(), p.Stats.Peak, p.Stats.Total))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return goerr.Wrap(err, "failed to write summary")
		}
	}
	return nil
}
