package interfaces

import (
	"context"

	"github.com/secmon-lab/respitrack/pkg/domain/model"
)

// Dashboard runs the dashboard pipeline for one render
type Dashboard interface {
	View(ctx context.Context, sel model.Selection) (*model.DashboardView, error)
	Filtered(ctx context.Context, sel model.Selection) ([]model.WeeklyRecord, model.DateRange, error)
	OverviewChart(ctx context.Context) (*model.LineChart, error)
	FilteredChart(ctx context.Context, sel model.Selection) (*model.LineChart, error)
	Config() *model.Config
	DatasetName() string
}
