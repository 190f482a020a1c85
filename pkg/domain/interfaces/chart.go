package interfaces

import (
	"context"
	"io"

	"github.com/secmon-lab/respitrack/pkg/domain/model"
)

// ChartRenderer draws a line chart into w
type ChartRenderer interface {
	Render(ctx context.Context, w io.Writer, chart *model.LineChart) error

	// ContentType returns the MIME type of the rendered output
	ContentType() string

	// Extension returns the file extension of the rendered output without a dot
	Extension() string
}

// Exporter writes weekly records in a downloadable format
type Exporter interface {
	Export(ctx context.Context, w io.Writer, records []model.WeeklyRecord) error
	ContentType() string
}
