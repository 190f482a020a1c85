package export

import (
	"context"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/respitrack/pkg/domain/interfaces"
	"github.com/secmon-lab/respitrack/pkg/domain/model"
)

// Column names of the exported table
const (
	ColumnDate  = "date"
	ColumnFlu   = "flu_cases"
	ColumnCovid = "covid_cases"
	ColumnRSV   = "rsv_cases"
)

// CSV writes weekly records as a CSV table with a header row
type CSV struct{}

var _ interfaces.Exporter = (*CSV)(nil)

// NewCSV creates a CSV exporter
func NewCSV() *CSV {
	return &CSV{}
}

// ContentType returns the MIME type of the export
func (x *CSV) ContentType() string {
	return "text/csv; charset=utf-8"
}

// Export writes records in date order
func (x *CSV) Export(ctx context.Context, w io.Writer, records []model.WeeklyRecord) error {
	df := Frame(records)
	if df.Err != nil {
		return goerr.Wrap(df.Err, "failed to build export frame", goerr.V("rows", len(records)))
	}

	if err := df.WriteCSV(w); err != nil {
		return goerr.Wrap(err, "failed to write CSV", goerr.V("rows", len(records)))
	}
	return nil
}

// Frame converts records into a dataframe with one column per series
func Frame(records []model.WeeklyRecord) dataframe.DataFrame {
	dates := make([]string, len(records))
	flu := make([]int, len(records))
	covid := make([]int, len(records))
	rsv := make([]int, len(records))
	for i, rec := range records {
		dates[i] = rec.DateString()
		flu[i] = rec.Flu
		covid[i] = rec.Covid
		rsv[i] = rec.RSV
	}

	return dataframe.New(
		series.New(dates, series.String, ColumnDate),
		series.New(flu, series.Int, ColumnFlu),
		series.New(covid, series.Int, ColumnCovid),
		series.New(rsv, series.Int, ColumnRSV),
	)
}
