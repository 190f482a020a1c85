package usecase

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/respitrack/pkg/domain/model"
	"github.com/secmon-lab/respitrack/pkg/domain/types"
)

// Aggregate computes mean, maximum and sum of one series
func Aggregate(records []model.WeeklyRecord, series types.Series) (model.SeriesStats, error) {
	if len(records) == 0 {
		return model.SeriesStats{}, goerr.New("no records to aggregate",
			goerr.V("series", series),
			goerr.T(model.ErrTagEmptySeries))
	}
	if !series.IsValid() {
		return model.SeriesStats{}, goerr.New("unknown series", goerr.V("series", series))
	}

	peak := records[0].Count(series)
	total := 0
	for _, rec := range records {
		v := rec.Count(series)
		total += v
		if v > peak {
			peak = v
		}
	}

	return model.SeriesStats{
		Series:  series,
		Count:   len(records),
		Average: float64(total) / float64(len(records)),
		Peak:    peak,
		Total:   total,
	}, nil
}

// AggregateAll computes statistics for each of the given series
func AggregateAll(records []model.WeeklyRecord, series ...types.Series) (map[types.Series]model.SeriesStats, error) {
	if len(series) == 0 {
		series = types.AllSeries()
	}

	result := make(map[types.Series]model.SeriesStats, len(series))
	for _, s := range series {
		stats, err := Aggregate(records, s)
		if err != nil {
			return nil, err
		}
		result[s] = stats
	}
	return result, nil
}

// Latest returns the chronologically last record
func Latest(records []model.WeeklyRecord) (model.WeeklyRecord, error) {
	if len(records) == 0 {
		return model.WeeklyRecord{}, goerr.New("no records for latest snapshot",
			goerr.T(model.ErrTagEmptySeries))
	}
	return records[len(records)-1], nil
}

// TrendOf compares the latest week of a series with the week before it
func TrendOf(records []model.WeeklyRecord, series types.Series) types.Trend {
	if len(records) < 2 {
		return types.TrendUnknown
	}

	latest := records[len(records)-1].Count(series)
	prior := records[len(records)-2].Count(series)
	switch {
	case latest > prior:
		return types.TrendIncreasing
	case latest < prior:
		return types.TrendDecreasing
	default:
		return types.TrendStable
	}
}
