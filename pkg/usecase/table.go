package usecase

import (
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/respitrack/pkg/domain/model"
)

// BuildTable turns the raw dataset into weekly records of one region, sorted by date.
// Date keys are sorted as strings, which is chronological for YYYY-MM-DD.
func BuildTable(raw model.RawDataset, region string) ([]model.WeeklyRecord, error) {
	dates := make([]string, 0, len(raw))
	for date := range raw {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	records := make([]model.WeeklyRecord, 0, len(dates))
	for _, date := range dates {
		counts, ok := raw[date][region]
		if !ok {
			return nil, goerr.New("region not found in date entry",
				goerr.V("region", region),
				goerr.V("date", date),
				goerr.T(model.ErrTagRegionNotFound))
		}

		day, err := model.ParseDate(date)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid date key",
				goerr.V("date", date),
				goerr.T(model.ErrTagMalformedData))
		}

		records = append(records, model.WeeklyRecord{
			Date:  day,
			Flu:   counts.Flu,
			Covid: counts.Covid,
			RSV:   counts.RSV,
		})
	}

	return records, nil
}

// FilterRange returns the records whose date lies in [start, end], both inclusive.
// records must be sorted ascending. start after end yields an empty result.
func FilterRange(records []model.WeeklyRecord, start, end time.Time) []model.WeeklyRecord {
	r := model.NewDateRange(start, end)
	if !r.Valid() {
		return []model.WeeklyRecord{}
	}

	first, last := -1, -1
	for i, rec := range records {
		if !r.Contains(rec.Date) {
			if first >= 0 {
				break
			}
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}

	if first < 0 {
		return []model.WeeklyRecord{}
	}
	return records[first : last+1 : last+1]
}

// Span returns the range from the first to the last record
func Span(records []model.WeeklyRecord) (model.DateRange, error) {
	if len(records) == 0 {
		return model.DateRange{}, goerr.New("no records to span",
			goerr.T(model.ErrTagEmptySeries))
	}
	return model.NewDateRange(records[0].Date, records[len(records)-1].Date), nil
}
