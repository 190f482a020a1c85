package apperr

import (
	"context"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/respitrack/pkg/domain/model"
)

// Handle logs an error that ends the current render
func Handle(ctx context.Context, err error) {
	logger := ctxlog.From(ctx)
	switch {
	case goerr.HasTag(err, model.ErrTagInvalidSelection):
		logger.Warn("invalid request", "error", err)
	default:
		logger.Error("application error", "error", err)
	}
}

// Message returns the single user visible message for err. datasetName is
// used for the not found case, e.g. "Error: respiratory_data.json not found".
func Message(err error, datasetName string) string {
	switch {
	case goerr.HasTag(err, model.ErrTagNotFound):
		return "Error: " + datasetName + " not found"
	case goerr.HasTag(err, model.ErrTagRegionNotFound):
		return "Error: " + err.Error() + regionDetail(err)
	case goerr.HasTag(err, model.ErrTagEmptySelection):
		return "Error: no weekly data in the selected date range"
	case goerr.HasTag(err, model.ErrTagEmptySeries):
		return "Error: " + datasetName + " contains no weekly data"
	default:
		return "Error: " + err.Error()
	}
}

// Status maps err to an HTTP status code
func Status(err error) int {
	switch {
	case goerr.HasTag(err, model.ErrTagInvalidSelection):
		return http.StatusBadRequest
	case goerr.HasTag(err, model.ErrTagNotFound), goerr.HasTag(err, model.ErrTagEmptySelection):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func regionDetail(err error) string {
	values := goerr.Values(err)
	region, ok1 := values["region"].(string)
	date, ok2 := values["date"].(string)
	if !ok1 || !ok2 {
		return ""
	}
	return " (region " + region + ", date " + date + ")"
}
