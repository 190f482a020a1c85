package model

import "github.com/m-mizutani/goerr/v2"

// Error tags for the dashboard pipeline
var (
	ErrTagNotFound         = goerr.NewTag("not_found")
	ErrTagMalformedData    = goerr.NewTag("malformed_data")
	ErrTagRegionNotFound   = goerr.NewTag("region_not_found")
	ErrTagEmptySeries      = goerr.NewTag("empty_series")
	ErrTagEmptySelection   = goerr.NewTag("empty_selection")
	ErrTagInvalidSelection = goerr.NewTag("invalid_selection")
)
