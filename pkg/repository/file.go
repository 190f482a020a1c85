package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/respitrack/pkg/domain/interfaces"
	"github.com/secmon-lab/respitrack/pkg/domain/model"
)

// File reads the dataset from a JSON document on the local filesystem
type File struct {
	path string
}

var _ interfaces.Dataset = (*File)(nil)

// NewFile creates a dataset backed by the JSON file at path
func NewFile(path string) *File {
	return &File{path: path}
}

// Name returns the base name of the dataset file
func (f *File) Name() string {
	return filepath.Base(f.path)
}

// Path returns the configured file path
func (f *File) Path() string {
	return f.path
}

// Load opens the file read-only, decodes it and closes it before returning
func (f *File) Load(ctx context.Context) (model.RawDataset, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(err, "dataset file not found",
				goerr.V("path", f.path),
				goerr.T(model.ErrTagNotFound))
		}
		return nil, goerr.Wrap(err, "failed to open dataset file",
			goerr.V("path", f.path))
	}
	defer file.Close()

	raw, err := Decode(file)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode dataset file",
			goerr.V("path", f.path),
			goerr.T(model.ErrTagMalformedData))
	}

	ctxlog.From(ctx).Debug("Dataset loaded",
		"path", f.path,
		"dates", len(raw),
	)
	return raw, nil
}

// rawCounts keeps the literal of each field so a missing field and a quoted or
// fractional number can be told apart from a valid count
type rawCounts struct {
	Flu   json.RawMessage `json:"flu_cases"`
	Covid json.RawMessage `json:"covid_cases"`
	RSV   json.RawMessage `json:"rsv_cases"`
}

// Decode parses and validates a dataset document
func Decode(r io.Reader) (model.RawDataset, error) {
	dec := json.NewDecoder(r)

	var doc map[string]map[string]json.RawMessage
	if err := dec.Decode(&doc); err != nil {
		return nil, goerr.Wrap(err, "dataset is not a JSON object of date entries",
			goerr.T(model.ErrTagMalformedData))
	}
	if doc == nil {
		return nil, goerr.New("dataset is null",
			goerr.T(model.ErrTagMalformedData))
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, goerr.New("unexpected content after dataset document",
			goerr.T(model.ErrTagMalformedData))
	}

	raw := make(model.RawDataset, len(doc))
	for date, regions := range doc {
		if _, err := model.ParseDate(date); err != nil {
			return nil, goerr.Wrap(err, "date key is not a YYYY-MM-DD date",
				goerr.V("date", date),
				goerr.T(model.ErrTagMalformedData))
		}
		if regions == nil {
			return nil, goerr.New("date entry is not an object of regions",
				goerr.V("date", date),
				goerr.T(model.ErrTagMalformedData))
		}

		entry := make(map[string]model.CaseCounts, len(regions))
		for region, body := range regions {
			counts, err := decodeCounts(body)
			if err != nil {
				return nil, goerr.Wrap(err, "invalid case counts",
					goerr.V("date", date),
					goerr.V("region", region),
					goerr.T(model.ErrTagMalformedData))
			}
			entry[region] = counts
		}
		raw[date] = entry
	}

	return raw, nil
}

func decodeCounts(body json.RawMessage) (model.CaseCounts, error) {
	var rc rawCounts
	if err := json.Unmarshal(body, &rc); err != nil {
		return model.CaseCounts{}, goerr.Wrap(err, "case counts are not an object")
	}

	flu, err := countValue("flu_cases", rc.Flu)
	if err != nil {
		return model.CaseCounts{}, err
	}
	covid, err := countValue("covid_cases", rc.Covid)
	if err != nil {
		return model.CaseCounts{}, err
	}
	rsv, err := countValue("rsv_cases", rc.RSV)
	if err != nil {
		return model.CaseCounts{}, err
	}

	return model.CaseCounts{Flu: flu, Covid: covid, RSV: rsv}, nil
}

func countValue(field string, literal json.RawMessage) (int, error) {
	if len(literal) == 0 || bytes.Equal(literal, []byte("null")) {
		return 0, goerr.New("missing count field", goerr.V("field", field))
	}
	v, err := strconv.ParseInt(string(literal), 10, 64)
	if err != nil {
		return 0, goerr.Wrap(err, "count is not an integer",
			goerr.V("field", field),
			goerr.V("value", string(literal)))
	}
	if v < 0 {
		return 0, goerr.New("count is negative",
			goerr.V("field", field),
			goerr.V("value", v))
	}
	return int(v), nil
}
