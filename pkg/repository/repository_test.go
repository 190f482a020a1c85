package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/respitrack/pkg/domain/model"
	"github.com/secmon-lab/respitrack/pkg/repository"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "respiratory_data.json")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestFileLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("loads fixture", func(t *testing.T) {
		file := repository.NewFile("testdata/respiratory_data.json")
		raw, err := file.Load(ctx)
		gt.NoError(t, err).Required()

		gt.Equal(t, len(raw), 3)
		gt.Equal(t, raw["2026-01-01"]["New York"], model.CaseCounts{Flu: 100, Covid: 20, RSV: 15})
		gt.Equal(t, raw["2026-01-01"]["Kings"], model.CaseCounts{Flu: 7, Covid: 1, RSV: 0})
		gt.Equal(t, raw["2026-01-15"]["New York"].Flu, 60)
		gt.Equal(t, file.Name(), "respiratory_data.json")
	})

	t.Run("missing file is not found", func(t *testing.T) {
		file := repository.NewFile(filepath.Join(t.TempDir(), "respiratory_data.json"))
		raw, err := file.Load(ctx)
		gt.Error(t, err)
		gt.Nil(t, raw)
		gt.True(t, goerr.HasTag(err, model.ErrTagNotFound))
		gt.False(t, goerr.HasTag(err, model.ErrTagMalformedData))
	})

	t.Run("entry without the region still loads", func(t *testing.T) {
		path := writeTemp(t, `{"2026-01-01": {"Kings": {"flu_cases": 1, "covid_cases": 2, "rsv_cases": 3}}}`)
		raw, err := repository.NewFile(path).Load(ctx)
		gt.NoError(t, err)
		gt.Equal(t, len(raw["2026-01-01"]), 1)
	})
}

func TestFileLoadMalformed(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name    string
		content string
	}{
		{"empty file", ``},
		{"not json", `this is not json`},
		{"truncated", `{"2026-01-01": {"New York": {"flu_cases": 1`},
		{"top level array", `[1, 2, 3]`},
		{"top level null", `null`},
		{"date entry is a number", `{"2026-01-01": 5}`},
		{"date entry is null", `{"2026-01-01": null}`},
		{"invalid date key", `{"Jan 1": {"New York": {"flu_cases": 1, "covid_cases": 2, "rsv_cases": 3}}}`},
		{"impossible date", `{"2026-02-30": {"New York": {"flu_cases": 1, "covid_cases": 2, "rsv_cases": 3}}}`},
		{"region value is a string", `{"2026-01-01": {"New York": "many"}}`},
		{"region value is null", `{"2026-01-01": {"New York": null}}`},
		{"missing count field", `{"2026-01-01": {"New York": {"flu_cases": 1, "covid_cases": 2}}}`},
		{"null count", `{"2026-01-01": {"New York": {"flu_cases": null, "covid_cases": 2, "rsv_cases": 3}}}`},
		{"quoted count", `{"2026-01-01": {"New York": {"flu_cases": "1", "covid_cases": 2, "rsv_cases": 3}}}`},
		{"fractional count", `{"2026-01-01": {"New York": {"flu_cases": 1.5, "covid_cases": 2, "rsv_cases": 3}}}`},
		{"negative count", `{"2026-01-01": {"New York": {"flu_cases": -1, "covid_cases": 2, "rsv_cases": 3}}}`},
		{"trailing content", `{"2026-01-01": {"New York": {"flu_cases": 1, "covid_cases": 2, "rsv_cases": 3}}} {}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTemp(t, tc.content)
			raw, err := repository.NewFile(path).Load(ctx)
			gt.Error(t, err)
			gt.Nil(t, raw)
			gt.True(t, goerr.HasTag(err, model.ErrTagMalformedData))
			gt.False(t, goerr.HasTag(err, model.ErrTagNotFound))
		})
	}
}

func TestDecodeIgnoresUnknownFields(t *testing.T) {
	raw, err := repository.Decode(strings.NewReader(
		`{"2026-01-01": {"New York": {"flu_cases": 1, "covid_cases": 2, "rsv_cases": 3, "note": "x"}}}`))
	gt.NoError(t, err).Required()
	gt.Equal(t, raw["2026-01-01"]["New York"], model.CaseCounts{Flu: 1, Covid: 2, RSV: 3})
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	src := model.RawDataset{
		"2026-01-01": {"New York": {Flu: 1, Covid: 2, RSV: 3}},
	}

	t.Run("returns a copy", func(t *testing.T) {
		mem := repository.NewMemory("memory", src)
		raw, err := mem.Load(ctx)
		gt.NoError(t, err).Required()
		raw["2026-01-01"]["New York"] = model.CaseCounts{}

		again, err := mem.Load(ctx)
		gt.NoError(t, err).Required()
		gt.Equal(t, again["2026-01-01"]["New York"].Flu, 1)
		gt.Equal(t, src["2026-01-01"]["New York"].Flu, 1)
	})

	t.Run("nil dataset is not found", func(t *testing.T) {
		mem := repository.NewMemory("memory", nil)
		_, err := mem.Load(ctx)
		gt.True(t, goerr.HasTag(err, model.ErrTagNotFound))
	})

	t.Run("set error and replace", func(t *testing.T) {
		mem := repository.NewMemory("memory", src)
		mem.SetError(goerr.New("broken", goerr.T(model.ErrTagMalformedData)))
		_, err := mem.Load(ctx)
		gt.True(t, goerr.HasTag(err, model.ErrTagMalformedData))

		mem.Replace(src)
		raw, err := mem.Load(ctx)
		gt.NoError(t, err)
		gt.Equal(t, len(raw), 1)
	})
}
