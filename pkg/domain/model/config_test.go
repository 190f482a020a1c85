package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/respitrack/pkg/domain/model"
	"github.com/secmon-lab/respitrack/pkg/domain/types"
)

func TestDefaultConfig(t *testing.T) {
	cfg := model.DefaultConfig()
	gt.NoError(t, cfg.Validate())
	gt.Equal(t, cfg.Region, "New York")
	gt.Equal(t, cfg.Title, "Respiratory Virus Tracker - New York County")
	gt.A(t, cfg.Series).Length(3)
	for i, id := range types.AllSeries() {
		gt.Equal(t, cfg.Series[i].ID, id)
	}
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(cfg *model.Config)
		wantErr bool
	}{
		{
			name:    "default is valid",
			mutate:  func(cfg *model.Config) {},
			wantErr: false,
		},
		{
			name:    "missing title",
			mutate:  func(cfg *model.Config) { cfg.Title = "" },
			wantErr: true,
		},
		{
			name:    "missing region",
			mutate:  func(cfg *model.Config) { cfg.Region = "" },
			wantErr: true,
		},
		{
			name:    "no series",
			mutate:  func(cfg *model.Config) { cfg.Series = nil },
			wantErr: true,
		},
		{
			name: "unknown series",
			mutate: func(cfg *model.Config) {
				cfg.Series[0].ID = types.Series("measles")
			},
			wantErr: true,
		},
		{
			name: "missing label",
			mutate: func(cfg *model.Config) {
				cfg.Series[1].Label = ""
			},
			wantErr: true,
		},
		{
			name: "duplicate series",
			mutate: func(cfg *model.Config) {
				cfg.Series[2].ID = types.SeriesFlu
			},
			wantErr: true,
		},
		{
			name: "subset of series",
			mutate: func(cfg *model.Config) {
				cfg.Series = cfg.Series[:1]
			},
			wantErr: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := model.DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestConfigFindSeries(t *testing.T) {
	cfg := model.DefaultConfig()

	covid := cfg.FindSeries(types.SeriesCovid)
	gt.NotNil(t, covid)
	gt.Equal(t, covid.Label, "COVID-19")
	gt.Equal(t, covid.Color, "red")

	cfg.Series = cfg.Series[:1]
	gt.Nil(t, cfg.FindSeries(types.SeriesRSV))
}
