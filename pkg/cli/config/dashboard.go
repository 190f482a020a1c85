package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/respitrack/pkg/domain/model"
	"github.com/secmon-lab/respitrack/pkg/repository"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// DefaultDataPath is the data file read when no path is given
const DefaultDataPath = "respiratory_data.json"

// Dashboard holds the data source and display configuration
type Dashboard struct {
	DataPath   string
	ConfigPath string
}

// Flags returns CLI flags for Dashboard configuration
func (d *Dashboard) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "data",
			Aliases:     []string{"d"},
			Usage:       "Path to the weekly case count JSON file",
			Category:    "Dashboard",
			Value:       DefaultDataPath,
			Sources:     cli.EnvVars("RESPITRACK_DATA"),
			Destination: &d.DataPath,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the dashboard YAML configuration (title, region, series labels and colors)",
			Category:    "Dashboard",
			Sources:     cli.EnvVars("RESPITRACK_CONFIG"),
			Destination: &d.ConfigPath,
		},
	}
}

// Configure creates the dataset and loads the display configuration. The
// data file itself is read on every render, not here.
func (d *Dashboard) Configure() (*repository.File, *model.Config, error) {
	if d.DataPath == "" {
		return nil, nil, goerr.New("data file path is required")
	}

	cfg := model.DefaultConfig()
	if d.ConfigPath != "" {
		loaded, err := LoadDashboardConfig(d.ConfigPath)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	return repository.NewFile(d.DataPath), cfg, nil
}

// LogValue returns structured log value
func (d Dashboard) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("data", d.DataPath),
		slog.String("config", d.ConfigPath),
	)
}

// LoadDashboardConfig loads the dashboard configuration from a YAML file.
// Fields missing from the file keep their default values.
func LoadDashboardConfig(path string) (*model.Config, error) {
	if path == "" {
		return nil, goerr.New("configuration file path is required")
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "configuration file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read configuration file",
			goerr.V("path", path))
	}

	// Parse YAML on top of the defaults
	config := model.DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse YAML configuration",
			goerr.V("path", path))
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid configuration",
			goerr.V("path", path))
	}

	return config, nil
}
