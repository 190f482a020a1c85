package repository

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/respitrack/pkg/domain/interfaces"
	"github.com/secmon-lab/respitrack/pkg/domain/model"
)

// Memory serves a dataset held in memory
type Memory struct {
	mu   sync.RWMutex
	name string
	raw  model.RawDataset
	err  error
}

var _ interfaces.Dataset = (*Memory)(nil)

// NewMemory creates a memory dataset. The given dataset is copied.
func NewMemory(name string, raw model.RawDataset) *Memory {
	return &Memory{
		name: name,
		raw:  copyDataset(raw),
	}
}

// Name returns the configured dataset name
func (m *Memory) Name() string {
	return m.name
}

// Load returns a copy of the dataset, or the failure set by SetError
func (m *Memory) Load(ctx context.Context) (model.RawDataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return nil, m.err
	}
	if m.raw == nil {
		return nil, goerr.New("dataset not found",
			goerr.V("name", m.name),
			goerr.T(model.ErrTagNotFound))
	}
	return copyDataset(m.raw), nil
}

// Replace swaps the served dataset
func (m *Memory) Replace(raw model.RawDataset) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.raw = copyDataset(raw)
	m.err = nil
}

// SetError makes every following Load fail with err
func (m *Memory) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.err = err
}

func copyDataset(raw model.RawDataset) model.RawDataset {
	if raw == nil {
		return nil
	}
	out := make(model.RawDataset, len(raw))
	for date, regions := range raw {
		entry := make(map[string]model.CaseCounts, len(regions))
		for region, counts := range regions {
			entry[region] = counts
		}
		out[date] = entry
	}
	return out
}
