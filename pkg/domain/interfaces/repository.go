package interfaces

import (
	"context"

	"github.com/secmon-lab/respitrack/pkg/domain/model"
)

// Dataset provides the raw weekly case counts
type Dataset interface {
	// Load reads the whole dataset. It is called once per dashboard render.
	Load(ctx context.Context) (model.RawDataset, error)

	// Name returns a short human readable name of the source, e.g. the file name
	Name() string
}
