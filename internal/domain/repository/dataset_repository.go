package repository

import (
	"context"

	"github.com/diillson/client-insights-go/internal/domain/entity"
)

// DatasetRepository defines the source the report inputs are loaded from.
type DatasetRepository interface {
	LoadDataset(ctx context.Context) (*entity.Dataset, error)
	Describe() string
}
