package storage

import (
	"context"

	"ensScope/internal/model"
)

// Storage defines a sink for history records.
type Storage interface {
	PutHistoryBatch(ctx context.Context, records []model.HistoryRecord) error
}
