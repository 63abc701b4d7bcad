package port

import (
	"context"

	"github.com/jerrymart/quickmart/internal/core/domain"
)

type JournalRepository interface {
	// RecordTransaction persists a completed sale, header and lines
	// together, for audit and reporting.
	RecordTransaction(ctx context.Context, t domain.Transaction) error
}
