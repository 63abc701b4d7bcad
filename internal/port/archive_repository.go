package port

import "github.com/jerrymart/quickmart/internal/core/domain"

type ArchiveRepository interface {
	// SaveReceipt writes the rendered receipt under the transaction's
	// archive filename.
	SaveReceipt(t domain.Transaction, receipt string) error

	// SaveInventorySnapshot replaces the persisted catalog text with the
	// state after a sale.
	SaveInventorySnapshot(snapshot string) error
}
