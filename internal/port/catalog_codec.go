package port

import "github.com/jerrymart/quickmart/internal/core/domain"

type CatalogCodec interface {
	// Decode parses catalog text into an inventory, rejecting malformed
	// records with a typed error rather than guessing at values.
	Decode(text string) (*domain.Inventory, error)

	// Encode renders the full inventory, sold-out items included, back to
	// catalog text in catalog order.
	Encode(inv *domain.Inventory) string
}
