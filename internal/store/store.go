package store

import "PriceScout/internal/model"

// Store persists the security catalogue and resolved prices.
type Store interface {
	UpsertSecurity(sec *model.Security) error
	ListSecurities() ([]model.Security, error)
	RecordPrice(res *model.ExtractionResult) error
	Close() error
}
