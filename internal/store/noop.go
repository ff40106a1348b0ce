package store

import "PriceScout/internal/model"

// NoopStore is a no-op implementation used when SQLite is not configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) UpsertSecurity(_ *model.Security) error        { return nil }
func (n *NoopStore) ListSecurities() ([]model.Security, error)     { return nil, nil }
func (n *NoopStore) RecordPrice(_ *model.ExtractionResult) error   { return nil }
func (n *NoopStore) Close() error                                  { return nil }
