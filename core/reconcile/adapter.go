package reconcile

import (
	"context"

	"locale-manager/core/record"
)

// Loader reads the stored set for one application.
// Implementations may restrict the set to a language and territory.
type Loader interface {
	Load(ctx context.Context, filter Filter) ([]record.Record, error)
}

// Writer persists a merged set.
// Write must be atomic: either every record is written or none is, and a
// uniqueness violation must be returned as an error rather than ignored.
type Writer interface {
	Write(ctx context.Context, appID string, records []record.Record) error
}

// Store is the storage boundary used by the orchestration layer.
type Store interface {
	Loader
	Writer
}

// Filter selects a slice of the stored set.
type Filter struct {
	// AppID is required.
	AppID string

	// Lang restricts to one language when non-empty.
	Lang string

	// Territory restricts to one territory when HasTerritory is true.
	// An empty Territory with HasTerritory selects records without territory.
	Territory    string
	HasTerritory bool
}

// CacheKey returns a unique key for caching snapshots of this filter.
func (f Filter) CacheKey() string {
	key := f.AppID + "|" + f.Lang
	if f.HasTerritory {
		key += "|" + f.Territory
	} else {
		key += "|*"
	}
	return key
}
