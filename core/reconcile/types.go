package reconcile

import (
	"errors"
	"fmt"

	"locale-manager/core/record"
	"locale-manager/core/report"

	"github.com/google/uuid"
)

// Result is the output of a reconciliation pass.
type Result struct {
	// Merged is the new authoritative set, sorted by uniqueness tuple.
	Merged []record.Record `json:"merged"`

	// Report lists the outcome of every key and the non-fatal errors.
	Report *report.Report `json:"report"`

	// NeedsTranslation is the subset of Merged still holding a placeholder.
	NeedsTranslation []record.Record `json:"needs_translation"`
}

// Errors returns the per-record errors collected during the pass.
func (r *Result) Errors() []error {
	if r == nil || r.Report == nil {
		return nil
	}
	return r.Report.Errors()
}

// Options controls how a plan is applied.
type Options struct {
	// DryRun prevents any write if true.
	DryRun bool

	// Confirmed indicates the operator confirmed the write.
	// If false, Apply does nothing regardless of DryRun.
	Confirmed bool

	// Parallelism bounds the number of partitions reconciled at once.
	// Zero or negative means no limit.
	Parallelism int
}

// Plan is a computed reconciliation that has not been written yet.
type Plan struct {
	// AppID is the application the plan belongs to.
	AppID string `json:"app_id"`

	// ExistingCount is the size of the stored set the plan was built from.
	ExistingCount int `json:"existing_count"`

	// IncomingCount is the size of the extracted set the plan was built from.
	IncomingCount int `json:"incoming_count"`

	*Result
}

// IDGenerator returns a new, never reused record ID.
type IDGenerator func() string

// Option customizes a reconciliation pass.
type Option func(*config)

type config struct {
	newID IDGenerator
}

func newConfig(opts []Option) *config {
	cfg := &config{newID: uuid.NewString}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithIDGenerator replaces the default UUID generator.
// The generator must be safe for concurrent use with ReconcilePartitions.
func WithIDGenerator(gen IDGenerator) Option {
	return func(c *config) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// Source names the input set a duplicate key was found in.
type Source string

const (
	// SourceIncoming is the freshly extracted set.
	SourceIncoming Source = "incoming"
	// SourceExisting is the stored set.
	SourceExisting Source = "existing"
)

var (
	// ErrDuplicateKeyInBatch is matched by every DuplicateKeyError.
	ErrDuplicateKeyInBatch = errors.New("duplicate key in batch")

	// ErrUnknownKeyOnImport is matched by every UnknownKeyError.
	ErrUnknownKeyOnImport = errors.New("unknown key on import")

	// ErrStaleTranslation is matched by every StaleTranslationError.
	ErrStaleTranslation = errors.New("stale translation")
)

// DuplicateKeyError aborts a pass because two records of one set share a key.
type DuplicateKeyError struct {
	Key    record.Key
	Source Source
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %s in %s batch", e.Key, e.Source)
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKeyInBatch
}

// UnknownKeyError rejects an import item whose key was never reconciled.
type UnknownKeyError struct {
	Key record.Key
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown key %s on import", e.Key)
}

func (e *UnknownKeyError) Is(target error) bool {
	return target == ErrUnknownKeyOnImport
}

// StaleTranslationError rejects an item translated from a source text that
// has changed since the translation was requested.
type StaleTranslationError struct {
	Key      record.Key
	Original string
	Current  string
}

func (e *StaleTranslationError) Error() string {
	return fmt.Sprintf("stale translation for %s: translated %q but source is now %q", e.Key, e.Original, e.Current)
}

func (e *StaleTranslationError) Is(target error) bool {
	return target == ErrStaleTranslation
}
