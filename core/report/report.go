package report

import (
	"encoding/json"
	"fmt"

	"locale-manager/core/record"
)

// Category is the outcome of reconciliation for a single record.
type Category int

const (
	// CategoryNew marks a key that was not stored before.
	CategoryNew Category = iota
	// CategoryUnchanged marks a stored record whose original text did not change.
	CategoryUnchanged
	// CategoryUpdated marks a stored record whose original text changed.
	CategoryUpdated
	// CategoryOrphaned marks a stored record whose key is absent from the extraction.
	CategoryOrphaned
)

// Categories lists every category in report order.
func Categories() []Category {
	return []Category{CategoryNew, CategoryUnchanged, CategoryUpdated, CategoryOrphaned}
}

func (c Category) String() string {
	switch c {
	case CategoryNew:
		return "new"
	case CategoryUnchanged:
		return "unchanged"
	case CategoryUpdated:
		return "updated"
	case CategoryOrphaned:
		return "orphaned"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("unknown category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name.
func (c *Category) UnmarshalText(text []byte) error {
	for _, cat := range Categories() {
		if cat.String() == string(text) {
			*c = cat
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", string(text))
}

func (c Category) valid() bool {
	return c >= CategoryNew && c <= CategoryOrphaned
}

// Report aggregates the outcome of a reconciliation pass.
// It has no effect on the merged set.
type Report struct {
	keys   map[Category][]record.Key
	errors []error
}

// New returns an empty report.
func New() *Report {
	return &Report{keys: make(map[Category][]record.Key)}
}

// Add records a key under a category.
func (r *Report) Add(c Category, key record.Key) {
	r.keys[c] = append(r.keys[c], key)
}

// AddError appends a non-fatal error raised during the pass.
func (r *Report) AddError(err error) {
	if err != nil {
		r.errors = append(r.errors, err)
	}
}

// Count returns the number of keys in a category.
func (r *Report) Count(c Category) int {
	return len(r.keys[c])
}

// Keys returns the keys of a category in tuple order.
func (r *Report) Keys(c Category) []record.Key {
	keys := make([]record.Key, len(r.keys[c]))
	copy(keys, r.keys[c])
	record.SortKeys(keys)
	return keys
}

// Total is the number of categorized keys.
func (r *Report) Total() int {
	total := 0
	for _, c := range Categories() {
		total += r.Count(c)
	}
	return total
}

// Errors returns the collected non-fatal errors.
func (r *Report) Errors() []error {
	return r.errors
}

// HasChanges reports whether the pass produced new or updated records.
func (r *Report) HasChanges() bool {
	return r.Count(CategoryNew) > 0 || r.Count(CategoryUpdated) > 0
}

// Merge adds all keys and errors of other into r.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	for c, keys := range other.keys {
		r.keys[c] = append(r.keys[c], keys...)
	}
	r.errors = append(r.errors, other.errors...)
}

// Summary returns the per-category counts keyed by category name.
func (r *Report) Summary() map[string]int {
	summary := make(map[string]int, len(Categories()))
	for _, c := range Categories() {
		summary[c.String()] = r.Count(c)
	}
	return summary
}

type reportJSON struct {
	Summary map[string]int          `json:"summary"`
	Keys    map[string][]record.Key `json:"keys"`
	Errors  []string                `json:"errors"`
}

// MarshalJSON renders counts, keys and errors.
func (r *Report) MarshalJSON() ([]byte, error) {
	out := reportJSON{
		Summary: r.Summary(),
		Keys:    make(map[string][]record.Key, len(Categories())),
		Errors:  make([]string, 0, len(r.errors)),
	}
	for _, c := range Categories() {
		out.Keys[c.String()] = r.Keys(c)
	}
	for _, err := range r.errors {
		out.Errors = append(out.Errors, err.Error())
	}
	return json.Marshal(out)
}
