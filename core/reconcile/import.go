package reconcile

import (
	"locale-manager/core/record"
)

// TranslationItem is a translated text returned by translators or a service.
type TranslationItem struct {
	Key  record.Key `json:"key"`
	Text string     `json:"text"`

	// Original is the source text the item was translated from.
	// When set, the item only applies while the stored source still matches.
	Original string `json:"original,omitempty"`
}

// ImportResult is the outcome of applying translations to a merged set.
type ImportResult struct {
	// Records is the merged set with translations filled in.
	Records []record.Record `json:"records"`

	// Applied lists the keys whose localized text was set.
	Applied []record.Key `json:"applied"`

	// Errors lists rejected items. Rejecting an item never aborts the batch.
	Errors []error `json:"-"`
}

// ApplyTranslations fills the localized text of known records by key.
// Unknown keys are rejected with *UnknownKeyError and empty texts with
// *record.MalformedRecordError, and items whose Original no longer matches
// the stored source with *StaleTranslationError; the remaining items are
// still applied.
// No record is ever created. The input slice is not modified.
func ApplyTranslations(merged []record.Record, items []TranslationItem) *ImportResult {
	records := make([]record.Record, len(merged))
	copy(records, merged)

	positions := make(map[record.Key]int, len(records))
	for i, r := range records {
		positions[r.Key()] = i
	}

	result := &ImportResult{Records: records}
	for _, item := range items {
		i, ok := positions[item.Key]
		if !ok {
			result.Errors = append(result.Errors, &UnknownKeyError{Key: item.Key})
			continue
		}
		if item.Text == "" {
			result.Errors = append(result.Errors, &record.MalformedRecordError{
				Field: record.FieldTextLocalized,
				Key:   item.Key,
			})
			continue
		}
		if item.Original != "" && item.Original != records[i].TextOriginal {
			result.Errors = append(result.Errors, &StaleTranslationError{
				Key:      item.Key,
				Original: item.Original,
				Current:  records[i].TextOriginal,
			})
			continue
		}
		records[i].TextLocalized = item.Text
		result.Applied = append(result.Applied, item.Key)
	}

	return result
}
