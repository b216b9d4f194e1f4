package extract

import (
	"context"

	"locale-manager/core/record"
)

// Item is one source-language text item.
type Item struct {
	// Key is the text key used by the application.
	Key string `json:"key"`

	// Text is the source-language text.
	Text string `json:"text"`

	// Comment is the translator hint, if any.
	Comment string `json:"comment,omitempty"`

	// Line is the 1-based line the item starts on, when read from a file.
	Line int `json:"line,omitempty"`
}

// Extractor returns the source-language items of one application.
type Extractor interface {
	Extract(ctx context.Context) ([]Item, error)
}

// Static is an Extractor over a fixed item list.
type Static []Item

// Extract returns the items.
func (s Static) Extract(_ context.Context) ([]Item, error) {
	return s, nil
}

// FanOut builds the incoming set: one record per item and target locale,
// with the localized text seeded with the placeholder.
// Items that do not form a valid record are returned as errors and skipped.
func FanOut(appID string, items []Item, targets []Locale) ([]record.Record, []error) {
	records := make([]record.Record, 0, len(items)*len(targets))
	var errs []error

	for _, target := range targets {
		for _, item := range items {
			r, err := record.New(appID, target.Lang, target.Territory, item.Key, item.Text, item.Comment)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			records = append(records, r)
		}
	}

	return records, errs
}
