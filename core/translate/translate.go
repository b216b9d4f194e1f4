package translate

import (
	"context"
	"errors"
	"fmt"

	"locale-manager/core/reconcile"
	"locale-manager/core/record"
)

// ErrTranslationFailed is matched by every *ItemError.
var ErrTranslationFailed = errors.New("translation failed")

// Request asks for one text to be translated.
type Request struct {
	Key        record.Key `json:"key"`
	Text       string     `json:"text"`
	SourceLang string     `json:"source_lang"`
	TargetLang string     `json:"target_lang"`
}

// Result is the outcome of one Request.
type Result struct {
	Key  record.Key `json:"key"`
	Text string     `json:"text,omitempty"`
	Err  error      `json:"-"`
}

// Translator translates batches of texts.
// It returns one Result per Request in the same order. The error return is
// reserved for failures that prevent any result, such as a cancelled context.
type Translator interface {
	Translate(ctx context.Context, requests []Request) ([]Result, error)
}

// ItemError reports a single failed translation.
type ItemError struct {
	Key record.Key
	Err error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("failed to translate %s: %v", e.Key, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

func (e *ItemError) Is(target error) bool {
	return target == ErrTranslationFailed
}

// RequestsFor builds one request per record awaiting translation.
// The target is the record's locale; already translated records are skipped.
func RequestsFor(records []record.Record, sourceLang string) []Request {
	requests := make([]Request, 0, len(records))
	for _, r := range records {
		if !r.IsAwaitingTranslation() {
			continue
		}
		requests = append(requests, Request{
			Key:        r.Key(),
			Text:       r.TextOriginal,
			SourceLang: sourceLang,
			TargetLang: r.Partition().Locale(),
		})
	}
	return requests
}

// ItemsFrom keeps the successful results as import items and returns the
// failures separately. A result with an empty text counts as a failure.
// Each item carries the source text of its request so a source edited in the
// meantime is rejected on apply.
func ItemsFrom(requests []Request, results []Result) ([]reconcile.TranslationItem, []error) {
	originals := make(map[record.Key]string, len(requests))
	for _, req := range requests {
		originals[req.Key] = req.Text
	}

	items := make([]reconcile.TranslationItem, 0, len(results))
	var failures []error
	for _, res := range results {
		switch {
		case res.Err != nil:
			failures = append(failures, &ItemError{Key: res.Key, Err: res.Err})
		case res.Text == "":
			failures = append(failures, &ItemError{Key: res.Key, Err: errors.New("empty translation")})
		default:
			items = append(items, reconcile.TranslationItem{
				Key:      res.Key,
				Text:     res.Text,
				Original: originals[res.Key],
			})
		}
	}
	return items, failures
}
