// Package translate is the boundary to machine translation services.
//
// A Translator takes a batch of requests and returns one Result per request,
// in order. A failed item carries Err and its text is never applied; the
// rest of the batch still succeeds. ItemsFrom splits results into import
// items for reconcile.ApplyTranslations and the list of failures.
//
// GoogleTranslator talks to the Cloud Translation v2 API. Requests are grouped
// by language pair and sent in chunks of Config.BatchSize.
//
//	t, err := translate.NewGoogleTranslator(ctx, cfg.Translation, logger)
//	requests := translate.RequestsFor(plan.NeedsTranslation, "en")
//	results, err := t.Translate(ctx, requests)
//	items, failures := translate.ItemsFrom(requests, results)
package translate
