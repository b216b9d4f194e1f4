// Package record defines the canonical localization record and its identity rules.
//
// A Record is identified by its uniqueness tuple (app, lang, territory, text key),
// never by its surrogate ID. The tuple is exposed as the comparable Key type so it
// can be used directly as a map key by the reconcile engine and the store.
//
// # Placeholder convention
//
// A record awaits translation while its localized text is empty or equal to its
// original text verbatim. New records are seeded that way by New.
//
// # Validation
//
// New and Validate reject records with an empty app, lang, text key or original
// text with a *MalformedRecordError naming the offending field. The error matches
// ErrMalformedRecord with errors.Is.
package record
