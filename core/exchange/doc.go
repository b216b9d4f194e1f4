// Package exchange reads and writes the tabular hand-off format used to send
// records to translators and to bring their work back.
//
// The column order is fixed:
//
//	id,appId,lang,territory,textKey,textLocalized,textComment
//
// The original text is not part of the format. Imports are therefore matched
// against the live merged set by key, which still carries the original text.
package exchange
