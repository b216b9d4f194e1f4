// Package report provides the change report produced by a reconciliation pass.
//
// Outcomes are modelled as the Category enum (new, unchanged, updated, orphaned)
// so callers can switch over them exhaustively. A Report also carries the list of
// non-fatal errors (malformed records, rejected import items) so operators always
// see both the counts and what was refused.
package report
