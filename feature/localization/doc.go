// Package localization exposes reconciliation, hand-off and translation of
// localization records over HTTP and to the command line.
//
// # Workflow
//
//   - Sync: source items are fanned out to the target locales and reconciled
//     with the stored set. Existing translations survive; changed source texts
//     reset the translation to the placeholder.
//   - Export / Publish: records awaiting translation are written as CSV
//     exchange files, either returned directly or uploaded to the hand-off bucket.
//   - Import / Fetch: translated exchange files are applied by key. Unknown
//     keys are rejected per row and no record is created.
//   - Translate: pending records are sent to a machine translation backend.
//   - Purge: records orphaned by a fresh extraction are deleted on request.
//
// Writes to one application are serialized.
//
// # HTTP Endpoints
//
//   - GET /localization/:app/records : Lists records (supports ?lang= and ?territory=).
//   - GET /localization/:app/stats : Per-locale totals and pending counts.
//   - GET /localization/:app/export : CSV of pending records (supports ?all=true).
//   - POST /localization/:app/import : Applies a CSV body (supports ?dry_run=true).
//   - POST /localization/:app/sync : Reconciles posted source items (supports ?dry_run=true).
//   - POST /localization/:app/publish : Uploads exchange files to the bucket.
package localization
