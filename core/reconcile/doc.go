// Package reconcile merges previously stored localization records with a freshly
// extracted set without losing or duplicating anything.
//
// The engine is keyed by the uniqueness tuple (app, lang, territory, text key) and
// classifies every record into one of four outcomes:
//
//   - new: the key was never stored; a record is inserted with a fresh ID and a
//     placeholder translation.
//   - unchanged: the original text is identical; the stored record (and its
//     translation) is kept verbatim.
//   - updated: the original text changed; the stored ID is kept, the original text
//     is replaced and the translation is reset to the placeholder.
//   - orphaned: the key disappeared from the extraction; the record is kept and only
//     reported. Deletion is a separate, explicit purge.
//
// # Architecture
//
// 1. Engine: Reconcile is a pure function of (existing, incoming). It either returns
//    the merged set, the change report and the records needing translation, or fails
//    as a whole (duplicate keys in a batch).
//
// 2. Partitions: ReconcilePartitions runs one pass per (app, lang, territory)
//    partition concurrently. Partitions never share keys, so results are combined
//    without coordination. A failure in any partition fails the whole run.
//
// 3. Plan / Apply: NewPlan computes the result without touching storage; Apply
//    writes the merged set through a Writer only when confirmed and not a dry run.
//
// 4. Import: ApplyTranslations fills localized text for records the engine already
//    knows about. It never creates records.
//
// 5. Cache: SnapshotCache keeps read-only snapshots of stored sets for listing
//    endpoints, with stampede protection.
//
// # Usage Example
//
//	plan, err := reconcile.NewPlan(ctx, "shop", existing, incoming, reconcile.Options{})
//	if err != nil {
//	    return err
//	}
//	written, err := reconcile.Apply(ctx, store, plan, reconcile.Options{Confirmed: true})
package reconcile
