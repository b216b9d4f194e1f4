// Package store persists localization records in a relational database.
//
// Records live in the localization_records table. The unique index
// idx_localization_identity on (app_id, lang, territory, text_key) enforces
// the uniqueness tuple; an absent territory is stored as the empty string so
// the index applies to it.
//
// Write replaces the stored set of one application with a merged set in a
// single transaction. Existing ids are updated in place and new ids are
// inserted. A unique violation rolls everything back and is returned as a
// *KeyConflictError.
//
// # Usage
//
//	s := store.New(db)
//	if err := s.Migrate(ctx); err != nil {
//	    return err
//	}
//	existing, err := s.Load(ctx, reconcile.Filter{AppID: "shop"})
package store
