package checks

import (
	"context"
	"errors"

	"locale-manager/core/reconcile"
	"locale-manager/core/record"
	"locale-manager/core/store"
)

// SchemaReport is the outcome of the schema check.
type SchemaReport struct {
	Table   string   `json:"table"`
	Exists  bool     `json:"exists"`
	Missing []string `json:"missing,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// OK reports whether the table matches the model.
func (r *SchemaReport) OK() bool {
	return r.Exists && len(r.Missing) == 0 && r.Error == ""
}

// CheckSchema compares the records table with the model.
// Schema problems are part of the report; only query failures are returned.
func CheckSchema(ctx context.Context, st *store.Store) (*SchemaReport, error) {
	if st == nil {
		return nil, errors.New("database is not connected")
	}

	report := &SchemaReport{Table: store.TableName, Exists: true}
	err := st.VerifySchema(ctx)

	var schemaErr *store.SchemaError
	switch {
	case err == nil:
	case errors.As(err, &schemaErr):
		report.Exists = len(schemaErr.Missing) > 0
		report.Missing = schemaErr.Missing
	default:
		report.Error = err.Error()
	}
	return report, nil
}

// AppReport lists the stored records of one application that break the
// record invariants.
type AppReport struct {
	AppID      string       `json:"app_id"`
	Records    int          `json:"records"`
	Duplicates []record.Key `json:"duplicates"`
	Malformed  []string     `json:"malformed"`
	MissingID  []record.Key `json:"missing_id"`
}

// HasIssues reports whether any invariant is broken.
func (r *AppReport) HasIssues() bool {
	return len(r.Duplicates) > 0 || len(r.Malformed) > 0 || len(r.MissingID) > 0
}

// CheckRecords validates the stored set of every application.
// Rows without an app id are reported under an empty AppID, each one as
// malformed.
func CheckRecords(ctx context.Context, st *store.Store) ([]*AppReport, error) {
	if st == nil {
		return nil, errors.New("database is not connected")
	}

	apps, err := st.Apps(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]*AppReport, 0, len(apps))
	for _, app := range apps {
		var records []record.Record
		if app == "" {
			records, err = st.Unassigned(ctx)
		} else {
			records, err = st.Load(ctx, reconcile.Filter{AppID: app})
		}
		if err != nil {
			return nil, err
		}

		rep := &AppReport{
			AppID:      app,
			Records:    len(records),
			Duplicates: []record.Key{},
			Malformed:  []string{},
			MissingID:  []record.Key{},
		}
		_, rep.Duplicates = record.Index(records)
		if rep.Duplicates == nil {
			rep.Duplicates = []record.Key{}
		}
		for _, r := range records {
			if err := r.Validate(); err != nil {
				rep.Malformed = append(rep.Malformed, err.Error())
			}
			if r.ID == "" {
				rep.MissingID = append(rep.MissingID, r.Key())
			}
		}
		reports = append(reports, rep)
	}
	return reports, nil
}
