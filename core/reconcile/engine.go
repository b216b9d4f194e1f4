package reconcile

import (
	"context"
	"sort"

	"locale-manager/core/record"
	"locale-manager/core/report"

	"golang.org/x/sync/errgroup"
)

// Reconcile merges the stored set with a freshly extracted set.
// It fails with a *DuplicateKeyError if either set contains a key twice;
// in that case no result is produced.
func Reconcile(existing, incoming []record.Record, opts ...Option) (*Result, error) {
	cfg := newConfig(opts)

	existingIndex, dups := record.Index(existing)
	if len(dups) > 0 {
		return nil, &DuplicateKeyError{Key: dups[0], Source: SourceExisting}
	}

	rep := report.New()

	// Presence covers every identifiable incoming key, including malformed ones,
	// so a rejected record never turns its stored counterpart into an orphan.
	present := make(map[record.Key]struct{}, len(incoming))
	admitted := make([]record.Record, 0, len(incoming))
	for _, in := range incoming {
		k := in.Key()
		identifiable := in.AppID != "" && in.Lang != "" && in.TextKey != ""
		if identifiable {
			if _, seen := present[k]; seen {
				return nil, &DuplicateKeyError{Key: k, Source: SourceIncoming}
			}
			present[k] = struct{}{}
		}
		if err := in.Validate(); err != nil {
			rep.AddError(err)
			continue
		}
		admitted = append(admitted, in)
	}

	merged := make([]record.Record, 0, len(existingIndex)+len(admitted))
	consumed := make(map[record.Key]struct{}, len(admitted))

	for _, in := range admitted {
		k := in.Key()
		consumed[k] = struct{}{}

		cur, ok := existingIndex[k]
		switch {
		case !ok:
			in.ID = cfg.newID()
			in.ResetTranslation()
			merged = append(merged, in)
			rep.Add(report.CategoryNew, k)
		case cur.TextOriginal == in.TextOriginal:
			merged = append(merged, cur)
			rep.Add(report.CategoryUnchanged, k)
		default:
			cur.TextOriginal = in.TextOriginal
			cur.TextComment = in.TextComment
			cur.ResetTranslation()
			merged = append(merged, cur)
			rep.Add(report.CategoryUpdated, k)
		}
	}

	for k, cur := range existingIndex {
		if _, done := consumed[k]; done {
			continue
		}
		merged = append(merged, cur)
		if _, ok := present[k]; ok {
			rep.Add(report.CategoryUnchanged, k)
		} else {
			rep.Add(report.CategoryOrphaned, k)
		}
	}

	record.SortRecords(merged)

	return &Result{
		Merged:           merged,
		Report:           rep,
		NeedsTranslation: pending(merged),
	}, nil
}

// ReconcilePartitions runs one pass per (app, lang, territory) partition.
// Up to limit partitions are reconciled concurrently; limit <= 0 means no bound.
// If any partition fails, the whole run fails and no result is returned.
func ReconcilePartitions(ctx context.Context, existing, incoming []record.Record, limit int, opts ...Option) (*Result, error) {
	existingParts := groupByPartition(existing)
	incomingParts := groupByPartition(incoming)

	partitions := make([]record.Partition, 0, len(existingParts)+len(incomingParts))
	seen := make(map[record.Partition]struct{})
	for _, groups := range []map[record.Partition][]record.Record{existingParts, incomingParts} {
		for p := range groups {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			partitions = append(partitions, p)
		}
	}
	sort.Slice(partitions, func(i, j int) bool {
		return partitions[i].String() < partitions[j].String()
	})

	results := make([]*Result, len(partitions))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, p := range partitions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := Reconcile(existingParts[p], incomingParts[p], opts...)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	combined := &Result{Report: report.New()}
	for _, res := range results {
		combined.Merged = append(combined.Merged, res.Merged...)
		combined.Report.Merge(res.Report)
	}
	record.SortRecords(combined.Merged)
	combined.NeedsTranslation = pending(combined.Merged)

	return combined, nil
}

// groupByPartition splits records by partition, preserving input order.
func groupByPartition(records []record.Record) map[record.Partition][]record.Record {
	groups := make(map[record.Partition][]record.Record)
	for _, r := range records {
		p := r.Partition()
		groups[p] = append(groups[p], r)
	}
	return groups
}

// pending returns the records still awaiting translation.
func pending(merged []record.Record) []record.Record {
	out := make([]record.Record, 0)
	for _, r := range merged {
		if r.IsAwaitingTranslation() {
			out = append(out, r)
		}
	}
	return out
}
