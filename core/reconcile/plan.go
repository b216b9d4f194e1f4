package reconcile

import (
	"context"
	"fmt"

	"locale-manager/core/record"
)

// NewPlan reconciles existing against incoming for one application.
// It does NOT write anything; use Apply for that.
func NewPlan(ctx context.Context, appID string, existing, incoming []record.Record, opts Options, reconcileOpts ...Option) (*Plan, error) {
	for _, r := range existing {
		if r.AppID != appID {
			return nil, fmt.Errorf("existing record %s does not belong to app %s", r.Key(), appID)
		}
	}
	for _, r := range incoming {
		if r.AppID != "" && r.AppID != appID {
			return nil, fmt.Errorf("incoming record %s does not belong to app %s", r.Key(), appID)
		}
	}

	result, err := ReconcilePartitions(ctx, existing, incoming, opts.Parallelism, reconcileOpts...)
	if err != nil {
		return nil, err
	}

	return &Plan{
		AppID:         appID,
		ExistingCount: len(existing),
		IncomingCount: len(incoming),
		Result:        result,
	}, nil
}

// Apply writes the merged set of a plan.
// Returns the number of records written.
// Requires opts.Confirmed=true and opts.DryRun=false to actually write.
func Apply(ctx context.Context, w Writer, plan *Plan, opts Options) (int, error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}
	if plan == nil || plan.Result == nil {
		return 0, fmt.Errorf("nothing to apply: plan is empty")
	}

	if err := w.Write(ctx, plan.AppID, plan.Merged); err != nil {
		return 0, fmt.Errorf("failed to write merged set for %s: %w", plan.AppID, err)
	}

	return len(plan.Merged), nil
}
