package localization

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"locale-manager/core/exchange"
	"locale-manager/core/extract"
	"locale-manager/core/reconcile"
	"locale-manager/core/record"
	"locale-manager/core/report"
	"locale-manager/core/storage"
	"locale-manager/core/store"
	"locale-manager/core/translate"

	"go.uber.org/zap"
)

// Store is the persistence the service needs.
type Store interface {
	reconcile.Store
	Purge(ctx context.Context, keys []record.Key) (int64, error)
	Stats(ctx context.Context, appID string) ([]store.PartitionStats, error)
}

// Settings holds the reconciliation settings of the service.
type Settings struct {
	// SourceLang is the locale texts are written in.
	SourceLang string
	// Targets are the locales every extracted item is fanned out to.
	Targets []extract.Locale
	// Parallelism bounds the partitions reconciled at once.
	Parallelism int
	// CacheTTL is the lifetime of cached listings.
	CacheTTL time.Duration
	// Region is used when the hand-off bucket has to be created.
	Region string
}

// Service runs reconciliation, hand-off and translation for applications.
// Every operation is scoped to an explicit app id; writes to one app are
// serialized.
type Service struct {
	store    Store
	client   storage.Client
	bucket   string
	logger   *zap.Logger
	settings Settings
	cache    *reconcile.SnapshotCache
	locks    sync.Map
	options  []reconcile.Option
}

// NewService creates a new localization service.
func NewService(st Store, client storage.Client, bucket string, logger *zap.Logger, settings Settings, opts ...reconcile.Option) *Service {
	return &Service{
		store:    st,
		client:   client,
		bucket:   bucket,
		logger:   logger,
		settings: settings,
		cache:    reconcile.NewSnapshotCache(settings.CacheTTL),
		options:  opts,
	}
}

// lock serializes writers of one application.
func (s *Service) lock(appID string) func() {
	mu, _ := s.locks.LoadOrStore(appID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// Sync extracts the source items, fans them out to the target locales and
// reconciles them against the stored set. Items that cannot form a record
// are reported as errors in the plan.
func (s *Service) Sync(ctx context.Context, appID string, ex extract.Extractor, opts reconcile.Options) (*reconcile.Plan, error) {
	if len(s.settings.Targets) == 0 {
		return nil, errors.New("no target locales configured")
	}

	items, err := ex.Extract(ctx)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	incoming, rejected := extract.FanOut(appID, items, s.settings.Targets)
	s.logger.Info("Extracted source items",
		zap.String("app", appID),
		zap.Int("items", len(items)),
		zap.Int("targets", len(s.settings.Targets)),
		zap.Int("records", len(incoming)),
		zap.Int("rejected", len(rejected)))

	plan, err := s.Reconcile(ctx, appID, incoming, opts)
	if err != nil {
		return nil, err
	}
	for _, e := range rejected {
		plan.Report.AddError(e)
	}
	return plan, nil
}

// Reconcile merges incoming records into the stored set of an application
// and writes the result when opts is confirmed and not a dry run.
func (s *Service) Reconcile(ctx context.Context, appID string, incoming []record.Record, opts reconcile.Options) (*reconcile.Plan, error) {
	unlock := s.lock(appID)
	defer unlock()

	existing, err := s.store.Load(ctx, reconcile.Filter{AppID: appID})
	if err != nil {
		return nil, err
	}

	if opts.Parallelism == 0 {
		opts.Parallelism = s.settings.Parallelism
	}

	plan, err := reconcile.NewPlan(ctx, appID, existing, incoming, opts, s.options...)
	if err != nil {
		return nil, err
	}

	written, err := reconcile.Apply(ctx, s.store, plan, opts)
	if err != nil {
		return nil, err
	}
	if written > 0 {
		s.cache.Invalidate(appID)
	}

	s.logReport(appID, plan.Report, written, opts)
	return plan, nil
}

func (s *Service) logReport(appID string, rep *report.Report, written int, opts reconcile.Options) {
	fields := []zap.Field{
		zap.String("app", appID),
		zap.Bool("dry_run", opts.DryRun),
		zap.Int("written", written),
		zap.Int("errors", len(rep.Errors())),
	}
	for _, c := range report.Categories() {
		fields = append(fields, zap.Int(c.String(), rep.Count(c)))
	}
	s.logger.Info("Reconciliation finished", fields...)

	for _, err := range rep.Errors() {
		s.logger.Warn("Record rejected", zap.String("app", appID), zap.Error(err))
	}
}

// Records returns stored records through the listing cache.
func (s *Service) Records(ctx context.Context, filter reconcile.Filter) ([]record.Record, error) {
	snap, err := s.cache.GetOrLoad(ctx, s.store, filter)
	if err != nil {
		return nil, err
	}
	return snap.Records, nil
}

// Stats returns per-partition counts of an application.
func (s *Service) Stats(ctx context.Context, appID string) ([]store.PartitionStats, error) {
	return s.store.Stats(ctx, appID)
}

// Export renders the records matching filter as an exchange file.
// With onlyPending, only records awaiting translation are included.
// Returns the file and the number of rows.
func (s *Service) Export(ctx context.Context, filter reconcile.Filter, onlyPending bool) ([]byte, int, error) {
	records, err := s.store.Load(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if onlyPending {
		pending := records[:0:0]
		for _, r := range records {
			if r.IsAwaitingTranslation() {
				pending = append(pending, r)
			}
		}
		records = pending
	}

	var buf bytes.Buffer
	if err := exchange.WriteCSV(&buf, records); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), len(records), nil
}

// Publish uploads one exchange file per locale of an application to the
// hand-off bucket. Locales without rows are skipped. Returns the object names.
func (s *Service) Publish(ctx context.Context, appID string, onlyPending bool) ([]string, error) {
	if s.client == nil {
		return nil, errors.New("hand-off storage is not configured")
	}
	if err := storage.EnsureBucket(ctx, s.client, s.bucket, s.settings.Region); err != nil {
		return nil, err
	}

	records, err := s.store.Load(ctx, reconcile.Filter{AppID: appID})
	if err != nil {
		return nil, err
	}

	var partitions []record.Partition
	byPartition := make(map[record.Partition][]record.Record)
	for _, r := range records {
		if onlyPending && !r.IsAwaitingTranslation() {
			continue
		}
		p := r.Partition()
		if _, ok := byPartition[p]; !ok {
			partitions = append(partitions, p)
		}
		byPartition[p] = append(byPartition[p], r)
	}

	var keys []string
	for _, p := range partitions {
		var buf bytes.Buffer
		if err := exchange.WriteCSV(&buf, byPartition[p]); err != nil {
			return keys, err
		}
		key := storage.HandoffKey(appID, p.Locale())
		if err := storage.PutBytes(ctx, s.client, s.bucket, key, buf.Bytes(), storage.CSVContentType); err != nil {
			return keys, err
		}
		s.logger.Info("Published hand-off file",
			zap.String("app", appID),
			zap.String("object", key),
			zap.Int("rows", len(byPartition[p])))
		keys = append(keys, key)
	}
	return keys, nil
}

// ImportOutcome is the result of applying translated texts.
type ImportOutcome struct {
	// Source names where the translations came from.
	Source string `json:"source,omitempty"`
	// Received is the number of items offered.
	Received int `json:"received"`
	// Skipped counts rows left blank by the translator.
	Skipped int `json:"skipped"`
	// Applied lists the keys whose text was set.
	Applied []record.Key `json:"applied"`
	// Written is the number of records persisted.
	Written int `json:"written"`
	// Errors lists rejected items.
	Errors []error `json:"-"`
}

// ErrorMessages returns Errors as strings.
func (o *ImportOutcome) ErrorMessages() []string {
	return errorMessages(o.Errors)
}

func errorMessages(errs []error) []string {
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}

// Import applies an exchange file to the stored set of an application.
// Only known keys are updated; no record is ever created.
func (s *Service) Import(ctx context.Context, appID string, data []byte, opts reconcile.Options) (*ImportOutcome, error) {
	rows, err := exchange.ReadCSV(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	items, skipped, rejected := exchange.Items(appID, rows)
	outcome, err := s.applyItems(ctx, appID, items, opts)
	if err != nil {
		return nil, err
	}
	outcome.Received = len(rows)
	outcome.Skipped = skipped
	outcome.Errors = append(rejected, outcome.Errors...)
	return outcome, nil
}

// ImportProject applies the translated Localizable.strings files found in a
// project tree, such as texts translated by hand in the project itself.
// Every locale other than the source locale is read. Only known keys are
// updated; no record is ever created.
func (s *Service) ImportProject(ctx context.Context, appID, root string, opts reconcile.Options) (*ImportOutcome, error) {
	source, err := extract.ParseLocale(s.settings.SourceLang)
	if err != nil {
		return nil, fmt.Errorf("invalid source locale: %w", err)
	}

	byLocale, err := extract.ProjectTranslations(ctx, root, source)
	if err != nil {
		return nil, err
	}

	locales := make([]extract.Locale, 0, len(byLocale))
	for loc := range byLocale {
		locales = append(locales, loc)
	}
	sort.Slice(locales, func(i, j int) bool { return locales[i].String() < locales[j].String() })

	var items []reconcile.TranslationItem
	for _, loc := range locales {
		for _, item := range byLocale[loc] {
			items = append(items, reconcile.TranslationItem{
				Key: record.Key{
					AppID:     appID,
					Lang:      loc.Lang,
					Territory: loc.Territory,
					TextKey:   item.Key,
				},
				Text: item.Text,
			})
		}
	}

	outcome, err := s.applyItems(ctx, appID, items, opts)
	if err != nil {
		return nil, err
	}
	outcome.Source = root
	outcome.Received = len(items)
	return outcome, nil
}

func (s *Service) applyItems(ctx context.Context, appID string, items []reconcile.TranslationItem, opts reconcile.Options) (*ImportOutcome, error) {
	unlock := s.lock(appID)
	defer unlock()

	existing, err := s.store.Load(ctx, reconcile.Filter{AppID: appID})
	if err != nil {
		return nil, err
	}

	res := reconcile.ApplyTranslations(existing, items)
	outcome := &ImportOutcome{
		Received: len(items),
		Applied:  res.Applied,
		Errors:   res.Errors,
	}

	if len(res.Applied) == 0 || !opts.Confirmed || opts.DryRun {
		return outcome, nil
	}

	if err := s.store.Write(ctx, appID, res.Records); err != nil {
		return nil, fmt.Errorf("failed to write translations for %s: %w", appID, err)
	}
	s.cache.Invalidate(appID)
	outcome.Written = len(res.Applied)

	s.logger.Info("Translations imported",
		zap.String("app", appID),
		zap.Int("applied", len(res.Applied)),
		zap.Int("rejected", len(res.Errors)))
	return outcome, nil
}

// Fetch imports every hand-off file of an application from the bucket.
// With remove, a file is deleted once its import was written.
func (s *Service) Fetch(ctx context.Context, appID string, opts reconcile.Options, remove bool) ([]*ImportOutcome, error) {
	if s.client == nil {
		return nil, errors.New("hand-off storage is not configured")
	}

	keys, err := storage.ListHandoffs(ctx, s.client, s.bucket, appID)
	if err != nil {
		return nil, err
	}

	var outcomes []*ImportOutcome
	for _, key := range keys {
		data, err := storage.GetBytes(ctx, s.client, s.bucket, key)
		if err != nil {
			return outcomes, err
		}
		outcome, err := s.Import(ctx, appID, data, opts)
		if err != nil {
			return outcomes, fmt.Errorf("%s: %w", key, err)
		}
		outcome.Source = key
		outcomes = append(outcomes, outcome)

		if remove && opts.Confirmed && !opts.DryRun {
			if err := storage.Remove(ctx, s.client, s.bucket, key); err != nil {
				return outcomes, err
			}
		}
	}
	return outcomes, nil
}

// TranslateOutcome is the result of a machine translation round trip.
type TranslateOutcome struct {
	// Requested is the number of texts sent.
	Requested int `json:"requested"`
	// Applied lists the keys whose text was set.
	Applied []record.Key `json:"applied"`
	// Written is the number of records persisted.
	Written int `json:"written"`
	// Failures lists the texts that could not be translated or applied.
	Failures []error `json:"-"`
}

// Translate sends every record awaiting translation to tr and applies the
// successful results. Failed items stay pending and are reported, as do
// items whose source text changed while the translation was running.
func (s *Service) Translate(ctx context.Context, appID string, tr translate.Translator, opts reconcile.Options) (*TranslateOutcome, error) {
	records, err := s.store.Load(ctx, reconcile.Filter{AppID: appID})
	if err != nil {
		return nil, err
	}

	requests := translate.RequestsFor(records, s.settings.SourceLang)
	if len(requests) == 0 {
		return &TranslateOutcome{}, nil
	}

	results, err := tr.Translate(ctx, requests)
	if err != nil {
		return nil, fmt.Errorf("translation failed: %w", err)
	}
	items, failures := translate.ItemsFrom(requests, results)

	applied, err := s.applyItems(ctx, appID, items, opts)
	if err != nil {
		return nil, err
	}

	for _, f := range failures {
		s.logger.Warn("Translation failed", zap.String("app", appID), zap.Error(f))
	}

	return &TranslateOutcome{
		Requested: len(requests),
		Applied:   applied.Applied,
		Written:   applied.Written,
		Failures:  append(failures, applied.Errors...),
	}, nil
}

// Orphans reconciles a fresh extraction without writing and returns the
// keys of stored records that are no longer extracted.
func (s *Service) Orphans(ctx context.Context, appID string, ex extract.Extractor) ([]record.Key, error) {
	plan, err := s.Sync(ctx, appID, ex, reconcile.Options{DryRun: true})
	if err != nil {
		return nil, err
	}
	return plan.Report.Keys(report.CategoryOrphaned), nil
}

// Purge deletes the orphaned records of an application. Only keys that are
// orphaned against a fresh extraction are removed.
// Returns the orphaned keys and the number of deleted rows.
func (s *Service) Purge(ctx context.Context, appID string, ex extract.Extractor, opts reconcile.Options) ([]record.Key, int64, error) {
	orphans, err := s.Orphans(ctx, appID, ex)
	if err != nil {
		return nil, 0, err
	}
	if len(orphans) == 0 || !opts.Confirmed || opts.DryRun {
		return orphans, 0, nil
	}

	unlock := s.lock(appID)
	defer unlock()

	deleted, err := s.store.Purge(ctx, orphans)
	if err != nil {
		return orphans, 0, err
	}
	s.cache.Invalidate(appID)

	s.logger.Info("Orphaned records purged", zap.String("app", appID), zap.Int64("deleted", deleted))
	return orphans, deleted, nil
}

// Deploy writes the stored records of an application as
// <locale>.lproj/Localizable.strings files under dir.
func (s *Service) Deploy(ctx context.Context, appID, dir string) ([]string, error) {
	records, err := s.store.Load(ctx, reconcile.Filter{AppID: appID})
	if err != nil {
		return nil, err
	}
	return extract.Deploy(dir, appID, records)
}
