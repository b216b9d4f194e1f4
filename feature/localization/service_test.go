package localization

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"locale-manager/core/database"
	"locale-manager/core/exchange"
	"locale-manager/core/extract"
	"locale-manager/core/reconcile"
	"locale-manager/core/record"
	"locale-manager/core/report"
	"locale-manager/core/storage"
	"locale-manager/core/storage/mocks"
	"locale-manager/core/store"
	"locale-manager/core/translate"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testSettings = Settings{
	SourceLang:  "en",
	Targets:     []extract.Locale{{Lang: "de"}, {Lang: "fr", Territory: "CA"}},
	Parallelism: 2,
}

var confirmed = reconcile.Options{Confirmed: true}

func setupService(t *testing.T) (*Service, *mocks.Client) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	st := store.New(db)
	require.NoError(t, st.Migrate(context.Background()))

	client := new(mocks.Client)
	return NewService(st, client, "test-bucket", zap.NewNop(), testSettings), client
}

func sourceItems() extract.Static {
	return extract.Static{
		{Key: "greeting", Text: "Hello"},
		{Key: "farewell", Text: "Goodbye", Comment: "Shown on logout"},
	}
}

func mustRecords(t *testing.T, svc *Service, f reconcile.Filter) []record.Record {
	t.Helper()
	records, err := svc.Records(context.Background(), f)
	require.NoError(t, err)
	return records
}

func find(records []record.Record, lang, key string) (record.Record, bool) {
	for _, r := range records {
		if r.Lang == lang && r.TextKey == key {
			return r, true
		}
	}
	return record.Record{}, false
}

func TestService_Sync(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstRun", func(t *testing.T) {
		svc, _ := setupService(t)

		plan, err := svc.Sync(ctx, "shop", sourceItems(), confirmed)
		require.NoError(t, err)
		assert.Equal(t, 4, plan.Report.Count(report.CategoryNew))
		assert.Len(t, plan.NeedsTranslation, 4)

		records := mustRecords(t, svc, reconcile.Filter{AppID: "shop"})
		require.Len(t, records, 4)
		for _, r := range records {
			assert.NotEmpty(t, r.ID)
			assert.True(t, r.IsAwaitingTranslation())
		}
	})

	t.Run("DryRunWritesNothing", func(t *testing.T) {
		svc, _ := setupService(t)

		plan, err := svc.Sync(ctx, "shop", sourceItems(), reconcile.Options{DryRun: true, Confirmed: true})
		require.NoError(t, err)
		assert.Equal(t, 4, plan.Report.Count(report.CategoryNew))
		assert.Empty(t, mustRecords(t, svc, reconcile.Filter{AppID: "shop"}))
	})

	t.Run("UnconfirmedWritesNothing", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.Sync(ctx, "shop", sourceItems(), reconcile.Options{})
		require.NoError(t, err)
		assert.Empty(t, mustRecords(t, svc, reconcile.Filter{AppID: "shop"}))
	})

	t.Run("SecondRunIsUnchanged", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.Sync(ctx, "shop", sourceItems(), confirmed)
		require.NoError(t, err)
		before := mustRecords(t, svc, reconcile.Filter{AppID: "shop"})

		plan, err := svc.Sync(ctx, "shop", sourceItems(), confirmed)
		require.NoError(t, err)
		assert.Equal(t, 4, plan.Report.Count(report.CategoryUnchanged))
		assert.False(t, plan.Report.HasChanges())
		assert.Equal(t, before, mustRecords(t, svc, reconcile.Filter{AppID: "shop"}))
	})

	t.Run("ChangedSourceResetsTranslation", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.Sync(ctx, "shop", sourceItems(), confirmed)
		require.NoError(t, err)
		translateAll(t, svc, "shop")

		changed := extract.Static{
			{Key: "greeting", Text: "Hi there"},
			{Key: "farewell", Text: "Goodbye", Comment: "Shown on logout"},
		}
		plan, err := svc.Sync(ctx, "shop", changed, confirmed)
		require.NoError(t, err)
		assert.Equal(t, 2, plan.Report.Count(report.CategoryUpdated))
		assert.Equal(t, 2, plan.Report.Count(report.CategoryUnchanged))

		records := mustRecords(t, svc, reconcile.Filter{AppID: "shop"})
		greeting, ok := find(records, "de", "greeting")
		require.True(t, ok)
		assert.Equal(t, "Hi there", greeting.TextLocalized)

		farewell, ok := find(records, "de", "farewell")
		require.True(t, ok)
		assert.Equal(t, "[de] Goodbye", farewell.TextLocalized)
	})

	t.Run("DuplicateItemsAbort", func(t *testing.T) {
		svc, _ := setupService(t)

		dup := extract.Static{{Key: "a", Text: "A"}, {Key: "a", Text: "B"}}
		_, err := svc.Sync(ctx, "shop", dup, confirmed)
		require.Error(t, err)
		assert.ErrorIs(t, err, reconcile.ErrDuplicateKeyInBatch)
		assert.Empty(t, mustRecords(t, svc, reconcile.Filter{AppID: "shop"}))
	})

	t.Run("MalformedItemsAreReported", func(t *testing.T) {
		svc, _ := setupService(t)

		items := extract.Static{{Key: "a", Text: "A"}, {Key: "empty", Text: ""}}
		plan, err := svc.Sync(ctx, "shop", items, confirmed)
		require.NoError(t, err)
		assert.Equal(t, 2, plan.Report.Count(report.CategoryNew))
		require.Len(t, plan.Report.Errors(), 2)
		assert.ErrorIs(t, plan.Report.Errors()[0], record.ErrMalformedRecord)
	})

	t.Run("NoTargets", func(t *testing.T) {
		svc, _ := setupService(t)
		svc.settings.Targets = nil

		_, err := svc.Sync(ctx, "shop", sourceItems(), confirmed)
		assert.Error(t, err)
	})

	t.Run("ExtractionFails", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.Sync(ctx, "shop", failingExtractor{}, confirmed)
		assert.ErrorContains(t, err, "extraction failed")
	})
}

type failingExtractor struct{}

func (failingExtractor) Extract(context.Context) ([]extract.Item, error) {
	return nil, errors.New("disk gone")
}

// translateAll imports "[lang] original" for every stored record.
func translateAll(t *testing.T, svc *Service, appID string) {
	t.Helper()
	records := mustRecords(t, svc, reconcile.Filter{AppID: appID})
	for i := range records {
		records[i].TextLocalized = "[" + records[i].Lang + "] " + records[i].TextOriginal
	}

	var buf bytes.Buffer
	require.NoError(t, exchange.WriteCSV(&buf, records))

	outcome, err := svc.Import(context.Background(), appID, buf.Bytes(), confirmed)
	require.NoError(t, err)
	require.Empty(t, outcome.Errors)
	require.Equal(t, len(records), outcome.Written)
}

func TestService_Records_CacheInvalidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)
	svc.cache = reconcile.NewSnapshotCache(time.Hour)

	assert.Empty(t, mustRecords(t, svc, reconcile.Filter{AppID: "shop"}))

	_, err := svc.Sync(ctx, "shop", sourceItems(), confirmed)
	require.NoError(t, err)
	assert.Len(t, mustRecords(t, svc, reconcile.Filter{AppID: "shop"}), 4)
	assert.Len(t, mustRecords(t, svc, reconcile.Filter{AppID: "shop", Lang: "fr"}), 2)
}

func TestService_Export(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.Sync(ctx, "shop", sourceItems(), confirmed)
	require.NoError(t, err)

	records := mustRecords(t, svc, reconcile.Filter{AppID: "shop", Lang: "de"})
	records[0].TextLocalized = "Auf Wiedersehen"
	var buf bytes.Buffer
	require.NoError(t, exchange.WriteCSV(&buf, records[:1]))
	_, err = svc.Import(ctx, "shop", buf.Bytes(), confirmed)
	require.NoError(t, err)

	t.Run("PendingOnly", func(t *testing.T) {
		data, count, err := svc.Export(ctx, reconcile.Filter{AppID: "shop"}, true)
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		rows, err := exchange.ReadCSV(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Len(t, rows, 3)
		for _, row := range rows {
			assert.NotEqual(t, "Auf Wiedersehen", row.TextLocalized)
		}
	})

	t.Run("All", func(t *testing.T) {
		_, count, err := svc.Export(ctx, reconcile.Filter{AppID: "shop"}, false)
		require.NoError(t, err)
		assert.Equal(t, 4, count)
	})

	t.Run("Filtered", func(t *testing.T) {
		_, count, err := svc.Export(ctx, reconcile.Filter{AppID: "shop", Lang: "fr", Territory: "CA", HasTerritory: true}, false)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}

func TestService_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("AppliesKnownKeysOnly", func(t *testing.T) {
		svc, _ := setupService(t)
		_, err := svc.Sync(ctx, "shop", sourceItems(), confirmed)
		require.NoError(t, err)

		records := mustRecords(t, svc, reconcile.Filter{AppID: "shop", Lang: "de"})
		records[0].TextLocalized = "Tschüss"
		records[1].TextLocalized = ""
		unknown := records[0]
		unknown.TextKey = "missing"
		unknown.TextLocalized = "Fehlt"

		var buf bytes.Buffer
		require.NoError(t, exchange.WriteCSV(&buf, []record.Record{records[0], records[1], unknown}))

		outcome, err := svc.Import(ctx, "shop", buf.Bytes(), confirmed)
		require.NoError(t, err)
		assert.Equal(t, 3, outcome.Received)
		assert.Equal(t, 1, outcome.Skipped)
		assert.Len(t, outcome.Applied, 1)
		assert.Equal(t, 1, outcome.Written)
		require.Len(t, outcome.Errors, 1)
		assert.ErrorIs(t, outcome.Errors[0], reconcile.ErrUnknownKeyOnImport)

		stored := mustRecords(t, svc, reconcile.Filter{AppID: "shop"})
		assert.Len(t, stored, 4)
		r, ok := find(stored, "de", records[0].TextKey)
		require.True(t, ok)
		assert.Equal(t, "Tschüss", r.TextLocalized)
		assert.Equal(t, records[0].ID, r.ID)
	})

	t.Run("DryRun", func(t *testing.T) {
		svc, _ := setupService(t)
		_, err := svc.Sync(ctx, "shop", sourceItems(), confirmed)
		require.NoError(t, err)

		records := mustRecords(t, svc, reconcile.Filter{AppID: "shop", Lang: "de"})
		records[0].TextLocalized = "Tschüss"
		var buf bytes.Buffer
		require.NoError(t, exchange.WriteCSV(&buf, records[:1]))

		outcome, err := svc.Import(ctx, "shop", buf.Bytes(), reconcile.Options{DryRun: true, Confirmed: true})
		require.NoError(t, err)
		assert.Len(t, outcome.Applied, 1)
		assert.Zero(t, outcome.Written)

		r, _ := find(mustRecords(t, svc, reconcile.Filter{AppID: "shop"}), "de", records[0].TextKey)
		assert.True(t, r.IsAwaitingTranslation())
	})

	t.Run("ForeignAppRows", func(t *testing.T) {
		svc, _ := setupService(t)
		_, err := svc.Sync(ctx, "shop", sourceItems(), confirmed)
		require.NoError(t, err)

		records := mustRecords(t, svc, reconcile.Filter{AppID: "shop", Lang: "de"})
		records[0].TextLocalized = "Tschüss"
		var buf bytes.Buffer
		require.NoError(t, exchange.WriteCSV(&buf, records[:1]))

		outcome, err := svc.Import(ctx, "blog", buf.Bytes(), confirmed)
		require.NoError(t, err)
		assert.Empty(t, outcome.Applied)
		assert.Len(t, outcome.Errors, 1)
	})

	t.Run("InvalidHeader", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.Import(ctx, "shop", []byte("a,b,c\n1,2,3\n"), confirmed)
		assert.ErrorIs(t, err, exchange.ErrInvalidHeader)
	})
}

type fakeTranslator struct {
	fail map[string]bool
	seen []translate.Request
}

func (f *fakeTranslator) Translate(_ context.Context, requests []translate.Request) ([]translate.Result, error) {
	f.seen = append(f.seen, requests...)
	results := make([]translate.Result, len(requests))
	for i, req := range requests {
		results[i] = translate.Result{Key: req.Key}
		if f.fail[req.Key.TextKey] {
			results[i].Err = errors.New("quota")
			continue
		}
		results[i].Text = strings.ToUpper(req.TargetLang) + ":" + req.Text
	}
	return results, nil
}

func TestService_Translate(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)
	_, err := svc.Sync(ctx, "shop", sourceItems(), confirmed)
	require.NoError(t, err)

	tr := &fakeTranslator{fail: map[string]bool{"farewell": true}}
	outcome, err := svc.Translate(ctx, "shop", tr, confirmed)
	require.NoError(t, err)

	assert.Equal(t, 4, outcome.Requested)
	assert.Len(t, outcome.Applied, 2)
	assert.Equal(t, 2, outcome.Written)
	require.Len(t, outcome.Failures, 2)
	assert.ErrorIs(t, outcome.Failures[0], translate.ErrTranslationFailed)

	for _, req := range tr.seen {
		assert.Equal(t, "en", req.SourceLang)
	}

	records := mustRecords(t, svc, reconcile.Filter{AppID: "shop"})
	greeting, _ := find(records, "fr", "greeting")
	assert.Equal(t, "FR-CA:Hello", greeting.TextLocalized)
	farewell, _ := find(records, "fr", "farewell")
	assert.True(t, farewell.IsAwaitingTranslation())

	t.Run("OnlyPendingAreSent", func(t *testing.T) {
		again := &fakeTranslator{}
		outcome, err := svc.Translate(ctx, "shop", again, confirmed)
		require.NoError(t, err)
		assert.Equal(t, 2, outcome.Requested)
		for _, req := range again.seen {
			assert.Equal(t, "farewell", req.Key.TextKey)
		}
	})

	t.Run("NothingPending", func(t *testing.T) {
		outcome, err := svc.Translate(ctx, "shop", &fakeTranslator{}, confirmed)
		require.NoError(t, err)
		assert.Zero(t, outcome.Requested)
	})
}

// editingTranslator changes the source of greeting while translating.
type editingTranslator struct {
	svc *Service
}

func (e *editingTranslator) Translate(ctx context.Context, requests []translate.Request) ([]translate.Result, error) {
	edited := extract.Static{
		{Key: "greeting", Text: "Hello there"},
		{Key: "farewell", Text: "Goodbye", Comment: "Shown on logout"},
	}
	if _, err := e.svc.Sync(ctx, "shop", edited, confirmed); err != nil {
		return nil, err
	}

	results := make([]translate.Result, len(requests))
	for i, req := range requests {
		results[i] = translate.Result{Key: req.Key, Text: "XX(" + req.Text + ")"}
	}
	return results, nil
}

func TestService_Translate_SourceEditedDuringCall(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)
	_, err := svc.Sync(ctx, "shop", sourceItems(), confirmed)
	require.NoError(t, err)

	outcome, err := svc.Translate(ctx, "shop", &editingTranslator{svc: svc}, confirmed)
	require.NoError(t, err)

	assert.Equal(t, 4, outcome.Requested)
	assert.Len(t, outcome.Applied, 2, "Only farewell applies")
	require.Len(t, outcome.Failures, 2)
	for _, f := range outcome.Failures {
		assert.ErrorIs(t, f, reconcile.ErrStaleTranslation)
	}

	records := mustRecords(t, svc, reconcile.Filter{AppID: "shop"})
	for _, lang := range []string{"de", "fr"} {
		greeting, ok := find(records, lang, "greeting")
		require.True(t, ok)
		assert.Equal(t, "Hello there", greeting.TextOriginal)
		assert.True(t, greeting.IsAwaitingTranslation(), "Edited source must be queued again")

		farewell, _ := find(records, lang, "farewell")
		assert.Equal(t, "XX(Goodbye)", farewell.TextLocalized)
	}
}

func writeLproj(t *testing.T, root, dir, content string) {
	t.Helper()
	path := filepath.Join(root, dir)
	require.NoError(t, os.MkdirAll(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, extract.StringsFileName), []byte(content), 0o644))
}

func TestService_Sync_ProjectRepeatedKeys(t *testing.T) {
	tests := []struct {
		name   string
		second string
	}{
		{name: "SameText", second: "Hello"},
		{name: "DifferentText", second: "Hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc, _ := setupService(t)

			root := t.TempDir()
			writeLproj(t, root, filepath.Join("App", "en.lproj"), "\"greeting\" = \"Hello\";\n")
			writeLproj(t, root, filepath.Join("Widget", "en.lproj"), "\"greeting\" = \""+tt.second+"\";\n")

			ex, err := extract.NewProjectExtractor(root, "en")
			require.NoError(t, err)

			_, err = svc.Sync(ctx, "shop", ex, confirmed)
			assert.ErrorIs(t, err, reconcile.ErrDuplicateKeyInBatch)

			var dupErr *reconcile.DuplicateKeyError
			require.ErrorAs(t, err, &dupErr)
			assert.Equal(t, "greeting", dupErr.Key.TextKey)
			assert.Empty(t, mustRecords(t, svc, reconcile.Filter{AppID: "shop"}))
		})
	}
}

func TestService_ImportProject(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)
	_, err := svc.Sync(ctx, "shop", sourceItems(), confirmed)
	require.NoError(t, err)

	root := t.TempDir()
	writeLproj(t, root, "en.lproj", "\"greeting\" = \"Hello\";\n")
	writeLproj(t, root, "de.lproj", "\"greeting\" = \"Hallo\";\n\"unknown\" = \"Neu\";\n")
	writeLproj(t, root, "fr_CA.lproj", "\"farewell\" = \"Au revoir\";\n")
	writeLproj(t, root, "it.lproj", "\"greeting\" = \"Ciao\";\n")

	t.Run("DryRun", func(t *testing.T) {
		outcome, err := svc.ImportProject(ctx, "shop", root, reconcile.Options{Confirmed: true, DryRun: true})
		require.NoError(t, err)
		assert.Len(t, outcome.Applied, 2)
		assert.Zero(t, outcome.Written)

		greeting, _ := find(mustRecords(t, svc, reconcile.Filter{AppID: "shop"}), "de", "greeting")
		assert.True(t, greeting.IsAwaitingTranslation())
	})

	t.Run("Confirmed", func(t *testing.T) {
		outcome, err := svc.ImportProject(ctx, "shop", root, confirmed)
		require.NoError(t, err)

		assert.Equal(t, root, outcome.Source)
		assert.Equal(t, 4, outcome.Received)
		assert.Len(t, outcome.Applied, 2)
		assert.Equal(t, 2, outcome.Written)
		require.Len(t, outcome.Errors, 2, "Unknown key and unconfigured locale")
		for _, e := range outcome.Errors {
			assert.ErrorIs(t, e, reconcile.ErrUnknownKeyOnImport)
		}

		records := mustRecords(t, svc, reconcile.Filter{AppID: "shop"})
		assert.Len(t, records, 4, "No record is created")
		greeting, _ := find(records, "de", "greeting")
		assert.Equal(t, "Hallo", greeting.TextLocalized)
		farewell, _ := find(records, "fr", "farewell")
		assert.Equal(t, "Au revoir", farewell.TextLocalized)
		assert.Equal(t, "CA", farewell.Territory)
	})

	t.Run("MissingProject", func(t *testing.T) {
		_, err := svc.ImportProject(ctx, "shop", filepath.Join(root, "missing"), confirmed)
		assert.Error(t, err)
	})
}

func TestService_Purge(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)
	_, err := svc.Sync(ctx, "shop", sourceItems(), confirmed)
	require.NoError(t, err)

	remaining := extract.Static{{Key: "greeting", Text: "Hello"}}

	t.Run("Unconfirmed", func(t *testing.T) {
		orphans, deleted, err := svc.Purge(ctx, "shop", remaining, reconcile.Options{})
		require.NoError(t, err)
		assert.Len(t, orphans, 2)
		assert.Zero(t, deleted)
		assert.Len(t, mustRecords(t, svc, reconcile.Filter{AppID: "shop"}), 4)
	})

	t.Run("Confirmed", func(t *testing.T) {
		orphans, deleted, err := svc.Purge(ctx, "shop", remaining, confirmed)
		require.NoError(t, err)
		assert.Len(t, orphans, 2)
		assert.Equal(t, int64(2), deleted)

		records := mustRecords(t, svc, reconcile.Filter{AppID: "shop"})
		require.Len(t, records, 2)
		for _, r := range records {
			assert.Equal(t, "greeting", r.TextKey)
		}
	})
}

func TestService_Publish(t *testing.T) {
	ctx := context.Background()
	svc, client := setupService(t)
	_, err := svc.Sync(ctx, "shop", sourceItems(), confirmed)
	require.NoError(t, err)

	client.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	client.On("PutObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	keys, err := svc.Publish(ctx, "shop", true)
	require.NoError(t, err)
	assert.Equal(t, []string{
		storage.HandoffKey("shop", "de"),
		storage.HandoffKey("shop", "fr-CA"),
	}, keys)
	client.AssertNumberOfCalls(t, "PutObject", 2)
}

func TestService_Fetch(t *testing.T) {
	ctx := context.Background()
	svc, client := setupService(t)
	_, err := svc.Sync(ctx, "shop", sourceItems(), confirmed)
	require.NoError(t, err)

	records := mustRecords(t, svc, reconcile.Filter{AppID: "shop", Lang: "de"})
	for i := range records {
		records[i].TextLocalized = "DE " + records[i].TextOriginal
	}
	var buf bytes.Buffer
	require.NoError(t, exchange.WriteCSV(&buf, records))

	key := storage.HandoffKey("shop", "de")
	client.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.Objects(key))
	client.On("GetObject", mock.Anything, "test-bucket", key, mock.Anything).
		Return(io.NopCloser(bytes.NewReader(buf.Bytes())), nil)
	client.On("RemoveObject", mock.Anything, "test-bucket", key, mock.Anything).Return(nil)

	outcomes, err := svc.Fetch(ctx, "shop", confirmed, true)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, key, outcomes[0].Source)
	assert.Equal(t, 2, outcomes[0].Written)
	client.AssertCalled(t, "RemoveObject", mock.Anything, "test-bucket", key, mock.Anything)

	r, _ := find(mustRecords(t, svc, reconcile.Filter{AppID: "shop"}), "de", "greeting")
	assert.Equal(t, "DE Hello", r.TextLocalized)
}

func TestService_Deploy(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)
	_, err := svc.Sync(ctx, "shop", sourceItems(), confirmed)
	require.NoError(t, err)

	dir := t.TempDir()
	paths, err := svc.Deploy(ctx, "shop", dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "de.lproj", extract.StringsFileName), paths[0])

	f, err := os.Open(paths[1])
	require.NoError(t, err)
	defer f.Close()
	entries, err := extract.ParseStrings(f)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestService_Stats(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)
	_, err := svc.Sync(ctx, "shop", sourceItems(), confirmed)
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, "shop")
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "de", stats[0].Lang)
	assert.Equal(t, int64(2), stats[0].Total)
	assert.Equal(t, int64(2), stats[0].Pending)
}
