package reconcile

import (
	"errors"
	"testing"

	"locale-manager/core/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyTranslations(t *testing.T) {
	merged := []record.Record{
		stored("e1", "fr", "K1", "Hi", "Hi"),
		stored("e2", "fr", "K2", "Bye", "Bye"),
	}
	k1 := merged[0].Key()
	k2 := merged[1].Key()
	unknown := record.Key{AppID: "A", Lang: "fr", TextKey: "K9"}

	res := ApplyTranslations(merged, []TranslationItem{
		{Key: k1, Text: "Salut"},
		{Key: unknown, Text: "Inconnu"},
		{Key: k2, Text: ""},
	})

	require.Len(t, res.Records, 2)
	assert.Equal(t, "Salut", res.Records[0].TextLocalized)
	assert.False(t, res.Records[0].IsAwaitingTranslation())
	assert.Equal(t, "Bye", res.Records[1].TextLocalized)
	assert.Equal(t, []record.Key{k1}, res.Applied)

	require.Len(t, res.Errors, 2)
	assert.True(t, errors.Is(res.Errors[0], ErrUnknownKeyOnImport))
	assert.True(t, errors.Is(res.Errors[1], record.ErrMalformedRecord))

	assert.Equal(t, "Hi", merged[0].TextLocalized, "Input must not be mutated")
}

func TestApplyTranslations_NeverCreatesRecords(t *testing.T) {
	res := ApplyTranslations(nil, []TranslationItem{
		{Key: record.Key{AppID: "A", Lang: "fr", TextKey: "K1"}, Text: "Salut"},
	})

	assert.Empty(t, res.Records)
	assert.Empty(t, res.Applied)
	require.Len(t, res.Errors, 1)

	var unknownErr *UnknownKeyError
	require.True(t, errors.As(res.Errors[0], &unknownErr))
	assert.Equal(t, "K1", unknownErr.Key.TextKey)
}

func TestApplyTranslations_ThenReconcilePreserves(t *testing.T) {
	first, err := Reconcile(nil, []record.Record{extracted("fr", "K1", "Hi")})
	require.NoError(t, err)

	imported := ApplyTranslations(first.Merged, []TranslationItem{
		{Key: first.Merged[0].Key(), Text: "Salut"},
	})

	again, err := Reconcile(imported.Records, []record.Record{extracted("fr", "K1", "Hi")})
	require.NoError(t, err)
	assert.Equal(t, "Salut", again.Merged[0].TextLocalized)
	assert.Empty(t, again.NeedsTranslation)
}

func TestApplyTranslations_RejectsStaleSource(t *testing.T) {
	merged := []record.Record{
		stored("e1", "fr", "K1", "Hello there", "Hello there"),
		stored("e2", "fr", "K2", "Bye", "Bye"),
	}
	k1 := merged[0].Key()
	k2 := merged[1].Key()

	res := ApplyTranslations(merged, []TranslationItem{
		{Key: k1, Text: "Salut", Original: "Hello"},
		{Key: k2, Text: "Au revoir", Original: "Bye"},
	})

	assert.Equal(t, []record.Key{k2}, res.Applied)
	assert.True(t, res.Records[0].IsAwaitingTranslation(), "Stale text must stay pending")
	assert.Equal(t, "Au revoir", res.Records[1].TextLocalized)

	require.Len(t, res.Errors, 1)
	var staleErr *StaleTranslationError
	require.True(t, errors.As(res.Errors[0], &staleErr))
	assert.Equal(t, "Hello", staleErr.Original)
	assert.Equal(t, "Hello there", staleErr.Current)
	assert.ErrorIs(t, res.Errors[0], ErrStaleTranslation)
}
