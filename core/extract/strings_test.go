package extract

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

const sampleStrings = `/* Title of the home screen */
"home.title" = "Welcome";

/* Shown when the user
   leaves */
"farewell" = "Say \"bye\"\nnow";

// no hint for this one
"plain" = "Plain";
"spaced"   =   "Spaced"  ;
`

func TestParseStrings_UTF8(t *testing.T) {
	items, err := ParseStrings(strings.NewReader(sampleStrings))
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, Item{Key: "home.title", Text: "Welcome", Comment: "Title of the home screen", Line: 2}, items[0])
	assert.Equal(t, "Say \"bye\"\nnow", items[1].Text)
	assert.Equal(t, "Shown when the user\n   leaves", items[1].Comment)
	assert.Equal(t, 6, items[1].Line)
	assert.Empty(t, items[2].Comment)
	assert.Equal(t, "Spaced", items[3].Text)
}

func TestParseStrings_UTF16(t *testing.T) {
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(sampleStrings)
	require.NoError(t, err)

	items, err := ParseStrings(strings.NewReader(encoded))
	require.NoError(t, err)
	assert.Len(t, items, 4)
	assert.Equal(t, "home.title", items[0].Key)
}

func TestParseStrings_UTF16BigEndian(t *testing.T) {
	encoded, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().String(`"k" = "ü";`)
	require.NoError(t, err)

	items, err := ParseStrings(strings.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "ü", items[0].Text)
}

func TestParseStrings_UnicodeEscape(t *testing.T) {
	items, err := ParseStrings(strings.NewReader(`"k" = "caf\U00e9";`))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "café", items[0].Text)
}

func TestParseStrings_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{name: "MissingSemicolon", src: "\"a\" = \"b\"\n\"c\" = \"d\";", line: 2},
		{name: "MissingEquals", src: `"a" "b";`, line: 1},
		{name: "UnterminatedString", src: "\n\"a\" = \"b;", line: 2},
		{name: "UnterminatedComment", src: "/* open", line: 1},
		{name: "Garbage", src: "key = value;", line: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStrings(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax))

			var syntaxErr *SyntaxError
			require.True(t, errors.As(err, &syntaxErr))
			assert.Equal(t, tt.line, syntaxErr.Line)
		})
	}
}

func TestWriteStrings_RoundTrip(t *testing.T) {
	entries := []Entry{
		{Key: "home.title", Value: "Bienvenue", Comment: "Title of the home screen"},
		{Key: "quote", Value: "Dites \"salut\"\nmaintenant"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteStrings(&buf, entries))
	assert.Equal(t, []byte{0xFF, 0xFE}, buf.Bytes()[:2], "UTF-16LE byte order mark")

	items, err := ParseStrings(&buf)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Bienvenue", items[0].Text)
	assert.Equal(t, "Title of the home screen", items[0].Comment)
	assert.Equal(t, "Dites \"salut\"\nmaintenant", items[1].Text)
}
