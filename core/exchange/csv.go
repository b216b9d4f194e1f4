package exchange

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"locale-manager/core/reconcile"
	"locale-manager/core/record"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Columns is the header of every exchange file, in order.
var Columns = []string{
	record.FieldID,
	record.FieldAppID,
	record.FieldLang,
	record.FieldTerritory,
	record.FieldTextKey,
	record.FieldTextLocalized,
	record.FieldTextComment,
}

// ErrInvalidHeader is returned when a file does not start with Columns.
var ErrInvalidHeader = errors.New("invalid exchange header")

// Row is one line of an exchange file.
type Row struct {
	// Line is the 1-based line number in the source file. Zero for written rows.
	Line int `json:"line,omitempty"`

	ID            string `json:"id"`
	AppID         string `json:"app_id"`
	Lang          string `json:"lang"`
	Territory     string `json:"territory"`
	TextKey       string `json:"text_key"`
	TextLocalized string `json:"text_localized"`
	TextComment   string `json:"text_comment"`
}

// RowFrom converts a record into an exchange row.
func RowFrom(r record.Record) Row {
	return Row{
		ID:            r.ID,
		AppID:         r.AppID,
		Lang:          r.Lang,
		Territory:     r.Territory,
		TextKey:       r.TextKey,
		TextLocalized: r.TextLocalized,
		TextComment:   r.TextComment,
	}
}

// Key returns the uniqueness tuple the row refers to.
func (r Row) Key() record.Key {
	return record.Key{AppID: r.AppID, Lang: r.Lang, Territory: r.Territory, TextKey: r.TextKey}
}

// TranslationItem converts the row into an import item keyed by its tuple.
// The id column is informational only.
func (r Row) TranslationItem() reconcile.TranslationItem {
	return reconcile.TranslationItem{Key: r.Key(), Text: r.TextLocalized}
}

func (r Row) values() []string {
	return []string{r.ID, r.AppID, r.Lang, r.Territory, r.TextKey, r.TextLocalized, r.TextComment}
}

// WriteCSV writes the header and one row per record, in the given order.
func WriteCSV(w io.Writer, records []record.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(RowFrom(r).values()); err != nil {
			return fmt.Errorf("failed to write row %s: %w", r.Key(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses an exchange file. A leading byte order mark is honoured,
// so UTF-8 files saved by spreadsheet tools and UTF-16 files both decode.
func ReadCSV(r io.Reader) ([]Row, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(decoded)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) != len(Columns) {
		return nil, fmt.Errorf("%w: %d columns, want %d", ErrInvalidHeader, len(header), len(Columns))
	}
	for i, name := range header {
		if strings.TrimSpace(name) != Columns[i] {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrInvalidHeader, i+1, name, Columns[i])
		}
	}

	var rows []Row
	for {
		values, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, Row{
			Line:          line,
			ID:            values[0],
			AppID:         values[1],
			Lang:          values[2],
			Territory:     values[3],
			TextKey:       values[4],
			TextLocalized: values[5],
			TextComment:   values[6],
		})
	}

	return rows, nil
}

// Items converts rows into import items. Rows with an empty localized text
// are skipped and counted; a translator leaving a cell blank is not an error.
// Rows that belong to another application are returned as errors.
func Items(appID string, rows []Row) (items []reconcile.TranslationItem, skipped int, errs []error) {
	for _, row := range rows {
		if row.AppID != appID {
			errs = append(errs, fmt.Errorf("line %d: row for app %q in import for %q", row.Line, row.AppID, appID))
			continue
		}
		if row.TextLocalized == "" {
			skipped++
			continue
		}
		items = append(items, row.TranslationItem())
	}
	return items, skipped, errs
}
