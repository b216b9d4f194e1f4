package record

import (
	"sort"
)

// Key is the uniqueness tuple of a localization record.
// At most one record may exist per Key in the stored set.
type Key struct {
	AppID     string `json:"app_id"`
	Lang      string `json:"lang"`
	Territory string `json:"territory"`
	TextKey   string `json:"text_key"`
}

// String renders the key as app/lang[-territory]/textKey.
func (k Key) String() string {
	return k.Partition().String() + "/" + k.TextKey
}

// Partition returns the (app, lang, territory) partition the key belongs to.
func (k Key) Partition() Partition {
	return Partition{AppID: k.AppID, Lang: k.Lang, Territory: k.Territory}
}

// Partition groups records of one application in one language and territory.
// Partitions never share uniqueness-tuple space.
type Partition struct {
	AppID     string `json:"app_id"`
	Lang      string `json:"lang"`
	Territory string `json:"territory"`
}

// Locale returns lang or lang-territory.
func (p Partition) Locale() string {
	if p.Territory == "" {
		return p.Lang
	}
	return p.Lang + "-" + p.Territory
}

func (p Partition) String() string {
	return p.AppID + "/" + p.Locale()
}

// Record is one translatable text item for one application, language and territory.
type Record struct {
	// ID is the durable surrogate identifier. It is assigned once and never reused.
	ID string `json:"id"`

	// AppID identifies the owning application.
	AppID string `json:"app_id"`

	// Lang is the target language code (e.g. "fr").
	Lang string `json:"lang"`

	// Territory is the optional regional qualifier (e.g. "CA"). Empty when absent.
	Territory string `json:"territory"`

	// TextKey is the lookup key used by the application's UI layer.
	TextKey string `json:"text_key"`

	// TextOriginal is the source-language text as currently extracted.
	TextOriginal string `json:"text_original"`

	// TextLocalized is the translated text. Equal to TextOriginal (or empty)
	// while the record awaits translation.
	TextLocalized string `json:"text_localized"`

	// TextComment is an optional note for translators.
	TextComment string `json:"text_comment"`
}

// New builds a record for a freshly extracted text item.
// The localized text is seeded with the placeholder (the original text).
func New(appID, lang, territory, textKey, textOriginal, textComment string) (Record, error) {
	r := Record{
		AppID:         appID,
		Lang:          lang,
		Territory:     territory,
		TextKey:       textKey,
		TextOriginal:  textOriginal,
		TextLocalized: textOriginal,
		TextComment:   textComment,
	}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}

// Validate checks that all required fields are present.
// Territory, localized text and comment may be empty.
func (r Record) Validate() error {
	switch {
	case r.AppID == "":
		return &MalformedRecordError{Field: FieldAppID, Key: r.Key()}
	case r.Lang == "":
		return &MalformedRecordError{Field: FieldLang, Key: r.Key()}
	case r.TextKey == "":
		return &MalformedRecordError{Field: FieldTextKey, Key: r.Key()}
	case r.TextOriginal == "":
		return &MalformedRecordError{Field: FieldTextOriginal, Key: r.Key()}
	}
	return nil
}

// Key returns the uniqueness tuple of the record.
func (r Record) Key() Key {
	return Key{AppID: r.AppID, Lang: r.Lang, Territory: r.Territory, TextKey: r.TextKey}
}

// Partition returns the (app, lang, territory) partition of the record.
func (r Record) Partition() Partition {
	return r.Key().Partition()
}

// SameIdentity reports whether both records describe the same localizable item.
// Identity is the uniqueness tuple; IDs are not compared.
func (r Record) SameIdentity(other Record) bool {
	return r.Key() == other.Key()
}

// IsAwaitingTranslation reports whether the localized text is still the placeholder.
func (r Record) IsAwaitingTranslation() bool {
	return r.TextLocalized == "" || r.TextLocalized == r.TextOriginal
}

// ResetTranslation puts the placeholder back in place of the localized text.
func (r *Record) ResetTranslation() {
	r.TextLocalized = r.TextOriginal
}

// Less orders keys by app, lang, territory and text key.
func (k Key) Less(other Key) bool {
	if k.AppID != other.AppID {
		return k.AppID < other.AppID
	}
	if k.Lang != other.Lang {
		return k.Lang < other.Lang
	}
	if k.Territory != other.Territory {
		return k.Territory < other.Territory
	}
	return k.TextKey < other.TextKey
}

// SortRecords sorts records in place by their uniqueness tuple.
func SortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Key().Less(records[j].Key())
	})
}

// SortKeys sorts keys in place.
func SortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Less(keys[j])
	})
}

// Index maps records by their uniqueness tuple.
// The second return value lists keys seen more than once.
func Index(records []Record) (map[Key]Record, []Key) {
	index := make(map[Key]Record, len(records))
	var dups []Key
	for _, r := range records {
		k := r.Key()
		if _, exists := index[k]; exists {
			dups = append(dups, k)
			continue
		}
		index[k] = r
	}
	return index, dups
}
