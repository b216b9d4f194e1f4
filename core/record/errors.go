package record

import (
	"errors"
	"fmt"
)

// Field names as they appear in the exchange format.
const (
	FieldID            = "id"
	FieldAppID         = "appId"
	FieldLang          = "lang"
	FieldTerritory     = "territory"
	FieldTextKey       = "textKey"
	FieldTextOriginal  = "textOriginal"
	FieldTextLocalized = "textLocalized"
	FieldTextComment   = "textComment"
)

// ErrMalformedRecord is matched by every MalformedRecordError.
var ErrMalformedRecord = errors.New("malformed record")

// MalformedRecordError reports a required field that is missing or empty.
type MalformedRecordError struct {
	Field string
	Key   Key
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record %s: field %s is required", e.Key, e.Field)
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}
