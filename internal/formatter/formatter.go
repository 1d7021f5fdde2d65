// Package formatter serializes canonical records into the corpus output
// formats.
package formatter

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"strings"

	"igcorpus/internal/models"
)

// ErrUnsupportedFormat is returned for format tags outside csv, tsv, json.
var ErrUnsupportedFormat = errors.New("output format must be one of: csv, tsv, json")

// Format identifies an output serialization.
type Format string

// Supported output formats.
const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatJSON Format = "json"
)

// ParseFormat validates a format tag from configuration or flags.
func ParseFormat(tag string) (Format, error) {
	switch Format(tag) {
	case FormatCSV, FormatTSV, FormatJSON:
		return Format(tag), nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrUnsupportedFormat, tag)
	}
}

// Extension returns the artifact file extension for the format.
func (f Format) Extension() string {
	return string(f)
}

// document is the document-mode unit shape for the json format.
type document struct {
	Doc  string `json:"doc"`
	Text string `json:"text"`
}

// Formatter turns canonical records into serialized output units.
//
// In column mode every unit carries the id, comments, caption, and tags
// fields. In document mode the three text fields are concatenated into one
// document per post, keyed by the record id.
type Formatter struct {
	format       Format
	documentMode bool
}

// New creates a formatter for the given format and mode.
func New(format Format, documentMode bool) *Formatter {
	return &Formatter{
		format:       format,
		documentMode: documentMode,
	}
}

// Units returns the serialized units for records as a lazy sequence.
// Serialization happens during iteration; callers that need the whole
// output materialize it themselves.
func (f *Formatter) Units(records []models.CanonicalRecord) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, record := range records {
			if !yield(f.unit(record)) {
				return
			}
		}
	}
}

// unit serializes a single record. Invalid UTF-8 is dropped from every
// field first so the output is always valid UTF-8.
func (f *Formatter) unit(record models.CanonicalRecord) string {
	record = validUTF8(record)

	if f.documentMode {
		return f.documentUnit(record)
	}

	return f.columnUnit(record)
}

// columnUnit emits one unit carrying the four canonical fields. The
// sanitizer keeps fields free of delimiters, so csv and tsv are plain
// joins with no quoting layer.
func (f *Formatter) columnUnit(record models.CanonicalRecord) string {
	switch f.format {
	case FormatCSV:
		return strings.Join([]string{record.ID, record.Comments, record.Caption, record.Tags}, ",")
	case FormatTSV:
		return strings.Join([]string{record.ID, record.Comments, record.Caption, record.Tags}, "\t")
	default:
		return marshal(record)
	}
}

// documentUnit emits one unit carrying the id and the combined text. The
// text fields are concatenated without a separator.
func (f *Formatter) documentUnit(record models.CanonicalRecord) string {
	combined := record.Comments + record.Caption + record.Tags

	switch f.format {
	case FormatCSV:
		return record.ID + "," + combined
	case FormatTSV:
		return record.ID + "\t" + combined
	default:
		return marshal(document{Doc: record.ID, Text: combined})
	}
}

// marshal encodes a unit value; the fields are plain strings, so encoding
// cannot fail.
func marshal(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}

	return string(data)
}

// validUTF8 drops invalid UTF-8 sequences from every field.
func validUTF8(record models.CanonicalRecord) models.CanonicalRecord {
	record.ID = strings.ToValidUTF8(record.ID, "")
	record.Comments = strings.ToValidUTF8(record.Comments, "")
	record.Caption = strings.ToValidUTF8(record.Caption, "")
	record.Tags = strings.ToValidUTF8(record.Tags, "")

	return record
}
