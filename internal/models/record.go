// Package models defines the data shapes that flow through the export
// pipeline, from raw archive posts to canonical corpus records.
package models

import "encoding/json"

// RawPost is one exported post exactly as it appears in a user archive.
// Field names vary between archive generations, so the post keeps its
// fields as raw JSON until schema resolution has decided which ones to
// read. Unresolved fields are carried but never consumed.
type RawPost map[string]json.RawMessage

// FieldNames returns the union of field names across posts. Archives are
// resolved against the union, not per post, so a field missing from an
// individual post is not a schema failure.
func FieldNames(posts []RawPost) map[string]bool {
	fields := make(map[string]bool)

	for _, post := range posts {
		for name := range post {
			fields[name] = true
		}
	}

	return fields
}

// CanonicalRecord is the flattened, sanitized form of one post. It exists
// only between normalization and serialization and is never persisted as
// an intermediate.
type CanonicalRecord struct {
	ID       string `json:"id"`
	Comments string `json:"comments"`
	Caption  string `json:"caption"`
	Tags     string `json:"tags"`
}
