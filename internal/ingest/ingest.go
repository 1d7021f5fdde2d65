// Package ingest reads user archives from the input root.
package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"igcorpus/internal/models"
)

// Reader loads per-user archives from a directory tree laid out as
// <root>/<user>/<user>.json.
type Reader struct {
	root string
}

// NewReader creates a reader over the input root.
func NewReader(root string) *Reader {
	return &Reader{root: root}
}

// Users returns the user directories under the input root in name order.
// Stray files at the top level are ignored.
func (r *Reader) Users() ([]string, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list input root: %w", err)
	}

	var users []string

	for _, entry := range entries {
		if entry.IsDir() {
			users = append(users, entry.Name())
		}
	}

	return users, nil
}

// ArchivePath returns the archive location for a user.
func (r *Reader) ArchivePath(user string) string {
	return filepath.Join(r.root, user, user+".json")
}

// Posts reads and decodes a user's archive. The archive is either a JSON
// array of posts or a stream of JSON objects; a pretty-printed single
// object and JSON lines both decode the same way.
func (r *Reader) Posts(user string) ([]models.RawPost, error) {
	data, err := os.ReadFile(r.ArchivePath(user))
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var posts []models.RawPost
		if err := json.Unmarshal(trimmed, &posts); err != nil {
			return nil, fmt.Errorf("failed to decode archive: %w", err)
		}

		return posts, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))

	var posts []models.RawPost

	for {
		var post models.RawPost

		err := decoder.Decode(&post)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to decode archive: %w", err)
		}

		posts = append(posts, post)
	}

	return posts, nil
}
