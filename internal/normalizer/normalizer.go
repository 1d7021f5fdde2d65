// Package normalizer flattens resolved archive posts into canonical corpus
// records.
package normalizer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"igcorpus/internal/models"
	"igcorpus/internal/schema"
)

// Normalization errors.
var (
	ErrMissingComments = errors.New("comments container is missing or null")
	ErrEmptyURLList    = errors.New("post has no urls to take the record id from")
)

// commentsContainer is the archive shape of a post's comments field.
type commentsContainer struct {
	Data []struct {
		Text string `json:"text"`
	} `json:"data"`
}

// Normalizer maps raw posts onto canonical records using a schema
// resolution. One post in, exactly one record or one error out; there are
// no partial records.
type Normalizer struct {
	resolution *schema.Resolution
	sanitizer  *Sanitizer
}

// NewNormalizer creates a normalizer bound to one user's schema resolution.
func NewNormalizer(resolution *schema.Resolution) *Normalizer {
	return &Normalizer{
		resolution: resolution,
		sanitizer:  NewSanitizer(),
	}
}

// Normalize builds the canonical record for one post. Every text field is
// sanitized before the record leaves, regardless of the output format it
// is headed for.
func (n *Normalizer) Normalize(post models.RawPost) (models.CanonicalRecord, error) {
	comments, err := n.commentsText(post)
	if err != nil {
		return models.CanonicalRecord{}, err
	}

	caption, err := n.captionText(post)
	if err != nil {
		return models.CanonicalRecord{}, err
	}

	tags, err := n.tagsText(post)
	if err != nil {
		return models.CanonicalRecord{}, err
	}

	id, err := n.recordID(post)
	if err != nil {
		return models.CanonicalRecord{}, err
	}

	return models.CanonicalRecord{
		ID:       id,
		Comments: n.sanitizer.Sanitize(comments),
		Caption:  n.sanitizer.Sanitize(caption),
		Tags:     n.sanitizer.Sanitize(tags),
	}, nil
}

// commentsText decodes the resolved comments container and joins the entry
// texts with single spaces.
func (n *Normalizer) commentsText(post models.RawPost) (string, error) {
	raw, ok := post[n.resolution.CommentsField]
	if !ok || isNull(raw) {
		return "", fmt.Errorf("%w: field %q", ErrMissingComments, n.resolution.CommentsField)
	}

	var container commentsContainer
	if err := json.Unmarshal(raw, &container); err != nil {
		return "", fmt.Errorf("failed to decode comments field %q: %w", n.resolution.CommentsField, err)
	}

	texts := make([]string, 0, len(container.Data))
	for _, comment := range container.Data {
		texts = append(texts, comment.Text)
	}

	return strings.Join(texts, " "), nil
}

// captionText parses the caption variant and flattens it to text.
func (n *Normalizer) captionText(post models.RawPost) (string, error) {
	raw, ok := post[n.resolution.CaptionField]
	if !ok {
		return "", fmt.Errorf("%w: field %q", models.ErrCaptionShape, n.resolution.CaptionField)
	}

	var caption models.Caption
	if err := json.Unmarshal(raw, &caption); err != nil {
		return "", fmt.Errorf("field %q: %w", n.resolution.CaptionField, err)
	}

	switch caption.Kind {
	case models.CaptionEdgeList, models.CaptionFlatText:
		return caption.Text(), nil
	default:
		return "", fmt.Errorf("field %q: %w", n.resolution.CaptionField, models.ErrCaptionShape)
	}
}

// tagsText joins the post's tags with single spaces. Absent or null tags
// are legal and yield an empty string.
func (n *Normalizer) tagsText(post models.RawPost) (string, error) {
	raw, ok := post[n.resolution.TagsField]
	if !ok || isNull(raw) {
		return "", nil
	}

	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return "", fmt.Errorf("failed to decode tags field %q: %w", n.resolution.TagsField, err)
	}

	return strings.Join(tags, " "), nil
}

// recordID takes the first entry of the post's url list.
func (n *Normalizer) recordID(post models.RawPost) (string, error) {
	raw, ok := post[n.resolution.URLsField]
	if !ok || isNull(raw) {
		return "", fmt.Errorf("%w: field %q", ErrEmptyURLList, n.resolution.URLsField)
	}

	var urls []string
	if err := json.Unmarshal(raw, &urls); err != nil {
		return "", fmt.Errorf("failed to decode urls field %q: %w", n.resolution.URLsField, err)
	}

	if len(urls) == 0 {
		return "", fmt.Errorf("%w: field %q", ErrEmptyURLList, n.resolution.URLsField)
	}

	return urls[0], nil
}

// isNull reports whether a raw JSON value is the null literal.
func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
