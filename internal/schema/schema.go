// Package schema resolves the variable field names of user archives onto
// the canonical attributes the pipeline reads.
package schema

import (
	"errors"
	"fmt"
)

// Alias preference per canonical attribute. Older archive generations used
// edge_media_to_caption; newer exports flattened it to caption.
var (
	commentsAliases = []string{"comments"}
	captionAliases  = []string{"edge_media_to_caption", "caption"}
	tagsAliases     = []string{"tags"}
)

// urlsField carries the post URL list in every archive generation.
const urlsField = "urls"

// Resolution errors.
var (
	ErrNoCommentsField = errors.New("no comments field in archive schema")
	ErrNoCaptionField  = errors.New("no caption field in archive schema")
	ErrNoTagsField     = errors.New("no tags field in archive schema")
	ErrNoURLsField     = errors.New("no urls field in archive schema")
)

// Resolution names the archive field that carries each canonical attribute
// for one user.
type Resolution struct {
	CommentsField string
	CaptionField  string
	TagsField     string
	URLsField     string
}

// Resolve picks the first present alias for each canonical attribute from
// the union of field names across a user's posts. Every attribute must
// resolve; a miss fails the whole user. Resolution is pure selection and
// reads no post data.
func Resolve(fields map[string]bool) (*Resolution, error) {
	comments, ok := pickAlias(fields, commentsAliases)
	if !ok {
		return nil, fmt.Errorf("%w: tried %v", ErrNoCommentsField, commentsAliases)
	}

	caption, ok := pickAlias(fields, captionAliases)
	if !ok {
		return nil, fmt.Errorf("%w: tried %v", ErrNoCaptionField, captionAliases)
	}

	tags, ok := pickAlias(fields, tagsAliases)
	if !ok {
		return nil, fmt.Errorf("%w: tried %v", ErrNoTagsField, tagsAliases)
	}

	if !fields[urlsField] {
		return nil, fmt.Errorf("%w: tried [%s]", ErrNoURLsField, urlsField)
	}

	return &Resolution{
		CommentsField: comments,
		CaptionField:  caption,
		TagsField:     tags,
		URLsField:     urlsField,
	}, nil
}

// pickAlias returns the first alias present in the field set.
func pickAlias(fields map[string]bool, aliases []string) (string, bool) {
	for _, alias := range aliases {
		if fields[alias] {
			return alias, true
		}
	}

	return "", false
}
