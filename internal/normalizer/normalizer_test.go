package normalizer

import (
	"encoding/json"
	"errors"
	"testing"

	"igcorpus/internal/models"
	"igcorpus/internal/schema"
)

// modernResolution matches archives using the current field names.
func modernResolution() *schema.Resolution {
	return &schema.Resolution{
		CommentsField: "comments",
		CaptionField:  "caption",
		TagsField:     "tags",
		URLsField:     "urls",
	}
}

// mustPost decodes a JSON object literal into a raw post.
func mustPost(t *testing.T, raw string) models.RawPost {
	t.Helper()

	var post models.RawPost
	if err := json.Unmarshal([]byte(raw), &post); err != nil {
		t.Fatalf("Failed to decode post fixture: %v", err)
	}

	return post
}

func TestNormalizer_Normalize_RoundTrip(t *testing.T) {
	n := NewNormalizer(modernResolution())

	post := mustPost(t, `{
		"comments": {"data": [{"text": "nice,\tpic"}]},
		"caption":  {"text": "hello\nworld"},
		"tags":     ["fashion", "ootd"],
		"urls":     ["http://x/1"]
	}`)

	record, err := n.Normalize(post)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	expected := models.CanonicalRecord{
		ID:       "http://x/1",
		Comments: "nice pic",
		Caption:  "hello world",
		Tags:     "fashion ootd",
	}

	if record != expected {
		t.Errorf("Normalize = %+v, want %+v", record, expected)
	}
}

func TestNormalizer_Normalize_EdgeListCaption(t *testing.T) {
	n := NewNormalizer(modernResolution())

	post := mustPost(t, `{
		"comments": {"data": []},
		"caption":  {"edges": [{"node": {"text": "a"}}, {"node": {"text": "b"}}]},
		"tags":     [],
		"urls":     ["http://x/2"]
	}`)

	record, err := n.Normalize(post)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if record.Caption != "a b" {
		t.Errorf("Expected caption 'a b', got %q", record.Caption)
	}

	if record.Comments != "" {
		t.Errorf("Expected empty comments, got %q", record.Comments)
	}
}

func TestNormalizer_Normalize_MultipleComments(t *testing.T) {
	n := NewNormalizer(modernResolution())

	post := mustPost(t, `{
		"comments": {"data": [{"text": "first"}, {"text": "second"}, {"text": "third"}]},
		"caption":  {"text": "cap"},
		"tags":     ["x"],
		"urls":     ["http://x/3"]
	}`)

	record, err := n.Normalize(post)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if record.Comments != "first second third" {
		t.Errorf("Expected joined comments, got %q", record.Comments)
	}
}

func TestNormalizer_Normalize_AbsentTags(t *testing.T) {
	n := NewNormalizer(modernResolution())

	tests := []struct {
		name string
		raw  string
	}{
		{
			"Tags field absent",
			`{"comments": {"data": []}, "caption": {"text": "c"}, "urls": ["http://x/4"]}`,
		},
		{
			"Tags field null",
			`{"comments": {"data": []}, "caption": {"text": "c"}, "tags": null, "urls": ["http://x/4"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := n.Normalize(mustPost(t, tt.raw))
			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}

			if record.Tags != "" {
				t.Errorf("Expected empty tags, got %q", record.Tags)
			}
		})
	}
}

func TestNormalizer_Normalize_IDFromFirstURL(t *testing.T) {
	n := NewNormalizer(modernResolution())

	post := mustPost(t, `{
		"comments": {"data": []},
		"caption":  {"text": "c"},
		"tags":     [],
		"urls":     ["http://x/first", "http://x/second"],
		"id":       "raw-id-ignored"
	}`)

	record, err := n.Normalize(post)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if record.ID != "http://x/first" {
		t.Errorf("Expected id from urls[0], got %q", record.ID)
	}
}

func TestNormalizer_Normalize_Errors(t *testing.T) {
	n := NewNormalizer(modernResolution())

	tests := []struct {
		name     string
		raw      string
		expected error
	}{
		{
			"Missing comments container",
			`{"caption": {"text": "c"}, "tags": [], "urls": ["http://x/1"]}`,
			ErrMissingComments,
		},
		{
			"Null comments container",
			`{"comments": null, "caption": {"text": "c"}, "tags": [], "urls": ["http://x/1"]}`,
			ErrMissingComments,
		},
		{
			"Missing caption",
			`{"comments": {"data": []}, "tags": [], "urls": ["http://x/1"]}`,
			models.ErrCaptionShape,
		},
		{
			"Null caption",
			`{"comments": {"data": []}, "caption": null, "tags": [], "urls": ["http://x/1"]}`,
			models.ErrCaptionShape,
		},
		{
			"Unrecognized caption shape",
			`{"comments": {"data": []}, "caption": {"foo": 1}, "tags": [], "urls": ["http://x/1"]}`,
			models.ErrCaptionShape,
		},
		{
			"Missing urls",
			`{"comments": {"data": []}, "caption": {"text": "c"}, "tags": []}`,
			ErrEmptyURLList,
		},
		{
			"Empty urls",
			`{"comments": {"data": []}, "caption": {"text": "c"}, "tags": [], "urls": []}`,
			ErrEmptyURLList,
		},
		{
			"Null urls",
			`{"comments": {"data": []}, "caption": {"text": "c"}, "tags": [], "urls": null}`,
			ErrEmptyURLList,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(mustPost(t, tt.raw))
			if err == nil {
				t.Fatal("Expected normalization error, got nil")
			}

			if !errors.Is(err, tt.expected) {
				t.Errorf("Normalize error = %v, want %v", err, tt.expected)
			}
		})
	}
}

func TestNormalizer_Normalize_LegacyCaptionField(t *testing.T) {
	n := NewNormalizer(&schema.Resolution{
		CommentsField: "comments",
		CaptionField:  "edge_media_to_caption",
		TagsField:     "tags",
		URLsField:     "urls",
	})

	post := mustPost(t, `{
		"comments": {"data": [{"text": "classic"}]},
		"edge_media_to_caption": {"edges": [{"node": {"text": "old format"}}]},
		"tags": ["retro"],
		"urls": ["http://x/legacy"]
	}`)

	record, err := n.Normalize(post)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if record.Caption != "old format" {
		t.Errorf("Expected caption 'old format', got %q", record.Caption)
	}
}
