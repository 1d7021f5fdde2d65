package models

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrCaptionShape is returned when a caption matches neither archive shape.
var ErrCaptionShape = errors.New("caption is neither an edge list nor a flat text object")

// CaptionKind identifies which archive shape a caption was parsed from.
type CaptionKind int

// Caption shapes found in the archives.
const (
	CaptionEdgeList CaptionKind = iota + 1
	CaptionFlatText
)

// Caption is a parsed post caption. Archives carry captions in one of two
// shapes: an edge list {"edges":[{"node":{"text":...}},...]} from older
// exports, or a flat {"text":...} object. The shape is decided once while
// parsing; downstream code switches on Kind and never re-probes raw JSON.
type Caption struct {
	Kind  CaptionKind
	Texts []string
}

// UnmarshalJSON probes the edge-list shape first, then the flat shape.
// Null and unrecognized values are shape errors, never a silent default.
func (c *Caption) UnmarshalJSON(data []byte) error {
	var edged struct {
		Edges []struct {
			Node struct {
				Text string `json:"text"`
			} `json:"node"`
		} `json:"edges"`
	}

	if err := json.Unmarshal(data, &edged); err == nil && edged.Edges != nil {
		texts := make([]string, 0, len(edged.Edges))
		for _, edge := range edged.Edges {
			texts = append(texts, edge.Node.Text)
		}

		c.Kind = CaptionEdgeList
		c.Texts = texts

		return nil
	}

	var flat struct {
		Text *string `json:"text"`
	}

	if err := json.Unmarshal(data, &flat); err == nil && flat.Text != nil {
		c.Kind = CaptionFlatText
		c.Texts = []string{*flat.Text}

		return nil
	}

	return ErrCaptionShape
}

// Text returns the caption text, joining edge node texts with single
// spaces.
func (c *Caption) Text() string {
	return strings.Join(c.Texts, " ")
}
