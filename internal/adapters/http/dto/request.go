package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/content-render-service/internal/domain"
	"github.com/jsamuelsen11/content-render-service/internal/domain/content"
)

const msgRequired = "is required"

// PreviewRequest represents the JSON body for previewing an unpublished
// content document: the document is bound through the same resolver as
// published content without entering the index.
type PreviewRequest struct {
	Key         string         `json:"key,omitempty"`
	Name        string         `json:"name"`
	ContentType string         `json:"content_type"`
	URLSegment  string         `json:"url_segment,omitempty"`
	Route       string         `json:"route"`
	Level       int            `json:"level,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`
}

// Validate checks that required fields are present and well formed.
// Returns a *domain.ValidationError if any checks fail.
func (r *PreviewRequest) Validate() error {
	fields := make(map[string]string)

	if r.Key != "" {
		if _, err := uuid.Parse(r.Key); err != nil {
			fields["key"] = "must be a valid UUID"
		}
	}
	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = msgRequired
	}
	if strings.TrimSpace(r.ContentType) == "" {
		fields["content_type"] = msgRequired
	}
	if r.Route == "" || !strings.HasPrefix(r.Route, "/") {
		fields["route"] = `must start with "/"`
	}
	if r.Level < 0 {
		fields["level"] = "must not be negative"
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ToNode builds an ephemeral content node from a validated preview request.
// A missing key gets a fresh one, and a missing level defaults to the root
// level; the node never enters the index.
func (r *PreviewRequest) ToNode() (*content.Node, error) {
	key := uuid.New()
	if r.Key != "" {
		parsed, err := uuid.Parse(r.Key)
		if err != nil {
			return nil, &domain.ValidationError{
				Fields: map[string]string{"key": "must be a valid UUID"},
			}
		}
		key = parsed
	}

	level := r.Level
	if level == 0 {
		level = 1
	}

	return content.NewNode(content.NodeSpec{
		Key:         key,
		Name:        r.Name,
		ContentType: r.ContentType,
		URLSegment:  r.URLSegment,
		Route:       r.Route,
		Level:       level,
		Properties:  r.Properties,
		UpdatedAt:   time.Now().UTC(),
	})
}
