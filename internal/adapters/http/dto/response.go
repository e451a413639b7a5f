// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/jsamuelsen11/content-render-service/internal/domain/content"
)

// ContentResponse represents a single published content item in HTTP responses.
type ContentResponse struct {
	Key         string         `json:"key"`
	Name        string         `json:"name"`
	ContentType string         `json:"content_type"`
	URLSegment  string         `json:"url_segment"`
	Route       string         `json:"route"`
	Level       int            `json:"level"`
	Properties  map[string]any `json:"properties,omitempty"`
	UpdatedAt   string         `json:"updated_at"`
}

// propertyLister is the optional capability used to enumerate a content
// item's properties for serialization. Items without it serialize with no
// properties object.
type propertyLister interface {
	PropertyAliases() []string
}

// ToContentResponse converts a published content item to an HTTP response DTO.
func ToContentResponse(c content.Content) ContentResponse {
	resp := ContentResponse{
		Key:         c.Key().String(),
		Name:        c.Name(),
		ContentType: c.ContentType(),
		URLSegment:  c.URLSegment(),
		Route:       c.Route(),
		Level:       c.Level(),
		UpdatedAt:   c.UpdatedAt().Format(time.RFC3339),
	}

	if lister, ok := c.(propertyLister); ok {
		aliases := lister.PropertyAliases()
		if len(aliases) > 0 {
			props := make(map[string]any, len(aliases))
			for _, alias := range aliases {
				if val, found := c.Property(alias); found {
					props[alias] = val
				}
			}
			resp.Properties = props
		}
	}

	return resp
}

// ContentListResponse represents a list of published content items in HTTP
// responses.
type ContentListResponse struct {
	Items []ContentResponse `json:"items"`
	Count int               `json:"count"`
}

// ToContentListResponse converts a slice of published content items to an
// HTTP list response DTO.
func ToContentListResponse(items []content.Content) ContentListResponse {
	out := make([]ContentResponse, len(items))
	for i, c := range items {
		out[i] = ToContentResponse(c)
	}
	return ContentListResponse{
		Items: out,
		Count: len(out),
	}
}

// RenderResponse represents a bound view model in HTTP responses: the
// content item the route resolved to, plus the model type it was bound as.
type RenderResponse struct {
	Route     string          `json:"route"`
	ModelType string          `json:"model_type"`
	Content   ContentResponse `json:"content"`
}

// ToRenderResponse converts a bound content item to a render response DTO.
func ToRenderResponse(route, modelType string, c content.Content) RenderResponse {
	return RenderResponse{
		Route:     route,
		ModelType: modelType,
		Content:   ToContentResponse(c),
	}
}

// RefreshResponse represents the result of an index refresh.
type RefreshResponse struct {
	Indexed int `json:"indexed"`
}
