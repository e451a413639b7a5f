// Package document implements the Anti-Corruption Layer translators for the
// upstream content delivery API's document resources.
package document

// DocumentDTO matches the upstream Document schema.
type DocumentDTO struct {
	Key         string         `json:"key"`
	Name        string         `json:"name"`
	ContentType string         `json:"content_type"`
	URLSegment  string         `json:"url_segment"`
	Route       string         `json:"route"`
	Level       int64          `json:"level"`
	Properties  map[string]any `json:"properties,omitempty"`
	UpdatedAt   string         `json:"updated_at"`
}

// DocumentListResponseDTO matches the upstream DocumentListResponse schema.
type DocumentListResponseDTO struct {
	Documents []DocumentDTO `json:"documents"`
	Count     int64         `json:"count"`
}

// ChildKeysResponseDTO matches the upstream ChildKeysResponse schema.
// Keys are ordered by the upstream tree sort order.
type ChildKeysResponseDTO struct {
	Keys  []string `json:"keys"`
	Count int64    `json:"count"`
}
