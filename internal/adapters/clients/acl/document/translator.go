package document

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/content-render-service/internal/domain"
	"github.com/jsamuelsen11/content-render-service/internal/domain/content"
)

// ToDomainContent converts an upstream DocumentDTO to a published domain
// node. Returns a domain.ErrValidation-wrapping error when the upstream
// payload cannot form a valid node (bad key, missing name, bad route).
func ToDomainContent(dto *DocumentDTO) (content.Content, error) {
	key, err := uuid.Parse(dto.Key)
	if err != nil {
		return nil, fmt.Errorf("document key %q: %v: %w", dto.Key, err, domain.ErrValidation)
	}

	updatedAt, _ := time.Parse(time.RFC3339, dto.UpdatedAt)

	node, err := content.NewNode(content.NodeSpec{
		Key:         key,
		Name:        dto.Name,
		ContentType: dto.ContentType,
		URLSegment:  dto.URLSegment,
		Route:       dto.Route,
		Level:       int(dto.Level),
		Properties:  dto.Properties,
		UpdatedAt:   updatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", dto.Key, err)
	}
	return node, nil
}

// ToDomainContentList converts an upstream DocumentListResponseDTO to a
// slice of published domain nodes. A single bad document fails the whole
// translation; a partially indexed snapshot would silently drop routes.
func ToDomainContentList(dto DocumentListResponseDTO) ([]content.Content, error) {
	items := make([]content.Content, len(dto.Documents))
	for i := range dto.Documents {
		item, err := ToDomainContent(&dto.Documents[i])
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return items, nil
}

// ToDomainKeys converts an upstream ChildKeysResponseDTO to uuid keys,
// preserving the upstream tree order.
func ToDomainKeys(dto ChildKeysResponseDTO) ([]uuid.UUID, error) {
	keys := make([]uuid.UUID, len(dto.Keys))
	for i, raw := range dto.Keys {
		key, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("child key %q: %v: %w", raw, err, domain.ErrValidation)
		}
		keys[i] = key
	}
	return keys, nil
}
