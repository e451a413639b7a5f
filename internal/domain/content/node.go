package content

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/content-render-service/internal/domain"
)

// Compile-time check that Node implements Content.
var _ Content = (*Node)(nil)

// NodeSpec carries the raw field values for constructing a Node. It exists
// so that Node itself can stay immutable after construction.
type NodeSpec struct {
	Key         uuid.UUID
	Name        string
	ContentType string
	URLSegment  string
	Route       string
	Level       int
	Properties  map[string]any
	UpdatedAt   time.Time
}

// Validate checks business rules for the node spec.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (s *NodeSpec) Validate() error {
	fields := make(map[string]string)

	if s.Key == uuid.Nil {
		fields["key"] = domain.MsgRequired
	}
	if strings.TrimSpace(s.Name) == "" {
		fields["name"] = domain.MsgRequired
	}
	if strings.TrimSpace(s.ContentType) == "" {
		fields["content_type"] = domain.MsgRequired
	}
	if s.Route == "" || !strings.HasPrefix(s.Route, "/") {
		fields["route"] = `must start with "/"`
	}
	if s.Level < 1 {
		fields["level"] = "must be at least 1"
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Node is the generic published content item. It holds its property values
// in a map and is immutable after construction; all mutation happens
// upstream, in the editing tier this service does not own.
type Node struct {
	key         uuid.UUID
	name        string
	contentType string
	urlSegment  string
	route       string
	level       int
	properties  map[string]any
	updatedAt   time.Time
}

// NewNode constructs a published Node from the given spec.
// The spec's property map is copied so later mutation of the spec cannot
// leak into the published node.
func NewNode(spec NodeSpec) (*Node, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	props := make(map[string]any, len(spec.Properties))
	for alias, val := range spec.Properties {
		props[alias] = val
	}

	return &Node{
		key:         spec.Key,
		name:        spec.Name,
		contentType: spec.ContentType,
		urlSegment:  spec.URLSegment,
		route:       spec.Route,
		level:       spec.Level,
		properties:  props,
		updatedAt:   spec.UpdatedAt,
	}, nil
}

func (n *Node) Key() uuid.UUID       { return n.key }
func (n *Node) Name() string         { return n.name }
func (n *Node) ContentType() string  { return n.contentType }
func (n *Node) URLSegment() string   { return n.urlSegment }
func (n *Node) Route() string        { return n.route }
func (n *Node) Level() int           { return n.level }
func (n *Node) UpdatedAt() time.Time { return n.updatedAt }

// Property returns the value of the property with the given alias.
func (n *Node) Property(alias string) (any, bool) {
	val, ok := n.properties[alias]
	return val, ok
}

// PropertyAliases returns the aliases of all properties on the node,
// in unspecified order.
func (n *Node) PropertyAliases() []string {
	aliases := make([]string, 0, len(n.properties))
	for alias := range n.properties {
		aliases = append(aliases, alias)
	}
	return aliases
}
