package graph

import (
	"errors"
	"time"
)

var (
	// ErrInvalidNodeID is returned by [Store.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Store.AddNode] when a node with the
	// same ID already exists. Node IDs must be unique within a graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrInvalidLinkID is returned by [Store.AddLink] when the link ID is empty.
	ErrInvalidLinkID = errors.New("link ID must not be empty")

	// ErrDuplicateLinkID is returned by [Store.AddLink] when a link with the
	// same ID already exists.
	ErrDuplicateLinkID = errors.New("duplicate link ID")

	// ErrNodeNotFound is returned by node operations when the ID is unknown.
	ErrNodeNotFound = errors.New("node not found")

	// ErrLinkNotFound is returned by link operations when the ID is unknown.
	ErrLinkNotFound = errors.New("link not found")

	// ErrNoData is returned by operations that require a loaded graph.
	ErrNoData = errors.New("no graph data loaded")
)

// =============================================================================
// Store - The Single Mutable Graph
// =============================================================================

// Store owns the current mutable graph. Every other component either reads a
// copy of it or receives and returns immutable [Data] values.
//
// Mutations bump an internal generation counter; consumers that cache derived
// results (analytics) compare generations to decide when to recompute.
//
// Store is not safe for concurrent use without external synchronization.
type Store struct {
	data       *Data
	nodeIndex  map[string]int
	linkIndex  map[string]int
	generation uint64
}

// NewStore creates an empty store with no graph loaded.
func NewStore() *Store {
	return &Store{}
}

// SetData replaces the current graph. The input is deep-copied so later
// caller-side mutation cannot corrupt the store. Any previously computed
// analytics become stale (the generation counter advances).
func (s *Store) SetData(d Data) {
	cp := d.Clone()
	cp.Finalize()
	s.data = &cp
	s.reindex()
	s.generation++
}

// Data returns a deep copy of the current graph, or false if none is loaded.
func (s *Store) Data() (Data, bool) {
	if s.data == nil {
		return Data{}, false
	}
	return s.data.Clone(), true
}

// HasData reports whether a graph is loaded.
func (s *Store) HasData() bool { return s.data != nil }

// Generation returns the mutation counter. It changes whenever the stored
// graph changes, including SetData.
func (s *Store) Generation() uint64 { return s.generation }

// Node returns a copy of the node with the given ID.
func (s *Store) Node(id string) (Node, bool) {
	if s.data == nil {
		return Node{}, false
	}
	i, ok := s.nodeIndex[id]
	if !ok {
		return Node{}, false
	}
	return s.data.Nodes[i].Clone(), true
}

// Link returns a copy of the link with the given ID.
func (s *Store) Link(id string) (Link, bool) {
	if s.data == nil {
		return Link{}, false
	}
	i, ok := s.linkIndex[id]
	if !ok {
		return Link{}, false
	}
	return s.data.Links[i], true
}

// AddNode adds a node to the graph. Returns ErrInvalidNodeID for an empty ID
// or ErrDuplicateNodeID if the ID is already taken. An empty store implicitly
// starts a new graph.
func (s *Store) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	s.ensureData()
	if _, exists := s.nodeIndex[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	s.data.Nodes = append(s.data.Nodes, n.Clone())
	s.nodeIndex[n.ID] = len(s.data.Nodes) - 1
	s.finalize()
	return nil
}

// RemoveNode removes the node and cascades to delete every link touching it.
// Returns ErrNodeNotFound if the ID is unknown.
func (s *Store) RemoveNode(id string) error {
	if s.data == nil {
		return ErrNodeNotFound
	}
	i, ok := s.nodeIndex[id]
	if !ok {
		return ErrNodeNotFound
	}
	s.data.Nodes = append(s.data.Nodes[:i], s.data.Nodes[i+1:]...)

	kept := s.data.Links[:0]
	for _, l := range s.data.Links {
		if !l.Touches(id) {
			kept = append(kept, l)
		}
	}
	s.data.Links = kept

	s.reindex()
	s.finalize()
	return nil
}

// AddLink adds a link to the graph. Only the link ID is validated; callers
// are responsible for the referential integrity of new links (an endpoint
// that never existed is tolerated by skip-on-lookup downstream).
func (s *Store) AddLink(l Link) error {
	if l.ID == "" {
		return ErrInvalidLinkID
	}
	s.ensureData()
	if _, exists := s.linkIndex[l.ID]; exists {
		return ErrDuplicateLinkID
	}
	s.data.Links = append(s.data.Links, l)
	s.linkIndex[l.ID] = len(s.data.Links) - 1
	s.finalize()
	return nil
}

// RemoveLink removes the link with the given ID.
func (s *Store) RemoveLink(id string) error {
	if s.data == nil {
		return ErrLinkNotFound
	}
	i, ok := s.linkIndex[id]
	if !ok {
		return ErrLinkNotFound
	}
	s.data.Links = append(s.data.Links[:i], s.data.Links[i+1:]...)
	s.reindex()
	s.finalize()
	return nil
}

// =============================================================================
// Partial Updates
// =============================================================================

// NodeUpdate describes a partial node update. Nil fields are left unchanged.
type NodeUpdate struct {
	Label      *string
	Type       *NodeType
	Position   *Position
	Size       *float64
	Color      *string
	Cluster    *string
	Tags       []string
	Importance *float64
}

// LinkUpdate describes a partial link update. Nil fields are left unchanged.
type LinkUpdate struct {
	Type          *LinkType
	Weight        *float64
	Strength      *float64
	Bidirectional *bool
}

// UpdateNode applies a partial update to the node with the given ID and
// stamps UpdatedAt. Returns ErrNodeNotFound if the ID is unknown.
func (s *Store) UpdateNode(id string, u NodeUpdate) error {
	if s.data == nil {
		return ErrNodeNotFound
	}
	i, ok := s.nodeIndex[id]
	if !ok {
		return ErrNodeNotFound
	}
	n := &s.data.Nodes[i]
	if u.Label != nil {
		n.Label = *u.Label
	}
	if u.Type != nil {
		n.Type = *u.Type
	}
	if u.Position != nil {
		p := *u.Position
		n.Position = &p
	}
	if u.Size != nil {
		n.Size = *u.Size
	}
	if u.Color != nil {
		n.Color = *u.Color
	}
	if u.Cluster != nil {
		n.Cluster = *u.Cluster
	}
	if u.Tags != nil {
		n.Metadata.Tags = append([]string(nil), u.Tags...)
	}
	if u.Importance != nil {
		n.Metadata.Importance = *u.Importance
	}
	n.Metadata.UpdatedAt = time.Now()
	s.finalize()
	return nil
}

// UpdateLink applies a partial update to the link with the given ID.
// Returns ErrLinkNotFound if the ID is unknown.
func (s *Store) UpdateLink(id string, u LinkUpdate) error {
	if s.data == nil {
		return ErrLinkNotFound
	}
	i, ok := s.linkIndex[id]
	if !ok {
		return ErrLinkNotFound
	}
	l := &s.data.Links[i]
	if u.Type != nil {
		l.Type = *u.Type
	}
	if u.Weight != nil {
		l.Weight = *u.Weight
	}
	if u.Strength != nil {
		l.Metadata.Strength = *u.Strength
	}
	if u.Bidirectional != nil {
		l.Metadata.Bidirectional = *u.Bidirectional
	}
	s.finalize()
	return nil
}

// =============================================================================
// Internal Helpers
// =============================================================================

func (s *Store) ensureData() {
	if s.data == nil {
		s.data = &Data{}
		s.nodeIndex = make(map[string]int)
		s.linkIndex = make(map[string]int)
	}
}

func (s *Store) reindex() {
	s.nodeIndex = make(map[string]int, len(s.data.Nodes))
	for i, n := range s.data.Nodes {
		s.nodeIndex[n.ID] = i
	}
	s.linkIndex = make(map[string]int, len(s.data.Links))
	for i, l := range s.data.Links {
		s.linkIndex[l.ID] = i
	}
}

func (s *Store) finalize() {
	s.data.Finalize()
	s.generation++
}
