package graph

import (
	"errors"
	"testing"
)

func testGraph() Data {
	return Data{
		Nodes: []Node{
			{ID: "a", Type: NodeNote},
			{ID: "b", Type: NodeNote},
			{ID: "c", Type: NodeTag},
		},
		Links: []Link{
			{ID: "l1", Source: "a", Target: "b", Type: LinkReference},
			{ID: "l2", Source: "b", Target: "c", Type: LinkTag},
		},
	}
}

func TestStoreSetDataCopies(t *testing.T) {
	s := NewStore()
	in := testGraph()
	s.SetData(in)

	// Mutating the input must not affect the store.
	in.Nodes[0].ID = "mutated"

	got, ok := s.Data()
	if !ok {
		t.Fatal("Data: no graph loaded")
	}
	if got.Nodes[0].ID != "a" {
		t.Errorf("store leaked reference to caller slice: %q", got.Nodes[0].ID)
	}
	if got.Metadata.NodeCount != 3 || got.Metadata.LinkCount != 2 {
		t.Errorf("metadata = %+v, want 3 nodes / 2 links", got.Metadata)
	}
}

func TestStoreAddNode(t *testing.T) {
	tests := []struct {
		name    string
		node    Node
		wantErr error
	}{
		{name: "Valid", node: Node{ID: "d", Type: NodeUser}},
		{name: "EmptyID", node: Node{}, wantErr: ErrInvalidNodeID},
		{name: "Duplicate", node: Node{ID: "a"}, wantErr: ErrDuplicateNodeID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			s.SetData(testGraph())
			err := s.AddNode(tt.node)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddNode: err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStoreRemoveNodeCascades(t *testing.T) {
	// Removing B from A-B, B-C must delete both links and no others.
	s := NewStore()
	s.SetData(testGraph())

	if err := s.RemoveNode("b"); err != nil {
		t.Fatalf("RemoveNode: %v", err)
	}

	got, _ := s.Data()
	if len(got.Nodes) != 2 {
		t.Errorf("nodes = %d, want 2", len(got.Nodes))
	}
	if len(got.Links) != 0 {
		t.Errorf("links = %d, want 0 after cascade", len(got.Links))
	}
}

func TestStoreRemoveNodeKeepsUnrelatedLinks(t *testing.T) {
	s := NewStore()
	d := testGraph()
	d.Nodes = append(d.Nodes, Node{ID: "d", Type: NodeNote})
	d.Links = append(d.Links, Link{ID: "l3", Source: "a", Target: "d"})
	s.SetData(d)

	if err := s.RemoveNode("b"); err != nil {
		t.Fatalf("RemoveNode: %v", err)
	}

	got, _ := s.Data()
	if len(got.Links) != 1 || got.Links[0].ID != "l3" {
		t.Errorf("links = %+v, want only l3", got.Links)
	}
}

func TestStoreRemoveNodeUnknown(t *testing.T) {
	s := NewStore()
	s.SetData(testGraph())
	if err := s.RemoveNode("zzz"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("RemoveNode unknown: err = %v, want ErrNodeNotFound", err)
	}
}

func TestStoreLinkOperations(t *testing.T) {
	s := NewStore()
	s.SetData(testGraph())

	if err := s.AddLink(Link{ID: "l1"}); !errors.Is(err, ErrDuplicateLinkID) {
		t.Errorf("duplicate AddLink: err = %v", err)
	}
	if err := s.AddLink(Link{Source: "a", Target: "c"}); !errors.Is(err, ErrInvalidLinkID) {
		t.Errorf("empty-ID AddLink: err = %v", err)
	}
	if err := s.AddLink(Link{ID: "l3", Source: "a", Target: "c", Type: LinkReference}); err != nil {
		t.Fatalf("AddLink: %v", err)
	}
	if err := s.RemoveLink("l3"); err != nil {
		t.Fatalf("RemoveLink: %v", err)
	}
	if err := s.RemoveLink("l3"); !errors.Is(err, ErrLinkNotFound) {
		t.Errorf("RemoveLink twice: err = %v", err)
	}
}

func TestStoreUpdateNode(t *testing.T) {
	s := NewStore()
	s.SetData(testGraph())

	label := "Note A"
	size := 12.5
	pos := Position{X: 10, Y: 20}
	if err := s.UpdateNode("a", NodeUpdate{Label: &label, Size: &size, Position: &pos}); err != nil {
		t.Fatalf("UpdateNode: %v", err)
	}

	n, ok := s.Node("a")
	if !ok {
		t.Fatal("Node a missing")
	}
	if n.Label != "Note A" || n.Size != 12.5 {
		t.Errorf("partial update not applied: %+v", n)
	}
	if n.Position == nil || n.Position.X != 10 {
		t.Errorf("position not applied: %+v", n.Position)
	}
	if n.Type != NodeNote {
		t.Errorf("untouched field changed: %v", n.Type)
	}
	if n.Metadata.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not stamped")
	}

	if err := s.UpdateNode("zzz", NodeUpdate{}); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("UpdateNode unknown: err = %v", err)
	}
}

func TestStoreUpdateLink(t *testing.T) {
	s := NewStore()
	s.SetData(testGraph())

	w := 0.9
	bi := true
	if err := s.UpdateLink("l1", LinkUpdate{Weight: &w, Bidirectional: &bi}); err != nil {
		t.Fatalf("UpdateLink: %v", err)
	}

	l, _ := s.Link("l1")
	if l.Weight != 0.9 || !l.Metadata.Bidirectional {
		t.Errorf("partial update not applied: %+v", l)
	}
	if l.Type != LinkReference {
		t.Errorf("untouched field changed: %v", l.Type)
	}
}

func TestStoreGeneration(t *testing.T) {
	s := NewStore()
	s.SetData(testGraph())
	gen := s.Generation()

	if err := s.AddNode(Node{ID: "d"}); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if s.Generation() == gen {
		t.Error("generation did not advance on mutation")
	}

	gen = s.Generation()
	s.SetData(testGraph())
	if s.Generation() == gen {
		t.Error("generation did not advance on SetData")
	}
}

func TestStoreEmpty(t *testing.T) {
	s := NewStore()
	if _, ok := s.Data(); ok {
		t.Error("empty store should report no data")
	}
	if err := s.RemoveNode("a"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("RemoveNode on empty store: err = %v", err)
	}
	// AddNode implicitly starts a graph.
	if err := s.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode on empty store: %v", err)
	}
	if !s.HasData() {
		t.Error("store should have data after AddNode")
	}
}
