package filter

import (
	"testing"

	gserrors "github.com/matzehuels/graphscape/pkg/errors"
	"github.com/matzehuels/graphscape/pkg/graph"
)

func intp(v int) *int { return &v }

func testGraph() graph.Data {
	return graph.Data{
		Nodes: []graph.Node{
			{ID: "n1", Type: graph.NodeNote, Cluster: "c0", Metadata: graph.NodeMetadata{Tags: []string{"work"}}},
			{ID: "n2", Type: graph.NodeNote, Cluster: "c0"},
			{ID: "n3", Type: graph.NodeNote, Cluster: "c1", Metadata: graph.NodeMetadata{Tags: []string{"home"}}},
			{ID: "t1", Type: graph.NodeTag, Cluster: "c1"},
		},
		Links: []graph.Link{
			{ID: "l1", Source: "n1", Target: "n2", Type: graph.LinkReference},
			{ID: "l2", Source: "n2", Target: "n3", Type: graph.LinkReference},
			{ID: "l3", Source: "n3", Target: "t1", Type: graph.LinkTag},
		},
	}
}

func ids(nodes []graph.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func wantNodes(t *testing.T, d graph.Data, want ...string) {
	t.Helper()
	got := ids(d.Nodes)
	if len(got) != len(want) {
		t.Fatalf("nodes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("nodes = %v, want %v", got, want)
		}
	}
}

func TestApplyEmptyFilterIsIdentity(t *testing.T) {
	d := testGraph()
	out, err := Apply(d, Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Nodes) != len(d.Nodes) || len(out.Links) != len(d.Links) {
		t.Errorf("empty filter changed graph: %d nodes, %d links", len(out.Nodes), len(out.Links))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	d := testGraph()
	_, err := Apply(d, Filter{NodeTypes: []graph.NodeType{graph.NodeTag}})
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Nodes) != 4 || len(d.Links) != 3 {
		t.Errorf("input mutated: %d nodes, %d links", len(d.Nodes), len(d.Links))
	}
}

func TestApplyNodeTypes(t *testing.T) {
	out, err := Apply(testGraph(), Filter{NodeTypes: []graph.NodeType{graph.NodeNote}})
	if err != nil {
		t.Fatal(err)
	}
	wantNodes(t, out, "n1", "n2", "n3")
	// l3 touched the removed tag node.
	if len(out.Links) != 2 {
		t.Errorf("links = %d, want 2", len(out.Links))
	}
}

func TestApplyLinkTypes(t *testing.T) {
	out, err := Apply(testGraph(), Filter{LinkTypes: []graph.LinkType{graph.LinkTag}})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Links) != 1 || out.Links[0].ID != "l3" {
		t.Errorf("links = %v, want [l3]", out.Links)
	}
	// Link filtering alone keeps all nodes.
	wantNodes(t, out, "n1", "n2", "n3", "t1")
}

func TestApplyMinConnections(t *testing.T) {
	// Path n1-n2-n3 (-t1): only n2 and n3 have two or more links.
	out, err := Apply(testGraph(), Filter{MinConnections: intp(2)})
	if err != nil {
		t.Fatal(err)
	}
	wantNodes(t, out, "n2", "n3")
	if len(out.Links) != 1 || out.Links[0].ID != "l2" {
		t.Errorf("links = %v, want [l2]", out.Links)
	}
}

func TestApplyConnectionsCountLinkFilteredSet(t *testing.T) {
	// With only tag links kept, n3 and t1 have one connection each and
	// everything else has zero.
	out, err := Apply(testGraph(), Filter{
		LinkTypes:      []graph.LinkType{graph.LinkTag},
		MinConnections: intp(1),
	})
	if err != nil {
		t.Fatal(err)
	}
	wantNodes(t, out, "n3", "t1")
}

func TestApplyMaxConnections(t *testing.T) {
	out, err := Apply(testGraph(), Filter{MaxConnections: intp(1)})
	if err != nil {
		t.Fatal(err)
	}
	wantNodes(t, out, "n1", "t1")
	// n1 and t1 are not linked to each other.
	if len(out.Links) != 0 {
		t.Errorf("links = %v, want none", out.Links)
	}
}

func TestApplyTags(t *testing.T) {
	out, err := Apply(testGraph(), Filter{Tags: []string{"work", "home"}})
	if err != nil {
		t.Fatal(err)
	}
	wantNodes(t, out, "n1", "n3")
}

func TestApplyClusters(t *testing.T) {
	out, err := Apply(testGraph(), Filter{Clusters: []string{"c1"}})
	if err != nil {
		t.Fatal(err)
	}
	wantNodes(t, out, "n3", "t1")
	if len(out.Links) != 1 || out.Links[0].ID != "l3" {
		t.Errorf("links = %v, want [l3]", out.Links)
	}
}

func TestApplyFinalizesMetadata(t *testing.T) {
	out, err := Apply(testGraph(), Filter{Clusters: []string{"c0"}})
	if err != nil {
		t.Fatal(err)
	}
	if out.Metadata.NodeCount != 2 || out.Metadata.LinkCount != 1 {
		t.Errorf("metadata = %+v, want 2 nodes, 1 link", out.Metadata)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
	}{
		{"unknown node type", Filter{NodeTypes: []graph.NodeType{"widget"}}},
		{"unknown link type", Filter{LinkTypes: []graph.LinkType{"wire"}}},
		{"negative min", Filter{MinConnections: intp(-1)}},
		{"negative max", Filter{MaxConnections: intp(-2)}},
		{"min above max", Filter{MinConnections: intp(3), MaxConnections: intp(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(testGraph(), tt.filter)
			if err == nil {
				t.Fatal("expected error")
			}
			if !gserrors.Is(err, gserrors.ErrCodeInvalidFilter) {
				t.Errorf("error code = %q, want INVALID_FILTER", gserrors.GetCode(err))
			}
		})
	}
}
