package dot

import (
	"strings"
	"testing"

	"github.com/matzehuels/graphscape/pkg/graph"
)

func testGraph() graph.Data {
	return graph.Data{
		Nodes: []graph.Node{
			{ID: "a", Label: "Alpha", Type: graph.NodeNote, Cluster: "c0"},
			{ID: "b", Type: graph.NodeTag, Color: "#ff0000"},
		},
		Links: []graph.Link{
			{ID: "l1", Source: "a", Target: "b", Type: graph.LinkReference, Weight: 0.5},
		},
	}
}

func TestMarshal(t *testing.T) {
	out := Marshal(testGraph(), Options{})

	for _, want := range []string{
		"digraph G {",
		`"a" [label="Alpha"]`,
		`"b" [label="b", fillcolor="#ff0000"]`,
		`"a" -> "b" [weight=0.5];`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMarshalDetailed(t *testing.T) {
	out := Marshal(testGraph(), Options{Detailed: true})
	for _, want := range []string{"type: note", "cluster: c0", "degree: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("detailed output missing %q:\n%s", want, out)
		}
	}
}

func TestMarshalPositions(t *testing.T) {
	d := testGraph()
	d.Nodes[0].Position = &graph.Position{X: 10, Y: 20}

	out := Marshal(d, Options{Positions: true})
	if !strings.Contains(out, `pos="10,20!"`) {
		t.Errorf("output missing pinned position:\n%s", out)
	}
}

func TestMarshalClusterMarker(t *testing.T) {
	d := graph.Data{
		Nodes: []graph.Node{{
			ID: "cluster-1", Type: graph.NodeNote,
			IsCluster: true, ClusterSize: 3, ChildNodes: []string{"a", "b", "c"},
		}},
	}
	out := Marshal(d, Options{Detailed: true})
	if !strings.Contains(out, "dashed") {
		t.Errorf("cluster marker not dashed:\n%s", out)
	}
	if !strings.Contains(out, "members: 3") {
		t.Errorf("cluster marker missing member count:\n%s", out)
	}
}
