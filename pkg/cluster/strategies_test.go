package cluster

import (
	"testing"

	gserrors "github.com/matzehuels/graphscape/pkg/errors"
	"github.com/matzehuels/graphscape/pkg/graph"
)

// =============================================================================
// Component
// =============================================================================

func TestComponentPartition(t *testing.T) {
	d := graph.Data{
		Nodes: nodes("a", "b", "c"),
		Links: []graph.Link{link("l1", "a", "b")},
	}

	out, err := NewEngine().Apply(Component, d, nil)
	if err != nil {
		t.Fatal(err)
	}
	labels := labelsOf(out)
	if labels["a"] != labels["b"] {
		t.Errorf("linked nodes a, b in different components: %q vs %q", labels["a"], labels["b"])
	}
	if labels["c"] == labels["a"] {
		t.Errorf("isolated node c shares component %q with a", labels["c"])
	}
	if labels["a"] != "c0" || labels["c"] != "c1" {
		t.Errorf("labels not assigned in node order: %v", labels)
	}
}

func TestComponentsFullyConnected(t *testing.T) {
	d := graph.Data{
		Nodes: nodes("a", "b", "c"),
		Links: []graph.Link{link("l1", "a", "b"), link("l2", "b", "c")},
	}
	labels := Components(&d)
	for id, label := range labels {
		if label != "c0" {
			t.Errorf("node %s labeled %q, want c0", id, label)
		}
	}
}

// =============================================================================
// K-means
// =============================================================================

func TestKMeansSeparatesClouds(t *testing.T) {
	d := graph.Data{Nodes: nodes("a1", "a2", "a3", "b1", "b2", "b3")}
	// Two tight clouds far apart.
	coords := []graph.Position{
		{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		{X: 1000, Y: 1000}, {X: 1001, Y: 1001}, {X: 1000, Y: 1001},
	}
	for i := range d.Nodes {
		p := coords[i]
		d.Nodes[i].Position = &p
	}

	out, err := NewEngine().Apply(KMeans, d, Params{"k": 2})
	if err != nil {
		t.Fatal(err)
	}
	labels := labelsOf(out)
	if labels["a1"] != labels["a2"] || labels["a2"] != labels["a3"] {
		t.Errorf("first cloud split: %v", labels)
	}
	if labels["b1"] != labels["b2"] || labels["b2"] != labels["b3"] {
		t.Errorf("second cloud split: %v", labels)
	}
	if labels["a1"] == labels["b1"] {
		t.Errorf("distinct clouds merged into %q", labels["a1"])
	}
}

func TestKMeansWithoutPositionsIsNoOp(t *testing.T) {
	d := graph.Data{Nodes: nodes("a", "b", "c")}

	out, err := NewEngine().Apply(KMeans, d, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range out.Nodes {
		if n.Cluster != "" {
			t.Errorf("node %s labeled %q without any positions", n.ID, n.Cluster)
		}
	}
}

func TestKMeansSkipsUnpositionedNodes(t *testing.T) {
	d := graph.Data{Nodes: nodes("a", "b", "c")}
	d.Nodes[0].Position = &graph.Position{X: 0, Y: 0}
	d.Nodes[1].Position = &graph.Position{X: 1, Y: 1}

	out, err := NewEngine().Apply(KMeans, d, Params{"k": 1})
	if err != nil {
		t.Fatal(err)
	}
	labels := labelsOf(out)
	if labels["a"] == "" || labels["b"] == "" {
		t.Errorf("positioned nodes not labeled: %v", labels)
	}
	if labels["c"] != "" {
		t.Errorf("unpositioned node c labeled %q", labels["c"])
	}
}

// =============================================================================
// Louvain
// =============================================================================

// clique adds all pairwise links among ids, appending to links.
func clique(links []graph.Link, prefix string, ids ...string) []graph.Link {
	n := 0
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			links = append(links, weightedLink(prefix+string(rune('0'+n)), ids[i], ids[j], 1))
			n++
		}
	}
	return links
}

func TestLouvainTwoCliques(t *testing.T) {
	d := graph.Data{Nodes: nodes("a", "b", "c", "d", "x", "y", "z", "w")}
	var links []graph.Link
	links = clique(links, "l", "a", "b", "c", "d")
	links = clique(links, "m", "x", "y", "z", "w")
	// Weak bridge between the cliques.
	links = append(links, weightedLink("bridge", "d", "x", 0.1))
	d.Links = links

	out, err := NewEngine().Apply(Louvain, d, nil)
	if err != nil {
		t.Fatal(err)
	}
	labels := labelsOf(out)
	for _, id := range []string{"b", "c", "d"} {
		if labels[id] != labels["a"] {
			t.Errorf("clique member %s labeled %q, want %q", id, labels[id], labels["a"])
		}
	}
	for _, id := range []string{"y", "z", "w"} {
		if labels[id] != labels["x"] {
			t.Errorf("clique member %s labeled %q, want %q", id, labels[id], labels["x"])
		}
	}
	if labels["a"] == labels["x"] {
		t.Errorf("weakly joined cliques merged into %q", labels["a"])
	}
}

func TestLouvainSingleNode(t *testing.T) {
	d := graph.Data{Nodes: nodes("solo")}
	out, err := NewEngine().Apply(Louvain, d, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Nodes[0].Cluster == "" {
		t.Error("single node left unlabeled")
	}
}

// =============================================================================
// Spectral
// =============================================================================

func TestSpectralTwoCliques(t *testing.T) {
	d := graph.Data{Nodes: nodes("a", "b", "c", "d", "x", "y", "z", "w")}
	var links []graph.Link
	links = clique(links, "l", "a", "b", "c", "d")
	links = clique(links, "m", "x", "y", "z", "w")
	links = append(links, weightedLink("bridge", "d", "x", 0.1))
	d.Links = links

	out, err := NewEngine().Apply(Spectral, d, Params{"k": 2})
	if err != nil {
		t.Fatal(err)
	}
	labels := labelsOf(out)
	for _, id := range []string{"b", "c", "d"} {
		if labels[id] != labels["a"] {
			t.Errorf("clique member %s labeled %q, want %q", id, labels[id], labels["a"])
		}
	}
	for _, id := range []string{"y", "z", "w"} {
		if labels[id] != labels["x"] {
			t.Errorf("clique member %s labeled %q, want %q", id, labels[id], labels["x"])
		}
	}
	if labels["a"] == labels["x"] {
		t.Errorf("weakly joined cliques merged into %q", labels["a"])
	}
}

func TestSpectralNodeCap(t *testing.T) {
	d := graph.Data{Nodes: make([]graph.Node, maxSpectralNodes+1)}
	for i := range d.Nodes {
		d.Nodes[i] = graph.Node{ID: string(rune(i)), Type: graph.NodeNote}
	}

	_, err := NewEngine().Apply(Spectral, d, nil)
	if err == nil {
		t.Fatal("expected error above node cap")
	}
	if !gserrors.Is(err, gserrors.ErrCodeUnsupported) {
		t.Errorf("error code = %q, want UNSUPPORTED", gserrors.GetCode(err))
	}
}
