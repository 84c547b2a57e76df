package render

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/graphscape/pkg/graph"
)

func TestAggregateGroupsNearbyNodes(t *testing.T) {
	nodes := []graph.Node{
		nodeAt("a", 0, 0),
		nodeAt("b", 10, 0),
		nodeAt("c", 1000, 1000),
	}

	out, _ := aggregate(nodes, nil, ClusterLow, 50)
	if len(out) != 2 {
		t.Fatalf("nodes = %d, want 2 (one marker, one loner)", len(out))
	}

	var marker *graph.Node
	for i := range out {
		if out[i].IsCluster {
			marker = &out[i]
		}
	}
	if marker == nil {
		t.Fatal("no cluster marker produced")
	}
	if marker.ClusterSize != 2 || len(marker.ChildNodes) != 2 {
		t.Errorf("marker children = %v (size %d), want a, b", marker.ChildNodes, marker.ClusterSize)
	}
	if marker.Representative != "a" {
		t.Errorf("representative = %q, want a", marker.Representative)
	}
	if marker.Position.X != 5 || marker.Position.Y != 0 {
		t.Errorf("marker position = %+v, want centroid (5, 0)", marker.Position)
	}
	if !strings.HasPrefix(marker.ID, "cluster-") {
		t.Errorf("marker id = %q, want cluster- prefix", marker.ID)
	}
}

func TestAggregateSingletonsUntouched(t *testing.T) {
	nodes := []graph.Node{
		nodeAt("a", 0, 0),
		nodeAt("b", 1000, 1000),
	}
	out, _ := aggregate(nodes, nil, ClusterLow, 50)
	if len(out) != 2 {
		t.Fatalf("nodes = %d, want 2", len(out))
	}
	for _, n := range out {
		if n.IsCluster {
			t.Errorf("singleton %s became a marker", n.ID)
		}
	}
}

func TestAggregateRemapsLinks(t *testing.T) {
	nodes := []graph.Node{
		nodeAt("a", 0, 0),
		nodeAt("b", 10, 0),
		nodeAt("c", 1000, 1000),
	}
	links := []graph.Link{
		link("internal", "a", "b"), // collapses to a self-loop
		link("out1", "a", "c"),
		link("out2", "b", "c"), // duplicate of out1 after remapping
	}

	outNodes, outLinks := aggregate(nodes, links, ClusterLow, 50)

	var clusterID string
	for _, n := range outNodes {
		if n.IsCluster {
			clusterID = n.ID
		}
	}
	if clusterID == "" {
		t.Fatal("no cluster marker produced")
	}

	if len(outLinks) != 1 {
		t.Fatalf("links = %v, want exactly one after self-loop drop and dedupe", outLinks)
	}
	l := outLinks[0]
	if l.Source != clusterID || l.Target != "c" {
		t.Errorf("link = %s -> %s, want %s -> c", l.Source, l.Target, clusterID)
	}
}

func TestAggregateBoostsClusterLinks(t *testing.T) {
	nodes := []graph.Node{
		nodeAt("a", 0, 0),
		nodeAt("b", 10, 0),
		nodeAt("x", 1000, 1000),
		nodeAt("y", 1010, 1000),
	}
	l := link("cross", "a", "x")
	l.Metadata.Strength = 0.4

	_, outLinks := aggregate(nodes, []graph.Link{l}, ClusterLow, 50)
	if len(outLinks) != 1 {
		t.Fatalf("links = %d, want 1", len(outLinks))
	}
	if got := outLinks[0].Metadata.Strength; math.Abs(got-0.6) > 1e-9 {
		t.Errorf("boosted strength = %v, want 0.6", got)
	}
}

func TestAggregateColorsFromDominantTag(t *testing.T) {
	a := nodeAt("a", 0, 0)
	a.Metadata.Tags = []string{"work"}
	b := nodeAt("b", 10, 0)
	b.Metadata.Tags = []string{"work", "misc"}

	out, _ := aggregate([]graph.Node{a, b}, nil, ClusterLow, 50)
	if len(out) != 1 || !out[0].IsCluster {
		t.Fatalf("expected a single marker, got %v", out)
	}
	if out[0].Color != tagColor("work") {
		t.Errorf("marker color = %q, want color of dominant tag", out[0].Color)
	}
}
