package layout

import (
	"math"
	"math/rand"

	"github.com/matzehuels/graphscape/pkg/graph"
)

// radial distributes nodes over concentric rings. Node i lands on ring
// i mod levels; its angle is determined by its position within that ring.
type radial struct{}

func (radial) Name() string { return Radial }

func (radial) Defaults() Params {
	return Params{
		"levels":       3,
		"ring_spacing": 120.0,
		"center_x":     0.0,
		"center_y":     0.0,
	}
}

func (radial) Execute(d graph.Data, p Params, _ *rand.Rand) (graph.Data, error) {
	out := d.Clone()
	n := len(out.Nodes)
	if n == 0 {
		return out, nil
	}

	levels := p.Int("levels", 3)
	if levels < 1 {
		levels = 1
	}
	ringSpacing := p.Float("ring_spacing", 120)
	cx := p.Float("center_x", 0)
	cy := p.Float("center_y", 0)

	// Count ring occupancy first so angles divide each ring evenly.
	counts := make([]int, levels)
	for i := 0; i < n; i++ {
		counts[i%levels]++
	}

	placed := make([]int, levels)
	for i := range out.Nodes {
		ring := i % levels
		radius := float64(ring+1) * ringSpacing
		angle := 2 * math.Pi * float64(placed[ring]) / float64(counts[ring])
		placed[ring]++
		out.Nodes[i].Position = &graph.Position{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		}
	}
	return out, nil
}
