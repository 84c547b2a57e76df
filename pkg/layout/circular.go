package layout

import (
	"math"
	"math/rand"

	"github.com/matzehuels/graphscape/pkg/graph"
)

// circular places all nodes on a single circle at equally spaced angles.
type circular struct{}

func (circular) Name() string { return Circular }

func (circular) Defaults() Params {
	return Params{
		"radius":   200.0,
		"center_x": 0.0,
		"center_y": 0.0,
	}
}

func (circular) Execute(d graph.Data, p Params, _ *rand.Rand) (graph.Data, error) {
	out := d.Clone()
	n := len(out.Nodes)
	if n == 0 {
		return out, nil
	}

	radius := p.Float("radius", 200)
	cx := p.Float("center_x", 0)
	cy := p.Float("center_y", 0)

	for i := range out.Nodes {
		angle := 2 * math.Pi * float64(i) / float64(n)
		out.Nodes[i].Position = &graph.Position{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		}
	}
	return out, nil
}
