package layout

import (
	"math/rand"

	"github.com/matzehuels/graphscape/pkg/graph"
)

// grid places nodes row-major with a fixed column count and uniform spacing.
type grid struct{}

func (grid) Name() string { return Grid }

func (grid) Defaults() Params {
	return Params{
		"columns": 5,
		"spacing": 100.0,
	}
}

func (grid) Execute(d graph.Data, p Params, _ *rand.Rand) (graph.Data, error) {
	out := d.Clone()

	columns := p.Int("columns", 5)
	if columns < 1 {
		columns = 1
	}
	spacing := p.Float("spacing", 100)

	for i := range out.Nodes {
		out.Nodes[i].Position = &graph.Position{
			X: float64(i%columns) * spacing,
			Y: float64(i/columns) * spacing,
		}
	}
	return out, nil
}
