package layout

import (
	"math"
	"math/rand"

	"github.com/matzehuels/graphscape/pkg/graph"
)

// Force-directed layout defaults.
const (
	defaultIterations     = 150
	defaultRepulsion      = 300.0
	defaultSpringLength   = 100.0
	defaultSpringStrength = 0.05
	defaultCooling        = 0.95

	// barnesHutCutoff is the node count above which the pairwise repulsion
	// step switches from exact O(n²) to the quadtree approximation.
	barnesHutCutoff = 300

	// barnesHutTheta is the accuracy knob for the quadtree approximation.
	// A cell is treated as a single aggregate when cellSize/distance < theta.
	barnesHutTheta = 0.5

	// minSeparation guards the repulsion singularity at zero distance.
	minSeparation = 0.01
)

// forceDirected is an iterative physics simulation: every node pair repels
// with a force inversely proportional to squared distance, and every link
// pulls its endpoints toward a rest length. The loop always runs the fixed
// iteration count; there is no convergence test, so runtime is a direct
// function of node/link count.
type forceDirected struct{}

func (forceDirected) Name() string { return ForceDirected }

func (forceDirected) Defaults() Params {
	return Params{
		"iterations":      defaultIterations,
		"repulsion":       defaultRepulsion,
		"spring_length":   defaultSpringLength,
		"spring_strength": defaultSpringStrength,
		"cooling":         defaultCooling,
		"width":           800.0,
		"height":          600.0,
	}
}

func (forceDirected) Execute(d graph.Data, p Params, rng *rand.Rand) (graph.Data, error) {
	out := d.Clone()
	n := len(out.Nodes)
	if n == 0 {
		return out, nil
	}

	iterations := p.Int("iterations", defaultIterations)
	repulsion := p.Float("repulsion", defaultRepulsion)
	springLength := p.Float("spring_length", defaultSpringLength)
	springStrength := p.Float("spring_strength", defaultSpringStrength)
	cooling := p.Float("cooling", defaultCooling)
	width := p.Float("width", 800)
	height := p.Float("height", 600)

	// Seed positions for nodes that have none, uniformly within the frame.
	pos := make([]graph.Position, n)
	for i := range out.Nodes {
		if out.Nodes[i].Position != nil {
			pos[i] = *out.Nodes[i].Position
		} else {
			pos[i] = graph.Position{X: rng.Float64() * width, Y: rng.Float64() * height}
		}
	}

	idx := out.NodeIndex()
	type spring struct {
		a, b int
	}
	springs := make([]spring, 0, len(out.Links))
	for _, l := range out.Links {
		a, okA := idx[l.Source]
		b, okB := idx[l.Target]
		if !okA || !okB || a == b {
			continue
		}
		springs = append(springs, spring{a, b})
	}

	disp := make([]graph.Position, n)
	temperature := math.Max(width, height) / 10

	for it := 0; it < iterations; it++ {
		for i := range disp {
			disp[i] = graph.Position{}
		}

		if n > barnesHutCutoff {
			repelBarnesHut(pos, disp, repulsion, rng)
		} else {
			repelExact(pos, disp, repulsion, rng)
		}

		// Spring attraction along links, proportional to the deviation from
		// the rest length.
		for _, s := range springs {
			dx := pos[s.b].X - pos[s.a].X
			dy := pos[s.b].Y - pos[s.a].Y
			dist := math.Hypot(dx, dy)
			if dist < minSeparation {
				continue
			}
			f := springStrength * (dist - springLength)
			fx := f * dx / dist
			fy := f * dy / dist
			disp[s.a].X += fx
			disp[s.a].Y += fy
			disp[s.b].X -= fx
			disp[s.b].Y -= fy
		}

		// Apply displacements, capped by the current temperature.
		for i := range pos {
			d := math.Hypot(disp[i].X, disp[i].Y)
			if d < minSeparation {
				continue
			}
			step := math.Min(d, temperature)
			pos[i].X += disp[i].X / d * step
			pos[i].Y += disp[i].Y / d * step
		}
		temperature *= cooling
	}

	for i := range out.Nodes {
		p := pos[i]
		out.Nodes[i].Position = &p
	}
	return out, nil
}

// repelExact accumulates pairwise repulsion over every unordered node pair.
func repelExact(pos, disp []graph.Position, repulsion float64, rng *rand.Rand) {
	for i := 0; i < len(pos); i++ {
		for j := i + 1; j < len(pos); j++ {
			dx := pos[i].X - pos[j].X
			dy := pos[i].Y - pos[j].Y
			dist := math.Hypot(dx, dy)
			if dist < minSeparation {
				// Coincident nodes: push them apart in a random direction.
				angle := rng.Float64() * 2 * math.Pi
				dx, dy = math.Cos(angle), math.Sin(angle)
				dist = minSeparation
			}
			f := repulsion / (dist * dist)
			fx := f * dx / dist
			fy := f * dy / dist
			disp[i].X += fx
			disp[i].Y += fy
			disp[j].X -= fx
			disp[j].Y -= fy
		}
	}
}

// =============================================================================
// Barnes-Hut Quadtree
// =============================================================================

// quadCell is a node of the Barnes-Hut quadtree. Leaf cells hold a single
// point; internal cells aggregate the mass (point count) and centroid of
// their subtree.
type quadCell struct {
	x, y, size float64 // square region: origin and side length
	cx, cy     float64 // center of mass
	mass       int
	point      int     // leaf point index, -1 for internal cells
	px, py     float64 // leaf point coordinates
	children   *[4]*quadCell
}

func repelBarnesHut(pos, disp []graph.Position, repulsion float64, rng *rand.Rand) {
	root := buildQuadtree(pos)
	if root == nil {
		return
	}
	for i := range pos {
		fx, fy := root.force(pos[i].X, pos[i].Y, i, repulsion, rng)
		disp[i].X += fx
		disp[i].Y += fy
	}
}

func buildQuadtree(pos []graph.Position) *quadCell {
	if len(pos) == 0 {
		return nil
	}
	minX, minY := pos[0].X, pos[0].Y
	maxX, maxY := minX, minY
	for _, p := range pos[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	size := math.Max(maxX-minX, maxY-minY)
	if size < minSeparation {
		size = minSeparation
	}
	root := &quadCell{x: minX, y: minY, size: size, point: -1}
	for i, p := range pos {
		root.insert(p.X, p.Y, i, 0)
	}
	return root
}

// maxQuadDepth bounds subdivision so coincident points cannot recurse forever.
const maxQuadDepth = 32

func (c *quadCell) insert(x, y float64, i, depth int) {
	if c.mass == 0 {
		c.point = i
		c.px, c.py = x, y
		c.cx, c.cy = x, y
		c.mass = 1
		return
	}

	// Update aggregate mass and centroid on the way down.
	total := float64(c.mass)
	c.cx = (c.cx*total + x) / (total + 1)
	c.cy = (c.cy*total + y) / (total + 1)
	c.mass++

	if depth >= maxQuadDepth {
		return
	}

	if c.children == nil {
		// Split: push the previously stored leaf point down one level.
		c.children = &[4]*quadCell{}
		c.childFor(c.px, c.py, c.point, depth)
		c.point = -1
	}
	c.childFor(x, y, i, depth)
}

// childFor routes a point into the matching quadrant, creating it on demand.
func (c *quadCell) childFor(x, y float64, i, depth int) {
	half := c.size / 2
	qx, qy := 0, 0
	if x >= c.x+half {
		qx = 1
	}
	if y >= c.y+half {
		qy = 1
	}
	q := qy*2 + qx
	if c.children[q] == nil {
		c.children[q] = &quadCell{
			x:     c.x + float64(qx)*half,
			y:     c.y + float64(qy)*half,
			size:  half,
			point: -1,
		}
	}
	c.children[q].insert(x, y, i, depth+1)
}

// force computes the repulsive force on point i at (x, y) from this cell.
func (c *quadCell) force(x, y float64, i int, repulsion float64, rng *rand.Rand) (float64, float64) {
	if c == nil || c.mass == 0 {
		return 0, 0
	}
	if c.children == nil && c.point == i && c.mass == 1 {
		return 0, 0
	}

	dx := x - c.cx
	dy := y - c.cy
	dist := math.Hypot(dx, dy)

	// Treat the cell as one aggregate body when it is far enough away, or
	// when it is a leaf.
	if c.children == nil || c.size/math.Max(dist, minSeparation) < barnesHutTheta {
		if dist < minSeparation {
			angle := rng.Float64() * 2 * math.Pi
			dx, dy = math.Cos(angle), math.Sin(angle)
			dist = minSeparation
		}
		f := repulsion * float64(c.mass) / (dist * dist)
		return f * dx / dist, f * dy / dist
	}

	var fx, fy float64
	for _, child := range c.children {
		cfx, cfy := child.force(x, y, i, repulsion, rng)
		fx += cfx
		fy += cfy
	}
	return fx, fy
}
