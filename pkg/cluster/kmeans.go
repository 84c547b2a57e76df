package cluster

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/matzehuels/graphscape/pkg/graph"
)

// K-means defaults.
const (
	defaultK          = 5
	defaultIterations = 10
)

// kmeans clusters nodes by their 2-D layout positions using Lloyd's
// algorithm with a fixed iteration count. Centroids are seeded from the
// injected random source, so results are reproducible under a fixed seed.
//
// Nodes without a position are left unlabeled; when no node has a position
// the graph is returned unchanged (clustering never triggers an implicit
// layout pass).
type kmeans struct{}

func (kmeans) Name() string { return KMeans }

func (kmeans) Defaults() Params {
	return Params{
		"k":          defaultK,
		"iterations": defaultIterations,
	}
}

func (kmeans) Execute(d graph.Data, p Params, rng *rand.Rand) (graph.Data, error) {
	out := d.Clone()

	var points [][]float64
	var owners []int // indexes into out.Nodes
	for i, n := range out.Nodes {
		if n.Position != nil {
			points = append(points, []float64{n.Position.X, n.Position.Y})
			owners = append(owners, i)
		}
	}
	if len(points) == 0 {
		return out, nil
	}

	k := p.Int("k", defaultK)
	iterations := p.Int("iterations", defaultIterations)

	assignment := kmeansPoints(points, k, iterations, rng)
	for j, idx := range owners {
		out.Nodes[idx].Cluster = fmt.Sprintf("k%d", assignment[j])
	}
	return out, nil
}

// kmeansPoints runs Lloyd's algorithm over arbitrary-dimension points and
// returns the per-point cluster index in [0, k).
//
// Centroids are initialized uniformly at random within the data's bounding
// box. Each iteration assigns every point to its nearest centroid by
// Euclidean distance, then recomputes centroids as the mean of their
// members; a centroid that loses all members keeps its previous position.
func kmeansPoints(points [][]float64, k, iterations int, rng *rand.Rand) []int {
	n := len(points)
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}
	dim := len(points[0])

	lo := make([]float64, dim)
	hi := make([]float64, dim)
	copy(lo, points[0])
	copy(hi, points[0])
	for _, pt := range points[1:] {
		for d := 0; d < dim; d++ {
			lo[d] = math.Min(lo[d], pt[d])
			hi[d] = math.Max(hi[d], pt[d])
		}
	}

	centroids := make([][]float64, k)
	for c := range centroids {
		centroids[c] = make([]float64, dim)
		for d := 0; d < dim; d++ {
			centroids[c][d] = lo[d] + rng.Float64()*(hi[d]-lo[d])
		}
	}

	assignment := make([]int, n)
	for it := 0; it < iterations; it++ {
		for i, pt := range points {
			assignment[i] = nearestCentroid(pt, centroids)
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dim)
		}
		for i, pt := range points {
			c := assignment[i]
			counts[c]++
			for d := 0; d < dim; d++ {
				sums[c][d] += pt[d]
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue // empty cluster keeps its centroid
			}
			for d := 0; d < dim; d++ {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}
	}

	// Final assignment against the settled centroids.
	for i, pt := range points {
		assignment[i] = nearestCentroid(pt, centroids)
	}
	return assignment
}

func nearestCentroid(pt []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, cen := range centroids {
		var sum float64
		for d := range pt {
			diff := pt[d] - cen[d]
			sum += diff * diff
		}
		if sum < bestDist {
			bestDist = sum
			best = c
		}
	}
	return best
}
