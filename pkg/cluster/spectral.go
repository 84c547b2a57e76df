package cluster

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	gserrors "github.com/matzehuels/graphscape/pkg/errors"
	"github.com/matzehuels/graphscape/pkg/graph"
)

// Spectral clustering defaults and limits.
const (
	// maxSpectralNodes bounds the dense eigen-decomposition, which is O(n³).
	maxSpectralNodes = 2000
)

// spectral performs normalized-Laplacian spectral clustering: the symmetric
// normalized Laplacian L = I - D^{-1/2} A D^{-1/2} is eigen-decomposed, each
// node is embedded into the k eigenvectors of smallest eigenvalue, the rows
// are unit-normalized, and k-means partitions the embedding.
//
// The decomposition is dense, so graphs above maxSpectralNodes nodes are
// rejected with an UNSUPPORTED error instead of stalling the caller.
type spectral struct{}

func (spectral) Name() string { return Spectral }

func (spectral) Defaults() Params {
	return Params{
		"k":          defaultK,
		"iterations": defaultIterations,
	}
}

func (spectral) Execute(d graph.Data, p Params, rng *rand.Rand) (graph.Data, error) {
	out := d.Clone()
	n := len(out.Nodes)
	if n == 0 {
		return out, nil
	}
	if n > maxSpectralNodes {
		return graph.Data{}, gserrors.New(gserrors.ErrCodeUnsupported,
			"spectral clustering is limited to %d nodes, got %d", maxSpectralNodes, n)
	}

	k := p.Int("k", defaultK)
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}
	iterations := p.Int("iterations", defaultIterations)

	idx := out.NodeIndex()

	// Weighted adjacency and degree. Weights <= 0 count as 1; parallel links
	// accumulate.
	adj := mat.NewSymDense(n, nil)
	degree := make([]float64, n)
	for _, l := range out.Links {
		a, okA := idx[l.Source]
		b, okB := idx[l.Target]
		if !okA || !okB || a == b {
			continue
		}
		w := l.Weight
		if w <= 0 {
			w = 1
		}
		adj.SetSym(a, b, adj.At(a, b)+w)
		degree[a] += w
		degree[b] += w
	}

	// Symmetric normalized Laplacian. Isolated nodes contribute an identity
	// row, which places them at the origin of the embedding.
	lap := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			var v float64
			if i == j {
				v = 1
			}
			if degree[i] > 0 && degree[j] > 0 {
				v -= adj.At(i, j) / math.Sqrt(degree[i]*degree[j])
			}
			lap.SetSym(i, j, v)
		}
	}

	var eig mat.EigenSym
	if !eig.Factorize(lap, true) {
		return graph.Data{}, gserrors.New(gserrors.ErrCodeInternal, "laplacian eigen-decomposition failed")
	}
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// Embed each node into the k eigenvectors of smallest eigenvalue
	// (EigenSym orders eigenvalues ascending) and unit-normalize the rows.
	points := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, k)
		var norm float64
		for j := 0; j < k; j++ {
			row[j] = vectors.At(i, j)
			norm += row[j] * row[j]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range row {
				row[j] /= norm
			}
		}
		points[i] = row
	}

	assignment := kmeansPoints(points, k, iterations, rng)
	for i := range out.Nodes {
		out.Nodes[i].Cluster = fmt.Sprintf("s%d", assignment[i])
	}
	return out, nil
}
