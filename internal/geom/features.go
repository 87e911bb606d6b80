package geom

import (
	"log"
	"runtime"
	"sync/atomic"

	"github.com/chewxy/math32"
	"golang.org/x/sync/errgroup"
)

// progressInterval is how many processed points separate two progress
// log lines when Params.Verbose is set.
const progressInterval = 10000

// Params holds the tunables of the feature extraction driver.
type Params struct {
	// KMin is the minimum neighbor count required to compute features.
	// Points with fewer listed neighbors get an all-zero feature row.
	KMin int

	// KStep is the sampling stride of the neighborhood-size search.
	// Values below 1 disable the search; each point is then evaluated
	// once over its full neighborhood.
	KStep int

	// KMinSearch is the smallest neighborhood size the search starts
	// from. Ignored when the search is disabled.
	KMinSearch int

	// Verbose enables coarse progress logging roughly every 10,000
	// points. Under parallel execution the count is approximate and
	// the format is not a stable contract.
	Verbose bool

	// Workers bounds the number of concurrent workers. Zero or
	// negative means one worker per available CPU.
	Workers int
}

// DefaultParams returns the production-default extraction parameters:
// features for every point with at least one neighbor, no
// neighborhood-size search.
func DefaultParams() Params {
	return Params{
		KMin:       1,
		KStep:      0,
		KMinSearch: 10,
	}
}

// ComputeFeatures derives the per-point feature rows for every point
// described by nn and returns them as a freshly allocated buffer of
// FeatureCount floats per point, row-major in Feat* order.
//
// coords is the flat xyz buffer (3 floats per point). Inputs are read
// only and never retained. See ComputeFeaturesInto for the input
// contract.
func ComputeFeatures(coords []float32, nn NeighborList, p Params) []float32 {
	out := make([]float32, FeatureCount*nn.PointCount())
	ComputeFeaturesInto(out, coords, nn, p)
	return out
}

// ComputeFeaturesInto is ComputeFeatures writing into a caller-owned
// buffer of length FeatureCount*nn.PointCount(). Every row is fully
// overwritten, including the all-zero rows of points with fewer than
// KMin neighbors.
//
// Points are processed independently and in parallel with static range
// partitioning; each point's output row is the only slice a worker
// writes, so calls are deterministic for a given input regardless of
// worker count (bar the interleaving of progress logs).
//
// The hot path performs no bounds validation: offsets monotonicity,
// index ranges and buffer lengths are the caller's contract (run
// NeighborList.Validate once at the boundary if in doubt). Malformed
// inputs panic or corrupt output; well-formed but degenerate
// neighborhoods (collinear, duplicated, sparse points) always produce
// finite feature values.
func ComputeFeaturesInto(dst []float32, coords []float32, nn NeighborList, p Params) {
	n := nn.PointCount()
	if n == 0 {
		return
	}

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	// Shared advisory progress counter. Workers race to the log
	// boundary; an off-by-a-few progress line is acceptable.
	var processed atomic.Int64

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				computePoint(dst, coords, nn, i, p)
				if p.Verbose {
					if done := processed.Add(1); done%progressInterval == 0 {
						log.Printf("[Geom] %d%% done", done*100/int64(n))
					}
				}
			}
			return nil
		})
	}
	// Workers are pure computation and never return an error.
	_ = g.Wait()

	if p.Verbose {
		log.Printf("[Geom] %d points done", n)
	}
}

// computePoint fills point i's feature row.
func computePoint(dst []float32, coords []float32, nn NeighborList, i int, p Params) {
	row := dst[i*FeatureCount : (i+1)*FeatureCount]

	kNN := nn.Count(i)
	if kNN <= 0 || kNN < p.KMin {
		// Insufficient support for a reliable local estimate.
		for j := range row {
			row[j] = 0
		}
		return
	}

	pca := selectNeighborhood(coords, nn, i, kNN, p)
	deriveFeatures(row, pca)
}

// deriveFeatures maps one PCA result to the 11 feature values.
//
// The square roots turn eigenvalues (variances, homogeneous to m²)
// back into lengths. The 1e-3 / 1e-6 / 1e-9 terms stabilise the
// divisions and roots when the trailing eigenvalues vanish, i.e. when
// the neighborhood is 1D or 2D.
func deriveFeatures(row []float32, pca PCAResult) {
	s0 := math32.Sqrt(pca.Values[0])
	s1 := math32.Sqrt(pca.Values[1])
	s2 := math32.Sqrt(pca.Values[2])

	row[FeatLinearity] = (s0 - s1) / (s0 + 1e-3)
	row[FeatPlanarity] = (s1 - s2) / (s0 + 1e-3)
	row[FeatScattering] = s2 / (s0 + 1e-3)
	row[FeatVerticality] = verticality(pca)
	row[FeatNormalX] = pca.Vectors[2][0]
	row[FeatNormalY] = pca.Vectors[2][1]
	row[FeatNormalZ] = pca.Vectors[2][2]
	row[FeatLength] = s0
	row[FeatSurface] = math32.Sqrt(s0*s1 + 1e-6)
	row[FeatVolume] = math32.Cbrt(s0*s1*s2 + 1e-9)
	row[FeatCurvature] = s2 / (s0 + s1 + s2 + 1e-3)
}

// verticality measures how aligned the local shape is with the Z axis,
// in [0, 1]. The eigenvalue-weighted sum of the eigenvectors' absolute
// components favours the dominant-variance directions; its normalised
// Z component is the score. A degenerate neighborhood (zero leading
// eigenvalue) scores 0.
func verticality(pca PCAResult) float32 {
	if pca.Values[0] == 0 {
		return 0
	}
	var u [3]float32
	for c := 0; c < 3; c++ {
		u[c] = pca.Values[0]*math32.Abs(pca.Vectors[0][c]) +
			pca.Values[1]*math32.Abs(pca.Vectors[1][c]) +
			pca.Values[2]*math32.Abs(pca.Vectors[2][c])
	}
	norm := math32.Sqrt(u[0]*u[0] + u[1]*u[1] + u[2]*u[2])
	return u[2] / norm
}
