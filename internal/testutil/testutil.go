// Package testutil provides shared test fixtures: deterministic
// synthetic point clouds and an exact brute-force k-NN builder.
//
// This package centralises cloud generation so kernel, driver and
// benchmark code exercise identical geometry. The k-NN builder stands
// in for the external producer of neighbor lists; it is exhaustive
// (O(n²)) on purpose, since tests need exact, deterministically
// ordered neighbor lists rather than an approximate index.
package testutil

import (
	"math/rand"
	"sort"

	"github.com/banshee-data/pointgeom/internal/geom"
)

// PlaneCloud generates n points on the Z=z plane inside [0,extent)²,
// with optional uniform Z jitter. Deterministic for a given rng.
func PlaneCloud(n int, extent, z, jitter float64, rng *rand.Rand) []float32 {
	coords := make([]float32, 0, 3*n)
	for i := 0; i < n; i++ {
		coords = append(coords,
			float32(rng.Float64()*extent),
			float32(rng.Float64()*extent),
			float32(z+(rng.Float64()*2-1)*jitter),
		)
	}
	return coords
}

// LineCloud generates n points along the X axis at unit-ish spacing
// with optional YZ jitter.
func LineCloud(n int, jitter float64, rng *rand.Rand) []float32 {
	coords := make([]float32, 0, 3*n)
	for i := 0; i < n; i++ {
		coords = append(coords,
			float32(i),
			float32((rng.Float64()*2-1)*jitter),
			float32((rng.Float64()*2-1)*jitter),
		)
	}
	return coords
}

// PoleCloud generates n points along the vertical Z axis with optional
// XY jitter. Useful for verticality assertions.
func PoleCloud(n int, jitter float64, rng *rand.Rand) []float32 {
	coords := make([]float32, 0, 3*n)
	for i := 0; i < n; i++ {
		coords = append(coords,
			float32((rng.Float64()*2-1)*jitter),
			float32((rng.Float64()*2-1)*jitter),
			float32(i)*0.1,
		)
	}
	return coords
}

// BallCloud generates n points uniformly inside an axis-aligned cube
// of the given half-extent centred at the origin. Isotropic
// neighborhoods, high eigenentropy.
func BallCloud(n int, halfExtent float64, rng *rand.Rand) []float32 {
	coords := make([]float32, 0, 3*n)
	for i := 0; i < n; i++ {
		coords = append(coords,
			float32((rng.Float64()*2-1)*halfExtent),
			float32((rng.Float64()*2-1)*halfExtent),
			float32((rng.Float64()*2-1)*halfExtent),
		)
	}
	return coords
}

// BruteForceKNN builds an exact nearest-first neighbor list with up to
// k neighbors per point (fewer when the cloud is smaller than k+1).
// The point itself is excluded. Ties on distance break by point id so
// the output is deterministic.
func BruteForceKNN(coords []float32, k int) geom.NeighborList {
	n := len(coords) / 3
	type cand struct {
		id   uint32
		dist float64
	}

	nn := geom.NeighborList{
		Indices: make([]uint32, 0, n*k),
		Offsets: make([]uint32, 1, n+1),
	}
	cands := make([]cand, 0, n)
	for i := 0; i < n; i++ {
		cands = cands[:0]
		xi := float64(coords[3*i])
		yi := float64(coords[3*i+1])
		zi := float64(coords[3*i+2])
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			dx := float64(coords[3*j]) - xi
			dy := float64(coords[3*j+1]) - yi
			dz := float64(coords[3*j+2]) - zi
			cands = append(cands, cand{id: uint32(j), dist: dx*dx + dy*dy + dz*dz})
		}
		sort.Slice(cands, func(a, b int) bool {
			if cands[a].dist != cands[b].dist {
				return cands[a].dist < cands[b].dist
			}
			return cands[a].id < cands[b].id
		})
		kept := k
		if kept > len(cands) {
			kept = len(cands)
		}
		for _, c := range cands[:kept] {
			nn.Indices = append(nn.Indices, c.id)
		}
		nn.Offsets = append(nn.Offsets, uint32(len(nn.Indices)))
	}
	return nn
}

// SingleNeighborhood builds a one-point neighbor list: point 0 of
// coords with the given neighbor ids, in the given order. Handy for
// hand-constructed kernel scenarios.
func SingleNeighborhood(neighbors ...uint32) geom.NeighborList {
	return geom.NeighborList{
		Indices: neighbors,
		Offsets: []uint32{0, uint32(len(neighbors))},
	}
}
