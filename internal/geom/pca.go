package geom

import (
	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/mat"
)

// entropyEpsilon stabilises the eigenentropy against zero-division and
// log(0) on degenerate neighborhoods.
const entropyEpsilon = 0.001

// NeighborhoodPCA eigendecomposes the covariance of point's k nearest
// neighbors. coords is the flat xyz buffer (3 floats per point) and nn
// the CSR neighbor list; the first k entries of the point's neighbor
// slice are used, so k must not exceed nn.Count(point).
//
// Preconditions (caller's responsibility, unchecked): k >= 1 and all
// referenced indices in range.
func NeighborhoodPCA(coords []float32, nn NeighborList, point, k int) PCAResult {
	neighbors := nn.Neighbors(point)[:k]

	// Centroid of the neighborhood. Accumulation runs in float64: the
	// covariance of millions of float32 coordinates loses digits fast,
	// and the eigensolver wants float64 anyway.
	var cx, cy, cz float64
	for _, id := range neighbors {
		j := int(id) * 3
		cx += float64(coords[j])
		cy += float64(coords[j+1])
		cz += float64(coords[j+2])
	}
	kf := float64(k)
	cx /= kf
	cy /= kf
	cz /= kf

	// Centered covariance, divided by k. Only the upper triangle is
	// accumulated; the matrix is symmetric.
	var xx, xy, xz, yy, yz, zz float64
	for _, id := range neighbors {
		j := int(id) * 3
		dx := float64(coords[j]) - cx
		dy := float64(coords[j+1]) - cy
		dz := float64(coords[j+2]) - cz
		xx += dx * dx
		xy += dx * dy
		xz += dx * dz
		yy += dy * dy
		yz += dy * dz
		zz += dz * dz
	}
	cov := mat.NewSymDense(3, []float64{
		xx / kf, xy / kf, xz / kf,
		xy / kf, yy / kf, yz / kf,
		xz / kf, yz / kf, zz / kf,
	})

	var eigen mat.EigenSym
	if ok := eigen.Factorize(cov, true); !ok {
		// Factorization of a finite symmetric 3x3 does not fail in
		// practice; treat it like a fully degenerate neighborhood.
		return degeneratePCAResult()
	}

	vals := eigen.Values(nil)
	var vecs mat.Dense
	eigen.VectorsTo(&vecs)

	// gonum returns eigenvalues in ascending order; the contract here
	// is descending, with negative numerical noise floored at 0.
	var out PCAResult
	for i := 0; i < 3; i++ {
		col := 2 - i
		v := vals[col]
		if v < 0 {
			v = 0
		}
		out.Values[i] = float32(v)
		out.Vectors[i] = [3]float32{
			float32(vecs.At(0, col)),
			float32(vecs.At(1, col)),
			float32(vecs.At(2, col)),
		}
	}

	// Eigenvector signs are arbitrary; pin every vector to the Z+
	// half-space so normal estimates are stable across calls.
	for i := range out.Vectors {
		if out.Vectors[i][2] < 0 {
			out.Vectors[i][0] = -out.Vectors[i][0]
			out.Vectors[i][1] = -out.Vectors[i][1]
			out.Vectors[i][2] = -out.Vectors[i][2]
		}
	}

	out.Eigenentropy = eigenentropy(out.Values)
	return out
}

// eigenentropy is the Shannon-style entropy of the normalised
// eigenvalue distribution. Low entropy means a well-defined
// (anisotropic) local shape; high entropy means an isotropic or noisy
// neighborhood.
func eigenentropy(vals [3]float32) float32 {
	sum := vals[0] + vals[1] + vals[2] + entropyEpsilon
	var h float32
	for _, v := range vals {
		e := v / sum
		h -= e * math32.Log(e+entropyEpsilon)
	}
	return h
}

// degeneratePCAResult is the all-zero-variance result: eigenvalues 0,
// axis-aligned eigenvectors, and the entropy of the zero distribution.
func degeneratePCAResult() PCAResult {
	out := PCAResult{
		Vectors: [3][3]float32{
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		},
	}
	out.Eigenentropy = eigenentropy(out.Values)
	return out
}
