package geom_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/banshee-data/pointgeom/internal/testutil"

	. "github.com/banshee-data/pointgeom/internal/geom"
)

func floatEquals(got, want, tolerance float32) bool {
	return math.Abs(float64(got-want)) <= float64(tolerance)
}

// TestNeighborhoodPCA_PlanarSquare checks the kernel on four neighbors
// forming a flat unit square in the XY plane around the query point.
func TestNeighborhoodPCA_PlanarSquare(t *testing.T) {
	// Point 0 is the query; points 1-4 are the square corners.
	coords := []float32{
		0, 0, 0,
		1, 0, 0,
		-1, 0, 0,
		0, 1, 0,
		0, -1, 0,
	}
	nn := testutil.SingleNeighborhood(1, 2, 3, 4)

	pca := NeighborhoodPCA(coords, nn, 0, 4)

	// Covariance is diag(0.5, 0.5, 0): two equal in-plane eigenvalues,
	// zero out-of-plane.
	if !floatEquals(pca.Values[0], 0.5, 1e-5) {
		t.Errorf("Values[0] = %f, want 0.5", pca.Values[0])
	}
	if !floatEquals(pca.Values[1], 0.5, 1e-5) {
		t.Errorf("Values[1] = %f, want 0.5", pca.Values[1])
	}
	if !floatEquals(pca.Values[2], 0, 1e-5) {
		t.Errorf("Values[2] = %f, want 0", pca.Values[2])
	}

	// The normal (least-variance direction) must be +Z after the
	// half-space orientation, never -Z.
	if !floatEquals(pca.Vectors[2][2], 1, 1e-5) {
		t.Errorf("normal = %v, want (0,0,1)", pca.Vectors[2])
	}
	if !floatEquals(pca.Vectors[2][0], 0, 1e-5) || !floatEquals(pca.Vectors[2][1], 0, 1e-5) {
		t.Errorf("normal = %v, want (0,0,1)", pca.Vectors[2])
	}
}

// TestNeighborhoodPCA_Collinear checks a degenerate 1D neighborhood:
// only the leading eigenvalue should survive. The trailing
// eigenvectors are underdetermined in the YZ plane, so only magnitudes
// are asserted.
func TestNeighborhoodPCA_Collinear(t *testing.T) {
	coords := []float32{
		0, 0, 0,
		1, 0, 0,
		2, 0, 0,
		3, 0, 0,
		4, 0, 0,
	}
	nn := testutil.SingleNeighborhood(1, 2, 3, 4)

	pca := NeighborhoodPCA(coords, nn, 0, 4)

	if pca.Values[0] <= 0 {
		t.Errorf("Values[0] = %f, want > 0", pca.Values[0])
	}
	if !floatEquals(pca.Values[1], 0, 1e-5) {
		t.Errorf("Values[1] = %f, want 0", pca.Values[1])
	}
	if !floatEquals(pca.Values[2], 0, 1e-5) {
		t.Errorf("Values[2] = %f, want 0", pca.Values[2])
	}
}

// TestNeighborhoodPCA_Invariants runs the kernel over random
// neighborhoods and checks the structural guarantees: eigenvalues
// non-negative and descending, eigenvectors unit-length with
// non-negative Z, eigenentropy non-negative.
func TestNeighborhoodPCA_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	coords := testutil.BallCloud(200, 5.0, rng)
	nn := testutil.BruteForceKNN(coords, 30)

	for point := 0; point < nn.PointCount(); point += 7 {
		for _, k := range []int{1, 2, 3, 10, 30} {
			if k > nn.Count(point) {
				continue
			}
			pca := NeighborhoodPCA(coords, nn, point, k)

			if pca.Values[0] < pca.Values[1] || pca.Values[1] < pca.Values[2] {
				t.Errorf("point %d k=%d: eigenvalues not descending: %v", point, k, pca.Values)
			}
			if pca.Values[2] < 0 {
				t.Errorf("point %d k=%d: negative eigenvalue: %v", point, k, pca.Values)
			}
			if pca.Eigenentropy < 0 {
				t.Errorf("point %d k=%d: negative eigenentropy %f", point, k, pca.Eigenentropy)
			}
			for i, v := range pca.Vectors {
				norm := math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2]))
				if math.Abs(norm-1) > 1e-5 {
					t.Errorf("point %d k=%d: eigenvector %d not unit length: %v (norm %f)", point, k, i, v, norm)
				}
				if v[2] < 0 {
					t.Errorf("point %d k=%d: eigenvector %d in Z- half-space: %v", point, k, i, v)
				}
			}
		}
	}
}

// TestNeighborhoodPCA_DuplicatePoints checks the fully degenerate
// case: all neighbors at the same location. Eigenvalues collapse to
// zero and the epsilon terms keep the entropy at exactly zero.
func TestNeighborhoodPCA_DuplicatePoints(t *testing.T) {
	coords := []float32{
		0, 0, 0,
		2, 2, 2,
		2, 2, 2,
		2, 2, 2,
	}
	nn := testutil.SingleNeighborhood(1, 2, 3)

	pca := NeighborhoodPCA(coords, nn, 0, 3)

	for i, v := range pca.Values {
		if !floatEquals(v, 0, 1e-6) {
			t.Errorf("Values[%d] = %f, want 0", i, v)
		}
	}
	if !floatEquals(pca.Eigenentropy, 0, 1e-6) {
		t.Errorf("Eigenentropy = %f, want 0", pca.Eigenentropy)
	}
}

// TestNeighborhoodPCA_TiltedPlane checks the half-space orientation on
// a plane whose natural normal points into Z-.
func TestNeighborhoodPCA_TiltedPlane(t *testing.T) {
	// Plane through the origin spanned by (1,0,1) and (0,1,0); its
	// normals are (1,0,-1) and (-1,0,1) up to scale. The kernel must
	// return the Z+ representative.
	coords := []float32{
		0, 0, 0,
		1, 0, 1,
		-1, 0, -1,
		0, 1, 0,
		0, -1, 0,
	}
	nn := testutil.SingleNeighborhood(1, 2, 3, 4)

	pca := NeighborhoodPCA(coords, nn, 0, 4)

	if pca.Vectors[2][2] < 0 {
		t.Errorf("normal %v not oriented into Z+", pca.Vectors[2])
	}
	want := float32(1 / math.Sqrt2)
	if !floatEquals(pca.Vectors[2][2], want, 1e-5) {
		t.Errorf("normal Z = %f, want %f", pca.Vectors[2][2], want)
	}
}

// TestNeighborhoodPCA_SubsetOfNeighbors checks that k below the listed
// neighbor count only uses the nearest k entries.
func TestNeighborhoodPCA_SubsetOfNeighbors(t *testing.T) {
	// Neighbors 1-2 are collinear with each other; neighbor 3 is far
	// off-axis. With k=2 the neighborhood is 1D.
	coords := []float32{
		0, 0, 0,
		1, 0, 0,
		2, 0, 0,
		0, 5, 0,
	}
	nn := testutil.SingleNeighborhood(1, 2, 3)

	pca := NeighborhoodPCA(coords, nn, 0, 2)

	if !floatEquals(pca.Values[1], 0, 1e-5) || !floatEquals(pca.Values[2], 0, 1e-5) {
		t.Errorf("k=2 eigenvalues = %v, want 1D spread", pca.Values)
	}

	full := NeighborhoodPCA(coords, nn, 0, 3)
	if floatEquals(full.Values[1], 0, 1e-5) {
		t.Errorf("k=3 eigenvalues = %v, want 2D spread", full.Values)
	}
}
