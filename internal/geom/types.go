package geom

// FeatureCount is the number of scalar features emitted per point.
const FeatureCount = 11

// Feature indices within a point's feature row. The order is a
// compatibility contract with downstream consumers and must not change.
const (
	FeatLinearity = iota
	FeatPlanarity
	FeatScattering
	FeatVerticality
	FeatNormalX
	FeatNormalY
	FeatNormalZ
	FeatLength
	FeatSurface
	FeatVolume
	FeatCurvature
)

// FeatureNames gives stable column names for export headers and
// debugging, indexed by the Feat* constants.
var FeatureNames = [FeatureCount]string{
	"linearity",
	"planarity",
	"scattering",
	"verticality",
	"normal_x",
	"normal_y",
	"normal_z",
	"length",
	"surface",
	"volume",
	"curvature",
}

// NeighborList is a CSR-style neighbor layout: Indices concatenates
// every point's neighbor ids, and Offsets delimits point i's slice as
// the half-open range [Offsets[i], Offsets[i+1]). Within a point's
// slice, neighbors must be ordered nearest-first; the adaptive
// neighborhood-size search relies on growing k adding farther points.
//
// By convention the list holds true neighbors only (not the point
// itself). The package does not enforce this: including the query
// point merely biases the covariance toward it.
//
// The hot path performs no bounds validation; the caller guarantees
// the layout (see Validate for an opt-in structural check).
type NeighborList struct {
	Indices []uint32
	Offsets []uint32 // len = PointCount()+1, non-decreasing
}

// PointCount returns the number of points described by the offsets.
func (nn NeighborList) PointCount() int {
	if len(nn.Offsets) == 0 {
		return 0
	}
	return len(nn.Offsets) - 1
}

// Count returns the number of neighbors listed for point i.
func (nn NeighborList) Count(i int) int {
	return int(nn.Offsets[i+1] - nn.Offsets[i])
}

// Neighbors returns point i's neighbor ids, nearest first.
func (nn NeighborList) Neighbors(i int) []uint32 {
	return nn.Indices[nn.Offsets[i]:nn.Offsets[i+1]]
}

// PCAResult holds the eigendecomposition of one neighborhood's 3x3
// covariance matrix.
//
// Values are sorted in decreasing order and floored at 0 (approximate
// eigensolvers can return slightly negative values on near-singular
// covariances). Vectors[i] is the unit eigenvector paired with
// Values[i], oriented so its Z component is non-negative; Vectors[2]
// is the least-variance direction, i.e. the local surface normal.
type PCAResult struct {
	Values       [3]float32
	Vectors      [3][3]float32
	Eigenentropy float32
}
