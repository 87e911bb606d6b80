package geom

// Aliases exposing unexported functions to the external geom_test
// package (which lives outside package geom to avoid an import cycle
// with internal/testutil).
var (
	CandidateSizes     = candidateSizes
	SelectNeighborhood = selectNeighborhood
)
