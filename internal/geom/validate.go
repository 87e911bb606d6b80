package geom

import "fmt"

// Validate performs the structural checks the hot path skips: offsets
// length and monotonicity, terminal offset, and neighbor index range.
// nPoints is the caller's point count and coordLen the length of the
// flat coordinate buffer (3 floats per point).
//
// It runs in O(points + neighbors) and is meant to be called once at
// the API boundary, not per extraction. A nil error means the layout
// is safe to hand to ComputeFeatures; it does not check the
// nearest-first ordering invariant (unverifiable without distances)
// nor whether points list themselves as neighbors.
func (nn NeighborList) Validate(nPoints, coordLen int) error {
	if coordLen%3 != 0 {
		return fmt.Errorf("coordinate buffer length %d is not a multiple of 3", coordLen)
	}
	if coordLen/3 < nPoints {
		return fmt.Errorf("coordinate buffer holds %d points, need %d", coordLen/3, nPoints)
	}
	if len(nn.Offsets) != nPoints+1 {
		return fmt.Errorf("offsets length %d, want n_points+1 = %d", len(nn.Offsets), nPoints+1)
	}
	for i := 0; i < nPoints; i++ {
		if nn.Offsets[i+1] < nn.Offsets[i] {
			return fmt.Errorf("offsets decrease at point %d: %d -> %d", i, nn.Offsets[i], nn.Offsets[i+1])
		}
	}
	if last := nn.Offsets[nPoints]; int(last) != len(nn.Indices) {
		return fmt.Errorf("terminal offset %d, want neighbor count %d", last, len(nn.Indices))
	}
	maxID := uint32(coordLen / 3)
	for pos, id := range nn.Indices {
		if id >= maxID {
			return fmt.Errorf("neighbor index %d at position %d out of range (have %d points)", id, pos, maxID)
		}
	}
	return nil
}
