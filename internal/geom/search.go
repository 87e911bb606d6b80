package geom

// candidateSizes enumerates the neighborhood sizes evaluated by the
// adaptive search: the lower boundary k0, every multiple of kStep in
// (k0, kNN), and the upper boundary kNN itself. The boundaries are
// always included so the smallest admissible and the full neighborhood
// are both considered, even when unaligned to the stride.
func candidateSizes(k0, kNN, kStep int) []int {
	sizes := make([]int, 0, (kNN-k0)/kStep+2)
	sizes = append(sizes, k0)
	for k := k0 + 1; k <= kNN; k++ {
		if k%kStep == 0 || k == kNN {
			sizes = append(sizes, k)
		}
	}
	return sizes
}

// selectNeighborhood picks the neighborhood size for one point.
//
// With the search disabled (kStep < 1) the full neighborhood kNN is
// evaluated once and returned. Otherwise the search starts at
// k0 = min(max(kMin, kMinSearch), kNN): very small neighborhoods tend
// to score a low eigenentropy despite carrying unreliable geometry, so
// the search never starts below kMinSearch. It then folds over the
// candidate sizes keeping the lowest-eigenentropy result. Replacement
// happens on strict improvement only, so on an exact tie the smaller,
// earlier-evaluated k wins.
func selectNeighborhood(coords []float32, nn NeighborList, point, kNN int, p Params) PCAResult {
	if p.KStep < 1 {
		return NeighborhoodPCA(coords, nn, point, kNN)
	}

	k0 := p.KMin
	if p.KMinSearch > k0 {
		k0 = p.KMinSearch
	}
	if k0 > kNN {
		k0 = kNN
	}

	var best PCAResult
	for i, k := range candidateSizes(k0, kNN, p.KStep) {
		cand := NeighborhoodPCA(coords, nn, point, k)
		if i == 0 || cand.Eigenentropy < best.Eigenentropy {
			best = cand
		}
	}
	return best
}
