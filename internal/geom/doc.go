// Package geom computes per-point local geometric descriptors for 3D
// point clouds.
//
// Responsibilities: neighborhood covariance PCA, eigenentropy-driven
// adaptive neighborhood-size selection, and parallel derivation of the
// 11-value feature vector (linearity, planarity, scattering,
// verticality, normal, length, surface, volume, curvature) consumed by
// segmentation and superpoint-graph construction stages.
// Key types: NeighborList, Params, PCAResult.
//
// The package does not build neighbor lists and does not persist
// anything: coordinates and a nearest-first CSR neighbor list arrive
// from the caller, and the only output is the caller's feature buffer.
package geom
