// Package peel computes binary morphological erosion and dilation of an
// N-dimensional binary image under a family of structuring elements.
//
// The algorithms proceed by iteratively peeling (erosion) or accreting
// (dilation) the image boundary, one structuring element at a time, until
// every structuring element in the family has been applied and no further
// pixels change. The output is a grayscale image in which each pixel's
// value records the iteration at which that pixel changed phase: a
// residues image, useful for granulometry-style analyses.
//
// Three variants of the engine are provided, selectable with [Variant]:
// Naive (scans the whole candidate queue each pass), Border (adds a
// position-to-candidate lookup grid), and Matrix (adds structuring-
// element-indexed link lists so border detection runs in output-
// proportional time). All three produce pixel-identical [Result.Residues]
// for the same inputs; see [Run].
package peel
