// Package route normalizes classifier routing labels into canonical
// categories and extracts them from heterogeneous response shapes.
//
// Classifier outputs arrive through multiple transport shapes (structured
// metadata vs. free-text fallback); this package isolates that variability
// so the rest of the system only ever sees a canonical three-valued
// category: direct, simple, or complex.
package route
