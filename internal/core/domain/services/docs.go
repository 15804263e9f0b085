// Package services provides domain services for the cycle count engine that do
// not belong to a single aggregate.
//
// The package includes:
//   - EntryGenerators: a lookup table from count type to the function that
//     builds a plan's pending entries from an inventory snapshot
//   - EvaluateVariance: the tolerance decision between auto-adjusting a
//     discrepancy and deferring it to review, plus the alert priority
//
// Generators only read inventory through the InventorySnapshot interface and
// never mutate it.
package services
