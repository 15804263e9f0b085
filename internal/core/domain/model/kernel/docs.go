// Package kernel provides core domain primitives shared by the warehouse domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Location: A value object for a warehouse bin code such as "A-01-03", with zone extraction
//
// These primitives enforce their invariants at construction time and are immutable,
// so they can be passed between goroutines freely.
package kernel
