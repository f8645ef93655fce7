// Package schema declares the attribute schema shared by validation and
// rendering. A Schema is an ordered list of field descriptors; each descriptor
// is either Enumerated (a fixed, ordered set of string literals) or Numeric
// (a number with optional bounds, step, default, and discrete choices).
//
// Enumerated membership is an exact string match. Numeric bounds are optional
// per field: an unbounded numeric field only has to be a number.
package schema
