// Package model defines the typed form model consumed by renderers. Builders
// reside in internal/model but return the types defined here. Numeric bounds
// are exposed as validation rules (min, max, step) with string parameters so
// renderers can map them onto control attributes without sacrificing
// deterministic JSON snapshots. Select controls carry derived options whose
// Value is the raw schema value and whose Label is display text only.
package model
