// Package types provides domain models shared across condense components.
//
// Zero-dependency design: types.go, conditions.go, operators.go, and
// errors.go use only the standard library so the compiler core stays
// dependency-free. ID utilities in ids.go import uuid but are isolated for
// selective inclusion.
package types

// Document is a compiled filter document: a nested mapping whose keys are
// field names or reserved operator keys ($and, $or, $nor, ...) and whose
// values are literals, operator objects, or sequences of nested documents.
// Consumers must compare documents by content, never by key order.
type Document map[string]any

// DataBag is the runtime key-value input supplied alongside a configuration.
// Arbitrarily nested (values may themselves be map[string]any); read-only
// from the compiler's perspective.
type DataBag map[string]any

// ConfigID represents a UUIDv7 configuration identifier.
// String alias enables type safety while maintaining JSON string serialization.
type ConfigID string

// Resource limits enforced by the schema validator to keep compilation
// bounded. The compiler itself trusts already-validated input and enforces
// nothing at compile time.
const (
	// MaxNestingDepth bounds logical-condition nesting. Compiler recursion
	// is bounded by configuration shape only, so the limit is enforced once
	// at validation time.
	MaxNestingDepth = 32

	// MaxPathDepth bounds dotted-path segments in references and field
	// mappings. 16 levels handles deeply nested data bags without
	// pathological traversal.
	MaxPathDepth = 16
)
