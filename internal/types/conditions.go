// internal/types/conditions.go
package types

/*
 * Domain types for configuration compilation.
 *
 * Provides Configuration, Condition, Value, and DateRange structures used by
 * internal/filter for compilation and internal/schema for validation. These
 * types are wire-format agnostic - JSON-to-types conversion (including node
 * classification and reference detection) happens once in internal/schema.
 *
 * Key types:
 *   - Configuration: complete compilation input (four optional stages)
 *   - Condition: one node of the condition tree, tagged with Kind
 *   - Value: literal-or-reference tagged value
 *   - DateRange: top-level date-range declaration with literal defaults
 *
 * Why an explicit Kind tag: the wire format distinguishes node variants
 * structurally (grouping operator vs from/to keys vs field+operator+value).
 * Re-sniffing that shape at every recursion step risks ambiguity, so
 * classification happens exactly once at parse time and the compiler
 * dispatches on Kind alone.
 */

// ConditionKind discriminates the three condition-node variants.
type ConditionKind int

const (
	KindField ConditionKind = iota
	KindLogical
	KindDateRange
)

// Value is either a literal or a reference into the data bag.
// References originate from string values carrying the "$" sentinel prefix;
// IsRef disambiguates an empty reference path from a literal.
//
// Known limitation carried over from the wire format: a literal string that
// happens to start with "$" is always read as a reference - the format has
// no escape mechanism.
type Value struct {
	Literal any    // literal value (valid when !IsRef)
	RefPath string // dotted path into the data bag (valid when IsRef)
	IsRef   bool
}

// Lit wraps a literal value.
func Lit(v any) Value { return Value{Literal: v} }

// Ref wraps a dotted data-bag path.
func Ref(path string) Value { return Value{RefPath: path, IsRef: true} }

// Condition is one node of the condition tree. Exactly one variant's fields
// are populated, selected by Kind:
//
//	KindField:     Field, Operator, Value
//	KindLogical:   Operator (one of $and/$or/$nor), Children (non-empty)
//	KindDateRange: Field, From, To (each optional; nil = absent)
type Condition struct {
	Kind     ConditionKind
	Field    string
	Operator string
	Value    Value
	From     *Value
	To       *Value
	Children []Condition
}

// DateRange is a top-level date-range declaration. From and To are literal
// defaults used when the data bag supplies neither; nil means no default.
type DateRange struct {
	Field string
	From  any
	To    any
}

// Configuration is the top-level compilation input. Every field is optional;
// absence skips that stage entirely.
type Configuration struct {
	StaticFilters map[string]any
	FieldMappings map[string]string
	DateRanges    []DateRange
	Conditions    []Condition
}
