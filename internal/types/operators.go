// internal/types/operators.go
package types

/*
 * Filter-language operator vocabulary.
 *
 * String constants for the reserved keys the compiler emits and the schema
 * validator recognizes. The compiler treats exactly two groups specially:
 *
 *   - Grouping operators ($and/$or/$nor): classify a node as logical and
 *     become logical keys in the output.
 *   - OpEq: collapses to a bare value ({field: v}, never {field: {$eq: v}}).
 *
 * Every other operator string passes through verbatim with zero validation.
 * Unknown operators are accepted by design - new filter-language operators
 * work without code changes here.
 */

// Grouping operators. These classify a condition node as logical.
const (
	OpAnd = "$and"
	OpOr  = "$or"
	OpNor = "$nor"
)

// Comparison operators the output vocabulary names. The compiler never
// interprets these beyond the OpEq bare-value collapse; they are listed for
// consumers and tests, not enforced.
const (
	OpEq        = "$eq"
	OpNe        = "$ne"
	OpGt        = "$gt"
	OpGte       = "$gte"
	OpLt        = "$lt"
	OpLte       = "$lte"
	OpIn        = "$in"
	OpNin       = "$nin"
	OpExists    = "$exists"
	OpType      = "$type"
	OpRegex     = "$regex"
	OpAll       = "$all"
	OpElemMatch = "$elemMatch"
	OpSize      = "$size"
)

// RefPrefix marks a string value as a data-bag reference ("$path.to.value").
const RefPrefix = "$"

// IsGroupingOperator reports whether op classifies a node as logical.
// Classification checks this before the from/to shape, and that order is
// load-bearing: a loosely-shaped field condition could otherwise overlap.
func IsGroupingOperator(op string) bool {
	switch op {
	case OpAnd, OpOr, OpNor:
		return true
	default:
		return false
	}
}
