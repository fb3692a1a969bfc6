package types

import "errors"

// Sentinel errors for condense operations. The compiler itself never returns
// errors; these surface from the schema validator and the configuration store.
var (
	// ErrEmptyGroup indicates a logical condition with no child conditions.
	ErrEmptyGroup = errors.New("logical condition has no child conditions")

	// ErrMissingField indicates a condition without its required field name.
	ErrMissingField = errors.New("condition is missing its field name")

	// ErrMissingOperator indicates a field condition without an operator.
	ErrMissingOperator = errors.New("field condition is missing its operator")

	// ErrMissingValue indicates a field condition without a value key.
	ErrMissingValue = errors.New("field condition is missing its value")

	// ErrUnclassifiable indicates a node that is neither field, logical,
	// nor date-range shaped.
	ErrUnclassifiable = errors.New("condition node has no recognizable shape")

	// ErrNestingTooDeep indicates logical nesting beyond MaxNestingDepth.
	ErrNestingTooDeep = errors.New("condition nesting exceeds maximum depth")

	// ErrPathTooDeep indicates a dotted path beyond MaxPathDepth segments.
	ErrPathTooDeep = errors.New("dotted path exceeds maximum depth")

	// ErrEmptyPath indicates an empty dotted path in a reference or mapping.
	ErrEmptyPath = errors.New("dotted path is empty")

	// ErrConfigNotFound indicates a named configuration absent from the store.
	ErrConfigNotFound = errors.New("configuration not found")
)
