// internal/filter/compile.go
package filter

import (
	"github.com/condense-db/condense/internal/types"
)

/*
 * Condition-tree compilation.
 *
 * Compiles a validated types.Configuration plus a data bag into a filter
 * document ready for a document store's query layer. Four stages in order:
 *
 *   1. Static filters: unconditional literal merge, no resolution
 *   2. Field mappings: dotted-path resolution, absent values omitted
 *   3. Date ranges: data-supplied from/to win over configured defaults
 *   4. Conditions: recursive reduction with flattening
 *
 * Omission semantics: a reference resolving to a missing or null value drops
 * the owning condition - and only that condition - from the output. Never an
 * error, never a null in the output. Compile is total over validated input.
 *
 * Flattening: an implicit or explicit AND with exactly one surviving child
 * emits that child's document directly. OR and NOR always wrap, even with a
 * single survivor. A group whose every child is omitted vanishes entirely.
 *
 * Purity: no I/O, no mutation of inputs, no shared state. Safe to call
 * concurrently; every invocation allocates only its own output.
 */

// Compile produces a filter document from a configuration and a data bag.
// The configuration must already have passed schema validation
// (internal/schema); Compile performs no validation of its own and has no
// error conditions over conformant input. A nil data bag behaves as empty.
func Compile(cfg *types.Configuration, data types.DataBag) types.Document {
	out := types.Document{}
	if cfg == nil {
		return out
	}

	for field, value := range cfg.StaticFilters {
		out[field] = value
	}

	for field, path := range cfg.FieldMappings {
		if v, ok := Resolve(data, path); ok {
			out[field] = v
		}
	}

	for _, dr := range cfg.DateRanges {
		from, to := dataRangeBounds(data, dr.Field)
		if from == nil {
			from = dr.From
		}
		if to == nil {
			to = dr.To
		}
		if doc := rangeDoc(from, to); doc != nil {
			out[dr.Field] = doc
		}
	}

	if reduced := reduce(cfg.Conditions, data); reduced != nil {
		for k, v := range reduced {
			out[k] = v
		}
	}

	return out
}

// reduce compiles a sequence of condition nodes under an implicit AND.
// Nodes whose builder yields no document are dropped. Zero survivors
// reduce to nil (the branch vanishes), one survivor reduces to itself
// (implicit AND of one thing is just that thing), two or more wrap
// under $and.
func reduce(nodes []types.Condition, data types.DataBag) types.Document {
	var survivors []any
	for _, node := range nodes {
		if doc := buildNode(node, data); doc != nil {
			survivors = append(survivors, doc)
		}
	}
	switch len(survivors) {
	case 0:
		return nil
	case 1:
		return survivors[0].(types.Document)
	default:
		return types.Document{types.OpAnd: survivors}
	}
}

// buildNode dispatches on the node's parse-time classification.
func buildNode(node types.Condition, data types.DataBag) types.Document {
	switch node.Kind {
	case types.KindLogical:
		return buildLogical(node, data)
	case types.KindDateRange:
		return buildDateRange(node, data)
	default:
		return buildField(node, data)
	}
}

// buildField compiles a single field condition. A reference value that
// resolves to missing or null omits the condition. Literal values pass
// through unchecked: an explicit literal null is intentional. Equality
// collapses to a bare value; every other operator wraps verbatim.
func buildField(node types.Condition, data types.DataBag) types.Document {
	value, ok := resolveValue(node.Value, data)
	if !ok {
		return nil
	}
	if node.Operator == types.OpEq {
		return types.Document{node.Field: value}
	}
	return types.Document{node.Field: types.Document{node.Operator: value}}
}

// buildLogical compiles a grouping node by reducing its children. An empty
// survivor set drops the whole branch. A lone survivor under $and is
// emitted directly; $or and $nor keep their wrapper regardless.
func buildLogical(node types.Condition, data types.DataBag) types.Document {
	var survivors []any
	for _, child := range node.Children {
		if doc := buildNode(child, data); doc != nil {
			survivors = append(survivors, doc)
		}
	}
	if len(survivors) == 0 {
		return nil
	}
	if node.Operator == types.OpAnd && len(survivors) == 1 {
		return survivors[0].(types.Document)
	}
	return types.Document{node.Operator: survivors}
}

// buildDateRange compiles an in-tree date-range node with the same
// semantics as the top-level dateRanges stage: bounds supplied by the data
// bag under the node's field win; the node's own from/to (literal or
// reference) fill the gaps; neither available skips the field.
func buildDateRange(node types.Condition, data types.DataBag) types.Document {
	from, to := dataRangeBounds(data, node.Field)
	if from == nil {
		from = optionalValue(node.From, data)
	}
	if to == nil {
		to = optionalValue(node.To, data)
	}
	doc := rangeDoc(from, to)
	if doc == nil {
		return nil
	}
	return types.Document{node.Field: doc}
}

// dataRangeBounds looks up the data bag entry for a date-range field and
// extracts its from/to sub-fields when the entry is an object.
func dataRangeBounds(data types.DataBag, field string) (from, to any) {
	v, ok := Resolve(data, field)
	if !ok {
		return nil, nil
	}
	obj, ok := asObject(v)
	if !ok {
		return nil, nil
	}
	return obj["from"], obj["to"]
}

// rangeDoc builds the operator object for a pair of bounds. Partial ranges
// emit only the side that is present; a fully absent pair yields nil.
func rangeDoc(from, to any) types.Document {
	if from == nil && to == nil {
		return nil
	}
	doc := types.Document{}
	if from != nil {
		doc[types.OpGte] = from
	}
	if to != nil {
		doc[types.OpLte] = to
	}
	return doc
}

// resolveValue evaluates a literal-or-reference value against the data bag.
// References report false on missing or null resolution. Literals always
// report true - literal null is never filtered.
func resolveValue(v types.Value, data types.DataBag) (any, bool) {
	if v.IsRef {
		return Resolve(data, v.RefPath)
	}
	return v.Literal, true
}

// optionalValue evaluates an optional date-range bound. Nil pointer means
// the bound is absent; a reference that fails to resolve is treated the
// same way.
func optionalValue(v *types.Value, data types.DataBag) any {
	if v == nil {
		return nil
	}
	resolved, ok := resolveValue(*v, data)
	if !ok {
		return nil
	}
	return resolved
}
