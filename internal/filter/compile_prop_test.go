// internal/filter/compile_prop_test.go
package filter

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/condense-db/condense/internal/types"
)

// Property-based test: a reference that resolves to nothing never leaves a
// trace in the output, for any operator.
func TestCompile_PropertyOmissionNotNullification(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("unresolved reference omits the field key", prop.ForAll(
		func(field string, op string, present bool) bool {
			cfg := &types.Configuration{Conditions: []types.Condition{
				{Kind: types.KindField, Field: field, Operator: op, Value: types.Ref("needle")},
			}}
			data := types.DataBag{}
			if present {
				data["needle"] = "value"
			}

			doc := Compile(cfg, data)
			if !present {
				_, exists := doc[field]
				return len(doc) == 0 && !exists
			}
			_, exists := doc[field]
			return exists
		},
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.OneConstOf(types.OpEq, types.OpNe, types.OpGt, types.OpIn, "$custom"),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// Property-based test: equality always collapses to a bare value.
func TestCompile_PropertyEqualityBareValue(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("equality emits {field: v}, never {field: {$eq: v}}", prop.ForAll(
		func(field string, value int) bool {
			cfg := &types.Configuration{Conditions: []types.Condition{
				{Kind: types.KindField, Field: field, Operator: types.OpEq, Value: types.Lit(value)},
			}}

			doc := Compile(cfg, types.DataBag{})
			got, ok := doc[field]
			if !ok {
				return false
			}
			if _, wrapped := got.(types.Document); wrapped {
				return false
			}
			return got == value
		},
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.Int(),
	))

	properties.TestingRun(t)
}

// Property-based test: single-survivor flattening for $and, wrapper
// retention for $or and $nor.
func TestCompile_PropertySingleSurvivorFlattening(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("$and with one survivor flattens; $or/$nor wrap", prop.ForAll(
		func(opIdx int, value int) bool {
			ops := []string{types.OpAnd, types.OpOr, types.OpNor}
			op := ops[opIdx%len(ops)]

			cfg := &types.Configuration{Conditions: []types.Condition{
				{Kind: types.KindLogical, Operator: op, Children: []types.Condition{
					{Kind: types.KindField, Field: "n", Operator: types.OpEq, Value: types.Lit(value)},
					{Kind: types.KindField, Field: "gone", Operator: types.OpEq, Value: types.Ref("absent")},
				}},
			}}

			doc := Compile(cfg, types.DataBag{})
			child := types.Document{"n": value}

			if op == types.OpAnd {
				return reflect.DeepEqual(doc, child)
			}
			wrapped, ok := doc[op].([]any)
			return ok && len(wrapped) == 1 && reflect.DeepEqual(wrapped[0], child)
		},
		gen.IntRange(0, 2),
		gen.Int(),
	))

	properties.TestingRun(t)
}

// Property-based test: a branch whose children all vanish contributes
// nothing, at any nesting depth.
func TestCompile_PropertyEmptyBranchVanishes(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("fully-omitted branches leave no key", prop.ForAll(
		func(depth int, opIdx int) bool {
			ops := []string{types.OpAnd, types.OpOr, types.OpNor}
			op := ops[opIdx%len(ops)]

			node := types.Condition{
				Kind: types.KindField, Field: "x", Operator: types.OpEq, Value: types.Ref("absent"),
			}
			for i := 0; i < depth; i++ {
				node = types.Condition{
					Kind: types.KindLogical, Operator: op,
					Children: []types.Condition{node},
				}
			}

			cfg := &types.Configuration{Conditions: []types.Condition{node}}
			doc := Compile(cfg, types.DataBag{})
			return len(doc) == 0
		},
		gen.IntRange(0, 8),
		gen.IntRange(0, 2),
	))

	properties.TestingRun(t)
}

// Property-based test: a partial date range never emits the missing side.
func TestCompile_PropertyDateRangePartiality(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("only the supplied bound appears", prop.ForAll(
		func(hasFrom, hasTo bool) bool {
			bounds := map[string]any{}
			if hasFrom {
				bounds["from"] = "2026-01-01T00:00:00Z"
			}
			if hasTo {
				bounds["to"] = "2026-06-01T00:00:00Z"
			}

			cfg := &types.Configuration{DateRanges: []types.DateRange{{Field: "ts"}}}
			doc := Compile(cfg, types.DataBag{"ts": bounds})

			if !hasFrom && !hasTo {
				return len(doc) == 0
			}
			rng, ok := doc["ts"].(types.Document)
			if !ok {
				return false
			}
			_, gteOK := rng[types.OpGte]
			_, lteOK := rng[types.OpLte]
			return gteOK == hasFrom && lteOK == hasTo
		},
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// Property-based test: compilation is deterministic and stateless; two runs
// over the same inputs are deep-equal.
func TestCompile_PropertyIdempotence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("compiling twice yields deep-equal output", prop.ForAll(
		func(static string, value int, present bool) bool {
			cfg := &types.Configuration{
				StaticFilters: map[string]any{"kind": static},
				Conditions: []types.Condition{
					{Kind: types.KindField, Field: "n", Operator: types.OpGte, Value: types.Lit(value)},
					{Kind: types.KindField, Field: "ref", Operator: types.OpEq, Value: types.Ref("bag.key")},
				},
			}
			data := types.DataBag{}
			if present {
				data["bag"] = map[string]any{"key": "v"}
			}

			first := Compile(cfg, data)
			second := Compile(cfg, data)
			return reflect.DeepEqual(first, second)
		},
		gen.AlphaString(),
		gen.Int(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
