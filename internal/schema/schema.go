// internal/schema/schema.go

// Package schema validates raw configuration documents and converts them to
// typed form for compilation.
//
// Two-stage pipeline: Parse(raw) -> (*types.Configuration, error) feeds
// filter.Compile(cfg, data) -> types.Document. Parse does validation and
// node classification in one pass, so a Configuration that exists is by
// construction well-formed and the compiler stays total.
//
// Classification order is load-bearing and checked in exactly this order: a
// node carrying a grouping operator ($and/$or/$nor) is logical; otherwise a
// node carrying a from or to key is a date-range; otherwise it is a field
// condition. Unknown comparison operators are accepted by design: any
// non-empty operator string is valid, preserving forward compatibility with
// new filter-language operators.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/condense-db/condense/internal/types"
)

// ValidationError reports a structural defect in a raw configuration,
// naming the offending path ("conditions[2].conditions[0].field").
type ValidationError struct {
	Path string
	Err  error
}

// Error implements [error].
func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Err.Error())
}

// Unwrap exposes the sentinel for errors.Is checks.
func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(path string, err error) *ValidationError {
	return &ValidationError{Path: path, Err: err}
}

// envelope is the raw top-level shape before condition classification.
// Conditions stay untyped here; classification needs key sniffing that a
// static struct cannot express.
type envelope struct {
	StaticFilters map[string]any    `mapstructure:"staticFilters"`
	FieldMappings map[string]string `mapstructure:"fieldMappings"`
	DateRanges    []rawDateRange    `mapstructure:"dateRanges"`
	Conditions    []any             `mapstructure:"conditions"`
}

type rawDateRange struct {
	Field string `mapstructure:"field"`
	From  any    `mapstructure:"from"`
	To    any    `mapstructure:"to"`
}

// Parse validates a raw JSON configuration document and returns its typed
// form. Returns *ValidationError on any structural defect.
func Parse(raw []byte) (*types.Configuration, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, invalid("", fmt.Errorf("invalid JSON: %w", err))
	}
	return ParseMap(doc)
}

// ParseMap validates an already-decoded configuration document.
func ParseMap(doc map[string]any) (*types.Configuration, error) {
	var env envelope
	if err := mapstructure.Decode(doc, &env); err != nil {
		return nil, invalid("", fmt.Errorf("malformed configuration: %w", err))
	}

	cfg := &types.Configuration{
		StaticFilters: env.StaticFilters,
		FieldMappings: env.FieldMappings,
	}

	for field, path := range env.FieldMappings {
		if err := checkPath(path, "fieldMappings."+field); err != nil {
			return nil, err
		}
	}

	for i, dr := range env.DateRanges {
		path := fmt.Sprintf("dateRanges[%d]", i)
		if dr.Field == "" {
			return nil, invalid(path+".field", types.ErrMissingField)
		}
		// The field doubles as a data-bag lookup path, so it carries the
		// same depth bound as references and mappings.
		if err := checkPath(dr.Field, path+".field"); err != nil {
			return nil, err
		}
		cfg.DateRanges = append(cfg.DateRanges, types.DateRange{
			Field: dr.Field,
			From:  dr.From,
			To:    dr.To,
		})
	}

	for i, node := range env.Conditions {
		path := fmt.Sprintf("conditions[%d]", i)
		cond, err := parseNode(node, path, 1)
		if err != nil {
			return nil, err
		}
		cfg.Conditions = append(cfg.Conditions, cond)
	}

	return cfg, nil
}

// parseNode classifies and validates one condition node. depth counts
// logical nesting levels against types.MaxNestingDepth.
func parseNode(raw any, path string, depth int) (types.Condition, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return types.Condition{}, invalid(path, types.ErrUnclassifiable)
	}

	// Classification order: logical first, then date-range, then field.
	if op, ok := node["operator"].(string); ok && types.IsGroupingOperator(op) {
		return parseLogical(node, op, path, depth)
	}
	if _, hasFrom := node["from"]; hasFrom {
		return parseDateRange(node, path)
	}
	if _, hasTo := node["to"]; hasTo {
		return parseDateRange(node, path)
	}
	return parseField(node, path)
}

func parseLogical(node map[string]any, op, path string, depth int) (types.Condition, error) {
	if depth >= types.MaxNestingDepth {
		return types.Condition{}, invalid(path, types.ErrNestingTooDeep)
	}

	children, ok := node["conditions"].([]any)
	if !ok || len(children) == 0 {
		return types.Condition{}, invalid(path+".conditions", types.ErrEmptyGroup)
	}

	cond := types.Condition{
		Kind:     types.KindLogical,
		Operator: op,
		Children: make([]types.Condition, 0, len(children)),
	}
	for i, child := range children {
		childPath := fmt.Sprintf("%s.conditions[%d]", path, i)
		parsed, err := parseNode(child, childPath, depth+1)
		if err != nil {
			return types.Condition{}, err
		}
		cond.Children = append(cond.Children, parsed)
	}
	return cond, nil
}

func parseDateRange(node map[string]any, path string) (types.Condition, error) {
	field, _ := node["field"].(string)
	if field == "" {
		return types.Condition{}, invalid(path+".field", types.ErrMissingField)
	}
	if err := checkPath(field, path+".field"); err != nil {
		return types.Condition{}, err
	}

	cond := types.Condition{Kind: types.KindDateRange, Field: field}

	if raw, ok := node["from"]; ok {
		v, err := parseValue(raw, path+".from")
		if err != nil {
			return types.Condition{}, err
		}
		cond.From = &v
	}
	if raw, ok := node["to"]; ok {
		v, err := parseValue(raw, path+".to")
		if err != nil {
			return types.Condition{}, err
		}
		cond.To = &v
	}
	return cond, nil
}

func parseField(node map[string]any, path string) (types.Condition, error) {
	field, _ := node["field"].(string)
	if field == "" {
		return types.Condition{}, invalid(path+".field", types.ErrMissingField)
	}
	op, _ := node["operator"].(string)
	if op == "" {
		return types.Condition{}, invalid(path+".operator", types.ErrMissingOperator)
	}
	raw, ok := node["value"]
	if !ok {
		return types.Condition{}, invalid(path+".value", types.ErrMissingValue)
	}
	value, err := parseValue(raw, path+".value")
	if err != nil {
		return types.Condition{}, err
	}
	return types.Condition{
		Kind:     types.KindField,
		Field:    field,
		Operator: op,
		Value:    value,
	}, nil
}

// parseValue detects the "$"-prefix reference sentinel. A literal string
// starting with "$" has no escape mechanism; it is always a reference.
func parseValue(raw any, path string) (types.Value, error) {
	s, ok := raw.(string)
	if !ok || !strings.HasPrefix(s, types.RefPrefix) {
		return types.Lit(raw), nil
	}
	refPath := strings.TrimPrefix(s, types.RefPrefix)
	if err := checkPath(refPath, path); err != nil {
		return types.Value{}, err
	}
	return types.Ref(refPath), nil
}

// checkPath bounds dotted-path depth and rejects empty paths.
func checkPath(dotted, at string) error {
	if dotted == "" {
		return invalid(at, types.ErrEmptyPath)
	}
	if strings.Count(dotted, ".")+1 > types.MaxPathDepth {
		return invalid(at, types.ErrPathTooDeep)
	}
	return nil
}
