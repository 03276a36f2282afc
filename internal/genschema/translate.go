package genschema

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"

	"genbridge/pkg/types"
)

// Translate converts a generic schema description into a typed
// constrained-generation schema tree by recursive descent. It fails before
// any model work begins; a returned error means no session is created.
//
// An anyOf list takes priority over the type tag. Accepted kinds: object,
// array, string, number, integer, boolean.
func Translate(def *types.SchemaDefinition) (Node, error) {
	if def == nil {
		return nil, ErrUnsupportedKind("")
	}
	if len(def.AnyOf) > 0 {
		variants := make([]Node, 0, len(def.AnyOf))
		for _, v := range def.AnyOf {
			n, err := Translate(v)
			if err != nil {
				return nil, err
			}
			variants = append(variants, n)
		}
		return Union{Name: def.Title, Description: def.Description, Variants: variants}, nil
	}
	switch def.Type {
	case "object":
		return translateObject(def)
	case "array":
		return translateArray(def)
	case "string":
		return translateString(def)
	case "number":
		return translateNumber(def, Float)
	case "integer":
		return translateNumber(def, Integer)
	case "boolean":
		return Boolean{}, nil
	default:
		return nil, ErrUnsupportedKind(def.Type)
	}
}

// translateObject descends into each declared property. A missing properties
// map yields an object with no properties. Property order is not meaningful
// in the source map, so names are sorted for a deterministic tree.
func translateObject(def *types.SchemaDefinition) (Node, error) {
	required := make(map[string]bool, len(def.Required))
	for _, name := range def.Required {
		required[name] = true
	}
	names := make([]string, 0, len(def.Properties))
	for name := range def.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	props := make([]Property, 0, len(names))
	for _, name := range names {
		sub := def.Properties[name]
		n, err := Translate(sub)
		if err != nil {
			return nil, err
		}
		desc := ""
		if sub != nil {
			desc = sub.Description
		}
		props = append(props, Property{
			Name:        name,
			Description: desc,
			Schema:      n,
			Optional:    !required[name],
		})
	}
	return Object{Name: def.Title, Description: def.Description, Properties: props}, nil
}

func translateArray(def *types.SchemaDefinition) (Node, error) {
	if def.Items == nil {
		return nil, ErrMissingArrayItems()
	}
	elem, err := Translate(def.Items)
	if err != nil {
		return nil, err
	}
	return Array{Element: elem, MinItems: def.MinItems, MaxItems: def.MaxItems}, nil
}

// translateString prefers an enum over a pattern when both are present.
func translateString(def *types.SchemaDefinition) (Node, error) {
	if len(def.Enum) > 0 {
		return String{Guide: EnumValues{Values: enumStrings(def.Enum)}}, nil
	}
	if def.Pattern != "" {
		re, err := regexp.Compile(def.Pattern)
		if err != nil {
			return nil, invalidPatternError{pattern: def.Pattern, cause: err}
		}
		return String{Guide: Pattern{Regexp: re}}, nil
	}
	return String{}, nil
}

// translateNumber applies the bound priority order inherited from the source
// format: inclusive maximum, then inclusive minimum, then exclusive maximum,
// then exclusive minimum, stopping at the first match. A schema carrying both
// a minimum and a maximum therefore keeps only the maximum. Exclusive bounds
// are converted to the nearest inclusive equivalent.
func translateNumber(def *types.SchemaDefinition, kind NumberKind) (Node, error) {
	if def.MultipleOf != nil {
		return nil, ErrUnsupportedConstraint("multipleOf")
	}
	if len(def.Enum) > 0 {
		return Number{Kind: kind, Guide: EnumValues{Values: enumStrings(def.Enum)}}, nil
	}
	switch {
	case def.Maximum != nil:
		return Number{Kind: kind, Guide: Bound{Kind: Max, Value: *def.Maximum}}, nil
	case def.Minimum != nil:
		return Number{Kind: kind, Guide: Bound{Kind: Min, Value: *def.Minimum}}, nil
	case def.ExclusiveMaximum != nil:
		return Number{Kind: kind, Guide: Bound{Kind: Max, Value: inclusiveBelow(*def.ExclusiveMaximum, kind)}}, nil
	case def.ExclusiveMinimum != nil:
		return Number{Kind: kind, Guide: Bound{Kind: Min, Value: inclusiveAbove(*def.ExclusiveMinimum, kind)}}, nil
	}
	return Number{Kind: kind}, nil
}

// inclusiveBelow returns the largest value strictly below v for the kind.
func inclusiveBelow(v float64, kind NumberKind) float64 {
	if kind == Integer {
		return math.Ceil(v) - 1
	}
	return math.Nextafter(v, math.Inf(-1))
}

// inclusiveAbove returns the smallest value strictly above v for the kind.
func inclusiveAbove(v float64, kind NumberKind) float64 {
	if kind == Integer {
		return math.Floor(v) + 1
	}
	return math.Nextafter(v, math.Inf(1))
}

// enumStrings renders enum members as strings. JSON numbers arrive as
// float64; integral values are printed without a fractional part.
func enumStrings(vals []any) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		switch t := v.(type) {
		case string:
			out = append(out, t)
		case float64:
			if t == math.Trunc(t) && !math.IsInf(t, 0) {
				out = append(out, strconv.FormatInt(int64(t), 10))
			} else {
				out = append(out, strconv.FormatFloat(t, 'f', -1, 64))
			}
		case bool:
			out = append(out, strconv.FormatBool(t))
		case nil:
			out = append(out, "null")
		default:
			out = append(out, fmt.Sprint(t))
		}
	}
	return out
}
