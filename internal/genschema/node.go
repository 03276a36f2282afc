package genschema

import "regexp"

// Node is one vertex of a constrained-generation schema tree. The concrete
// types below are the only implementations.
type Node interface {
	isNode()
}

// Object constrains output to a fixed set of named properties.
type Object struct {
	Name        string
	Description string
	Properties  []Property
}

// Property is one field of an Object.
type Property struct {
	Name        string
	Description string
	Schema      Node
	// Optional is false only when the property name appears in the source
	// schema's required list.
	Optional bool
}

// Array constrains output to a sequence of Element-shaped values.
type Array struct {
	Element  Node
	MinItems *uint64
	MaxItems *uint64
}

// String constrains output to a string, optionally guided by an enum or a
// compiled pattern.
type String struct {
	Guide StringGuide // nil means unconstrained
}

// NumberKind distinguishes integral from floating numeric schemas.
type NumberKind int

const (
	Integer NumberKind = iota
	Float
)

// Number constrains output to a numeric value. At most one Bound is ever
// attached; a node never carries both a minimum and a maximum.
type Number struct {
	Kind  NumberKind
	Guide NumberGuide // nil means unconstrained
}

// Boolean constrains output to true/false.
type Boolean struct{}

// Union constrains output to any of the variant shapes.
type Union struct {
	Name        string
	Description string
	Variants    []Node
}

func (Object) isNode()  {}
func (Array) isNode()   {}
func (String) isNode()  {}
func (Number) isNode()  {}
func (Boolean) isNode() {}
func (Union) isNode()   {}

// StringGuide narrows a String node.
type StringGuide interface {
	isStringGuide()
}

// NumberGuide narrows a Number node.
type NumberGuide interface {
	isNumberGuide()
}

// EnumValues restricts generation to one of the listed values. Numeric enums
// are carried as their string representation; parsing back is the caller's
// concern.
type EnumValues struct {
	Values []string
}

// Pattern restricts a string to a compiled regular expression.
type Pattern struct {
	Regexp *regexp.Regexp
}

// BoundKind tags a numeric bound as a minimum or a maximum.
type BoundKind int

const (
	Min BoundKind = iota
	Max
)

// Bound is a single inclusive numeric bound.
type Bound struct {
	Kind  BoundKind
	Value float64
}

func (EnumValues) isStringGuide() {}
func (Pattern) isStringGuide()    {}
func (EnumValues) isNumberGuide() {}
func (Bound) isNumberGuide()      {}
