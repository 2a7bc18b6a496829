package searchexpr

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind tags which node a Definition builds, for YAML-serialized search
// queries (spec §4.10's prepareSearchQuery(def)).
type Kind string

const (
	// KindAnd builds an And node from Left and Right.
	KindAnd Kind = "and"
	// KindOr builds an Or node from Left and Right.
	KindOr Kind = "or"
	// KindNot builds a Not node from Operand.
	KindNot Kind = "not"
	// KindEqualString builds a string Equal node from Left and Right,
	// which must themselves be KindConstantString.
	KindEqualString Kind = "equalString"
	// KindNotEqualString builds a string NotEqual node from Left and
	// Right, which must themselves be KindConstantString.
	KindNotEqualString Kind = "notEqualString"
	// KindConstantString builds a Constant[string] leaf from Value.
	KindConstantString Kind = "constantString"
)

// Definition is the serializable shape of a BoolExpr tree, decoded from
// YAML the way the teacher's config structs are decoded by
// viper/mapstructure: plain struct tags, no custom unmarshaler.
type Definition struct {
	Kind    Kind        `yaml:"kind"`
	Left    *Definition `yaml:"left,omitempty"`
	Right   *Definition `yaml:"right,omitempty"`
	Operand *Definition `yaml:"operand,omitempty"`
	Value   string      `yaml:"value,omitempty"`
}

// ParseDefinition decodes a YAML-encoded search query definition.
func ParseDefinition(doc []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(doc, &def); err != nil {
		return nil, fmt.Errorf("searchexpr: parsing query definition: %w", err)
	}

	return &def, nil
}

// Build compiles d into an evaluable BoolExpr (spec §4.10's
// prepareSearchQuery(def)).
func (d *Definition) Build() (BoolExpr, error) {
	switch d.Kind {
	case KindAnd:
		l, r, err := d.buildBoolOperands()
		if err != nil {
			return nil, err
		}

		return And{L: l, R: r}, nil

	case KindOr:
		l, r, err := d.buildBoolOperands()
		if err != nil {
			return nil, err
		}

		return Or{L: l, R: r}, nil

	case KindNot:
		if d.Operand == nil {
			return nil, fmt.Errorf("searchexpr: %q definition requires an operand", KindNot)
		}

		operand, err := d.Operand.Build()
		if err != nil {
			return nil, err
		}

		return Not{Operand: operand}, nil

	case KindEqualString:
		l, r, err := d.buildStringOperands()
		if err != nil {
			return nil, err
		}

		return Equal[string]{L: l, R: r}, nil

	case KindNotEqualString:
		l, r, err := d.buildStringOperands()
		if err != nil {
			return nil, err
		}

		return NotEqual[string]{L: l, R: r}, nil

	default:
		return nil, fmt.Errorf("searchexpr: unknown or non-boolean definition kind %q", d.Kind)
	}
}

func (d *Definition) buildBoolOperands() (BoolExpr, BoolExpr, error) {
	if d.Left == nil || d.Right == nil {
		return nil, nil, fmt.Errorf("searchexpr: %q definition requires left and right", d.Kind)
	}

	l, err := d.Left.Build()
	if err != nil {
		return nil, nil, err
	}

	r, err := d.Right.Build()
	if err != nil {
		return nil, nil, err
	}

	return l, r, nil
}

func (d *Definition) buildStringOperands() (ValueExpr[string], ValueExpr[string], error) {
	if d.Left == nil || d.Right == nil {
		return nil, nil, fmt.Errorf("searchexpr: %q definition requires left and right", d.Kind)
	}

	l, err := d.Left.buildStringValue()
	if err != nil {
		return nil, nil, err
	}

	r, err := d.Right.buildStringValue()
	if err != nil {
		return nil, nil, err
	}

	return l, r, nil
}

func (d *Definition) buildStringValue() (ValueExpr[string], error) {
	if d.Kind != KindConstantString {
		return nil, fmt.Errorf("searchexpr: expected a %q definition, got %q", KindConstantString, d.Kind)
	}

	return Constant[string]{TypeName: "String", Value: d.Value}, nil
}
