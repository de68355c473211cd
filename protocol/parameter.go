package protocol

import (
	"errors"
	"fmt"
	"slices"

	"github.com/aquariumbio/aquarium-opil/export"
	"github.com/aquariumbio/aquarium-opil/sbol3"
	"github.com/aquariumbio/aquarium-opil/vocabulary/opil"
)

// Kind identifies a parameter class and the value class it accepts.
type Kind int

// Parameter kinds.
const (
	KindBoolean Kind = iota + 1
	KindInteger
	KindMeasure
	KindEnumerated
	KindString
	KindURI
)

var kindClasses = map[Kind][2]string{
	KindBoolean:    {opil.ClassBooleanParameter, opil.ClassBooleanValue},
	KindInteger:    {opil.ClassIntegerParameter, opil.ClassIntegerValue},
	KindMeasure:    {opil.ClassMeasureParameter, opil.ClassMeasureValue},
	KindEnumerated: {opil.ClassEnumeratedParameter, opil.ClassEnumeratedValue},
	KindString:     {opil.ClassStringParameter, opil.ClassStringValue},
	KindURI:        {opil.ClassURIParameter, opil.ClassURIValue},
}

func (k Kind) parameterClass() string { return kindClasses[k][0] }
func (k Kind) valueClass() string     { return kindClasses[k][1] }

// String returns the kind name, e.g. "Boolean".
func (k Kind) String() string {
	class, ok := kindClasses[k]
	if !ok {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	name := localName(class[0])
	return name[:len(name)-len("Parameter")]
}

// Parameter is a protocol input of one kind.
type Parameter struct {
	sbol3.Identified

	Kind     Kind
	Required bool

	// AllowedValues applies to enumerated parameters.
	AllowedValues []string

	defaultValue *Value
}

func newParameter(kind Kind, displayID string) *Parameter {
	p := &Parameter{Kind: kind}
	p.Init(displayID)
	return p
}

// NewBooleanParameter creates a boolean parameter.
func NewBooleanParameter(displayID string) *Parameter {
	return newParameter(KindBoolean, displayID)
}

// NewIntegerParameter creates an integer parameter.
func NewIntegerParameter(displayID string) *Parameter {
	return newParameter(KindInteger, displayID)
}

// NewMeasureParameter creates a measure parameter.
func NewMeasureParameter(displayID string) *Parameter {
	return newParameter(KindMeasure, displayID)
}

// NewEnumeratedParameter creates a parameter restricted to allowed.
func NewEnumeratedParameter(displayID string, allowed ...string) *Parameter {
	p := newParameter(KindEnumerated, displayID)
	p.AllowedValues = allowed
	return p
}

// NewStringParameter creates a string parameter.
func NewStringParameter(displayID string) *Parameter {
	return newParameter(KindString, displayID)
}

// NewURIParameter creates a URI parameter.
func NewURIParameter(displayID string) *Parameter {
	return newParameter(KindURI, displayID)
}

// SetDefault adopts v as the default value.
func (p *Parameter) SetDefault(v *Value) error {
	if err := p.checkValue(v); err != nil {
		return err
	}
	p.defaultValue = v
	sbol3.Adopt(p, v, localName(v.Kind.valueClass()), 1)
	return nil
}

// Default returns the default value, or nil.
func (p *Parameter) Default() *Value {
	return p.defaultValue
}

func (p *Parameter) checkValue(v *Value) error {
	if v == nil {
		return fmt.Errorf("%w: nil value for %s parameter %s", ErrValueKind, p.Kind, p.DisplayID())
	}
	if v.Kind != p.Kind {
		return fmt.Errorf("%w: %s value for %s parameter %s", ErrValueKind, v.Kind, p.Kind, p.DisplayID())
	}
	if p.Kind == KindEnumerated {
		s, _ := v.literal.(string)
		if !slices.Contains(p.AllowedValues, s) {
			return fmt.Errorf("%w: %q for %s", ErrNotAllowed, s, p.DisplayID())
		}
	}
	return nil
}

// TypeIRIs implements sbol3.Object.
func (p *Parameter) TypeIRIs() []string {
	return []string{p.Kind.parameterClass()}
}

// Properties implements sbol3.Object.
func (p *Parameter) Properties() []export.Triple {
	id := p.Identity()
	triples := []export.Triple{
		{Subject: id, Predicate: opil.ParameterRequired, Object: p.Required},
	}
	for _, allowed := range p.AllowedValues {
		triples = append(triples, export.Triple{Subject: id, Predicate: opil.ParameterAllowedValue, Object: allowed})
	}
	if p.defaultValue != nil {
		triples = append(triples, sbol3.RefTriples(id, opil.ParameterDefaultValue, p.defaultValue)...)
	}
	return triples
}

// Children implements sbol3.Object.
func (p *Parameter) Children() []sbol3.Object {
	if p.defaultValue == nil {
		return nil
	}
	return []sbol3.Object{p.defaultValue}
}

// Validate implements sbol3.Validator.
func (p *Parameter) Validate() error {
	if _, ok := kindClasses[p.Kind]; !ok {
		return fmt.Errorf("parameter %s: unknown kind %d", p.Identity(), int(p.Kind))
	}
	if p.Kind == KindEnumerated && len(p.AllowedValues) == 0 {
		return fmt.Errorf("enumerated parameter %s has no allowed values", p.Identity())
	}
	if p.defaultValue != nil {
		return p.checkValue(p.defaultValue)
	}
	return nil
}

// Value is a typed parameter value.
type Value struct {
	sbol3.Identified

	Kind Kind

	literal any
	measure *sbol3.Measure
}

func newValue(kind Kind, literal any) *Value {
	return &Value{Kind: kind, literal: literal}
}

// NewBooleanValue creates a boolean value.
func NewBooleanValue(b bool) *Value { return newValue(KindBoolean, b) }

// NewIntegerValue creates an integer value.
func NewIntegerValue(n int64) *Value { return newValue(KindInteger, n) }

// NewEnumeratedValue creates an enumerated value.
func NewEnumeratedValue(s string) *Value { return newValue(KindEnumerated, s) }

// NewStringValue creates a string value.
func NewStringValue(s string) *Value { return newValue(KindString, s) }

// NewURIValue creates a URI value.
func NewURIValue(iri string) *Value { return newValue(KindURI, export.IRI(iri)) }

// NewMeasureValue creates a value owning m. A measure without a displayId
// is named Measure1.
func NewMeasureValue(m *sbol3.Measure) *Value {
	v := newValue(KindMeasure, nil)
	v.measure = m
	sbol3.Adopt(v, m, "Measure", 1)
	return v
}

// Literal returns the held literal: bool, int64, string or export.IRI.
// It is nil for measure values.
func (v *Value) Literal() any {
	return v.literal
}

// Measure returns the owned measure of a measure value.
func (v *Value) Measure() *sbol3.Measure {
	return v.measure
}

// TypeIRIs implements sbol3.Object.
func (v *Value) TypeIRIs() []string {
	return []string{v.Kind.valueClass()}
}

// Properties implements sbol3.Object.
func (v *Value) Properties() []export.Triple {
	id := v.Identity()
	if v.Kind == KindMeasure {
		return sbol3.RefTriples(id, opil.ValueMeasure, v.measure)
	}
	return []export.Triple{{Subject: id, Predicate: opil.ValueLiteral, Object: v.literal}}
}

// Children implements sbol3.Object.
func (v *Value) Children() []sbol3.Object {
	if v.measure == nil {
		return nil
	}
	return []sbol3.Object{v.measure}
}

// Validate implements sbol3.Validator.
func (v *Value) Validate() error {
	switch {
	case v.Kind == KindMeasure && v.measure == nil:
		return errors.New("measure value " + v.Identity() + " has no measure")
	case v.Kind == KindURI:
		iri, _ := v.literal.(export.IRI)
		return sbol3.CheckIRI("value", string(iri))
	}
	return nil
}
