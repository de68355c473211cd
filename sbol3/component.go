package sbol3

import (
	"errors"
	"math"

	"github.com/aquariumbio/aquarium-opil/export"
	vocab "github.com/aquariumbio/aquarium-opil/vocabulary/sbol"
)

// Component is a top-level structural or functional entity.
type Component struct {
	Identified

	// Types holds the sbol:type IRIs.
	Types []string

	features []*LocalSubComponent
}

// NewComponent creates a component with the given sbol:type IRIs.
func NewComponent(displayID string, types ...string) *Component {
	c := &Component{Types: types}
	c.Init(displayID)
	return c
}

// AddFeature adopts a feature.
func (c *Component) AddFeature(f *LocalSubComponent) {
	c.features = append(c.features, f)
	Adopt(c, f, "LocalSubComponent", len(c.features))
}

// Features returns the owned features in insertion order.
func (c *Component) Features() []*LocalSubComponent {
	return c.features
}

// TypeIRIs implements Object.
func (c *Component) TypeIRIs() []string {
	return []string{vocab.ClassComponent}
}

// Properties implements Object.
func (c *Component) Properties() []export.Triple {
	id := c.Identity()
	triples := typeTriples(id, c.Types)
	for _, f := range c.features {
		triples = append(triples, RefTriples(id, vocab.ComponentFeature, f)...)
	}
	return triples
}

// Children implements Object.
func (c *Component) Children() []Object {
	children := make([]Object, 0, len(c.features))
	for _, f := range c.features {
		children = append(children, f)
	}
	return children
}

// Validate implements Validator.
func (c *Component) Validate() error {
	if len(c.Types) == 0 {
		return errors.New("component " + c.Identity() + " has no type")
	}
	return checkTypes(c.Types)
}

// LocalSubComponent is a feature defined inside its owning component.
type LocalSubComponent struct {
	Identified

	// Types holds the sbol:type IRIs.
	Types []string

	measures []*Measure
}

// NewLocalSubComponent creates a feature with the given sbol:type IRIs.
func NewLocalSubComponent(displayID string, types ...string) *LocalSubComponent {
	f := &LocalSubComponent{Types: types}
	f.Init(displayID)
	return f
}

// AddMeasure adopts a measure.
func (f *LocalSubComponent) AddMeasure(m *Measure) {
	f.measures = append(f.measures, m)
	Adopt(f, m, "Measure", len(f.measures))
}

// Measures returns the owned measures in insertion order.
func (f *LocalSubComponent) Measures() []*Measure {
	return f.measures
}

// TypeIRIs implements Object.
func (f *LocalSubComponent) TypeIRIs() []string {
	return []string{vocab.ClassLocalSubComponent}
}

// Properties implements Object.
func (f *LocalSubComponent) Properties() []export.Triple {
	id := f.Identity()
	triples := typeTriples(id, f.Types)
	for _, m := range f.measures {
		triples = append(triples, RefTriples(id, vocab.ComponentMeasure, m)...)
	}
	return triples
}

// Children implements Object.
func (f *LocalSubComponent) Children() []Object {
	children := make([]Object, 0, len(f.measures))
	for _, m := range f.measures {
		children = append(children, m)
	}
	return children
}

// Validate implements Validator.
func (f *LocalSubComponent) Validate() error {
	if len(f.Types) == 0 {
		return errors.New("feature " + f.Identity() + " has no type")
	}
	return checkTypes(f.Types)
}

// Measure is an OM quantity with a unit. A NaN value means "not yet known".
type Measure struct {
	Identified

	Value float64
	Unit  string

	// Types holds optional SBO type IRIs.
	Types []string
}

// NewMeasure creates a measure.
func NewMeasure(displayID string, value float64, unit string) *Measure {
	m := &Measure{Value: value, Unit: unit}
	m.Init(displayID)
	return m
}

// Unspecified reports whether the value has been left open.
func (m *Measure) Unspecified() bool {
	return math.IsNaN(m.Value)
}

// TypeIRIs implements Object.
func (m *Measure) TypeIRIs() []string {
	return []string{vocab.ClassMeasure}
}

// Properties implements Object.
func (m *Measure) Properties() []export.Triple {
	id := m.Identity()
	triples := []export.Triple{
		{Subject: id, Predicate: vocab.MeasureValue, Object: m.Value},
		{Subject: id, Predicate: vocab.MeasureUnit, Object: export.IRI(m.Unit)},
	}
	return append(triples, typeTriples(id, m.Types)...)
}

// Children implements Object.
func (m *Measure) Children() []Object { return nil }

// Validate implements Validator.
func (m *Measure) Validate() error {
	return errors.Join(CheckIRI("unit", m.Unit), checkTypes(m.Types))
}

func typeTriples(subject string, types []string) []export.Triple {
	triples := make([]export.Triple, 0, len(types))
	for _, t := range types {
		triples = append(triples, export.Triple{Subject: subject, Predicate: vocab.ComponentType, Object: export.IRI(t)})
	}
	return triples
}

func checkTypes(types []string) error {
	var errs []error
	for _, t := range types {
		errs = append(errs, CheckIRI("type", t))
	}
	return errors.Join(errs...)
}
