package sbol3

import (
	"errors"
	"fmt"

	"github.com/aquariumbio/aquarium-opil/export"
	vocab "github.com/aquariumbio/aquarium-opil/vocabulary/sbol"
)

// CombinatorialDerivation describes a design space derived from a template
// component by varying some of its features.
type CombinatorialDerivation struct {
	Identified

	Template Object

	// Strategy is optional; see vocab.StrategyEnumerate and vocab.StrategySample.
	Strategy string

	// TypeURI replaces sbol:CombinatorialDerivation as the rdf:type when set,
	// for subclasses such as opil:SampleSet.
	TypeURI string

	variableFeatures []*VariableFeature
}

// NewCombinatorialDerivation creates a derivation over template.
func NewCombinatorialDerivation(displayID string, template Object) *CombinatorialDerivation {
	d := &CombinatorialDerivation{Template: template}
	d.Init(displayID)
	return d
}

// AddVariableFeature adopts a variable feature.
func (d *CombinatorialDerivation) AddVariableFeature(v *VariableFeature) {
	d.variableFeatures = append(d.variableFeatures, v)
	Adopt(d, v, "VariableFeature", len(d.variableFeatures))
}

// VariableFeatures returns the owned variable features in insertion order.
func (d *CombinatorialDerivation) VariableFeatures() []*VariableFeature {
	return d.variableFeatures
}

// TypeIRIs implements Object.
func (d *CombinatorialDerivation) TypeIRIs() []string {
	if d.TypeURI != "" {
		return []string{d.TypeURI}
	}
	return []string{vocab.ClassCombinatorialDerivation}
}

// Properties implements Object.
func (d *CombinatorialDerivation) Properties() []export.Triple {
	id := d.Identity()
	triples := RefTriples(id, vocab.CombinatorialTemplate, d.Template)
	if d.Strategy != "" {
		triples = append(triples, export.Triple{Subject: id, Predicate: vocab.CombinatorialStrategy, Object: export.IRI(d.Strategy)})
	}
	for _, v := range d.variableFeatures {
		triples = append(triples, RefTriples(id, vocab.CombinatorialVariableFeature, v)...)
	}
	return triples
}

// Children implements Object.
func (d *CombinatorialDerivation) Children() []Object {
	children := make([]Object, 0, len(d.variableFeatures))
	for _, v := range d.variableFeatures {
		children = append(children, v)
	}
	return children
}

// References implements Referrer.
func (d *CombinatorialDerivation) References() []Object {
	return []Object{d.Template}
}

// Validate implements Validator.
func (d *CombinatorialDerivation) Validate() error {
	var errs []error
	if d.Template == nil {
		errs = append(errs, fmt.Errorf("%w: %s has no template", ErrUnresolvedReference, d.Identity()))
	}
	if d.Strategy != "" && d.Strategy != vocab.StrategyEnumerate && d.Strategy != vocab.StrategySample {
		errs = append(errs, fmt.Errorf("%w: strategy %q", ErrInvalidIRI, d.Strategy))
	}
	if d.TypeURI != "" {
		errs = append(errs, CheckIRI("type", d.TypeURI))
	}
	return errors.Join(errs...)
}

// VariableFeature marks one template object as variable with a cardinality.
type VariableFeature struct {
	Identified

	// Cardinality is one of the vocab.Cardinality* IRIs.
	Cardinality string

	// Variable is the template object being varied.
	Variable Object
}

// NewVariableFeature creates an unnamed variable feature; the owning
// derivation assigns its displayId.
func NewVariableFeature(cardinality string, variable Object) *VariableFeature {
	return &VariableFeature{Cardinality: cardinality, Variable: variable}
}

// TypeIRIs implements Object.
func (v *VariableFeature) TypeIRIs() []string {
	return []string{vocab.ClassVariableFeature}
}

// Properties implements Object.
func (v *VariableFeature) Properties() []export.Triple {
	id := v.Identity()
	triples := []export.Triple{
		{Subject: id, Predicate: vocab.VariableCardinality, Object: export.IRI(v.Cardinality)},
	}
	return append(triples, RefTriples(id, vocab.VariableTarget, v.Variable)...)
}

// Children implements Object.
func (v *VariableFeature) Children() []Object { return nil }

// References implements Referrer.
func (v *VariableFeature) References() []Object {
	return []Object{v.Variable}
}

// Validate implements Validator.
func (v *VariableFeature) Validate() error {
	var errs []error
	if !vocab.IsCardinality(v.Cardinality) {
		errs = append(errs, fmt.Errorf("%w: %q on %s", ErrInvalidCardinality, v.Cardinality, v.Identity()))
	}
	if v.Variable == nil {
		errs = append(errs, fmt.Errorf("%w: %s has no variable", ErrUnresolvedReference, v.Identity()))
	}
	return errors.Join(errs...)
}
