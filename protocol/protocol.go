package protocol

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aquariumbio/aquarium-opil/export"
	"github.com/aquariumbio/aquarium-opil/sbol3"
	"github.com/aquariumbio/aquarium-opil/vocabulary/opil"
)

// Interface describes what a protocol accepts and produces: the samples it
// can run on, its measurements and its parameters.
type Interface struct {
	sbol3.Identified

	allowedSamples   []*sbol3.CombinatorialDerivation
	measurementTypes []*MeasurementType
	parameters       []*Parameter
}

// NewInterface creates an empty protocol interface.
func NewInterface(displayID string) *Interface {
	p := &Interface{}
	p.Init(displayID)
	return p
}

// AddAllowedSamples references a sample set. The sample set stays top-level
// and must be added to the document separately.
func (p *Interface) AddAllowedSamples(samples *sbol3.CombinatorialDerivation) {
	p.allowedSamples = append(p.allowedSamples, samples)
}

// AddMeasurementType adopts a measurement type.
func (p *Interface) AddMeasurementType(m *MeasurementType) {
	p.measurementTypes = append(p.measurementTypes, m)
	sbol3.Adopt(p, m, "MeasurementType", len(p.measurementTypes))
}

// AddParameter adopts a parameter. Unnamed parameters are numbered per kind.
func (p *Interface) AddParameter(param *Parameter) {
	p.parameters = append(p.parameters, param)
	n := 0
	for _, existing := range p.parameters {
		if existing.Kind == param.Kind {
			n++
		}
	}
	sbol3.Adopt(p, param, localName(param.Kind.parameterClass()), n)
}

// AllowedSamples returns the referenced sample sets.
func (p *Interface) AllowedSamples() []*sbol3.CombinatorialDerivation {
	return p.allowedSamples
}

// MeasurementTypes returns the owned measurement types in insertion order.
func (p *Interface) MeasurementTypes() []*MeasurementType {
	return p.measurementTypes
}

// Parameters returns the owned parameters in insertion order.
func (p *Interface) Parameters() []*Parameter {
	return p.parameters
}

// Parameter returns the parameter with the given displayId.
func (p *Interface) Parameter(displayID string) (*Parameter, bool) {
	for _, param := range p.parameters {
		if param.DisplayID() == displayID {
			return param, true
		}
	}
	return nil, false
}

// TypeIRIs implements sbol3.Object.
func (p *Interface) TypeIRIs() []string {
	return []string{opil.ClassProtocolInterface}
}

// Properties implements sbol3.Object.
func (p *Interface) Properties() []export.Triple {
	id := p.Identity()
	var triples []export.Triple
	for _, s := range p.allowedSamples {
		triples = append(triples, sbol3.RefTriples(id, opil.ProtocolAllowedSamples, s)...)
	}
	for _, m := range p.measurementTypes {
		triples = append(triples, sbol3.RefTriples(id, opil.ProtocolMeasurementType, m)...)
	}
	for _, param := range p.parameters {
		triples = append(triples, sbol3.RefTriples(id, opil.ProtocolParameter, param)...)
	}
	return triples
}

// Children implements sbol3.Object.
func (p *Interface) Children() []sbol3.Object {
	children := make([]sbol3.Object, 0, len(p.measurementTypes)+len(p.parameters))
	for _, m := range p.measurementTypes {
		children = append(children, m)
	}
	for _, param := range p.parameters {
		children = append(children, param)
	}
	return children
}

// References implements sbol3.Referrer.
func (p *Interface) References() []sbol3.Object {
	refs := make([]sbol3.Object, 0, len(p.allowedSamples))
	for _, s := range p.allowedSamples {
		refs = append(refs, s)
	}
	return refs
}

// Validate implements sbol3.Validator.
func (p *Interface) Validate() error {
	var errs []error
	for _, s := range p.allowedSamples {
		if s.TypeURI != opil.ClassSampleSet {
			errs = append(errs, fmt.Errorf("%w: %s", ErrNotSampleSet, s.Identity()))
		}
	}
	return errors.Join(errs...)
}

// MeasurementType is a kind of measurement, identified by an ontology term.
type MeasurementType struct {
	sbol3.Identified

	// Type is the ontology term IRI, e.g. an NCIT class.
	Type string
}

// NewMeasurementType creates a measurement type for the term typeIRI.
func NewMeasurementType(displayID, typeIRI string) *MeasurementType {
	m := &MeasurementType{Type: typeIRI}
	m.Init(displayID)
	return m
}

// TypeIRIs implements sbol3.Object.
func (m *MeasurementType) TypeIRIs() []string {
	return []string{opil.ClassMeasurementType}
}

// Properties implements sbol3.Object.
func (m *MeasurementType) Properties() []export.Triple {
	return []export.Triple{
		{Subject: m.Identity(), Predicate: opil.MeasurementTypeType, Object: export.IRI(m.Type)},
	}
}

// Children implements sbol3.Object.
func (m *MeasurementType) Children() []sbol3.Object { return nil }

// Validate implements sbol3.Validator.
func (m *MeasurementType) Validate() error {
	return sbol3.CheckIRI("measurement type", m.Type)
}

// NewSampleSet creates a combinatorial derivation typed opil:SampleSet.
func NewSampleSet(displayID string, template sbol3.Object) *sbol3.CombinatorialDerivation {
	s := sbol3.NewCombinatorialDerivation(displayID, template)
	s.TypeURI = opil.ClassSampleSet
	return s
}

func localName(class string) string {
	return strings.TrimPrefix(class, opil.Namespace)
}
