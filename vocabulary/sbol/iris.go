package sbol

// Namespace is the SBOL3 ontology namespace.
const Namespace = "http://sbols.org/v3#"

// OMNamespace is the Ontology of units of Measure (OM 2.0) namespace.
const OMNamespace = "http://www.ontology-of-units-of-measure.org/resource/om-2/"

// ProvNamespace is the W3C PROV-O namespace.
const ProvNamespace = "http://www.w3.org/ns/prov#"

// Class IRIs for the SBOL3 classes emitted by the object model.
const (
	// ClassComponent is a structural or functional entity.
	ClassComponent = Namespace + "Component"

	// ClassLocalSubComponent is a feature defined locally inside a component.
	ClassLocalSubComponent = Namespace + "LocalSubComponent"

	// ClassCombinatorialDerivation describes a design space derived from a template.
	ClassCombinatorialDerivation = Namespace + "CombinatorialDerivation"

	// ClassVariableFeature marks a template feature as variable.
	ClassVariableFeature = Namespace + "VariableFeature"

	// ClassMeasure is an OM measure attached to a feature.
	ClassMeasure = OMNamespace + "Measure"

	// ClassActivity is a PROV-O activity, used for generation provenance.
	ClassActivity = ProvNamespace + "Activity"
)

// Cardinality IRIs for sbol:cardinality on a VariableFeature.
const (
	// CardinalityZeroOrOne allows the variable to be absent or take one value.
	CardinalityZeroOrOne = Namespace + "zeroOrOne"

	// CardinalityOne requires exactly one value.
	CardinalityOne = Namespace + "one"

	// CardinalityZeroOrMore allows any number of values.
	CardinalityZeroOrMore = Namespace + "zeroOrMore"

	// CardinalityOneOrMore requires at least one value.
	CardinalityOneOrMore = Namespace + "oneOrMore"
)

// IsCardinality reports whether iri is one of the four SBOL3 cardinalities.
func IsCardinality(iri string) bool {
	switch iri {
	case CardinalityZeroOrOne, CardinalityOne, CardinalityZeroOrMore, CardinalityOneOrMore:
		return true
	default:
		return false
	}
}

// Strategy IRIs for sbol:strategy on a CombinatorialDerivation.
const (
	// StrategyEnumerate means every derivation should be enumerated.
	StrategyEnumerate = Namespace + "enumerate"

	// StrategySample means derivations may be sampled from the space.
	StrategySample = Namespace + "sample"
)
