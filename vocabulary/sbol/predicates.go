package sbol

import "github.com/c360studio/semstreams/vocabulary"

// Identity predicates apply to every SBOL3 identified object.
const (
	// IdentityDisplayID is the local identifier of an object.
	IdentityDisplayID = "sbol.identity.display_id"

	// IdentityName is the human-readable name.
	IdentityName = "sbol.identity.name"

	// IdentityDescription is the free-text description.
	IdentityDescription = "sbol.identity.description"

	// IdentityNamespace links a top-level object to its namespace.
	IdentityNamespace = "sbol.identity.namespace"

	// IdentityClass is the rdf:type of an object. Serializers emit types
	// directly; graph publishing carries them as triples.
	IdentityClass = "sbol.identity.class"
)

// Component predicates describe components and their features.
const (
	// ComponentType is the type IRI of a component or feature.
	ComponentType = "sbol.component.type"

	// ComponentFeature links a component to its owned features.
	ComponentFeature = "sbol.component.feature"

	// ComponentMeasure links a feature to its owned measures.
	ComponentMeasure = "sbol.component.measure"
)

// Combinatorial predicates describe combinatorial derivations.
const (
	// CombinatorialTemplate links a derivation to its template component.
	CombinatorialTemplate = "sbol.combinatorial.template"

	// CombinatorialStrategy is the derivation strategy IRI.
	CombinatorialStrategy = "sbol.combinatorial.strategy"

	// CombinatorialVariableFeature links a derivation to its variable features.
	CombinatorialVariableFeature = "sbol.combinatorial.variable_feature"

	// VariableCardinality is the cardinality IRI of a variable feature.
	VariableCardinality = "sbol.variable.cardinality"

	// VariableTarget links a variable feature to the template object it varies.
	VariableTarget = "sbol.variable.variable"
)

// Measure predicates come from the OM ontology.
const (
	// MeasureValue is the numerical value of a measure.
	MeasureValue = "om.measure.value"

	// MeasureUnit is the unit IRI of a measure.
	MeasureUnit = "om.measure.unit"
)

// Provenance predicates come from PROV-O.
const (
	// ActivityStartedAt is the RFC3339 start time of an activity.
	ActivityStartedAt = "prov.activity.started_at"

	// ActivityEndedAt is the RFC3339 end time of an activity.
	ActivityEndedAt = "prov.activity.ended_at"

	// GeneratedBy links an object to the activity that generated it.
	GeneratedBy = "prov.entity.generated_by"
)

func registerIdentityPredicates() {
	vocabulary.Register(IdentityDisplayID,
		vocabulary.WithDescription("Local identifier of an SBOL object"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"displayId"))

	vocabulary.Register(IdentityName,
		vocabulary.WithDescription("Human-readable name"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"name"))

	vocabulary.Register(IdentityDescription,
		vocabulary.WithDescription("Free-text description"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"description"))

	vocabulary.Register(IdentityNamespace,
		vocabulary.WithDescription("Namespace of a top-level object"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(Namespace+"hasNamespace"))

	vocabulary.Register(IdentityClass,
		vocabulary.WithDescription("Ontology class of an object"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type"))
}

func registerComponentPredicates() {
	vocabulary.Register(ComponentType,
		vocabulary.WithDescription("Type of a component or feature"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(Namespace+"type"))

	vocabulary.Register(ComponentFeature,
		vocabulary.WithDescription("Feature owned by a component"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(Namespace+"hasFeature"))

	vocabulary.Register(ComponentMeasure,
		vocabulary.WithDescription("Measure owned by a feature"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(Namespace+"hasMeasure"))
}

func registerCombinatorialPredicates() {
	vocabulary.Register(CombinatorialTemplate,
		vocabulary.WithDescription("Template component of a derivation"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(Namespace+"template"))

	vocabulary.Register(CombinatorialStrategy,
		vocabulary.WithDescription("Derivation strategy"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(Namespace+"strategy"))

	vocabulary.Register(CombinatorialVariableFeature,
		vocabulary.WithDescription("Variable feature owned by a derivation"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(Namespace+"hasVariableFeature"))

	vocabulary.Register(VariableCardinality,
		vocabulary.WithDescription("Number of values a variable may take"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithRange("zeroOrOne, one, zeroOrMore, oneOrMore"),
		vocabulary.WithIRI(Namespace+"cardinality"))

	vocabulary.Register(VariableTarget,
		vocabulary.WithDescription("Template object made variable"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(Namespace+"variable"))
}

func registerMeasurePredicates() {
	vocabulary.Register(MeasureValue,
		vocabulary.WithDescription("Numerical value of a measure"),
		vocabulary.WithDataType("float64"),
		vocabulary.WithIRI(OMNamespace+"hasNumericalValue"))

	vocabulary.Register(MeasureUnit,
		vocabulary.WithDescription("Unit of a measure"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(OMNamespace+"hasUnit"))
}

func registerProvenancePredicates() {
	vocabulary.Register(ActivityStartedAt,
		vocabulary.WithDescription("Activity start time"),
		vocabulary.WithDataType("time.Time"),
		vocabulary.WithIRI(ProvNamespace+"startedAtTime"))

	vocabulary.Register(ActivityEndedAt,
		vocabulary.WithDescription("Activity end time"),
		vocabulary.WithDataType("time.Time"),
		vocabulary.WithIRI(ProvNamespace+"endedAtTime"))

	vocabulary.Register(GeneratedBy,
		vocabulary.WithDescription("Activity that generated the object"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(ProvNamespace+"wasGeneratedBy"))
}

func init() {
	registerIdentityPredicates()
	registerComponentPredicates()
	registerCombinatorialPredicates()
	registerMeasurePredicates()
	registerProvenancePredicates()
}
