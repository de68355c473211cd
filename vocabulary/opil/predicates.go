package opil

import "github.com/c360studio/semstreams/vocabulary"

// Protocol predicates describe a protocol interface.
const (
	// ProtocolAllowedSamples links a protocol to the sample sets it accepts.
	ProtocolAllowedSamples = "opil.protocol.allowed_samples"

	// ProtocolMeasurementType links a protocol to its measurement types.
	ProtocolMeasurementType = "opil.protocol.measurement_type"

	// ProtocolParameter links a protocol to its parameters.
	ProtocolParameter = "opil.protocol.parameter"
)

// MeasurementTypeType is the ontology term (e.g. an NCIT class) of a measurement.
const MeasurementTypeType = "opil.measurement.type"

// Parameter predicates describe parameters and their default values.
const (
	// ParameterRequired marks a parameter as mandatory.
	ParameterRequired = "opil.parameter.required"

	// ParameterDefaultValue links a parameter to its default value object.
	ParameterDefaultValue = "opil.parameter.default_value"

	// ParameterAllowedValue is one allowed value of an enumerated parameter.
	ParameterAllowedValue = "opil.parameter.allowed_value"

	// ValueLiteral is the literal held by a parameter value.
	ValueLiteral = "opil.value.literal"

	// ValueMeasure links a measure value to its owned measure.
	ValueMeasure = "opil.value.measure"
)

func registerProtocolPredicates() {
	vocabulary.Register(ProtocolAllowedSamples,
		vocabulary.WithDescription("Sample set accepted by the protocol"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(Namespace+"allowedSamples"))

	vocabulary.Register(ProtocolMeasurementType,
		vocabulary.WithDescription("Measurement type produced by the protocol"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(Namespace+"protocolMeasurementType"))

	vocabulary.Register(ProtocolParameter,
		vocabulary.WithDescription("Parameter of the protocol"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(Namespace+"hasParameter"))

	vocabulary.Register(MeasurementTypeType,
		vocabulary.WithDescription("Ontology term for the measurement"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(Namespace+"type"))
}

func registerParameterPredicates() {
	vocabulary.Register(ParameterRequired,
		vocabulary.WithDescription("Whether the parameter must be supplied"),
		vocabulary.WithDataType("bool"),
		vocabulary.WithIRI(Namespace+"required"))

	vocabulary.Register(ParameterDefaultValue,
		vocabulary.WithDescription("Default value of the parameter"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(Namespace+"defaultValue"))

	vocabulary.Register(ParameterAllowedValue,
		vocabulary.WithDescription("Allowed value of an enumerated parameter"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"allowedValue"))

	vocabulary.Register(ValueLiteral,
		vocabulary.WithDescription("Literal held by a parameter value"),
		vocabulary.WithDataType("any"),
		vocabulary.WithIRI(Namespace+"value"))

	vocabulary.Register(ValueMeasure,
		vocabulary.WithDescription("Measure held by a measure value"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(Namespace+"hasMeasure"))
}

func init() {
	registerProtocolPredicates()
	registerParameterPredicates()
}
