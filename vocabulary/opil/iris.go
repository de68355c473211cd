package opil

// Namespace is the OPIL ontology namespace.
const Namespace = "http://bbn.com/synbio/opil#"

// Class IRIs for protocol interfaces and their members.
const (
	ClassProtocolInterface = Namespace + "ProtocolInterface"
	ClassMeasurementType   = Namespace + "MeasurementType"

	// ClassSampleSet is a combinatorial derivation describing allowed samples.
	ClassSampleSet = Namespace + "SampleSet"
)

// Parameter class IRIs.
const (
	ClassBooleanParameter    = Namespace + "BooleanParameter"
	ClassIntegerParameter    = Namespace + "IntegerParameter"
	ClassMeasureParameter    = Namespace + "MeasureParameter"
	ClassEnumeratedParameter = Namespace + "EnumeratedParameter"
	ClassStringParameter     = Namespace + "StringParameter"
	ClassURIParameter        = Namespace + "URIParameter"
)

// Parameter value class IRIs.
const (
	ClassBooleanValue    = Namespace + "BooleanValue"
	ClassIntegerValue    = Namespace + "IntegerValue"
	ClassMeasureValue    = Namespace + "MeasureValue"
	ClassEnumeratedValue = Namespace + "EnumeratedValue"
	ClassStringValue     = Namespace + "StringValue"
	ClassURIValue        = Namespace + "URIValue"
)
