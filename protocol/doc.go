// Package protocol is the OPIL layer on top of sbol3: protocol interfaces,
// the measurement types a protocol produces, sample sets, and typed
// parameters with optional default values.
//
// All types embed sbol3.Identified and satisfy sbol3.Object, so a
// ProtocolInterface is added to an sbol3.Document like any other top-level
// object and is validated and serialized with it.
package protocol
