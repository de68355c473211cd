// Package opil provides vocabulary predicates and class IRIs for the Open
// Protocol Interface Language (OPIL), the ontology used to describe the
// inputs, sample space and measurements of a lab protocol.
//
// Predicates use semstreams dotted notation and are registered in init()
// with their OPIL property IRIs, alongside the SBOL3 terms registered by
// vocabulary/sbol.
package opil
