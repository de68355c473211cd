// Package sbol provides vocabulary predicates and class IRIs for the
// Synthetic Biology Open Language v3 (SBOL3) terms used by the Aquarium
// protocol documents.
//
// # Semstreams Integration
//
// This package follows semstreams vocabulary patterns:
//   - Predicates use three-level dotted notation (domain.category.property)
//   - Predicates are registered in init() using vocabulary.Register()
//   - IRI mappings use vocabulary.WithIRI() so the RDF exporter can translate
//     dotted predicates back to SBOL3 property IRIs
//
// # Predicate Domains
//
//   - Identity: displayId, name, description, namespace (sbol.identity.*)
//   - Component: type, feature, measure (sbol.component.*)
//   - Combinatorial: template, variable feature, cardinality (sbol.combinatorial.*)
//   - Measure: numerical value and unit from the OM ontology (om.measure.*)
//   - Provenance: activity timing and usage from PROV-O (prov.activity.*)
//
// Cardinality values for variable features are exported as IRIs:
//
//	CardinalityOne       -> http://sbols.org/v3#one
//	CardinalityOneOrMore -> http://sbols.org/v3#oneOrMore
package sbol
