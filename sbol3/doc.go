// Package sbol3 is a small SBOL3 object model: identified objects with
// namespace-derived identities, the component and combinatorial-derivation
// classes needed to describe a sample space, and a Document that validates
// and flattens its objects into export.Entity values.
//
// Identities follow SBOL3 compliant-URI rules:
//
//	top-level: <namespace>/<displayId>
//	child:     <parent identity>/<displayId>
//
// Children added without a displayId are named <ClassName><n>, numbered per
// owner, e.g. culture_conditions/VariableFeature3.
//
// Objects are assembled freely and checked as a whole by Document.Validate,
// which reports every problem it finds via errors.Join.
package sbol3
