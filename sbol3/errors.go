package sbol3

import "errors"

var (
	// ErrInvalidDisplayID is returned for displayIds that are not [A-Za-z_][A-Za-z0-9_]*.
	ErrInvalidDisplayID = errors.New("invalid displayId")

	// ErrInvalidIRI is returned for type, unit or namespace IRIs that are not absolute.
	ErrInvalidIRI = errors.New("invalid IRI")

	// ErrInvalidCardinality is returned for variable features with an unknown cardinality.
	ErrInvalidCardinality = errors.New("invalid cardinality")

	// ErrDuplicateIdentity is returned when two objects share an identity.
	ErrDuplicateIdentity = errors.New("duplicate identity")

	// ErrNotTopLevel is returned when a child object is added to a document directly.
	ErrNotTopLevel = errors.New("object is not top-level")

	// ErrOwnership is returned when an object is listed under an owner that did not adopt it.
	ErrOwnership = errors.New("object owned by another parent")

	// ErrUnresolvedReference is returned when a reference into the document
	// namespace does not resolve to an object in the document.
	ErrUnresolvedReference = errors.New("unresolved reference")
)
