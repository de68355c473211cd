package sbol3

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/aquariumbio/aquarium-opil/export"
	vocab "github.com/aquariumbio/aquarium-opil/vocabulary/sbol"
)

// Object is any SBOL3 identified object.
type Object interface {
	// Base returns the shared identity properties.
	Base() *Identified

	// Identity returns the object's IRI.
	Identity() string

	// TypeIRIs returns the rdf:type assertions.
	TypeIRIs() []string

	// Properties returns class-specific triples with dotted predicates.
	Properties() []export.Triple

	// Children returns the objects this object owns.
	Children() []Object
}

// Validator is implemented by objects with class-specific constraints.
type Validator interface {
	Validate() error
}

// Referrer is implemented by objects that point at other objects they do not own.
type Referrer interface {
	References() []Object
}

var displayIDPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Identified holds the properties every SBOL3 object has. Embed it by value
// and call Init from the constructor.
type Identified struct {
	Name        string
	Description string

	// GeneratedBy lists activities that produced the object.
	GeneratedBy []Object

	displayID string
	namespace string
	parent    Object
}

// Init sets the displayId.
func (i *Identified) Init(displayID string) {
	i.displayID = displayID
}

// Base returns i.
func (i *Identified) Base() *Identified {
	return i
}

// DisplayID returns the local identifier.
func (i *Identified) DisplayID() string {
	return i.displayID
}

// Namespace returns the namespace of a top-level object, or of the
// top-level ancestor for a child.
func (i *Identified) Namespace() string {
	if i.parent != nil {
		return i.parent.Base().Namespace()
	}
	return i.namespace
}

// SetNamespace sets the namespace of a top-level object.
func (i *Identified) SetNamespace(namespace string) {
	i.namespace = strings.TrimSuffix(namespace, "/")
}

// Parent returns the owning object, or nil for a top-level object.
func (i *Identified) Parent() Object {
	return i.parent
}

// IsTopLevel reports whether the object has no owner.
func (i *Identified) IsTopLevel() bool {
	return i.parent == nil
}

// Identity returns the compliant IRI of the object.
func (i *Identified) Identity() string {
	if i.parent != nil {
		return i.parent.Identity() + "/" + i.displayID
	}
	return i.namespace + "/" + i.displayID
}

// Adopt makes child owned by parent. A child without a displayId is named
// class followed by its 1-based position among siblings of that class.
func Adopt(parent, child Object, class string, position int) {
	base := child.Base()
	base.parent = parent
	if base.displayID == "" {
		base.displayID = class + strconv.Itoa(position)
	}
}

// CheckIRI returns ErrInvalidIRI unless iri is an absolute IRI.
func CheckIRI(field, iri string) error {
	u, err := url.Parse(iri)
	if err != nil || u.Scheme == "" || (u.Host == "" && u.Opaque == "") {
		return fmt.Errorf("%w: %s %q", ErrInvalidIRI, field, iri)
	}
	return nil
}

// identityTriples returns displayId, namespace, name, description and provenance.
func identityTriples(obj Object) []export.Triple {
	base := obj.Base()
	id := obj.Identity()

	triples := []export.Triple{
		{Subject: id, Predicate: vocab.IdentityDisplayID, Object: base.displayID},
	}
	if base.IsTopLevel() {
		triples = append(triples, export.Triple{Subject: id, Predicate: vocab.IdentityNamespace, Object: export.IRI(base.namespace)})
	}
	if base.Name != "" {
		triples = append(triples, export.Triple{Subject: id, Predicate: vocab.IdentityName, Object: base.Name})
	}
	if base.Description != "" {
		triples = append(triples, export.Triple{Subject: id, Predicate: vocab.IdentityDescription, Object: base.Description})
	}
	for _, activity := range base.GeneratedBy {
		triples = append(triples, export.Triple{Subject: id, Predicate: vocab.GeneratedBy, Object: export.IRI(activity.Identity())})
	}
	return triples
}

// RefTriples converts objects to IRI triples for one predicate.
func RefTriples(subject, predicate string, objects ...Object) []export.Triple {
	triples := make([]export.Triple, 0, len(objects))
	for _, obj := range objects {
		if obj == nil {
			continue
		}
		triples = append(triples, export.Triple{Subject: subject, Predicate: predicate, Object: export.IRI(obj.Identity())})
	}
	return triples
}
