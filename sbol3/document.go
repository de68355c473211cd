package sbol3

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aquariumbio/aquarium-opil/export"
)

// Document is an ordered collection of top-level objects sharing a default namespace.
type Document struct {
	namespace string
	objects   []Object
}

// NewDocument creates an empty document whose top-level objects default to namespace.
func NewDocument(namespace string) *Document {
	return &Document{namespace: strings.TrimSuffix(namespace, "/")}
}

// Namespace returns the default namespace, without a trailing slash.
func (d *Document) Namespace() string {
	return d.namespace
}

// Add appends a top-level object. Objects without a namespace take the
// document's. Add rejects child objects, bad displayIds and identities
// already present in the document.
func (d *Document) Add(obj Object) error {
	base := obj.Base()
	if !base.IsTopLevel() {
		return fmt.Errorf("%w: %s", ErrNotTopLevel, obj.Identity())
	}
	if base.namespace == "" {
		base.SetNamespace(d.namespace)
	}
	if err := CheckIRI("namespace", base.namespace); err != nil {
		return err
	}
	if !displayIDPattern.MatchString(base.displayID) {
		return fmt.Errorf("%w: %q", ErrInvalidDisplayID, base.displayID)
	}

	id := obj.Identity()
	if _, ok := d.Find(id); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateIdentity, id)
	}

	d.objects = append(d.objects, obj)
	return nil
}

// TopLevels returns the top-level objects in insertion order.
func (d *Document) TopLevels() []Object {
	return d.objects
}

// Find returns the object, top-level or child, with the given identity.
func (d *Document) Find(identity string) (Object, bool) {
	var found Object
	d.walk(func(obj, _ Object) bool {
		if obj.Identity() == identity {
			found = obj
			return false
		}
		return true
	})
	return found, found != nil
}

// walk visits every object depth-first with its listed owner until fn returns false.
func (d *Document) walk(fn func(obj, owner Object) bool) {
	var visit func(obj, owner Object) bool
	visit = func(obj, owner Object) bool {
		if !fn(obj, owner) {
			return false
		}
		for _, child := range obj.Children() {
			if !visit(child, obj) {
				return false
			}
		}
		return true
	}
	for _, obj := range d.objects {
		if !visit(obj, nil) {
			return
		}
	}
}

// Validate checks displayIds, identity uniqueness, ownership, class
// constraints and that references resolve. A reference to an object that is
// not in the document is unresolved unless the object has a namespace other
// than the document's.
// All problems are reported together.
func (d *Document) Validate() error {
	var errs []error
	seen := make(map[string]bool)
	var referrers []Referrer

	d.walk(func(obj, owner Object) bool {
		base := obj.Base()
		id := obj.Identity()

		if owner != nil && base.parent != owner {
			errs = append(errs, fmt.Errorf("%w: %s", ErrOwnership, id))
		}
		if !displayIDPattern.MatchString(base.displayID) {
			errs = append(errs, fmt.Errorf("%w: %q (%s)", ErrInvalidDisplayID, base.displayID, id))
		}
		if seen[id] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateIdentity, id))
		}
		seen[id] = true

		if v, ok := obj.(Validator); ok {
			if err := v.Validate(); err != nil {
				errs = append(errs, err)
			}
		}
		if r, ok := obj.(Referrer); ok {
			referrers = append(referrers, r)
		}
		for _, activity := range base.GeneratedBy {
			referrers = append(referrers, staticRefs{activity})
		}
		return true
	})

	for _, r := range referrers {
		for _, ref := range r.References() {
			if ref == nil {
				continue
			}
			refID := ref.Identity()
			if seen[refID] {
				continue
			}
			// Objects outside the document are external only when they carry
			// a namespace of their own.
			if ns := ref.Base().Namespace(); ns == "" || ns == d.namespace {
				errs = append(errs, fmt.Errorf("%w: %s", ErrUnresolvedReference, refID))
			}
		}
	}

	return errors.Join(errs...)
}

// staticRefs adapts a fixed reference list to Referrer.
type staticRefs []Object

func (s staticRefs) References() []Object { return s }

// Entities flattens the document depth-first: each top-level object is
// followed by its descendants.
func (d *Document) Entities() []export.Entity {
	entities := make([]export.Entity, 0, len(d.objects))
	d.walk(func(obj, _ Object) bool {
		id := obj.Identity()
		triples := identityTriples(obj)
		for _, t := range obj.Properties() {
			t.Subject = id
			triples = append(triples, t)
		}
		entities = append(entities, export.Entity{
			ID:      id,
			Types:   obj.TypeIRIs(),
			Triples: triples,
		})
		return true
	})
	return entities
}

// ClassCounts returns the number of objects per rdf:type IRI.
func (d *Document) ClassCounts() map[string]int {
	counts := make(map[string]int)
	d.walk(func(obj, _ Object) bool {
		for _, t := range obj.TypeIRIs() {
			counts[t]++
		}
		return true
	})
	return counts
}

// Exporter validates the document and loads its entities into a new exporter.
func (d *Document) Exporter() (*export.RDFExporter, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	exporter := export.NewRDFExporter()
	exporter.AddEntities(d.Entities()...)
	return exporter, nil
}

// Write validates the document and serializes it to path.
// It returns the number of bytes written.
func (d *Document) Write(path string, format export.Format) (int, error) {
	exporter, err := d.Exporter()
	if err != nil {
		return 0, err
	}
	return exporter.WriteFile(path, format)
}
