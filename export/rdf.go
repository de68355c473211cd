// Package export serializes protocol-description graphs as RDF.
//
// Entities carry dotted predicates (see vocabulary/sbol and vocabulary/opil);
// the exporter translates them to their standard IRIs through the semstreams
// vocabulary registry at serialization time.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/c360studio/semstreams/vocabulary"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"

	// FormatRDFXML produces RDF/XML (.xml) output.
	FormatRDFXML Format = "rdfxml"
)

var (
	// ErrUnsupportedFormat is returned for formats missing from FormatRegistry.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrUnmappedPredicate is returned when a dotted predicate has no registered IRI.
	ErrUnmappedPredicate = errors.New("predicate has no IRI mapping")
)

// IRI marks an object as a resource reference rather than a string literal.
type IRI string

// Triple represents a semantic triple for export.
// Predicate is either a registered dotted predicate or an absolute IRI.
type Triple struct {
	Subject   string
	Predicate string
	Object    any
}

// Entity is one RDF subject with its rdf:type assertions and property triples.
type Entity struct {
	ID      string
	Types   []string
	Triples []Triple
}

// RDFExporter accumulates entities and serializes them to RDF.
type RDFExporter struct {
	entities []Entity
	prefixes map[string]string
}

// NewRDFExporter creates a new RDF exporter with the default prefixes.
func NewRDFExporter() *RDFExporter {
	return &RDFExporter{
		entities: make([]Entity, 0),
		prefixes: defaultPrefixes(),
	}
}

// defaultPrefixes returns the standard namespace prefixes for protocol documents.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":  RDFNamespace,
		"rdfs": "http://www.w3.org/2000/01/rdf-schema#",
		"xsd":  XSDNamespace,
		"sbol": "http://sbols.org/v3#",
		"om":   "http://www.ontology-of-units-of-measure.org/resource/om-2/",
		"opil": "http://bbn.com/synbio/opil#",
		"prov": "http://www.w3.org/ns/prov#",
	}
}

// Namespaces used by the serializers themselves.
const (
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"
	rdfType      = RDFNamespace + "type"
)

// SetPrefix sets a namespace prefix.
func (e *RDFExporter) SetPrefix(prefix, iri string) {
	e.prefixes[prefix] = iri
}

// Prefixes returns a copy of the prefix table.
func (e *RDFExporter) Prefixes() map[string]string {
	out := make(map[string]string, len(e.prefixes))
	for k, v := range e.prefixes {
		out[k] = v
	}
	return out
}

// AddEntity adds an entity to be exported.
func (e *RDFExporter) AddEntity(entity Entity) {
	e.entities = append(e.entities, entity)
}

// AddEntities adds entities in order.
func (e *RDFExporter) AddEntities(entities ...Entity) {
	e.entities = append(e.entities, entities...)
}

// Len returns the number of entities queued for export.
func (e *RDFExporter) Len() int {
	return len(e.entities)
}

// TripleCount returns the number of RDF statements the entities expand to,
// counting each rdf:type assertion.
func (e *RDFExporter) TripleCount() int {
	n := 0
	for _, entity := range e.entities {
		n += len(entity.Types) + len(entity.Triples)
	}
	return n
}

// Export serializes all entities to the specified format.
func (e *RDFExporter) Export(format Format) (string, error) {
	if err := e.checkPredicates(); err != nil {
		return "", err
	}

	switch format {
	case FormatTurtle:
		return e.toTurtle(), nil
	case FormatNTriples:
		return e.toNTriples(), nil
	case FormatJSONLD:
		return e.toJSONLD()
	case FormatRDFXML:
		return e.toRDFXML()
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// WriteFile serializes to format and writes the result to path, creating the
// parent directory if needed. It returns the number of bytes written.
func (e *RDFExporter) WriteFile(path string, format Format) (int, error) {
	out, err := e.Export(format)
	if err != nil {
		return 0, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return len(out), nil
}

// checkPredicates fails on the first predicate that cannot be turned into an IRI.
func (e *RDFExporter) checkPredicates() error {
	for _, entity := range e.entities {
		for _, triple := range entity.Triples {
			if _, ok := PredicateIRI(triple.Predicate); !ok {
				return fmt.Errorf("%w: %s (subject %s)", ErrUnmappedPredicate, triple.Predicate, entity.ID)
			}
		}
	}
	return nil
}

// PredicateIRI returns the standard IRI for a dotted predicate.
// Absolute IRIs are returned unchanged.
func PredicateIRI(predicate string) (string, bool) {
	if strings.Contains(predicate, "://") {
		return predicate, true
	}
	meta := vocabulary.GetPredicateMetadata(predicate)
	if meta == nil || meta.StandardIRI == "" {
		return "", false
	}
	return meta.StandardIRI, true
}

// mustPredicateIRI is used after checkPredicates has passed.
func mustPredicateIRI(predicate string) string {
	iri, _ := PredicateIRI(predicate)
	return iri
}

// toTurtle serializes to Turtle format.
func (e *RDFExporter) toTurtle() string {
	w := NewTurtleWriter()
	for prefix, iri := range e.prefixes {
		w.SetPrefix(prefix, iri)
	}
	w.WritePrefixes()

	for _, entity := range e.entities {
		w.WriteSubject(entity.ID)
		groups := groupTriples(entity.Triples)
		w.WriteTypes(entity.Types, len(groups) == 0)
		for i, group := range groups {
			w.WritePredicate(group.predicate, group.objects, i == len(groups)-1)
		}
		w.WriteBlank()
	}

	return w.String()
}

// predicateGroup holds all objects of one predicate in first-seen order.
type predicateGroup struct {
	predicate string
	objects   []any
}

// groupTriples groups objects by predicate IRI, keeping predicate order stable.
func groupTriples(triples []Triple) []predicateGroup {
	groups := make([]predicateGroup, 0, len(triples))
	index := make(map[string]int, len(triples))
	for _, triple := range triples {
		iri := mustPredicateIRI(triple.Predicate)
		if i, ok := index[iri]; ok {
			groups[i].objects = append(groups[i].objects, triple.Object)
			continue
		}
		index[iri] = len(groups)
		groups = append(groups, predicateGroup{predicate: iri, objects: []any{triple.Object}})
	}
	return groups
}

// toNTriples serializes to N-Triples format.
func (e *RDFExporter) toNTriples() string {
	w := NewNTriplesWriter()

	for _, entity := range e.entities {
		for _, typeIRI := range entity.Types {
			w.WriteTypeTriple(entity.ID, typeIRI)
		}
		for _, triple := range entity.Triples {
			w.WriteTriple(entity.ID, mustPredicateIRI(triple.Predicate), triple.Object)
		}
	}

	return w.String()
}

// toJSONLD serializes to JSON-LD format with the prefix table as @context.
func (e *RDFExporter) toJSONLD() (string, error) {
	w := NewJSONLDWriter()
	w.SetContext(e.prefixes)
	c := newCompactor(e.prefixes)

	for _, entity := range e.entities {
		types := make([]string, 0, len(entity.Types))
		for _, t := range entity.Types {
			types = append(types, c.compact(t))
		}

		properties := make(map[string]any)
		for _, group := range groupTriples(entity.Triples) {
			values := make([]any, 0, len(group.objects))
			for _, obj := range group.objects {
				values = append(values, formatObjectJSONLD(obj))
			}
			key := c.compact(group.predicate)
			if len(values) == 1 {
				properties[key] = values[0]
			} else {
				properties[key] = values
			}
		}
		w.AddNode(entity.ID, types, properties)
	}

	return w.Marshal()
}

// sortedPrefixes returns prefix names in lexical order.
func sortedPrefixes(prefixes map[string]string) []string {
	keys := make([]string, 0, len(prefixes))
	for k := range prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
