package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// toRDFXML serializes to RDF/XML with one rdf:Description per entity.
// Every namespace is declared on the root element; predicate IRIs that no
// prefix covers get a generated nsN prefix.
func (e *RDFExporter) toRDFXML() (string, error) {
	prefixes := e.Prefixes()
	c := newCompactor(prefixes)

	qnames := make(map[string]string)
	generated := 0
	qname := func(iri string) (string, error) {
		if q, ok := qnames[iri]; ok {
			return q, nil
		}
		if prefix, local, ok := c.split(iri); ok {
			qnames[iri] = prefix + ":" + local
			return qnames[iri], nil
		}
		ns, local := splitIRI(iri)
		if ns == "" || !localNamePattern.MatchString(local) {
			return "", fmt.Errorf("predicate %s cannot be written as an XML element name", iri)
		}
		generated++
		prefix := fmt.Sprintf("ns%d", generated)
		prefixes[prefix] = ns
		c = newCompactor(prefixes)
		qnames[iri] = prefix + ":" + local
		return qnames[iri], nil
	}

	// Resolve every predicate first so the root carries all declarations.
	for _, entity := range e.entities {
		for _, triple := range entity.Triples {
			if _, err := qname(mustPredicateIRI(triple.Predicate)); err != nil {
				return "", err
			}
		}
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	root := xml.StartElement{Name: xml.Name{Local: "rdf:RDF"}}
	for _, prefix := range sortedPrefixes(prefixes) {
		root.Attr = append(root.Attr, xml.Attr{
			Name:  xml.Name{Local: "xmlns:" + prefix},
			Value: prefixes[prefix],
		})
	}
	if err := enc.EncodeToken(root); err != nil {
		return "", fmt.Errorf("encode RDF/XML: %w", err)
	}

	for _, entity := range e.entities {
		if err := writeDescription(enc, entity, qnames); err != nil {
			return "", fmt.Errorf("encode RDF/XML: %w", err)
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return "", fmt.Errorf("encode RDF/XML: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return "", fmt.Errorf("encode RDF/XML: %w", err)
	}
	buf.WriteString("\n")
	return buf.String(), nil
}

// writeDescription writes one subject as an rdf:Description element.
func writeDescription(enc *xml.Encoder, entity Entity, qnames map[string]string) error {
	desc := xml.StartElement{
		Name: xml.Name{Local: "rdf:Description"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "rdf:about"}, Value: entity.ID}},
	}
	if err := enc.EncodeToken(desc); err != nil {
		return err
	}

	for _, typeIRI := range entity.Types {
		if err := writeResource(enc, "rdf:type", typeIRI); err != nil {
			return err
		}
	}

	for _, triple := range entity.Triples {
		name := qnames[mustPredicateIRI(triple.Predicate)]
		t := newTerm(triple.Object)
		if t.isIRI {
			if err := writeResource(enc, name, t.value); err != nil {
				return err
			}
			continue
		}

		start := xml.StartElement{Name: xml.Name{Local: name}}
		if t.datatype != "" {
			start.Attr = []xml.Attr{{Name: xml.Name{Local: "rdf:datatype"}, Value: t.datatype}}
		}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		if err := enc.EncodeToken(xml.CharData(t.value)); err != nil {
			return err
		}
		if err := enc.EncodeToken(start.End()); err != nil {
			return err
		}
	}

	return enc.EncodeToken(desc.End())
}

// writeResource writes a property element whose object is a resource.
func writeResource(enc *xml.Encoder, name, iri string) error {
	start := xml.StartElement{
		Name: xml.Name{Local: name},
		Attr: []xml.Attr{{Name: xml.Name{Local: "rdf:resource"}, Value: iri}},
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}

// splitIRI splits an IRI after its last '#' or '/'.
func splitIRI(iri string) (namespace, local string) {
	i := strings.LastIndexAny(iri, "#/")
	if i < 0 || i == len(iri)-1 {
		return "", ""
	}
	return iri[:i+1], iri[i+1:]
}
