package export

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// XSD datatype IRIs used for typed literals.
const (
	XSDInteger  = XSDNamespace + "integer"
	XSDFloat    = XSDNamespace + "float"
	XSDBoolean  = XSDNamespace + "boolean"
	XSDDateTime = XSDNamespace + "dateTime"
)

// term is the serializer-neutral form of a triple object.
type term struct {
	isIRI    bool
	value    string
	datatype string
}

// newTerm converts a Go value into an RDF term.
// Floats are xsd:float, the datatype SBOL3 uses for om:hasNumericalValue.
func newTerm(obj any) term {
	switch v := obj.(type) {
	case IRI:
		return term{isIRI: true, value: string(v)}
	case string:
		return term{value: v}
	case int:
		return term{value: strconv.Itoa(v), datatype: XSDInteger}
	case int32:
		return term{value: strconv.FormatInt(int64(v), 10), datatype: XSDInteger}
	case int64:
		return term{value: strconv.FormatInt(v, 10), datatype: XSDInteger}
	case float32:
		return term{value: formatFloat(float64(v), 32), datatype: XSDFloat}
	case float64:
		return term{value: formatFloat(v, 64), datatype: XSDFloat}
	case bool:
		return term{value: strconv.FormatBool(v), datatype: XSDBoolean}
	case time.Time:
		return term{value: v.UTC().Format(time.RFC3339), datatype: XSDDateTime}
	default:
		return term{value: fmt.Sprintf("%v", v)}
	}
}

// formatFloat renders a float in xsd:float lexical space.
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}
	return strconv.FormatFloat(f, 'g', -1, bitSize)
}

// formatObject formats an object value for Turtle output.
func formatObject(obj any, c compactor) string {
	t := newTerm(obj)
	if t.isIRI {
		return c.turtle(t.value)
	}
	lit := fmt.Sprintf("\"%s\"", escapeString(t.value))
	if t.datatype != "" {
		lit += "^^" + c.turtle(t.datatype)
	}
	return lit
}

// formatObjectNTriples formats an object value for N-Triples output.
func formatObjectNTriples(obj any) string {
	t := newTerm(obj)
	if t.isIRI {
		return fmt.Sprintf("<%s>", t.value)
	}
	lit := fmt.Sprintf("\"%s\"", escapeString(t.value))
	if t.datatype != "" {
		lit += fmt.Sprintf("^^<%s>", t.datatype)
	}
	return lit
}

// formatObjectJSONLD formats an object value as a JSON-LD value.
// Integers, booleans and plain strings use native JSON; everything else is
// a value object so that NaN survives encoding.
func formatObjectJSONLD(obj any) any {
	t := newTerm(obj)
	switch {
	case t.isIRI:
		return map[string]string{"@id": t.value}
	case t.datatype == "":
		return t.value
	case t.datatype == XSDInteger:
		n, err := strconv.ParseInt(t.value, 10, 64)
		if err == nil {
			return n
		}
	case t.datatype == XSDBoolean:
		return t.value == "true"
	}
	return map[string]string{"@value": t.value, "@type": t.datatype}
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}

// localNamePattern is a conservative subset of the Turtle PN_LOCAL production
// that is also a valid XML NCName.
var localNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_\-]*$`)

type namespaceEntry struct {
	prefix string
	iri    string
}

// compactor rewrites IRIs as prefixed names where a prefix covers them.
type compactor struct {
	namespaces []namespaceEntry
}

// newCompactor orders namespaces longest first so the most specific prefix wins.
func newCompactor(prefixes map[string]string) compactor {
	entries := make([]namespaceEntry, 0, len(prefixes))
	for _, p := range sortedPrefixes(prefixes) {
		entries = append(entries, namespaceEntry{prefix: p, iri: prefixes[p]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].iri) > len(entries[j].iri)
	})
	return compactor{namespaces: entries}
}

// split returns the prefix and local name for iri, if a prefix covers it.
func (c compactor) split(iri string) (prefix, local string, ok bool) {
	for _, ns := range c.namespaces {
		if !strings.HasPrefix(iri, ns.iri) {
			continue
		}
		local = strings.TrimPrefix(iri, ns.iri)
		if localNamePattern.MatchString(local) {
			return ns.prefix, local, true
		}
	}
	return "", "", false
}

// compact returns "prefix:local" or the IRI unchanged.
func (c compactor) compact(iri string) string {
	if prefix, local, ok := c.split(iri); ok {
		return prefix + ":" + local
	}
	return iri
}

// turtle returns "prefix:local" or "<iri>".
func (c compactor) turtle(iri string) string {
	if prefix, local, ok := c.split(iri); ok {
		return prefix + ":" + local
	}
	return fmt.Sprintf("<%s>", iri)
}
