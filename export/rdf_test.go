package export_test

import (
	"encoding/xml"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aquariumbio/aquarium-opil/export"
	"github.com/aquariumbio/aquarium-opil/vocabulary/opil"
	"github.com/aquariumbio/aquarium-opil/vocabulary/sbol"
)

const subject = "http://aquarium.bio/htc_design"

func sampleExporter() *export.RDFExporter {
	exporter := export.NewRDFExporter()
	exporter.AddEntity(export.Entity{
		ID:    subject,
		Types: []string{sbol.ClassComponent},
		Triples: []export.Triple{
			{Subject: subject, Predicate: sbol.IdentityDisplayID, Object: "htc_design"},
			{Subject: subject, Predicate: sbol.IdentityDescription, Object: "HTC Sample Design"},
			{Subject: subject, Predicate: sbol.ComponentType, Object: export.IRI(sbol.ClassComponent)},
			{Subject: subject, Predicate: sbol.ComponentFeature, Object: export.IRI(subject + "/media")},
			{Subject: subject, Predicate: sbol.ComponentFeature, Object: export.IRI(subject + "/strain")},
		},
	})
	exporter.AddEntity(export.Entity{
		ID:    subject + "/inducer/inducer_concentration",
		Types: []string{sbol.ClassMeasure},
		Triples: []export.Triple{
			{Predicate: sbol.MeasureValue, Object: math.NaN()},
			{Predicate: sbol.MeasureUnit, Object: export.IRI("http://purl.obolibrary.org/obo/UO_0000278")},
		},
	})
	return exporter
}

func TestExportTurtle(t *testing.T) {
	output, err := sampleExporter().Export(export.FormatTurtle)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	for _, want := range []string{
		"@prefix sbol: <http://sbols.org/v3#> .",
		"<http://aquarium.bio/htc_design>\n    a sbol:Component ;",
		`sbol:displayId "htc_design" ;`,
		"sbol:type sbol:Component ;",
		"sbol:hasFeature <http://aquarium.bio/htc_design/media>, <http://aquarium.bio/htc_design/strain> .",
		`om:hasNumericalValue "NaN"^^xsd:float ;`,
		"om:hasUnit <http://purl.obolibrary.org/obo/UO_0000278> .",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Turtle output missing %q\n%s", want, output)
		}
	}
}

func TestExportTurtlePrefixesSorted(t *testing.T) {
	output, err := sampleExporter().Export(export.FormatTurtle)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var prefixes []string
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, "@prefix ") {
			prefixes = append(prefixes, strings.Fields(line)[1])
		}
	}
	for i := 1; i < len(prefixes); i++ {
		if prefixes[i-1] > prefixes[i] {
			t.Errorf("prefixes not sorted: %v", prefixes)
		}
	}
}

func TestExportDeterministic(t *testing.T) {
	for _, format := range []export.Format{export.FormatTurtle, export.FormatNTriples, export.FormatJSONLD, export.FormatRDFXML} {
		t.Run(string(format), func(t *testing.T) {
			first, err := sampleExporter().Export(format)
			if err != nil {
				t.Fatalf("Export failed: %v", err)
			}
			for i := 0; i < 5; i++ {
				again, err := sampleExporter().Export(format)
				if err != nil {
					t.Fatalf("Export failed: %v", err)
				}
				if again != first {
					t.Fatalf("output differs between runs")
				}
			}
		})
	}
}

func TestExportNTriples(t *testing.T) {
	exporter := sampleExporter()
	output, err := exporter.Export(export.FormatNTriples)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != exporter.TripleCount() {
		t.Errorf("got %d lines, want %d", len(lines), exporter.TripleCount())
	}
	for _, line := range lines {
		if !strings.HasSuffix(line, " .") {
			t.Errorf("N-Triple line should end with ' .': %s", line)
		}
	}

	want := `<http://aquarium.bio/htc_design/inducer/inducer_concentration> <http://www.ontology-of-units-of-measure.org/resource/om-2/hasNumericalValue> "NaN"^^<http://www.w3.org/2001/XMLSchema#float> .`
	if !strings.Contains(output, want) {
		t.Errorf("N-Triples output missing %q", want)
	}
}

func TestExportJSONLD(t *testing.T) {
	output, err := sampleExporter().Export(export.FormatJSONLD)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	doc, err := export.ExpandJSONLD(output)
	if err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc.Context["sbol"] != sbol.Namespace {
		t.Errorf("@context sbol = %v", doc.Context["sbol"])
	}
	if len(doc.Graph) != 2 {
		t.Fatalf("got %d nodes, want 2", len(doc.Graph))
	}

	node := doc.Graph[0]
	if node.ID != subject {
		t.Errorf("@id = %q", node.ID)
	}
	if len(node.Type) != 1 || node.Type[0] != "sbol:Component" {
		t.Errorf("@type = %v", node.Type)
	}
	features, ok := node.Properties["sbol:hasFeature"].([]any)
	if !ok || len(features) != 2 {
		t.Errorf("sbol:hasFeature = %#v", node.Properties["sbol:hasFeature"])
	}

	value, ok := doc.Graph[1].Properties["om:hasNumericalValue"].(map[string]any)
	if !ok || value["@value"] != "NaN" {
		t.Errorf("om:hasNumericalValue = %#v", doc.Graph[1].Properties["om:hasNumericalValue"])
	}
}

func TestExportRDFXML(t *testing.T) {
	output, err := sampleExporter().Export(export.FormatRDFXML)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if !strings.HasPrefix(output, "<?xml") {
		t.Error("RDF/XML output should start with an XML declaration")
	}
	for _, want := range []string{
		`xmlns:sbol="http://sbols.org/v3#"`,
		`<rdf:Description rdf:about="http://aquarium.bio/htc_design">`,
		`<rdf:type rdf:resource="http://sbols.org/v3#Component"></rdf:type>`,
		`<sbol:displayId>htc_design</sbol:displayId>`,
		`<om:hasNumericalValue rdf:datatype="http://www.w3.org/2001/XMLSchema#float">NaN</om:hasNumericalValue>`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("RDF/XML output missing %q\n%s", want, output)
		}
	}

	// Must be well-formed.
	dec := xml.NewDecoder(strings.NewReader(output))
	for {
		_, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			t.Fatalf("RDF/XML not well-formed: %v", err)
		}
	}
}

func TestExportRDFXMLGeneratesPrefix(t *testing.T) {
	exporter := export.NewRDFExporter()
	exporter.AddEntity(export.Entity{
		ID: subject,
		Triples: []export.Triple{
			{Predicate: "http://example.org/terms/colour", Object: "blue"},
		},
	})

	output, err := exporter.Export(export.FormatRDFXML)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(output, `xmlns:ns1="http://example.org/terms/"`) {
		t.Errorf("expected generated namespace declaration\n%s", output)
	}
	if !strings.Contains(output, "<ns1:colour>blue</ns1:colour>") {
		t.Errorf("expected generated qualified name\n%s", output)
	}
}

func TestExportObjectTypes(t *testing.T) {
	exporter := export.NewRDFExporter()
	started := time.Date(2021, 3, 4, 10, 30, 0, 0, time.UTC)
	exporter.AddEntity(export.Entity{
		ID: "http://aquarium.bio/htc/replicates",
		Triples: []export.Triple{
			{Predicate: opil.ValueLiteral, Object: 3},
			{Predicate: opil.ParameterRequired, Object: true},
			{Predicate: sbol.IdentityName, Object: "quote \" and\nnewline"},
			{Predicate: sbol.ActivityStartedAt, Object: started},
			{Predicate: sbol.MeasureValue, Object: 24.5},
		},
	})

	output, err := exporter.Export(export.FormatTurtle)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	for _, want := range []string{
		`opil:value "3"^^xsd:integer`,
		`opil:required "true"^^xsd:boolean`,
		`sbol:name "quote \" and\nnewline"`,
		`prov:startedAtTime "2021-03-04T10:30:00Z"^^xsd:dateTime`,
		`om:hasNumericalValue "24.5"^^xsd:float`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Turtle output missing %q\n%s", want, output)
		}
	}
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := sampleExporter().Export("unknown")
	if !errors.Is(err, export.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestUnmappedPredicate(t *testing.T) {
	exporter := export.NewRDFExporter()
	exporter.AddEntity(export.Entity{
		ID:      subject,
		Triples: []export.Triple{{Predicate: "not.registered.anywhere", Object: "x"}},
	})

	_, err := exporter.Export(export.FormatTurtle)
	if !errors.Is(err, export.ErrUnmappedPredicate) {
		t.Errorf("expected ErrUnmappedPredicate, got %v", err)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "jellyfish_htc.ttl")

	n, err := sampleExporter().WriteFile(path, export.FormatTurtle)
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(data) == 0 || len(data) != n {
		t.Errorf("wrote %d bytes, file has %d", n, len(data))
	}
}
