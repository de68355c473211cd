// Package htc builds the OPIL protocol interface for the Aquarium
// high-throughput culturing workflow and writes it as an RDF document.
package htc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aquariumbio/aquarium-opil/export"
	"github.com/aquariumbio/aquarium-opil/protocol"
	"github.com/aquariumbio/aquarium-opil/sbol3"
	"github.com/aquariumbio/aquarium-opil/vocabulary/sbol"
)

// DefaultNamespace is the homespace of generated identities.
const DefaultNamespace = "http://aquarium.bio/"

// Unit and ontology term IRIs used by the HTC document.
const (
	UnitMillimolar = "http://purl.obolibrary.org/obo/UO_0000278"
	UnitHour       = "http://purl.obolibrary.org/obo/UO_0000032"

	TermMedia         = "https://identifiers.org/ncit:C85504"
	TermStrain        = "https://identifiers.org/ncit:C14419"
	TermInducer       = "https://identifiers.org/ncit:C120268"
	TermAntibiotic    = "https://identifiers.org/ncit:C258"
	TermFlowCytometry = "https://identifiers.org/ncit:C78806"
	TermPlateReader   = "https://identifiers.org/ncit:C70661"
)

// Options configures a Generator.
type Options struct {
	// Namespace defaults to DefaultNamespace.
	Namespace string

	// Parameters emits the default parameter set when true.
	Parameters bool

	// Provenance records a prov:Activity for the run.
	Provenance bool

	// OutputPath is the file to write; empty builds and validates only.
	OutputPath string

	// Format defaults to Turtle.
	Format export.Format

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

// Result describes one generation run.
type Result struct {
	Document *sbol3.Document
	Protocol *protocol.Interface

	// Path is empty when nothing was written.
	Path   string
	Format export.Format
	Bytes  int

	Entities int
	Triples  int
	Duration time.Duration
}

// Generator assembles the HTC document. Each Generate call starts from an
// empty document.
type Generator struct {
	opts   Options
	logger *slog.Logger
	doc    *sbol3.Document
}

// NewGenerator creates a generator.
func NewGenerator(opts Options, logger *slog.Logger) *Generator {
	if opts.Namespace == "" {
		opts.Namespace = DefaultNamespace
	}
	if opts.Format == "" {
		opts.Format = export.FormatTurtle
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		opts:   opts,
		logger: logger,
		doc:    sbol3.NewDocument(opts.Namespace),
	}
}

// Document returns the document being built.
func (g *Generator) Document() *sbol3.Document {
	return g.doc
}

// templateFeature creates a named, described template feature.
func templateFeature(id, name, description, typeIRI string) *sbol3.LocalSubComponent {
	f := sbol3.NewLocalSubComponent(id, typeIRI)
	f.Name = name
	f.Description = description
	return f
}

// concentration creates an unspecified millimolar measure named after id.
func concentration(id, description string) *sbol3.Measure {
	m := sbol3.NewMeasure(id, math.NaN(), UnitMillimolar)
	m.Name = id
	m.Description = description
	return m
}

func variable(cardinality string, target sbol3.Object, description string) *sbol3.VariableFeature {
	v := sbol3.NewVariableFeature(cardinality, target)
	v.Description = description
	return v
}

// BuildSamples adds the sample template and the culture-condition sample
// set to the document and returns the sample set.
func (g *Generator) BuildSamples() (*sbol3.CombinatorialDerivation, error) {
	template := sbol3.NewComponent("htc_design", sbol.ClassComponent)
	template.Description = "HTC Sample Design"

	media := templateFeature("media", "Media", "URI for the media", TermMedia)
	strain := templateFeature("strain", "Strain", "URI for the strain", TermStrain)

	inducer := templateFeature("inducer", "Inducer", "The inducers for the condition", TermInducer)
	inducerConc := concentration("inducer_concentration", "Inducer concentration")
	inducer.AddMeasure(inducerConc)

	antibiotic := templateFeature("antibiotic", "Antibiotic", "The antibiotics for the condition", TermAntibiotic)
	antibioticConc := concentration("antibiotic_concentration", "Antibiotic concentration")
	antibiotic.AddMeasure(antibioticConc)

	for _, f := range []*sbol3.LocalSubComponent{media, strain, inducer, antibiotic} {
		template.AddFeature(f)
	}
	if err := g.doc.Add(template); err != nil {
		return nil, fmt.Errorf("add sample template: %w", err)
	}

	samples := protocol.NewSampleSet("culture_conditions", template)
	samples.Name = "HTC culture condition design"
	samples.Description = "The HTC culture condition design"

	// Concentrations vary independently of the feature that owns them.
	for _, v := range []*sbol3.VariableFeature{
		variable(sbol.CardinalityOneOrMore, media, "Variable for media"),
		variable(sbol.CardinalityOne, strain, "Variable for strain"),
		variable(sbol.CardinalityOneOrMore, inducerConc, "Variable for inducer concentration"),
		variable(sbol.CardinalityOneOrMore, inducer, "Variable for inducer"),
		variable(sbol.CardinalityOneOrMore, antibioticConc, "Variable for antibiotic concentration"),
		variable(sbol.CardinalityOneOrMore, antibiotic, "Variable for antibiotic"),
	} {
		samples.AddVariableFeature(v)
	}
	if err := g.doc.Add(samples); err != nil {
		return nil, fmt.Errorf("add sample set: %w", err)
	}

	return samples, nil
}

// BuildMeasurements returns the flow cytometry and plate reader measurement types.
func (g *Generator) BuildMeasurements() []*protocol.MeasurementType {
	flow := protocol.NewMeasurementType("flow", TermFlowCytometry)
	flow.Name = "Flow Cytometry"
	flow.Description = "flow measurement type which is ncit:C78806"

	plateReader := protocol.NewMeasurementType("plate_reader", TermPlateReader)
	plateReader.Name = "Plate Reader"
	plateReader.Description = "plate reader measurement ncit:C70661"

	return []*protocol.MeasurementType{flow, plateReader}
}

// BuildParameters returns the protocol parameters: the run flags and time
// windows, or none when parameters are disabled.
func (g *Generator) BuildParameters() ([]*protocol.Parameter, error) {
	if !g.opts.Parameters {
		return nil, nil
	}

	opticalDensity := protocol.NewBooleanParameter("measure_optical_density")
	opticalDensity.Name = "Measure Optical Density"
	opticalDensity.Description = "Whether to record optical density alongside the measurements"

	duration := protocol.NewMeasureParameter("culture_duration")
	duration.Name = "Culture Duration"
	duration.Description = "Total time the cultures are grown"
	duration.Required = true

	interval := protocol.NewMeasureParameter("sample_interval")
	interval.Name = "Sample Interval"
	interval.Description = "Time between successive measurements"

	replicates := protocol.NewIntegerParameter("replicates")
	replicates.Name = "Replicates"
	replicates.Description = "Number of replicate cultures per condition"

	plateType := protocol.NewEnumeratedParameter("plate_type", "96 well", "24 well")
	plateType.Name = "Plate Type"
	plateType.Description = "Culture plate format"

	err := errors.Join(
		opticalDensity.SetDefault(protocol.NewBooleanValue(true)),
		duration.SetDefault(protocol.NewMeasureValue(sbol3.NewMeasure("", 24, UnitHour))),
		interval.SetDefault(protocol.NewMeasureValue(sbol3.NewMeasure("", 4, UnitHour))),
		replicates.SetDefault(protocol.NewIntegerValue(3)),
		plateType.SetDefault(protocol.NewEnumeratedValue("96 well")),
	)
	if err != nil {
		return nil, fmt.Errorf("parameter defaults: %w", err)
	}

	return []*protocol.Parameter{opticalDensity, duration, interval, replicates, plateType}, nil
}

// BuildProtocol builds the samples, measurements and parameters and
// assembles them into the htc protocol interface. The interface is not yet
// added to the document.
func (g *Generator) BuildProtocol() (*protocol.Interface, error) {
	p := protocol.NewInterface("htc")
	p.Name = "High-Throughput Culturing"
	p.Description = "Aquarium high-throughput culturing workflow"

	samples, err := g.BuildSamples()
	if err != nil {
		return nil, err
	}
	p.AddAllowedSamples(samples)

	for _, m := range g.BuildMeasurements() {
		p.AddMeasurementType(m)
	}

	params, err := g.BuildParameters()
	if err != nil {
		return nil, err
	}
	for _, param := range params {
		p.AddParameter(param)
	}

	return p, nil
}

// Generate builds the document from scratch, validates it and, when an
// output path is configured, writes it.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	start := g.opts.Now()
	g.doc = sbol3.NewDocument(g.opts.Namespace)

	p, err := g.BuildProtocol()
	if err != nil {
		return nil, err
	}
	if err := g.doc.Add(p); err != nil {
		return nil, fmt.Errorf("add protocol: %w", err)
	}

	if g.opts.Provenance {
		if err := g.recordProvenance(start); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	exporter, err := g.doc.Exporter()
	if err != nil {
		return nil, err
	}

	result := &Result{
		Document: g.doc,
		Protocol: p,
		Format:   g.opts.Format,
		Entities: exporter.Len(),
		Triples:  exporter.TripleCount(),
	}

	if g.opts.OutputPath != "" {
		n, err := exporter.WriteFile(g.opts.OutputPath, g.opts.Format)
		if err != nil {
			return nil, err
		}
		result.Path = g.opts.OutputPath
		result.Bytes = n
	}
	result.Duration = g.opts.Now().Sub(start)

	g.logger.Info("Generated protocol document",
		slog.String("protocol", p.Identity()),
		slog.String("path", result.Path),
		slog.String("format", string(result.Format)),
		slog.Int("entities", result.Entities),
		slog.Int("triples", result.Triples),
		slog.Int("bytes", result.Bytes))

	return result, nil
}

// recordProvenance adds an activity for this run and marks every other
// top-level object as generated by it.
func (g *Generator) recordProvenance(start time.Time) error {
	id := "htc_generation_" + strings.ReplaceAll(g.opts.NewID(), "-", "_")
	activity := sbol3.NewActivity(id)
	activity.Name = "HTC protocol generation"
	activity.StartedAt = start
	activity.EndedAt = g.opts.Now()

	for _, obj := range g.doc.TopLevels() {
		obj.Base().GeneratedBy = append(obj.Base().GeneratedBy, activity)
	}
	if err := g.doc.Add(activity); err != nil {
		return fmt.Errorf("add provenance: %w", err)
	}
	return nil
}
