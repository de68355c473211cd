// Package graph publishes generated protocol documents to the knowledge
// graph as entity-ingest messages.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/c360studio/semstreams/message"

	"github.com/aquariumbio/aquarium-opil/export"
	"github.com/aquariumbio/aquarium-opil/sbol3"
	"github.com/aquariumbio/aquarium-opil/vocabulary/sbol"
)

// GraphIngestSubject is the subject for graph ingestion.
const GraphIngestSubject = "graph.ingest.entity"

// Source identifies triples published by the generator.
const Source = "aquarium.opil.htc"

// StreamPublisher publishes to a JetStream subject. *natsclient.Client
// satisfies it.
type StreamPublisher interface {
	PublishToStream(ctx context.Context, subject string, data []byte) error
}

// Publisher sends document objects to the graph.
type Publisher struct {
	client StreamPublisher
	logger *slog.Logger
	now    func() time.Time
}

// NewPublisher creates a publisher. A nil client makes Publish a no-op.
func NewPublisher(client StreamPublisher, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{client: client, logger: logger, now: time.Now}
}

// Publish sends one message per object in doc and returns the number sent.
func (p *Publisher) Publish(ctx context.Context, doc *sbol3.Document) (int, error) {
	if p.client == nil {
		return 0, nil // Skip publishing if no NATS client (graceful degradation)
	}

	payloads := BuildPayloads(doc, p.now())
	for i, payload := range payloads {
		if err := payload.Validate(); err != nil {
			return i, fmt.Errorf("invalid entity %s: %w", payload.EntityID(), err)
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return i, fmt.Errorf("marshal entity %s: %w", payload.EntityID(), err)
		}
		if err := p.client.PublishToStream(ctx, GraphIngestSubject, data); err != nil {
			return i, fmt.Errorf("publish entity %s: %w", payload.EntityID(), err)
		}
	}

	p.logger.Info("Published protocol entities",
		slog.String("subject", GraphIngestSubject),
		slog.Int("entities", len(payloads)))
	return len(payloads), nil
}

// BuildPayloads converts every object of doc into an entity payload.
// References to objects in the document become entity IDs; other IRIs stay
// as strings.
func BuildPayloads(doc *sbol3.Document, now time.Time) []*EntityPayload {
	entities := doc.Entities()

	ids := make(map[string]string, len(entities))
	for _, e := range entities {
		ids[e.ID] = EntityID(doc.Namespace(), e.ID, e.Types[0])
	}

	payloads := make([]*EntityPayload, 0, len(entities))
	for _, e := range entities {
		entityID := ids[e.ID]
		triples := make([]message.Triple, 0, len(e.Triples)+len(e.Types))
		for _, class := range e.Types {
			triples = append(triples, newTriple(entityID, sbol.IdentityClass, class, now))
		}
		for _, t := range e.Triples {
			triples = append(triples, newTriple(entityID, t.Predicate, objectValue(t.Object, ids), now))
		}
		payloads = append(payloads, &EntityPayload{
			EntityID_:  entityID,
			TripleData: triples,
			UpdatedAt:  now,
		})
	}
	return payloads
}

func newTriple(subject, predicate string, object any, now time.Time) message.Triple {
	return message.Triple{
		Subject:    subject,
		Predicate:  predicate,
		Object:     object,
		Source:     Source,
		Timestamp:  now,
		Confidence: 1.0,
	}
}

// objectValue converts an RDF object to a JSON-safe triple object.
func objectValue(obj any, ids map[string]string) any {
	switch v := obj.(type) {
	case export.IRI:
		if id, ok := ids[string(v)]; ok {
			return id
		}
		return string(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
		return v
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	default:
		return v
	}
}
