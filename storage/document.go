// Package storage keeps serialized protocol documents in NATS KV.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/aquariumbio/aquarium-opil/export"
	"github.com/aquariumbio/aquarium-opil/sbol3"
)

// DefaultBucket is the conventional bucket name for generated documents.
const DefaultBucket = "AQUARIUM_OPIL_DOCUMENTS"

// historyDepth is the number of revisions kept per key.
const historyDepth = 5

// Record is one stored serialization of a document.
type Record struct {
	ID          string        `json:"id"`
	Key         string        `json:"key"`
	Namespace   string        `json:"namespace"`
	Format      export.Format `json:"format"`
	MIMEType    string        `json:"mime_type"`
	Content     string        `json:"content"`
	Entities    int           `json:"entities"`
	Triples     int           `json:"triples"`
	GeneratedAt time.Time     `json:"generated_at"`

	// Revision is the KV revision the record was read from or written at.
	Revision uint64 `json:"-"`
}

// bucket is the subset of jetstream.KeyValue the store uses.
type bucket interface {
	Put(ctx context.Context, key string, value []byte) (uint64, error)
	Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error)
	Keys(ctx context.Context, opts ...jetstream.WatchOpt) ([]string, error)
}

// Store provides document storage backed by NATS KV.
type Store struct {
	kv bucket
}

// NewStore opens the named KV bucket, creating it if it doesn't exist.
func NewStore(ctx context.Context, js jetstream.JetStream, name string) (*Store, error) {
	kv, err := getOrCreateBucket(ctx, js, name)
	if err != nil {
		return nil, fmt.Errorf("open bucket %s: %w", name, err)
	}
	return &Store{kv: kv}, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: "Generated OPIL protocol documents",
		History:     historyDepth,
	})
}

// Key returns the storage key for a document serialized in format, e.g.
// "htc.turtle".
func Key(displayID string, format export.Format) string {
	return displayID + "." + string(format)
}

// Put serializes doc in format and stores it under key.
func (s *Store) Put(ctx context.Context, key string, doc *sbol3.Document, format export.Format, generatedAt time.Time) (*Record, error) {
	exporter, err := doc.Exporter()
	if err != nil {
		return nil, err
	}
	content, err := exporter.Export(format)
	if err != nil {
		return nil, err
	}

	record := &Record{
		ID:          uuid.NewString(),
		Key:         key,
		Namespace:   doc.Namespace(),
		Format:      format,
		Content:     content,
		Entities:    exporter.Len(),
		Triples:     exporter.TripleCount(),
		GeneratedAt: generatedAt.UTC(),
	}
	if info, ok := export.GetFormatInfo(format); ok {
		record.MIMEType = info.MIMEType
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}

	rev, err := s.kv.Put(ctx, key, data)
	if err != nil {
		return nil, fmt.Errorf("store document %s: %w", key, err)
	}
	record.Revision = rev

	return record, nil
}

// Get retrieves the latest record stored under key.
func (s *Store) Get(ctx context.Context, key string) (*Record, error) {
	entry, err := s.kv.Get(ctx, key)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get document %s: %w", key, err)
	}

	var record Record
	if err := json.Unmarshal(entry.Value(), &record); err != nil {
		return nil, fmt.Errorf("unmarshal document %s: %w", key, err)
	}
	record.Revision = entry.Revision()

	return &record, nil
}

// Keys returns the stored keys with the given prefix in sorted order.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := s.kv.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list document keys: %w", err)
	}

	out := keys[:0]
	for _, key := range keys {
		if strings.HasPrefix(key, prefix) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out, nil
}
