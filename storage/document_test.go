package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquariumbio/aquarium-opil/export"
	"github.com/aquariumbio/aquarium-opil/sbol3"
	"github.com/aquariumbio/aquarium-opil/vocabulary/sbol"
)

type entry struct {
	key   string
	value []byte
	rev   uint64
}

func (e *entry) Bucket() string                  { return DefaultBucket }
func (e *entry) Key() string                     { return e.key }
func (e *entry) Value() []byte                   { return e.value }
func (e *entry) Revision() uint64                { return e.rev }
func (e *entry) Created() time.Time              { return time.Time{} }
func (e *entry) Delta() uint64                   { return 0 }
func (e *entry) Operation() jetstream.KeyValueOp { return jetstream.KeyValuePut }

// memBucket is an in-memory bucket keeping only the latest revision.
type memBucket struct {
	entries map[string]*entry
	rev     uint64
	putErr  error
}

func newMemBucket() *memBucket {
	return &memBucket{entries: make(map[string]*entry)}
}

func (b *memBucket) Put(_ context.Context, key string, value []byte) (uint64, error) {
	if b.putErr != nil {
		return 0, b.putErr
	}
	b.rev++
	b.entries[key] = &entry{key: key, value: value, rev: b.rev}
	return b.rev, nil
}

func (b *memBucket) Get(_ context.Context, key string) (jetstream.KeyValueEntry, error) {
	e, ok := b.entries[key]
	if !ok {
		return nil, jetstream.ErrKeyNotFound
	}
	return e, nil
}

func (b *memBucket) Keys(_ context.Context, _ ...jetstream.WatchOpt) ([]string, error) {
	if len(b.entries) == 0 {
		return nil, jetstream.ErrNoKeysFound
	}
	keys := make([]string, 0, len(b.entries))
	for k := range b.entries {
		keys = append(keys, k)
	}
	return keys, nil
}

func testDocument(t *testing.T) *sbol3.Document {
	t.Helper()
	doc := sbol3.NewDocument("http://aquarium.bio/")
	c := sbol3.NewComponent("htc_design", sbol.ClassComponent)
	c.Name = "HTC design"
	require.NoError(t, doc.Add(c))
	return doc
}

func TestKey(t *testing.T) {
	assert.Equal(t, "htc.turtle", Key("htc", export.FormatTurtle))
	assert.Equal(t, "htc.jsonld", Key("htc", export.FormatJSONLD))
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	s := &Store{kv: newMemBucket()}
	now := time.Date(2021, 6, 1, 9, 0, 0, 0, time.FixedZone("EDT", -4*3600))

	put, err := s.Put(ctx, "htc.turtle", testDocument(t), export.FormatTurtle, now)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), put.Revision)
	assert.NotEmpty(t, put.ID)
	assert.Equal(t, "text/turtle", put.MIMEType)
	assert.Equal(t, "http://aquarium.bio", put.Namespace)
	assert.Equal(t, 1, put.Entities)
	assert.Contains(t, put.Content, `sbol:name "HTC design"`)
	assert.Equal(t, time.UTC, put.GeneratedAt.Location())

	got, err := s.Get(ctx, "htc.turtle")
	require.NoError(t, err)
	assert.Equal(t, put.ID, got.ID)
	assert.Equal(t, put.Content, got.Content)
	assert.Equal(t, put.Triples, got.Triples)
	assert.True(t, now.Equal(got.GeneratedAt))
	assert.Equal(t, uint64(1), got.Revision)

	// A second put supersedes the first.
	again, err := s.Put(ctx, "htc.turtle", testDocument(t), export.FormatTurtle, now)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), again.Revision)
	assert.NotEqual(t, put.ID, again.ID)
}

func TestGetNotFound(t *testing.T) {
	s := &Store{kv: newMemBucket()}
	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetCorrupt(t *testing.T) {
	b := newMemBucket()
	_, _ = b.Put(context.Background(), "htc.turtle", []byte("{not json"))
	_, err := (&Store{kv: b}).Get(context.Background(), "htc.turtle")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestPutErrors(t *testing.T) {
	ctx := context.Background()

	b := newMemBucket()
	b.putErr = errors.New("bucket unavailable")
	_, err := (&Store{kv: b}).Put(ctx, "htc.turtle", testDocument(t), export.FormatTurtle, time.Now())
	assert.ErrorContains(t, err, "bucket unavailable")

	_, err = (&Store{kv: newMemBucket()}).Put(ctx, "htc.sbol2", testDocument(t), export.Format("sbol2"), time.Now())
	assert.ErrorIs(t, err, export.ErrUnsupportedFormat)

	invalid := sbol3.NewDocument("http://aquarium.bio/")
	derivation := sbol3.NewCombinatorialDerivation("culture_conditions", nil)
	require.NoError(t, invalid.Add(derivation))
	_, err = (&Store{kv: newMemBucket()}).Put(ctx, "htc.turtle", invalid, export.FormatTurtle, time.Now())
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	ctx := context.Background()
	s := &Store{kv: newMemBucket()}

	keys, err := s.Keys(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, keys)

	for _, format := range []export.Format{export.FormatTurtle, export.FormatJSONLD} {
		_, err := s.Put(ctx, Key("htc", format), testDocument(t), format, time.Now())
		require.NoError(t, err)
	}
	_, err = s.Put(ctx, Key("other", export.FormatTurtle), testDocument(t), export.FormatTurtle, time.Now())
	require.NoError(t, err)

	keys, err = s.Keys(ctx, "htc.")
	require.NoError(t, err)
	assert.Equal(t, []string{"htc.jsonld", "htc.turtle"}, keys)
}

func TestRecordJSONOmitsRevision(t *testing.T) {
	data, err := json.Marshal(Record{Key: "htc.turtle", Revision: 7})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "revision")
	assert.Contains(t, string(data), `"key":"htc.turtle"`)
}
