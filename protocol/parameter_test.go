package protocol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquariumbio/aquarium-opil/export"
	"github.com/aquariumbio/aquarium-opil/protocol"
	"github.com/aquariumbio/aquarium-opil/sbol3"
	"github.com/aquariumbio/aquarium-opil/vocabulary/opil"
	"github.com/aquariumbio/aquarium-opil/vocabulary/sbol"
)

func TestSetDefault(t *testing.T) {
	tests := []struct {
		name    string
		param   *protocol.Parameter
		value   *protocol.Value
		wantErr error
	}{
		{"boolean", protocol.NewBooleanParameter("flag"), protocol.NewBooleanValue(true), nil},
		{"integer", protocol.NewIntegerParameter("n"), protocol.NewIntegerValue(3), nil},
		{"string", protocol.NewStringParameter("s"), protocol.NewStringValue("x"), nil},
		{"uri", protocol.NewURIParameter("u"), protocol.NewURIValue("https://aquarium.bio/x"), nil},
		{"measure", protocol.NewMeasureParameter("m"), protocol.NewMeasureValue(sbol3.NewMeasure("", 24, hour)), nil},
		{"enumerated allowed", protocol.NewEnumeratedParameter("e", "96 well", "24 well"), protocol.NewEnumeratedValue("24 well"), nil},
		{"enumerated not allowed", protocol.NewEnumeratedParameter("e", "96 well"), protocol.NewEnumeratedValue("384 well"), protocol.ErrNotAllowed},
		{"kind mismatch", protocol.NewBooleanParameter("flag"), protocol.NewIntegerValue(1), protocol.ErrValueKind},
		{"string for enumerated", protocol.NewEnumeratedParameter("e", "96 well"), protocol.NewStringValue("96 well"), protocol.ErrValueKind},
		{"nil value", protocol.NewIntegerParameter("n"), nil, protocol.ErrValueKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.param.SetDefault(tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, tt.param.Default())
				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.value, tt.param.Default())
			assert.Same(t, tt.param, tt.value.Parent())
		})
	}
}

func TestParameterProperties(t *testing.T) {
	_, p := newDocument(t)
	plate := protocol.NewEnumeratedParameter("plate_type", "96 well", "24 well")
	require.NoError(t, plate.SetDefault(protocol.NewEnumeratedValue("96 well")))
	p.AddParameter(plate)

	id := "http://aquarium.bio/htc/plate_type"
	assert.Equal(t, []string{opil.ClassEnumeratedParameter}, plate.TypeIRIs())
	assert.Equal(t, []export.Triple{
		{Subject: id, Predicate: opil.ParameterRequired, Object: false},
		{Subject: id, Predicate: opil.ParameterAllowedValue, Object: "96 well"},
		{Subject: id, Predicate: opil.ParameterAllowedValue, Object: "24 well"},
		{Subject: id, Predicate: opil.ParameterDefaultValue, Object: export.IRI(id + "/EnumeratedValue1")},
	}, plate.Properties())

	value := plate.Default()
	assert.Equal(t, []string{opil.ClassEnumeratedValue}, value.TypeIRIs())
	assert.Equal(t, []export.Triple{
		{Subject: id + "/EnumeratedValue1", Predicate: opil.ValueLiteral, Object: "96 well"},
	}, value.Properties())
}

func TestMeasureValue(t *testing.T) {
	doc, p := newDocument(t)
	duration := protocol.NewMeasureParameter("culture_duration")
	duration.Required = true
	require.NoError(t, duration.SetDefault(protocol.NewMeasureValue(sbol3.NewMeasure("", 24, hour))))
	p.AddParameter(duration)
	require.NoError(t, doc.Validate())

	value := duration.Default()
	measure := value.Measure()
	require.NotNil(t, measure)
	assert.Nil(t, value.Literal())
	assert.Equal(t, "http://aquarium.bio/htc/culture_duration/MeasureValue1/Measure1", measure.Identity())
	assert.Equal(t, []export.Triple{
		{Subject: value.Identity(), Predicate: opil.ValueMeasure, Object: export.IRI(measure.Identity())},
	}, value.Properties())

	counts := doc.ClassCounts()
	assert.Equal(t, 1, counts[opil.ClassMeasureParameter])
	assert.Equal(t, 1, counts[opil.ClassMeasureValue])
	assert.Equal(t, 1, counts[sbol.ClassMeasure])
}

func TestParameterValidate(t *testing.T) {
	t.Run("enumerated without allowed values", func(t *testing.T) {
		doc, p := newDocument(t)
		p.AddParameter(protocol.NewEnumeratedParameter("plate_type"))
		assert.Error(t, doc.Validate())
	})

	t.Run("allowed values changed after default", func(t *testing.T) {
		doc, p := newDocument(t)
		plate := protocol.NewEnumeratedParameter("plate_type", "96 well")
		require.NoError(t, plate.SetDefault(protocol.NewEnumeratedValue("96 well")))
		plate.AllowedValues = []string{"24 well"}
		p.AddParameter(plate)
		assert.ErrorIs(t, doc.Validate(), protocol.ErrNotAllowed)
	})

	t.Run("relative URI value", func(t *testing.T) {
		doc, p := newDocument(t)
		param := protocol.NewURIParameter("source")
		require.NoError(t, param.SetDefault(protocol.NewURIValue("not-an-iri")))
		p.AddParameter(param)
		assert.ErrorIs(t, doc.Validate(), sbol3.ErrInvalidIRI)
	})
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Boolean", protocol.KindBoolean.String())
	assert.Equal(t, "Enumerated", protocol.KindEnumerated.String())
	assert.Equal(t, "URI", protocol.KindURI.String())
	assert.Equal(t, "Kind(42)", protocol.Kind(42).String())
}
