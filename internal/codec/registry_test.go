package codec

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upperSerializer() Serializer {
	return NewSerializer(
		func(v string) (string, error) { return strings.ToUpper(v), nil },
		func(line string) (string, error) { return strings.ToLower(line), nil },
	)
}

func TestRegistryLookupByName(t *testing.T) {
	reg := NewRegistry()
	reg.Register("upper", upperSerializer())

	s, err := reg.Lookup("upper")
	require.NoError(t, err)

	encoded, err := s.Encode("abc")
	require.NoError(t, err)
	assert.Equal(t, "ABC", encoded)
}

func TestRegistryLookupUnknownName(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Lookup("missing")
	require.ErrorIs(t, err, ErrUnknownSerializer)
	assert.Contains(t, err.Error(), `"missing"`)
}

func TestRegistryLookupForType(t *testing.T) {
	reg := NewRegistry()
	reg.Register("upper", upperSerializer())

	s, err := reg.LookupFor(reflect.TypeOf(""))
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(""), s.RecordType())

	_, err = reg.LookupFor(reflect.TypeOf(0))
	require.ErrorIs(t, err, ErrUnknownSerializer)
}

func TestRegistryLastWriterWins(t *testing.T) {
	reg := NewRegistry()
	reg.Register("value", upperSerializer())
	reg.Register("value", NewSerializer(
		func(v string) (string, error) { return "second:" + v, nil },
		func(line string) (string, error) { return line, nil },
	))

	s, err := reg.Lookup("value")
	require.NoError(t, err)

	encoded, err := s.Encode("x")
	require.NoError(t, err)
	assert.Equal(t, "second:x", encoded)
}

func TestSerializerRejectsWrongType(t *testing.T) {
	s := upperSerializer()

	_, err := s.Encode(42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot encode int")
}
