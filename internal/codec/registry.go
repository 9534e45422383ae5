package codec

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrUnknownSerializer is returned for lookups of names or record types that
// were never registered. Lookups fail loudly instead of returning nil.
var ErrUnknownSerializer = errors.New("codec: unknown serializer")

// Serializer turns one typed record into an encoded line and back. Composite
// records may embed the full output of another serializer as a single opaque
// field; the outer encoding re-escapes it like any other string.
type Serializer interface {
	// RecordType is the concrete type produced by Decode.
	RecordType() reflect.Type
	Encode(value any) (string, error)
	Decode(line string) (any, error)
}

// Registry maps logical record-type names to serializers. Registration is
// last-writer-wins per name.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Serializer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Serializer)}
}

// Register binds name to s, replacing any previous binding.
func (r *Registry) Register(name string, s Serializer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[name] = s
}

// Lookup resolves a serializer by its registered name.
func (r *Registry) Lookup(name string) (Serializer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: name %q", ErrUnknownSerializer, name)
	}
	return s, nil
}

// LookupFor resolves the serializer whose record type matches t, for callers
// that hold a type but not a name.
func (r *Registry) LookupFor(t reflect.Type) (Serializer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.byName {
		if s.RecordType() == t {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: type %v", ErrUnknownSerializer, t)
}

type funcSerializer[T any] struct {
	encode func(T) (string, error)
	decode func(string) (T, error)
}

// NewSerializer adapts a typed encode/decode pair into a Serializer.
func NewSerializer[T any](encode func(T) (string, error), decode func(string) (T, error)) Serializer {
	return &funcSerializer[T]{encode: encode, decode: decode}
}

func (s *funcSerializer[T]) RecordType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func (s *funcSerializer[T]) Encode(value any) (string, error) {
	typed, ok := value.(T)
	if !ok {
		return "", fmt.Errorf("codec: cannot encode %T as %v", value, s.RecordType())
	}
	return s.encode(typed)
}

func (s *funcSerializer[T]) Decode(line string) (any, error) {
	return s.decode(line)
}
