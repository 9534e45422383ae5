// Package flatfile persists a full record population as one UTF-8 text file,
// one encoded line per record. Stores load everything at startup and rewrite
// the whole file on every mutation.
package flatfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spec-kit/storefront-service/internal/codec"
)

// Store reads and writes the population of one record type. The serializer
// is resolved by name from the registry so nested record types stay
// addressable by the records that embed them.
type Store[T any] struct {
	path       string
	registry   *codec.Registry
	serializer string
}

// NewStore builds a store for the file at path using the named serializer.
func NewStore[T any](path string, registry *codec.Registry, serializer string) *Store[T] {
	return &Store[T]{path: path, registry: registry, serializer: serializer}
}

// Path returns the backing file location.
func (s *Store[T]) Path() string {
	return s.path
}

// LoadAll decodes every line of the backing file in file order. A missing
// file is an empty population, not an error.
func (s *Store[T]) LoadAll() ([]T, error) {
	serializer, err := s.registry.Lookup(s.serializer)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("flatfile: read %s: %w", s.path, err)
	}

	var records []T
	for i, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		decoded, err := serializer.Decode(line)
		if err != nil {
			return nil, fmt.Errorf("flatfile: %s line %d: %w", s.path, i+1, err)
		}
		record, ok := decoded.(T)
		if !ok {
			return nil, fmt.Errorf("flatfile: %s line %d: serializer %q produced %T", s.path, i+1, s.serializer, decoded)
		}
		records = append(records, record)
	}

	return records, nil
}

// SaveAll replaces the file contents with the given population. The write
// goes to a staging file first and is renamed into place, so a crash mid-write
// leaves the previous contents intact.
func (s *Store[T]) SaveAll(records []T) error {
	serializer, err := s.registry.Lookup(s.serializer)
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, record := range records {
		line, err := serializer.Encode(record)
		if err != nil {
			return err
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	return WriteFileAtomic(s.path, []byte(b.String()))
}

// WriteFileAtomic writes data to path via a staging file and rename.
func WriteFileAtomic(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("flatfile: create dir %s: %w", dir, err)
		}
	}

	staging := path + ".staging"
	if err := os.WriteFile(staging, data, 0o644); err != nil {
		return fmt.Errorf("flatfile: write %s: %w", staging, err)
	}
	if err := os.Rename(staging, path); err != nil {
		return fmt.Errorf("flatfile: replace %s: %w", path, err)
	}
	return nil
}
