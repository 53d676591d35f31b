package settings

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/magiconair/properties"
)

// Store is the in-memory configuration mapping and guards access with a RWMutex.
// Getters are non-blocking once the store exists; Load calls may run
// concurrently with reads and with each other.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStore returns an empty store. Most callers want Default instead.
func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

// Lookup returns the raw value of key. The second return value reports
// whether the key is present; absence is a normal outcome, not an error.
func (s *Store) Lookup(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok
}

// GetString returns the value of key, or fallback when the key is absent.
// The stored value always takes precedence over the fallback.
func (s *Store) GetString(key, fallback string) string {
	if value, ok := s.Lookup(key); ok {
		return value
	}
	return fallback
}

// HasValue reports whether key is present and its value is non-empty after
// trimming whitespace. This is deliberately stricter than plain presence.
func (s *Store) HasValue(key string) bool {
	value, ok := s.Lookup(key)
	return ok && strings.TrimSpace(value) != ""
}

// GetInt parses the value of key as a base-10 integer. An absent key fails
// with ErrInvalidFormat, same as an unparsable value.
func (s *Store) GetInt(key string) (int, error) {
	value, ok := s.Lookup(key)
	if !ok {
		return 0, fmt.Errorf("%w: key %q has no value to parse", ErrInvalidFormat, key)
	}
	return parseInt(key, value)
}

// GetIntDefault parses GetString(key, fallback) as a base-10 integer.
// The fallback is a raw string and must itself parse.
func (s *Store) GetIntDefault(key, fallback string) (int, error) {
	return parseInt(key, s.GetString(key, fallback))
}

// GetInt64 parses the value of key as a base-10 64-bit integer.
func (s *Store) GetInt64(key string) (int64, error) {
	value, ok := s.Lookup(key)
	if !ok {
		return 0, fmt.Errorf("%w: key %q has no value to parse", ErrInvalidFormat, key)
	}
	return parseInt64(key, value)
}

// GetInt64Default parses GetString(key, fallback) as a base-10 64-bit integer.
func (s *Store) GetInt64Default(key, fallback string) (int64, error) {
	return parseInt64(key, s.GetString(key, fallback))
}

// GetBool returns the value of key interpreted as a boolean. An absent key
// fails with ErrKeyNotFound. When present, only the case-insensitive literal
// "true" is true; every other value, including "false", "1", and garbage,
// is false.
func (s *Store) GetBool(key string) (bool, error) {
	value, ok := s.Lookup(key)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	return strings.EqualFold(value, "true"), nil
}

// Keys returns a sorted copy of all present keys.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.values))
	for key := range s.values {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of entries in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.values)
}

// Load parses a properties source from r and additively merges it into the
// store: keys present in r are added or overwritten, all other keys keep
// their previous values. The merge is all-or-nothing; a read or parse
// failure leaves the store untouched. Load never closes r, the reader
// remains owned by the caller.
func (s *Store) Load(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read properties source: %w", err)
	}

	parsed, err := parseProperties(data)
	if err != nil {
		return err
	}

	s.merge(parsed)
	return nil
}

// LoadFile opens the properties file at path and merges it with the same
// contract as Load. The file handle is released on all paths, including
// parse failure.
func (s *Store) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open properties file: %w", err)
	}
	defer f.Close()

	if err := s.Load(f); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (s *Store) merge(entries map[string]string) {
	s.mu.Lock()
	for key, value := range entries {
		s.values[key] = value
	}
	s.mu.Unlock()
}

// parseProperties decodes Java properties format ("key=value" lines, "#"/"!"
// comments, standard escaping). Reference expansion is disabled so "${x}"
// stays literal, matching java.util.Properties.
func parseProperties(data []byte) (map[string]string, error) {
	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse properties: %w", err)
	}

	out := make(map[string]string, p.Len())
	for _, key := range p.Keys() {
		value, _ := p.Get(key)
		out[key] = value
	}
	return out, nil
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: key %q value %q is not an integer", ErrInvalidFormat, key, value)
	}
	return n, nil
}

func parseInt64(key, value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: key %q value %q is not a 64-bit integer", ErrInvalidFormat, key, value)
	}
	return n, nil
}
