package settings

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sync"
)

// DefaultResourceName is the logical name of the bundled default resource.
const DefaultResourceName = "config.properties"

// defaultResource holds the raw bytes of the bundled default configuration.
// They are compiled into the binary and are what DumpDefault writes,
// regardless of any overrides merged into the live store afterwards.
//
//go:embed config.properties
var defaultResource []byte

// Opener resolves a logical resource name to a byte stream. Implementations
// must return ErrResourceNotFound (possibly wrapped) when the name does not
// resolve, so callers can tell absence apart from read failures.
type Opener func(name string) (io.ReadCloser, error)

// Holder builds a Store from a resource exactly once, no matter how many
// callers race on Get. A failed load is cached and re-surfaced on every
// subsequent call; it is never retried and never yields an empty store.
type Holder struct {
	name string
	open Opener

	once  sync.Once
	store *Store
	err   error
}

// NewHolder returns a holder that will load the named resource through open
// on the first Get.
func NewHolder(name string, open Opener) *Holder {
	return &Holder{name: name, open: open}
}

// Get returns the held store, loading it on first call.
func (h *Holder) Get() (*Store, error) {
	h.once.Do(func() {
		h.store, h.err = h.load()
	})
	return h.store, h.err
}

func (h *Holder) load() (*Store, error) {
	rc, err := h.open(h.name)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrResourceLoad, h.name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrResourceLoad, h.name, err)
	}

	parsed, err := parseProperties(data)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrResourceLoad, h.name, err)
	}

	return &Store{values: parsed}, nil
}

// openEmbedded resolves DefaultResourceName to the compiled-in resource.
func openEmbedded(name string) (io.ReadCloser, error) {
	if name != DefaultResourceName {
		return nil, fmt.Errorf("%w: %q", ErrResourceNotFound, name)
	}
	return io.NopCloser(bytes.NewReader(defaultResource)), nil
}

var defaultHolder = NewHolder(DefaultResourceName, openEmbedded)

// Default returns the process-wide store, loading the bundled
// config.properties exactly once on first access. The store lives for the
// process lifetime; later LoadFile/Load calls mutate it in place.
func Default() (*Store, error) {
	return defaultHolder.Get()
}

// DumpDefault copies the raw bytes of the bundled default resource to w.
// It writes the pristine resource, not the live mapping. The operation is
// best-effort: callers are permitted to ignore the returned error.
func DumpDefault(w io.Writer) error {
	if _, err := w.Write(defaultResource); err != nil {
		return fmt.Errorf("dump %s: %w", DefaultResourceName, err)
	}
	return nil
}
