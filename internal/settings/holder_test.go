package settings

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

func countingOpener(counter *atomic.Int32, source string) Opener {
	return func(string) (io.ReadCloser, error) {
		counter.Add(1)
		return io.NopCloser(strings.NewReader(source)), nil
	}
}

func TestHolderLoadsExactlyOnce(t *testing.T) {
	var loads atomic.Int32
	holder := NewHolder(DefaultResourceName, countingOpener(&loads, "a=1\n"))

	const racers = 32
	stores := make([]*Store, racers)
	var wg sync.WaitGroup

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store, err := holder.Get()
			if err != nil {
				t.Errorf("Get failed: %v", err)
				return
			}
			if got := store.GetString("a", ""); got != "1" {
				t.Errorf("racer %d observed partially initialized store, a=%q", n, got)
			}
			stores[n] = store
		}(i)
	}
	wg.Wait()

	if got := loads.Load(); got != 1 {
		t.Fatalf("expected exactly one load, got %d", got)
	}
	for i := 1; i < racers; i++ {
		if stores[i] != stores[0] {
			t.Fatalf("racers observed different store instances")
		}
	}
}

func TestHolderCachesFailure(t *testing.T) {
	t.Parallel()

	var loads atomic.Int32
	holder := NewHolder(DefaultResourceName, func(string) (io.ReadCloser, error) {
		loads.Add(1)
		return nil, errors.New("disk on fire")
	})

	store, err := holder.Get()
	if store != nil || !errors.Is(err, ErrResourceLoad) {
		t.Fatalf("expected ErrResourceLoad and nil store, got (%v, %v)", store, err)
	}

	// failure is cached, not retried
	if _, again := holder.Get(); !errors.Is(again, ErrResourceLoad) {
		t.Fatalf("expected cached failure, got %v", again)
	}
	if got := loads.Load(); got != 1 {
		t.Fatalf("expected a single load attempt, got %d", got)
	}
}

func TestHolderMalformedResource(t *testing.T) {
	t.Parallel()

	holder := NewHolder(DefaultResourceName, func(string) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("bad=\\uZZZZ\n")), nil
	})

	if _, err := holder.Get(); !errors.Is(err, ErrResourceLoad) {
		t.Fatalf("expected ErrResourceLoad for malformed resource, got %v", err)
	}
}

func TestOpenEmbeddedUnknownName(t *testing.T) {
	t.Parallel()

	holder := NewHolder("missing.properties", openEmbedded)
	_, err := holder.Get()
	if !errors.Is(err, ErrResourceLoad) {
		t.Fatalf("expected ErrResourceLoad, got %v", err)
	}
	if !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("not-found must stay distinguishable, got %v", err)
	}
}

func TestDefaultLoadsEmbeddedResource(t *testing.T) {
	t.Parallel()

	store, err := Default()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !store.HasValue("catalog.url") {
		t.Fatalf("expected bundled defaults to be present, keys: %v", store.Keys())
	}
	if got, err := store.GetInt("catalog.page_size"); err != nil || got != 100 {
		t.Fatalf("expected catalog.page_size=100, got (%d, %v)", got, err)
	}
	if got, err := store.GetInt64("export.max_records"); err != nil || got != 9999999999 {
		t.Fatalf("expected export.max_records=9999999999, got (%d, %v)", got, err)
	}
	if got, err := store.GetBool("export.compress"); err != nil || !got {
		t.Fatalf("expected export.compress=true, got (%v, %v)", got, err)
	}
}

func TestDumpDefaultWritesRawBytes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := DumpDefault(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), defaultResource) {
		t.Fatalf("dump must be the verbatim resource bytes")
	}
	if !strings.Contains(buf.String(), "catalog.url=") {
		t.Fatalf("dump missing expected content")
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("sink closed") }

func TestDumpDefaultReportsWriteFailure(t *testing.T) {
	t.Parallel()

	if err := DumpDefault(failWriter{}); err == nil {
		t.Fatalf("expected error from failing sink")
	}
}
