package geo

import (
	"context"
	"testing"
)

type fixedGeneration uint64

func (g fixedGeneration) Generation() uint64 { return uint64(g) }

func TestFetcherCurrentGeneration(t *testing.T) {
	f := &Fetcher{Provider: &stubProvider{}, Source: fixedGeneration(3)}
	fc, err := f.Fetch(context.Background(), 3, "county", "TX")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(fc.Features) != 1 {
		t.Errorf("features = %d", len(fc.Features))
	}
}

func TestFetcherDiscardsStale(t *testing.T) {
	stub := &stubProvider{}
	f := &Fetcher{Provider: stub, Source: fixedGeneration(5)}

	// Issued under generation 3, answered under generation 5: discard.
	if _, err := f.Fetch(context.Background(), 3, "county", "TX"); err != ErrStale {
		t.Errorf("err = %v; want ErrStale", err)
	}
	if stub.calls != 1 {
		t.Errorf("fetch should still have gone upstream once, got %d", stub.calls)
	}
}

func TestFetcherStaleBeatsError(t *testing.T) {
	// A failed fetch for an abandoned view reports stale, not the failure.
	f := &Fetcher{Provider: &stubProvider{fail: true}, Source: fixedGeneration(9)}
	if _, err := f.Fetch(context.Background(), 1, "state", ""); err != ErrStale {
		t.Errorf("err = %v; want ErrStale", err)
	}
}
