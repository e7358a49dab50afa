package linkpool

import (
	"strings"
	"testing"

	"github.com/vrope/vrope/internal/errs"
)

func TestAllocGet(t *testing.T) {
	p := New()
	id, err := p.Alloc([]byte("https://example.com"))
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	got, err := p.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "https://example.com" {
		t.Errorf("got %q", got)
	}
}

func TestAllocURLTooLong(t *testing.T) {
	p := New()
	_, err := p.Alloc([]byte(strings.Repeat("a", MaxURLBytes+1)))
	if err != errs.ErrURLTooLong {
		t.Errorf("got %v, want ErrURLTooLong", err)
	}
}

func TestGetInvalidID(t *testing.T) {
	p := New()
	if _, err := p.Get(packID(0, 0)); err != errs.ErrInvalidID {
		t.Errorf("got %v, want ErrInvalidID", err)
	}
}

func TestGenerationMismatchAfterReuse(t *testing.T) {
	p := New()
	id1, _ := p.Alloc([]byte("first"))
	if err := p.Incref(id1); err != nil {
		t.Fatalf("Incref: %v", err)
	}
	if err := p.Decref(id1); err != nil {
		t.Fatalf("Decref: %v", err)
	}

	// Slot freed; a new Alloc reuses it with a bumped generation.
	id2, err := p.Alloc([]byte("second"))
	if err != nil {
		t.Fatalf("Alloc reuse: %v", err)
	}
	_, slot1 := unpackID(id1)
	_, slot2 := unpackID(id2)
	if slot1 != slot2 {
		t.Fatalf("expected slot reuse, got slots %d and %d", slot1, slot2)
	}

	if _, err := p.Get(id1); err != errs.ErrWrongGeneration {
		t.Errorf("stale id after reuse: got %v, want ErrWrongGeneration", err)
	}
	got, err := p.Get(id2)
	if err != nil || string(got) != "second" {
		t.Errorf("Get(id2) = %q, %v", got, err)
	}
}

func TestGenerationWrapsModulo256(t *testing.T) {
	p := New()
	id, _ := p.Alloc([]byte("x"))
	startGen, slot := unpackID(id)

	for i := 0; i < generationMod; i++ {
		if err := p.Incref(id); err != nil {
			t.Fatalf("Incref iter %d: %v", i, err)
		}
		if err := p.Decref(id); err != nil {
			t.Fatalf("Decref iter %d: %v", i, err)
		}
		id, _ = p.Alloc([]byte("x"))
	}

	gen, gotSlot := unpackID(id)
	if gotSlot != slot {
		t.Fatalf("expected slot reuse, got %d want %d", gotSlot, slot)
	}
	if gen != startGen {
		t.Errorf("expected generation to wrap back to %d, got %d", startGen, gen)
	}
}

func TestDecrefToZeroFreesSlot(t *testing.T) {
	p := New()
	id, _ := p.Alloc([]byte("kept"))
	if err := p.Incref(id); err != nil {
		t.Fatalf("Incref: %v", err)
	}
	if err := p.Decref(id); err != nil {
		t.Fatalf("Decref: %v", err)
	}
	// Refcount reached zero: the id is retired even though the underlying
	// slot's bytes aren't overwritten until the next Alloc reuses it.
	if _, err := p.Get(id); err != errs.ErrInvalidID {
		t.Errorf("Get after refcount hits zero: got %v, want ErrInvalidID", err)
	}
}

func TestLinkTrackerRefcounting(t *testing.T) {
	p := New()
	id, _ := p.Alloc([]byte("https://a"))
	tr := NewLinkTracker(p)

	if err := tr.Observe(id); err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if err := tr.Observe(id); err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if tr.CellCount(id) != 2 {
		t.Errorf("CellCount = %d, want 2", tr.CellCount(id))
	}

	if err := tr.Release(id); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := p.Get(id); err != nil {
		t.Errorf("id should still be alive after one Release: %v", err)
	}

	if err := tr.Release(id); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := p.Get(id); err != errs.ErrInvalidID {
		t.Errorf("id should be retired once the last cell releases it: got %v, want ErrInvalidID", err)
	}
}

func TestLinkTrackerClear(t *testing.T) {
	p := New()
	idA, _ := p.Alloc([]byte("a"))
	idB, _ := p.Alloc([]byte("b"))
	tr := NewLinkTracker(p)
	tr.Observe(idA)
	tr.Observe(idB)
	tr.Observe(idB)

	if err := tr.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if tr.CellCount(idA) != 0 || tr.CellCount(idB) != 0 {
		t.Error("Clear should reset all cell counts")
	}

	// Pool refcounts were released; a subsequent Alloc may reuse the slots.
	if _, err := p.Alloc([]byte("c")); err != nil {
		t.Fatalf("Alloc after Clear: %v", err)
	}
}

func TestObserveIgnoresNoLink(t *testing.T) {
	p := New()
	tr := NewLinkTracker(p)
	if err := tr.Observe(NoLink); err != nil {
		t.Fatalf("Observe(NoLink): %v", err)
	}
	if tr.CellCount(NoLink) != 0 {
		t.Error("NoLink should never be tracked")
	}
}
