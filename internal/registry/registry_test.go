package registry

import (
	"testing"

	"github.com/vrope/vrope/internal/errs"
)

func TestRegisterGet(t *testing.T) {
	r := New()
	id, err := r.Register([]byte("hello"), true)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	got, ok := r.Get(id)
	if !ok || string(got) != "hello" {
		t.Errorf("Get(%d) = %q, %v; want %q, true", id, got, ok, "hello")
	}
}

func TestGetUnknownID(t *testing.T) {
	r := New()
	if _, ok := r.Get(0); ok {
		t.Error("Get on empty registry should report ok=false")
	}
	if _, ok := r.Get(-1); ok {
		t.Error("Get(-1) should report ok=false")
	}
}

func TestUnregisterAndFreeListReuse(t *testing.T) {
	r := New()
	id1, _ := r.Register([]byte("a"), true)
	id2, _ := r.Register([]byte("b"), true)

	if err := r.Unregister(id1); err != nil {
		t.Fatalf("Unregister: %v", err)
	}
	if _, ok := r.Get(id1); ok {
		t.Error("Get after Unregister should report ok=false")
	}

	id3, err := r.Register([]byte("c"), true)
	if err != nil {
		t.Fatalf("Register after free: %v", err)
	}
	if id3 != id1 {
		t.Errorf("expected recycled id %d, got %d", id1, id3)
	}
	got, ok := r.Get(id2)
	if !ok || string(got) != "b" {
		t.Errorf("unrelated slot id2 disturbed: got %q, %v", got, ok)
	}
}

func TestUnregisterInvalidID(t *testing.T) {
	r := New()
	if err := r.Unregister(5); err != errs.ErrInvalidMemID {
		t.Errorf("got %v, want ErrInvalidMemID", err)
	}
	id, _ := r.Register([]byte("x"), true)
	if err := r.Unregister(id); err != nil {
		t.Fatalf("Unregister: %v", err)
	}
	if err := r.Unregister(id); err != errs.ErrInvalidMemID {
		t.Errorf("double-unregister: got %v, want ErrInvalidMemID", err)
	}
}

func TestReplace(t *testing.T) {
	r := New()
	id, _ := r.Register([]byte("old"), true)
	if err := r.Replace(id, []byte("new"), true); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	got, ok := r.Get(id)
	if !ok || string(got) != "new" {
		t.Errorf("got %q, %v; want %q, true", got, ok, "new")
	}
	if err := r.Replace(99, []byte("x"), true); err != errs.ErrInvalidMemID {
		t.Errorf("Replace unknown id: got %v, want ErrInvalidMemID", err)
	}
}

func TestClear(t *testing.T) {
	r := New()
	r.Register([]byte("a"), true)
	r.Register([]byte("b"), true)
	r.Clear()
	if r.Len() != 0 {
		t.Errorf("Len after Clear: got %d, want 0", r.Len())
	}
	if _, ok := r.Get(0); ok {
		t.Error("Get after Clear should report ok=false")
	}
}

func TestOutOfMemory(t *testing.T) {
	r := New()
	for i := 0; i < MaxSlots; i++ {
		if _, err := r.Register([]byte{byte(i)}, true); err != nil {
			t.Fatalf("Register %d: %v", i, err)
		}
	}
	if _, err := r.Register([]byte("overflow"), true); err != errs.ErrOutOfMemory {
		t.Errorf("got %v, want ErrOutOfMemory", err)
	}
}

func TestUnownedBytesNotAssumedFreed(t *testing.T) {
	r := New()
	backing := []byte("shared")
	id, err := r.Register(backing, false)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Unregister(id); err != nil {
		t.Fatalf("Unregister: %v", err)
	}
	if string(backing) != "shared" {
		t.Error("caller-owned backing array was mutated by Unregister")
	}
}
