package store

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type item struct {
	ID   int
	Name string
}

func TestCollectionOrderAndUniqueness(t *testing.T) {
	c := NewCollection(func(i item) int { return i.ID })
	c.Replace([]item{{1, "a"}, {2, "b"}, {1, "a2"}, {3, "c"}})

	want := []item{{1, "a2"}, {2, "b"}, {3, "c"}}
	if diff := cmp.Diff(want, c.All()); diff != "" {
		t.Fatalf("unexpected contents (-want +got):\n%s", diff)
	}

	if !c.Upsert(item{4, "d"}) {
		t.Fatal("expected insert for new key")
	}
	if c.Upsert(item{2, "b2"}) {
		t.Fatal("expected replace for existing key")
	}
	if !c.Remove(1) || c.Remove(1) {
		t.Fatal("expected exactly one successful remove")
	}

	want = []item{{2, "b2"}, {3, "c"}, {4, "d"}}
	if diff := cmp.Diff(want, c.All()); diff != "" {
		t.Fatalf("unexpected contents (-want +got):\n%s", diff)
	}
	if got, ok := c.Get(3); !ok || got.Name != "c" {
		t.Fatalf("expected item 3, got %+v", got)
	}
	if c.Len() != 3 {
		t.Fatalf("expected len 3, got %d", c.Len())
	}
}
