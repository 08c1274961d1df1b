package authors

import (
	"reflect"
	"testing"
)

func TestRegistry_SequentialAndStable(t *testing.T) {
	r := NewRegistry()
	names := []string{"Smith, J.", "Doe, A.", "Smith, J.", "Lee, R.", "Doe, A."}
	var ids []int
	var created int
	for _, n := range names {
		id, isNew := r.Resolve(n)
		ids = append(ids, id)
		if isNew {
			created++
		}
	}
	if !reflect.DeepEqual(ids, []int{1, 2, 1, 3, 2}) {
		t.Fatalf("ids = %v", ids)
	}
	if created != 3 || r.Len() != 3 {
		t.Fatalf("created=%d len=%d", created, r.Len())
	}
	want := []Entity{{1, "Smith, J."}, {2, "Doe, A."}, {3, "Lee, R."}}
	if got := r.Entities(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Entities = %+v", got)
	}
}

func TestRegistry_ExactIdentity(t *testing.T) {
	r := NewRegistry()
	a, _ := r.Resolve("Ann Lee")
	b, _ := r.Resolve("Ann  Lee")
	c, _ := r.Resolve("ann lee")
	if a == b || a == c || b == c {
		t.Fatalf("distinct spellings must get distinct ids: %d %d %d", a, b, c)
	}
}
