package schema

import (
	"strings"
	"testing"
)

func table(name string, fks ...ForeignKeyMetadata) *TableMetadata {
	return &TableMetadata{
		Name:        name,
		Columns:     []ColumnMetadata{{Name: "id", SQLType: "integer"}},
		ForeignKeys: fks,
	}
}

func fkTo(name, target string) ForeignKeyMetadata {
	return ForeignKeyMetadata{
		Name:              name,
		Columns:           []string{"ref_id"},
		ReferencedTable:   target,
		ReferencedColumns: []string{"id"},
	}
}

func names(tables []*TableMetadata) []string {
	out := make([]string, len(tables))
	for i, t := range tables {
		out[i] = t.Name
	}
	return out
}

func TestSortByDependency(t *testing.T) {
	t.Run("references precede dependents", func(t *testing.T) {
		tables := []*TableMetadata{
			table("c", fkTo("c_b_fk", "b")),
			table("b", fkTo("b_a_fk", "a")),
			table("a"),
		}

		ordered, err := SortByDependency(tables)
		if err != nil {
			t.Fatalf("SortByDependency failed: %v", err)
		}

		got := strings.Join(names(ordered), ",")
		if got != "a,b,c" {
			t.Errorf("expected a,b,c, got %s", got)
		}
	})

	t.Run("deterministic among independents", func(t *testing.T) {
		tables := []*TableMetadata{
			table("zebra"),
			table("apple"),
			table("mango"),
		}

		for i := 0; i < 10; i++ {
			ordered, err := SortByDependency(tables)
			if err != nil {
				t.Fatalf("SortByDependency failed: %v", err)
			}
			got := strings.Join(names(ordered), ",")
			if got != "apple,mango,zebra" {
				t.Fatalf("expected alphabetical order, got %s", got)
			}
		}
	})

	t.Run("self reference ignored", func(t *testing.T) {
		tables := []*TableMetadata{
			table("staff", fkTo("staff_mgr_fk", "staff")),
		}

		ordered, err := SortByDependency(tables)
		if err != nil {
			t.Fatalf("SortByDependency failed: %v", err)
		}
		if len(ordered) != 1 || ordered[0].Name != "staff" {
			t.Errorf("expected single table, got %v", names(ordered))
		}
	})

	t.Run("deferred edge breaks cycle", func(t *testing.T) {
		deferredFK := fkTo("dept_head_fk", "people")
		deferredFK.Deferred = true

		tables := []*TableMetadata{
			table("people", fkTo("people_dept_fk", "depts")),
			table("depts", deferredFK),
		}

		ordered, err := SortByDependency(tables)
		if err != nil {
			t.Fatalf("SortByDependency failed: %v", err)
		}
		got := strings.Join(names(ordered), ",")
		if got != "depts,people" {
			t.Errorf("expected depts,people, got %s", got)
		}
	})

	t.Run("cycle without deferred edge is an error", func(t *testing.T) {
		tables := []*TableMetadata{
			table("people", fkTo("people_dept_fk", "depts")),
			table("depts", fkTo("dept_head_fk", "people")),
		}

		_, err := SortByDependency(tables)
		if err == nil {
			t.Fatal("expected cycle error")
		}
		if !strings.Contains(err.Error(), "depts") || !strings.Contains(err.Error(), "people") {
			t.Errorf("expected error to name the cyclic tables, got: %v", err)
		}
	})

	t.Run("unknown reference is an error", func(t *testing.T) {
		tables := []*TableMetadata{
			table("people", fkTo("people_dept_fk", "nowhere")),
		}

		if _, err := SortByDependency(tables); err == nil {
			t.Fatal("expected error for unknown referenced table")
		}
	})
}

func TestCollectDeferred(t *testing.T) {
	deferredFK := fkTo("dept_head_fk", "people")
	deferredFK.Deferred = true

	tables := []*TableMetadata{
		table("people", fkTo("people_dept_fk", "depts")),
		table("depts", deferredFK),
	}

	deferred := CollectDeferred(tables)
	if len(deferred) != 1 {
		t.Fatalf("expected 1 deferred foreign key, got %d", len(deferred))
	}
	if deferred[0].Table != "depts" || deferred[0].ForeignKey.Name != "dept_head_fk" {
		t.Errorf("unexpected deferred entry: %+v", deferred[0])
	}
}
