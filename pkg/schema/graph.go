package schema

import (
	"fmt"
	"sort"
	"strings"
)

// SortByDependency orders tables so that every table appears after the tables
// it references (leaves first), which is the order they must be created in.
// Deferred foreign keys and self-references are excluded from the graph;
// anything cyclic beyond that is an error naming the tables involved.
func SortByDependency(tables []*TableMetadata) ([]*TableMetadata, error) {
	byName := make(map[string]*TableMetadata, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}

	// In-degree counts only edges to tables present in the set.
	inDegree := make(map[string]int, len(tables))
	dependents := make(map[string][]string, len(tables))
	for _, t := range tables {
		inDegree[t.Name] = 0
	}
	for _, t := range tables {
		for _, fk := range t.ForeignKeys {
			if fk.Deferred || fk.ReferencedTable == t.Name {
				continue
			}
			if _, ok := byName[fk.ReferencedTable]; !ok {
				return nil, fmt.Errorf("table %s references unknown table %s", t.Name, fk.ReferencedTable)
			}
			inDegree[t.Name]++
			dependents[fk.ReferencedTable] = append(dependents[fk.ReferencedTable], t.Name)
		}
	}

	// Kahn's algorithm with a sorted frontier for deterministic output.
	var frontier []string
	for name, deg := range inDegree {
		if deg == 0 {
			frontier = append(frontier, name)
		}
	}
	sort.Strings(frontier)

	ordered := make([]*TableMetadata, 0, len(tables))
	for len(frontier) > 0 {
		name := frontier[0]
		frontier = frontier[1:]
		ordered = append(ordered, byName[name])

		next := dependents[name]
		sort.Strings(next)
		for _, dep := range next {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				frontier = append(frontier, dep)
			}
		}
	}

	if len(ordered) != len(tables) {
		var cyclic []string
		for name, deg := range inDegree {
			if deg > 0 {
				cyclic = append(cyclic, name)
			}
		}
		sort.Strings(cyclic)
		return nil, fmt.Errorf("cyclic foreign key references between tables: %s (mark one side deferred)",
			strings.Join(cyclic, ", "))
	}

	return ordered, nil
}

// DeferredForeignKeys collects all deferred foreign keys in table order,
// paired with the table that owns them. These are added with ALTER TABLE
// after every table exists.
type DeferredForeignKey struct {
	Table      string
	ForeignKey ForeignKeyMetadata
}

// CollectDeferred returns the deferred foreign keys of the given tables.
func CollectDeferred(tables []*TableMetadata) []DeferredForeignKey {
	var deferred []DeferredForeignKey
	for _, t := range tables {
		for _, fk := range t.ForeignKeys {
			if fk.Deferred {
				deferred = append(deferred, DeferredForeignKey{Table: t.Name, ForeignKey: fk})
			}
		}
	}
	return deferred
}
