package hr

import (
	"fmt"
	"sync"

	"hrschema/pkg/registry"
	"hrschema/pkg/schema"
)

// Models lists every entity of the schema. Registration order is not
// significant; creation order is derived from the foreign key graph.
func Models() []any {
	return []any{
		Region{},
		Country{},
		Location{},
		Department{},
		Job{},
		Employee{},
		JobHistory{},
	}
}

var (
	buildOnce sync.Once
	buildErr  error
	reg       *registry.Registry
	ordered   []*schema.TableMetadata
)

func build() {
	reg = registry.NewRegistry()
	for _, model := range Models() {
		if err := reg.Register(model); err != nil {
			buildErr = fmt.Errorf("register %T: %w", model, err)
			return
		}
	}

	tables := reg.All()
	attachComments(tables)

	ordered, buildErr = schema.SortByDependency(tables)
}

// Tables returns the metadata of all seven tables in dependency order
// (leaves first): jobs, regions, countries, locations, departments,
// employees, job_history.
func Tables() ([]*schema.TableMetadata, error) {
	buildOnce.Do(build)
	if buildErr != nil {
		return nil, buildErr
	}
	return ordered, nil
}

// Table returns the metadata of a single table by name.
func Table(name string) (*schema.TableMetadata, error) {
	buildOnce.Do(build)
	if buildErr != nil {
		return nil, buildErr
	}
	return reg.GetByName(name)
}

// Sequences returns the standalone sequences that supply surrogate keys.
// Increments follow the classic HR reference schema: department and location
// ids are spaced so blocks of ids can be reserved per site.
func Sequences() []schema.SequenceMetadata {
	return []schema.SequenceMetadata{
		{Name: "locations_seq", Start: 3300, Increment: 100},
		{Name: "departments_seq", Start: 280, Increment: 10},
		{Name: "employees_seq", Start: 207, Increment: 1},
	}
}

// attachComments copies the descriptive metadata onto the parsed tables.
func attachComments(tables []*schema.TableMetadata) {
	for _, t := range tables {
		t.Comment = tableComments[t.Name]
		for i := range t.Columns {
			t.Columns[i].Comment = columnComments[t.Name][t.Columns[i].Name]
		}
	}
}
