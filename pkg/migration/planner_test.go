package migration

import (
	"strings"
	"testing"

	"hrschema/pkg/hr"
	"hrschema/pkg/schema"
)

func hrSchema(t *testing.T) *Schema {
	t.Helper()
	tables, err := hr.Tables()
	if err != nil {
		t.Fatalf("failed to build HR metadata: %v", err)
	}
	return &Schema{
		Tables:    tables,
		Sequences: hr.Sequences(),
		Views:     []schema.ViewMetadata{hr.View()},
	}
}

func TestGenerateSchema_TableOrder(t *testing.T) {
	planner := NewPlanner()
	up, _ := planner.GenerateSchema(hrSchema(t))

	order := []string{
		"CREATE TABLE IF NOT EXISTS jobs",
		"CREATE TABLE IF NOT EXISTS regions",
		"CREATE TABLE IF NOT EXISTS countries",
		"CREATE TABLE IF NOT EXISTS locations",
		"CREATE TABLE IF NOT EXISTS departments",
		"CREATE TABLE IF NOT EXISTS employees",
		"CREATE TABLE IF NOT EXISTS job_history",
	}

	last := -1
	for _, stmt := range order {
		idx := strings.Index(up, stmt)
		if idx == -1 {
			t.Fatalf("missing statement %q", stmt)
		}
		if idx < last {
			t.Errorf("statement %q out of dependency order", stmt)
		}
		last = idx
	}
}

func TestGenerateSchema_SequencesFirst(t *testing.T) {
	planner := NewPlanner()
	up, _ := planner.GenerateSchema(hrSchema(t))

	for _, stmt := range []string{
		"CREATE SEQUENCE IF NOT EXISTS locations_seq START WITH 3300 INCREMENT BY 100;",
		"CREATE SEQUENCE IF NOT EXISTS departments_seq START WITH 280 INCREMENT BY 10;",
		"CREATE SEQUENCE IF NOT EXISTS employees_seq START WITH 207;",
	} {
		if !strings.Contains(up, stmt) {
			t.Errorf("missing sequence statement %q", stmt)
		}
	}

	firstTable := strings.Index(up, "CREATE TABLE")
	lastSeq := strings.LastIndex(up, "CREATE SEQUENCE")
	if lastSeq > firstTable {
		t.Error("sequences must be created before tables")
	}
}

func TestGenerateSchema_DeferredManagerConstraint(t *testing.T) {
	planner := NewPlanner()
	up, _ := planner.GenerateSchema(hrSchema(t))

	alter := "ALTER TABLE departments ADD CONSTRAINT dept_mgr_fk FOREIGN KEY (manager_id) REFERENCES employees (employee_id);"
	if !strings.Contains(up, alter) {
		t.Fatalf("missing deferred constraint statement, got:\n%s", up)
	}

	// The deferred key must not appear inside CREATE TABLE departments.
	start := strings.Index(up, "CREATE TABLE IF NOT EXISTS departments")
	end := strings.Index(up[start:], ";")
	createStmt := up[start : start+end]
	if strings.Contains(createStmt, "dept_mgr_fk") {
		t.Error("deferred foreign key leaked into CREATE TABLE")
	}

	// And it must come after every table exists.
	if strings.Index(up, alter) < strings.Index(up, "CREATE TABLE IF NOT EXISTS employees") {
		t.Error("deferred constraint added before employees table")
	}
}

func TestGenerateSchema_EmployeesTable(t *testing.T) {
	planner := NewPlanner()
	up, _ := planner.GenerateSchema(hrSchema(t))

	for _, fragment := range []string{
		"email varchar(25) NOT NULL UNIQUE",
		"salary numeric(8,2)",
		"CONSTRAINT emp_salary_min CHECK (salary > 0)",
		"CONSTRAINT emp_job_fk FOREIGN KEY (job_id) REFERENCES jobs (job_id)",
		"CONSTRAINT emp_manager_fk FOREIGN KEY (manager_id) REFERENCES employees (employee_id)",
		"CONSTRAINT emp_dept_fk FOREIGN KEY (department_id) REFERENCES departments (department_id)",
	} {
		if !strings.Contains(up, fragment) {
			t.Errorf("missing fragment %q", fragment)
		}
	}
}

func TestGenerateSchema_CompositePrimaryKey(t *testing.T) {
	planner := NewPlanner()
	up, _ := planner.GenerateSchema(hrSchema(t))

	if !strings.Contains(up, "CONSTRAINT job_history_pkey PRIMARY KEY (employee_id, start_date)") {
		t.Error("missing composite primary key for job_history")
	}
	if !strings.Contains(up, "CONSTRAINT jhist_date_interval CHECK (end_date > start_date)") {
		t.Error("missing date interval check for job_history")
	}
}

func TestGenerateSchema_Indexes(t *testing.T) {
	planner := NewPlanner()
	up, _ := planner.GenerateSchema(hrSchema(t))

	for _, stmt := range []string{
		"CREATE INDEX IF NOT EXISTS emp_name_ix ON employees (last_name, first_name);",
		"CREATE INDEX IF NOT EXISTS loc_city_ix ON locations (city);",
		"CREATE INDEX IF NOT EXISTS jhist_employee_ix ON job_history (employee_id);",
		"CREATE INDEX IF NOT EXISTS dept_location_ix ON departments (location_id);",
	} {
		if !strings.Contains(up, stmt) {
			t.Errorf("missing index statement %q", stmt)
		}
	}
}

func TestGenerateSchema_View(t *testing.T) {
	planner := NewPlanner()
	up, _ := planner.GenerateSchema(hrSchema(t))

	if !strings.Contains(up, "CREATE OR REPLACE VIEW emp_details_view (") {
		t.Fatal("missing view creation")
	}
	viewIdx := strings.Index(up, "CREATE OR REPLACE VIEW")
	lastTableIdx := strings.LastIndex(up, "CREATE TABLE")
	if viewIdx < lastTableIdx {
		t.Error("view must be created after all tables")
	}
}

func TestGenerateSchema_Comments(t *testing.T) {
	planner := NewPlanner()
	up, _ := planner.GenerateSchema(hrSchema(t))

	if !strings.Contains(up, "COMMENT ON TABLE employees IS") {
		t.Error("missing table comment for employees")
	}
	if !strings.Contains(up, "COMMENT ON COLUMN employees.salary IS") {
		t.Error("missing column comment for employees.salary")
	}
	if !strings.Contains(up, "COMMENT ON VIEW emp_details_view IS") {
		t.Error("missing view comment")
	}

	// Comment text with semicolons must be quoted as a single literal.
	if !strings.Contains(up, "'Phone number of the employee; includes country code and area code.'") {
		t.Error("expected semicolon-bearing comment to survive quoting")
	}
}

func TestGenerateSchema_Down(t *testing.T) {
	planner := NewPlanner()
	_, down := planner.GenerateSchema(hrSchema(t))

	dropView := strings.Index(down, "DROP VIEW IF EXISTS emp_details_view;")
	dropConstraint := strings.Index(down, "ALTER TABLE departments DROP CONSTRAINT IF EXISTS dept_mgr_fk;")
	dropEmployees := strings.Index(down, "DROP TABLE IF EXISTS employees;")
	dropJobs := strings.Index(down, "DROP TABLE IF EXISTS jobs;")
	dropSeq := strings.Index(down, "DROP SEQUENCE IF EXISTS locations_seq;")

	for name, idx := range map[string]int{
		"view": dropView, "constraint": dropConstraint,
		"employees": dropEmployees, "jobs": dropJobs, "sequence": dropSeq,
	} {
		if idx == -1 {
			t.Fatalf("missing %s drop statement", name)
		}
	}

	if !(dropView < dropConstraint && dropConstraint < dropEmployees) {
		t.Error("down must drop view, then deferred constraint, then tables")
	}
	if !(dropEmployees < dropJobs) {
		t.Error("tables must drop in reverse creation order")
	}
	if dropSeq < dropJobs {
		t.Error("sequences must drop after tables")
	}
}

func TestPlannerOptions_NoIfNotExists(t *testing.T) {
	planner := NewPlannerWithOptions(PlannerOptions{IfNotExists: false})
	up, _ := planner.GenerateSchema(hrSchema(t))

	if strings.Contains(up, "IF NOT EXISTS") {
		t.Error("expected no IF NOT EXISTS clauses")
	}
	if !strings.Contains(up, "CREATE TABLE employees (") {
		t.Error("expected plain CREATE TABLE")
	}
}

func TestQuoteLiteral(t *testing.T) {
	if got := quoteLiteral("it's"); got != "'it''s'" {
		t.Errorf("quoteLiteral = %s", got)
	}
}
