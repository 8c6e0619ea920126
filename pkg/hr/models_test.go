package hr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrschema/pkg/schema"
)

func TestTables_DependencyOrder(t *testing.T) {
	tables, err := Tables()
	require.NoError(t, err)
	require.Len(t, tables, 7)

	var names []string
	for _, tbl := range tables {
		names = append(names, tbl.Name)
	}
	assert.Equal(t, []string{
		"jobs", "regions", "countries", "locations",
		"departments", "employees", "job_history",
	}, names)
}

func TestTable_Regions(t *testing.T) {
	tbl, err := Table("regions")
	require.NoError(t, err)

	require.NotNil(t, tbl.PrimaryKey)
	assert.Equal(t, []string{"region_id"}, tbl.PrimaryKey.Columns)

	name := tbl.GetColumnByName("region_name")
	require.NotNil(t, name)
	assert.Equal(t, "varchar(25)", name.SQLType)
	assert.True(t, name.Nullable)
}

func TestTable_Countries(t *testing.T) {
	tbl, err := Table("countries")
	require.NoError(t, err)

	id := tbl.GetColumnByName("country_id")
	require.NotNil(t, id)
	assert.Equal(t, "char(2)", id.SQLType)
	assert.False(t, id.Nullable)

	fk := tbl.GetForeignKey("countr_reg_fk")
	require.NotNil(t, fk)
	assert.Equal(t, "regions", fk.ReferencedTable)
	assert.Equal(t, []string{"region_id"}, fk.ReferencedColumns)
}

func TestTable_Locations(t *testing.T) {
	tbl, err := Table("locations")
	require.NoError(t, err)

	city := tbl.GetColumnByName("city")
	require.NotNil(t, city)
	assert.Equal(t, "varchar(30)", city.SQLType)
	assert.False(t, city.Nullable)

	require.NotNil(t, tbl.GetForeignKey("loc_c_id_fk"))
	assert.NotNil(t, tbl.GetIndex("loc_city_ix"))
	assert.NotNil(t, tbl.GetIndex("loc_state_province_ix"))
	assert.NotNil(t, tbl.GetIndex("loc_country_ix"))
}

func TestTable_Departments(t *testing.T) {
	tbl, err := Table("departments")
	require.NoError(t, err)

	mgr := tbl.GetForeignKey("dept_mgr_fk")
	require.NotNil(t, mgr)
	assert.True(t, mgr.Deferred, "manager constraint must be deferred to break the cycle")
	assert.Equal(t, "employees", mgr.ReferencedTable)

	loc := tbl.GetForeignKey("dept_loc_fk")
	require.NotNil(t, loc)
	assert.False(t, loc.Deferred)
	assert.Equal(t, "locations", loc.ReferencedTable)

	name := tbl.GetColumnByName("department_name")
	require.NotNil(t, name)
	assert.Equal(t, "varchar(30)", name.SQLType)
	assert.False(t, name.Nullable)
}

func TestTable_Jobs(t *testing.T) {
	tbl, err := Table("jobs")
	require.NoError(t, err)

	id := tbl.GetColumnByName("job_id")
	require.NotNil(t, id)
	assert.Equal(t, "varchar(10)", id.SQLType)

	title := tbl.GetColumnByName("job_title")
	require.NotNil(t, title)
	assert.Equal(t, "varchar(35)", title.SQLType)
	assert.False(t, title.Nullable)

	assert.Empty(t, tbl.ForeignKeys)
}

func TestTable_Employees(t *testing.T) {
	tbl, err := Table("employees")
	require.NoError(t, err)

	email := tbl.GetColumnByName("email")
	require.NotNil(t, email)
	assert.Equal(t, "varchar(25)", email.SQLType)
	assert.False(t, email.Nullable)
	assert.True(t, email.Unique)

	salary := tbl.GetColumnByName("salary")
	require.NotNil(t, salary)
	assert.Equal(t, "numeric(8,2)", salary.SQLType)
	assert.True(t, salary.Nullable)

	check := tbl.GetConstraint("emp_salary_min")
	require.NotNil(t, check)
	assert.Equal(t, schema.CheckConstraint, check.Type)
	assert.Equal(t, "(salary > 0)", check.Expression)

	for _, name := range []string{"emp_job_fk", "emp_manager_fk", "emp_dept_fk"} {
		assert.NotNil(t, tbl.GetForeignKey(name), name)
	}

	selfFK := tbl.GetForeignKey("emp_manager_fk")
	assert.Equal(t, "employees", selfFK.ReferencedTable)

	nameIdx := tbl.GetIndex("emp_name_ix")
	require.NotNil(t, nameIdx)
	assert.Equal(t, []string{"last_name", "first_name"}, nameIdx.Columns)

	for _, name := range []string{"emp_job_ix", "emp_manager_ix", "emp_department_ix"} {
		assert.NotNil(t, tbl.GetIndex(name), name)
	}
}

func TestTable_JobHistory(t *testing.T) {
	tbl, err := Table("job_history")
	require.NoError(t, err)

	require.NotNil(t, tbl.PrimaryKey)
	assert.Equal(t, []string{"employee_id", "start_date"}, tbl.PrimaryKey.Columns)

	check := tbl.GetConstraint("jhist_date_interval")
	require.NotNil(t, check)
	assert.Equal(t, "(end_date > start_date)", check.Expression)

	for _, name := range []string{"jhist_emp_fk", "jhist_job_fk", "jhist_dept_fk"} {
		assert.NotNil(t, tbl.GetForeignKey(name), name)
	}

	endDate := tbl.GetColumnByName("end_date")
	require.NotNil(t, endDate)
	assert.Equal(t, "date", endDate.SQLType)
	assert.False(t, endDate.Nullable)
}

func TestTables_Comments(t *testing.T) {
	tables, err := Tables()
	require.NoError(t, err)

	for _, tbl := range tables {
		assert.NotEmpty(t, tbl.Comment, "table %s should carry a comment", tbl.Name)
		for _, col := range tbl.Columns {
			assert.NotEmpty(t, col.Comment, "column %s.%s should carry a comment", tbl.Name, col.Name)
		}
	}
}

func TestSequences(t *testing.T) {
	seqs := Sequences()
	require.Len(t, seqs, 3)

	byName := make(map[string]schema.SequenceMetadata)
	for _, s := range seqs {
		byName[s.Name] = s
	}

	assert.Equal(t, int64(3300), byName["locations_seq"].Start)
	assert.Equal(t, int64(100), byName["locations_seq"].Increment)
	assert.Equal(t, int64(280), byName["departments_seq"].Start)
	assert.Equal(t, int64(10), byName["departments_seq"].Increment)
	assert.Equal(t, int64(207), byName["employees_seq"].Start)
	assert.Equal(t, int64(1), byName["employees_seq"].Increment)
}
