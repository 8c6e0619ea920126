// Package hr declares the Human Resources schema: seven tables, their keys,
// referential constraints, secondary indexes, sequences, one derived view,
// and the descriptive comments that document them.
package hr

import (
	"time"

	"hrschema/pkg/schema"
)

// Region is a geographic region, referenced by countries.
type Region struct {
	RegionID   int    `hr:"region_id,integer,primaryKey"`
	RegionName string `hr:"region_name,varchar(25)"`
}

func (Region) TableName() string { return "regions" }

// Country belongs to at most one region. The key is a two-character
// ISO 3166 code.
type Country struct {
	CountryID   string `hr:"country_id,char(2),primaryKey"`
	CountryName string `hr:"country_name,varchar(60)"`
	RegionID    *int   `hr:"region_id,integer,fk(regions.region_id),fkName(countr_reg_fk)"`
}

func (Country) TableName() string { return "countries" }

// Location is a physical site. Only the city is required.
type Location struct {
	LocationID    int     `hr:"location_id,integer,primaryKey"`
	StreetAddress *string `hr:"street_address,varchar(40)"`
	PostalCode    *string `hr:"postal_code,varchar(12)"`
	City          string  `hr:"city,varchar(30),notNull,index(loc_city_ix)"`
	StateProvince *string `hr:"state_province,varchar(25),index(loc_state_province_ix)"`
	CountryID     *string `hr:"country_id,char(2),fk(countries.country_id),fkName(loc_c_id_fk),index(loc_country_ix)"`
}

func (Location) TableName() string { return "locations" }

// Department has a manager who is an employee, while employees belong to
// departments. The manager foreign key is deferred so the two tables can be
// created in either order and the cycle closed afterwards.
type Department struct {
	DepartmentID   int    `hr:"department_id,integer,primaryKey"`
	DepartmentName string `hr:"department_name,varchar(30),notNull"`
	ManagerID      *int   `hr:"manager_id,integer,fk(employees.employee_id),fkName(dept_mgr_fk),deferred"`
	LocationID     *int   `hr:"location_id,integer,fk(locations.location_id),fkName(dept_loc_fk),index(dept_location_ix)"`
}

func (Department) TableName() string { return "departments" }

// Job is a job definition with an advisory salary band.
type Job struct {
	JobID     string `hr:"job_id,varchar(10),primaryKey"`
	JobTitle  string `hr:"job_title,varchar(35),notNull"`
	MinSalary *int   `hr:"min_salary,integer"`
	MaxSalary *int   `hr:"max_salary,integer"`
}

func (Job) TableName() string { return "jobs" }

// Employee is the central entity. Email is unique, salary must be positive,
// and the manager reference is self-referential.
type Employee struct {
	EmployeeID    int       `hr:"employee_id,integer,primaryKey"`
	FirstName     *string   `hr:"first_name,varchar(20)"`
	LastName      string    `hr:"last_name,varchar(25),notNull"`
	Email         string    `hr:"email,varchar(25),notNull,unique"`
	PhoneNumber   *string   `hr:"phone_number,varchar(20)"`
	HireDate      time.Time `hr:"hire_date,date,notNull"`
	JobID         string    `hr:"job_id,varchar(10),notNull,fk(jobs.job_id),fkName(emp_job_fk),index(emp_job_ix)"`
	Salary        *float64  `hr:"salary,numeric(8,2),check(salary > 0),checkName(emp_salary_min)"`
	CommissionPct *float64  `hr:"commission_pct,numeric(2,2)"`
	ManagerID     *int      `hr:"manager_id,integer,fk(employees.employee_id),fkName(emp_manager_fk),index(emp_manager_ix)"`
	DepartmentID  *int      `hr:"department_id,integer,fk(departments.department_id),fkName(emp_dept_fk),index(emp_department_ix)"`
}

func (Employee) TableName() string { return "employees" }

// Indexes declares the multi-column name index, which column tags cannot
// express.
func (Employee) Indexes() []schema.IndexMetadata {
	return []schema.IndexMetadata{
		{Name: "emp_name_ix", Columns: []string{"last_name", "first_name"}},
	}
}

// JobHistory records past assignments. The key is composite: one row per
// employee per start date, and every interval must end after it starts.
type JobHistory struct {
	EmployeeID   int       `hr:"employee_id,integer,primaryKey,fk(employees.employee_id),fkName(jhist_emp_fk),index(jhist_employee_ix)"`
	StartDate    time.Time `hr:"start_date,date,primaryKey"`
	EndDate      time.Time `hr:"end_date,date,notNull,check(end_date > start_date),checkName(jhist_date_interval)"`
	JobID        string    `hr:"job_id,varchar(10),notNull,fk(jobs.job_id),fkName(jhist_job_fk),index(jhist_job_ix)"`
	DepartmentID *int      `hr:"department_id,integer,fk(departments.department_id),fkName(jhist_dept_fk),index(jhist_department_ix)"`
}

func (JobHistory) TableName() string { return "job_history" }
