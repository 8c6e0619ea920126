package hr

import "hrschema/pkg/schema"

// ViewName is the name of the derived employee details view.
const ViewName = "emp_details_view"

// viewColumns is the fixed projection of the view, in declaration order.
var viewColumns = []string{
	"employee_id",
	"job_id",
	"manager_id",
	"department_id",
	"location_id",
	"country_id",
	"first_name",
	"last_name",
	"salary",
	"commission_pct",
	"department_name",
	"job_title",
	"city",
	"state_province",
	"country_name",
	"region_name",
}

// viewQuery joins all six base entities with inner joins: an employee whose
// department, job, location, country, or region link is missing does not
// appear in the view.
const viewQuery = `SELECT
    e.employee_id,
    e.job_id,
    e.manager_id,
    e.department_id,
    d.location_id,
    l.country_id,
    e.first_name,
    e.last_name,
    e.salary,
    e.commission_pct,
    d.department_name,
    j.job_title,
    l.city,
    l.state_province,
    c.country_name,
    r.region_name
FROM employees e
    JOIN departments d ON e.department_id = d.department_id
    JOIN jobs j ON e.job_id = j.job_id
    JOIN locations l ON d.location_id = l.location_id
    JOIN countries c ON l.country_id = c.country_id
    JOIN regions r ON c.region_id = r.region_id`

// View returns the metadata of the employee details view. The view is
// recomputed on every read and never materialized.
func View() schema.ViewMetadata {
	return schema.ViewMetadata{
		Name:    ViewName,
		Columns: viewColumns,
		Query:   viewQuery,
		Comment: "Joined projection of employees with fully resolved department, job, location, country, and region.",
	}
}

// EmployeeDetails is one row of the view.
type EmployeeDetails struct {
	EmployeeID     int
	JobID          string
	ManagerID      *int
	DepartmentID   int
	LocationID     int
	CountryID      string
	FirstName      *string
	LastName       string
	Salary         *float64
	CommissionPct  *float64
	DepartmentName string
	JobTitle       string
	City           string
	StateProvince  *string
	CountryName    string
	RegionName     string
}
