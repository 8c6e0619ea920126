// Package store provides typed row access for the HR schema: inserts for
// each entity, the seed loader, and queries over the employee details view.
package store

import (
	"context"
	"fmt"

	"hrschema/pkg/hr"
	"hrschema/pkg/runtime"
)

// Store executes typed statements against the HR schema. Constraint
// violations surface as the runtime package's sentinel errors.
type Store struct {
	db *runtime.DB
}

// New creates a store over an open database connection.
func New(db *runtime.DB) *Store {
	return &Store{db: db}
}

// InsertRegion inserts one region row.
func (s *Store) InsertRegion(ctx context.Context, r hr.Region) error {
	_, err := s.db.Exec(ctx,
		"INSERT INTO regions (region_id, region_name) VALUES ($1, $2)",
		r.RegionID, r.RegionName)
	return err
}

// InsertCountry inserts one country row.
func (s *Store) InsertCountry(ctx context.Context, c hr.Country) error {
	_, err := s.db.Exec(ctx,
		"INSERT INTO countries (country_id, country_name, region_id) VALUES ($1, $2, $3)",
		c.CountryID, c.CountryName, c.RegionID)
	return err
}

// InsertLocation inserts one location row.
func (s *Store) InsertLocation(ctx context.Context, l hr.Location) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO locations (location_id, street_address, postal_code, city, state_province, country_id)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.LocationID, l.StreetAddress, l.PostalCode, l.City, l.StateProvince, l.CountryID)
	return err
}

// InsertJob inserts one job row.
func (s *Store) InsertJob(ctx context.Context, j hr.Job) error {
	_, err := s.db.Exec(ctx,
		"INSERT INTO jobs (job_id, job_title, min_salary, max_salary) VALUES ($1, $2, $3, $4)",
		j.JobID, j.JobTitle, j.MinSalary, j.MaxSalary)
	return err
}

// InsertDepartment inserts one department row.
func (s *Store) InsertDepartment(ctx context.Context, d hr.Department) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO departments (department_id, department_name, manager_id, location_id)
		VALUES ($1, $2, $3, $4)`,
		d.DepartmentID, d.DepartmentName, d.ManagerID, d.LocationID)
	return err
}

// InsertEmployee inserts one employee row.
func (s *Store) InsertEmployee(ctx context.Context, e hr.Employee) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO employees (employee_id, first_name, last_name, email, phone_number,
			hire_date, job_id, salary, commission_pct, manager_id, department_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.EmployeeID, e.FirstName, e.LastName, e.Email, e.PhoneNumber,
		e.HireDate, e.JobID, e.Salary, e.CommissionPct, e.ManagerID, e.DepartmentID)
	return err
}

// InsertJobHistory inserts one job history row.
func (s *Store) InsertJobHistory(ctx context.Context, jh hr.JobHistory) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO job_history (employee_id, start_date, end_date, job_id, department_id)
		VALUES ($1, $2, $3, $4, $5)`,
		jh.EmployeeID, jh.StartDate, jh.EndDate, jh.JobID, jh.DepartmentID)
	return err
}

// SetDepartmentManager assigns a manager to a department. The deferred
// manager constraint makes this a second step after employees exist.
func (s *Store) SetDepartmentManager(ctx context.Context, departmentID, employeeID int) error {
	affected, err := s.db.Exec(ctx,
		"UPDATE departments SET manager_id = $1 WHERE department_id = $2",
		employeeID, departmentID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("department %d: %w", departmentID, runtime.ErrNotFound)
	}
	return nil
}

// SetDepartmentLocation moves a department, or detaches it from any location
// when locationID is nil.
func (s *Store) SetDepartmentLocation(ctx context.Context, departmentID int, locationID *int) error {
	affected, err := s.db.Exec(ctx,
		"UPDATE departments SET location_id = $1 WHERE department_id = $2",
		locationID, departmentID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("department %d: %w", departmentID, runtime.ErrNotFound)
	}
	return nil
}

// Seed loads the sample dataset in dependency order. Department managers are
// assigned after the employees exist, matching the deferred constraint.
// Partial loads are not rolled back; run against an empty schema.
func (s *Store) Seed(ctx context.Context) error {
	for _, r := range hr.SampleRegions() {
		if err := s.InsertRegion(ctx, r); err != nil {
			return fmt.Errorf("seed regions: %w", err)
		}
	}
	for _, c := range hr.SampleCountries() {
		if err := s.InsertCountry(ctx, c); err != nil {
			return fmt.Errorf("seed countries: %w", err)
		}
	}
	for _, l := range hr.SampleLocations() {
		if err := s.InsertLocation(ctx, l); err != nil {
			return fmt.Errorf("seed locations: %w", err)
		}
	}
	for _, j := range hr.SampleJobs() {
		if err := s.InsertJob(ctx, j); err != nil {
			return fmt.Errorf("seed jobs: %w", err)
		}
	}
	for _, d := range hr.SampleDepartments() {
		if err := s.InsertDepartment(ctx, d); err != nil {
			return fmt.Errorf("seed departments: %w", err)
		}
	}
	for _, e := range hr.SampleEmployees() {
		if err := s.InsertEmployee(ctx, e); err != nil {
			return fmt.Errorf("seed employees: %w", err)
		}
	}
	for deptID, empID := range hr.SampleDepartmentManagers() {
		if err := s.SetDepartmentManager(ctx, deptID, empID); err != nil {
			return fmt.Errorf("seed department managers: %w", err)
		}
	}
	for _, jh := range hr.SampleJobHistory() {
		if err := s.InsertJobHistory(ctx, jh); err != nil {
			return fmt.Errorf("seed job history: %w", err)
		}
	}
	return nil
}

const employeeDetailsColumns = `employee_id, job_id, manager_id, department_id, location_id,
	country_id, first_name, last_name, salary, commission_pct,
	department_name, job_title, city, state_province, country_name, region_name`

// EmployeeDetails returns every row of the employee details view, ordered by
// employee id.
func (s *Store) EmployeeDetails(ctx context.Context) ([]hr.EmployeeDetails, error) {
	rows, err := s.db.Query(ctx, fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY employee_id", employeeDetailsColumns, hr.ViewName))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []hr.EmployeeDetails
	for rows.Next() {
		var d hr.EmployeeDetails
		err := rows.Scan(
			&d.EmployeeID, &d.JobID, &d.ManagerID, &d.DepartmentID, &d.LocationID,
			&d.CountryID, &d.FirstName, &d.LastName, &d.Salary, &d.CommissionPct,
			&d.DepartmentName, &d.JobTitle, &d.City, &d.StateProvince, &d.CountryName, &d.RegionName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan view row: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// EmployeeDetailsByID returns one view row, or runtime.ErrNotFound when the
// employee is absent from the view.
func (s *Store) EmployeeDetailsByID(ctx context.Context, employeeID int) (*hr.EmployeeDetails, error) {
	var d hr.EmployeeDetails
	err := s.db.QueryRow(ctx, fmt.Sprintf(
		"SELECT %s FROM %s WHERE employee_id = $1", employeeDetailsColumns, hr.ViewName),
		employeeID,
	).Scan(
		&d.EmployeeID, &d.JobID, &d.ManagerID, &d.DepartmentID, &d.LocationID,
		&d.CountryID, &d.FirstName, &d.LastName, &d.Salary, &d.CommissionPct,
		&d.DepartmentName, &d.JobTitle, &d.City, &d.StateProvince, &d.CountryName, &d.RegionName,
	)
	if err != nil {
		return nil, runtime.MapError(err)
	}
	return &d, nil
}

// CountRows returns the row count of a table. The table name must come from
// schema metadata, never from user input.
func (s *Store) CountRows(ctx context.Context, table string) (int64, error) {
	var count int64
	err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count)
	return count, err
}

// NextID draws the next value from a sequence.
func (s *Store) NextID(ctx context.Context, sequence string) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, "SELECT nextval($1)", sequence).Scan(&id)
	return id, err
}
