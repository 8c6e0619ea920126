package hr

import "time"

// Sample dataset: a representative, referentially consistent subset of the
// classic HR data. Used by the seed command and the integration tests.

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

// SampleRegions returns the four regions.
func SampleRegions() []Region {
	return []Region{
		{RegionID: 1, RegionName: "Europe"},
		{RegionID: 2, RegionName: "Americas"},
		{RegionID: 3, RegionName: "Asia"},
		{RegionID: 4, RegionName: "Middle East and Africa"},
	}
}

// SampleCountries returns a subset of the countries.
func SampleCountries() []Country {
	return []Country{
		{CountryID: "CA", CountryName: "Canada", RegionID: ptr(2)},
		{CountryID: "DE", CountryName: "Germany", RegionID: ptr(1)},
		{CountryID: "UK", CountryName: "United Kingdom", RegionID: ptr(1)},
		{CountryID: "US", CountryName: "United States of America", RegionID: ptr(2)},
		{CountryID: "JP", CountryName: "Japan", RegionID: ptr(3)},
		{CountryID: "EG", CountryName: "Egypt", RegionID: ptr(4)},
	}
}

// SampleLocations returns a subset of the locations.
func SampleLocations() []Location {
	return []Location{
		{LocationID: 1400, StreetAddress: ptr("2014 Jabberwocky Rd"), PostalCode: ptr("26192"), City: "Southlake", StateProvince: ptr("Texas"), CountryID: ptr("US")},
		{LocationID: 1500, StreetAddress: ptr("2011 Interiors Blvd"), PostalCode: ptr("99236"), City: "South San Francisco", StateProvince: ptr("California"), CountryID: ptr("US")},
		{LocationID: 1700, StreetAddress: ptr("2004 Charade Rd"), PostalCode: ptr("98199"), City: "Seattle", StateProvince: ptr("Washington"), CountryID: ptr("US")},
		{LocationID: 1800, StreetAddress: ptr("147 Spadina Ave"), PostalCode: ptr("M5V 2L7"), City: "Toronto", StateProvince: ptr("Ontario"), CountryID: ptr("CA")},
		{LocationID: 2500, StreetAddress: ptr("Magdalen Centre, The Oxford Science Park"), PostalCode: ptr("OX9 9ZB"), City: "Oxford", StateProvince: ptr("Oxford"), CountryID: ptr("UK")},
	}
}

// SampleJobs returns a subset of the job definitions.
func SampleJobs() []Job {
	return []Job{
		{JobID: "AD_PRES", JobTitle: "President", MinSalary: ptr(20000), MaxSalary: ptr(40000)},
		{JobID: "AD_VP", JobTitle: "Administration Vice President", MinSalary: ptr(15000), MaxSalary: ptr(30000)},
		{JobID: "IT_PROG", JobTitle: "Programmer", MinSalary: ptr(4000), MaxSalary: ptr(10000)},
		{JobID: "SA_MAN", JobTitle: "Sales Manager", MinSalary: ptr(10000), MaxSalary: ptr(20000)},
		{JobID: "SA_REP", JobTitle: "Sales Representative", MinSalary: ptr(6000), MaxSalary: ptr(12000)},
		{JobID: "MK_MAN", JobTitle: "Marketing Manager", MinSalary: ptr(9000), MaxSalary: ptr(15000)},
		{JobID: "MK_REP", JobTitle: "Marketing Representative", MinSalary: ptr(4000), MaxSalary: ptr(9000)},
	}
}

// SampleDepartments returns a subset of the departments. Manager ids are nil
// here; SampleDepartmentManagers assigns them once employees exist, matching
// the deferred manager constraint.
func SampleDepartments() []Department {
	return []Department{
		{DepartmentID: 20, DepartmentName: "Marketing", LocationID: ptr(1800)},
		{DepartmentID: 60, DepartmentName: "IT", LocationID: ptr(1400)},
		{DepartmentID: 80, DepartmentName: "Sales", LocationID: ptr(2500)},
		{DepartmentID: 90, DepartmentName: "Executive", LocationID: ptr(1700)},
	}
}

// SampleDepartmentManagers maps department id to the employee who manages it.
func SampleDepartmentManagers() map[int]int {
	return map[int]int{
		20: 201,
		60: 103,
		80: 145,
		90: 100,
	}
}

// SampleEmployees returns a subset of the employees. Managers precede their
// reports so rows can be inserted in order.
func SampleEmployees() []Employee {
	return []Employee{
		{EmployeeID: 100, FirstName: ptr("Steven"), LastName: "King", Email: "SKING", HireDate: date(2003, time.June, 17), JobID: "AD_PRES", Salary: ptr(24000.0), DepartmentID: ptr(90)},
		{EmployeeID: 101, FirstName: ptr("Neena"), LastName: "Kochhar", Email: "NKOCHHAR", HireDate: date(2005, time.September, 21), JobID: "AD_VP", Salary: ptr(17000.0), ManagerID: ptr(100), DepartmentID: ptr(90)},
		{EmployeeID: 103, FirstName: ptr("Alexander"), LastName: "Hunold", Email: "AHUNOLD", HireDate: date(2006, time.January, 3), JobID: "IT_PROG", Salary: ptr(9000.0), ManagerID: ptr(101), DepartmentID: ptr(60)},
		{EmployeeID: 104, FirstName: ptr("Bruce"), LastName: "Ernst", Email: "BERNST", HireDate: date(2007, time.May, 21), JobID: "IT_PROG", Salary: ptr(6000.0), ManagerID: ptr(103), DepartmentID: ptr(60)},
		{EmployeeID: 145, FirstName: ptr("John"), LastName: "Russell", Email: "JRUSSEL", HireDate: date(2004, time.October, 1), JobID: "SA_MAN", Salary: ptr(14000.0), CommissionPct: ptr(0.4), ManagerID: ptr(100), DepartmentID: ptr(80)},
		{EmployeeID: 150, FirstName: ptr("Peter"), LastName: "Tucker", Email: "PTUCKER", HireDate: date(2005, time.January, 30), JobID: "SA_REP", Salary: ptr(10000.0), CommissionPct: ptr(0.3), ManagerID: ptr(145), DepartmentID: ptr(80)},
		{EmployeeID: 176, FirstName: ptr("Jonathon"), LastName: "Taylor", Email: "JTAYLOR", HireDate: date(2006, time.March, 24), JobID: "SA_REP", Salary: ptr(8600.0), CommissionPct: ptr(0.2), ManagerID: ptr(145), DepartmentID: ptr(80)},
		{EmployeeID: 201, FirstName: ptr("Michael"), LastName: "Hartstein", Email: "MHARTSTE", HireDate: date(2004, time.February, 17), JobID: "MK_MAN", Salary: ptr(13000.0), ManagerID: ptr(100), DepartmentID: ptr(20)},
		{EmployeeID: 202, FirstName: ptr("Pat"), LastName: "Fay", Email: "PFAY", HireDate: date(2005, time.August, 17), JobID: "MK_REP", Salary: ptr(6000.0), ManagerID: ptr(201), DepartmentID: ptr(20)},
	}
}

// SampleJobHistory returns a subset of the job history rows.
func SampleJobHistory() []JobHistory {
	return []JobHistory{
		{EmployeeID: 101, StartDate: date(1997, time.September, 21), EndDate: date(2001, time.October, 27), JobID: "IT_PROG", DepartmentID: ptr(60)},
		{EmployeeID: 101, StartDate: date(2001, time.October, 28), EndDate: date(2005, time.March, 15), JobID: "SA_REP", DepartmentID: ptr(80)},
		{EmployeeID: 176, StartDate: date(2006, time.March, 24), EndDate: date(2006, time.December, 31), JobID: "SA_MAN", DepartmentID: ptr(80)},
	}
}
