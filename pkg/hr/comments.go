package hr

// Descriptive metadata emitted as COMMENT ON statements. Table and column
// comments live here rather than in struct tags to keep the tags readable.

var tableComments = map[string]string{
	"regions":     "Regions table. References with the Countries table.",
	"countries":   "Country table. References with the Locations table.",
	"locations":   "Locations table that contains specific address of a specific office, warehouse, or production site of a company. Does not store addresses of customers.",
	"departments": "Departments table that shows details of departments where employees work. References with locations, employees, and job_history tables.",
	"jobs":        "Jobs table with job titles and salary ranges. References with employees and job_history tables.",
	"employees":   "Employees table. References with departments, jobs, job_history tables. Foreign key to jobs (job_id column) and to departments (department_id column). Contains a self reference on manager_id.",
	"job_history": "Table that stores job history of the employees. If an employee changes departments within the job or changes jobs within the department, a new row is inserted with the old job information of the employee. Contains a composite primary key of employee_id and start_date.",
}

var columnComments = map[string]map[string]string{
	"regions": {
		"region_id":   "Primary key of regions table.",
		"region_name": "Names of regions. Locations are in the countries of these regions.",
	},
	"countries": {
		"country_id":   "Primary key of countries table.",
		"country_name": "Country name.",
		"region_id":    "Region ID for the country. Foreign key to region_id column in the regions table.",
	},
	"locations": {
		"location_id":    "Primary key of locations table.",
		"street_address": "Street address of an office, warehouse, or production site of a company. Contains building number and street name.",
		"postal_code":    "Postal code of the location of an office, warehouse, or production site of a company.",
		"city":           "A not null column that shows city where an office, warehouse, or production site of a company is located.",
		"state_province": "State or province where an office, warehouse, or production site of a company is located.",
		"country_id":     "Country where an office, warehouse, or production site of a company is located. Foreign key to country_id column of the countries table.",
	},
	"departments": {
		"department_id":   "Primary key column of departments table.",
		"department_name": "A not null column that shows name of a department. Administration, Marketing, Purchasing, Human Resources, Shipping, IT, Executive, Public Relations, Sales, Finance, and Accounting.",
		"manager_id":      "Manager ID of a department. Foreign key to employee_id column of employees table.",
		"location_id":     "Location ID where a department is located. Foreign key to location_id column of locations table.",
	},
	"jobs": {
		"job_id":     "Primary key of jobs table.",
		"job_title":  "A not null column that shows job title, e.g. AD_VP, FI_ACCOUNTANT.",
		"min_salary": "Minimum salary for a job title.",
		"max_salary": "Maximum salary for a job title.",
	},
	"employees": {
		"employee_id":    "Primary key of employees table.",
		"first_name":     "First name of the employee.",
		"last_name":      "Last name of the employee. A not null column.",
		"email":          "Email id of the employee.",
		"phone_number":   "Phone number of the employee; includes country code and area code.",
		"hire_date":      "Date when the employee started on this job. A not null column.",
		"job_id":         "Current job of the employee; foreign key to job_id column of the jobs table. A not null column.",
		"salary":         "Monthly salary of the employee. Must be greater than zero (enforced by constraint emp_salary_min).",
		"commission_pct": "Commission percentage of the employee; only employees in sales department eligible for commission percentage.",
		"manager_id":     "Manager id of the employee; has same domain as manager_id in departments table. Foreign key to employee_id column of employees table.",
		"department_id":  "Department id where employee works; foreign key to department_id column of the departments table.",
	},
	"job_history": {
		"employee_id":   "A not null column in the complex primary key employee_id+start_date. Foreign key to employee_id column of the employees table.",
		"start_date":    "A not null column in the complex primary key employee_id+start_date. Must be less than the end_date of the job_history table (enforced by constraint jhist_date_interval).",
		"end_date":      "Last day of the employee in this job role. A not null column. Must be greater than the start_date of the job_history table (enforced by constraint jhist_date_interval).",
		"job_id":        "Job role in which the employee worked in the past; foreign key to job_id column in the jobs table. A not null column.",
		"department_id": "Department id in which the employee worked in the past; foreign key to department_id column in the departments table.",
	},
}
