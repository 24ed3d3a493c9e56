package staff

import "time"

type Staff struct {
	ID            string
	StaffID       string
	Name          string
	Department    Department
	CabinNo       *string
	YearOfJoining int
	PhoneNumber   *string
	Email         *string
	Designation   *string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Department string

const (
	DepartmentStateboard     Department = "stateboard"
	DepartmentMatric         Department = "matric"
	DepartmentAOne           Department = "aone"
	DepartmentAdministration Department = "administration"
	DepartmentManagement     Department = "management"
	DepartmentOther          Department = "other"
)

// Departments lists every accepted department in display order.
var Departments = []Department{
	DepartmentStateboard,
	DepartmentMatric,
	DepartmentAOne,
	DepartmentAdministration,
	DepartmentManagement,
	DepartmentOther,
}

func (d Department) IsValid() bool {
	for _, dep := range Departments {
		if d == dep {
			return true
		}
	}
	return false
}

// MinYearOfJoining is the earliest accepted joining year.
const MinYearOfJoining = 1980
