package attendance

import (
	"time"
)

type Attendance struct {
	ID        string
	StaffID   string
	Date      time.Time
	Status    Status
	Notes     string
	MarkedAt  time.Time
	UpdatedAt time.Time

	// Joined from staff by business key; nil when the staff record no longer exists
	StaffName       *string
	StaffDepartment *string
	StaffCabinNo    *string
}

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"
	StatusHalfday Status = "halfday"
)

// Statuses lists every storable status.
var Statuses = []Status{StatusPresent, StatusAbsent, StatusLeave, StatusHalfday}

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLeave, StatusHalfday:
		return true
	}
	return false
}
