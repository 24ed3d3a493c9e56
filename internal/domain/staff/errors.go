package staff

import "errors"

var (
	ErrStaffNotFound = errors.New("staff not found")
	ErrStaffIDExists = errors.New("staff ID already exists")
)
