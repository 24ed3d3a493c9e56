package staff

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/validator"
)

// ========================================
// STAFF DTOs
// ========================================

type CreateStaffRequest struct {
	StaffID       string  `json:"staffId"`
	Name          string  `json:"name"`
	Department    string  `json:"department"`
	CabinNo       *string `json:"cabinNo,omitempty"`
	YearOfJoining int     `json:"yearOfJoining"`
	PhoneNumber   *string `json:"phoneNumber,omitempty"`
	Email         *string `json:"email,omitempty"`
	Designation   *string `json:"designation,omitempty"`
	Active        *bool   `json:"active,omitempty"`
}

func (r *CreateStaffRequest) Validate() error {
	var errs validator.ValidationErrors

	r.StaffID = strings.TrimSpace(r.StaffID)
	r.Name = strings.TrimSpace(r.Name)
	r.Department = strings.TrimSpace(r.Department)
	r.CabinNo = trimOptional(r.CabinNo)
	r.PhoneNumber = trimOptional(r.PhoneNumber)
	r.Email = trimOptional(r.Email)
	r.Designation = trimOptional(r.Designation)

	if validator.IsEmpty(r.StaffID) {
		errs.Add("staffId", "staffId is required")
	} else if !validator.IsValidStaffID(r.StaffID) {
		errs.Add("staffId", "staffId may only contain letters, numbers, '.', '_', '-', '/' (max 50)")
	}

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}

	if validator.IsEmpty(r.Department) {
		errs.Add("department", "department is required")
	} else if !Department(r.Department).IsValid() {
		errs.Add("department", departmentMessage())
	}

	if r.YearOfJoining == 0 {
		errs.Add("yearOfJoining", "yearOfJoining is required")
	} else if msg, ok := checkYearOfJoining(r.YearOfJoining); !ok {
		errs.Add("yearOfJoining", msg)
	}

	validateContact(&errs, r.PhoneNumber, r.Email)

	return errs.OrNil()
}

// ToEntity builds a new Staff from the request. Active defaults to true.
func (r *CreateStaffRequest) ToEntity() Staff {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return Staff{
		StaffID:       r.StaffID,
		Name:          r.Name,
		Department:    Department(r.Department),
		CabinNo:       r.CabinNo,
		YearOfJoining: r.YearOfJoining,
		PhoneNumber:   r.PhoneNumber,
		Email:         r.Email,
		Designation:   r.Designation,
		Active:        active,
	}
}

// UpdateStaffRequest is a partial update: nil fields are left unchanged.
type UpdateStaffRequest struct {
	ID            string  `json:"-"`
	StaffID       *string `json:"staffId,omitempty"`
	Name          *string `json:"name,omitempty"`
	Department    *string `json:"department,omitempty"`
	CabinNo       *string `json:"cabinNo,omitempty"`
	YearOfJoining *int    `json:"yearOfJoining,omitempty"`
	PhoneNumber   *string `json:"phoneNumber,omitempty"`
	Email         *string `json:"email,omitempty"`
	Designation   *string `json:"designation,omitempty"`
	Active        *bool   `json:"active,omitempty"`
}

func (r *UpdateStaffRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}

	if r.StaffID != nil {
		trimmed := strings.TrimSpace(*r.StaffID)
		r.StaffID = &trimmed
		if !validator.IsValidStaffID(trimmed) {
			errs.Add("staffId", "staffId may only contain letters, numbers, '.', '_', '-', '/' (max 50)")
		}
	}

	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		r.Name = &trimmed
		if trimmed == "" {
			errs.Add("name", "name must not be empty")
		} else if len(trimmed) > 255 {
			errs.Add("name", "name must not exceed 255 characters")
		}
	}

	if r.Department != nil {
		trimmed := strings.TrimSpace(*r.Department)
		r.Department = &trimmed
		if !Department(trimmed).IsValid() {
			errs.Add("department", departmentMessage())
		}
	}

	if r.YearOfJoining != nil {
		if msg, ok := checkYearOfJoining(*r.YearOfJoining); !ok {
			errs.Add("yearOfJoining", msg)
		}
	}

	validateContact(&errs, trimOptional(r.PhoneNumber), trimOptional(r.Email))

	return errs.OrNil()
}

// ApplyTo returns s with the non-nil fields of the request applied. An empty string clears
// an optional field.
func (r *UpdateStaffRequest) ApplyTo(s Staff) Staff {
	if r.StaffID != nil {
		s.StaffID = *r.StaffID
	}
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Department != nil {
		s.Department = Department(*r.Department)
	}
	if r.CabinNo != nil {
		s.CabinNo = trimOptional(r.CabinNo)
	}
	if r.YearOfJoining != nil {
		s.YearOfJoining = *r.YearOfJoining
	}
	if r.PhoneNumber != nil {
		s.PhoneNumber = trimOptional(r.PhoneNumber)
	}
	if r.Email != nil {
		s.Email = trimOptional(r.Email)
	}
	if r.Designation != nil {
		s.Designation = trimOptional(r.Designation)
	}
	if r.Active != nil {
		s.Active = *r.Active
	}
	return s
}

type StaffFilter struct {
	Department *string `json:"department,omitempty"`
	Active     *bool   `json:"active,omitempty"`
	Search     *string `json:"search,omitempty"`
}

func (f *StaffFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Department != nil && !Department(*f.Department).IsValid() {
		errs.Add("department", departmentMessage())
	}

	if f.Search != nil {
		trimmed := strings.TrimSpace(*f.Search)
		if trimmed == "" {
			f.Search = nil
		} else if len(trimmed) > 100 {
			errs.Add("search", "search must not exceed 100 characters")
		} else {
			f.Search = &trimmed
		}
	}

	return errs.OrNil()
}

type StaffResponse struct {
	ID            string     `json:"id"`
	StaffID       string     `json:"staffId"`
	Name          string     `json:"name"`
	Department    Department `json:"department"`
	CabinNo       *string    `json:"cabinNo,omitempty"`
	YearOfJoining int        `json:"yearOfJoining"`
	PhoneNumber   *string    `json:"phoneNumber,omitempty"`
	Email         *string    `json:"email,omitempty"`
	Designation   *string    `json:"designation,omitempty"`
	Active        bool       `json:"active"`
	CreatedAt     string     `json:"createdAt"`
	UpdatedAt     string     `json:"updatedAt"`
}

func ToResponse(s Staff) StaffResponse {
	return StaffResponse{
		ID:            s.ID,
		StaffID:       s.StaffID,
		Name:          s.Name,
		Department:    s.Department,
		CabinNo:       s.CabinNo,
		YearOfJoining: s.YearOfJoining,
		PhoneNumber:   s.PhoneNumber,
		Email:         s.Email,
		Designation:   s.Designation,
		Active:        s.Active,
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     s.UpdatedAt.Format(time.RFC3339),
	}
}

func checkYearOfJoining(year int) (string, bool) {
	currentYear := time.Now().Year()
	if year < MinYearOfJoining || year > currentYear {
		return fmt.Sprintf("yearOfJoining must be between %d and %d", MinYearOfJoining, currentYear), false
	}
	return "", true
}

func validateContact(errs *validator.ValidationErrors, phone, email *string) {
	if phone != nil && !validator.IsValidPhoneNumber(*phone) {
		errs.Add("phoneNumber", "phoneNumber must contain 7-15 digits")
	}
	if email != nil && !validator.IsValidEmail(*email) {
		errs.Add("email", "please add a valid email")
	}
}

func departmentMessage() string {
	names := make([]string, len(Departments))
	for i, d := range Departments {
		names[i] = string(d)
	}
	return "department must be one of: " + strings.Join(names, ", ")
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
