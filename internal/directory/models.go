package directory

import (
	"SchoolBridge/internal/auth"
)

// StaffQuery filters the organization's staff listing. Department "all"
// (or empty) means no department filter; Search is a case-insensitive
// substring match across name, email, mobile number and designation.
type StaffQuery struct {
	Department string
	Search     string
	Page       int64
	Limit      int64
}

type StudentQuery struct {
	Class   string
	Section string
	Search  string
	Page    int64
	Limit   int64
}

type Pagination struct {
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int64 `json:"currentPage"`
	Total       int64 `json:"total"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

type StaffPage struct {
	Staff      []*auth.Staff `json:"staff"`
	Pagination Pagination    `json:"pagination"`
}

type StudentPage struct {
	Students   []*auth.Student `json:"students"`
	Pagination Pagination      `json:"pagination"`
}

type Dashboard struct {
	Organization   *auth.Organization `json:"organization"`
	StaffCount     int64              `json:"staffCount"`
	StudentCount   int64              `json:"studentCount"`
	RecentStaff    []*auth.Staff      `json:"recentStaff"`
	RecentStudents []*auth.Student    `json:"recentStudents"`
}

// UpdateOrganizationRequest only touches contact and settings data; name,
// type and session are fixed at registration.
type UpdateOrganizationRequest struct {
	Address  auth.Address  `json:"address"`
	Contact  auth.Contact  `json:"contact"`
	Settings auth.Settings `json:"settings"`
}

type UpdateStaffProfileRequest struct {
	Department  string `json:"department" validate:"required"`
	Designation string `json:"designation" validate:"required"`
}

type UpdateStudentProfileRequest struct {
	EmergencyContact string `json:"emergencyContact" validate:"omitempty,numeric,min=10"`
	BloodGroup       string `json:"bloodGroup" validate:"omitempty,max=5"`
}
