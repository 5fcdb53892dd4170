package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleOrganization = "organization"
	RoleStaff        = "staff"
	RoleStudent      = "student"
)

const (
	OrgTypeSchool  = "school"
	OrgTypeCollege = "college"
)

type Address struct {
	Street  string `bson:"street,omitempty" json:"street,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode string `bson:"zip_code,omitempty" json:"zipCode,omitempty"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
}

type Contact struct {
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
}

type Settings struct {
	AcademicYear string `bson:"academic_year,omitempty" json:"academicYear,omitempty"`
	MaxStudents  int    `bson:"max_students,omitempty" json:"maxStudents,omitempty"`
	MaxStaff     int    `bson:"max_staff,omitempty" json:"maxStaff,omitempty"`
}

// Organization is the tenant. Everything else in the system hangs off one.
type Organization struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Type      string             `bson:"type" json:"type"`
	Session   string             `bson:"session" json:"session"`
	Address   Address            `bson:"address,omitempty" json:"address,omitempty"`
	Contact   Contact            `bson:"contact,omitempty" json:"contact,omitempty"`
	Settings  Settings           `bson:"settings,omitempty" json:"settings,omitempty"`
	IsActive  bool               `bson:"is_active" json:"isActive"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// OrgAccount is the administrator credential for an organization and the
// only record holding a password hash. Staff and students authenticate by
// organization-scoped mobile number instead.
type OrgAccount struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Organization primitive.ObjectID `bson:"organization" json:"organizationId"`
	IsActive     bool               `bson:"is_active" json:"isActive"`
	LastLogin    time.Time          `bson:"last_login,omitempty" json:"lastLogin,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

type Staff struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Organization primitive.ObjectID `bson:"organization" json:"organizationId"`
	MobileNumber string             `bson:"mobile_number" json:"mobileNumber"`
	Email        string             `bson:"email" json:"email"`
	FirstName    string             `bson:"first_name" json:"firstName"`
	Department   string             `bson:"department" json:"department"`
	Designation  string             `bson:"designation" json:"designation"`
	IsActive     bool               `bson:"is_active" json:"isActive"`
	LastLogin    time.Time          `bson:"last_login,omitempty" json:"lastLogin,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

type Student struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Organization     primitive.ObjectID `bson:"organization" json:"organizationId"`
	Name             string             `bson:"name" json:"name"`
	FatherName       string             `bson:"father_name" json:"fatherName"`
	Class            string             `bson:"class" json:"class"`
	Section          string             `bson:"section" json:"section"`
	Session          string             `bson:"session" json:"session"`
	MobileNumber     string             `bson:"mobile_number" json:"mobileNumber"`
	EmergencyContact string             `bson:"emergency_contact,omitempty" json:"emergencyContact,omitempty"`
	BloodGroup       string             `bson:"blood_group,omitempty" json:"bloodGroup,omitempty"`
	IsActive         bool               `bson:"is_active" json:"isActive"`
	LastLogin        time.Time          `bson:"last_login,omitempty" json:"lastLogin,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updatedAt"`
}

type RegisterOrganizationRequest struct {
	Email            string   `json:"email" validate:"required,email"`
	Password         string   `json:"password" validate:"required,min=6"`
	OrganizationName string   `json:"organizationName" validate:"required,min=2,max=100"`
	Type             string   `json:"type" validate:"required,oneof=school college"`
	Session          string   `json:"session" validate:"required,min=2,max=50"`
	Address          Address  `json:"address"`
	Contact          Contact  `json:"contact"`
	Settings         Settings `json:"settings"`
}

type LoginOrganizationRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginMemberRequest covers staff and student logins: identity is the
// mobile number scoped to the selected organization, no password.
type LoginMemberRequest struct {
	OrganizationID string `json:"organizationId" validate:"required"`
	MobileNumber   string `json:"mobileNumber" validate:"required,numeric,min=10"`
}

type RegisterStaffRequest struct {
	MobileNumber string `json:"mobileNumber" validate:"required,numeric,min=10"`
	Email        string `json:"email" validate:"required,email"`
	FirstName    string `json:"firstName" validate:"required"`
	Department   string `json:"department" validate:"required"`
	Designation  string `json:"designation" validate:"required"`
}

type RegisterStudentRequest struct {
	Name         string `json:"name" validate:"required"`
	FatherName   string `json:"fatherName" validate:"required"`
	Class        string `json:"class" validate:"required"`
	Section      string `json:"section" validate:"required"`
	Session      string `json:"session" validate:"required"`
	MobileNumber string `json:"mobileNumber" validate:"required,numeric,min=10"`
}

// OrganizationSummary is the public shape listed for login screens.
type OrganizationSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Session string `json:"session"`
}

type AccountProfile struct {
	ID           string              `json:"id"`
	Email        string              `json:"email"`
	Role         string              `json:"role"`
	Organization OrganizationSummary `json:"organization"`
	LastLogin    time.Time           `json:"lastLogin,omitempty"`
}

type OrgAuthResult struct {
	Token string         `json:"token"`
	User  AccountProfile `json:"user"`
}

type StaffAuthResult struct {
	Token string `json:"token"`
	Staff *Staff `json:"staff"`
}

type StudentAuthResult struct {
	Token   string   `json:"token"`
	Student *Student `json:"student"`
}
