package auth

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"SchoolBridge/internal/apperr"
)

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// RegisterOrganization creates the tenant and its administrator account.
// The two inserts are not transactional; if the account insert fails the
// organization is rolled back so no orphan tenant remains.
func (s *Service) RegisterOrganization(ctx context.Context, req RegisterOrganizationRequest) (*OrgAuthResult, error) {
	now := time.Now().UTC()
	org := &Organization{
		Name:      strings.TrimSpace(req.OrganizationName),
		Type:      req.Type,
		Session:   strings.TrimSpace(req.Session),
		Address:   req.Address,
		Contact:   req.Contact,
		Settings:  req.Settings,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateOrganization(ctx, org); err != nil {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	account := &OrgAccount{
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		Organization: org.ID,
		IsActive:     true,
		LastLogin:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		if delErr := s.repo.DeleteOrganization(ctx, org.ID); delErr != nil {
			s.logger.Error("failed to roll back organization after account insert failure",
				zap.String("organization", org.ID.Hex()), zap.Error(delErr))
		}
		return nil, err
	}

	token, err := GenerateToken(account.ID.Hex(), RoleOrganization, org.ID.Hex())
	if err != nil {
		return nil, err
	}
	s.logger.Info("organization registered",
		zap.String("organization", org.ID.Hex()), zap.String("type", org.Type))

	return &OrgAuthResult{Token: token, User: accountProfile(account, org)}, nil
}

func (s *Service) LoginOrganization(ctx context.Context, req LoginOrganizationRequest) (*OrgAuthResult, error) {
	account, err := s.repo.FindAccountByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperr.New(apperr.KindUnauthorized, "no organization account found with this email")
	}
	if !CheckPasswordHash(req.Password, account.PasswordHash) {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid credentials")
	}
	if !account.IsActive {
		return nil, apperr.New(apperr.KindUnauthorized, "organization account is deactivated")
	}

	org, err := s.repo.FindOrganizationByID(ctx, account.Organization)
	if err != nil {
		return nil, err
	}
	if org == nil || !org.IsActive {
		return nil, apperr.New(apperr.KindUnauthorized, "organization account is deactivated")
	}

	account.LastLogin = time.Now().UTC()
	if err := s.repo.UpdateAccountLastLogin(ctx, account.ID, account.LastLogin); err != nil {
		return nil, err
	}

	token, err := GenerateToken(account.ID.Hex(), RoleOrganization, org.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &OrgAuthResult{Token: token, User: accountProfile(account, org)}, nil
}

func (s *Service) LoginStaff(ctx context.Context, req LoginMemberRequest) (*StaffAuthResult, error) {
	orgID, err := parseObjectID(req.OrganizationID, "organization id")
	if err != nil {
		return nil, err
	}
	staff, err := s.repo.FindStaffByMobile(ctx, orgID, strings.TrimSpace(req.MobileNumber))
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperr.New(apperr.KindUnauthorized, "no staff account found with this mobile number in the selected organization")
	}
	if !staff.IsActive {
		return nil, apperr.New(apperr.KindUnauthorized, "staff account is deactivated, please contact your organization")
	}

	staff.LastLogin = time.Now().UTC()
	if err := s.repo.UpdateStaffLastLogin(ctx, staff.ID, staff.LastLogin); err != nil {
		return nil, err
	}

	token, err := GenerateToken(staff.ID.Hex(), RoleStaff, staff.Organization.Hex())
	if err != nil {
		return nil, err
	}
	return &StaffAuthResult{Token: token, Staff: staff}, nil
}

func (s *Service) LoginStudent(ctx context.Context, req LoginMemberRequest) (*StudentAuthResult, error) {
	orgID, err := parseObjectID(req.OrganizationID, "organization id")
	if err != nil {
		return nil, err
	}
	student, err := s.repo.FindStudentByMobile(ctx, orgID, strings.TrimSpace(req.MobileNumber))
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperr.New(apperr.KindUnauthorized, "no student found with this mobile number in the selected organization")
	}
	if !student.IsActive {
		return nil, apperr.New(apperr.KindUnauthorized, "student account is deactivated, please contact your organization")
	}

	student.LastLogin = time.Now().UTC()
	if err := s.repo.UpdateStudentLastLogin(ctx, student.ID, student.LastLogin); err != nil {
		return nil, err
	}

	token, err := GenerateToken(student.ID.Hex(), RoleStudent, student.Organization.Hex())
	if err != nil {
		return nil, err
	}
	return &StudentAuthResult{Token: token, Student: student}, nil
}

// RegisterStaff creates a staff member under the caller's organization.
// Uniqueness is enforced by the store's indexes; a duplicate insert comes
// back as a conflict from the repository.
func (s *Service) RegisterStaff(ctx context.Context, orgID primitive.ObjectID, req RegisterStaffRequest) (*Staff, error) {
	now := time.Now().UTC()
	staff := &Staff{
		Organization: orgID,
		MobileNumber: strings.TrimSpace(req.MobileNumber),
		Email:        normalizeEmail(req.Email),
		FirstName:    strings.TrimSpace(req.FirstName),
		Department:   strings.TrimSpace(req.Department),
		Designation:  strings.TrimSpace(req.Designation),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateStaff(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (s *Service) RegisterStudent(ctx context.Context, orgID primitive.ObjectID, req RegisterStudentRequest) (*Student, error) {
	now := time.Now().UTC()
	student := &Student{
		Organization: orgID,
		Name:         strings.TrimSpace(req.Name),
		FatherName:   strings.TrimSpace(req.FatherName),
		Class:        req.Class,
		Section:      req.Section,
		Session:      req.Session,
		MobileNumber: strings.TrimSpace(req.MobileNumber),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateStudent(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *Service) ListOrganizations(ctx context.Context) ([]OrganizationSummary, error) {
	orgs, err := s.repo.ListActiveOrganizations(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]OrganizationSummary, 0, len(orgs))
	for _, org := range orgs {
		summaries = append(summaries, organizationSummary(org))
	}
	return summaries, nil
}

func organizationSummary(org *Organization) OrganizationSummary {
	return OrganizationSummary{
		ID:      org.ID.Hex(),
		Name:    org.Name,
		Type:    org.Type,
		Session: org.Session,
	}
}

func accountProfile(account *OrgAccount, org *Organization) AccountProfile {
	return AccountProfile{
		ID:           account.ID.Hex(),
		Email:        account.Email,
		Role:         RoleOrganization,
		Organization: organizationSummary(org),
		LastLogin:    account.LastLogin,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func parseObjectID(hex, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return primitive.NilObjectID, apperr.Newf(apperr.KindValidation, "invalid %s", what)
	}
	return id, nil
}
