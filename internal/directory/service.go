package directory

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"SchoolBridge/internal/apperr"
	"SchoolBridge/internal/auth"
	"SchoolBridge/pkg/pagination"
)

const recentCount = 5

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Dashboard(ctx context.Context, orgID primitive.ObjectID) (*Dashboard, error) {
	org, err := s.repo.OrganizationByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, apperr.New(apperr.KindNotFound, "organization not found")
	}

	staffCount, err := s.repo.CountStaff(ctx, orgID)
	if err != nil {
		return nil, err
	}
	studentCount, err := s.repo.CountStudents(ctx, orgID)
	if err != nil {
		return nil, err
	}
	recentStaff, err := s.repo.RecentStaff(ctx, orgID, recentCount)
	if err != nil {
		return nil, err
	}
	recentStudents, err := s.repo.RecentStudents(ctx, orgID, recentCount)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Organization:   org,
		StaffCount:     staffCount,
		StudentCount:   studentCount,
		RecentStaff:    recentStaff,
		RecentStudents: recentStudents,
	}, nil
}

func (s *Service) ListStaff(ctx context.Context, orgID primitive.ObjectID, q StaffQuery) (*StaffPage, error) {
	q.Page, q.Limit = pagination.Normalize(q.Page, q.Limit)
	staff, total, err := s.repo.ListStaff(ctx, orgID, q)
	if err != nil {
		return nil, err
	}
	return &StaffPage{Staff: staff, Pagination: paginationOf(q.Page, q.Limit, total)}, nil
}

func (s *Service) ListStudents(ctx context.Context, orgID primitive.ObjectID, q StudentQuery) (*StudentPage, error) {
	q.Page, q.Limit = pagination.Normalize(q.Page, q.Limit)
	students, total, err := s.repo.ListStudents(ctx, orgID, q)
	if err != nil {
		return nil, err
	}
	return &StudentPage{Students: students, Pagination: paginationOf(q.Page, q.Limit, total)}, nil
}

func (s *Service) UpdateOrganization(ctx context.Context, orgID primitive.ObjectID, req UpdateOrganizationRequest) (*auth.Organization, error) {
	org, err := s.repo.UpdateOrganization(ctx, orgID, req)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, apperr.New(apperr.KindNotFound, "organization not found")
	}
	s.logger.Info("organization profile updated", zap.String("organization", orgID.Hex()))
	return org, nil
}

// StaffProfile loads the caller's own staff record and rejects access to
// records outside their organization.
func (s *Service) StaffProfile(ctx context.Context, orgID, staffID primitive.ObjectID) (*auth.Staff, error) {
	staff, err := s.repo.StaffByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil || staff.Organization != orgID {
		return nil, apperr.New(apperr.KindNotFound, "staff profile not found")
	}
	return staff, nil
}

func (s *Service) UpdateStaffProfile(ctx context.Context, orgID, staffID primitive.ObjectID, req UpdateStaffProfileRequest) (*auth.Staff, error) {
	if _, err := s.StaffProfile(ctx, orgID, staffID); err != nil {
		return nil, err
	}
	staff, err := s.repo.UpdateStaffProfile(ctx, staffID, req)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperr.New(apperr.KindNotFound, "staff profile not found")
	}
	return staff, nil
}

func (s *Service) StudentProfile(ctx context.Context, orgID, studentID primitive.ObjectID) (*auth.Student, error) {
	student, err := s.repo.StudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil || student.Organization != orgID {
		return nil, apperr.New(apperr.KindNotFound, "student profile not found")
	}
	return student, nil
}

func (s *Service) UpdateStudentProfile(ctx context.Context, orgID, studentID primitive.ObjectID, req UpdateStudentProfileRequest) (*auth.Student, error) {
	if _, err := s.StudentProfile(ctx, orgID, studentID); err != nil {
		return nil, err
	}
	student, err := s.repo.UpdateStudentProfile(ctx, studentID, req)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperr.New(apperr.KindNotFound, "student profile not found")
	}
	return student, nil
}

func paginationOf(page, limit, total int64) Pagination {
	totalPages := pagination.TotalPages(total, limit)
	return Pagination{
		TotalPages:  totalPages,
		CurrentPage: page,
		Total:       total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
