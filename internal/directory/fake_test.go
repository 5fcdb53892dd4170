package directory

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"SchoolBridge/internal/auth"
)

// fakeRepository mirrors the mongo queries in memory so the service can
// be tested without a running database.
type fakeRepository struct {
	organizations map[primitive.ObjectID]*auth.Organization
	staff         map[primitive.ObjectID]*auth.Staff
	students      map[primitive.ObjectID]*auth.Student
}

var _ Repository = (*fakeRepository)(nil)

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		organizations: make(map[primitive.ObjectID]*auth.Organization),
		staff:         make(map[primitive.ObjectID]*auth.Staff),
		students:      make(map[primitive.ObjectID]*auth.Student),
	}
}

func (f *fakeRepository) addOrganization(name string) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.organizations[id] = &auth.Organization{
		ID:       id,
		Name:     name,
		Type:     auth.OrgTypeSchool,
		Session:  "2024-25",
		IsActive: true,
	}
	return id
}

func (f *fakeRepository) addStaff(orgID primitive.ObjectID, firstName, department, designation, mobile string, createdAt time.Time) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.staff[id] = &auth.Staff{
		ID:           id,
		Organization: orgID,
		FirstName:    firstName,
		Email:        strings.ToLower(firstName) + "@example.test",
		MobileNumber: mobile,
		Department:   department,
		Designation:  designation,
		IsActive:     true,
		CreatedAt:    createdAt,
	}
	return id
}

func (f *fakeRepository) addStudent(orgID primitive.ObjectID, name, fatherName, class, section string, createdAt time.Time) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.students[id] = &auth.Student{
		ID:           id,
		Organization: orgID,
		Name:         name,
		FatherName:   fatherName,
		Class:        class,
		Section:      section,
		MobileNumber: "9000000000",
		IsActive:     true,
		CreatedAt:    createdAt,
	}
	return id
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (f *fakeRepository) staffMatching(orgID primitive.ObjectID, q StaffQuery) []*auth.Staff {
	matched := make([]*auth.Staff, 0)
	for _, s := range f.staff {
		if s.Organization != orgID {
			continue
		}
		if q.Department != "" && q.Department != "all" && s.Department != q.Department {
			continue
		}
		if q.Search != "" &&
			!containsFold(s.FirstName, q.Search) &&
			!containsFold(s.Email, q.Search) &&
			!containsFold(s.MobileNumber, q.Search) &&
			!containsFold(s.Designation, q.Search) {
			continue
		}
		matched = append(matched, s)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

func (f *fakeRepository) studentsMatching(orgID primitive.ObjectID, q StudentQuery) []*auth.Student {
	matched := make([]*auth.Student, 0)
	for _, s := range f.students {
		if s.Organization != orgID {
			continue
		}
		if q.Class != "" && s.Class != q.Class {
			continue
		}
		if q.Section != "" && s.Section != q.Section {
			continue
		}
		if q.Search != "" &&
			!containsFold(s.Name, q.Search) &&
			!containsFold(s.FatherName, q.Search) &&
			!containsFold(s.MobileNumber, q.Search) {
			continue
		}
		matched = append(matched, s)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

func pageBounds(length int, page, limit int64) (int, int) {
	start := int((page - 1) * limit)
	if start > length {
		start = length
	}
	end := start + int(limit)
	if end > length {
		end = length
	}
	return start, end
}

func (f *fakeRepository) OrganizationByID(_ context.Context, id primitive.ObjectID) (*auth.Organization, error) {
	return f.organizations[id], nil
}

func (f *fakeRepository) UpdateOrganization(_ context.Context, id primitive.ObjectID, req UpdateOrganizationRequest) (*auth.Organization, error) {
	org, ok := f.organizations[id]
	if !ok {
		return nil, nil
	}
	org.Address = req.Address
	org.Contact = req.Contact
	org.Settings = req.Settings
	org.UpdatedAt = time.Now().UTC()
	return org, nil
}

func (f *fakeRepository) CountStaff(_ context.Context, orgID primitive.ObjectID) (int64, error) {
	return int64(len(f.staffMatching(orgID, StaffQuery{}))), nil
}

func (f *fakeRepository) CountStudents(_ context.Context, orgID primitive.ObjectID) (int64, error) {
	return int64(len(f.studentsMatching(orgID, StudentQuery{}))), nil
}

func (f *fakeRepository) RecentStaff(_ context.Context, orgID primitive.ObjectID, limit int64) ([]*auth.Staff, error) {
	matched := f.staffMatching(orgID, StaffQuery{})
	if int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeRepository) RecentStudents(_ context.Context, orgID primitive.ObjectID, limit int64) ([]*auth.Student, error) {
	matched := f.studentsMatching(orgID, StudentQuery{})
	if int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeRepository) ListStaff(_ context.Context, orgID primitive.ObjectID, q StaffQuery) ([]*auth.Staff, int64, error) {
	matched := f.staffMatching(orgID, q)
	start, end := pageBounds(len(matched), q.Page, q.Limit)
	return matched[start:end], int64(len(matched)), nil
}

func (f *fakeRepository) ListStudents(_ context.Context, orgID primitive.ObjectID, q StudentQuery) ([]*auth.Student, int64, error) {
	matched := f.studentsMatching(orgID, q)
	start, end := pageBounds(len(matched), q.Page, q.Limit)
	return matched[start:end], int64(len(matched)), nil
}

func (f *fakeRepository) StaffByID(_ context.Context, id primitive.ObjectID) (*auth.Staff, error) {
	return f.staff[id], nil
}

func (f *fakeRepository) StudentByID(_ context.Context, id primitive.ObjectID) (*auth.Student, error) {
	return f.students[id], nil
}

func (f *fakeRepository) UpdateStaffProfile(_ context.Context, id primitive.ObjectID, req UpdateStaffProfileRequest) (*auth.Staff, error) {
	staff, ok := f.staff[id]
	if !ok {
		return nil, nil
	}
	staff.Department = req.Department
	staff.Designation = req.Designation
	staff.UpdatedAt = time.Now().UTC()
	return staff, nil
}

func (f *fakeRepository) UpdateStudentProfile(_ context.Context, id primitive.ObjectID, req UpdateStudentProfileRequest) (*auth.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, nil
	}
	student.EmergencyContact = req.EmergencyContact
	student.BloodGroup = req.BloodGroup
	student.UpdatedAt = time.Now().UTC()
	return student, nil
}
