package auth

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"SchoolBridge/internal/apperr"
)

// fakeRepository mirrors the store's unique-index behavior in memory:
// inserts are the uniqueness gate and collide with a conflict error, the
// same way the mongo repository translates duplicate keys.
type fakeRepository struct {
	organizations map[primitive.ObjectID]*Organization
	accounts      map[primitive.ObjectID]*OrgAccount
	staff         map[primitive.ObjectID]*Staff
	students      map[primitive.ObjectID]*Student

	failAccountCreate bool
}

var _ Repository = (*fakeRepository)(nil)

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		organizations: make(map[primitive.ObjectID]*Organization),
		accounts:      make(map[primitive.ObjectID]*OrgAccount),
		staff:         make(map[primitive.ObjectID]*Staff),
		students:      make(map[primitive.ObjectID]*Student),
	}
}

func (f *fakeRepository) CreateOrganization(_ context.Context, org *Organization) error {
	org.ID = primitive.NewObjectID()
	copied := *org
	f.organizations[org.ID] = &copied
	return nil
}

func (f *fakeRepository) DeleteOrganization(_ context.Context, id primitive.ObjectID) error {
	delete(f.organizations, id)
	return nil
}

func (f *fakeRepository) FindOrganizationByID(_ context.Context, id primitive.ObjectID) (*Organization, error) {
	org, ok := f.organizations[id]
	if !ok {
		return nil, nil
	}
	copied := *org
	return &copied, nil
}

func (f *fakeRepository) ListActiveOrganizations(_ context.Context) ([]*Organization, error) {
	var orgs []*Organization
	for _, org := range f.organizations {
		if org.IsActive {
			copied := *org
			orgs = append(orgs, &copied)
		}
	}
	sort.Slice(orgs, func(i, j int) bool { return orgs[i].Name < orgs[j].Name })
	return orgs, nil
}

func (f *fakeRepository) CreateAccount(_ context.Context, account *OrgAccount) error {
	if f.failAccountCreate {
		return apperr.New(apperr.KindInternal, "account insert failed")
	}
	for _, existing := range f.accounts {
		if existing.Email == account.Email {
			return apperr.New(apperr.KindConflict, "an account already exists with this email")
		}
	}
	account.ID = primitive.NewObjectID()
	copied := *account
	f.accounts[account.ID] = &copied
	return nil
}

func (f *fakeRepository) FindAccountByEmail(_ context.Context, email string) (*OrgAccount, error) {
	for _, account := range f.accounts {
		if account.Email == email {
			copied := *account
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) UpdateAccountLastLogin(_ context.Context, id primitive.ObjectID, at time.Time) error {
	if account, ok := f.accounts[id]; ok {
		account.LastLogin = at
	}
	return nil
}

func (f *fakeRepository) CreateStaff(_ context.Context, staff *Staff) error {
	for _, existing := range f.staff {
		if existing.Organization == staff.Organization &&
			(existing.MobileNumber == staff.MobileNumber || existing.Email == staff.Email) {
			return apperr.New(apperr.KindConflict, "a staff member with this mobile number or email already exists in your organization")
		}
	}
	staff.ID = primitive.NewObjectID()
	copied := *staff
	f.staff[staff.ID] = &copied
	return nil
}

func (f *fakeRepository) FindStaffByMobile(_ context.Context, orgID primitive.ObjectID, mobileNumber string) (*Staff, error) {
	for _, staff := range f.staff {
		if staff.Organization == orgID && staff.MobileNumber == mobileNumber {
			copied := *staff
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) UpdateStaffLastLogin(_ context.Context, id primitive.ObjectID, at time.Time) error {
	if staff, ok := f.staff[id]; ok {
		staff.LastLogin = at
	}
	return nil
}

func (f *fakeRepository) CreateStudent(_ context.Context, student *Student) error {
	for _, existing := range f.students {
		if existing.Organization != student.Organization {
			continue
		}
		if (existing.Name == student.Name && existing.FatherName == student.FatherName) ||
			existing.MobileNumber == student.MobileNumber {
			return apperr.New(apperr.KindConflict, "a student with this name and father name, or this mobile number, already exists in your organization")
		}
	}
	student.ID = primitive.NewObjectID()
	copied := *student
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeRepository) FindStudentByMobile(_ context.Context, orgID primitive.ObjectID, mobileNumber string) (*Student, error) {
	for _, student := range f.students {
		if student.Organization == orgID && student.MobileNumber == mobileNumber {
			copied := *student
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) UpdateStudentLastLogin(_ context.Context, id primitive.ObjectID, at time.Time) error {
	if student, ok := f.students[id]; ok {
		student.LastLogin = at
	}
	return nil
}
