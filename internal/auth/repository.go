package auth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"SchoolBridge/internal/apperr"
)

// Repository is the identity store. Find methods return (nil, nil) when no
// matching document exists.
type Repository interface {
	CreateOrganization(ctx context.Context, org *Organization) error
	DeleteOrganization(ctx context.Context, id primitive.ObjectID) error
	FindOrganizationByID(ctx context.Context, id primitive.ObjectID) (*Organization, error)
	ListActiveOrganizations(ctx context.Context) ([]*Organization, error)

	CreateAccount(ctx context.Context, account *OrgAccount) error
	FindAccountByEmail(ctx context.Context, email string) (*OrgAccount, error)
	UpdateAccountLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error

	CreateStaff(ctx context.Context, staff *Staff) error
	FindStaffByMobile(ctx context.Context, orgID primitive.ObjectID, mobileNumber string) (*Staff, error)
	UpdateStaffLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error

	CreateStudent(ctx context.Context, student *Student) error
	FindStudentByMobile(ctx context.Context, orgID primitive.ObjectID, mobileNumber string) (*Student, error)
	UpdateStudentLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
}

type mongoRepository struct {
	organizations *mongo.Collection
	accounts      *mongo.Collection
	staff         *mongo.Collection
	students      *mongo.Collection
}

var _ Repository = (*mongoRepository)(nil)

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		organizations: db.Collection("organizations"),
		accounts:      db.Collection("org_accounts"),
		staff:         db.Collection("staff"),
		students:      db.Collection("students"),
	}
}

func (r *mongoRepository) CreateOrganization(ctx context.Context, org *Organization) error {
	res, err := r.organizations.InsertOne(ctx, org)
	if err != nil {
		return err
	}
	org.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) DeleteOrganization(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.organizations.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *mongoRepository) FindOrganizationByID(ctx context.Context, id primitive.ObjectID) (*Organization, error) {
	var org Organization
	err := r.organizations.FindOne(ctx, bson.M{"_id": id}).Decode(&org)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func (r *mongoRepository) ListActiveOrganizations(ctx context.Context) ([]*Organization, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.organizations.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	var orgs []*Organization
	if err := cursor.All(ctx, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *mongoRepository) CreateAccount(ctx context.Context, account *OrgAccount) error {
	res, err := r.accounts.InsertOne(ctx, account)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.New(apperr.KindConflict, "an account already exists with this email")
		}
		return err
	}
	account.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) FindAccountByEmail(ctx context.Context, email string) (*OrgAccount, error) {
	var account OrgAccount
	err := r.accounts.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *mongoRepository) UpdateAccountLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.accounts.UpdateByID(ctx, id, bson.M{"$set": bson.M{"last_login": at}})
	return err
}

func (r *mongoRepository) CreateStaff(ctx context.Context, staff *Staff) error {
	res, err := r.staff.InsertOne(ctx, staff)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.New(apperr.KindConflict, "a staff member with this mobile number or email already exists in your organization")
		}
		return err
	}
	staff.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) FindStaffByMobile(ctx context.Context, orgID primitive.ObjectID, mobileNumber string) (*Staff, error) {
	var staff Staff
	err := r.staff.FindOne(ctx, bson.M{"organization": orgID, "mobile_number": mobileNumber}).Decode(&staff)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}

func (r *mongoRepository) UpdateStaffLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.staff.UpdateByID(ctx, id, bson.M{"$set": bson.M{"last_login": at}})
	return err
}

func (r *mongoRepository) CreateStudent(ctx context.Context, student *Student) error {
	res, err := r.students.InsertOne(ctx, student)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.New(apperr.KindConflict, "a student with this name and father name, or this mobile number, already exists in your organization")
		}
		return err
	}
	student.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) FindStudentByMobile(ctx context.Context, orgID primitive.ObjectID, mobileNumber string) (*Student, error) {
	var student Student
	err := r.students.FindOne(ctx, bson.M{"organization": orgID, "mobile_number": mobileNumber}).Decode(&student)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

func (r *mongoRepository) UpdateStudentLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.students.UpdateByID(ctx, id, bson.M{"$set": bson.M{"last_login": at}})
	return err
}
