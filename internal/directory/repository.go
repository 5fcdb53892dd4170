package directory

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"SchoolBridge/internal/auth"
)

// Repository serves the read-heavy dashboard and listing views plus the
// narrow profile updates. Every query carries the organization scope in
// its filter; there is no unscoped access path.
type Repository interface {
	OrganizationByID(ctx context.Context, id primitive.ObjectID) (*auth.Organization, error)
	UpdateOrganization(ctx context.Context, id primitive.ObjectID, req UpdateOrganizationRequest) (*auth.Organization, error)

	CountStaff(ctx context.Context, orgID primitive.ObjectID) (int64, error)
	CountStudents(ctx context.Context, orgID primitive.ObjectID) (int64, error)
	RecentStaff(ctx context.Context, orgID primitive.ObjectID, limit int64) ([]*auth.Staff, error)
	RecentStudents(ctx context.Context, orgID primitive.ObjectID, limit int64) ([]*auth.Student, error)

	ListStaff(ctx context.Context, orgID primitive.ObjectID, q StaffQuery) ([]*auth.Staff, int64, error)
	ListStudents(ctx context.Context, orgID primitive.ObjectID, q StudentQuery) ([]*auth.Student, int64, error)

	StaffByID(ctx context.Context, id primitive.ObjectID) (*auth.Staff, error)
	StudentByID(ctx context.Context, id primitive.ObjectID) (*auth.Student, error)
	UpdateStaffProfile(ctx context.Context, id primitive.ObjectID, req UpdateStaffProfileRequest) (*auth.Staff, error)
	UpdateStudentProfile(ctx context.Context, id primitive.ObjectID, req UpdateStudentProfileRequest) (*auth.Student, error)
}

type mongoRepository struct {
	organizations *mongo.Collection
	staff         *mongo.Collection
	students      *mongo.Collection
}

var _ Repository = (*mongoRepository)(nil)

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		organizations: db.Collection("organizations"),
		staff:         db.Collection("staff"),
		students:      db.Collection("students"),
	}
}

func (r *mongoRepository) OrganizationByID(ctx context.Context, id primitive.ObjectID) (*auth.Organization, error) {
	var org auth.Organization
	err := r.organizations.FindOne(ctx, bson.M{"_id": id}).Decode(&org)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func (r *mongoRepository) UpdateOrganization(ctx context.Context, id primitive.ObjectID, req UpdateOrganizationRequest) (*auth.Organization, error) {
	update := bson.M{"$set": bson.M{
		"address":    req.Address,
		"contact":    req.Contact,
		"settings":   req.Settings,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var org auth.Organization
	err := r.organizations.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&org)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func (r *mongoRepository) CountStaff(ctx context.Context, orgID primitive.ObjectID) (int64, error) {
	return r.staff.CountDocuments(ctx, bson.M{"organization": orgID})
}

func (r *mongoRepository) CountStudents(ctx context.Context, orgID primitive.ObjectID) (int64, error) {
	return r.students.CountDocuments(ctx, bson.M{"organization": orgID})
}

func (r *mongoRepository) RecentStaff(ctx context.Context, orgID primitive.ObjectID, limit int64) ([]*auth.Staff, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.staff.Find(ctx, bson.M{"organization": orgID}, opts)
	if err != nil {
		return nil, err
	}
	staff := make([]*auth.Staff, 0)
	if err := cursor.All(ctx, &staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *mongoRepository) RecentStudents(ctx context.Context, orgID primitive.ObjectID, limit int64) ([]*auth.Student, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.students.Find(ctx, bson.M{"organization": orgID}, opts)
	if err != nil {
		return nil, err
	}
	students := make([]*auth.Student, 0)
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func caseInsensitive(search string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
}

func (r *mongoRepository) ListStaff(ctx context.Context, orgID primitive.ObjectID, q StaffQuery) ([]*auth.Staff, int64, error) {
	filter := bson.M{"organization": orgID}
	if q.Department != "" && q.Department != "all" {
		filter["department"] = q.Department
	}
	if q.Search != "" {
		re := caseInsensitive(q.Search)
		filter["$or"] = bson.A{
			bson.M{"first_name": re},
			bson.M{"email": re},
			bson.M{"mobile_number": re},
			bson.M{"designation": re},
		}
	}

	total, err := r.staff.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((q.Page - 1) * q.Limit).
		SetLimit(q.Limit)
	cursor, err := r.staff.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	staff := make([]*auth.Staff, 0)
	if err := cursor.All(ctx, &staff); err != nil {
		return nil, 0, err
	}
	return staff, total, nil
}

func (r *mongoRepository) ListStudents(ctx context.Context, orgID primitive.ObjectID, q StudentQuery) ([]*auth.Student, int64, error) {
	filter := bson.M{"organization": orgID}
	if q.Class != "" {
		filter["class"] = q.Class
	}
	if q.Section != "" {
		filter["section"] = q.Section
	}
	if q.Search != "" {
		re := caseInsensitive(q.Search)
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"father_name": re},
			bson.M{"mobile_number": re},
		}
	}

	total, err := r.students.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((q.Page - 1) * q.Limit).
		SetLimit(q.Limit)
	cursor, err := r.students.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	students := make([]*auth.Student, 0)
	if err := cursor.All(ctx, &students); err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

func (r *mongoRepository) StaffByID(ctx context.Context, id primitive.ObjectID) (*auth.Staff, error) {
	var staff auth.Staff
	err := r.staff.FindOne(ctx, bson.M{"_id": id}).Decode(&staff)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}

func (r *mongoRepository) StudentByID(ctx context.Context, id primitive.ObjectID) (*auth.Student, error) {
	var student auth.Student
	err := r.students.FindOne(ctx, bson.M{"_id": id}).Decode(&student)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

func (r *mongoRepository) UpdateStaffProfile(ctx context.Context, id primitive.ObjectID, req UpdateStaffProfileRequest) (*auth.Staff, error) {
	update := bson.M{"$set": bson.M{
		"department":  req.Department,
		"designation": req.Designation,
		"updated_at":  time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var staff auth.Staff
	err := r.staff.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&staff)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}

func (r *mongoRepository) UpdateStudentProfile(ctx context.Context, id primitive.ObjectID, req UpdateStudentProfileRequest) (*auth.Student, error) {
	update := bson.M{"$set": bson.M{
		"emergency_contact": req.EmergencyContact,
		"blood_group":       req.BloodGroup,
		"updated_at":        time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var student auth.Student
	err := r.students.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&student)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}
