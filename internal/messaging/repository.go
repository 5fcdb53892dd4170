package messaging

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository gives the messaging layer its own view over the staff and
// student collections for recipient resolution, plus the message store
// itself. Find methods return (nil, nil) when nothing matches.
type Repository interface {
	ActiveStaffIDs(ctx context.Context, orgID primitive.ObjectID) ([]primitive.ObjectID, error)
	ActiveStudentIDs(ctx context.Context, orgID primitive.ObjectID) ([]primitive.ObjectID, error)
	ActiveStaffIDsIn(ctx context.Context, orgID primitive.ObjectID, ids []primitive.ObjectID) ([]primitive.ObjectID, error)
	ActiveStudentIDsIn(ctx context.Context, orgID primitive.ObjectID, ids []primitive.ObjectID) ([]primitive.ObjectID, error)
	StaffEmails(ctx context.Context, orgID primitive.ObjectID, ids []primitive.ObjectID) ([]string, error)

	CreateMessage(ctx context.Context, msg *Message) error
	ListForRecipient(ctx context.Context, orgID, userID primitive.ObjectID, skip, limit int64) ([]*Message, int64, error)
	ListForOrganization(ctx context.Context, orgID primitive.ObjectID, skip, limit int64) ([]*Message, int64, error)
	FindForRecipient(ctx context.Context, orgID, userID, messageID primitive.ObjectID) (*Message, error)
	SoftDelete(ctx context.Context, orgID, messageID primitive.ObjectID) (bool, error)
	AppendReadReceipt(ctx context.Context, orgID, userID, messageID primitive.ObjectID, receipt ReadReceipt) error
}

type mongoRepository struct {
	messages *mongo.Collection
	staff    *mongo.Collection
	students *mongo.Collection
}

var _ Repository = (*mongoRepository)(nil)

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		messages: db.Collection("messages"),
		staff:    db.Collection("staff"),
		students: db.Collection("students"),
	}
}

func (r *mongoRepository) idsMatching(ctx context.Context, collection *mongo.Collection, filter bson.M) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}

func (r *mongoRepository) ActiveStaffIDs(ctx context.Context, orgID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return r.idsMatching(ctx, r.staff, bson.M{"organization": orgID, "is_active": true})
}

func (r *mongoRepository) ActiveStudentIDs(ctx context.Context, orgID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return r.idsMatching(ctx, r.students, bson.M{"organization": orgID, "is_active": true})
}

func (r *mongoRepository) ActiveStaffIDsIn(ctx context.Context, orgID primitive.ObjectID, ids []primitive.ObjectID) ([]primitive.ObjectID, error) {
	return r.idsMatching(ctx, r.staff, bson.M{"_id": bson.M{"$in": ids}, "organization": orgID, "is_active": true})
}

func (r *mongoRepository) ActiveStudentIDsIn(ctx context.Context, orgID primitive.ObjectID, ids []primitive.ObjectID) ([]primitive.ObjectID, error) {
	return r.idsMatching(ctx, r.students, bson.M{"_id": bson.M{"$in": ids}, "organization": orgID, "is_active": true})
}

func (r *mongoRepository) StaffEmails(ctx context.Context, orgID primitive.ObjectID, ids []primitive.ObjectID) ([]string, error) {
	filter := bson.M{"_id": bson.M{"$in": ids}, "organization": orgID, "is_active": true}
	opts := options.Find().SetProjection(bson.M{"email": 1})
	cursor, err := r.staff.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []struct {
		Email string `bson:"email"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc.Email != "" {
			emails = append(emails, doc.Email)
		}
	}
	return emails, nil
}

func (r *mongoRepository) CreateMessage(ctx context.Context, msg *Message) error {
	res, err := r.messages.InsertOne(ctx, msg)
	if err != nil {
		return err
	}
	msg.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) paginate(ctx context.Context, filter bson.M, skip, limit int64) ([]*Message, int64, error) {
	total, err := r.messages.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := r.messages.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	messages := make([]*Message, 0)
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *mongoRepository) ListForRecipient(ctx context.Context, orgID, userID primitive.ObjectID, skip, limit int64) ([]*Message, int64, error) {
	return r.paginate(ctx, bson.M{
		"organization": orgID,
		"recipients":   userID,
		"is_active":    true,
	}, skip, limit)
}

func (r *mongoRepository) ListForOrganization(ctx context.Context, orgID primitive.ObjectID, skip, limit int64) ([]*Message, int64, error) {
	return r.paginate(ctx, bson.M{
		"organization": orgID,
		"is_active":    true,
	}, skip, limit)
}

func (r *mongoRepository) FindForRecipient(ctx context.Context, orgID, userID, messageID primitive.ObjectID) (*Message, error) {
	var msg Message
	err := r.messages.FindOne(ctx, bson.M{
		"_id":          messageID,
		"organization": orgID,
		"recipients":   userID,
		"is_active":    true,
	}).Decode(&msg)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

func (r *mongoRepository) SoftDelete(ctx context.Context, orgID, messageID primitive.ObjectID) (bool, error) {
	res, err := r.messages.UpdateOne(ctx, bson.M{
		"_id":          messageID,
		"organization": orgID,
		"is_active":    true,
	}, bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// AppendReadReceipt pushes a receipt unless the user already has one, so
// repeated reads stay idempotent. The recipient/organization scope is part
// of the filter; a non-matching message simply matches zero documents.
func (r *mongoRepository) AppendReadReceipt(ctx context.Context, orgID, userID, messageID primitive.ObjectID, receipt ReadReceipt) error {
	_, err := r.messages.UpdateOne(ctx, bson.M{
		"_id":          messageID,
		"organization": orgID,
		"recipients":   userID,
		"is_active":    true,
		"read_by.user": bson.M{"$ne": userID},
	}, bson.M{"$push": bson.M{"read_by": receipt}})
	return err
}
