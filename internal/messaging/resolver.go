package messaging

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"SchoolBridge/internal/apperr"
)

// Resolver turns an audience specifier into the concrete set of recipient
// ids for one organization. The result is a set: deduplicated, unordered.
type Resolver struct {
	repo Repository
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

func (r *Resolver) Resolve(ctx context.Context, orgID primitive.ObjectID, recipientType string, explicitIDs []primitive.ObjectID) ([]primitive.ObjectID, error) {
	var recipients []primitive.ObjectID
	var err error

	switch recipientType {
	case RecipientAll:
		var staff, students []primitive.ObjectID
		if staff, err = r.repo.ActiveStaffIDs(ctx, orgID); err != nil {
			return nil, err
		}
		if students, err = r.repo.ActiveStudentIDs(ctx, orgID); err != nil {
			return nil, err
		}
		recipients = append(staff, students...)

	case RecipientStaff:
		if len(explicitIDs) > 0 {
			recipients, err = r.repo.ActiveStaffIDsIn(ctx, orgID, explicitIDs)
		} else {
			recipients, err = r.repo.ActiveStaffIDs(ctx, orgID)
		}
		if err != nil {
			return nil, err
		}

	case RecipientStudents:
		if len(explicitIDs) > 0 {
			recipients, err = r.repo.ActiveStudentIDsIn(ctx, orgID, explicitIDs)
		} else {
			recipients, err = r.repo.ActiveStudentIDs(ctx, orgID)
		}
		if err != nil {
			return nil, err
		}

	case RecipientSpecific:
		if len(explicitIDs) == 0 {
			return nil, apperr.New(apperr.KindValidation, "recipients are required when recipientType is specific")
		}
		var staff, students []primitive.ObjectID
		if staff, err = r.repo.ActiveStaffIDsIn(ctx, orgID, explicitIDs); err != nil {
			return nil, err
		}
		if students, err = r.repo.ActiveStudentIDsIn(ctx, orgID, explicitIDs); err != nil {
			return nil, err
		}
		recipients = append(staff, students...)

	default:
		return nil, apperr.Newf(apperr.KindValidation, "unknown recipient type %q", recipientType)
	}

	recipients = dedupe(recipients)
	if len(recipients) == 0 {
		return nil, apperr.New(apperr.KindValidation, "message has no eligible recipients")
	}
	return recipients, nil
}

func dedupe(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
