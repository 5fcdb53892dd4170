package messaging

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeMember struct {
	org      primitive.ObjectID
	email    string
	isActive bool
}

// fakeRepository is an in-memory Repository for service and resolver
// tests.
type fakeRepository struct {
	staff    map[primitive.ObjectID]fakeMember
	students map[primitive.ObjectID]fakeMember
	messages []*Message
}

var _ Repository = (*fakeRepository)(nil)

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		staff:    make(map[primitive.ObjectID]fakeMember),
		students: make(map[primitive.ObjectID]fakeMember),
	}
}

func (f *fakeRepository) addStaff(org primitive.ObjectID, email string, active bool) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.staff[id] = fakeMember{org: org, email: email, isActive: active}
	return id
}

func (f *fakeRepository) addStudent(org primitive.ObjectID, active bool) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.students[id] = fakeMember{org: org, isActive: active}
	return id
}

func activeIDs(members map[primitive.ObjectID]fakeMember, org primitive.ObjectID) []primitive.ObjectID {
	var ids []primitive.ObjectID
	for id, m := range members {
		if m.org == org && m.isActive {
			ids = append(ids, id)
		}
	}
	return ids
}

func activeIDsIn(members map[primitive.ObjectID]fakeMember, org primitive.ObjectID, in []primitive.ObjectID) []primitive.ObjectID {
	var ids []primitive.ObjectID
	for _, id := range in {
		if m, ok := members[id]; ok && m.org == org && m.isActive {
			ids = append(ids, id)
		}
	}
	return ids
}

func (f *fakeRepository) ActiveStaffIDs(_ context.Context, org primitive.ObjectID) ([]primitive.ObjectID, error) {
	return activeIDs(f.staff, org), nil
}

func (f *fakeRepository) ActiveStudentIDs(_ context.Context, org primitive.ObjectID) ([]primitive.ObjectID, error) {
	return activeIDs(f.students, org), nil
}

func (f *fakeRepository) ActiveStaffIDsIn(_ context.Context, org primitive.ObjectID, in []primitive.ObjectID) ([]primitive.ObjectID, error) {
	return activeIDsIn(f.staff, org, in), nil
}

func (f *fakeRepository) ActiveStudentIDsIn(_ context.Context, org primitive.ObjectID, in []primitive.ObjectID) ([]primitive.ObjectID, error) {
	return activeIDsIn(f.students, org, in), nil
}

func (f *fakeRepository) StaffEmails(_ context.Context, org primitive.ObjectID, in []primitive.ObjectID) ([]string, error) {
	var emails []string
	for _, id := range in {
		if m, ok := f.staff[id]; ok && m.org == org && m.isActive && m.email != "" {
			emails = append(emails, m.email)
		}
	}
	return emails, nil
}

func (f *fakeRepository) CreateMessage(_ context.Context, msg *Message) error {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeRepository) matching(filter func(*Message) bool) []*Message {
	var out []*Message
	for _, msg := range f.messages {
		if msg.IsActive && filter(msg) {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func page(msgs []*Message, skip, limit int64) []*Message {
	if skip >= int64(len(msgs)) {
		return []*Message{}
	}
	end := skip + limit
	if end > int64(len(msgs)) {
		end = int64(len(msgs))
	}
	return msgs[skip:end]
}

func hasRecipient(msg *Message, userID primitive.ObjectID) bool {
	for _, r := range msg.Recipients {
		if r == userID {
			return true
		}
	}
	return false
}

func (f *fakeRepository) ListForRecipient(_ context.Context, org, userID primitive.ObjectID, skip, limit int64) ([]*Message, int64, error) {
	msgs := f.matching(func(m *Message) bool {
		return m.Organization == org && hasRecipient(m, userID)
	})
	return page(msgs, skip, limit), int64(len(msgs)), nil
}

func (f *fakeRepository) ListForOrganization(_ context.Context, org primitive.ObjectID, skip, limit int64) ([]*Message, int64, error) {
	msgs := f.matching(func(m *Message) bool { return m.Organization == org })
	return page(msgs, skip, limit), int64(len(msgs)), nil
}

func (f *fakeRepository) FindForRecipient(_ context.Context, org, userID, messageID primitive.ObjectID) (*Message, error) {
	for _, msg := range f.messages {
		if msg.ID == messageID && msg.IsActive && msg.Organization == org && hasRecipient(msg, userID) {
			return msg, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) SoftDelete(_ context.Context, org, messageID primitive.ObjectID) (bool, error) {
	for _, msg := range f.messages {
		if msg.ID == messageID && msg.IsActive && msg.Organization == org {
			msg.IsActive = false
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) AppendReadReceipt(_ context.Context, org, userID, messageID primitive.ObjectID, receipt ReadReceipt) error {
	for _, msg := range f.messages {
		if msg.ID != messageID || !msg.IsActive || msg.Organization != org || !hasRecipient(msg, userID) {
			continue
		}
		for _, r := range msg.ReadBy {
			if r.User == userID {
				return nil
			}
		}
		msg.ReadBy = append(msg.ReadBy, receipt)
	}
	return nil
}

// fakeEmailSender records outgoing notifications.
type fakeEmailSender struct {
	sent []string
}

func (f *fakeEmailSender) SendEmail(to, _, _ string) error {
	f.sent = append(f.sent, to)
	return nil
}

func (f *fakeEmailSender) Enabled() bool { return true }
