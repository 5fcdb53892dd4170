package messaging

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"SchoolBridge/internal/apperr"
	"SchoolBridge/pkg/pagination"
)

// EmailSender is satisfied by the configured email service. High-priority
// messages are mirrored to staff inboxes through it, best effort.
type EmailSender interface {
	SendEmail(to, subject, body string) error
	Enabled() bool
}

type Service struct {
	repo     Repository
	resolver *Resolver
	email    EmailSender
	logger   *zap.Logger
}

func NewService(repo Repository, resolver *Resolver, email EmailSender, logger *zap.Logger) *Service {
	return &Service{repo: repo, resolver: resolver, email: email, logger: logger}
}

// Send resolves the audience and persists the message. A message with no
// eligible recipients is rejected, never silently delivered to nobody.
func (s *Service) Send(ctx context.Context, orgID, senderID primitive.ObjectID, req SendMessageRequest) (*Message, error) {
	explicitIDs, err := parseRecipientIDs(req.Recipients)
	if err != nil {
		return nil, err
	}
	recipients, err := s.resolver.Resolve(ctx, orgID, req.RecipientType, explicitIDs)
	if err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	now := time.Now().UTC()
	msg := &Message{
		Organization:  orgID,
		Sender:        senderID,
		Title:         req.Title,
		Content:       req.Content,
		Recipients:    recipients,
		RecipientType: req.RecipientType,
		Priority:      priority,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	s.logger.Info("message sent",
		zap.String("organization", orgID.Hex()),
		zap.String("message", msg.ID.Hex()),
		zap.String("recipientType", msg.RecipientType),
		zap.Int("recipients", len(recipients)))

	if priority == PriorityHigh {
		s.notifyStaffByEmail(ctx, msg)
	}
	return msg, nil
}

// notifyStaffByEmail mirrors a high-priority message to staff recipients
// with an email address. Failures are logged and never fail the send;
// students carry no email and are skipped.
func (s *Service) notifyStaffByEmail(ctx context.Context, msg *Message) {
	if s.email == nil || !s.email.Enabled() {
		return
	}
	emails, err := s.repo.StaffEmails(ctx, msg.Organization, msg.Recipients)
	if err != nil {
		s.logger.Error("failed to load staff emails for high-priority message",
			zap.String("message", msg.ID.Hex()), zap.Error(err))
		return
	}
	for _, email := range emails {
		if err := s.email.SendEmail(email, msg.Title, msg.Content); err != nil {
			s.logger.Warn("failed to email message notification",
				zap.String("message", msg.ID.Hex()), zap.String("to", email), zap.Error(err))
		}
	}
}

func (s *Service) ListForUser(ctx context.Context, orgID, userID primitive.ObjectID, page, limit int64) (*Page, error) {
	page, limit = pagination.Normalize(page, limit)
	messages, total, err := s.repo.ListForRecipient(ctx, orgID, userID, pagination.Skip(page, limit), limit)
	if err != nil {
		return nil, err
	}
	return &Page{
		Messages:    messages,
		TotalPages:  pagination.TotalPages(total, limit),
		CurrentPage: page,
		Total:       total,
	}, nil
}

func (s *Service) ListForOrganization(ctx context.Context, orgID primitive.ObjectID, page, limit int64) (*Page, error) {
	page, limit = pagination.Normalize(page, limit)
	messages, total, err := s.repo.ListForOrganization(ctx, orgID, pagination.Skip(page, limit), limit)
	if err != nil {
		return nil, err
	}
	return &Page{
		Messages:    messages,
		TotalPages:  pagination.TotalPages(total, limit),
		CurrentPage: page,
		Total:       total,
	}, nil
}

// GetForUser enforces the same recipient/organization scope as listing so
// a message outside the caller's scope is indistinguishable from one that
// does not exist.
func (s *Service) GetForUser(ctx context.Context, orgID, userID, messageID primitive.ObjectID) (*Message, error) {
	msg, err := s.repo.FindForRecipient(ctx, orgID, userID, messageID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, apperr.New(apperr.KindNotFound, "message not found")
	}
	return msg, nil
}

func (s *Service) Delete(ctx context.Context, orgID, messageID primitive.ObjectID) error {
	deleted, err := s.repo.SoftDelete(ctx, orgID, messageID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.New(apperr.KindNotFound, "message not found")
	}
	return nil
}

// MarkRead appends a read receipt for the caller. Re-reading an already
// read message succeeds without a second receipt.
func (s *Service) MarkRead(ctx context.Context, orgID, userID, messageID primitive.ObjectID) error {
	msg, err := s.repo.FindForRecipient(ctx, orgID, userID, messageID)
	if err != nil {
		return err
	}
	if msg == nil {
		return apperr.New(apperr.KindNotFound, "message not found")
	}
	receipt := ReadReceipt{User: userID, At: time.Now().UTC()}
	return s.repo.AppendReadReceipt(ctx, orgID, userID, messageID, receipt)
}

func parseRecipientIDs(hexIDs []string) ([]primitive.ObjectID, error) {
	if len(hexIDs) == 0 {
		return nil, nil
	}
	ids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, hex := range hexIDs {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, apperr.Newf(apperr.KindValidation, "invalid recipient id %q", hex)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
