package messaging

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RecipientAll      = "all"
	RecipientStaff    = "staff"
	RecipientStudents = "students"
	RecipientSpecific = "specific"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type ReadReceipt struct {
	User primitive.ObjectID `bson:"user" json:"userId"`
	At   time.Time          `bson:"at" json:"at"`
}

// Message is immutable after creation except for soft deletion by the
// owning organization and read-receipt appends by recipients.
type Message struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Organization  primitive.ObjectID   `bson:"organization" json:"organizationId"`
	Sender        primitive.ObjectID   `bson:"sender" json:"senderId"`
	Title         string               `bson:"title" json:"title"`
	Content       string               `bson:"content" json:"content"`
	Recipients    []primitive.ObjectID `bson:"recipients" json:"recipients"`
	RecipientType string               `bson:"recipient_type" json:"recipientType"`
	Priority      string               `bson:"priority" json:"priority"`
	ReadBy        []ReadReceipt        `bson:"read_by,omitempty" json:"readBy,omitempty"`
	IsActive      bool                 `bson:"is_active" json:"-"`
	CreatedAt     time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updated_at" json:"updatedAt"`
}

type SendMessageRequest struct {
	Title         string   `json:"title" validate:"required,max=200"`
	Content       string   `json:"content" validate:"required"`
	RecipientType string   `json:"recipientType" validate:"required,oneof=all staff students specific"`
	Recipients    []string `json:"recipients" validate:"dive,required"`
	Priority      string   `json:"priority" validate:"omitempty,oneof=low medium high"`
}

type Page struct {
	Messages    []*Message `json:"messages"`
	TotalPages  int64      `json:"totalPages"`
	CurrentPage int64      `json:"currentPage"`
	Total       int64      `json:"total"`
}
