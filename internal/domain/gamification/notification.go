package gamification

import (
	"time"

	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// NotificationKind classifies a user-facing notification
type NotificationKind string

const (
	NotificationBadgeAwarded     NotificationKind = "BADGE_AWARDED"
	NotificationMilestoneReached NotificationKind = "MILESTONE_REACHED"
)

// Notification is a message shown to a user in-app
type Notification struct {
	shared.BaseEntity
	RecipientID uuid.UUID        `json:"recipient_id"`
	Kind        NotificationKind `json:"kind"`
	Title       string           `json:"title"`
	Body        string           `json:"body"`
	Read        bool             `json:"read"`
	ReadAt      *time.Time       `json:"read_at,omitempty"`
}

// NewNotification creates an unread notification
func NewNotification(recipientID uuid.UUID, kind NotificationKind, title, body string) (*Notification, error) {
	if recipientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Recipient cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot be empty")
	}

	return &Notification{
		BaseEntity:  shared.NewBaseEntity(),
		RecipientID: recipientID,
		Kind:        kind,
		Title:       title,
		Body:        body,
	}, nil
}

// MarkRead flags the notification as read
func (n *Notification) MarkRead() {
	if n.Read {
		return
	}
	now := time.Now()
	n.Read = true
	n.ReadAt = &now
	n.UpdatedAt = now
}
