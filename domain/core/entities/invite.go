package entities

import (
	"time"

	"reunion-backend/domain/core/valueobjects"
	"reunion-backend/pkg/utils"
)

// InviteStatusPending is the only status written client-side; delivery and
// acceptance transitions belong to server-side infrastructure out of scope
// here.
const InviteStatusPending = "pending"

// Invite is a persisted invitation. At most one pending invite may exist
// per email address.
type Invite struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	InviterID   string    `json:"inviter_id"`
	InviterName string    `json:"inviter_name"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewInviteFields builds the insert document for a pending invite.
func NewInviteFields(email, message string, inviter valueobjects.Session, now time.Time) Document {
	return Document{
		"email":        email,
		"inviter_id":   inviter.UserID,
		"inviter_name": inviter.DisplayName,
		"message":      message,
		"status":       InviteStatusPending,
		"created_at":   utils.FormatRFC3339(now),
	}
}

// InviteFromDocument rehydrates an invite from a store document.
func InviteFromDocument(id string, doc Document) *Invite {
	return &Invite{
		ID:          id,
		Email:       fieldString(doc, "email"),
		InviterID:   fieldString(doc, "inviter_id"),
		InviterName: fieldString(doc, "inviter_name"),
		Message:     fieldString(doc, "message"),
		Status:      fieldString(doc, "status"),
		CreatedAt:   fieldTime(doc, "created_at"),
	}
}
