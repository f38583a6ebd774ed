package services

import (
	"log"

	"github.com/rakib99/pinnest/backend/internal/models"
	"github.com/rakib99/pinnest/backend/internal/repositories"
)

// Notifier is the best-effort notification side-channel. A failure here is
// logged and swallowed; it never propagates into the primary operation.
// Suppressing self-notifications is the caller's responsibility.
type Notifier struct {
	notifications repositories.NotificationRepository
}

// NewNotifier creates a new Notifier
func NewNotifier(notificationRepo repositories.NotificationRepository) *Notifier {
	return &Notifier{notifications: notificationRepo}
}

// Notify records a notification for the recipient
func (n *Notifier) Notify(recipientID, actorID uint, notificationType, message, targetID, targetType string) {
	notification := &models.Notification{
		Type:        notificationType,
		ActorID:     actorID,
		RecipientID: recipientID,
		TargetID:    targetID,
		TargetType:  targetType,
		Message:     message,
	}
	if err := n.notifications.CreateNotification(notification); err != nil {
		log.Printf("notifier: failed to create %s notification for user %d: %v", notificationType, recipientID, err)
	}
}

// RetractByTarget removes notifications that reference a target entity.
// Retracting an already-retracted notice is a no-op.
func (n *Notifier) RetractByTarget(targetID, notificationType string) {
	if err := n.notifications.DeleteByTarget(targetID, notificationType); err != nil {
		log.Printf("notifier: failed to retract %s notifications for target %s: %v", notificationType, targetID, err)
	}
}
