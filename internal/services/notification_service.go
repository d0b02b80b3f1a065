package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/klypp-app/klypp-backend/internal/models"
	"github.com/klypp-app/klypp-backend/internal/push"
)

// NotificationService owns the in-app notification rows and the push
// channel. Row creation happens inside the caller's transaction; push
// dispatch happens after commit and is best effort.
type NotificationService struct {
	db         *gorm.DB
	dispatcher *push.Dispatcher
}

func NewNotificationService(db *gorm.DB, dispatcher *push.Dispatcher) *NotificationService {
	return &NotificationService{db: db, dispatcher: dispatcher}
}

// CreateTx inserts a notification row on the given transaction. Metadata
// keys follow the client contract (planId, inviterId, memberId, status).
func (s *NotificationService) CreateTx(tx *gorm.DB, userID uuid.UUID, title, message, notifType string, metadata map[string]interface{}) (*models.Notification, error) {
	n := models.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notifType,
	}

	if metadata != nil {
		b, err := json.Marshal(metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to encode notification metadata: %w", err)
		}
		n.Metadata = datatypes.JSON(b)
	}

	if err := tx.Create(&n).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return &n, nil
}

// Dispatch pushes the notification to the recipient's devices. Called
// after the owning transaction commits; never blocks or fails the caller.
func (s *NotificationService) Dispatch(n *models.Notification) {
	go s.dispatcher.Notify(n.UserID.String(), map[string]interface{}{
		"id":      n.ID.String(),
		"title":   n.Title,
		"message": n.Message,
		"type":    n.Type,
	})
}

// SetInvitationStatusTx stamps the invitation's original notification
// with the invitee's response so the client can render it as processed.
func (s *NotificationService) SetInvitationStatusTx(tx *gorm.DB, memberID uuid.UUID, status string) error {
	return tx.Model(&models.Notification{}).
		Where("type = ? AND metadata->>'memberId' = ?", models.NotificationPlanInvitation, memberID.String()).
		Update("metadata", gorm.Expr(`jsonb_set(metadata, '{status}', to_jsonb(?::text))`, status)).Error
}

// DeleteForPlanTx removes every notification that references the plan.
// Part of the plan-delete cascade.
func (s *NotificationService) DeleteForPlanTx(tx *gorm.DB, planID uuid.UUID) error {
	return tx.Where("metadata->>'planId' = ?", planID.String()).
		Delete(&models.Notification{}).Error
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error
	return notifications, err
}

// MarkRead flips is_read on the user's own notification.
func (s *NotificationService) MarkRead(userID, notificationID uuid.UUID) error {
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("notification not found")
	}
	return nil
}

// RegisterDevice upserts a push token for the user. Re-registering an
// existing token reassigns it, which covers account switches on a shared
// device.
func (s *NotificationService) RegisterDevice(userID uuid.UUID, token string) error {
	if token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	var existing models.DeviceToken
	err := s.db.Where("token = ?", token).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(&models.DeviceToken{
			ID:     uuid.New(),
			UserID: userID,
			Token:  token,
		}).Error
	}
	if err != nil {
		return err
	}

	if existing.UserID != userID {
		return s.db.Model(&existing).Update("user_id", userID).Error
	}
	return nil
}
