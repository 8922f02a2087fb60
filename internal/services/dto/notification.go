package dto

import (
	"time"

	"jobportal_backend/internal/models"
)

// SendNotificationRequest - запрос на отправку уведомления (admin или company).
// RecipientIDs используется только для specific-типов и берется как есть.
type SendNotificationRequest struct {
	Title         string   `json:"title" validate:"required,min=1"`
	Message       string   `json:"message" validate:"required,min=1"`
	RecipientType string   `json:"recipientType" validate:"required,recipient-type"`
	RecipientIDs  []string `json:"recipientIds,omitempty"`
	Type          string   `json:"type,omitempty" validate:"notification-type"`
	SendEmail     bool     `json:"sendEmail,omitempty"`
}

type NotificationResponse struct {
	ID            string                  `json:"id"`
	Sender        string                  `json:"sender"`
	SenderRole    models.UserRole         `json:"senderRole"`
	RecipientType models.RecipientType    `json:"recipientType"`
	Recipients    []string                `json:"recipients"`
	Title         string                  `json:"title"`
	Message       string                  `json:"message"`
	Type          models.NotificationType `json:"type"`
	IsRead        bool                    `json:"isRead"`
	CreatedAt     time.Time               `json:"createdAt"`
}

// NotificationFeedResponse - две непересекающиеся ленты для запросившего
// пользователя: полученные и отправленные его ролью (oversight-представление)
type NotificationFeedResponse struct {
	Received []*NotificationResponse `json:"received"`
	Sent     []*NotificationResponse `json:"sent"`
}

// ToggleReadResponse - результат переключения отметки прочтения
type ToggleReadResponse struct {
	IsRead bool `json:"isRead"`
}
