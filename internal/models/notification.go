package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReadReceipt - отметка о прочтении конкретным пользователем.
// В readBy не бывает двух записей для одного пользователя.
type ReadReceipt struct {
	User   primitive.ObjectID `bson:"user" json:"user"`
	ReadAt time.Time          `bson:"readAt" json:"readAt"`
}

type Notification struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Sender     primitive.ObjectID `bson:"sender" json:"sender"`
	SenderRole UserRole           `bson:"senderRole" json:"senderRole"`

	RecipientType RecipientType `bson:"recipientType" json:"recipientType"`
	// Recipients - снапшот на момент отправки. Для broadcast-типов заполняется
	// разворачиванием текущего состава роли, для specific-типов берется из запроса.
	// После создания не меняется и не дополняется новыми пользователями.
	Recipients []primitive.ObjectID `bson:"recipients" json:"recipients"`

	Title   string           `bson:"title" json:"title"`
	Message string           `bson:"message" json:"message"`
	Type    NotificationType `bson:"type" json:"type"`

	ReadBy    []ReadReceipt        `bson:"readBy" json:"readBy"`
	DeletedBy []primitive.ObjectID `bson:"isDeletedBy" json:"isDeletedBy"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// IsReadBy - прочитал ли пользователь уведомление
func (n *Notification) IsReadBy(userID primitive.ObjectID) bool {
	for _, r := range n.ReadBy {
		if r.User == userID {
			return true
		}
	}
	return false
}

// IsDeletedBy - скрыл ли пользователь уведомление у себя (soft delete)
func (n *Notification) IsDeletedBy(userID primitive.ObjectID) bool {
	for _, id := range n.DeletedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// HasRecipient - входит ли пользователь в снапшот получателей
func (n *Notification) HasRecipient(userID primitive.ObjectID) bool {
	for _, id := range n.Recipients {
		if id == userID {
			return true
		}
	}
	return false
}
