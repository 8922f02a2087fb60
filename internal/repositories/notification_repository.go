package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobportal_backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	Insert(ctx context.Context, notification *models.Notification) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error)
	// FindVisibleCandidates возвращает все уведомления, не скрытые пользователем,
	// новые первыми. Разбиение на Received/Sent делает сервис.
	FindVisibleCandidates(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error)
	AddReadReceipt(ctx context.Context, id, userID primitive.ObjectID, readAt time.Time) error
	RemoveReadReceipt(ctx context.Context, id, userID primitive.ObjectID) error
	MarkDeletedBy(ctx context.Context, id, userID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type NotificationRepositoryImpl struct {
	coll *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) NotificationRepository {
	return &NotificationRepositoryImpl{coll: db.Collection("notifications")}
}

func (r *NotificationRepositoryImpl) Insert(ctx context.Context, notification *models.Notification) error {
	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	// Пустые массивы вместо null, чтобы обновления по элементам работали сразу
	if notification.Recipients == nil {
		notification.Recipients = []primitive.ObjectID{}
	}
	if notification.ReadBy == nil {
		notification.ReadBy = []models.ReadReceipt{}
	}
	if notification.DeletedBy == nil {
		notification.DeletedBy = []primitive.ObjectID{}
	}

	if _, err := r.coll.InsertOne(ctx, notification); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	var notification models.Notification
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&notification)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindVisibleCandidates(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	filter := bson.M{"isDeletedBy": bson.M{"$ne": userID}}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, nil
}

// AddReadReceipt добавляет отметку о прочтении атомарно: фильтр исключает
// документы, где отметка пользователя уже есть, поэтому двух записей на одного
// пользователя не бывает даже при конкурентных вызовах.
func (r *NotificationRepositoryImpl) AddReadReceipt(ctx context.Context, id, userID primitive.ObjectID, readAt time.Time) error {
	filter := bson.M{
		"_id":        id,
		"readBy.user": bson.M{"$ne": userID},
	}
	update := bson.M{
		"$push": bson.M{"readBy": models.ReadReceipt{User: userID, ReadAt: readAt}},
	}

	// MatchedCount == 0 означает "уже прочитано" - существование документа
	// проверяет сервис до вызова
	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to add read receipt: %w", err)
	}
	return nil
}

func (r *NotificationRepositoryImpl) RemoveReadReceipt(ctx context.Context, id, userID primitive.ObjectID) error {
	update := bson.M{
		"$pull": bson.M{"readBy": bson.M{"user": userID}},
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to remove read receipt: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkDeletedBy(ctx context.Context, id, userID primitive.ObjectID) error {
	update := bson.M{
		"$addToSet": bson.M{"isDeletedBy": userID},
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to mark notification deleted: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
