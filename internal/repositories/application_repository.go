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

var ErrApplicationNotFound = errors.New("application not found")

type ApplicationRepository interface {
	Insert(ctx context.Context, application *models.Application) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error)
	FindByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Application, error)
	FindByJob(ctx context.Context, jobID primitive.ObjectID) ([]models.Application, error)
	FindByJobIDs(ctx context.Context, jobIDs []primitive.ObjectID) ([]models.Application, error)
	FindOneByJobAndStudent(ctx context.Context, jobID, studentID primitive.ObjectID) (*models.Application, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ApplicationStatus) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.ApplicationStatus) (int64, error)
	CountByJobIDs(ctx context.Context, jobIDs []primitive.ObjectID) (int64, error)
	CountByJobIDsSince(ctx context.Context, jobIDs []primitive.ObjectID, since time.Time) (int64, error)
}

type ApplicationRepositoryImpl struct {
	coll *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) ApplicationRepository {
	return &ApplicationRepositoryImpl{coll: db.Collection("applications")}
}

func (r *ApplicationRepositoryImpl) Insert(ctx context.Context, application *models.Application) error {
	if application.ID.IsZero() {
		application.ID = primitive.NewObjectID()
	}
	now := time.Now()
	if application.CreatedAt.IsZero() {
		application.CreatedAt = now
	}
	application.UpdatedAt = now
	if application.Status == "" {
		application.Status = models.ApplicationApplied
	}

	if _, err := r.coll.InsertOne(ctx, application); err != nil {
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

func (r *ApplicationRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error) {
	var application models.Application
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&application)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Application, error) {
	return r.findMany(ctx, bson.M{"student": studentID})
}

func (r *ApplicationRepositoryImpl) FindByJob(ctx context.Context, jobID primitive.ObjectID) ([]models.Application, error) {
	return r.findMany(ctx, bson.M{"job": jobID})
}

func (r *ApplicationRepositoryImpl) FindByJobIDs(ctx context.Context, jobIDs []primitive.ObjectID) ([]models.Application, error) {
	if len(jobIDs) == 0 {
		return []models.Application{}, nil
	}
	return r.findMany(ctx, bson.M{"job": bson.M{"$in": jobIDs}})
}

func (r *ApplicationRepositoryImpl) findMany(ctx context.Context, filter bson.M) ([]models.Application, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer cursor.Close(ctx)

	applications := []models.Application{}
	if err := cursor.All(ctx, &applications); err != nil {
		return nil, fmt.Errorf("failed to decode applications: %w", err)
	}
	return applications, nil
}

func (r *ApplicationRepositoryImpl) FindOneByJobAndStudent(ctx context.Context, jobID, studentID primitive.ObjectID) (*models.Application, error) {
	var application models.Application
	err := r.coll.FindOne(ctx, bson.M{"job": jobID, "student": studentID}).Decode(&application)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ApplicationStatus) error {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) Count(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return count, nil
}

func (r *ApplicationRepositoryImpl) CountByStatus(ctx context.Context, status models.ApplicationStatus) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return count, nil
}

func (r *ApplicationRepositoryImpl) CountByJobIDs(ctx context.Context, jobIDs []primitive.ObjectID) (int64, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}
	count, err := r.coll.CountDocuments(ctx, bson.M{"job": bson.M{"$in": jobIDs}})
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return count, nil
}

func (r *ApplicationRepositoryImpl) CountByJobIDsSince(ctx context.Context, jobIDs []primitive.ObjectID, since time.Time) (int64, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}
	filter := bson.M{"job": bson.M{"$in": jobIDs}, "createdAt": bson.M{"$gte": since}}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return count, nil
}
