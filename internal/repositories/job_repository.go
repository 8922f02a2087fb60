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

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	Insert(ctx context.Context, job *models.Job) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error)
	// FindAll возвращает вакансии, новые первыми; companyID опционально сужает выборку
	FindAll(ctx context.Context, companyID *primitive.ObjectID) ([]models.Job, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Job, error)
	FindIDsByCompany(ctx context.Context, companyID primitive.ObjectID) ([]primitive.ObjectID, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	CountByCompany(ctx context.Context, companyID primitive.ObjectID) (int64, error)
}

type JobRepositoryImpl struct {
	coll *mongo.Collection
}

func NewJobRepository(db *mongo.Database) JobRepository {
	return &JobRepositoryImpl{coll: db.Collection("jobs")}
}

func (r *JobRepositoryImpl) Insert(ctx context.Context, job *models.Job) error {
	if job.ID.IsZero() {
		job.ID = primitive.NewObjectID()
	}
	now := time.Now()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now
	if job.Skills == nil {
		job.Skills = []string{}
	}

	if _, err := r.coll.InsertOne(ctx, job); err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

func (r *JobRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	var job models.Job
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindAll(ctx context.Context, companyID *primitive.ObjectID) ([]models.Job, error) {
	filter := bson.M{}
	if companyID != nil {
		filter["company"] = *companyID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer cursor.Close(ctx)

	jobs := []models.Job{}
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepositoryImpl) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Job, error) {
	if len(ids) == 0 {
		return []models.Job{}, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer cursor.Close(ctx)

	jobs := []models.Job{}
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepositoryImpl) FindIDsByCompany(ctx context.Context, companyID primitive.ObjectID) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})

	cursor, err := r.coll.Find(ctx, bson.M{"company": companyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query job ids: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode job ids: %w", err)
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

func (r *JobRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) Count(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}

func (r *JobRepositoryImpl) CountSince(ctx context.Context, since time.Time) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": since}})
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}

func (r *JobRepositoryImpl) CountByCompany(ctx context.Context, companyID primitive.ObjectID) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"company": companyID})
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}
