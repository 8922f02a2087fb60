package services

import (
	"context"

	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type JobService interface {
	Create(ctx context.Context, companyID primitive.ObjectID, req *dto.CreateJobRequest) (*models.Job, error)
	GetByID(ctx context.Context, jobID string) (*models.Job, error)
	List(ctx context.Context) ([]models.Job, error)
	ListByCompany(ctx context.Context, companyID primitive.ObjectID) ([]models.Job, error)
	Delete(ctx context.Context, jobID string, actorID primitive.ObjectID, actorRole models.UserRole) error
}

type jobServiceImpl struct {
	jobs  repositories.JobRepository
	users repositories.UserRepository
}

func NewJobService(jobs repositories.JobRepository, users repositories.UserRepository) JobService {
	return &jobServiceImpl{jobs: jobs, users: users}
}

func (s *jobServiceImpl) Create(ctx context.Context, companyID primitive.ObjectID, req *dto.CreateJobRequest) (*models.Job, error) {
	company, err := s.users.FindByID(ctx, companyID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "user", "Company not found")
		}
		return nil, apperrors.InternalError(err)
	}

	// Неодобренные компании не публикуют вакансии
	if !company.IsApproved {
		return nil, apperrors.NewForbiddenError("Company account is awaiting approval")
	}

	jobType := models.JobType(req.JobType)
	if jobType == "" {
		jobType = models.JobTypeFullTime
	}

	job := &models.Job{
		Title:       req.Title,
		Company:     company.ID,
		CompanyName: company.DisplayName(),
		Location:    req.Location,
		Description: req.Description,
		Salary:      req.Salary,
		JobType:     jobType,
		Skills:      req.Skills,
		Experience:  req.Experience,
		Deadline:    req.Deadline,

		MaxApplicants: req.MaxApplicants,
	}

	if err := s.jobs.Insert(ctx, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "job posted", "job_id", job.ID.Hex(), "company", job.CompanyName)
	return job, nil
}

func (s *jobServiceImpl) GetByID(ctx context.Context, jobID string) (*models.Job, error) {
	id, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "job", "Job not found")
	}

	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err, "job", "Job not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *jobServiceImpl) List(ctx context.Context) ([]models.Job, error) {
	jobs, err := s.jobs.FindAll(ctx, nil)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return jobs, nil
}

func (s *jobServiceImpl) ListByCompany(ctx context.Context, companyID primitive.ObjectID) ([]models.Job, error) {
	jobs, err := s.jobs.FindAll(ctx, &companyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return jobs, nil
}

// Delete удаляет вакансию. Разрешено владеющей компании и админу.
func (s *jobServiceImpl) Delete(ctx context.Context, jobID string, actorID primitive.ObjectID, actorRole models.UserRole) error {
	id, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return apperrors.ErrNotFound(err, "job", "Job not found")
	}

	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrNotFound(err, "job", "Job not found")
		}
		return apperrors.InternalError(err)
	}

	if actorRole != models.UserRoleAdmin && job.Company != actorID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.jobs.Delete(ctx, id); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "job deleted", "job_id", jobID)
	return nil
}
