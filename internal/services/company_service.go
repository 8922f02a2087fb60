package services

import (
	"context"
	"time"

	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CompanyService interface {
	List(ctx context.Context) ([]models.User, error)
	Approve(ctx context.Context, companyID string, adminID primitive.ObjectID) error
	Stats(ctx context.Context, companyID primitive.ObjectID) (*dto.CompanyStatsResponse, error)
}

type companyServiceImpl struct {
	users         repositories.UserRepository
	jobs          repositories.JobRepository
	applications  repositories.ApplicationRepository
	notifications NotificationService
}

func NewCompanyService(
	users repositories.UserRepository,
	jobs repositories.JobRepository,
	applications repositories.ApplicationRepository,
	notifications NotificationService,
) CompanyService {
	return &companyServiceImpl{
		users:         users,
		jobs:          jobs,
		applications:  applications,
		notifications: notifications,
	}
}

func (s *companyServiceImpl) List(ctx context.Context) ([]models.User, error) {
	companies, err := s.users.FindByRole(ctx, models.UserRoleCompany)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return companies, nil
}

// Approve одобряет аккаунт компании и уведомляет ее об этом.
func (s *companyServiceImpl) Approve(ctx context.Context, companyID string, adminID primitive.ObjectID) error {
	id, err := primitive.ObjectIDFromHex(companyID)
	if err != nil {
		return apperrors.ErrNotFound(err, "user", "Company not found")
	}

	company, err := s.users.FindByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err, "user", "Company not found")
		}
		return apperrors.InternalError(err)
	}
	if company.Role != models.UserRoleCompany {
		return apperrors.ErrInvalidOperation("user", "Only company accounts can be approved")
	}
	if company.IsApproved {
		return apperrors.ErrConflict(nil, "user", "Company is already approved")
	}

	if err := s.users.SetApproved(ctx, id, true); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.notifications.NotifyCompanyApproved(ctx, adminID, company); err != nil {
		logger.CtxWarn(ctx, "failed to notify company of approval",
			"company_id", companyID, "error", err)
	}

	logger.CtxInfo(ctx, "company approved", "company_id", companyID)
	return nil
}

// Stats собирает сводку по вакансиям компании. "Новые" - за последние 7 дней.
func (s *companyServiceImpl) Stats(ctx context.Context, companyID primitive.ObjectID) (*dto.CompanyStatsResponse, error) {
	jobIDs, err := s.jobs.FindIDsByCompany(ctx, companyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	totalApplicants, err := s.applications.CountByJobIDs(ctx, jobIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	newApplications, err := s.applications.CountByJobIDsSince(ctx, jobIDs, weekAgo)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.CompanyStatsResponse{
		TotalJobs:       int64(len(jobIDs)),
		TotalApplicants: totalApplicants,
		NewApplications: newApplications,
	}, nil
}
