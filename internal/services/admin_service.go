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

type AdminService interface {
	PlatformStats(ctx context.Context) (*dto.PlatformStatsResponse, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, userID string, actorID primitive.ObjectID) error
}

type adminServiceImpl struct {
	users        repositories.UserRepository
	jobs         repositories.JobRepository
	applications repositories.ApplicationRepository
}

func NewAdminService(
	users repositories.UserRepository,
	jobs repositories.JobRepository,
	applications repositories.ApplicationRepository,
) AdminService {
	return &adminServiceImpl{users: users, jobs: jobs, applications: applications}
}

// PlatformStats собирает сводку для админской панели.
// "Recent" - за последние 7 дней, "Placements" - принятые отклики.
func (s *adminServiceImpl) PlatformStats(ctx context.Context) (*dto.PlatformStatsResponse, error) {
	weekAgo := time.Now().AddDate(0, 0, -7)

	totalStudents, err := s.users.CountByRole(ctx, models.UserRoleStudent)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	totalCompanies, err := s.users.CountByRole(ctx, models.UserRoleCompany)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	totalJobs, err := s.jobs.Count(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	totalApplications, err := s.applications.Count(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	recentJobs, err := s.jobs.CountSince(ctx, weekAgo)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	recentStudents, err := s.users.CountByRoleSince(ctx, models.UserRoleStudent, weekAgo)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	placements, err := s.applications.CountByStatus(ctx, models.ApplicationAccepted)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.PlatformStatsResponse{
		TotalStudents:     totalStudents,
		TotalCompanies:    totalCompanies,
		TotalJobs:         totalJobs,
		TotalApplications: totalApplications,
		RecentJobs:        recentJobs,
		RecentStudents:    recentStudents,
		Placements:        placements,
	}, nil
}

func (s *adminServiceImpl) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return users, nil
}

// DeleteUser удаляет пользователя. Админ не может удалить сам себя.
func (s *adminServiceImpl) DeleteUser(ctx context.Context, userID string, actorID primitive.ObjectID) error {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperrors.ErrNotFound(err, "user", "User not found")
	}
	if id == actorID {
		return apperrors.ErrInvalidOperation("user", "You cannot delete your own account")
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err, "user", "User not found")
		}
		return apperrors.InternalError(err)
	}

	logger.CtxWarn(ctx, "user deleted by admin", "user_id", userID)
	return nil
}
