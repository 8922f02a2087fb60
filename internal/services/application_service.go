package services

import (
	"context"
	"fmt"

	"jobportal_backend/internal/email"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApplicationService interface {
	Apply(ctx context.Context, studentID primitive.ObjectID, req *dto.ApplyRequest) (*dto.ApplicationResponse, error)
	MyApplications(ctx context.Context, studentID primitive.ObjectID) ([]*dto.ApplicationResponse, error)
	ListForJob(ctx context.Context, jobID string, companyID primitive.ObjectID, role models.UserRole) ([]*dto.ApplicationResponse, error)
	ListForCompany(ctx context.Context, companyID primitive.ObjectID) ([]*dto.ApplicationResponse, error)
	UpdateStatus(ctx context.Context, applicationID string, companyID primitive.ObjectID, role models.UserRole, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error)
}

type applicationServiceImpl struct {
	applications  repositories.ApplicationRepository
	jobs          repositories.JobRepository
	users         repositories.UserRepository
	notifications NotificationService
	mailer        email.Dispatcher
}

func NewApplicationService(
	applications repositories.ApplicationRepository,
	jobs repositories.JobRepository,
	users repositories.UserRepository,
	notifications NotificationService,
	mailer email.Dispatcher,
) ApplicationService {
	return &applicationServiceImpl{
		applications:  applications,
		jobs:          jobs,
		users:         users,
		notifications: notifications,
		mailer:        mailer,
	}
}

// Apply создает отклик студента. Резюме берется из профиля, повторный отклик
// на ту же вакансию запрещен.
func (s *applicationServiceImpl) Apply(ctx context.Context, studentID primitive.ObjectID, req *dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	jobID, err := primitive.ObjectIDFromHex(req.JobID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "job", "Job not found")
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err, "job", "Job not found")
		}
		return nil, apperrors.InternalError(err)
	}

	student, err := s.users.FindByID(ctx, studentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if student.Resume == "" {
		return nil, apperrors.ErrInvalidOperation("application", "Upload a resume to your profile before applying")
	}

	if existing, err := s.applications.FindOneByJobAndStudent(ctx, jobID, studentID); err == nil && existing != nil {
		return nil, apperrors.ErrConflict(nil, "application", "You have already applied to this job")
	} else if err != nil && !apperrors.Is(err, repositories.ErrApplicationNotFound) {
		return nil, apperrors.InternalError(err)
	}

	if job.MaxApplicants > 0 {
		count, err := s.applications.CountByJobIDs(ctx, []primitive.ObjectID{jobID})
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if count >= int64(job.MaxApplicants) {
			return nil, apperrors.ErrConflict(nil, "application", "This job is no longer accepting applications")
		}
	}

	application := &models.Application{
		Job:     jobID,
		Student: studentID,
		Resume:  student.Resume,
		Status:  models.ApplicationApplied,
	}
	if err := s.applications.Insert(ctx, application); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "application submitted",
		"application_id", application.ID.Hex(),
		"job_id", jobID.Hex(),
	)

	// Письмо компании о новом отклике, без блокировки запроса
	go s.notifyCompanyOfApplication(job, student)

	return s.toResponse(application, job, student), nil
}

func (s *applicationServiceImpl) notifyCompanyOfApplication(job *models.Job, student *models.User) {
	company, err := s.users.FindByID(context.Background(), job.Company)
	if err != nil || company.Email == "" {
		return
	}
	subject := "New application for " + job.Title
	body := fmt.Sprintf("%s has applied for your %q opening. Log in to review the application.", student.Name, job.Title)
	logger.MailLog(company.Email, subject, s.mailer.Send(company.Email, subject, body))
}

func (s *applicationServiceImpl) MyApplications(ctx context.Context, studentID primitive.ObjectID) ([]*dto.ApplicationResponse, error) {
	applications, err := s.applications.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	jobIDs := make([]primitive.ObjectID, 0, len(applications))
	for _, a := range applications {
		jobIDs = append(jobIDs, a.Job)
	}
	jobs, err := s.jobs.FindByIDs(ctx, jobIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	jobByID := make(map[primitive.ObjectID]*models.Job, len(jobs))
	for i := range jobs {
		jobByID[jobs[i].ID] = &jobs[i]
	}

	responses := make([]*dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		responses = append(responses, s.toResponse(&applications[i], jobByID[applications[i].Job], nil))
	}
	return responses, nil
}

// ListForJob возвращает отклики на вакансию. Компании видят только свои
// вакансии, админы - любые.
func (s *applicationServiceImpl) ListForJob(ctx context.Context, jobID string, companyID primitive.ObjectID, role models.UserRole) ([]*dto.ApplicationResponse, error) {
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
	if role != models.UserRoleAdmin && job.Company != companyID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	applications, err := s.applications.FindByJob(ctx, id)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	studentIDs := make([]primitive.ObjectID, 0, len(applications))
	for _, a := range applications {
		studentIDs = append(studentIDs, a.Student)
	}
	students, err := s.users.FindByIDs(ctx, studentIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	studentByID := make(map[primitive.ObjectID]*models.User, len(students))
	for i := range students {
		studentByID[students[i].ID] = &students[i]
	}

	responses := make([]*dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		responses = append(responses, s.toResponse(&applications[i], job, studentByID[applications[i].Student]))
	}
	return responses, nil
}

// ListForCompany возвращает отклики по всем вакансиям компании.
func (s *applicationServiceImpl) ListForCompany(ctx context.Context, companyID primitive.ObjectID) ([]*dto.ApplicationResponse, error) {
	jobIDs, err := s.jobs.FindIDsByCompany(ctx, companyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	applications, err := s.applications.FindByJobIDs(ctx, jobIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	jobs, err := s.jobs.FindByIDs(ctx, jobIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	jobByID := make(map[primitive.ObjectID]*models.Job, len(jobs))
	for i := range jobs {
		jobByID[jobs[i].ID] = &jobs[i]
	}

	studentIDs := make([]primitive.ObjectID, 0, len(applications))
	for _, a := range applications {
		studentIDs = append(studentIDs, a.Student)
	}
	students, err := s.users.FindByIDs(ctx, studentIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	studentByID := make(map[primitive.ObjectID]*models.User, len(students))
	for i := range students {
		studentByID[students[i].ID] = &students[i]
	}

	responses := make([]*dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		a := &applications[i]
		responses = append(responses, s.toResponse(a, jobByID[a.Job], studentByID[a.Student]))
	}
	return responses, nil
}

// UpdateStatus меняет статус отклика и уведомляет студента (in-app + email).
func (s *applicationServiceImpl) UpdateStatus(ctx context.Context, applicationID string, companyID primitive.ObjectID, role models.UserRole, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error) {
	id, err := primitive.ObjectIDFromHex(applicationID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "application", "Application not found")
	}

	application, err := s.applications.FindByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrNotFound(err, "application", "Application not found")
		}
		return nil, apperrors.InternalError(err)
	}

	job, err := s.jobs.FindByID(ctx, application.Job)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if role != models.UserRoleAdmin && job.Company != companyID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	status := models.ApplicationStatus(req.Status)
	if err := s.applications.UpdateStatus(ctx, id, status); err != nil {
		return nil, apperrors.InternalError(err)
	}
	application.Status = status

	student, err := s.users.FindByID(ctx, application.Student)
	if err == nil {
		if err := s.notifications.NotifyApplicationStatus(ctx, job, student, status); err != nil {
			logger.CtxWarn(ctx, "failed to notify student of status change",
				"application_id", applicationID, "error", err)
		}
	}

	logger.CtxInfo(ctx, "application status updated",
		"application_id", applicationID, "status", string(status))
	return s.toResponse(application, job, student), nil
}

func (s *applicationServiceImpl) toResponse(a *models.Application, job *models.Job, student *models.User) *dto.ApplicationResponse {
	resp := &dto.ApplicationResponse{
		ID:        a.ID.Hex(),
		Resume:    a.Resume,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
	}
	if job != nil {
		resp.Job = &dto.JobSummary{
			ID:          job.ID.Hex(),
			Title:       job.Title,
			CompanyName: job.CompanyName,
			Location:    job.Location,
		}
	}
	if student != nil {
		resp.Student = &dto.StudentSummary{
			ID:    student.ID.Hex(),
			Name:  student.Name,
			Email: student.Email,
			Phone: student.Phone,
		}
	}
	return resp
}
