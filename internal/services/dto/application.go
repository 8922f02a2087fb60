package dto

import (
	"time"

	"jobportal_backend/internal/models"
)

type ApplyRequest struct {
	JobID string `json:"jobId" validate:"required"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,application-status"`
}

// Краткие карточки для "populate"-представлений
type JobSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	CompanyName string `json:"companyName"`
	Location    string `json:"location"`
}

type StudentSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type ApplicationResponse struct {
	ID        string                   `json:"id"`
	Job       *JobSummary              `json:"job,omitempty"`
	Student   *StudentSummary          `json:"student,omitempty"`
	Resume    string                   `json:"resume"`
	Status    models.ApplicationStatus `json:"status"`
	CreatedAt time.Time                `json:"createdAt"`
}
