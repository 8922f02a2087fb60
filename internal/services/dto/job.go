package dto

import "time"

type CreateJobRequest struct {
	Title       string     `json:"title" validate:"required,min=1"`
	Location    string     `json:"location" validate:"required,min=1"`
	Description string     `json:"description" validate:"required,min=1"`
	Salary      string     `json:"salary,omitempty"`
	JobType     string     `json:"jobType,omitempty" validate:"omitempty,oneof=Full-time Internship Contract"`
	Skills      []string   `json:"skills,omitempty"`
	Experience  string     `json:"experience,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	MaxApplicants int      `json:"maxApplicants,omitempty" validate:"omitempty,min=1"`
}
