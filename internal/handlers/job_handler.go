package handlers

import (
	"net/http"

	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"

	"github.com/gin-gonic/gin"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
	}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Доска вакансий публичная
	public := r.Group("/jobs")
	{
		public.GET("", h.ListJobs)
		public.GET("/:jobId", h.GetJob)
	}

	jobs := r.Group("/jobs")
	jobs.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleCompany, models.UserRoleAdmin))
	{
		jobs.POST("", h.CreateJob)
		jobs.GET("/my", h.GetMyJobs)
		jobs.DELETE("/:jobId", h.DeleteJob)
	}
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	if companyIDStr := c.Query("companyId"); companyIDStr != "" {
		companyID, err := primitive.ObjectIDFromHex(companyIDStr)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		jobs, err := h.jobService.ListByCompany(c.Request.Context(), companyID)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"jobs": jobs, "total": len(jobs)})
		return
	}

	jobs, err := h.jobService.List(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "total": len(jobs)})
}

func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobService.GetByID(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.Create(c.Request.Context(), companyID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) GetMyJobs(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListByCompany(c.Request.Context(), companyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "total": len(jobs)})
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	actorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.Delete(c.Request.Context(), c.Param("jobId"), actorID, h.RequesterRole(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}
