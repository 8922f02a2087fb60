package handlers

import (
	"net/http"

	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	students := r.Group("/applications")
	students.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleStudent))
	{
		students.POST("", h.Apply)
		students.GET("/my", h.GetMyApplications)
	}

	companies := r.Group("/applications")
	companies.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleCompany, models.UserRoleAdmin))
	{
		companies.GET("/job/:jobId", h.GetApplicationsForJob)
		companies.GET("/company", h.GetCompanyApplications)
		companies.PATCH("/:applicationId/status", h.UpdateApplicationStatus)
	}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	studentID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	application, err := h.applicationService.Apply(c.Request.Context(), studentID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, application)
}

func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	studentID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.MyApplications(c.Request.Context(), studentID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": applications, "total": len(applications)})
}

func (h *ApplicationHandler) GetApplicationsForJob(c *gin.Context) {
	requesterID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.ListForJob(c.Request.Context(), c.Param("jobId"), requesterID, h.RequesterRole(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": applications, "total": len(applications)})
}

func (h *ApplicationHandler) GetCompanyApplications(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.ListForCompany(c.Request.Context(), companyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": applications, "total": len(applications)})
}

func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	requesterID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	application, err := h.applicationService.UpdateStatus(c.Request.Context(), c.Param("applicationId"), requesterID, h.RequesterRole(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}
