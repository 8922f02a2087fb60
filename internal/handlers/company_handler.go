package handlers

import (
	"net/http"

	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	*BaseHandler
	companyService services.CompanyService
}

func NewCompanyHandler(base *BaseHandler, companyService services.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler:    base,
		companyService: companyService,
	}
}

func (h *CompanyHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/companies")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("", h.ListCompanies)
		admin.PATCH("/:companyId/approve", h.ApproveCompany)
	}

	companies := r.Group("/companies")
	companies.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleCompany))
	{
		companies.GET("/stats", h.GetCompanyStats)
	}
}

func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	companies, err := h.companyService.List(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies, "total": len(companies)})
}

func (h *CompanyHandler) ApproveCompany(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.companyService.Approve(c.Request.Context(), c.Param("companyId"), adminID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Company approved successfully"})
}

func (h *CompanyHandler) GetCompanyStats(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	stats, err := h.companyService.Stats(c.Request.Context(), companyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
