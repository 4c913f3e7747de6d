package handler

import (
	"net/http"

	"finflow/internal/middleware"
	"finflow/internal/model"
	"finflow/internal/service"
	"finflow/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	readers := middleware.RequireRole(string(model.RoleManager), string(model.RoleFinance))

	dashboard := router.Group("/api/dashboard")
	{
		dashboard.GET("/manager", middleware.RequireRole(string(model.RoleManager)), h.ManagerSummary)
		dashboard.GET("/finance", middleware.RequireRole(string(model.RoleFinance)), h.FinanceSummary)
		dashboard.GET("/status-summary", readers, h.StatusSummary)
		dashboard.GET("/category-spend", readers, h.CategorySpend)
	}
}

// ManagerSummary returns pending/approved/rejected counts across all types
// @Summary      Manager dashboard summary
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.ManagerSummaryResponse}
// @Router       /api/dashboard/manager [get]
func (h *DashboardHandler) ManagerSummary(c *gin.Context) {
	summary := h.dashboardService.ManagerSummary(c.Request.Context())
	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// FinanceSummary returns pending counts and money totals for the finance desk
// @Summary      Finance dashboard summary
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.FinanceSummaryResponse}
// @Router       /api/dashboard/finance [get]
func (h *DashboardHandler) FinanceSummary(c *gin.Context) {
	summary := h.dashboardService.FinanceSummary(c.Request.Context())
	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// StatusSummary returns the request count histogram grouped by status label.
// Statuses sharing a label across request types merge into one bucket.
// @Summary      Status histogram
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.StatusBucket}
// @Router       /api/dashboard/status-summary [get]
func (h *DashboardHandler) StatusSummary(c *gin.Context) {
	buckets := h.dashboardService.StatusSummary(c.Request.Context())
	c.JSON(http.StatusOK, response.Success(http.StatusOK, buckets))
}

// CategorySpend returns per-category expense spend for approved or
// finance-pending reimbursements
// @Summary      Category spend breakdown
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.CategorySpendEntry}
// @Router       /api/dashboard/category-spend [get]
func (h *DashboardHandler) CategorySpend(c *gin.Context) {
	entries := h.dashboardService.CategorySpend(c.Request.Context())
	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}
