package handler

import (
	"errors"
	"net/http"

	"finflow/internal/middleware"
	"finflow/internal/model"
	"finflow/internal/service"
	"finflow/pkg/response"

	"github.com/gin-gonic/gin"
)

type ApprovalHandler struct {
	approvalService service.ApprovalService
	requestService  service.RequestService
}

func NewApprovalHandler(approvalService service.ApprovalService, requestService service.RequestService) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService, requestService: requestService}
}

func (h *ApprovalHandler) RegisterRoutes(router *gin.RouterGroup) {
	deciders := middleware.RequireRole(string(model.RoleManager), string(model.RoleFinance))

	requests := router.Group("/api/requests")
	{
		requests.PUT("/:id/approve", deciders, h.ApproveRequest)
		requests.PUT("/:id/reject", deciders, h.RejectRequest)
	}

	admin := router.Group("/api/admin")
	{
		admin.POST("/reset", deciders, h.ResetStore)
	}
}

// ApproveRequest applies the acting role's approval to a pending request
// @Summary      Approve a request
// @Description  Managers route by amount (small amounts approve outright, large ones go to finance, payments always go to finance); finance approval is final
// @Tags         approvals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  response.Response{data=service.RequestResponse}
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/requests/{id}/approve [put]
func (h *ApprovalHandler) ApproveRequest(c *gin.Context) {
	role := model.Role(c.GetString("userRole"))

	result, err := h.approvalService.Approve(c.Request.Context(), c.Param("id"), role)
	if err != nil {
		c.JSON(decisionErrorStatus(err), response.Error(decisionErrorStatus(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// RejectRequest rejects a pending request with a mandatory reason
// @Summary      Reject a request
// @Description  Rejects a request pending for the acting role; the reason is required and is stored on the request
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true  "Request id"
// @Param        payload  body      service.RejectRequestDTO  true  "Rejection Reason"
// @Success      200      {object}  response.Response{data=service.RequestResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/requests/{id}/reject [put]
func (h *ApprovalHandler) RejectRequest(c *gin.Context) {
	role := model.Role(c.GetString("userRole"))

	var req service.RejectRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, model.ErrEmptyRejectionReason.Error()))
		return
	}

	result, err := h.approvalService.Reject(c.Request.Context(), c.Param("id"), role, req.Reason)
	if err != nil {
		c.JSON(decisionErrorStatus(err), response.Error(decisionErrorStatus(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// ResetStore restores the request store to the seed snapshot
// @Summary      Reset the store
// @Description  Discards every submission and decision made this session and restores the seed data
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /api/admin/reset [post]
func (h *ApprovalHandler) ResetStore(c *gin.Context) {
	h.requestService.Reset(c.Request.Context())
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"reset": true}))
}

// decisionErrorStatus maps the workflow error taxonomy onto HTTP codes.
func decisionErrorStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrRequestNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, model.ErrEmptyRejectionReason):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
