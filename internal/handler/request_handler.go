package handler

import (
	"errors"
	"net/http"

	"finflow/internal/middleware"
	"finflow/internal/model"
	"finflow/internal/service"
	"finflow/pkg/pagination"
	"finflow/pkg/response"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	requestService service.RequestService
}

func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

func (h *RequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	// The employee's own list lives outside /api/requests: a static "mine"
	// sibling of ":id" would conflict in the router tree.
	router.GET("/api/my-requests", middleware.RequireRole(string(model.RoleEmployee)), h.ListMyRequests)

	requests := router.Group("/api/requests")
	{
		requests.POST("/expenses", middleware.RequireRole(string(model.RoleEmployee)), h.SubmitExpense)
		requests.POST("/purchases", middleware.RequireRole(string(model.RoleEmployee)), h.SubmitPurchase)
		requests.POST("/payments", middleware.RequireRole(string(model.RoleEmployee)), h.SubmitPayment)

		requests.GET("", middleware.RequireRole(string(model.RoleManager), string(model.RoleFinance)), h.ListRequests)
		requests.GET("/:id", middleware.RequireRole(string(model.RoleEmployee), string(model.RoleManager), string(model.RoleFinance)), h.GetRequest)
	}
}

// SubmitExpense handles expense reimbursement submissions
// @Summary      Submit an expense reimbursement
// @Description  Creates an expense request; id, submitted date and initial status are assigned by the store
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.SubmitExpenseRequest  true  "Expense Draft"
// @Success      201      {object}  response.Response{data=service.RequestResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/requests/expenses [post]
func (h *RequestHandler) SubmitExpense(c *gin.Context) {
	var req service.SubmitExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	created, err := h.requestService.SubmitExpense(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, created))
}

// SubmitPurchase handles purchase order submissions
// @Summary      Submit a purchase order
// @Description  Creates a purchase request; the total amount is recomputed from the items server-side
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.SubmitPurchaseRequest  true  "Purchase Draft"
// @Success      201      {object}  response.Response{data=service.RequestResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/requests/purchases [post]
func (h *RequestHandler) SubmitPurchase(c *gin.Context) {
	var req service.SubmitPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	created, err := h.requestService.SubmitPurchase(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, created))
}

// SubmitPayment handles vendor payment submissions
// @Summary      Submit a vendor payment
// @Description  Creates a payment request for a supplier invoice
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.SubmitPaymentRequest  true  "Payment Draft"
// @Success      201      {object}  response.Response{data=service.RequestResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/requests/payments [post]
func (h *RequestHandler) SubmitPayment(c *gin.Context) {
	var req service.SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	created, err := h.requestService.SubmitPayment(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, created))
}

// ListRequests returns all requests, optionally filtered by status and type
// @Summary      List requests
// @Description  Lists requests newest first, optionally filtered by status label and request type
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Status label"
// @Param        type    query     string  false  "Request type (expense, purchase, payment)"
// @Param        page    query     int     false  "Page"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  response.ListResponse
// @Router       /api/requests [get]
func (h *RequestHandler) ListRequests(c *gin.Context) {
	params := pagination.Parse(c)
	filter := service.RequestFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Page:   params.Page,
		Limit:  params.Limit,
	}

	requests, total, err := h.requestService.ListRequests(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.List(http.StatusOK, requests, total, params.Page, params.Limit))
}

// ListMyRequests returns the authenticated employee's own requests
// @Summary      List my requests
// @Description  Lists the requests submitted by the authenticated employee
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.RequestResponse}
// @Router       /api/my-requests [get]
func (h *RequestHandler) ListMyRequests(c *gin.Context) {
	employeeID := c.GetString("userID")

	requests, err := h.requestService.ListByEmployee(c.Request.Context(), employeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
}

// GetRequest returns a single request by id
// @Summary      Get a request
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  response.Response{data=service.RequestResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/requests/{id} [get]
func (h *RequestHandler) GetRequest(c *gin.Context) {
	req, err := h.requestService.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, model.ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, req))
}
