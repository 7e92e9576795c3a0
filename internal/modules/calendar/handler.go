package calendar

import (
	"errors"
	"net/http"
	"strconv"

	"eventhub/internal/pkg/response"
	"eventhub/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	g := v1.Group("/calendars")
	{
		g.GET("", h.List)
		g.GET("/:id", h.Get)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/calendars")
	{
		g.GET("/user/list", h.ListMine)
		g.POST("", h.Create)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	calendars, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		zap.L().Error("list calendars failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list calendars")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"calendars": calendars})
}

func (h *Handler) ListMine(c *gin.Context) {
	userID := c.GetInt64("user_id")

	calendars, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		zap.L().Error("list own calendars failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list calendars")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"calendars": calendars})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	cal, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Calendar not found")
			return
		}
		zap.L().Error("get calendar failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get calendar")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"calendar": cal})
}

func (h *Handler) Create(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name is required")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid calendar fields", errs)
		return
	}

	cal, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		zap.L().Error("create calendar failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create calendar")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": "Calendar created", "calendar": cal})
}

func (h *Handler) Update(c *gin.Context) {
	userID := c.GetInt64("user_id")
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid calendar fields", errs)
		return
	}

	cal, err := h.service.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.writeOwnershipError(c, err, "Failed to update calendar")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Calendar updated", "calendar": cal})
}

func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetInt64("user_id")
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		h.writeOwnershipError(c, err, "Failed to delete calendar")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Calendar deleted"})
}

func (h *Handler) writeOwnershipError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Calendar not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this calendar")
	default:
		zap.L().Error("calendar operation failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "SERVER_ERROR", fallback)
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid calendar ID")
		return 0, false
	}
	return id, true
}
