package event

import (
	"errors"
	"net/http"
	"strconv"

	"eventhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts public listing routes, the subscription routes
// behind the optional attach middleware, and the mutations behind
// requireAuth.
func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup, attachUser, requireAuth gin.HandlerFunc) {
	g := v1.Group("/events")
	{
		g.GET("", h.List)
		g.GET("/calendar/:calendarId", h.ListByCalendar)
		g.GET("/user-events", h.ListByCreator)
		g.GET("/me", requireAuth, h.MyEvents)

		g.POST("/subscribe", attachUser, h.Subscribe)
		g.GET("/subscription-status", attachUser, h.SubscriptionStatus)
		g.POST("/check-subscription", h.CheckSubscription)

		g.POST("", requireAuth, h.Create)
		g.PUT("/:id", requireAuth, h.Update)
		g.DELETE("/:id", requireAuth, h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	events, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		zap.L().Error("list events failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list events")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"events": events})
}

func (h *Handler) ListByCalendar(c *gin.Context) {
	calendarID, err := strconv.ParseInt(c.Param("calendarId"), 10, 64)
	if err != nil || calendarID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "calendarId required")
		return
	}

	events, err := h.service.ListByCalendar(c.Request.Context(), calendarID)
	if err != nil {
		zap.L().Error("list events by calendar failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list events")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"events": events})
}

func (h *Handler) ListByCreator(c *gin.Context) {
	createdBy, err := strconv.ParseInt(c.Query("createdBy"), 10, 64)
	if err != nil || createdBy <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "createdBy parameter required or use /me endpoint")
		return
	}

	events, err := h.service.ListByCreator(c.Request.Context(), createdBy)
	if err != nil {
		zap.L().Error("list events by creator failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list events")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"events": events})
}

func (h *Handler) MyEvents(c *gin.Context) {
	userID := c.GetInt64("user_id")
	email := c.GetString("user_email")

	events, err := h.service.MyEvents(c.Request.Context(), userID, email)
	if err != nil {
		zap.L().Error("list my events failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list events")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"events": events})
}

func (h *Handler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Event ID required")
		return
	}

	userID := c.GetInt64("user_id")
	userEmail := c.GetString("user_email")

	err := h.service.Subscribe(c.Request.Context(), req.EventID, userID, userEmail, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Event not found")
		case errors.Is(err, ErrEmailRequired):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email required for subscription")
		case errors.Is(err, ErrAlreadySubscribed):
			response.Error(c, http.StatusBadRequest, "ALREADY_SUBSCRIBED", "You are already subscribed to this event")
		default:
			zap.L().Error("subscribe failed", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to subscribe")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Subscribed successfully!"})
}

func (h *Handler) SubscriptionStatus(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Query("eventId"), 10, 64)
	if err != nil || eventID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "eventId required")
		return
	}

	userID := c.GetInt64("user_id")
	email := c.Query("email")

	subscribed, err := h.service.IsSubscribed(c.Request.Context(), eventID, userID, email)
	if err != nil {
		zap.L().Error("subscription status failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to check subscription")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subscribed": subscribed})
}

func (h *Handler) CheckSubscription(c *gin.Context) {
	var req CheckSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "eventId and email required")
		return
	}

	subscribed, err := h.service.IsSubscribed(c.Request.Context(), req.EventID, 0, req.Email)
	if err != nil {
		zap.L().Error("check subscription failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to check subscription")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subscribed": subscribed})
}

func (h *Handler) Create(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Title, date, time, and location are required")
		return
	}

	ev, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		zap.L().Error("create event failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create event")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": "Event created successfully", "event": ev})
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

	ev, err := h.service.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.writeOwnershipError(c, err, "Failed to update event")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Event updated successfully", "event": ev})
}

func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetInt64("user_id")
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		h.writeOwnershipError(c, err, "Failed to delete event")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

func (h *Handler) writeOwnershipError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Event not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this event")
	default:
		zap.L().Error("event operation failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "SERVER_ERROR", fallback)
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid event ID")
		return 0, false
	}
	return id, true
}
