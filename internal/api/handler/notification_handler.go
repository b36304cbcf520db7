package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskpulse/daily-tracker/internal/core/ports"
)

// NotificationHandler serves the dashboard notification feed.
type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List handles GET /api/notifications, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// MarkRead handles PUT /api/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}

	if err := h.service.MarkRead(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "notification read"})
}

// MarkAllRead handles PUT /api/notifications/read.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	if err := h.service.MarkAllRead(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "all notifications read"})
}
