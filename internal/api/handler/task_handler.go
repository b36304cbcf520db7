package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskpulse/daily-tracker/internal/api/metrics"
	"github.com/taskpulse/daily-tracker/internal/core/ports"
)

// TaskHandler handles HTTP requests for daily task submissions.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type entryRequest struct {
	IncCr           string  `json:"incCr" validate:"required"`
	Product         string  `json:"product" validate:"required"`
	TaskType        string  `json:"taskType" validate:"required"`
	TaskDescription string  `json:"taskDescription" validate:"required"`
	PlannerHour     float64 `json:"plannerHour" validate:"gte=0"`
}

type createTaskRequest struct {
	Date         string         `json:"date" validate:"required"`
	ResourceType string         `json:"resourceType" validate:"required,oneof=Delivery Training"`
	Entries      []entryRequest `json:"tasks" validate:"required,min=1,dive"`
}

type createTaskResponse struct {
	ID uint `json:"id"`
}

type updateEntryRequest struct {
	ActualHour *float64 `json:"actualHour" validate:"required"`
	Completed  *bool    `json:"completed"`
}

// Create handles POST /api/tasks. Owner identity comes from the token, never
// from the payload.
func (h *TaskHandler) Create(c echo.Context) error {
	caller, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	entries := make([]ports.EntryInput, 0, len(req.Entries))
	for _, e := range req.Entries {
		entries = append(entries, ports.EntryInput{
			IncCr:           e.IncCr,
			Product:         e.Product,
			TaskType:        e.TaskType,
			TaskDescription: e.TaskDescription,
			PlannerHour:     e.PlannerHour,
		})
	}

	id, err := h.service.Create(c.Request().Context(), caller, ports.CreateTaskInput{
		Date:         date,
		ResourceType: req.ResourceType,
		Entries:      entries,
	})
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.WithLabelValues(req.ResourceType).Inc()
	return c.JSON(http.StatusCreated, createTaskResponse{ID: id})
}

// List handles GET /api/tasks with role scoping applied by the service.
func (h *TaskHandler) List(c echo.Context) error {
	caller, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.List(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tasks)
}

// Get handles GET /api/tasks/:id.
func (h *TaskHandler) Get(c echo.Context) error {
	caller, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	task, err := h.service.Get(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

// UpdateEntry handles PUT /api/entries/:id (and the legacy PUT /api/tasks/:id
// mount, where :id is still an entry id).
func (h *TaskHandler) UpdateEntry(c echo.Context) error {
	caller, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updateEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateEntry(c.Request().Context(), caller, id, ports.UpdateEntryInput{
		ActualHour: req.ActualHour,
		Completed:  req.Completed,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "entry updated"})
}

func parseID(c echo.Context, param string) (uint, error) {
	raw := c.Param(param)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, param+" must be a positive integer")
	}
	return uint(id), nil
}
