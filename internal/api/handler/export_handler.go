package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskpulse/daily-tracker/internal/core/ports"
)

// ExportHandler streams the caller's visible tasks as CSV, one row per entry
// with the parent task fields flattened in.
type ExportHandler struct {
	service ports.TaskService
}

func NewExportHandler(service ports.TaskService) *ExportHandler {
	return &ExportHandler{service: service}
}

var exportHeader = []string{
	"date", "name", "cluster", "resourceType",
	"incCr", "product", "taskType", "taskDescription",
	"plannerHour", "actualHour", "completed",
}

// Export handles GET /api/export-tasks.
func (h *ExportHandler) Export(c echo.Context) error {
	caller, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.List(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv")
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="tasks.csv"`)
	res.WriteHeader(http.StatusOK)

	w := csv.NewWriter(res)
	if err := w.Write(exportHeader); err != nil {
		return err
	}

	for _, task := range tasks {
		for _, e := range task.Entries {
			row := []string{
				task.Date.Format("2006-01-02"),
				task.Name,
				task.Cluster,
				task.ResourceType,
				e.IncCr,
				e.Product,
				e.TaskType,
				e.TaskDescription,
				formatHour(e.PlannerHour),
				formatHour(e.ActualHour),
				fmt.Sprintf("%t", e.Completed),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func formatHour(h float64) string {
	return fmt.Sprintf("%g", h)
}
