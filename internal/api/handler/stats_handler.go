package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskpulse/daily-tracker/internal/core/ports"
)

// StatsHandler serves the read-only dashboard rollups.
type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Weekly handles GET /api/stats/weekly?start&end&taskTypes&sortBy.
func (h *StatsHandler) Weekly(c echo.Context) error {
	q, err := parseStatsQuery(c)
	if err != nil {
		return err
	}

	rows, err := h.service.Weekly(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

// Monthly handles GET /api/stats/monthly. The range is always the current
// calendar month; only taskTypes and sortBy are honored.
func (h *StatsHandler) Monthly(c echo.Context) error {
	q, err := parseStatsQuery(c)
	if err != nil {
		return err
	}

	rows, err := h.service.Monthly(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

// Clusters handles GET /api/stats/clusters.
func (h *StatsHandler) Clusters(c echo.Context) error {
	rows, err := h.service.Clusters(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

// TasksByCluster handles GET /api/stats/tasks?cluster=X.
func (h *StatsHandler) TasksByCluster(c echo.Context) error {
	cluster := c.QueryParam("cluster")
	if cluster == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "cluster is required")
	}

	rows, err := h.service.TasksByCluster(c.Request().Context(), cluster)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

func parseStatsQuery(c echo.Context) (ports.StatsQuery, error) {
	q := ports.StatsQuery{SortBy: c.QueryParam("sortBy")}

	switch q.SortBy {
	case "", ports.SortByName, ports.SortByPlanner, ports.SortByActual:
	default:
		return q, echo.NewHTTPError(http.StatusBadRequest, "sortBy must be one of: name, planner, actual")
	}

	if raw := c.QueryParam("start"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return q, echo.NewHTTPError(http.StatusBadRequest, "start must be YYYY-MM-DD")
		}
		q.Start = t
	}
	if raw := c.QueryParam("end"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return q, echo.NewHTTPError(http.StatusBadRequest, "end must be YYYY-MM-DD")
		}
		q.End = t
	}

	if raw := c.QueryParam("taskTypes"); raw != "" {
		for _, tt := range strings.Split(raw, ",") {
			if tt = strings.TrimSpace(tt); tt != "" {
				q.TaskTypes = append(q.TaskTypes, tt)
			}
		}
	}

	return q, nil
}
