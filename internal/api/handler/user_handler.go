package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskpulse/daily-tracker/internal/core/ports"
)

// UserHandler covers the user-administration panel.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type addUserRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Cluster     string `json:"cluster" validate:"required"`
	ClusterLead string `json:"clusterLead" validate:"required"`
	Role        string `json:"role" validate:"required"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type updateClusterLeadRequest struct {
	ClusterLead string `json:"clusterLead" validate:"required"`
}

type toggleResponse struct {
	Email     string `json:"email"`
	IsDeleted bool   `json:"IsDeleted"`
}

// List handles GET /api/users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Add handles POST /api/add-user. Unlike self-registration the role is
// settable.
func (h *UserHandler) Add(c echo.Context) error {
	var req addUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.AddUser(c.Request().Context(), ports.AddUserInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Cluster:     req.Cluster,
		ClusterLead: req.ClusterLead,
		Role:        req.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

// UpdateRole handles PUT /api/users/:id/role.
func (h *UserHandler) UpdateRole(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateRole(c.Request().Context(), id, req.Role); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "role updated"})
}

// UpdateClusterLead handles PUT /api/users/:id/clusterLead.
func (h *UserHandler) UpdateClusterLead(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updateClusterLeadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateClusterLead(c.Request().Context(), id, req.ClusterLead); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "cluster lead updated"})
}

// ToggleActive handles PUT /api/users/:email/toggle.
func (h *UserHandler) ToggleActive(c echo.Context) error {
	email := c.Param("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	deactivated, err := h.service.ToggleActive(c.Request().Context(), email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toggleResponse{Email: email, IsDeleted: deactivated})
}
