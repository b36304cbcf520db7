package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskpulse/daily-tracker/internal/core/ports"
)

// ctxIdentity extracts the claims injected by the Auth middleware and
// performs a fast-fail check before any service call: email and role must be
// non-empty, since every scoping decision downstream keys off them.
func ctxIdentity(c echo.Context) (ports.Identity, error) {
	id := ports.Identity{}
	id.UserID, _ = c.Get("user_id").(uint)
	id.Name, _ = c.Get("name").(string)
	id.Email, _ = c.Get("email").(string)
	id.Cluster, _ = c.Get("cluster").(string)
	id.Role, _ = c.Get("role").(string)

	if id.Email == "" || id.Role == "" {
		return ports.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
