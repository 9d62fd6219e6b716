package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/finsight/revenue-analytics/internal/core/domain"
)

// identity is the authenticated caller as injected by the Auth middleware.
type identity struct {
	UserID   int64
	Username string
	Role     string
	// OrgID is the investee's own organization; 0 for investors.
	OrgID int64
}

// ctxIdentity extracts the auth claims and performs a fast-fail check before
// any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - the investee role requires an org_id; without it the JWT is
//     structurally valid but operationally unusable, so reject with 401.
func ctxIdentity(c echo.Context) (identity, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	id := identity{Role: role}
	id.UserID, _ = c.Get("user_id").(int64)
	id.Username, _ = c.Get("username").(string)
	id.OrgID, _ = c.Get("org_id").(int64)

	if role == domain.RoleInvestee && id.OrgID == 0 {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing organization identity")
	}

	return id, nil
}

// pathOrgID parses the :id path parameter.
func pathOrgID(c echo.Context) (int64, error) {
	orgID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orgID <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid company id")
	}
	return orgID, nil
}
