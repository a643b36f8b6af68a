package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// RequireRole returns a middleware that enforces that the request carries a
// resolved identity holding one of the given roles.  Anonymous requests and
// insufficient roles both answer 403: on a public site the distinction
// carries no information worth leaking.  It assumes the Identity gate ran
// earlier in the chain.
func RequireRole(roles ...string) echo.MiddlewareFunc {
    allowed := make(map[string]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            u := CurrentUser(c)
            if u == nil || !allowed[u.Role] {
                return c.JSON(http.StatusForbidden, echo.Map{
                    "success": false,
                    "message": "Accès refusé.",
                })
            }
            return next(c)
        }
    }
}
