package middleware // middleware provides shared request processing for handlers

// identity.go implements the request authentication gate.  Every route runs
// through it: the Authorization header is decoded and, when the signed token
// verifies, the (uid, opaque token) pair is re-resolved against the users
// table.  The resolved user (or nothing) is attached to the request context.
// A missing or tampered token is NOT an error — the request simply proceeds
// as anonymous.  Only a signature-valid-but-expired token is answered
// directly, with 410, so the frontend can tell "session expired" apart from
// "never logged in".

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/ateliermartel/garage-api/internal/model"
    "github.com/ateliermartel/garage-api/internal/repository"
    "github.com/ateliermartel/garage-api/internal/utils"
)

// userKey is the context key under which the resolved identity is stored.
const userKey = "identity"

// Identity returns the authentication gate middleware.
func Identity(secret string, users *repository.UserRepo) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if len(auth) < 7 || !strings.EqualFold(auth[:7], "Bearer ") {
                return next(c) // anonymous
            }
            raw := strings.TrimSpace(auth[7:])

            claims, err := utils.VerifyBearerToken(secret, raw)
            if err != nil {
                if err == utils.ErrTokenExpired {
                    return c.JSON(http.StatusGone, echo.Map{
                        "success": false,
                        "message": "Session expirée.",
                    })
                }
                return next(c) // invalid token -> anonymous
            }

            ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
            defer cancel()

            u, err := users.GetBySession(ctx, claims.UID, claims.Opaque)
            if err != nil {
                // token rotated or cleared since issuance: proceed anonymous
                return next(c)
            }
            c.Set(userKey, &u)
            return next(c)
        }
    }
}

// CurrentUser returns the identity resolved by the gate, or nil for an
// anonymous request.
func CurrentUser(c echo.Context) *model.User {
    if v := c.Get(userKey); v != nil {
        if u, ok := v.(*model.User); ok {
            return u
        }
    }
    return nil
}
