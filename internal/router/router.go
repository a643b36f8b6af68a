package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/ateliermartel/garage-api/internal/handler"
	"github.com/ateliermartel/garage-api/internal/middleware"
	"github.com/ateliermartel/garage-api/internal/model"
)

// RegisterRoutes registers the routes that carry no business logic.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session endpoints.  /login is open; /refresh
// and /logout rely on the identity gate that main() installs globally — the
// handlers answer 401 themselves when the request resolved as anonymous.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	e.POST("/login", a.Login)
	e.GET("/refresh", a.Refresh)
	e.GET("/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated site endpoints.  The read
// endpoints sit behind the response cache; the write endpoints sit behind
// the per-IP rate limiter.  Either middleware may be a no-op when Redis is
// unavailable.
func RegisterPublic(e *echo.Echo,
	s *handler.ServiceHandler,
	o *handler.OpeningHandler,
	cm *handler.CommentHandler,
	of *handler.OfferHandler,
	ct *handler.ContactHandler,
	cache echo.MiddlewareFunc,
	limit echo.MiddlewareFunc,
) {
	e.GET("/services", s.List, cache)
	e.GET("/openings", o.List, cache)
	e.GET("/approved_comments", cm.ListApproved, cache)
	e.GET("/offers/filters_limits", of.FiltersLimits, cache)

	// The listing is a POST because the filter map rides in the body.  It is
	// deliberately NOT cached: staff and visitors get different result sets
	// from the same route.
	e.POST("/offers/:page", of.Search)
	e.GET("/image/:id/:file", of.Image)

	e.POST("/add_comment", cm.Add, limit)
	e.POST("/contact", ct.Send, limit)
}

// RegisterAdmin registers the admin-only management endpoints.
func RegisterAdmin(e *echo.Echo,
	u *handler.UserHandler,
	s *handler.ServiceHandler,
	o *handler.OpeningHandler,
) {
	g := e.Group("", middleware.RequireRole(model.RoleAdmin))

	// ---- Users ----
	g.GET("/users", u.List)
	g.POST("/add_user", u.Add)
	g.POST("/update_user/:id", u.Update)
	g.DELETE("/delete_user/:id", u.Delete)
	g.POST("/activate_user/:id", u.Activate)
	g.POST("/change_user_password/:id", u.ChangePassword)
	g.POST("/reset_user_password/:id", u.ResetPassword)

	// ---- Services ----
	g.POST("/add_service", s.Add)
	g.POST("/update_service/:id", s.Update)
	g.DELETE("/delete_service/:id", s.Delete)

	// ---- Opening hours ----
	g.POST("/add_period", o.Add)
	g.POST("/update_period/:id", o.Update)
	g.DELETE("/delete_period/:id", o.Delete)
}

// RegisterStaff registers the endpoints shared by admins and workers:
// comment moderation and offer management.
func RegisterStaff(e *echo.Echo,
	cm *handler.CommentHandler,
	of *handler.OfferHandler,
) {
	g := e.Group("", middleware.RequireRole(model.RoleAdmin, model.RoleWorker))

	// ---- Comments ----
	g.GET("/comments", cm.ListAll)
	g.POST("/approve_comment/:id", cm.Approve)
	g.DELETE("/delete_comment/:id", cm.Delete)

	// ---- Offers ----
	g.POST("/add_offer", of.Add)
	g.POST("/update_offer/:id", of.Update)
	g.DELETE("/delete_offer/:id", of.Delete)
	g.POST("/add_offer_image/:id", of.UploadImage)
	g.DELETE("/delete_offer_image/:id/:file", of.DeleteImage)
}
