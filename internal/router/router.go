package router // package router defines how HTTP routes are registered for the service

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/cinebook/seathub/internal/handler"    // handlers implementing the endpoints
    "github.com/cinebook/seathub/internal/middleware" // JWT and role middleware for the admin surface
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // Load balancers and monitoring probe /healthz to verify the service is up.
    e.GET("/healthz", handler.Health)
}

// RegisterRealtime registers the WebSocket endpoint.  No auth middleware is
// applied: identity on this path is optional and resolved inside the
// handler, because unauthenticated clients may observe seat state (their
// mutating operations degrade to no-ops in the coordinator).
func RegisterRealtime(e *echo.Echo, rt *handler.RealtimeHandler) {
    e.GET("/ws", rt.Connect)
}

// RegisterSeats registers the REST surface under /v1.  The hold snapshot is
// public; the status override requires an OWNER token.  The rate limiter is
// optional and passed in so the caller can disable it when Redis is down.
func RegisterSeats(e *echo.Echo, s *handler.SeatHandler, jwtSecret string, rateLimit echo.MiddlewareFunc) {
    g := e.Group("/v1")
    if rateLimit != nil {
        g.Use(rateLimit)
    }
    // Advisory snapshot of in-memory holds for a show.
    g.GET("/shows/:id/held-seats", s.HeldSeats)

    // Internal override used by back-office tools.  JWTAuth extracts the
    // role claim and RequireRole keeps customers out.
    admin := g.Group("", middleware.JWTAuth(jwtSecret), middleware.RequireRole("OWNER"))
    admin.POST("/shows/:id/seats/:seat_id/status", s.OverrideSeatStatus)
}
