package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// sessionHeader carries the opaque session id issued at login.
const sessionHeader = "X-Session-Id"

// sessionMiddleware resolves the session id header against the active
// session table. There are no credentials beyond the id itself; the
// user directory is fixed and login is a display-name lookup.
func (s *Server) sessionMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := c.Request().Header.Get(sessionHeader)
			if sessionID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing session id header")
			}

			info, err := s.sessions.Resolve(sessionID)
			if err != nil {
				s.logger.Warn("Unknown session", "session_id", sessionID, "ip", c.RealIP())
				return echo.NewHTTPError(http.StatusUnauthorized, "Unknown or expired session")
			}

			// Set session information in context
			c.Set("session_id", info.ID)
			c.Set("user", info.User.ID)

			return next(c)
		}
	}
}
