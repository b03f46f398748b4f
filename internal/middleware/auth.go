package middleware

import (
	"net/http"
	"strings"

	"employee-list/internal/model"
	"employee-list/pkg/jwtutil"
	"employee-list/pkg/logger"
	"employee-list/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const ClaimsKey = "user"

// AdminAuth validates the bearer token and requires the administrator role
func AdminAuth(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				prometheus.RecordAuthError("missing_token")
				return unauthorized(c, http.StatusUnauthorized, "missing authorization token")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				log.Warn("Invalid Authorization header format")
				prometheus.RecordAuthError("invalid_auth_format")
				return unauthorized(c, http.StatusUnauthorized, "invalid authorization format, expected Bearer token")
			}

			claims, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return unauthorized(c, http.StatusUnauthorized, "invalid or expired token")
			}

			if claims.Role != model.RoleAdministrator {
				log.Warn("Account lacks the administrator role",
					zap.String("username", claims.Username),
					zap.String("role", claims.Role))
				prometheus.RecordAuthError("forbidden")
				return unauthorized(c, http.StatusForbidden, "administrator role required")
			}

			c.Set(ClaimsKey, claims)
			log.Debug("Admin token validated",
				zap.Uint("user_id", claims.UserID),
				zap.String("username", claims.Username))

			return next(c)
		}
	}
}

func unauthorized(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{
		"success": false,
		"data":    echo.Map{"message": message},
	})
}
