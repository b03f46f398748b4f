package handler

import (
	"context"

	"employee-list/internal/apperror"
	"employee-list/internal/model"
	"employee-list/pkg/jwtutil"
	"employee-list/pkg/logger"
	"employee-list/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AccountAuthenticator interface {
	Authenticate(ctx context.Context, username, password string) (model.User, error)
}

type AuthHandler struct {
	accounts AccountAuthenticator
	jwtUtil  *jwtutil.JWTUtil
}

func NewAuthHandler(accounts AccountAuthenticator, jwtUtil *jwtutil.JWTUtil) *AuthHandler {
	return &AuthHandler{accounts: accounts, jwtUtil: jwtUtil}
}

// Login exchanges username and password for a bearer token
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return respondError(c, apperror.Wrap(apperror.CodeValidation, "invalid request", err))
	}
	if req.Username == "" || req.Password == "" {
		prometheus.RecordAuthError("incomplete_login")
		return respondError(c, apperror.New(apperror.CodeValidation, "username and password are required"))
	}

	user, err := h.accounts.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		prometheus.RecordAuthError("invalid_credentials")
		return respondError(c, err)
	}

	token, err := h.jwtUtil.GenerateToken(user.Username, user.ID, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return respondError(c, err)
	}

	log.Info("User logged in", zap.String("username", user.Username), zap.String("role", user.Role))
	return respondSuccess(c, echo.Map{
		"token": token,
		"user": echo.Map{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}
