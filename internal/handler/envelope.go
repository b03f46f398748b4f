package handler

import (
	"net/http"

	"employee-list/internal/apperror"
	"employee-list/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// respondSuccess writes {"success": true, "data": data}
func respondSuccess(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    data,
	})
}

// respondError writes {"success": false, "data": {"message": ...}} with the status matching
// the error code. Internal details are logged, never returned.
func respondError(c echo.Context, err error) error {
	log := logger.FromContext(c)
	status := apperror.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", zap.Error(err))
	} else {
		log.Warn("Request rejected",
			zap.String("code", string(apperror.GetCode(err))),
			zap.Error(err))
	}

	return c.JSON(status, echo.Map{
		"success": false,
		"data":    echo.Map{"message": apperror.Message(err)},
	})
}

func messageData(message string) echo.Map {
	return echo.Map{"message": message}
}
