package handler

import (
	"context"
	"fmt"

	"employee-list/internal/model"

	"github.com/labstack/echo/v4"
)

type PinSender interface {
	SendToEmail(ctx context.Context, email string) (model.Employee, error)
	SendTestMail(ctx context.Context, address string) error
}

// PinHandler serves the admin mail actions
type PinHandler struct {
	pins PinSender
}

func NewPinHandler(pins PinSender) *PinHandler {
	return &PinHandler{pins: pins}
}

// SendPinToEmail issues a new PIN for the employee owning the address. The PIN itself
// only travels by mail.
func (h *PinHandler) SendPinToEmail(c echo.Context) error {
	email := c.FormValue("email")
	employee, err := h.pins.SendToEmail(c.Request().Context(), email)
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, echo.Map{
		"message":       fmt.Sprintf("PIN sent to %s", employee.EmailAddress),
		"employee_name": employee.FullName(),
	})
}

func (h *PinHandler) TestEmail(c echo.Context) error {
	if err := h.pins.SendTestMail(c.Request().Context(), c.FormValue("email")); err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, messageData("test email sent"))
}
