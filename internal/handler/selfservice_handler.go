package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"employee-list/internal/apperror"
	"employee-list/internal/service"
	"employee-list/internal/view"
	"employee-list/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SelfServicer interface {
	BlankForm(ctx context.Context, initID string) (service.FormData, error)
	Login(ctx context.Context, username, pin string) (service.FormData, error)
	Submit(ctx context.Context, input service.SubmitInput) (service.SubmitResult, error)
	ResetPin(ctx context.Context, username string) error
}

// SelfServiceHandler serves the public form. POSTs are dispatched on the fields present.
type SelfServiceHandler struct {
	self     SelfServicer
	settings SettingsManager
}

func NewSelfServiceHandler(self SelfServicer, settings SettingsManager) *SelfServiceHandler {
	return &SelfServiceHandler{self: self, settings: settings}
}

func (h *SelfServiceHandler) Show(c echo.Context) error {
	if initID := c.QueryParam("init_id"); initID != "" {
		form, err := h.self.BlankForm(c.Request().Context(), initID)
		if err == nil {
			return c.Render(http.StatusOK, view.FormPage, form)
		}
		if !apperror.Is(err, apperror.CodeUnauthorized) {
			return respondError(c, err)
		}
	}
	return h.renderLogin(c, view.LoginData{})
}

func (h *SelfServiceHandler) Post(c echo.Context) error {
	params, err := c.FormParams()
	if err != nil {
		return respondError(c, apperror.Wrap(apperror.CodeValidation, "invalid form", err))
	}

	switch {
	case params.Has("employee_id"):
		return h.submit(c, params)
	case params.Has("pin"):
		return h.login(c)
	case params.Has("username"):
		return h.reset(c)
	default:
		return h.renderLogin(c, view.LoginData{})
	}
}

func (h *SelfServiceHandler) login(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	form, err := h.self.Login(c.Request().Context(), username, c.FormValue("pin"))
	switch {
	case err == nil:
		return c.Render(http.StatusOK, view.FormPage, form)
	case apperror.Is(err, apperror.CodeUnauthorized):
		return h.renderLogin(c, view.LoginData{Invalid: true, Username: username})
	default:
		return respondError(c, err)
	}
}

func (h *SelfServiceHandler) submit(c echo.Context, params url.Values) error {
	id, err := service.ParseID(params.Get("employee_id"))
	if err != nil {
		return respondError(c, err)
	}

	input := service.SubmitInput{
		Employee: service.EmployeeInput{
			ID:            id,
			FirstName:     c.FormValue("first_name"),
			LastName:      c.FormValue("last_name"),
			RoomNumber:    c.FormValue("room_number"),
			PhoneNumber:   c.FormValue("phone_number"),
			EmailAddress:  c.FormValue("email_address"),
			Gender:        c.FormValue("gender"),
			Information:   c.FormValue("information"),
			DepartmentIDs: service.ParseSpacedIDList(strings.Join(params["departments"], " ")),
			OccupationIDs: service.ParseSpacedIDList(strings.Join(params["occupations"], " ")),
		},
		Pin:             c.FormValue("pin"),
		InitID:          c.FormValue("init_id"),
		AccountUsername: strings.TrimSpace(c.FormValue("wp_username")),
		AccountPassword: c.FormValue("wp_password"),
	}
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return respondError(c, apperror.Wrap(apperror.CodeValidation, "invalid multipart form", err))
		}
		input.Photos = form.File[photoField]
	}

	result, err := h.self.Submit(c.Request().Context(), input)
	if err != nil {
		if result.EmployeeID > 0 {
			logger.FromContext(c).Warn("Employee saved but follow-up failed",
				zap.Uint("employee_id", result.EmployeeID), zap.Error(err))
		}
		return respondError(c, err)
	}
	return respondSuccess(c, result)
}

func (h *SelfServiceHandler) reset(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	if username == "" {
		return respondError(c, apperror.New(apperror.CodeValidation, "username is required"))
	}
	if err := h.self.ResetPin(c.Request().Context(), username); err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, messageData("a new PIN has been sent"))
}

func (h *SelfServiceHandler) renderLogin(c echo.Context, data view.LoginData) error {
	name, err := h.settings.CompanyName(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	data.CompanyName = name
	return c.Render(http.StatusOK, view.LoginPage, data)
}
