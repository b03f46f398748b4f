package handler

import (
	"context"

	"github.com/labstack/echo/v4"
)

type SettingsManager interface {
	CompanyName(ctx context.Context) (string, error)
	UpdateCompanyName(ctx context.Context, name string) error
}

type SettingsHandler struct {
	settings SettingsManager
}

func NewSettingsHandler(settings SettingsManager) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) GetCompanyName(c echo.Context) error {
	name, err := h.settings.CompanyName(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, name)
}

func (h *SettingsHandler) UpdateCompanyName(c echo.Context) error {
	if err := h.settings.UpdateCompanyName(c.Request().Context(), c.FormValue("company_name")); err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, nil)
}
