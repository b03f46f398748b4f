package handler

import (
	"context"

	"employee-list/internal/model"
	"employee-list/internal/service"

	"github.com/labstack/echo/v4"
)

type CatalogManager interface {
	ListDepartments(ctx context.Context) ([]model.Department, error)
	GetDepartment(ctx context.Context, id uint) (model.Department, error)
	SaveDepartment(ctx context.Context, input service.DepartmentInput) (model.Department, error)
	DeleteDepartment(ctx context.Context, id uint) error
	ListOccupations(ctx context.Context) ([]model.Occupation, error)
	GetOccupation(ctx context.Context, id uint) (model.Occupation, error)
	SaveOccupation(ctx context.Context, input service.OccupationInput) (model.Occupation, error)
	DeleteOccupation(ctx context.Context, id uint) error
}

// CatalogHandler serves the department and occupation actions
type CatalogHandler struct {
	catalog CatalogManager
}

func NewCatalogHandler(catalog CatalogManager) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) DepartmentData(c echo.Context) error {
	departments, err := h.catalog.ListDepartments(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, departments)
}

func (h *CatalogHandler) DepartmentSingleDataset(c echo.Context) error {
	id, err := service.ParseID(c.FormValue("department_id"))
	if err != nil {
		return respondError(c, err)
	}
	department, err := h.catalog.GetDepartment(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, department)
}

func (h *CatalogHandler) DeleteDepartment(c echo.Context) error {
	id, err := service.ParseID(c.FormValue("department_id"))
	if err != nil {
		return respondError(c, err)
	}
	if err := h.catalog.DeleteDepartment(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, id)
}

func (h *CatalogHandler) PersistDepartment(c echo.Context) error {
	id, err := service.ParseID(c.FormValue("department_id"))
	if err != nil {
		return respondError(c, err)
	}
	department, err := h.catalog.SaveDepartment(c.Request().Context(), service.DepartmentInput{
		ID:   id,
		Name: c.FormValue("department_name"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, department)
}

func (h *CatalogHandler) OccupationData(c echo.Context) error {
	occupations, err := h.catalog.ListOccupations(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, occupations)
}

func (h *CatalogHandler) OccupationSingleDataset(c echo.Context) error {
	id, err := service.ParseID(c.FormValue("occupation_id"))
	if err != nil {
		return respondError(c, err)
	}
	occupation, err := h.catalog.GetOccupation(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, occupation)
}

func (h *CatalogHandler) DeleteOccupation(c echo.Context) error {
	id, err := service.ParseID(c.FormValue("occupation_id"))
	if err != nil {
		return respondError(c, err)
	}
	if err := h.catalog.DeleteOccupation(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, id)
}

func (h *CatalogHandler) PersistOccupation(c echo.Context) error {
	id, err := service.ParseID(c.FormValue("occupation_id"))
	if err != nil {
		return respondError(c, err)
	}
	occupation, err := h.catalog.SaveOccupation(c.Request().Context(), service.OccupationInput{
		ID:          id,
		Name:        c.FormValue("occupation"),
		MaleForm:    c.FormValue("occupation_male_form"),
		FemaleForm:  c.FormValue("occupation_female_form"),
		DiverseForm: c.FormValue("occupation_diverse_form"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, occupation)
}
