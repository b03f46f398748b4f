package handler

import (
	"context"

	"employee-list/internal/model"
	"employee-list/internal/service"

	"github.com/labstack/echo/v4"
)

type EmployeeManager interface {
	List(ctx context.Context) ([]model.EmployeeDetail, error)
	Get(ctx context.Context, id uint) (model.EmployeeDetail, error)
	Save(ctx context.Context, input service.EmployeeInput) (model.EmployeeDetail, error)
	Delete(ctx context.Context, id uint) error
	Directory(ctx context.Context, departmentID, occupationID uint) (service.Directory, error)
}

type EmployeeHandler struct {
	employees EmployeeManager
}

func NewEmployeeHandler(employees EmployeeManager) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// EmployeeData lists every employee with nested departments and occupations
func (h *EmployeeHandler) EmployeeData(c echo.Context) error {
	employees, err := h.employees.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, employees)
}

// SingleDataset returns one employee; id 0 yields the placeholder record
func (h *EmployeeHandler) SingleDataset(c echo.Context) error {
	id, err := service.ParseID(c.FormValue("employee_id"))
	if err != nil {
		return respondError(c, err)
	}
	employee, err := h.employees.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, employee)
}

func (h *EmployeeHandler) Delete(c echo.Context) error {
	id, err := service.ParseID(c.FormValue("employee_id"))
	if err != nil {
		return respondError(c, err)
	}
	if err := h.employees.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, id)
}

// Persist inserts (employee_id 0) or updates an employee. Departments and occupations
// arrive as JSON arrays of ids.
func (h *EmployeeHandler) Persist(c echo.Context) error {
	id, err := service.ParseID(c.FormValue("employee_id"))
	if err != nil {
		return respondError(c, err)
	}
	departments, err := service.ParseIDList(c.FormValue("departments"))
	if err != nil {
		return respondError(c, err)
	}
	occupations, err := service.ParseIDList(c.FormValue("occupations"))
	if err != nil {
		return respondError(c, err)
	}

	employee, err := h.employees.Save(c.Request().Context(), service.EmployeeInput{
		ID:            id,
		FirstName:     c.FormValue("first_name"),
		LastName:      c.FormValue("last_name"),
		RoomNumber:    c.FormValue("room_number"),
		PhoneNumber:   c.FormValue("phone_number"),
		EmailAddress:  c.FormValue("email_address"),
		ImageURL:      c.FormValue("image_url"),
		Gender:        c.FormValue("gender"),
		Information:   c.FormValue("information"),
		DepartmentIDs: departments,
		OccupationIDs: occupations,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, employee)
}
