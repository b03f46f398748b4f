package handler

import (
	"employee-list/internal/service"

	"github.com/labstack/echo/v4"
)

// DirectoryHandler serves the public employee listing
type DirectoryHandler struct {
	employees EmployeeManager
}

func NewDirectoryHandler(employees EmployeeManager) *DirectoryHandler {
	return &DirectoryHandler{employees: employees}
}

// List accepts optional department and occupation filters
func (h *DirectoryHandler) List(c echo.Context) error {
	departmentID, err := service.ParseID(c.QueryParam("department"))
	if err != nil {
		return respondError(c, err)
	}
	occupationID, err := service.ParseID(c.QueryParam("occupation"))
	if err != nil {
		return respondError(c, err)
	}

	directory, err := h.employees.Directory(c.Request().Context(), departmentID, occupationID)
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, directory)
}
