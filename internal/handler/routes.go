package handler

import (
	mid "employee-list/internal/middleware"
	"employee-list/pkg/jwtutil"
	"employee-list/prometheus"

	"github.com/labstack/echo/v4"
)

// Handlers groups every handler the server exposes
type Handlers struct {
	Settings    *SettingsHandler
	Employees   *EmployeeHandler
	Catalog     *CatalogHandler
	Gallery     *GalleryHandler
	Pins        *PinHandler
	SelfService *SelfServiceHandler
	Directory   *DirectoryHandler
	Auth        *AuthHandler
	Health      *HealthHandler
}

// RegisterRoutes mounts the public routes, the gallery files and the admin AJAX actions
func RegisterRoutes(e *echo.Echo, h Handlers, jwtUtil *jwtutil.JWTUtil, galleryDir, galleryPrefix string) {
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))
	e.GET("/health", h.Health.HealthCheck)

	e.POST("/auth/login", h.Auth.Login)
	e.GET("/directory", h.Directory.List)

	e.GET("/self-service", h.SelfService.Show)
	e.POST("/self-service", h.SelfService.Post)

	e.Static(galleryPrefix, galleryDir)

	ajax := e.Group("/admin/ajax", mid.AdminAuth(jwtUtil))

	ajax.GET("/get_company_name", h.Settings.GetCompanyName)
	ajax.POST("/update_company_name", h.Settings.UpdateCompanyName)

	ajax.GET("/employee_data", h.Employees.EmployeeData)
	ajax.GET("/employee_single_dataset", h.Employees.SingleDataset)
	ajax.POST("/delete_employee", h.Employees.Delete)
	ajax.POST("/persist_employee", h.Employees.Persist)

	ajax.GET("/department_data", h.Catalog.DepartmentData)
	ajax.GET("/department_single_dataset", h.Catalog.DepartmentSingleDataset)
	ajax.POST("/delete_department", h.Catalog.DeleteDepartment)
	ajax.POST("/persist_department", h.Catalog.PersistDepartment)

	ajax.GET("/occupation_data", h.Catalog.OccupationData)
	ajax.GET("/occupation_single_dataset", h.Catalog.OccupationSingleDataset)
	ajax.POST("/delete_occupation", h.Catalog.DeleteOccupation)
	ajax.POST("/persist_occupation", h.Catalog.PersistOccupation)

	ajax.GET("/get_employee_image_urls", h.Gallery.ImageURLs)
	ajax.POST("/delete_employee_image", h.Gallery.DeleteImage)
	ajax.POST("/upload_employee_image", h.Gallery.Upload)

	ajax.POST("/send_pin_to_email", h.Pins.SendPinToEmail)
	ajax.POST("/test_email", h.Pins.TestEmail)
}
