package service

import (
	"context"
	"mime/multipart"

	"employee-list/internal/model"
	"employee-list/pkg/mailer"
)

// Mailer delivers a single plain-text message
type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// ImageUploader stores uploaded employee photos and knows the default picture
type ImageUploader interface {
	UploadImages(files []*multipart.FileHeader, firstName, lastName string) ([]string, error)
	PlaceholderURL() string
}

// EmployeeInput carries the raw employee fields of a save request
type EmployeeInput struct {
	ID            uint
	FirstName     string
	LastName      string
	RoomNumber    string
	PhoneNumber   string
	EmailAddress  string
	ImageURL      string
	Gender        string
	Information   string
	DepartmentIDs []uint
	OccupationIDs []uint
}

type DepartmentInput struct {
	ID   uint
	Name string
}

type OccupationInput struct {
	ID          uint
	Name        string
	MaleForm    string
	FemaleForm  string
	DiverseForm string
}

// DirectoryEntry is one employee as shown in the public listing
type DirectoryEntry struct {
	model.Employee
	Departments []model.Department `json:"departments"`
	Titles      []string           `json:"titles"`
}

// Directory is the public listing together with the values for its filters
type Directory struct {
	CompanyName string             `json:"company_name"`
	Departments []model.Department `json:"departments"`
	Occupations []model.Occupation `json:"occupations"`
	Employees   []DirectoryEntry   `json:"employees"`
}

// SubmitInput is a self-service form submission
type SubmitInput struct {
	Employee        EmployeeInput
	Pin             string
	InitID          string
	AccountUsername string
	AccountPassword string
	Photos          []*multipart.FileHeader
}

// SubmitResult describes what a self-service submission changed
type SubmitResult struct {
	EmployeeID     uint   `json:"employee_id"`
	Created        bool   `json:"created"`
	AccountCreated bool   `json:"account_created"`
	AccountMessage string `json:"account_message,omitempty"`
}

// FormData feeds the self-service edit form
type FormData struct {
	Employee    model.EmployeeDetail
	Departments []model.Department
	Occupations []model.Occupation
	// Pin is echoed into the form so the following submit can re-authenticate
	Pin         string
	InitID      string
	ShowAccount bool
	Username    string
}

// SelectedDepartment reports whether id is among the employee's departments
func (f FormData) SelectedDepartment(id uint) bool {
	for _, d := range f.Employee.Departments {
		if d.ID == id {
			return true
		}
	}
	return false
}

// SelectedOccupation reports whether id is among the employee's occupations
func (f FormData) SelectedOccupation(id uint) bool {
	for _, o := range f.Employee.Occupations {
		if o.ID == id {
			return true
		}
	}
	return false
}
