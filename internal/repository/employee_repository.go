package repository

import (
	"context"
	"strings"
	"time"

	"employee-list/internal/apperror"
	"employee-list/internal/model"
	"employee-list/prometheus"

	"gorm.io/gorm"
)

const employeeNotFound = "employee not found"

// columns written by an in-place update; pin_hash is managed separately
var employeeColumns = []string{
	"first_name",
	"last_name",
	"room_number",
	"phone_number",
	"email_address",
	"image_url",
	"gender",
	"information",
}

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// List returns all employees ordered by last name, then first name
func (r *EmployeeRepository) List(ctx context.Context) ([]model.Employee, error) {
	defer prometheus.TrackDBOperation("employee_list")(time.Now())

	var employees []model.Employee
	err := r.db.WithContext(ctx).Order("last_name, first_name, id").Find(&employees).Error
	return employees, err
}

// ListByDepartment returns the employees associated with the department
func (r *EmployeeRepository) ListByDepartment(ctx context.Context, departmentID uint) ([]model.Employee, error) {
	defer prometheus.TrackDBOperation("employee_list")(time.Now())

	sub := r.db.Model(&model.EmployeeDepartment{}).Select("employee_id").Where("department_id = ?", departmentID)
	var employees []model.Employee
	err := r.db.WithContext(ctx).Where("id IN (?)", sub).Order("last_name, first_name, id").Find(&employees).Error
	return employees, err
}

// ListByOccupation returns the employees associated with the occupation
func (r *EmployeeRepository) ListByOccupation(ctx context.Context, occupationID uint) ([]model.Employee, error) {
	defer prometheus.TrackDBOperation("employee_list")(time.Now())

	sub := r.db.Model(&model.EmployeeOccupation{}).Select("employee_id").Where("occupation_id = ?", occupationID)
	var employees []model.Employee
	err := r.db.WithContext(ctx).Where("id IN (?)", sub).Order("last_name, first_name, id").Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uint) (model.Employee, error) {
	defer prometheus.TrackDBOperation("employee_get")(time.Now())

	var employee model.Employee
	if err := r.db.WithContext(ctx).First(&employee, id).Error; err != nil {
		return model.Employee{}, mapDatabaseError(err, employeeNotFound)
	}
	return employee, nil
}

// Persist inserts the employee when its ID is zero and updates it in place otherwise.
// The returned id is the one assigned by the database for inserts.
func (r *EmployeeRepository) Persist(ctx context.Context, employee *model.Employee) (uint, error) {
	defer prometheus.TrackDBOperation("employee_persist")(time.Now())

	if employee.ID == 0 {
		employee.PinHash = nil
		if err := r.db.WithContext(ctx).Create(employee).Error; err != nil {
			return 0, mapDatabaseError(err, employeeNotFound)
		}
		return employee.ID, nil
	}

	result := r.db.WithContext(ctx).Model(employee).Select(employeeColumns).Updates(employee)
	if result.Error != nil {
		return 0, mapDatabaseError(result.Error, employeeNotFound)
	}
	if result.RowsAffected == 0 {
		return 0, apperror.New(apperror.CodeNotFound, employeeNotFound)
	}
	return employee.ID, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("employee_delete")(time.Now())

	if id == 0 {
		return apperror.New(apperror.CodeNotFound, employeeNotFound)
	}
	result := r.db.WithContext(ctx).Delete(&model.Employee{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.New(apperror.CodeNotFound, employeeNotFound)
	}
	return nil
}

// FindByEmailLocalPart resolves a self-service username. Only the part before an @ is
// compared, case-insensitively, against the local part of every stored address; the
// employee with the lowest id wins when several share a local part.
func (r *EmployeeRepository) FindByEmailLocalPart(ctx context.Context, username string) (model.Employee, error) {
	defer prometheus.TrackDBOperation("employee_find")(time.Now())

	local := model.LocalPart(username)
	if local == "" {
		return model.Employee{}, apperror.New(apperror.CodeNotFound, employeeNotFound)
	}

	// compared in Go: splitting on @ is not portable across SQL dialects
	var candidates []model.Employee
	err := r.db.WithContext(ctx).
		Where("email_address <> ?", "").
		Order("id").
		Find(&candidates).Error
	if err != nil {
		return model.Employee{}, err
	}
	for _, candidate := range candidates {
		if candidate.EmailLocalPart() == local {
			return candidate, nil
		}
	}
	return model.Employee{}, apperror.New(apperror.CodeNotFound, employeeNotFound)
}

// FindByEmail matches the full address case-insensitively; lowest id wins
func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (model.Employee, error) {
	defer prometheus.TrackDBOperation("employee_find")(time.Now())

	var employee model.Employee
	err := r.db.WithContext(ctx).
		Where("LOWER(email_address) = ?", strings.ToLower(strings.TrimSpace(email))).
		Order("id").
		First(&employee).Error
	if err != nil {
		return model.Employee{}, mapDatabaseError(err, employeeNotFound)
	}
	return employee, nil
}

// SetPinHash overwrites the stored PIN hash, invalidating any previous PIN
func (r *EmployeeRepository) SetPinHash(ctx context.Context, id uint, hash string) error {
	defer prometheus.TrackDBOperation("employee_pin")(time.Now())

	result := r.db.WithContext(ctx).Model(&model.Employee{}).Where("id = ?", id).Update("pin_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.New(apperror.CodeNotFound, employeeNotFound)
	}
	return nil
}

// GetPinHash returns nil when the employee never received a PIN
func (r *EmployeeRepository) GetPinHash(ctx context.Context, id uint) (*string, error) {
	defer prometheus.TrackDBOperation("employee_pin")(time.Now())

	var employee model.Employee
	if err := r.db.WithContext(ctx).Select("id", "pin_hash").First(&employee, id).Error; err != nil {
		return nil, mapDatabaseError(err, employeeNotFound)
	}
	return employee.PinHash, nil
}
