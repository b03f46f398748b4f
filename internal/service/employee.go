package service

import (
	"context"
	"fmt"

	"employee-list/internal/apperror"
	"employee-list/internal/model"
	"employee-list/internal/repository"

	"go.uber.org/zap"
)

const (
	maxShortFieldLength  = 32
	maxInformationLength = 512
)

type EmployeeService struct {
	store          *repository.Store
	placeholderURL string
	logger         *zap.Logger
}

func NewEmployeeService(store *repository.Store, placeholderURL string, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		store:          store,
		placeholderURL: placeholderURL,
		logger:         logger,
	}
}

// List returns every employee with its departments and occupations
func (s *EmployeeService) List(ctx context.Context) ([]model.EmployeeDetail, error) {
	employees, err := s.store.Employees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	details := make([]model.EmployeeDetail, 0, len(employees))
	for _, employee := range employees {
		detail, err := loadDetail(ctx, s.store, employee)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

// Get returns the employee with its associations. Id 0 yields an empty placeholder
// record used to prefill the "new employee" form.
func (s *EmployeeService) Get(ctx context.Context, id uint) (model.EmployeeDetail, error) {
	if id == 0 {
		return s.Placeholder(), nil
	}
	employee, err := s.store.Employees.GetByID(ctx, id)
	if err != nil {
		return model.EmployeeDetail{}, err
	}
	return loadDetail(ctx, s.store, employee)
}

func (s *EmployeeService) Placeholder() model.EmployeeDetail {
	return model.EmployeeDetail{
		Employee: model.Employee{
			ImageURL: s.placeholderURL,
			Gender:   model.GenderUndefined,
		},
		Departments: []model.Department{},
		Occupations: []model.Occupation{},
	}
}

// Validate runs the checks Save applies without writing anything
func (s *EmployeeService) Validate(ctx context.Context, input EmployeeInput) error {
	if _, err := s.normalize(input); err != nil {
		return err
	}
	return ensureReferencesExist(ctx, s.store,
		repository.DedupIDs(input.DepartmentIDs),
		repository.DedupIDs(input.OccupationIDs))
}

// Save validates input, upserts the employee and replaces both association sets in one
// transaction. The stored record is returned with its associations.
func (s *EmployeeService) Save(ctx context.Context, input EmployeeInput) (model.EmployeeDetail, error) {
	employee, err := s.normalize(input)
	if err != nil {
		return model.EmployeeDetail{}, err
	}

	departmentIDs := repository.DedupIDs(input.DepartmentIDs)
	occupationIDs := repository.DedupIDs(input.OccupationIDs)

	var detail model.EmployeeDetail
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := ensureReferencesExist(ctx, tx, departmentIDs, occupationIDs); err != nil {
			return err
		}
		id, err := tx.Employees.Persist(ctx, &employee)
		if err != nil {
			return err
		}
		if err := tx.Associations.ReplaceAssociations(ctx, id, model.KindDepartment, departmentIDs); err != nil {
			return err
		}
		if err := tx.Associations.ReplaceAssociations(ctx, id, model.KindOccupation, occupationIDs); err != nil {
			return err
		}

		stored, err := tx.Employees.GetByID(ctx, id)
		if err != nil {
			return err
		}
		detail, err = loadDetail(ctx, tx, stored)
		return err
	})
	if err != nil {
		return model.EmployeeDetail{}, err
	}

	s.logger.Info("Employee saved",
		zap.Uint("id", detail.ID),
		zap.Bool("created", input.ID == 0),
		zap.Int("departments", len(departmentIDs)),
		zap.Int("occupations", len(occupationIDs)))
	return detail, nil
}

// Delete removes the employee and its association rows
func (s *EmployeeService) Delete(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Associations.DeleteByEmployee(ctx, id); err != nil {
			return err
		}
		return tx.Employees.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("Employee deleted", zap.Uint("id", id))
	return nil
}

// Directory builds the public listing. A department filter takes precedence over an
// occupation filter; with neither every employee is listed.
func (s *EmployeeService) Directory(ctx context.Context, departmentID, occupationID uint) (Directory, error) {
	var (
		employees []model.Employee
		err       error
	)
	switch {
	case departmentID > 0:
		employees, err = s.store.Employees.ListByDepartment(ctx, departmentID)
	case occupationID > 0:
		employees, err = s.store.Employees.ListByOccupation(ctx, occupationID)
	default:
		employees, err = s.store.Employees.List(ctx)
	}
	if err != nil {
		return Directory{}, fmt.Errorf("list directory: %w", err)
	}

	directory := Directory{Employees: make([]DirectoryEntry, 0, len(employees))}
	if directory.CompanyName, err = s.store.Settings.Get(ctx, model.SettingCompanyName); err != nil {
		if !apperror.Is(err, apperror.CodeNotFound) {
			return Directory{}, err
		}
		directory.CompanyName = model.DefaultCompanyName
	}
	if directory.Departments, err = s.store.Departments.List(ctx); err != nil {
		return Directory{}, err
	}
	if directory.Occupations, err = s.store.Occupations.List(ctx); err != nil {
		return Directory{}, err
	}

	for _, employee := range employees {
		detail, err := loadDetail(ctx, s.store, employee)
		if err != nil {
			return Directory{}, err
		}
		directory.Employees = append(directory.Employees, DirectoryEntry{
			Employee:    detail.Employee,
			Departments: detail.Departments,
			Titles:      detail.Titles(),
		})
	}
	return directory, nil
}

func (s *EmployeeService) normalize(input EmployeeInput) (model.Employee, error) {
	firstName, err := normalizeRequiredString(input.FirstName, "first_name")
	if err != nil {
		return model.Employee{}, err
	}
	lastName, err := normalizeRequiredString(input.LastName, "last_name")
	if err != nil {
		return model.Employee{}, err
	}
	email, err := normalizeEmail(input.EmailAddress, false)
	if err != nil {
		return model.Employee{}, err
	}
	room, err := normalizeOptionalString(input.RoomNumber, "room_number", maxShortFieldLength)
	if err != nil {
		return model.Employee{}, err
	}
	phone, err := normalizeOptionalString(input.PhoneNumber, "phone_number", maxShortFieldLength)
	if err != nil {
		return model.Employee{}, err
	}
	information, err := normalizeOptionalString(input.Information, "information", maxInformationLength)
	if err != nil {
		return model.Employee{}, err
	}
	imageURL, err := normalizeOptionalString(input.ImageURL, "image_url", maxNameLength)
	if err != nil {
		return model.Employee{}, err
	}
	if imageURL == "" {
		imageURL = s.placeholderURL
	}

	return model.Employee{
		ID:           input.ID,
		FirstName:    firstName,
		LastName:     lastName,
		RoomNumber:   room,
		PhoneNumber:  phone,
		EmailAddress: email,
		ImageURL:     imageURL,
		Gender:       model.ParseGender(input.Gender),
		Information:  information,
	}, nil
}

func ensureReferencesExist(ctx context.Context, store *repository.Store, departmentIDs, occupationIDs []uint) error {
	count, err := store.Departments.CountExisting(ctx, departmentIDs)
	if err != nil {
		return err
	}
	if count != int64(len(departmentIDs)) {
		return apperror.New(apperror.CodeValidation, "unknown department id")
	}

	count, err = store.Occupations.CountExisting(ctx, occupationIDs)
	if err != nil {
		return err
	}
	if count != int64(len(occupationIDs)) {
		return apperror.New(apperror.CodeValidation, "unknown occupation id")
	}
	return nil
}

func loadDetail(ctx context.Context, store *repository.Store, employee model.Employee) (model.EmployeeDetail, error) {
	departments, err := store.Associations.GetAssociatedDepartments(ctx, employee.ID)
	if err != nil {
		return model.EmployeeDetail{}, fmt.Errorf("load departments of employee %d: %w", employee.ID, err)
	}
	occupations, err := store.Associations.GetAssociatedOccupations(ctx, employee.ID)
	if err != nil {
		return model.EmployeeDetail{}, fmt.Errorf("load occupations of employee %d: %w", employee.ID, err)
	}
	return model.EmployeeDetail{
		Employee:    employee,
		Departments: departments,
		Occupations: occupations,
	}, nil
}
