package service

import (
	"context"
	"crypto/subtle"

	"employee-list/internal/apperror"
	"employee-list/internal/model"
	"employee-list/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores everything past 72 bytes
const maxPasswordBytes = 72

// SelfService backs the public form where employees maintain their own entry
type SelfService struct {
	store            *repository.Store
	employees        *EmployeeService
	pins             *PinService
	images           ImageUploader
	registrationCode string
	accountRole      string
	logger           *zap.Logger
}

func NewSelfService(
	store *repository.Store,
	employees *EmployeeService,
	pins *PinService,
	images ImageUploader,
	registrationCode, accountRole string,
	logger *zap.Logger,
) *SelfService {
	if accountRole == "" {
		accountRole = model.RoleAuthor
	}
	return &SelfService{
		store:            store,
		employees:        employees,
		pins:             pins,
		images:           images,
		registrationCode: registrationCode,
		accountRole:      accountRole,
		logger:           logger,
	}
}

// IsRegistrationCode reports whether initID unlocks the blank form
func (s *SelfService) IsRegistrationCode(initID string) bool {
	if s.registrationCode == "" || initID == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(initID), []byte(s.registrationCode)) == 1
}

// BlankForm returns the empty form for a new employee
func (s *SelfService) BlankForm(ctx context.Context, initID string) (FormData, error) {
	if !s.IsRegistrationCode(initID) {
		return FormData{}, apperror.New(apperror.CodeUnauthorized, "invalid registration code")
	}
	form, err := s.formData(ctx, s.employees.Placeholder())
	if err != nil {
		return FormData{}, err
	}
	form.InitID = initID
	form.ShowAccount = true
	return form, nil
}

// Login authenticates username and PIN and returns the prefilled edit form
func (s *SelfService) Login(ctx context.Context, username, pin string) (FormData, error) {
	employee, err := s.pins.Authenticate(ctx, username, pin)
	if err != nil {
		return FormData{}, err
	}
	detail, err := s.employees.Get(ctx, employee.ID)
	if err != nil {
		return FormData{}, err
	}
	form, err := s.formData(ctx, detail)
	if err != nil {
		return FormData{}, err
	}
	form.Pin = pin

	// the account section is offered only while no account uses the email's local part
	form.Username = employee.EmailLocalPart()
	_, err = s.store.Users.FindByUsername(ctx, form.Username)
	switch {
	case apperror.Is(err, apperror.CodeNotFound):
		form.ShowAccount = true
	case err != nil:
		return FormData{}, err
	}
	return form, nil
}

// Submit saves a self-service form. Existing entries need a PIN that verifies, new
// entries need the registration code. A brand-new entry is mailed its first PIN.
func (s *SelfService) Submit(ctx context.Context, input SubmitInput) (SubmitResult, error) {
	employeeID := input.Employee.ID
	if employeeID > 0 {
		if !s.pins.VerifyPin(ctx, employeeID, input.Pin) {
			return SubmitResult{}, errInvalidCredentials
		}
	} else if !s.IsRegistrationCode(input.InitID) {
		return SubmitResult{}, apperror.New(apperror.CodeUnauthorized, "invalid registration code")
	}

	// photos are written only for input that will be saved
	if err := s.employees.Validate(ctx, input.Employee); err != nil {
		return SubmitResult{}, err
	}

	employeeInput := input.Employee
	imageURL, err := s.resolveImage(ctx, input)
	if err != nil {
		return SubmitResult{}, err
	}
	employeeInput.ImageURL = imageURL

	detail, err := s.employees.Save(ctx, employeeInput)
	if err != nil {
		return SubmitResult{}, err
	}

	result := SubmitResult{
		EmployeeID: detail.ID,
		Created:    employeeID == 0 && detail.ID > 0,
	}

	if input.AccountUsername != "" && input.AccountPassword != "" {
		if err := s.createAccount(ctx, input, detail.Employee); err != nil {
			if !apperror.Is(err, apperror.CodeConflict) {
				return result, err
			}
			result.AccountMessage = apperror.Message(err)
		} else {
			result.AccountCreated = true
		}
	}

	if result.Created {
		if err := s.pins.IssueAndSend(ctx, detail.Employee, TriggerRegistration); err != nil {
			return result, err
		}
	}
	return result, nil
}

// ResetPin mails a new PIN to the employee owning username
func (s *SelfService) ResetPin(ctx context.Context, username string) error {
	employee, err := s.store.Employees.FindByEmailLocalPart(ctx, username)
	if err != nil {
		return err
	}
	return s.pins.IssueAndSend(ctx, employee, TriggerReset)
}

// resolveImage picks the uploaded photo, then the stored image, then the placeholder
func (s *SelfService) resolveImage(ctx context.Context, input SubmitInput) (string, error) {
	if len(input.Photos) > 0 {
		urls, err := s.images.UploadImages(input.Photos, input.Employee.FirstName, input.Employee.LastName)
		if len(urls) > 0 {
			return urls[0], nil
		}
		if err != nil {
			return "", err
		}
	}
	if input.Employee.ID > 0 {
		existing, err := s.store.Employees.GetByID(ctx, input.Employee.ID)
		if err != nil {
			return "", err
		}
		if existing.ImageURL != "" {
			return existing.ImageURL, nil
		}
	}
	return s.images.PlaceholderURL(), nil
}

func (s *SelfService) createAccount(ctx context.Context, input SubmitInput, employee model.Employee) error {
	username, err := normalizeRequiredString(input.AccountUsername, "wp_username")
	if err != nil {
		return err
	}
	if len(input.AccountPassword) > maxPasswordBytes {
		return apperror.New(apperror.CodeValidation, "password is too long")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.AccountPassword), s.pins.cost)
	if err != nil {
		return err
	}

	user := model.User{
		Username:  username,
		Email:     employee.EmailAddress,
		FirstName: employee.FirstName,
		LastName:  employee.LastName,
		Password:  string(hash),
		Role:      s.accountRole,
	}
	if err := s.store.Users.Create(ctx, &user); err != nil {
		return err
	}
	s.logger.Info("Account created",
		zap.String("username", username),
		zap.String("role", s.accountRole),
		zap.Uint("employee_id", employee.ID))
	return nil
}

func (s *SelfService) formData(ctx context.Context, detail model.EmployeeDetail) (FormData, error) {
	departments, err := s.store.Departments.List(ctx)
	if err != nil {
		return FormData{}, err
	}
	occupations, err := s.store.Occupations.List(ctx)
	if err != nil {
		return FormData{}, err
	}
	return FormData{
		Employee:    detail,
		Departments: departments,
		Occupations: occupations,
	}, nil
}
