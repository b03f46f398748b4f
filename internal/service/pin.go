package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"employee-list/internal/apperror"
	"employee-list/internal/model"
	"employee-list/internal/repository"
	"employee-list/pkg/mailer"
	"employee-list/prometheus"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	pinMin   = 100000
	pinRange = 900000

	TriggerRegistration = "registration"
	TriggerReset        = "reset"
	TriggerAdmin        = "admin"
)

var errInvalidCredentials = apperror.New(apperror.CodeUnauthorized, "invalid username or PIN")

// PinService issues and checks the self-service PINs. Only bcrypt hashes are stored.
type PinService struct {
	employees *repository.EmployeeRepository
	mailer    Mailer
	logger    *zap.Logger
	cost      int
}

func NewPinService(store *repository.Store, m Mailer, logger *zap.Logger) *PinService {
	return &PinService{
		employees: store.Employees,
		mailer:    m,
		logger:    logger,
		cost:      bcrypt.DefaultCost,
	}
}

// GenerateNewPin draws a fresh six digit PIN, stores its hash and returns the plaintext.
// Any previously issued PIN stops working.
func (s *PinService) GenerateNewPin(ctx context.Context, employeeID uint) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(pinRange))
	if err != nil {
		return "", fmt.Errorf("generate pin: %w", err)
	}
	pin := strconv.FormatInt(n.Int64()+pinMin, 10)

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash pin: %w", err)
	}
	if err := s.employees.SetPinHash(ctx, employeeID, string(hash)); err != nil {
		return "", err
	}
	return pin, nil
}

// VerifyPin fails closed: unknown employees and employees without a PIN never match
func (s *PinService) VerifyPin(ctx context.Context, employeeID uint, candidate string) bool {
	if employeeID == 0 || candidate == "" {
		return false
	}
	hash, err := s.employees.GetPinHash(ctx, employeeID)
	if err != nil {
		if !apperror.Is(err, apperror.CodeNotFound) {
			s.logger.Error("Failed to load PIN hash", zap.Uint("employee_id", employeeID), zap.Error(err))
		}
		return false
	}
	if hash == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*hash), []byte(candidate)) == nil
}

// Authenticate resolves username by email local part and checks the PIN
func (s *PinService) Authenticate(ctx context.Context, username, pin string) (model.Employee, error) {
	employee, err := s.employees.FindByEmailLocalPart(ctx, username)
	if err != nil {
		prometheus.RecordLogin(false)
		if apperror.Is(err, apperror.CodeNotFound) {
			return model.Employee{}, errInvalidCredentials
		}
		return model.Employee{}, err
	}
	if !s.VerifyPin(ctx, employee.ID, pin) {
		prometheus.RecordLogin(false)
		return model.Employee{}, errInvalidCredentials
	}
	prometheus.RecordLogin(true)
	return employee, nil
}

// IssueAndSend replaces the employee's PIN and mails the new one to the stored address.
// The new PIN is in effect even when the mail cannot be delivered.
func (s *PinService) IssueAndSend(ctx context.Context, employee model.Employee, trigger string) error {
	if employee.EmailAddress == "" {
		return apperror.New(apperror.CodeValidation, "employee has no email address")
	}

	pin, err := s.GenerateNewPin(ctx, employee.ID)
	if err != nil {
		return err
	}
	prometheus.RecordPinIssued(trigger)

	err = s.mailer.Send(ctx, pinMessage(employee, pin))
	prometheus.RecordMail("pin", err)
	if err != nil {
		s.logger.Error("Failed to send PIN mail",
			zap.Uint("employee_id", employee.ID),
			zap.String("trigger", trigger),
			zap.Error(err))
		return apperror.Wrap(apperror.CodeMail, "failed to send PIN email", err)
	}

	s.logger.Info("PIN issued",
		zap.Uint("employee_id", employee.ID),
		zap.String("trigger", trigger))
	return nil
}

// SendToEmail is the admin action: the employee is looked up by full address, the mail
// system is checked with a test message, then a new PIN is issued and mailed.
func (s *PinService) SendToEmail(ctx context.Context, email string) (model.Employee, error) {
	address, err := normalizeEmail(email, true)
	if err != nil {
		return model.Employee{}, err
	}
	employee, err := s.employees.FindByEmail(ctx, address)
	if err != nil {
		if apperror.Is(err, apperror.CodeNotFound) {
			return model.Employee{}, apperror.New(apperror.CodeNotFound, "no employee with this email address")
		}
		return model.Employee{}, err
	}
	if err := s.SendTestMail(ctx, address); err != nil {
		return model.Employee{}, apperror.Wrap(apperror.CodeMail, "mail system not configured", err)
	}
	if err := s.IssueAndSend(ctx, employee, TriggerAdmin); err != nil {
		return model.Employee{}, err
	}
	return employee, nil
}

// SendTestMail delivers a short test message to address
func (s *PinService) SendTestMail(ctx context.Context, address string) error {
	to, err := normalizeEmail(address, true)
	if err != nil {
		return err
	}
	err = s.mailer.Send(ctx, mailer.Message{
		To:      to,
		Subject: "Employee list test email",
		Body:    "This is a test message from the employee list. Outgoing mail is working.",
	})
	prometheus.RecordMail("test", err)
	if err != nil {
		s.logger.Warn("Test mail failed", zap.Error(err))
		return apperror.Wrap(apperror.CodeMail, "failed to send test email", err)
	}
	return nil
}

func pinMessage(employee model.Employee, pin string) mailer.Message {
	body := fmt.Sprintf("Hello %s,\n\nyour new self-service PIN is: %s\n\nKind regards\nThe employee list team",
		employee.FullName(), pin)
	return mailer.Message{
		To:      employee.EmailAddress,
		Subject: "Your new PIN",
		Body:    body,
	}
}
