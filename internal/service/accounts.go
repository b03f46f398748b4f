package service

import (
	"context"

	"employee-list/internal/apperror"
	"employee-list/internal/model"
	"employee-list/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AccountService authenticates platform accounts and creates the bootstrap administrator
type AccountService struct {
	users  *repository.UserRepository
	logger *zap.Logger
	cost   int
}

func NewAccountService(store *repository.Store, logger *zap.Logger) *AccountService {
	return &AccountService{users: store.Users, logger: logger, cost: bcrypt.DefaultCost}
}

// Authenticate checks username and password; both failure causes look the same to callers
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if apperror.Is(err, apperror.CodeNotFound) {
			return model.User{}, apperror.New(apperror.CodeUnauthorized, "invalid credentials")
		}
		return model.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return model.User{}, apperror.New(apperror.CodeUnauthorized, "invalid credentials")
	}
	return user, nil
}

// EnsureAdmin creates the administrator account once; an existing account is left alone.
// Empty credentials disable the bootstrap.
func (s *AccountService) EnsureAdmin(ctx context.Context, username, password, email string) error {
	if username == "" || password == "" {
		return nil
	}
	if len(password) > maxPasswordBytes {
		return apperror.New(apperror.CodeValidation, "admin password is too long")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return err
	}
	err = s.users.Create(ctx, &model.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     model.RoleAdministrator,
	})
	if apperror.Is(err, apperror.CodeConflict) {
		return nil
	}
	if err != nil {
		return err
	}
	s.logger.Info("Administrator account created", zap.String("username", username))
	return nil
}
