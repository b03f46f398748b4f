package service

import (
	"context"

	"employee-list/internal/apperror"
	"employee-list/internal/model"
	"employee-list/internal/repository"

	"go.uber.org/zap"
)

type SettingsService struct {
	settings *repository.SettingRepository
	logger   *zap.Logger
}

func NewSettingsService(store *repository.Store, logger *zap.Logger) *SettingsService {
	return &SettingsService{settings: store.Settings, logger: logger}
}

// CompanyName returns the configured name, or the default when none was stored yet
func (s *SettingsService) CompanyName(ctx context.Context) (string, error) {
	name, err := s.settings.Get(ctx, model.SettingCompanyName)
	if apperror.Is(err, apperror.CodeNotFound) {
		return model.DefaultCompanyName, nil
	}
	return name, err
}

func (s *SettingsService) UpdateCompanyName(ctx context.Context, name string) error {
	value, err := normalizeRequiredString(name, "company_name")
	if err != nil {
		return err
	}
	if err := s.settings.Set(ctx, model.SettingCompanyName, value); err != nil {
		return err
	}
	s.logger.Info("Company name updated", zap.String("company_name", value))
	return nil
}
