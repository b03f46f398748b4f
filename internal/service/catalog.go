package service

import (
	"context"

	"employee-list/internal/model"
	"employee-list/internal/repository"

	"go.uber.org/zap"
)

// CatalogService maintains the department and occupation lists
type CatalogService struct {
	store  *repository.Store
	logger *zap.Logger
}

func NewCatalogService(store *repository.Store, logger *zap.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger}
}

func (s *CatalogService) ListDepartments(ctx context.Context) ([]model.Department, error) {
	return s.store.Departments.List(ctx)
}

func (s *CatalogService) GetDepartment(ctx context.Context, id uint) (model.Department, error) {
	return s.store.Departments.GetByID(ctx, id)
}

func (s *CatalogService) SaveDepartment(ctx context.Context, input DepartmentInput) (model.Department, error) {
	name, err := normalizeRequiredString(input.Name, "department")
	if err != nil {
		return model.Department{}, err
	}

	department := model.Department{ID: input.ID, Name: name}
	id, err := s.store.Departments.Persist(ctx, &department)
	if err != nil {
		return model.Department{}, err
	}

	s.logger.Info("Department saved", zap.Uint("id", id), zap.String("department", name))
	return s.store.Departments.GetByID(ctx, id)
}

// DeleteDepartment removes the department and its employee links; employees stay
func (s *CatalogService) DeleteDepartment(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Associations.DeleteByDepartment(ctx, id); err != nil {
			return err
		}
		return tx.Departments.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("Department deleted", zap.Uint("id", id))
	return nil
}

func (s *CatalogService) ListOccupations(ctx context.Context) ([]model.Occupation, error) {
	return s.store.Occupations.List(ctx)
}

func (s *CatalogService) GetOccupation(ctx context.Context, id uint) (model.Occupation, error) {
	return s.store.Occupations.GetByID(ctx, id)
}

func (s *CatalogService) SaveOccupation(ctx context.Context, input OccupationInput) (model.Occupation, error) {
	name, err := normalizeRequiredString(input.Name, "occupation")
	if err != nil {
		return model.Occupation{}, err
	}
	male, err := normalizeOptionalString(input.MaleForm, "male_form", maxNameLength)
	if err != nil {
		return model.Occupation{}, err
	}
	female, err := normalizeOptionalString(input.FemaleForm, "female_form", maxNameLength)
	if err != nil {
		return model.Occupation{}, err
	}
	diverse, err := normalizeOptionalString(input.DiverseForm, "diverse_form", maxNameLength)
	if err != nil {
		return model.Occupation{}, err
	}

	occupation := model.Occupation{
		ID:          input.ID,
		Name:        name,
		MaleForm:    male,
		FemaleForm:  female,
		DiverseForm: diverse,
	}
	id, err := s.store.Occupations.Persist(ctx, &occupation)
	if err != nil {
		return model.Occupation{}, err
	}

	s.logger.Info("Occupation saved", zap.Uint("id", id), zap.String("occupation", name))
	return s.store.Occupations.GetByID(ctx, id)
}

// DeleteOccupation removes the occupation and its employee links; employees stay
func (s *CatalogService) DeleteOccupation(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Associations.DeleteByOccupation(ctx, id); err != nil {
			return err
		}
		return tx.Occupations.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("Occupation deleted", zap.Uint("id", id))
	return nil
}
