package repository

import (
	"context"
	"time"

	"employee-list/internal/apperror"
	"employee-list/internal/model"
	"employee-list/prometheus"

	"gorm.io/gorm"
)

const occupationNotFound = "occupation not found"

type OccupationRepository struct {
	db *gorm.DB
}

func NewOccupationRepository(db *gorm.DB) *OccupationRepository {
	return &OccupationRepository{db: db}
}

// List returns all occupations ordered by generic name
func (r *OccupationRepository) List(ctx context.Context) ([]model.Occupation, error) {
	defer prometheus.TrackDBOperation("occupation_list")(time.Now())

	var occupations []model.Occupation
	err := r.db.WithContext(ctx).Order("occupation, id").Find(&occupations).Error
	return occupations, err
}

func (r *OccupationRepository) GetByID(ctx context.Context, id uint) (model.Occupation, error) {
	defer prometheus.TrackDBOperation("occupation_get")(time.Now())

	var occupation model.Occupation
	if err := r.db.WithContext(ctx).First(&occupation, id).Error; err != nil {
		return model.Occupation{}, mapDatabaseError(err, occupationNotFound)
	}
	return occupation, nil
}

// Persist inserts (ID zero) or updates (ID set) an occupation with its gendered forms
func (r *OccupationRepository) Persist(ctx context.Context, occupation *model.Occupation) (uint, error) {
	defer prometheus.TrackDBOperation("occupation_persist")(time.Now())

	var count int64
	err := r.db.WithContext(ctx).Model(&model.Occupation{}).
		Where("occupation = ? AND id <> ?", occupation.Name, occupation.ID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, apperror.New(apperror.CodeConflict, "occupation with this name already exists")
	}

	if occupation.ID == 0 {
		if err := r.db.WithContext(ctx).Create(occupation).Error; err != nil {
			return 0, mapDatabaseError(err, occupationNotFound)
		}
		return occupation.ID, nil
	}

	result := r.db.WithContext(ctx).Model(occupation).
		Select("occupation", "male_form", "female_form", "diverse_form").
		Updates(occupation)
	if result.Error != nil {
		return 0, mapDatabaseError(result.Error, occupationNotFound)
	}
	if result.RowsAffected == 0 {
		return 0, apperror.New(apperror.CodeNotFound, occupationNotFound)
	}
	return occupation.ID, nil
}

func (r *OccupationRepository) Delete(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("occupation_delete")(time.Now())

	if id == 0 {
		return apperror.New(apperror.CodeNotFound, occupationNotFound)
	}
	result := r.db.WithContext(ctx).Delete(&model.Occupation{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.New(apperror.CodeNotFound, occupationNotFound)
	}
	return nil
}

// CountExisting reports how many of the given ids reference a stored occupation
func (r *OccupationRepository) CountExisting(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Occupation{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}
