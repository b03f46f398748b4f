package repository

import (
	"context"
	"time"

	"employee-list/internal/model"
	"employee-list/prometheus"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) Get(ctx context.Context, key string) (string, error) {
	defer prometheus.TrackDBOperation("setting_get")(time.Now())

	var setting model.Setting
	if err := r.db.WithContext(ctx).Where("setting = ?", key).First(&setting).Error; err != nil {
		return "", mapDatabaseError(err, "setting not found")
	}
	return setting.Value, nil
}

// Set upserts the value of key
func (r *SettingRepository) Set(ctx context.Context, key, value string) error {
	defer prometheus.TrackDBOperation("setting_set")(time.Now())

	setting := model.Setting{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}
