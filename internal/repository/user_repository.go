package repository

import (
	"context"
	"time"

	"employee-list/internal/apperror"
	"employee-list/internal/model"
	"employee-list/prometheus"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (model.User, error) {
	defer prometheus.TrackDBOperation("user_get")(time.Now())

	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return model.User{}, mapDatabaseError(err, "user not found")
	}
	return user, nil
}

// Create stores a new account; the password must already be hashed
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	defer prometheus.TrackDBOperation("user_create")(time.Now())

	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperror.New(apperror.CodeConflict, "username already registered")
	}
	return mapDatabaseError(r.db.WithContext(ctx).Create(user).Error, "user not found")
}
