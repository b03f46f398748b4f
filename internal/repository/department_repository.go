package repository

import (
	"context"
	"time"

	"employee-list/internal/apperror"
	"employee-list/internal/model"
	"employee-list/prometheus"

	"gorm.io/gorm"
)

const departmentNotFound = "department not found"

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// List returns all departments ordered by name
func (r *DepartmentRepository) List(ctx context.Context) ([]model.Department, error) {
	defer prometheus.TrackDBOperation("department_list")(time.Now())

	var departments []model.Department
	err := r.db.WithContext(ctx).Order("department, id").Find(&departments).Error
	return departments, err
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id uint) (model.Department, error) {
	defer prometheus.TrackDBOperation("department_get")(time.Now())

	var department model.Department
	if err := r.db.WithContext(ctx).First(&department, id).Error; err != nil {
		return model.Department{}, mapDatabaseError(err, departmentNotFound)
	}
	return department, nil
}

// Persist inserts (ID zero) or renames (ID set) a department. A name already used by another
// department is reported as a conflict.
func (r *DepartmentRepository) Persist(ctx context.Context, department *model.Department) (uint, error) {
	defer prometheus.TrackDBOperation("department_persist")(time.Now())

	// Check if another department already uses the name
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Department{}).
		Where("department = ? AND id <> ?", department.Name, department.ID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, apperror.New(apperror.CodeConflict, "department with this name already exists")
	}

	if department.ID == 0 {
		if err := r.db.WithContext(ctx).Create(department).Error; err != nil {
			return 0, mapDatabaseError(err, departmentNotFound)
		}
		return department.ID, nil
	}

	result := r.db.WithContext(ctx).Model(department).Update("department", department.Name)
	if result.Error != nil {
		return 0, mapDatabaseError(result.Error, departmentNotFound)
	}
	if result.RowsAffected == 0 {
		return 0, apperror.New(apperror.CodeNotFound, departmentNotFound)
	}
	return department.ID, nil
}

func (r *DepartmentRepository) Delete(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("department_delete")(time.Now())

	if id == 0 {
		return apperror.New(apperror.CodeNotFound, departmentNotFound)
	}
	result := r.db.WithContext(ctx).Delete(&model.Department{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.New(apperror.CodeNotFound, departmentNotFound)
	}
	return nil
}

// CountExisting reports how many of the given ids reference a stored department
func (r *DepartmentRepository) CountExisting(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Department{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}
