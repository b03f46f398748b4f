package repository

import (
	"context"
	"fmt"
	"time"

	"employee-list/internal/model"
	"employee-list/prometheus"

	"gorm.io/gorm"
)

// AssociationStore manages the employee_departments and employee_occupations link tables
type AssociationStore struct {
	db *gorm.DB
}

func NewAssociationStore(db *gorm.DB) *AssociationStore {
	return &AssociationStore{db: db}
}

// GetAssociatedDepartments returns the employee's departments ordered by id
func (s *AssociationStore) GetAssociatedDepartments(ctx context.Context, employeeID uint) ([]model.Department, error) {
	defer prometheus.TrackDBOperation("association_get")(time.Now())

	departments := []model.Department{}
	err := s.db.WithContext(ctx).
		Joins("JOIN employee_departments ON employee_departments.department_id = departments.id").
		Where("employee_departments.employee_id = ?", employeeID).
		Order("departments.id").
		Find(&departments).Error
	return departments, err
}

// GetAssociatedOccupations returns the employee's occupations ordered by id
func (s *AssociationStore) GetAssociatedOccupations(ctx context.Context, employeeID uint) ([]model.Occupation, error) {
	defer prometheus.TrackDBOperation("association_get")(time.Now())

	occupations := []model.Occupation{}
	err := s.db.WithContext(ctx).
		Joins("JOIN employee_occupations ON employee_occupations.occupation_id = occupations.id").
		Where("employee_occupations.employee_id = ?", employeeID).
		Order("occupations.id").
		Find(&occupations).Error
	return occupations, err
}

// ReplaceAssociations clears every link of the given kind for the employee and inserts one
// row per id. Duplicates are dropped first; both steps share one transaction.
func (s *AssociationStore) ReplaceAssociations(ctx context.Context, employeeID uint, kind model.AssociationKind, ids []uint) error {
	defer prometheus.TrackDBOperation("association_replace")(time.Now())

	unique := DedupIDs(ids)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch kind {
		case model.KindDepartment:
			if err := tx.Where("employee_id = ?", employeeID).Delete(&model.EmployeeDepartment{}).Error; err != nil {
				return err
			}
			if len(unique) == 0 {
				return nil
			}
			rows := make([]model.EmployeeDepartment, 0, len(unique))
			for _, id := range unique {
				rows = append(rows, model.EmployeeDepartment{EmployeeID: employeeID, DepartmentID: id})
			}
			return mapDatabaseError(tx.Create(&rows).Error, departmentNotFound)
		case model.KindOccupation:
			if err := tx.Where("employee_id = ?", employeeID).Delete(&model.EmployeeOccupation{}).Error; err != nil {
				return err
			}
			if len(unique) == 0 {
				return nil
			}
			rows := make([]model.EmployeeOccupation, 0, len(unique))
			for _, id := range unique {
				rows = append(rows, model.EmployeeOccupation{EmployeeID: employeeID, OccupationID: id})
			}
			return mapDatabaseError(tx.Create(&rows).Error, occupationNotFound)
		default:
			return fmt.Errorf("unknown association kind %q", kind)
		}
	})
}

// DeleteByEmployee removes every link row of the employee
func (s *AssociationStore) DeleteByEmployee(ctx context.Context, employeeID uint) error {
	db := s.db.WithContext(ctx)
	if err := db.Where("employee_id = ?", employeeID).Delete(&model.EmployeeDepartment{}).Error; err != nil {
		return err
	}
	return db.Where("employee_id = ?", employeeID).Delete(&model.EmployeeOccupation{}).Error
}

func (s *AssociationStore) DeleteByDepartment(ctx context.Context, departmentID uint) error {
	return s.db.WithContext(ctx).Where("department_id = ?", departmentID).Delete(&model.EmployeeDepartment{}).Error
}

func (s *AssociationStore) DeleteByOccupation(ctx context.Context, occupationID uint) error {
	return s.db.WithContext(ctx).Where("occupation_id = ?", occupationID).Delete(&model.EmployeeOccupation{}).Error
}
