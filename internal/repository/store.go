package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one database handle
type Store struct {
	db *gorm.DB

	Employees    *EmployeeRepository
	Departments  *DepartmentRepository
	Occupations  *OccupationRepository
	Associations *AssociationStore
	Settings     *SettingRepository
	Users        *UserRepository
}

// NewStore binds every repository to db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:           db,
		Employees:    NewEmployeeRepository(db),
		Departments:  NewDepartmentRepository(db),
		Occupations:  NewOccupationRepository(db),
		Associations: NewAssociationStore(db),
		Settings:     NewSettingRepository(db),
		Users:        NewUserRepository(db),
	}
}

// DB returns the underlying handle
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn with a Store bound to a single database transaction. The transaction
// commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
