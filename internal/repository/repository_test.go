package repository

import (
	"context"
	"testing"

	"employee-list/internal/apperror"
	"employee-list/internal/model"
	"employee-list/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(testutil.NewDB(t))
}

func createEmployee(t *testing.T, s *Store, first, last, email string) uint {
	t.Helper()
	id, err := s.Employees.Persist(context.Background(), &model.Employee{
		FirstName:    first,
		LastName:     last,
		EmailAddress: email,
		Gender:       model.GenderUndefined,
	})
	require.NoError(t, err)
	return id
}

func createDepartment(t *testing.T, s *Store, name string) uint {
	t.Helper()
	id, err := s.Departments.Persist(context.Background(), &model.Department{Name: name})
	require.NoError(t, err)
	return id
}

func createOccupation(t *testing.T, s *Store, name string) uint {
	t.Helper()
	id, err := s.Occupations.Persist(context.Background(), &model.Occupation{Name: name})
	require.NoError(t, err)
	return id
}

func TestDepartmentPersistAndConflict(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	id, err := s.Departments.Persist(ctx, &model.Department{Name: "Finance"})
	require.NoError(t, err)
	assert.Greater(t, id, uint(0))

	stored, err := s.Departments.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Finance", stored.Name)

	_, err = s.Departments.Persist(ctx, &model.Department{Name: "Finance"})
	assert.Equal(t, apperror.CodeConflict, apperror.GetCode(err))

	// renaming onto itself is not a conflict
	_, err = s.Departments.Persist(ctx, &model.Department{ID: id, Name: "Finance"})
	assert.NoError(t, err)
}

func TestDepartmentUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	id := createDepartment(t, s, "IT")

	updatedID, err := s.Departments.Persist(ctx, &model.Department{ID: id, Name: "Information Technology"})
	require.NoError(t, err)
	assert.Equal(t, id, updatedID)

	stored, err := s.Departments.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Information Technology", stored.Name)

	_, err = s.Departments.Persist(ctx, &model.Department{ID: 999, Name: "Ghost"})
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))

	require.NoError(t, s.Departments.Delete(ctx, id))
	_, err = s.Departments.GetByID(ctx, id)
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(s.Departments.Delete(ctx, id)))
}

func TestListsAreOrderedByNaturalKey(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	createDepartment(t, s, "Sales")
	createDepartment(t, s, "Finance")
	createOccupation(t, s, "Trainer")
	createOccupation(t, s, "Accountant")
	createEmployee(t, s, "Max", "Zimmer", "max@example.com")
	createEmployee(t, s, "Berta", "Adler", "berta@example.com")
	createEmployee(t, s, "Anna", "Adler", "anna@example.com")

	departments, err := s.Departments.List(ctx)
	require.NoError(t, err)
	require.Len(t, departments, 2)
	assert.Equal(t, "Finance", departments[0].Name)

	occupations, err := s.Occupations.List(ctx)
	require.NoError(t, err)
	require.Len(t, occupations, 2)
	assert.Equal(t, "Accountant", occupations[0].Name)

	employees, err := s.Employees.List(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 3)
	assert.Equal(t, []string{"Anna", "Berta", "Max"},
		[]string{employees[0].FirstName, employees[1].FirstName, employees[2].FirstName})
}

func TestOccupationPersistKeepsGenderedForms(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	id, err := s.Occupations.Persist(ctx, &model.Occupation{Name: "Nurse", FemaleForm: "Pflegerin"})
	require.NoError(t, err)

	_, err = s.Occupations.Persist(ctx, &model.Occupation{ID: id, Name: "Nurse", MaleForm: "Pfleger", FemaleForm: ""})
	require.NoError(t, err)

	stored, err := s.Occupations.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Pfleger", stored.MaleForm)
	assert.Equal(t, "", stored.FemaleForm)
	assert.Equal(t, "Nurse", stored.FormFor(model.GenderFemale))

	_, err = s.Occupations.Persist(ctx, &model.Occupation{Name: "Nurse"})
	assert.Equal(t, apperror.CodeConflict, apperror.GetCode(err))
}

func TestEmployeeUpdateDoesNotTouchPinHash(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	id := createEmployee(t, s, "Anna", "Muster", "anna.muster@example.com")

	require.NoError(t, s.Employees.SetPinHash(ctx, id, "hash-1"))

	_, err := s.Employees.Persist(ctx, &model.Employee{
		ID:           id,
		FirstName:    "Anna",
		LastName:     "Muster-Meier",
		EmailAddress: "anna.muster@example.com",
		Gender:       model.GenderFemale,
	})
	require.NoError(t, err)

	hash, err := s.Employees.GetPinHash(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, hash)
	assert.Equal(t, "hash-1", *hash)

	stored, err := s.Employees.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Muster-Meier", stored.LastName)
	assert.Equal(t, model.GenderFemale, stored.Gender)
}

func TestEmployeePersistUnknownIDIsNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Employees.Persist(context.Background(), &model.Employee{ID: 42, FirstName: "A", LastName: "B"})
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))
}

func TestGetPinHashWithoutPin(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	id := createEmployee(t, s, "Anna", "Muster", "anna@example.com")

	hash, err := s.Employees.GetPinHash(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, hash)

	_, err = s.Employees.GetPinHash(ctx, id+1)
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(s.Employees.SetPinHash(ctx, id+1, "x")))
}

func TestFindByEmailLocalPart(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	first := createEmployee(t, s, "Anna", "Muster", "Anna.Muster@example.com")
	createEmployee(t, s, "Anna", "Other", "anna.muster@other.org")
	createEmployee(t, s, "Bob", "Builder", "bob@example.com")

	found, err := s.Employees.FindByEmailLocalPart(ctx, "ANNA.MUSTER")
	require.NoError(t, err)
	assert.Equal(t, first, found.ID, "lowest id wins on a shared local part")

	found, err = s.Employees.FindByEmailLocalPart(ctx, "bob@whatever.net")
	require.NoError(t, err)
	assert.Equal(t, "Builder", found.LastName)

	_, err = s.Employees.FindByEmailLocalPart(ctx, "b%")
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))

	_, err = s.Employees.FindByEmailLocalPart(ctx, "")
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))
}

func TestFindByEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	createEmployee(t, s, "Anna", "Muster", "Anna.Muster@example.com")

	found, err := s.Employees.FindByEmail(ctx, " anna.muster@EXAMPLE.com")
	require.NoError(t, err)
	assert.Equal(t, "Muster", found.LastName)

	_, err = s.Employees.FindByEmail(ctx, "anna.muster@other.org")
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))
}

func TestReplaceAssociationsIsExactDeduplicatedSet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	emp := createEmployee(t, s, "Anna", "Muster", "anna@example.com")
	d1 := createDepartment(t, s, "A")
	d2 := createDepartment(t, s, "B")
	d3 := createDepartment(t, s, "C")

	require.NoError(t, s.Associations.ReplaceAssociations(ctx, emp, model.KindDepartment, []uint{d1, d2}))
	require.NoError(t, s.Associations.ReplaceAssociations(ctx, emp, model.KindDepartment, []uint{d3, d2, d3, d2}))

	departments, err := s.Associations.GetAssociatedDepartments(ctx, emp)
	require.NoError(t, err)
	ids := make([]uint, 0, len(departments))
	for _, d := range departments {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []uint{d2, d3}, ids)

	require.NoError(t, s.Associations.ReplaceAssociations(ctx, emp, model.KindDepartment, nil))
	departments, err = s.Associations.GetAssociatedDepartments(ctx, emp)
	require.NoError(t, err)
	assert.Empty(t, departments)
}

func TestReplaceAssociationsKindsAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	emp := createEmployee(t, s, "Anna", "Muster", "anna@example.com")
	dep := createDepartment(t, s, "Finance")
	occ := createOccupation(t, s, "Accountant")

	require.NoError(t, s.Associations.ReplaceAssociations(ctx, emp, model.KindDepartment, []uint{dep}))
	require.NoError(t, s.Associations.ReplaceAssociations(ctx, emp, model.KindOccupation, []uint{occ}))
	require.NoError(t, s.Associations.ReplaceAssociations(ctx, emp, model.KindDepartment, []uint{}))

	occupations, err := s.Associations.GetAssociatedOccupations(ctx, emp)
	require.NoError(t, err)
	require.Len(t, occupations, 1)
	assert.Equal(t, "Accountant", occupations[0].Name)

	assert.Error(t, s.Associations.ReplaceAssociations(ctx, emp, model.AssociationKind("team"), []uint{1}))
}

func TestCascadeHelpers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	emp := createEmployee(t, s, "Anna", "Muster", "anna@example.com")
	other := createEmployee(t, s, "Bob", "Builder", "bob@example.com")
	dep := createDepartment(t, s, "Finance")
	occ := createOccupation(t, s, "Accountant")

	for _, id := range []uint{emp, other} {
		require.NoError(t, s.Associations.ReplaceAssociations(ctx, id, model.KindDepartment, []uint{dep}))
		require.NoError(t, s.Associations.ReplaceAssociations(ctx, id, model.KindOccupation, []uint{occ}))
	}

	require.NoError(t, s.Associations.DeleteByEmployee(ctx, emp))
	departments, err := s.Associations.GetAssociatedDepartments(ctx, emp)
	require.NoError(t, err)
	assert.Empty(t, departments)

	require.NoError(t, s.Associations.DeleteByOccupation(ctx, occ))
	occupations, err := s.Associations.GetAssociatedOccupations(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, occupations)

	require.NoError(t, s.Associations.DeleteByDepartment(ctx, dep))
	departments, err = s.Associations.GetAssociatedDepartments(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, departments)
}

func TestListByDepartmentAndOccupation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	anna := createEmployee(t, s, "Anna", "Muster", "anna@example.com")
	bob := createEmployee(t, s, "Bob", "Builder", "bob@example.com")
	dep := createDepartment(t, s, "Finance")
	occ := createOccupation(t, s, "Accountant")

	require.NoError(t, s.Associations.ReplaceAssociations(ctx, anna, model.KindDepartment, []uint{dep}))
	require.NoError(t, s.Associations.ReplaceAssociations(ctx, bob, model.KindOccupation, []uint{occ}))

	byDepartment, err := s.Employees.ListByDepartment(ctx, dep)
	require.NoError(t, err)
	require.Len(t, byDepartment, 1)
	assert.Equal(t, anna, byDepartment[0].ID)

	byOccupation, err := s.Employees.ListByOccupation(ctx, occ)
	require.NoError(t, err)
	require.Len(t, byOccupation, 1)
	assert.Equal(t, bob, byOccupation[0].ID)
}

func TestCountExisting(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	dep := createDepartment(t, s, "Finance")
	occ := createOccupation(t, s, "Accountant")

	count, err := s.Departments.CountExisting(ctx, []uint{dep, dep + 100})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = s.Occupations.CountExisting(ctx, []uint{occ})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = s.Occupations.CountExisting(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// seeded by the migration
	name, err := s.Settings.Get(ctx, model.SettingCompanyName)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultCompanyName, name)

	require.NoError(t, s.Settings.Set(ctx, model.SettingCompanyName, "ACME GmbH"))
	name, err = s.Settings.Get(ctx, model.SettingCompanyName)
	require.NoError(t, err)
	assert.Equal(t, "ACME GmbH", name)

	_, err = s.Settings.Get(ctx, "missing")
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Users.Create(ctx, &model.User{Username: "anna", Password: "hash", Role: model.RoleAuthor}))
	err := s.Users.Create(ctx, &model.User{Username: "anna", Password: "hash", Role: model.RoleAuthor})
	assert.Equal(t, apperror.CodeConflict, apperror.GetCode(err))

	user, err := s.Users.FindByUsername(ctx, "anna")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAuthor, user.Role)

	_, err = s.Users.FindByUsername(ctx, "bob")
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.Transaction(ctx, func(tx *Store) error {
		if _, err := tx.Departments.Persist(ctx, &model.Department{Name: "Temp"}); err != nil {
			return err
		}
		return apperror.New(apperror.CodeValidation, "abort")
	})
	require.Error(t, err)

	departments, err := s.Departments.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, departments)
}

func TestDedupIDs(t *testing.T) {
	assert.Equal(t, []uint{3, 1, 2}, DedupIDs([]uint{3, 1, 3, 0, 2, 1}))
	assert.Empty(t, DedupIDs(nil))
}
