package model

// All lists every persisted model in migration order
func All() []interface{} {
	return []interface{}{
		&Setting{},
		&User{},
		&Employee{},
		&Department{},
		&Occupation{},
		&EmployeeDepartment{},
		&EmployeeOccupation{},
	}
}
