package model

// AssociationKind names one of the two employee link tables
type AssociationKind string

const (
	KindDepartment AssociationKind = "department"
	KindOccupation AssociationKind = "occupation"
)

// EmployeeDepartment links an employee to a department
type EmployeeDepartment struct {
	EmployeeID   uint `gorm:"primaryKey;autoIncrement:false"`
	DepartmentID uint `gorm:"primaryKey;autoIncrement:false;index"`
}

// EmployeeOccupation links an employee to an occupation
type EmployeeOccupation struct {
	EmployeeID   uint `gorm:"primaryKey;autoIncrement:false"`
	OccupationID uint `gorm:"primaryKey;autoIncrement:false;index"`
}
