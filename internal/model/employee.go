package model

import (
	"strings"
	"time"
)

// Gender selects which occupation form is shown for an employee
type Gender string

const (
	GenderMale      Gender = "male"
	GenderFemale    Gender = "female"
	GenderDiverse   Gender = "diverse"
	GenderUndefined Gender = "undefined"
)

// ParseGender normalises a raw form value; anything unknown becomes GenderUndefined
func ParseGender(raw string) Gender {
	switch g := Gender(strings.ToLower(strings.TrimSpace(raw))); g {
	case GenderMale, GenderFemale, GenderDiverse:
		return g
	default:
		return GenderUndefined
	}
}

// Employee represents a single directory entry
type Employee struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	FirstName    string    `json:"first_name" gorm:"type:varchar(255);not null"`
	LastName     string    `json:"last_name" gorm:"type:varchar(255);not null"`
	RoomNumber   string    `json:"room_number" gorm:"type:varchar(32)"`
	PhoneNumber  string    `json:"phone_number" gorm:"type:varchar(32)"`
	EmailAddress string    `json:"email_address" gorm:"type:varchar(255);index"`
	ImageURL     string    `json:"image_url" gorm:"type:varchar(255)"`
	Gender       Gender    `json:"gender" gorm:"type:varchar(16);not null;default:'undefined'"`
	Information  string    `json:"information" gorm:"type:varchar(512)"`
	PinHash      *string   `json:"-" gorm:"type:varchar(255)"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EmailLocalPart returns the lower-cased part of the email address before the @
func (e Employee) EmailLocalPart() string {
	return LocalPart(e.EmailAddress)
}

// FullName joins first and last name the way mails and listings address people
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// LocalPart lower-cases the input and cuts it at the first @
func LocalPart(address string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(address), "@")
	return strings.ToLower(local)
}

// EmployeeDetail is an employee together with its current associations
type EmployeeDetail struct {
	Employee
	Departments []Department `json:"departments"`
	Occupations []Occupation `json:"occupations"`
}

// DepartmentIDs lists the ids of the associated departments in order
func (d EmployeeDetail) DepartmentIDs() []uint {
	ids := make([]uint, 0, len(d.Departments))
	for _, dep := range d.Departments {
		ids = append(ids, dep.ID)
	}
	return ids
}

// OccupationIDs lists the ids of the associated occupations in order
func (d EmployeeDetail) OccupationIDs() []uint {
	ids := make([]uint, 0, len(d.Occupations))
	for _, occ := range d.Occupations {
		ids = append(ids, occ.ID)
	}
	return ids
}

// Titles renders every associated occupation in the form matching the employee's gender
func (d EmployeeDetail) Titles() []string {
	titles := make([]string, 0, len(d.Occupations))
	for _, occ := range d.Occupations {
		titles = append(titles, occ.FormFor(d.Gender))
	}
	return titles
}
