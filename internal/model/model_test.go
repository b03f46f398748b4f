package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGender(t *testing.T) {
	cases := map[string]Gender{
		"male":      GenderMale,
		" Female ":  GenderFemale,
		"DIVERSE":   GenderDiverse,
		"undefined": GenderUndefined,
		"":          GenderUndefined,
		"robot":     GenderUndefined,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseGender(raw), "raw=%q", raw)
	}
}

func TestOccupationFormFor(t *testing.T) {
	occ := Occupation{Name: "Nurse", MaleForm: "Pfleger", FemaleForm: "Pflegerin"}

	assert.Equal(t, "Pfleger", occ.FormFor(GenderMale))
	assert.Equal(t, "Pflegerin", occ.FormFor(GenderFemale))
	// blank gendered forms fall back to the generic name
	assert.Equal(t, "Nurse", occ.FormFor(GenderDiverse))
	assert.Equal(t, "Nurse", occ.FormFor(GenderUndefined))
}

func TestLocalPart(t *testing.T) {
	assert.Equal(t, "anna.muster", LocalPart("Anna.Muster@Example.com"))
	assert.Equal(t, "anna.muster", LocalPart("  anna.muster "))
	assert.Equal(t, "", LocalPart("@example.com"))
}

func TestEmployeeDetailTitlesAndIDs(t *testing.T) {
	detail := EmployeeDetail{
		Employee: Employee{ID: 7, FirstName: "Anna", LastName: "Muster", Gender: GenderFemale},
		Departments: []Department{
			{ID: 1, Name: "Finance"},
			{ID: 2, Name: "IT"},
		},
		Occupations: []Occupation{
			{ID: 3, Name: "Accountant", FemaleForm: "Buchhalterin"},
			{ID: 4, Name: "Trainer"},
		},
	}

	assert.Equal(t, []uint{1, 2}, detail.DepartmentIDs())
	assert.Equal(t, []uint{3, 4}, detail.OccupationIDs())
	assert.Equal(t, []string{"Buchhalterin", "Trainer"}, detail.Titles())
	assert.Equal(t, "Anna Muster", detail.FullName())
}
