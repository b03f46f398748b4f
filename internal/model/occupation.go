package model

import "time"

// Occupation is a job title with optional gendered forms
type Occupation struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"occupation" gorm:"column:occupation;type:varchar(255);not null;uniqueIndex"`
	MaleForm    string    `json:"male_form" gorm:"type:varchar(255)"`
	FemaleForm  string    `json:"female_form" gorm:"type:varchar(255)"`
	DiverseForm string    `json:"diverse_form" gorm:"type:varchar(255)"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// FormFor returns the title for the given gender, falling back to the generic name when the
// gendered form is blank
func (o Occupation) FormFor(g Gender) string {
	var form string
	switch g {
	case GenderMale:
		form = o.MaleForm
	case GenderFemale:
		form = o.FemaleForm
	case GenderDiverse:
		form = o.DiverseForm
	}
	if form == "" {
		return o.Name
	}
	return form
}
