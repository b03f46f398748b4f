package model

import "time"

const (
	SettingCompanyName = "company_name"

	DefaultCompanyName = "Company Name"
)

// Setting is a process-wide key/value pair
type Setting struct {
	Key       string    `json:"setting" gorm:"column:setting;size:64;primaryKey"`
	Value     string    `json:"value" gorm:"type:varchar(255);not null"`
	UpdatedAt time.Time `json:"updated_at"`
}
