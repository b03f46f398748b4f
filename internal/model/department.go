package model

import "time"

// Department groups employees; its name is unique
type Department struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"department" gorm:"column:department;type:varchar(255);not null;uniqueIndex"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
