package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type Profile struct {
	UserID      string `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	DisplayName string `gorm:"column:display_name;type:text" json:"display_name"`

	PreferredSubjects pq.StringArray `gorm:"column:preferred_subjects;type:text[]" json:"preferred_subjects"`

	// JSONB (raw JSON, flexible structure: study hours, target grades, ...)
	Preferences datatypes.JSON `gorm:"column:preferences;type:jsonb" json:"preferences"`

	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }
