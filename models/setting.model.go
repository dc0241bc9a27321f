package models

import "gorm.io/gorm"

// SystemSetting is a key/value pair editable by admins at runtime.
type SystemSetting struct {
	gorm.Model
	SettingKey   string `json:"setting_key" gorm:"unique;not null"`
	SettingValue string `json:"setting_value" gorm:"type:text"`
	Description  string `json:"description" gorm:"type:text"`
}
