package entity

import (
	"time"

	"github.com/google/uuid"
)

type SettingDataType string

const (
	SettingTypeString SettingDataType = "string"
	SettingTypeInt    SettingDataType = "int"
	SettingTypeFloat  SettingDataType = "float"
	SettingTypeBool   SettingDataType = "bool"
	SettingTypeJSON   SettingDataType = "json"
)

// Setting groups shown as tabs on the admin screen.
const (
	SettingGroupWebsite    = "website"
	SettingGroupCustomJS   = "custom_js"
	SettingGroupChat       = "chat"
	SettingGroupEvaluation = "evaluation"
)

// SiteSetting is one named, typed configuration value. Value and
// DefaultValue hold the decoded JSON representation; DataType constrains
// what writes are accepted.
type SiteSetting struct {
	Id           uuid.UUID
	Name         string // unique, e.g. "title", "custom_js_button_label"
	Group        string
	DataType     SettingDataType
	Value        interface{}
	DefaultValue interface{}
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
