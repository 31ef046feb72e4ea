package models

// Setting represents one key/value configuration row.
// The schema of Value is implied by Key and not enforced by the store.
type Setting struct {
	Base
	// Key is globally unique, e.g. system_initialized or system_backup_<timestamp>.
	Key string `gorm:"column:setting_key;size:255;uniqueIndex;not null" json:"setting_key"`
	// Value holds a plain string or a JSON document. nil is stored as NULL.
	Value *string `gorm:"column:setting_value;size:4294967295" json:"setting_value"`
	// Group clusters related keys (system, general, email, payment, backups, locks).
	Group *string `gorm:"column:setting_group;size:100;index" json:"setting_group"`
	// IsPublic marks settings that may be exposed to anonymous clients.
	IsPublic bool `gorm:"not null" json:"is_public"`
}

// TableName specifies the database table name for the Setting model.
func (Setting) TableName() string {
	return "system_settings"
}

// StringValue returns the value or "" for NULL.
func (s *Setting) StringValue() string {
	if s == nil || s.Value == nil {
		return ""
	}

	return *s.Value
}

// StringPtr returns a pointer to s, for the nullable string columns.
func StringPtr(s string) *string {
	return &s
}
