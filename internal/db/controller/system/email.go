package system

import "gorm.io/gorm"

// EmailSettings is the outgoing mail transport.
// The port is kept as a string the way clients submit it.
type EmailSettings struct {
	Version      int    `json:"version,omitempty"`
	SMTPHost     string `json:"smtp_host"     validate:"omitempty,hostname_rfc1123|ip"`
	SMTPPort     string `json:"smtp_port"     validate:"omitempty,numeric,max=5"`
	SMTPUser     string `json:"smtp_user"`
	SMTPPassword string `json:"smtp_password"`
	FromEmail    string `json:"from_email"    validate:"omitempty,email"`
	FromName     string `json:"from_name"     validate:"max=255"`
}

// Validate checks the field formats.
func (e *EmailSettings) Validate() error {
	return validate.Struct(e)
}

// Load loads the email settings.
func (e *EmailSettings) Load(db *gorm.DB) error {
	return loadJSON(db, KeyEmailSettings, e)
}

// Save validates and stores the settings with the current schema version.
func (e EmailSettings) Save(db *gorm.DB) error {
	if err := e.Validate(); err != nil {
		return err
	}

	e.Version = schemaVersion

	return storeJSON(db, KeyEmailSettings, GroupEmail, e)
}
