package system

import (
	"slices"

	"gorm.io/gorm"
)

// AdminRegistry is the set of administrator emails, stored as a JSON array.
type AdminRegistry []string

// Load loads the registry. A missing row yields setting.ErrSettingNotFound.
func (r *AdminRegistry) Load(db *gorm.DB) error {
	var emails []string
	if err := loadJSON(db, KeyAdminUsers, &emails); err != nil {
		return err
	}

	*r = emails

	return nil
}

// Save replaces the stored registry.
func (r AdminRegistry) Save(db *gorm.DB) error {
	if r == nil {
		r = AdminRegistry{}
	}

	return storeJSON(db, KeyAdminUsers, GroupSystem, []string(r))
}

// Contains reports exact, case-sensitive membership of email.
func (r AdminRegistry) Contains(email string) bool {
	if email == "" {
		return false
	}

	return slices.Contains(r, email)
}
