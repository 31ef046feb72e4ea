package system

import (
	"errors"

	"gorm.io/gorm"

	"github.com/CryptoYield/CryptoYield/internal/db/controller/setting"
)

// Site defaults.
const (
	DefaultSiteName        = "CryptoYield"
	DefaultSiteDescription = "Cryptocurrency Mining and Investment Platform"
)

// SiteSettings is the public site metadata.
type SiteSettings struct {
	Name        string `json:"siteName"        validate:"max=255"`
	Description string `json:"siteDescription" validate:"max=1024"`
}

// WithDefaults fills empty fields with the site defaults.
func (s SiteSettings) WithDefaults() SiteSettings {
	if s.Name == "" {
		s.Name = DefaultSiteName
	}
	if s.Description == "" {
		s.Description = DefaultSiteDescription
	}

	return s
}

// Load loads the site settings; missing rows keep the defaults.
func (s *SiteSettings) Load(db *gorm.DB) error {
	out := SiteSettings{}

	for key, dst := range map[string]*string{
		KeySiteName:        &out.Name,
		KeySiteDescription: &out.Description,
	} {
		row, err := setting.Get(db, key)
		if err != nil {
			if errors.Is(err, setting.ErrSettingNotFound) {
				continue
			}

			return err
		}

		*dst = row.StringValue()
	}

	*s = out.WithDefaults()

	return nil
}

// Save stores both keys as public general settings.
func (s SiteSettings) Save(db *gorm.DB) error {
	if err := validate.Struct(s); err != nil {
		return err
	}

	s = s.WithDefaults()

	if err := store(db, KeySiteName, GroupGeneral, true, s.Name); err != nil {
		return err
	}

	return store(db, KeySiteDescription, GroupGeneral, true, s.Description)
}
