package setup

import (
	"fmt"
	"strings"

	"github.com/CryptoYield/CryptoYield/internal/db/controller/system"
)

// MinPasswordLen is the minimum length of the administrator password.
const MinPasswordLen = 6

// Request is the body of a setup submission.
type Request struct {
	AdminEmail      string                  `json:"adminEmail"`
	AdminPassword   string                  `json:"adminPassword"`
	SiteName        string                  `json:"siteName,omitempty"`
	SiteDescription string                  `json:"siteDescription,omitempty"`
	EmailSettings   *system.EmailSettings   `json:"emailSettings,omitempty"`
	PaymentGateways system.PaymentGateways  `json:"paymentGateways,omitempty"`
}

// Validate checks the request before anything is read or written.
// The password confirmation is a wizard concern and not part of the request.
func (r *Request) Validate() error {
	if r.AdminEmail == "" || r.AdminPassword == "" {
		return ErrAdminCredentialsRequired
	}

	if len(r.AdminPassword) < MinPasswordLen {
		return ErrPasswordTooShort
	}

	if !system.ValidEmail(r.AdminEmail) {
		return ErrInvalidAdminEmail
	}

	if r.EmailSettings != nil {
		if err := r.EmailSettings.Validate(); err != nil {
			return invalidSettings("email", err)
		}
	}

	if r.PaymentGateways != nil {
		if err := r.PaymentGateways.Validate(); err != nil {
			return invalidSettings("payment", err)
		}
	}

	return nil
}

// Site returns the site settings with defaults applied.
func (r *Request) Site() system.SiteSettings {
	return system.SiteSettings{
		Name:        r.SiteName,
		Description: r.SiteDescription,
	}.WithDefaults()
}

func invalidSettings(kind string, err error) error {
	fields := system.InvalidFields(err)
	if len(fields) == 0 {
		return fmt.Errorf("%w: %s: %w", ErrInvalidSettings, kind, err)
	}

	return fmt.Errorf("%w: %s: %s", ErrInvalidSettings, kind, strings.Join(fields, ", "))
}
