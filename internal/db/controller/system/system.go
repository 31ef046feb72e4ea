// Package system holds the typed system configuration records persisted in the settings store.
//
// Every record keeps its historical setting key so existing rows stay readable:
//
//	system_initialized  State            group system
//	admin_users         AdminRegistry    group system
//	site_name           SiteSettings     group general, public
//	site_description    SiteSettings     group general, public
//	email_settings      EmailSettings    group email
//	payment_gateways    PaymentGateways  group payment
package system

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/CryptoYield/CryptoYield/internal/db/controller/setting"
	"github.com/CryptoYield/CryptoYield/internal/db/models"
)

// Setting keys.
const (
	KeyInitialized     = "system_initialized"
	KeyAdminUsers      = "admin_users"
	KeySiteName        = "site_name"
	KeySiteDescription = "site_description"
	KeyEmailSettings   = "email_settings"
	KeyPaymentGateways = "payment_gateways"
)

// Setting groups.
const (
	GroupSystem  = "system"
	GroupGeneral = "general"
	GroupEmail   = "email"
	GroupPayment = "payment"
	GroupBackups = "backups"
	GroupLocks   = "locks"
)

// schemaVersion is written into the versioned JSON records.
const schemaVersion = 1

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// ValidEmail reports whether s is a bare email address without display name.
func ValidEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// InvalidFields lists the JSON paths of the fields rejected in a validation error,
// e.g. "btc.address". It returns nil for other errors.
func InvalidFields(err error) []string {
	var ce *CurrencyError
	if errors.As(err, &ce) {
		fields := InvalidFields(ce.Err)
		if fields == nil {
			return []string{ce.Currency}
		}

		for i := range fields {
			fields[i] = ce.Currency + "." + fields[i]
		}

		return fields
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	out := make([]string, 0, len(ve))
	for _, fe := range ve {
		_, path, found := strings.Cut(fe.Namespace(), ".")
		if !found {
			path = fe.Field()
		}

		out = append(out, path)
	}

	return out
}

// store writes value under key with the given group and visibility.
func store(db *gorm.DB, key, group string, public bool, value string) error {
	_, err := setting.Set(db, models.Setting{
		Key:      key,
		Value:    models.StringPtr(value),
		Group:    models.StringPtr(group),
		IsPublic: public,
	})

	return err
}

// storeJSON marshals v and stores it under key.
func storeJSON(db *gorm.DB, key, group string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return store(db, key, group, false, string(data))
}

// loadJSON reads key and unmarshals its value into v.
func loadJSON(db *gorm.DB, key string, v any) error {
	s, err := setting.Get(db, key)
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(s.StringValue()), v)
}
