package system

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"gorm.io/gorm"
)

// DefaultCurrencies are the currencies offered by the setup wizard.
var DefaultCurrencies = []string{"btc", "eth", "usdt", "trx"}

// ErrInvalidCurrency is returned for currency codes that are not short lower case alphanumerics.
var ErrInvalidCurrency = errors.New("invalid currency code")

// Gateway is one receiving address of a currency.
type Gateway struct {
	Enabled bool   `json:"enabled"`
	Address string `json:"address" validate:"omitempty,printascii,max=128"`
}

// PaymentGateways holds the receiving addresses keyed by lower case currency code.
// Only the currencies present are stored.
type PaymentGateways map[string]Gateway

// CurrencyError reports the currency whose gateway was rejected.
type CurrencyError struct {
	Currency string
	Err      error
}

func (e *CurrencyError) Error() string {
	return fmt.Sprintf("currency %s: %v", e.Currency, e.Err)
}

func (e *CurrencyError) Unwrap() error {
	return e.Err
}

// DefaultPaymentGateways returns every default currency enabled without an address.
func DefaultPaymentGateways() PaymentGateways {
	p := make(PaymentGateways, len(DefaultCurrencies))
	for _, code := range DefaultCurrencies {
		p[code] = Gateway{Enabled: true}
	}

	return p
}

// Validate checks the currency codes and the address formats.
func (p PaymentGateways) Validate() error {
	for _, code := range slices.Sorted(maps.Keys(p)) {
		if err := validate.Var(code, "required,alphanum,lowercase,max=16"); err != nil {
			return &CurrencyError{Currency: code, Err: ErrInvalidCurrency}
		}

		if err := validate.Struct(p[code]); err != nil {
			return &CurrencyError{Currency: code, Err: err}
		}
	}

	return nil
}

// Load loads the gateways.
func (p *PaymentGateways) Load(db *gorm.DB) error {
	return loadJSON(db, KeyPaymentGateways, p)
}

// Save validates and stores the gateways as given.
func (p PaymentGateways) Save(db *gorm.DB) error {
	if err := p.Validate(); err != nil {
		return err
	}

	return storeJSON(db, KeyPaymentGateways, GroupPayment, p)
}
