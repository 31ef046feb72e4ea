package system

import (
	"encoding/json"
	"errors"
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CryptoYield/CryptoYield/internal/db/controller/setting"
	"github.com/CryptoYield/CryptoYield/internal/db/models"
	"github.com/CryptoYield/CryptoYield/internal/testutil"
)

func TestReadState(t *testing.T) {
	testCases := []struct {
		name     string
		value    *string
		seed     bool
		expected State
	}{
		{name: "no row", expected: Uninitialized},
		{name: "true", seed: true, value: models.StringPtr("true"), expected: Initialized},
		{name: "false", seed: true, value: models.StringPtr("false"), expected: Uninitialized},
		{name: "upper case", seed: true, value: models.StringPtr("TRUE"), expected: Uninitialized},
		{name: "json true", seed: true, value: models.StringPtr(`"true"`), expected: Uninitialized},
		{name: "null value", seed: true, expected: Uninitialized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := testutil.NewDB(t)
			if tc.seed {
				require.NoError(t, db.Create(&models.Setting{Key: KeyInitialized, Value: tc.value}).Error)
			}

			state, err := ReadState(db)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, state)
			assert.Equal(t, tc.expected, LoadState(db))
			assert.Equal(t, tc.expected == Initialized, IsInitialized(db))
		})
	}
}

func TestLoadStateReadFailure(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, Initialized.Save(db))

	boom := errors.New("connection reset")
	restore := testutil.FailOn(t, db, "query", models.Setting{}.TableName(), boom)

	_, err := ReadState(db)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, Uninitialized, LoadState(db))
	assert.False(t, IsInitialized(db))

	restore()
	assert.True(t, IsInitialized(db))
}

func TestStateSave(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, Initialized.Save(db))
	s, err := setting.Get(db, KeyInitialized)
	require.NoError(t, err)
	assert.Equal(t, "true", s.StringValue())
	assert.Equal(t, GroupSystem, *s.Group)
	assert.False(t, s.IsPublic)

	require.NoError(t, Uninitialized.Save(db))
	assert.Equal(t, Uninitialized, LoadState(db))
	assert.Equal(t, "uninitialized", Uninitialized.String())
	assert.Equal(t, "initialized", Initialized.String())
}

func TestAdminRegistry(t *testing.T) {
	db := testutil.NewDB(t)

	var missing AdminRegistry
	require.ErrorIs(t, missing.Load(db), setting.ErrSettingNotFound)

	require.NoError(t, AdminRegistry{"admin@example.com"}.Save(db))

	s, err := setting.Get(db, KeyAdminUsers)
	require.NoError(t, err)
	assert.JSONEq(t, `["admin@example.com"]`, s.StringValue())

	var registry AdminRegistry
	require.NoError(t, registry.Load(db))

	testCases := []struct {
		email    string
		expected bool
	}{
		{"admin@example.com", true},
		{"Admin@example.com", false},
		{"admin@example.com ", false},
		{"other@example.com", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.email, func(t *testing.T) {
			assert.Equal(t, tc.expected, registry.Contains(tc.email))
		})
	}
}

func TestAdminRegistryInvalidJSON(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, db.Create(&models.Setting{Key: KeyAdminUsers, Value: models.StringPtr("admin@example.com")}).Error)

	var registry AdminRegistry
	require.Error(t, registry.Load(db))
}

func TestSiteSettings(t *testing.T) {
	db := testutil.NewDB(t)

	var defaults SiteSettings
	require.NoError(t, defaults.Load(db))
	assert.Equal(t, DefaultSiteName, defaults.Name)
	assert.Equal(t, DefaultSiteDescription, defaults.Description)

	require.NoError(t, SiteSettings{Name: "Yield"}.Save(db))

	var loaded SiteSettings
	require.NoError(t, loaded.Load(db))
	assert.Equal(t, "Yield", loaded.Name)
	assert.Equal(t, DefaultSiteDescription, loaded.Description)

	general, err := setting.GetByGroup(db, GroupGeneral)
	require.NoError(t, err)
	require.Len(t, general, 2)
	for _, s := range general {
		assert.True(t, s.IsPublic, s.Key)
	}
}

func TestEmailSettings(t *testing.T) {
	db := testutil.NewDB(t)

	in := EmailSettings{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     "587",
		SMTPUser:     "mailer",
		SMTPPassword: "secret",
		FromEmail:    "noreply@example.com",
		FromName:     "CryptoYield",
	}
	require.NoError(t, in.Save(db))

	s, err := setting.Get(db, KeyEmailSettings)
	require.NoError(t, err)
	assert.Equal(t, GroupEmail, *s.Group)

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(s.StringValue()), &raw))
	assert.Equal(t, "587", raw["smtp_port"])
	assert.Equal(t, "smtp.example.com", raw["smtp_host"])
	assert.InDelta(t, float64(schemaVersion), raw["version"], 0)

	var out EmailSettings
	require.NoError(t, out.Load(db))
	in.Version = schemaVersion
	assert.Equal(t, in, out)
}

func TestEmailSettingsValidate(t *testing.T) {
	testCases := []struct {
		name    string
		in      EmailSettings
		wantErr bool
	}{
		{name: "empty", in: EmailSettings{}},
		{name: "ip host", in: EmailSettings{SMTPHost: "10.0.0.1", SMTPPort: "25"}},
		{name: "bad port", in: EmailSettings{SMTPPort: "smtp"}, wantErr: true},
		{name: "bad from", in: EmailSettings{FromEmail: "not-an-email"}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestPaymentGateways(t *testing.T) {
	db := testutil.NewDB(t)

	in := PaymentGateways{
		"btc": {Enabled: true, Address: "bc1qexample"},
		"eth": {Enabled: true, Address: "0xabc"},
		"ltc": {Enabled: false, Address: "ltc1qexample"},
	}
	require.NoError(t, in.Save(db))

	s, err := setting.Get(db, KeyPaymentGateways)
	require.NoError(t, err)
	assert.Equal(t, GroupPayment, *s.Group)
	assert.False(t, s.IsPublic)
	// stored as sent, nothing added for the currencies left out
	assert.JSONEq(t, `{
		"btc": {"enabled": true, "address": "bc1qexample"},
		"eth": {"enabled": true, "address": "0xabc"},
		"ltc": {"enabled": false, "address": "ltc1qexample"}
	}`, s.StringValue())

	var out PaymentGateways
	require.NoError(t, out.Load(db))
	assert.Equal(t, in, out)

	bad := PaymentGateways{"btc": {Address: "bc1q\texample"}}
	require.Error(t, bad.Save(db))
}

func TestPaymentGatewaysValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      PaymentGateways
		wantErr error
	}{
		{"nil", nil, nil},
		{"empty", PaymentGateways{}, nil},
		{"unlisted currency", PaymentGateways{"xmr": {Enabled: true}}, nil},
		{"upper case code", PaymentGateways{"BTC": {Enabled: true}}, ErrInvalidCurrency},
		{"empty code", PaymentGateways{"": {Enabled: true}}, ErrInvalidCurrency},
		{"code with separator", PaymentGateways{"usdt-trc20": {}}, ErrInvalidCurrency},
		{"long code", PaymentGateways{"abcdefghijklmnopq": {}}, ErrInvalidCurrency},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDefaultPaymentGateways(t *testing.T) {
	p := DefaultPaymentGateways()
	assert.ElementsMatch(t, DefaultCurrencies, slices.Collect(maps.Keys(p)))

	for code, gw := range p {
		assert.True(t, gw.Enabled, code)
		assert.Empty(t, gw.Address, code)
	}

	// callers get their own copy
	p["btc"] = Gateway{}
	assert.True(t, DefaultPaymentGateways()["btc"].Enabled)
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"admin@example.com", true},
		{"first.last+tag@sub.example.org", true},
		{"", false},
		{"admin", false},
		{"admin@", false},
		{"Admin <admin@example.com>", false},
		{"<admin@example.com>", false},
		{" admin@example.com", false},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidEmail(tc.in))
		})
	}
}

func TestInvalidFields(t *testing.T) {
	err := PaymentGateways{"btc": {Address: "bad\taddress"}}.Validate()
	assert.Equal(t, []string{"btc.address"}, InvalidFields(err))

	err = PaymentGateways{"BTC": {}}.Validate()
	assert.Equal(t, []string{"BTC"}, InvalidFields(err))

	err = (&EmailSettings{SMTPPort: "x", FromEmail: "nope"}).Validate()
	assert.ElementsMatch(t, []string{"smtp_port", "from_email"}, InvalidFields(err))

	assert.Nil(t, InvalidFields(errors.New("other")))
	assert.Nil(t, InvalidFields(nil))
}
