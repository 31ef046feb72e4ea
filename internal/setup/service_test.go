package setup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/CryptoYield/CryptoYield/internal/auth"
	"github.com/CryptoYield/CryptoYield/internal/db/controller/catalog"
	"github.com/CryptoYield/CryptoYield/internal/db/controller/setting"
	"github.com/CryptoYield/CryptoYield/internal/db/controller/system"
	"github.com/CryptoYield/CryptoYield/internal/db/models"
	"github.com/CryptoYield/CryptoYield/internal/lock"
	"github.com/CryptoYield/CryptoYield/internal/testutil"
)

type recorder struct {
	setups []string
}

func (r *recorder) Setup(result string) { r.setups = append(r.setups, result) }

func (r *recorder) Reset(string, string) {}

func newService(t *testing.T) (*Service, *gorm.DB, *recorder) {
	t.Helper()

	db := testutil.NewDB(t)
	rec := &recorder{}

	return NewService(db, lock.NewStore(db, time.Minute), rec), db, rec
}

func fullRequest() Request {
	return Request{
		AdminEmail:      "admin@example.com",
		AdminPassword:   "secret123",
		SiteName:        "Yield Farm",
		SiteDescription: "Mining for everyone",
		EmailSettings: &system.EmailSettings{
			SMTPHost:  "smtp.example.com",
			SMTPPort:  "587",
			FromEmail: "noreply@example.com",
			FromName:  "Yield Farm",
		},
		PaymentGateways: system.PaymentGateways{
			"btc":  {Enabled: true, Address: "bc1qexample"},
			"eth":  {Enabled: true, Address: "0xabc"},
			"usdt": {Enabled: false},
			"ltc":  {Enabled: true, Address: "ltc1qexample"},
		},
	}
}

type counts struct {
	accounts, users, settings, plans, packages int64
}

func countRows(t *testing.T, db *gorm.DB) counts {
	t.Helper()

	var c counts
	require.NoError(t, db.Model(&models.Account{}).Count(&c.accounts).Error)
	require.NoError(t, db.Model(&models.User{}).Count(&c.users).Error)
	require.NoError(t, db.Model(&models.Setting{}).Count(&c.settings).Error)
	require.NoError(t, db.Model(&models.InvestmentPlan{}).Count(&c.plans).Error)
	require.NoError(t, db.Model(&models.MiningPackage{}).Count(&c.packages).Error)

	return c
}

func TestRequestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		modify  func(r *Request)
		wantErr error
	}{
		{name: "valid", modify: func(*Request) {}},
		{name: "missing email", modify: func(r *Request) { r.AdminEmail = "" }, wantErr: ErrAdminCredentialsRequired},
		{name: "missing password", modify: func(r *Request) { r.AdminPassword = "" }, wantErr: ErrAdminCredentialsRequired},
		{name: "short password", modify: func(r *Request) { r.AdminPassword = "12345" }, wantErr: ErrPasswordTooShort},
		{name: "six characters", modify: func(r *Request) { r.AdminPassword = "123456" }},
		{name: "bad email", modify: func(r *Request) { r.AdminEmail = "admin" }, wantErr: ErrInvalidAdminEmail},
		{name: "display name email", modify: func(r *Request) { r.AdminEmail = "Admin <admin@example.com>" }, wantErr: ErrInvalidAdminEmail},
		{name: "bad smtp port", modify: func(r *Request) { r.EmailSettings.SMTPPort = "smtp" }, wantErr: ErrInvalidSettings},
		{name: "bad address", modify: func(r *Request) { r.PaymentGateways["eth"] = system.Gateway{Address: "0x\nabc"} }, wantErr: ErrInvalidSettings},
		{name: "bad currency code", modify: func(r *Request) { r.PaymentGateways["BTC"] = system.Gateway{Enabled: true} }, wantErr: ErrInvalidSettings},
		{name: "no gateways", modify: func(r *Request) { r.PaymentGateways = system.PaymentGateways{} }},
		{name: "optional settings omitted", modify: func(r *Request) { r.EmailSettings, r.PaymentGateways = nil, nil }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := fullRequest()
			tc.modify(&req)

			err := req.Validate()
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestInvalidSettingsMessage(t *testing.T) {
	req := fullRequest()
	req.EmailSettings.FromEmail = "nope"

	err := req.Validate()
	require.Error(t, err)
	assert.Equal(t, "Invalid settings: email: from_email", err.Error())

	req = fullRequest()
	req.PaymentGateways["eth"] = system.Gateway{Address: "0x\tabc"}
	req.PaymentGateways["Doge"] = system.Gateway{}

	err = req.Validate()
	require.Error(t, err)
	// currencies are checked in code order
	assert.Equal(t, "Invalid settings: payment: Doge", err.Error())
}

func TestSubmit(t *testing.T) {
	svc, db, rec := newService(t)

	result, err := svc.Submit(context.Background(), fullRequest())
	require.NoError(t, err)
	require.NotNil(t, result.AdminUser)

	admin := result.AdminUser
	assert.Equal(t, "admin@example.com", admin.Email)
	assert.True(t, admin.IsAdmin())
	assert.Equal(t, AdminFullName, admin.Metadata["full_name"])
	assert.NotNil(t, admin.EmailConfirmedAt)
	assert.True(t, admin.VerifyPassword("secret123"))

	assert.Equal(t, system.Initialized, system.LoadState(db))

	var registry system.AdminRegistry
	require.NoError(t, registry.Load(db))
	assert.Equal(t, system.AdminRegistry{"admin@example.com"}, registry)

	var site system.SiteSettings
	require.NoError(t, site.Load(db))
	assert.Equal(t, "Yield Farm", site.Name)
	assert.Equal(t, "Mining for everyone", site.Description)

	var email system.EmailSettings
	require.NoError(t, email.Load(db))
	assert.Equal(t, "smtp.example.com", email.SMTPHost)

	var payment system.PaymentGateways
	require.NoError(t, payment.Load(db))
	assert.Equal(t, fullRequest().PaymentGateways, payment)

	c := countRows(t, db)
	assert.Equal(t, int64(1), c.accounts)
	assert.Equal(t, int64(1), c.users)
	assert.Equal(t, int64(3), c.plans)
	assert.Equal(t, int64(3), c.packages)
	// admin_users, site_name, site_description, system_initialized, email, payment
	assert.Equal(t, int64(6), c.settings)

	plans, err := catalog.Plans(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"Starter", "Advanced", "Professional"}, []string{plans[0].Name, plans[1].Name, plans[2].Name})

	assert.Equal(t, []string{"success"}, rec.setups)
}

func TestSubmitDefaults(t *testing.T) {
	svc, db, _ := newService(t)

	_, err := svc.Submit(context.Background(), Request{AdminEmail: "admin@example.com", AdminPassword: "secret123"})
	require.NoError(t, err)

	var site system.SiteSettings
	require.NoError(t, site.Load(db))
	assert.Equal(t, system.DefaultSiteName, site.Name)
	assert.Equal(t, system.DefaultSiteDescription, site.Description)

	_, err = setting.Get(db, system.KeyEmailSettings)
	require.ErrorIs(t, err, setting.ErrSettingNotFound)

	_, err = setting.Get(db, system.KeyPaymentGateways)
	require.ErrorIs(t, err, setting.ErrSettingNotFound)

	s, err := setting.Get(db, system.KeySiteName)
	require.NoError(t, err)
	assert.True(t, s.IsPublic)

	s, err = setting.Get(db, system.KeyInitialized)
	require.NoError(t, err)
	assert.False(t, s.IsPublic)
	assert.Equal(t, "true", s.StringValue())
}

func TestSubmitRejectsDoubleRun(t *testing.T) {
	svc, db, rec := newService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, fullRequest())
	require.NoError(t, err)

	before := countRows(t, db)
	var settingsBefore []models.Setting
	require.NoError(t, db.Order("id").Find(&settingsBefore).Error)

	second := fullRequest()
	second.AdminEmail = "intruder@example.com"
	second.SiteName = "Taken Over"

	result, err := svc.Submit(ctx, second)
	require.ErrorIs(t, err, ErrAlreadyInitialized)
	assert.Equal(t, "System is already initialized", err.Error())
	assert.Nil(t, result)

	assert.Equal(t, before, countRows(t, db))

	var settingsAfter []models.Setting
	require.NoError(t, db.Order("id").Find(&settingsAfter).Error)
	assert.Equal(t, settingsBefore, settingsAfter)

	_, err = auth.NewLocalProvider(db).Authenticate("intruder@example.com", "secret123")
	require.ErrorIs(t, err, auth.ErrUserNotFound)

	assert.Equal(t, []string{"success", "rejected"}, rec.setups)
}

func TestSubmitValidationWritesNothing(t *testing.T) {
	svc, db, rec := newService(t)

	_, err := svc.Submit(context.Background(), Request{AdminEmail: "admin@example.com"})
	require.ErrorIs(t, err, ErrAdminCredentialsRequired)
	assert.Equal(t, "Admin email and password are required", err.Error())

	assert.Equal(t, counts{}, countRows(t, db))
	assert.Equal(t, []string{"rejected"}, rec.setups)
}

func TestSubmitRollsBackOnFailure(t *testing.T) {
	svc, db, rec := newService(t)

	boom := errors.New("disk full")
	testutil.FailOn(t, db, "create", models.MiningPackage{}.TableName(), boom)

	_, err := svc.Submit(context.Background(), fullRequest())
	require.ErrorIs(t, err, boom)

	// the administrator, settings and plans written before the failure are gone
	assert.Equal(t, counts{}, countRows(t, db))
	assert.Equal(t, system.Uninitialized, system.LoadState(db))
	assert.Equal(t, []string{"failure"}, rec.setups)
}

func TestSubmitCreateAdminFailure(t *testing.T) {
	svc, db, _ := newService(t)

	// an account left behind by an earlier installation
	_, err := auth.CreateAccount(db, auth.NewAccount{Email: "admin@example.com", Password: "old-password"})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), fullRequest())
	require.ErrorIs(t, err, ErrCreateAdmin)
	require.ErrorIs(t, err, auth.ErrEmailExists)
	assert.Equal(t, "Failed to create admin user: "+auth.ErrEmailExists.Error(), err.Error())

	assert.Equal(t, system.Uninitialized, system.LoadState(db))
}

func TestSubmitInProgress(t *testing.T) {
	svc, db, _ := newService(t)
	ctx := context.Background()

	lease, err := lock.NewStore(db, time.Minute).Acquire(ctx, lock.NameSetup)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, fullRequest())
	require.ErrorIs(t, err, ErrInProgress)

	require.NoError(t, lease.Release(ctx))

	_, err = svc.Submit(ctx, fullRequest())
	require.NoError(t, err)

	// the lease is released after a submit
	locks, err := setting.GetByGroup(db, system.GroupLocks)
	require.NoError(t, err)
	assert.Empty(t, locks)
}
