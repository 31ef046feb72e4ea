package setup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CryptoYield/CryptoYield/internal/db/controller/system"
)

type submitFunc func(ctx context.Context, req Request) (*Result, error)

func (f submitFunc) Submit(ctx context.Context, req Request) (*Result, error) {
	return f(ctx, req)
}

func validAdmin() AdminForm {
	return AdminForm{Email: "admin@example.com", Password: "secret123", ConfirmPassword: "secret123"}
}

func TestAdminFormValidate(t *testing.T) {
	testCases := []struct {
		name    string
		form    AdminForm
		wantErr error
	}{
		{name: "valid", form: validAdmin()},
		{name: "no email", form: AdminForm{Password: "secret123", ConfirmPassword: "secret123"}, wantErr: ErrEmailRequired},
		{name: "no password", form: AdminForm{Email: "a@example.com"}, wantErr: ErrPasswordRequired},
		{name: "mismatch", form: AdminForm{Email: "a@example.com", Password: "secret123", ConfirmPassword: "secret124"}, wantErr: ErrPasswordMismatch},
		{name: "short", form: AdminForm{Email: "a@example.com", Password: "abc", ConfirmPassword: "abc"}, wantErr: ErrPasswordTooShort},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.form.Validate()
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestWizardTransitions(t *testing.T) {
	w := NewWizard()

	assert.Equal(t, StageAdmin, w.Stage())
	assert.False(t, w.CanGoBack())
	assert.False(t, w.IsFinal())
	require.ErrorIs(t, w.Previous(), ErrFirstStage)

	// the admin stage can not be left with an invalid form
	require.ErrorIs(t, w.Next(), ErrEmailRequired)
	assert.Equal(t, StageAdmin, w.Stage())

	w.Admin = validAdmin()
	require.NoError(t, w.Next())
	assert.Equal(t, StageSite, w.Stage())
	assert.True(t, w.CanGoBack())

	require.NoError(t, w.Next())
	assert.Equal(t, StageEmail, w.Stage())

	require.NoError(t, w.Previous())
	assert.Equal(t, StageSite, w.Stage())

	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	assert.Equal(t, StagePayment, w.Stage())
	assert.True(t, w.IsFinal())
	require.ErrorIs(t, w.Next(), ErrFinalStage)
}

func TestWizardDefaults(t *testing.T) {
	w := NewWizard()

	assert.Equal(t, "CryptoYield", w.Site.Name)
	assert.Equal(t, "Cryptocurrency Mining and Investment Platform", w.Site.Description)

	assert.Equal(t, system.DefaultPaymentGateways(), w.Payment)
}

func TestWizardSubmit(t *testing.T) {
	w := NewWizard()
	w.Admin = validAdmin()

	var got Request
	submitter := submitFunc(func(_ context.Context, req Request) (*Result, error) {
		got = req
		return &Result{}, nil
	})

	_, err := w.Submit(context.Background(), submitter)
	require.ErrorIs(t, err, ErrNotFinal)

	for !w.IsFinal() {
		require.NoError(t, w.Next())
	}

	w.Email.SMTPHost = "smtp.example.com"
	w.Payment["btc"] = system.Gateway{Enabled: true, Address: "bc1qexample"}
	delete(w.Payment, "trx")

	_, err = w.Submit(context.Background(), submitter)
	require.NoError(t, err)

	assert.Equal(t, StageComplete, w.Stage())
	assert.False(t, w.CanGoBack())
	assert.False(t, w.IsFinal())
	require.ErrorIs(t, w.Next(), ErrComplete)
	require.ErrorIs(t, w.Previous(), ErrComplete)

	assert.Equal(t, "admin@example.com", got.AdminEmail)
	assert.Equal(t, "secret123", got.AdminPassword)
	assert.Equal(t, "CryptoYield", got.SiteName)
	require.NotNil(t, got.EmailSettings)
	assert.Equal(t, "smtp.example.com", got.EmailSettings.SMTPHost)
	require.NotNil(t, got.PaymentGateways)
	assert.Equal(t, "bc1qexample", got.PaymentGateways["btc"].Address)
	assert.NotContains(t, got.PaymentGateways, "trx")

	// the request owns its gateways
	w.Payment["eth"] = system.Gateway{}
	assert.True(t, got.PaymentGateways["eth"].Enabled)
}

func TestWizardSubmitFailureStaysOnStage(t *testing.T) {
	w := NewWizard()
	w.Admin = validAdmin()

	for !w.IsFinal() {
		require.NoError(t, w.Next())
	}

	boom := errors.New("System is already initialized")
	_, err := w.Submit(context.Background(), submitFunc(func(context.Context, Request) (*Result, error) {
		return nil, boom
	}))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, StagePayment, w.Stage())
	assert.True(t, w.CanGoBack())
}

func TestWizardSubmitChecksConfirmation(t *testing.T) {
	w := NewWizard()
	w.Admin = validAdmin()

	for !w.IsFinal() {
		require.NoError(t, w.Next())
	}

	w.Admin.ConfirmPassword = "changed"

	called := false
	_, err := w.Submit(context.Background(), submitFunc(func(context.Context, Request) (*Result, error) {
		called = true
		return &Result{}, nil
	}))
	require.ErrorIs(t, err, ErrPasswordMismatch)
	assert.False(t, called)
}
