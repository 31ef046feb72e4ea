package setup

import (
	"context"
	"maps"

	"github.com/CryptoYield/CryptoYield/internal/db/controller/system"
)

// Stage is a step of the setup wizard.
type Stage string

// Wizard stages in order, then the terminal StageComplete.
const (
	StageAdmin    Stage = "admin"
	StageSite     Stage = "site"
	StageEmail    Stage = "email"
	StagePayment  Stage = "payment"
	StageComplete Stage = "complete"
)

var stages = []Stage{StageAdmin, StageSite, StageEmail, StagePayment}

// AdminForm is the first stage of the wizard.
type AdminForm struct {
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate checks the form the way the setup page does, including the confirmation.
func (f *AdminForm) Validate() error {
	switch {
	case f.Email == "":
		return ErrEmailRequired
	case f.Password == "":
		return ErrPasswordRequired
	case f.Password != f.ConfirmPassword:
		return ErrPasswordMismatch
	case len(f.Password) < MinPasswordLen:
		return ErrPasswordTooShort
	}

	return nil
}

// Submitter submits an assembled request, usually a *Service.
type Submitter interface {
	Submit(ctx context.Context, req Request) (*Result, error)
}

// Wizard walks the four setup stages and assembles the submit request.
type Wizard struct {
	Admin   AdminForm
	Site    system.SiteSettings
	Email   system.EmailSettings
	Payment system.PaymentGateways

	index    int
	complete bool
}

// NewWizard returns a wizard on the first stage with the form defaults.
func NewWizard() *Wizard {
	return &Wizard{
		Site: system.SiteSettings{}.WithDefaults(),
		Payment: system.DefaultPaymentGateways(),
	}
}

// Stage returns the current stage.
func (w *Wizard) Stage() Stage {
	if w.complete {
		return StageComplete
	}

	return stages[w.index]
}

// CanGoBack reports whether Previous is allowed.
func (w *Wizard) CanGoBack() bool {
	return !w.complete && w.index > 0
}

// IsFinal reports whether the forward action is Submit.
func (w *Wizard) IsFinal() bool {
	return !w.complete && w.index == len(stages)-1
}

// Next moves to the following stage. The admin stage must be valid to leave it.
func (w *Wizard) Next() error {
	switch {
	case w.complete:
		return ErrComplete
	case w.IsFinal():
		return ErrFinalStage
	}

	if w.Stage() == StageAdmin {
		if err := w.Admin.Validate(); err != nil {
			return err
		}
	}

	w.index++

	return nil
}

// Previous moves to the preceding stage.
func (w *Wizard) Previous() error {
	if w.complete {
		return ErrComplete
	}

	if !w.CanGoBack() {
		return ErrFirstStage
	}

	w.index--

	return nil
}

// Validate checks every stage.
func (w *Wizard) Validate() error {
	if err := w.Admin.Validate(); err != nil {
		return err
	}

	req := w.Request()

	return req.Validate()
}

// Request assembles the submit request from the stage forms.
func (w *Wizard) Request() Request {
	email := w.Email

	return Request{
		AdminEmail:      w.Admin.Email,
		AdminPassword:   w.Admin.Password,
		SiteName:        w.Site.Name,
		SiteDescription: w.Site.Description,
		EmailSettings:   &email,
		PaymentGateways: maps.Clone(w.Payment),
	}
}

// Submit validates and submits from the final stage; on success the wizard is complete.
func (w *Wizard) Submit(ctx context.Context, s Submitter) (*Result, error) {
	if w.complete {
		return nil, ErrComplete
	}

	if !w.IsFinal() {
		return nil, ErrNotFinal
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	result, err := s.Submit(ctx, w.Request())
	if err != nil {
		return nil, err
	}

	w.complete = true

	return result, nil
}
