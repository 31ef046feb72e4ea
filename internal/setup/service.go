// Package setup implements the first run setup workflow.
//
// Submit provisions the administrator, the site, email and payment settings and the
// default catalog in one transaction and flips the system to Initialized. Nothing is
// visible unless every step succeeded.
package setup

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/CryptoYield/CryptoYield/internal/auth"
	"github.com/CryptoYield/CryptoYield/internal/db/controller/catalog"
	"github.com/CryptoYield/CryptoYield/internal/db/controller/system"
	"github.com/CryptoYield/CryptoYield/internal/db/models"
	"github.com/CryptoYield/CryptoYield/internal/lock"
	"github.com/CryptoYield/CryptoYield/internal/metrics"
)

// AdminFullName is the full_name metadata of the administrator created by setup.
const AdminFullName = "System Administrator"

// Result is returned by a successful Submit.
type Result struct {
	AdminUser *models.Account `json:"adminUser"`
}

// Service runs setup submissions.
type Service struct {
	db       *gorm.DB
	locker   lock.Locker
	observer metrics.Observer
}

// NewService creates a new setup service.
func NewService(db *gorm.DB, locker lock.Locker, observer metrics.Observer) *Service {
	return &Service{db: db, locker: locker, observer: observer}
}

// Submit validates req and provisions the system.
func (s *Service) Submit(ctx context.Context, req Request) (*Result, error) {
	result, err := s.submit(ctx, req)

	switch {
	case err == nil:
		s.observer.Setup(metrics.ResultSuccess)
	case errors.Is(err, ErrAlreadyInitialized), errors.Is(err, ErrInProgress), isValidation(err):
		s.observer.Setup(metrics.ResultRejected)
	default:
		s.observer.Setup(metrics.ResultFailure)
	}

	return result, err
}

func (s *Service) submit(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	// cheap rejection without touching the lease
	state, err := system.ReadState(db)
	if err != nil {
		return nil, fmt.Errorf("failed to read initialization state: %w", err)
	}

	if state == system.Initialized {
		log.Warn().Str("admin", req.AdminEmail).Msg("setup rejected, system is already initialized")
		return nil, ErrAlreadyInitialized
	}

	lease, err := s.locker.Acquire(ctx, lock.NameSetup)
	if err != nil {
		if errors.Is(err, lock.ErrLocked) {
			return nil, ErrInProgress
		}

		return nil, err
	}

	defer func() {
		if errRelease := lease.Release(context.WithoutCancel(ctx)); errRelease != nil {
			log.Error().Err(errRelease).Str("lease", lock.NameSetup).Msg("failed to release lease")
		}
	}()

	var admin *models.Account

	err = db.Transaction(func(tx *gorm.DB) error {
		state, errTx := system.ReadState(tx)
		if errTx != nil {
			return fmt.Errorf("failed to read initialization state: %w", errTx)
		}

		if state == system.Initialized {
			return ErrAlreadyInitialized
		}

		admin, errTx = auth.CreateAccount(tx, auth.NewAccount{
			Email:         req.AdminEmail,
			Password:      req.AdminPassword,
			FullName:      AdminFullName,
			Admin:         true,
			EmailVerified: true,
		})
		if errTx != nil {
			return fmt.Errorf("%w: %w", ErrCreateAdmin, errTx)
		}

		log.Info().Str("admin", admin.Email).Str("id", admin.ID).Msg("created administrator")

		return provision(tx, req)
	})
	if err != nil {
		log.Error().Err(err).Str("admin", req.AdminEmail).Msg("setup failed, nothing was written")
		return nil, err
	}

	log.Info().Str("admin", admin.Email).Msg("system setup completed")

	return &Result{AdminUser: admin}, nil
}

// provision writes everything but the administrator account.
func provision(tx *gorm.DB, req Request) error {
	if err := (system.AdminRegistry{req.AdminEmail}).Save(tx); err != nil {
		return fmt.Errorf("failed to store admin users: %w", err)
	}

	if err := req.Site().Save(tx); err != nil {
		return fmt.Errorf("failed to store site settings: %w", err)
	}

	if err := system.Initialized.Save(tx); err != nil {
		return fmt.Errorf("failed to store initialization state: %w", err)
	}

	if req.EmailSettings != nil {
		if err := req.EmailSettings.Save(tx); err != nil {
			return fmt.Errorf("failed to store email settings: %w", err)
		}
	}

	if req.PaymentGateways != nil {
		if err := req.PaymentGateways.Save(tx); err != nil {
			return fmt.Errorf("failed to store payment gateways: %w", err)
		}
	}

	if err := catalog.Seed(tx); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	log.Info().
		Bool("email_settings", req.EmailSettings != nil).
		Bool("payment_gateways", req.PaymentGateways != nil).
		Msg("stored settings and seeded catalog")

	return nil
}

// isValidation reports errors raised by Request.Validate.
func isValidation(err error) bool {
	for _, target := range []error{
		ErrAdminCredentialsRequired,
		ErrPasswordTooShort,
		ErrInvalidAdminEmail,
		ErrInvalidSettings,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
