package auth

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/CryptoYield/CryptoYield/internal/db/models"
)

// NewAccount describes an account to create.
type NewAccount struct {
	Email         string
	Password      string
	FullName      string
	Admin         bool
	EmailVerified bool
}

// LocalProvider handles local database authentication.
type LocalProvider struct {
	db *gorm.DB
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db: db,
	}
}

// Authenticate authenticates an account against the local database.
func (p *LocalProvider) Authenticate(email, password string) (*models.Account, error) {
	var account models.Account

	err := p.db.Where("email = ?", email).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !account.Active {
		return nil, ErrUserAccountDisabled
	}

	if !account.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	return &account, nil
}

// GetAccountByID retrieves an account by ID.
func (p *LocalProvider) GetAccountByID(id string) (*models.Account, error) {
	var account models.Account

	err := p.db.Where("id = ?", id).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &account, nil
}

// CreateAccount creates an account and its users profile row with the same id.
// Pass a transaction to make it part of a larger unit of work.
func CreateAccount(db *gorm.DB, in NewAccount) (*models.Account, error) {
	var existing models.Account

	err := db.Where("email = ?", in.Email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailExists
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := models.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := models.Account{
		Email:    in.Email,
		Password: hashedPassword,
		Active:   true,
		Metadata: map[string]any{
			"is_admin":  in.Admin,
			"full_name": in.FullName,
		},
	}

	if in.EmailVerified {
		now := time.Now().UTC()
		account.EmailConfirmedAt = &now
	}

	if err := db.Create(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}

		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	profile := models.User{
		Base:  models.Base{ID: account.ID},
		Email: account.Email,
	}
	if in.FullName != "" {
		profile.FullName = models.StringPtr(in.FullName)
	}

	if err := db.Create(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to create user profile: %w", err)
	}

	return &account, nil
}
