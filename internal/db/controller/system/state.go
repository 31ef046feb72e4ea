package system

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/CryptoYield/CryptoYield/internal/db/controller/setting"
)

// State is the lifecycle state of the whole installation.
type State int

const (
	// Uninitialized means the setup workflow has not completed yet.
	Uninitialized State = iota
	// Initialized means an administrator exists and the catalog is seeded.
	Initialized
)

const initializedValue = "true"

// String implements fmt.Stringer.
func (s State) String() string {
	if s == Initialized {
		return "initialized"
	}

	return "uninitialized"
}

// ReadState reads the state and reports infrastructure errors.
// A missing row is not an error, it is Uninitialized.
func ReadState(db *gorm.DB) (State, error) {
	s, err := setting.Get(db, KeyInitialized)
	if err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			return Uninitialized, nil
		}

		return Uninitialized, err
	}

	if s.StringValue() == initializedValue {
		return Initialized, nil
	}

	return Uninitialized, nil
}

// LoadState reads the state. Read failures are logged and resolve to Uninitialized,
// so a broken store routes clients into setup instead of failing closed.
func LoadState(db *gorm.DB) State {
	state, err := ReadState(db)
	if err != nil {
		log.Error().Err(err).Str("key", KeyInitialized).Msg("failed to read initialization state")
	}

	return state
}

// IsInitialized reports whether the installation is Initialized.
func IsInitialized(db *gorm.DB) bool {
	return LoadState(db) == Initialized
}

// Save persists the state as a non-public system setting.
func (s State) Save(db *gorm.DB) error {
	value := "false"
	if s == Initialized {
		value = initializedValue
	}

	return store(db, KeyInitialized, GroupSystem, false, value)
}
