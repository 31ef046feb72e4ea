package lock

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/CryptoYield/CryptoYield/internal/db/controller/setting"
	"github.com/CryptoYield/CryptoYield/internal/db/models"
	"github.com/CryptoYield/CryptoYield/internal/uniuri"
)

const (
	keyPrefix = "lock_"
	group     = "locks"
)

// Store keeps leases as rows of the settings table.
// The unique setting key makes concurrent acquisition safe across instances.
type Store struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

type storeHolder struct {
	Owner     string    `json:"owner"`
	ExpiresAt time.Time `json:"expires_at"`
}

type storeLease struct {
	store *Store
	key   string
	value string
}

// NewStore creates a settings table backed locker.
func NewStore(db *gorm.DB, ttl time.Duration) *Store {
	return &Store{db: db, ttl: ttl, now: time.Now}
}

// Acquire takes the lease or returns ErrLocked.
// An expired lease is taken over.
func (s *Store) Acquire(ctx context.Context, name string) (Lease, error) {
	key := keyPrefix + name

	data, err := json.Marshal(storeHolder{
		Owner:     uniuri.New(),
		ExpiresAt: s.now().Add(s.ttl).UTC(),
	})
	if err != nil {
		return nil, err
	}

	value := string(data)
	db := s.db.WithContext(ctx)

	_, err = setting.Create(db, models.Setting{
		Key:   key,
		Value: models.StringPtr(value),
		Group: models.StringPtr(group),
	})
	if err == nil {
		return &storeLease{store: s, key: key, value: value}, nil
	}
	if !errors.Is(err, setting.ErrSettingAlreadyExists) {
		return nil, err
	}

	current, err := setting.Get(db, key)
	if err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			// released in between, the caller may retry
			return nil, ErrLocked
		}

		return nil, err
	}

	var holder storeHolder
	if err = json.Unmarshal([]byte(current.StringValue()), &holder); err == nil && s.now().Before(holder.ExpiresAt) {
		return nil, ErrLocked
	}

	// compare and swap so only one contender takes over a stale lease
	result := db.Model(&models.Setting{}).
		Where("setting_key = ? AND setting_value = ?", key, current.StringValue()).
		Update("setting_value", value)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrLocked
	}

	log.Warn().Str("lease", name).Time("expired", holder.ExpiresAt).Msg("took over expired lease")

	return &storeLease{store: s, key: key, value: value}, nil
}

// Release removes the lease row if it is still ours.
func (l *storeLease) Release(ctx context.Context) error {
	result := l.store.db.WithContext(ctx).
		Where("setting_key = ? AND setting_value = ?", l.key, l.value).
		Delete(&models.Setting{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotHeld
	}

	return nil
}
