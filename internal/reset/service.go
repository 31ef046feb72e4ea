// Package reset implements the admin only system reset with backup before delete,
// and the listing and restore of the backups it writes.
package reset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/CryptoYield/CryptoYield/internal/auth"
	"github.com/CryptoYield/CryptoYield/internal/db/controller/setting"
	"github.com/CryptoYield/CryptoYield/internal/db/controller/system"
	"github.com/CryptoYield/CryptoYield/internal/db/models"
	"github.com/CryptoYield/CryptoYield/internal/lock"
	"github.com/CryptoYield/CryptoYield/internal/metrics"
)

// Reset types.
const (
	TypeFull    = "full"
	TypePartial = "partial"
)

// BackupKeyPrefix prefixes the setting key of every backup.
const BackupKeyPrefix = "system_backup_"

// backupTimeLayout is ISO-8601 in UTC with milliseconds.
const backupTimeLayout = "2006-01-02T15:04:05.000Z"

// maxKeyAttempts bounds the search for a free backup key within the same millisecond.
const maxKeyAttempts = 5

// Request is the body of a reset invocation.
type Request struct {
	ResetType  string   `json:"resetType"`
	BackupData []string `json:"backupData,omitempty"`
}

// Result is returned by a successful Reset.
type Result struct {
	Message   string `json:"message"`
	BackupKey string `json:"backupKey"`
}

// TokenResolver resolves a bearer token into an account.
type TokenResolver interface {
	ResolveToken(raw string) (*models.Account, error)
}

// Service runs resets and restores.
type Service struct {
	db       *gorm.DB
	tokens   TokenResolver
	locker   lock.Locker
	observer metrics.Observer
	now      func() time.Time
}

// NewService creates a new reset service.
func NewService(db *gorm.DB, tokens TokenResolver, locker lock.Locker, observer metrics.Observer) *Service {
	return &Service{
		db:       db,
		tokens:   tokens,
		locker:   locker,
		observer: observer,
		now:      time.Now,
	}
}

// Authorize resolves the Authorization header value and checks the caller
// against the admin registry. Nothing but the registry is read.
func (s *Service) Authorize(ctx context.Context, header string) (*models.Account, error) {
	raw, err := auth.BearerToken(header)
	if err != nil {
		return nil, ErrMissingAuthHeader
	}

	account, err := s.tokens.ResolveToken(raw)
	if err != nil || account == nil {
		log.Warn().Err(err).Msg("reset rejected, token not accepted")
		return nil, ErrUnauthorized
	}

	var registry system.AdminRegistry
	if err = registry.Load(s.db.WithContext(ctx)); err != nil {
		log.Error().Err(err).Str("user", account.Email).Msg("failed to load admin registry")
		return nil, ErrAdminStatusUnknown
	}

	if !registry.Contains(account.Email) {
		log.Warn().Str("user", account.Email).Msg("reset rejected, caller is not an admin")
		return nil, ErrNotAdmin
	}

	return account, nil
}

// Reset authorizes the caller, snapshots the selected tables into one backup
// setting and then empties them. users is never emptied.
func (s *Service) Reset(ctx context.Context, header string, req Request) (*Result, error) {
	result, err := s.reset(ctx, header, req)

	resetType := req.ResetType
	if resetType != TypeFull && resetType != TypePartial {
		resetType = "invalid"
	}

	var phaseErr *PhaseError

	switch {
	case err == nil:
		s.observer.Reset(resetType, metrics.ResultSuccess)
	case errors.As(err, &phaseErr):
		s.observer.Reset(resetType, metrics.ResultFailure)
	default:
		s.observer.Reset(resetType, metrics.ResultRejected)
	}

	return result, err
}

func (s *Service) reset(ctx context.Context, header string, req Request) (*Result, error) {
	account, err := s.Authorize(ctx, header)
	if err != nil {
		return nil, err
	}

	var backup, purge []string

	switch req.ResetType {
	case TypeFull:
		backup = FullBackupTables()
		purge = FullDeleteTables()
	case TypePartial:
		if backup, err = resolve(req.BackupData); err != nil {
			return nil, err
		}

		purge = deleteOrder(backup)
	default:
		return nil, ErrInvalidResetType
	}

	lease, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer s.release(ctx, lease)

	logger := log.With().Str("type", req.ResetType).Str("user", account.Email).Logger()

	key, err := s.snapshot(ctx, backup)
	if err != nil {
		logger.Error().Err(err).Strs("tables", backup).Msg("reset aborted, snapshot failed")
		return nil, &PhaseError{Phase: PhaseSnapshot, Err: err}
	}

	logger.Info().Str("backup", key).Strs("tables", backup).Msg("backup written")

	if err = s.purge(ctx, purge); err != nil {
		logger.Error().Err(err).Str("backup", key).Msg("reset failed, deletes rolled back")
		return nil, &PhaseError{Phase: PhaseDelete, BackupKey: key, Err: err}
	}

	logger.Info().Strs("tables", purge).Msg("tables emptied")

	return &Result{
		Message:   fmt.Sprintf("System %s reset completed successfully", req.ResetType),
		BackupKey: key,
	}, nil
}

func (s *Service) acquire(ctx context.Context) (lock.Lease, error) {
	lease, err := s.locker.Acquire(ctx, lock.NameReset)
	if err != nil {
		if errors.Is(err, lock.ErrLocked) {
			return nil, ErrInProgress
		}

		return nil, err
	}

	return lease, nil
}

func (s *Service) release(ctx context.Context, lease lock.Lease) {
	if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
		log.Error().Err(err).Str("lease", lock.NameReset).Msg("failed to release lease")
	}
}

// snapshot reads every table and writes the backup in one transaction.
// The first failing table read aborts without writing.
func (s *Service) snapshot(ctx context.Context, names []string) (string, error) {
	var key string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		content := make(map[string]json.RawMessage, len(names))

		for _, name := range names {
			t, _ := lookup(name)

			rows := t.rows()
			if err := tx.Model(t.model).Find(rows).Error; err != nil {
				return fmt.Errorf("Failed to backup table %s: %w", name, err) //nolint:staticcheck // client visible
			}

			data, err := json.Marshal(rows)
			if err != nil {
				return fmt.Errorf("Failed to backup table %s: %w", name, err) //nolint:staticcheck // client visible
			}

			content[name] = data
		}

		payload, err := json.Marshal(content)
		if err != nil {
			return err
		}

		key, err = s.insertBackup(tx, string(payload))

		return err
	})
	if err != nil {
		return "", err
	}

	return key, nil
}

// insertBackup stores payload under a fresh timestamp key.
func (s *Service) insertBackup(tx *gorm.DB, payload string) (string, error) {
	at := s.now().UTC()

	for range maxKeyAttempts {
		key := BackupKeyPrefix + at.Format(backupTimeLayout)

		_, err := setting.Create(tx, models.Setting{
			Key:   key,
			Value: models.StringPtr(payload),
			Group: models.StringPtr(system.GroupBackups),
		})
		if err == nil {
			return key, nil
		}

		if !errors.Is(err, setting.ErrSettingAlreadyExists) {
			return "", fmt.Errorf("failed to store backup: %w", err)
		}

		at = at.Add(time.Millisecond)
	}

	return "", fmt.Errorf("failed to store backup: %w", setting.ErrSettingAlreadyExists)
}

// purge empties the tables in the given order in one transaction.
func (s *Service) purge(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			t, _ := lookup(name)

			result := tx.Where("1 = 1").Delete(t.model)
			if result.Error != nil {
				return fmt.Errorf("failed to delete table %s: %w", name, result.Error)
			}

			log.Debug().Str("table", name).Int64("rows", result.RowsAffected).Msg("table emptied")
		}

		return nil
	})
}

// IsBackupKey reports whether key names a backup.
func IsBackupKey(key string) bool {
	return strings.HasPrefix(key, BackupKeyPrefix)
}
