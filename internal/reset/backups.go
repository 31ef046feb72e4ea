package reset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"

	"github.com/CryptoYield/CryptoYield/internal/db/controller/setting"
	"github.com/CryptoYield/CryptoYield/internal/db/controller/system"
	"github.com/CryptoYield/CryptoYield/internal/db/models"
)

// restoreBatchSize is the insert batch size of a restore.
const restoreBatchSize = 100

// TableSummary is the row count of one table in a backup.
type TableSummary struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
}

// Backup describes a stored snapshot without its rows.
type Backup struct {
	Key       string         `json:"key"`
	CreatedAt time.Time      `json:"created_at"`
	Tables    []TableSummary `json:"tables"`
}

// RestoreResult lists what a restore replaced.
type RestoreResult struct {
	BackupKey string         `json:"backupKey"`
	Tables    []TableSummary `json:"tables"`
}

// ListBackups returns all backups, newest first.
func (s *Service) ListBackups(ctx context.Context) ([]Backup, error) {
	rows, err := setting.GetByGroup(s.db.WithContext(ctx), system.GroupBackups)
	if err != nil {
		return nil, err
	}

	out := make([]Backup, 0, len(rows))

	// keys sort by their timestamp, walk backwards for newest first
	for i := len(rows) - 1; i >= 0; i-- {
		if !IsBackupKey(rows[i].Key) {
			continue
		}

		out = append(out, summarize(&rows[i]))
	}

	return out, nil
}

// GetBackup returns the summary of one backup.
func (s *Service) GetBackup(ctx context.Context, key string) (*Backup, error) {
	row, err := s.loadBackup(s.db.WithContext(ctx), key)
	if err != nil {
		return nil, err
	}

	b := summarize(row)

	return &b, nil
}

func (s *Service) loadBackup(db *gorm.DB, key string) (*models.Setting, error) {
	if !IsBackupKey(key) {
		return nil, ErrBackupNotFound
	}

	row, err := setting.Get(db, key)
	if err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			return nil, ErrBackupNotFound
		}

		return nil, err
	}

	if row.Group == nil || *row.Group != system.GroupBackups {
		return nil, ErrBackupNotFound
	}

	if !gjson.Valid(row.StringValue()) || !gjson.Parse(row.StringValue()).IsObject() {
		return nil, ErrCorruptBackup
	}

	return row, nil
}

// summarize counts the rows per table without decoding them.
func summarize(row *models.Setting) Backup {
	b := Backup{
		Key:       row.Key,
		CreatedAt: row.CreatedAt,
		Tables:    []TableSummary{},
	}

	gjson.Parse(row.StringValue()).ForEach(func(name, rows gjson.Result) bool {
		b.Tables = append(b.Tables, TableSummary{Name: name.String(), Rows: len(rows.Array())})
		return true
	})

	return b
}

// DeleteBackup removes one backup. Corrupt backups can be deleted too.
func (s *Service) DeleteBackup(ctx context.Context, key string) error {
	lease, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer s.release(ctx, lease)

	db := s.db.WithContext(ctx)

	if _, err := s.loadBackup(db, key); err != nil && !errors.Is(err, ErrCorruptBackup) {
		return err
	}

	if err := setting.DeleteByKey(db, key); err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			return ErrBackupNotFound
		}

		return err
	}

	log.Info().Str("backup", key).Msg("backup deleted")

	return nil
}

// Restore replaces the contents of every table held by the backup with its rows.
// users is never touched. All tables are replaced in one transaction.
func (s *Service) Restore(ctx context.Context, key string) (*RestoreResult, error) {
	lease, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer s.release(ctx, lease)

	db := s.db.WithContext(ctx)

	row, err := s.loadBackup(db, key)
	if err != nil {
		return nil, err
	}

	payload := gjson.Parse(row.StringValue())

	var names []string

	payload.ForEach(func(name, _ gjson.Result) bool {
		if _, ok := lookup(name.String()); ok {
			names = append(names, name.String())
		}

		return true
	})

	order := restoreOrder(names)
	result := &RestoreResult{BackupKey: key, Tables: make([]TableSummary, 0, len(order))}

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, name := range deleteOrder(names) {
			t, _ := lookup(name)
			if err := tx.Where("1 = 1").Delete(t.model).Error; err != nil {
				return fmt.Errorf("failed to clear table %s: %w", name, err)
			}
		}

		for _, name := range order {
			t, _ := lookup(name)

			rows := t.rows()
			if err := json.Unmarshal([]byte(payload.Get(gjson.Escape(name)).Raw), rows); err != nil {
				return fmt.Errorf("%w: table %s: %w", ErrCorruptBackup, name, err)
			}

			n := sliceLen(rows)
			if n > 0 {
				if err := tx.CreateInBatches(rows, restoreBatchSize).Error; err != nil {
					return fmt.Errorf("failed to restore table %s: %w", name, err)
				}
			}

			result.Tables = append(result.Tables, TableSummary{Name: name, Rows: n})
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("backup", key).Msg("restore failed, rolled back")
		return nil, err
	}

	log.Info().Str("backup", key).Strs("tables", order).Msg("backup restored")

	return result, nil
}
