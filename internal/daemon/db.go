package daemon

import (
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/CryptoYield/CryptoYield/internal/config"
	"github.com/CryptoYield/CryptoYield/internal/db/controller/system"
	"github.com/CryptoYield/CryptoYield/internal/db/dsn"
	"github.com/CryptoYield/CryptoYield/internal/db/models"
	gormlog "github.com/CryptoYield/CryptoYield/internal/logger/adapter/gorm"
)

// sessionTable holds the bearer token sessions in mysql and postgres.
const sessionTable = "sessions"

// OpenDB opens the configured database and migrates the schema.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DB.GormEngine {
	case config.EnginePostgres:
		dialector = gormpostgres.Open(dsn.Create(cfg))
	case config.EngineSQLite:
		dialector = sqlite.Open(dsn.Create(cfg))
	default:
		dialector = gormmysql.Open(dsn.Create(cfg))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlog.New(gormlog.LevelFromString(cfg.Log.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect %s database", cfg.DB.GormEngine)
	}

	if cfg.DB.GormEngine == config.EngineSQLite {
		// sqlite serialises writers, one connection avoids "database is locked"
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get sqlite connection pool")
		}

		sqlDB.SetMaxOpenConns(1)
	}

	if err = migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// migrate creates the schema and reports the initialization state.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	state := system.LoadState(db)
	if state == system.Uninitialized {
		log.Warn().Msg("system is not initialized, run the setup to create the administrator")
	} else {
		log.Info().Str("state", state.String()).Msg("database ready")
	}

	return nil
}

// SessionStorage returns the fiber storage for bearer token sessions.
// sqlite keeps sessions in memory.
func SessionStorage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         sessionTable,
		})
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.URI(cfg),
			Table:         sessionTable,
		})
	default:
		return nil
	}
}
