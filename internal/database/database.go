package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/hashicorp/go-hclog"
	"github.com/tpanh/rentd/internal/config"
	"github.com/tpanh/rentd/internal/database/migration"
	"github.com/tpanh/rentd/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	gormprom "gorm.io/plugin/prometheus"
)

type dbLock interface {
	Lock() error
	UnlockErr(error) error
}

// OpenDB connects to the configured database, runs pending migrations and
// returns the repository. Migrations run under a database-level lock so
// multiple instances can start concurrently.
func OpenDB(config *config.Database, logger hclog.Logger) (domain.Repository, error) {
	db, lock, err := createDB(config, logger)
	if err != nil {
		return nil, err
	}

	if err := db.Use(gormprom.New(gormprom.Config{DBName: "rentd"})); err != nil {
		return nil, err
	}

	if err := lock.Lock(); err != nil {
		return nil, err
	}

	if err := lock.UnlockErr(migrate(db)); err != nil {
		return nil, err
	}

	return domain.NewRepository(db), nil
}

func createDB(config *config.Database, logger hclog.Logger) (*gorm.DB, dbLock, error) {
	gormConfig := &gorm.Config{
		Logger: &GormLoggerAdapter{logger: logger.Named("db")},
	}

	switch config.Type {
	case "sqlite", "sqlite3":
		return newSqliteDB(config, gormConfig)
	case "postgres", "postgresql":
		return newPostgresDB(config, gormConfig)
	}

	return nil, nil, fmt.Errorf("invalid database type '%s'", config.Type)
}

func migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, migration.Migrations())

	if err := m.Migrate(); err != nil {
		return err
	}

	return nil
}

type GormLoggerAdapter struct {
	logger hclog.Logger
}

func (g *GormLoggerAdapter) LogMode(level logger.LogLevel) logger.Interface {
	return g
}

func (g *GormLoggerAdapter) Info(ctx context.Context, s string, i ...interface{}) {
	g.logger.Info(s, i)
}

func (g *GormLoggerAdapter) Warn(ctx context.Context, s string, i ...interface{}) {
	g.logger.Warn(s, i)
}

func (g *GormLoggerAdapter) Error(ctx context.Context, s string, i ...interface{}) {
	g.logger.Error(s, i)
}

func (g *GormLoggerAdapter) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		if rows == -1 {
			g.logger.Error("Error executing query", "sql", sql, "start_time", begin.Format(time.RFC3339), "duration", elapsed, "err", err)
		} else {
			g.logger.Error("Error executing query", "sql", sql, "start_time", begin.Format(time.RFC3339), "duration", elapsed, "rows", rows, "err", err)
		}
	case g.logger.IsTrace():
		sql, rows := fc()
		if rows == -1 {
			g.logger.Trace("Statement executed", "sql", sql, "start_time", begin.Format(time.RFC3339), "duration", elapsed)
		} else {
			g.logger.Trace("Statement executed", "sql", sql, "start_time", begin.Format(time.RFC3339), "duration", elapsed, "rows", rows)
		}
	}
}
