package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"btrscout/internal/config"
)

// DB wraps the gorm handle together with the underlying sql.DB so
// pool settings and health checks go through one place.
type DB struct {
	Gorm *gorm.DB
	sql  *sql.DB
}

func Open(cfg config.DBConfig) (*DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsnWithTimezone(cfg.DSN, cfg.Timezone)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqldb, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqldb.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return &DB{Gorm: gdb, sql: sqldb}, nil
}

// dsnWithTimezone bakes the session timezone into the DSN so every
// pooled connection gets it, not just the one a SET statement ran on.
func dsnWithTimezone(dsn, tz string) string {
	if tz == "" || strings.Contains(dsn, "TimeZone=") {
		return dsn
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return dsn + sep + "TimeZone=" + tz
	}
	return dsn + " TimeZone=" + tz
}

func (d *DB) Ping(ctx context.Context) error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.PingContext(ctx)
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}
