package db

import (
	"fmt"
	"time"

	"timepiece/internal/config"
	"timepiece/internal/domain/model"

	"github.com/glebarez/sqlite"
	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	// DATABASE_URL があれば最優先で使う
	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = cfg.PostgresDSN()
	}

	gdb, err := Open(cfg.DBDriver, dsn, cfg.LogLevel == "debug")
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver != "sqlite" {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	return gdb, nil
}

// Open はdriver名で方言を切り替える（テストはsqlite）
func Open(driver string, dsn string, debug bool) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		// unique違反をgorm.ErrDuplicatedKeyにする
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
	if debug {
		gcfg.Logger = logger.Default.LogMode(logger.Info)
	}

	switch driver {
	case "postgres":
		pgCfg, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse postgres dsn: %w", err)
		}
		return gorm.Open(postgres.New(postgres.Config{Conn: stdlib.OpenDB(*pgCfg)}), gcfg)

	case "mysql":
		myCfg, err := mysqldrv.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse mysql dsn: %w", err)
		}
		myCfg.ParseTime = true
		// 値が同じUPDATEでもRowsAffectedを1にする
		myCfg.ClientFoundRows = true
		return gorm.Open(mysql.Open(myCfg.FormatDSN()), gcfg)

	case "sqlite":
		gdb, err := gorm.Open(sqlite.Open(dsn), gcfg)
		if err != nil {
			return nil, err
		}
		// 書き込みは1本ずつ（database is locked回避）。goroutineから叩いても接続上は直列になる
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return gdb, nil
	}
	return nil, fmt.Errorf("unsupported db driver: %q", driver)
}

// テーブル作成
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	)
}
