package db

import (
	"fmt"
	"time"

	"timesheet-backend/internal/config"
	"timesheet-backend/internal/domain/approval"
	"timesheet-backend/internal/domain/crew"
	"timesheet-backend/internal/domain/form"
	"timesheet-backend/internal/domain/reference"
	"timesheet-backend/internal/domain/submission"
	"timesheet-backend/internal/domain/user"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the gorm driver named by DB_DRIVER.
func Dialector(c *config.Config) (gorm.Dialector, error) {
	switch c.DBDriver {
	case "mysql":
		return mysql.Open(c.MySQLDSN()), nil
	case "postgres":
		return postgres.Open(c.PostgresDSN), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
}

func LogLevel(name string) logger.LogLevel {
	switch name {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	}
	return logger.Warn
}

func OpenGorm(c *config.Config) (*gorm.DB, error) {
	dial, err := Dialector(c)
	if err != nil {
		return nil, err
	}
	return OpenGormWithDialector(dial, LogLevel(c.DBLogLevel))
}

// OpenGormWithDialector opens, sizes the pool and pings. level defaults to Warn.
func OpenGormWithDialector(dial gorm.Dialector, level ...logger.LogLevel) (*gorm.DB, error) {
	lvl := logger.Warn
	if len(level) > 0 {
		lvl = level[0]
	}
	db, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(lvl),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Models lists every persisted entity in dependency order.
func Models() []any {
	return []any{
		&user.User{},
		&form.Template{},
		&form.Grouping{},
		&form.Field{},
		&form.Option{},
		&submission.Submission{},
		&approval.Approval{},
		&reference.CostCode{},
		&reference.Jobsite{},
		&reference.Tag{},
		&reference.Equipment{},
		&crew.Crew{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
