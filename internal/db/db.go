package db

import (
    "fmt"

    "gorm.io/driver/mysql"
    "gorm.io/gorm"
    "gorm.io/gorm/logger"
)

// Connect opens the MySQL connection and verifies it with a ping.
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey, which the repository layer relies on to arbitrate
// concurrent first-time federated logins.
func Connect(dsn string, debug bool) (*gorm.DB, error) {
    level := logger.Warn
    if debug {
        level = logger.Info
    }

    gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
        TranslateError: true,
        Logger:         logger.Default.LogMode(level),
    })
    if err != nil {
        return nil, fmt.Errorf("open database: %w", err)
    }

    sqlDB, err := gdb.DB()
    if err != nil {
        return nil, fmt.Errorf("database handle: %w", err)
    }
    if err := sqlDB.Ping(); err != nil {
        return nil, fmt.Errorf("database ping: %w", err)
    }

    return gdb, nil
}
