package store

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"swear-jar/config"
	"swear-jar/models"
)

// Store is the participant store. Every method goes through db.WithContext.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open picks Postgres when a DATABASE_URL is configured and the embedded SQLite file otherwise,
// then migrates the schema.
func Open(conf *config.Config) (*Store, error) {
	gormConf := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}
	if conf.IsProduction() {
		gormConf.Logger = gormlogger.Default.LogMode(gormlogger.Error)
	}

	var dialector gorm.Dialector
	if conf.DatabaseURL != "" {
		dialector = postgres.Open(conf.DatabaseURL)
		zap.L().Info("using postgres store")
	} else {
		dialector = sqlite.Open(conf.SQLitePath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
		zap.L().Info("using embedded sqlite store", zap.String("path", conf.SQLitePath))
	}

	db, err := gorm.Open(dialector, gormConf)
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return New(db), nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Participant{},
		&models.CurseEvent{},
		&models.ChallengeCompletion{},
	); err != nil {
		return fmt.Errorf("db.AutoMigrate -> %w", err)
	}
	return nil
}

// Transaction runs fn against a store bound to one transaction.
// Everything fn writes commits together or not at all.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	var fnErr error
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(New(tx))
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	return classify("s.db.Transaction", err)
}

// Ping checks the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return classify("s.db.DB", err)
	}
	return classify("sqlDB.PingContext", sqlDB.PingContext(ctx))
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
