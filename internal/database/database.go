package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/emilythestrangee/stackit/backend/internal/logging"
	"github.com/emilythestrangee/stackit/backend/internal/models"
)

// Service represents a service that interacts with a database.
type Service interface {
	// Health returns a map of health status information.
	// The keys and values in the map are service-specific.
	Health() map[string]string

	// Close terminates the database connection.
	// It returns an error if the connection cannot be closed.
	Close() error
	GetDB() *gorm.DB
}

type Options struct {
	Logger *slog.Logger
	// Seed loads the mock questions and answers after migrating
	Seed bool
	// Now anchors seeded timestamps; defaults to time.Now
	Now func() time.Time
}

type service struct {
	db     *gorm.DB
	logger *slog.Logger
}

// New opens a private in-memory SQLite database. Everything is lost when
// the service is closed.
func New(opts Options) (Service, error) {
	logger := logging.Resolve(opts.Logger)
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logging.NewGormAdapter(logger, 200*time.Millisecond),
		NowFunc: func() time.Time {
			return now().UTC()
		},
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open in-memory database")
	}

	// Each connection to ":memory:" is its own database, so pin the pool to
	// a single connection that never expires.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get database instance")
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	if err := db.AutoMigrate(
		&models.Question{},
		&models.Answer{},
		&models.Tag{},
		&models.ViewerVote{},
	); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "migrate database")
	}

	s := &service{db: db, logger: logger}
	if opts.Seed {
		if err := Seed(db, now().UTC()); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		logger.Info("mock data loaded", "event", "database_seeded", "module", "database")
	}

	return s, nil
}

func (s *service) GetDB() *gorm.DB {
	return s.db
}

// Health checks the health of the database connection by pinging the database.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats := make(map[string]string)

	sqlDB, err := s.db.DB()
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db error: %v", err)
		return stats
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	var questions, answers int64
	s.db.WithContext(ctx).Model(&models.Question{}).Count(&questions)
	s.db.WithContext(ctx).Model(&models.Answer{}).Count(&answers)
	stats["questions"] = fmt.Sprintf("%d", questions)
	stats["answers"] = fmt.Sprintf("%d", answers)

	return stats
}

// Close closes the database connection.
func (s *service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	s.logger.Info("database closed", "event", "database_closed", "module", "database")
	return sqlDB.Close()
}
