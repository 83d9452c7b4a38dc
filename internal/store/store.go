// Package store owns the in-memory question and answer collections. Every
// exported mutation runs in a single transaction so a click is applied
// completely or not at all.
package store

import (
	"errors"
	"log/slog"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/emilythestrangee/stackit/backend/internal/logging"
	"github.com/emilythestrangee/stackit/backend/internal/metrics"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrAnswerNotFound   = errors.New("answer not found")
	ErrNotAuthor        = errors.New("only the question's author can accept an answer")
	ErrInvalidSort      = errors.New("sort must be newest, votes or answers")
	ErrInvalidTarget    = errors.New("unknown vote target")
)

type Store struct {
	db       *gorm.DB
	logger   *slog.Logger
	metrics  *metrics.Metrics
	inflight singleflight.Group
}

func New(db *gorm.DB, logger *slog.Logger, m *metrics.Metrics) *Store {
	return &Store{
		db:      db,
		logger:  logging.Resolve(logger).With("module", "store"),
		metrics: m,
	}
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
