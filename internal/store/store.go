package store

import (
	"gorm.io/gorm"

	"github.com/mcreview/mcreview-backend/internal/platform/logger"
)

// Store serializes all submission-domain reads and writes. Lifecycle
// preconditions (no existing draft before unlock, a draft before submit) are
// enforced here inside transactions; the history package assumes every
// payload it receives already satisfies them.
type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

func New(db *gorm.DB, baseLog *logger.Logger) *Store {
	return &Store{db: db, log: baseLog.With("store", "submissions")}
}
