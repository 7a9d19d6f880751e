package runs

import (
	"go.uber.org/zap"

	"refsync/core/keymap"
)

// defaultLimit caps the listing when the caller does not ask for a
// specific window.
const defaultLimit = 20

// Service exposes the recorded import runs.
type Service struct {
	store  *keymap.Store
	logger *zap.Logger
}

// NewService creates a new runs service.
func NewService(store *keymap.Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// RecentRuns returns the most recent runs, newest first, each with its
// record count.
func (s *Service) RecentRuns(limit int) ([]keymap.RunSummary, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	return s.store.RecentRuns(limit)
}
