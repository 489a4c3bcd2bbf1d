package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/linkgame/internal/model"
	"github.com/mcoot/linkgame/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	settings map[model.ConversationID]*model.Settings
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		settings: make(map[model.ConversationID]*model.Settings),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Settings operations

func (s *Storage) SaveSettings(ctx context.Context, settings *model.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *settings
	s.settings[settings.ConversationID] = &clone
	return nil
}

func (s *Storage) GetSettings(ctx context.Context, id model.ConversationID) (*model.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	settings, ok := s.settings[id]
	if !ok {
		return nil, model.ErrSettingsNotFound
	}
	clone := *settings
	return &clone, nil
}

func (s *Storage) DeleteSettings(ctx context.Context, id model.ConversationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.settings, id)
	return nil
}

// Score operations

func (s *Storage) RecordScore(ctx context.Context, id model.ConversationID, score int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings, ok := s.settings[id]
	if !ok {
		settings = model.DefaultSettings(id)
		s.settings[id] = settings
	}
	if score <= settings.MaxScore {
		return false, nil
	}
	settings.MaxScore = score
	return true, nil
}

func (s *Storage) ResetScore(ctx context.Context, id model.ConversationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if settings, ok := s.settings[id]; ok {
		settings.MaxScore = 0
	}
	return nil
}

func (s *Storage) TopScores(ctx context.Context, limit int) ([]model.ScoreEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]model.ScoreEntry, 0, len(s.settings))
	for id, settings := range s.settings {
		if settings.MaxScore > 0 {
			entries = append(entries, model.ScoreEntry{ConversationID: id, Score: settings.MaxScore})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].ConversationID < entries[j].ConversationID
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
