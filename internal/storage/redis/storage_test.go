package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/linkgame/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SettingsTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Settings tests

func (s *StorageSuite) TestSaveAndGetSettings() {
	settings := model.DefaultSettings("conv-1")
	settings.Rows = 4
	settings.Cols = 6
	settings.TimedMode = true

	err := s.storage.SaveSettings(s.ctx, settings)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSettings(s.ctx, "conv-1")
	s.Require().NoError(err)
	s.Equal(settings, retrieved)
}

func (s *StorageSuite) TestGetSettingsNotFound() {
	_, err := s.storage.GetSettings(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSettingsNotFound)
}

func (s *StorageSuite) TestSettingsTTL() {
	s.Require().NoError(s.storage.SaveSettings(s.ctx, model.DefaultSettings("conv-1")))

	ttl := s.mini.TTL(settingsKey("conv-1"))
	s.True(ttl > 0, "Settings should have TTL")
	s.True(ttl <= time.Hour, "Settings TTL should not exceed config")
}

func (s *StorageSuite) TestDeleteSettingsRemovesScore() {
	_, err := s.storage.RecordScore(s.ctx, "conv-1", 40)
	s.Require().NoError(err)

	s.Require().NoError(s.storage.DeleteSettings(s.ctx, "conv-1"))

	_, err = s.storage.GetSettings(s.ctx, "conv-1")
	s.ErrorIs(err, model.ErrSettingsNotFound)

	entries, err := s.storage.TopScores(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(entries)
}

// Score tests

func (s *StorageSuite) TestRecordScoreOnlyRaises() {
	recorded, err := s.storage.RecordScore(s.ctx, "conv-1", 40)
	s.Require().NoError(err)
	s.True(recorded)

	recorded, err = s.storage.RecordScore(s.ctx, "conv-1", 30)
	s.Require().NoError(err)
	s.False(recorded)

	settings, err := s.storage.GetSettings(s.ctx, "conv-1")
	s.Require().NoError(err)
	s.Equal(40, settings.MaxScore)

	score, err := s.mini.ZScore(maxScoresIndexKey(), "conv-1")
	s.Require().NoError(err)
	s.Equal(float64(40), score)
}

func (s *StorageSuite) TestRecordScoreKeepsOtherSettings() {
	settings := model.DefaultSettings("conv-1")
	settings.Rows = 2
	settings.Cols = 2
	settings.TimedMode = true
	s.Require().NoError(s.storage.SaveSettings(s.ctx, settings))

	_, err := s.storage.RecordScore(s.ctx, "conv-1", 25)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSettings(s.ctx, "conv-1")
	s.Require().NoError(err)
	s.Equal(2, retrieved.Rows)
	s.True(retrieved.TimedMode)
	s.Equal(25, retrieved.MaxScore)
}

func (s *StorageSuite) TestResetScoreClearsIndex() {
	_, err := s.storage.RecordScore(s.ctx, "conv-1", 40)
	s.Require().NoError(err)

	s.Require().NoError(s.storage.ResetScore(s.ctx, "conv-1"))

	settings, err := s.storage.GetSettings(s.ctx, "conv-1")
	s.Require().NoError(err)
	s.Equal(0, settings.MaxScore)

	entries, err := s.storage.TopScores(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(entries)

	s.NoError(s.storage.ResetScore(s.ctx, "nonexistent"))
}

func (s *StorageSuite) TestTopScores() {
	scores := []struct {
		id    model.ConversationID
		score int
	}{
		{"a", 10},
		{"b", 30},
		{"c", 20},
	}
	for _, sc := range scores {
		_, err := s.storage.RecordScore(s.ctx, sc.id, sc.score)
		s.Require().NoError(err)
	}

	entries, err := s.storage.TopScores(s.ctx, 0)
	s.Require().NoError(err)
	s.Equal([]model.ScoreEntry{
		{ConversationID: "b", Score: 30},
		{ConversationID: "c", Score: 20},
		{ConversationID: "a", Score: 10},
	}, entries)

	top, err := s.storage.TopScores(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal([]model.ScoreEntry{{ConversationID: "b", Score: 30}}, top)
}

func (s *StorageSuite) TestRecordScoreGivesUpUnderContention() {
	s.storage.cfg.MaxTxRetries = 0

	_, err := s.storage.RecordScore(s.ctx, "conv-1", 10)
	s.ErrorIs(err, ErrTxContention)
}
