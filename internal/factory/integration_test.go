package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/linkgame/internal/model"
	"github.com/mcoot/linkgame/internal/services/hint"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
	id  model.ConversationID
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
	s.id = "conv-1"
}

func (s *IntegrationSuite) TearDownTest() {
	s.app.GameController.Close()
}

func (s *IntegrationSuite) configureSmallBoard(timed bool) {
	_, err := s.app.GameController.SetSize(s.ctx, s.id, 2, 2)
	s.Require().NoError(err)
	_, err = s.app.GameController.SetPatternTypes(s.ctx, s.id, 2)
	s.Require().NoError(err)
	if timed {
		settings, err := s.app.GameController.ToggleTimed(s.ctx, s.id)
		s.Require().NoError(err)
		s.Require().True(settings.TimedMode)
	}
}

// Test: A timed round from settings through a clear lands on the leaderboard
func (s *IntegrationSuite) TestTimedRoundToLeaderboard() {
	s.configureSmallBoard(true)

	// The mock random always picks index 0, which yields a fixed layout
	snap, err := s.app.GameController.Start(s.ctx, s.id)
	s.Require().NoError(err)
	s.Equal(model.SessionStatePlaying, snap.State)
	s.Equal([][]int{{2, 1}, {2, 1}}, snap.Grid)
	s.Equal(20*time.Second, snap.TimeRemaining)

	s.app.MockClock.Advance(2 * time.Second)

	// Orders 0 and 2 are the left column, 1 and 3 the right column
	result, err := s.app.GameController.SubmitOrders(s.ctx, s.id, []string{"0", "2", "1", "3"})
	s.Require().NoError(err)
	s.Len(result.Accepted, 2)
	s.Empty(result.Rejected)
	s.True(result.Cleared)
	s.True(result.NewRecord)
	// 10 + 15 for the batch, plus 18 seconds left
	s.Equal(43, result.Score)

	snap, err = s.app.GameController.GetSession(s.ctx, s.id)
	s.Require().NoError(err)
	s.Equal(model.SessionStateIdle, snap.State)
	s.Equal(model.RoundOutcomeCleared, snap.LastOutcome)

	entries, err := s.app.GameController.TopScores(s.ctx, 10)
	s.Require().NoError(err)
	s.Equal([]model.ScoreEntry{{ConversationID: s.id, Score: 43}}, entries)

	settings, err := s.app.GameController.GetSettings(s.ctx, s.id)
	s.Require().NoError(err)
	s.Equal(43, settings.MaxScore)
}

// Test: A timed round that runs out of time frees the conversation for a new round
func (s *IntegrationSuite) TestTimeoutThenRestart() {
	s.configureSmallBoard(true)

	first, err := s.app.GameController.Start(s.ctx, s.id)
	s.Require().NoError(err)

	s.app.MockClock.Advance(21 * time.Second)

	snap, err := s.app.GameController.GetSession(s.ctx, s.id)
	s.Require().NoError(err)
	s.Equal(model.SessionStateIdle, snap.State)
	s.Equal(model.RoundOutcomeTimedOut, snap.LastOutcome)

	_, err = s.app.GameController.SubmitOrders(s.ctx, s.id, []string{"0", "2"})
	s.ErrorIs(err, model.ErrNotPlaying)

	second, err := s.app.GameController.Start(s.ctx, s.id)
	s.Require().NoError(err)
	s.Greater(second.RoundID, first.RoundID)

	entries, err := s.app.GameController.TopScores(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(entries)
}

// Test: Each conversation keeps its own settings and session
func (s *IntegrationSuite) TestConversationsAreIndependent() {
	s.configureSmallBoard(false)

	_, err := s.app.GameController.Start(s.ctx, s.id)
	s.Require().NoError(err)

	other, err := s.app.GameController.Start(s.ctx, "conv-2")
	s.Require().NoError(err)
	s.Len(other.Grid, model.DefaultSettings("conv-2").Rows)

	_, err = s.app.GameController.SetSize(s.ctx, s.id, 4, 4)
	s.ErrorIs(err, model.ErrSettingsLocked)

	_, err = s.app.GameController.SetSize(s.ctx, "conv-3", 4, 4)
	s.NoError(err)

	s.Require().NoError(s.app.GameController.End(s.ctx, s.id))
	snap, err := s.app.GameController.GetSession(s.ctx, "conv-2")
	s.Require().NoError(err)
	s.Equal(model.SessionStatePlaying, snap.State)
}

// Test: Events reach the conversation's hub once someone is watching
func (s *IntegrationSuite) TestEventsRouteToConversationHub() {
	hub := s.app.HubManager.GetOrCreateHub(s.id)
	s.NotNil(hub)
	s.Nil(s.app.HubManager.GetHub("conv-2"))

	s.configureSmallBoard(false)
	_, err := s.app.GameController.Start(s.ctx, s.id)
	s.Require().NoError(err)
	_, err = s.app.GameController.Start(s.ctx, "conv-2")
	s.Require().NoError(err)

	s.Nil(s.app.HubManager.GetHub("conv-2"))
	s.app.HubManager.CleanupEmptyHubs()
	s.Nil(s.app.HubManager.GetHub(s.id))
}

func (s *IntegrationSuite) TestNewRejectsBadConfig() {
	_, err := New(Config{HintStrategy: "greedy"})
	s.ErrorIs(err, hint.ErrUnknownStrategy)

	_, err = New(Config{StorageType: "postgres"})
	s.Error(err)

	_, err = New(Config{StorageType: StorageTypeRedis})
	s.Error(err)

	app, err := New(Config{HintStrategy: model.HintStrategyFewestBends})
	s.Require().NoError(err)
	app.GameController.Close()
}
