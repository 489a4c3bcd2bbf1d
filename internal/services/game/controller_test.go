package game

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/linkgame/internal/dependencies/mocks"
	"github.com/mcoot/linkgame/internal/dependencies/random"
	"github.com/mcoot/linkgame/internal/model"
	"github.com/mcoot/linkgame/internal/services/board"
	"github.com/mcoot/linkgame/internal/services/pathfind"
	"github.com/mcoot/linkgame/internal/services/scoring"
	"github.com/mcoot/linkgame/internal/storage/memory"
	"github.com/mcoot/linkgame/internal/testutil"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.Event
}

func (p *recordingPublisher) Publish(event model.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []model.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]model.EventType, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	publisher  *recordingPublisher
	controller *Controller
	ctx        context.Context
	id         model.ConversationID
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.publisher = &recordingPublisher{}
	s.ctx = context.Background()
	s.id = "conv-1"
	s.controller = s.newController(Config{
		BendPolicy:        pathfind.DefaultBendPolicy(),
		PerPairTimeBudget: 50 * time.Millisecond,
	})
}

func (s *ControllerSuite) newController(cfg Config) *Controller {
	logger := testutil.NopLogger()
	boardService := board.New(board.DefaultConfig(), random.NewSeeded(42), logger)
	return NewController(cfg, s.storage, boardService, scoring.New(scoring.DefaultConfig()), nil, s.clock, s.publisher, logger)
}

func (s *ControllerSuite) saveSettings(rows, cols, patterns int, timed bool) {
	settings := model.DefaultSettings(s.id)
	settings.Rows = rows
	settings.Cols = cols
	settings.MaxPatternTypes = patterns
	settings.TimedMode = timed
	s.Require().NoError(s.storage.SaveSettings(s.ctx, settings))
}

// installBoard swaps the live round's board for a fixed layout
func (s *ControllerSuite) installBoard(rows [][]int, patterns int) {
	e := s.controller.registry.acquire(s.id)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.Round.Board = model.BoardFromRows(rows, patterns)
}

// pairsByPattern groups the snapshot's tiles into matching pairs, lowest identifier first
func pairsByPattern(snap *model.SessionSnapshot) []model.Pair {
	cells := make(map[int][]model.Coordinate)
	for r, row := range snap.Grid {
		for c, id := range row {
			if id != model.Empty {
				cells[id] = append(cells[id], model.Coordinate{Row: r + 1, Col: c + 1})
			}
		}
	}
	ids := make([]int, 0, len(cells))
	for id := range cells {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var pairs []model.Pair
	for _, id := range ids {
		coords := cells[id]
		for i := 0; i+1 < len(coords); i += 2 {
			pairs = append(pairs, model.Pair{A: coords[i], B: coords[i+1]})
		}
	}
	return pairs
}

// Start tests

func (s *ControllerSuite) TestStartUsesDefaultSettings() {
	snap, err := s.controller.Start(s.ctx, s.id)
	s.Require().NoError(err)

	s.Equal(model.SessionStatePlaying, snap.State)
	s.Equal(model.RoundID(1), snap.RoundID)
	s.Equal(6, snap.Rows)
	s.Equal(8, snap.Cols)
	s.Len(snap.Patterns, 8)
	s.Equal(48, snap.TilesRemaining)
	s.False(snap.Timed)
	s.Equal(0, s.clock.PendingTimers())
}

func (s *ControllerSuite) TestStartUsesStoredSettings() {
	s.saveSettings(4, 4, 3, false)

	snap, err := s.controller.Start(s.ctx, s.id)
	s.Require().NoError(err)

	s.Equal(4, snap.Rows)
	s.Equal(4, snap.Cols)
	s.Len(snap.Patterns, 3)
	s.Len(snap.Grid, 4)
	for _, row := range snap.Grid {
		s.Len(row, 4)
		for _, id := range row {
			s.GreaterOrEqual(id, 1)
			s.LessOrEqual(id, 3)
		}
	}
}

func (s *ControllerSuite) TestStartFailsWhilePlaying() {
	_, err := s.controller.Start(s.ctx, s.id)
	s.Require().NoError(err)

	_, err = s.controller.Start(s.ctx, s.id)
	s.ErrorIs(err, model.ErrAlreadyPlaying)
}

func (s *ControllerSuite) TestStartFailsWithTooManyPatternTypes() {
	s.saveSettings(4, 4, 100, false)

	_, err := s.controller.Start(s.ctx, s.id)
	s.ErrorIs(err, model.ErrPatternTypesOutOfRange)

	snap, err := s.controller.GetSession(s.ctx, s.id)
	s.Require().NoError(err)
	s.Equal(model.SessionStateIdle, snap.State)
}

func (s *ControllerSuite) TestStartPublishesRoundStarted() {
	s.saveSettings(2, 2, 2, true)

	_, err := s.controller.Start(s.ctx, s.id)
	s.Require().NoError(err)

	s.Require().Len(s.publisher.events, 1)
	event := s.publisher.events[0]
	s.Equal(model.EventRoundStarted, event.Type)
	s.Equal(s.id, event.ConversationID)
	payload, ok := event.Payload.(model.RoundStartedPayload)
	s.Require().True(ok)
	s.Equal(100*time.Millisecond, payload.TimeLimit)
}

func (s *ControllerSuite) TestRoundCounterIncreasesAcrossRounds() {
	_, err := s.controller.Start(s.ctx, s.id)
	s.Require().NoError(err)
	s.Require().NoError(s.controller.End(s.ctx, s.id))

	snap, err := s.controller.Start(s.ctx, s.id)
	s.Require().NoError(err)
	s.Equal(model.RoundID(2), snap.RoundID)
}

// Commands while idle

func (s *ControllerSuite) TestCommandsFailWhenNotPlaying() {
	_, err := s.controller.Submit(s.ctx, s.id, nil)
	s.ErrorIs(err, model.ErrNotPlaying)

	_, err = s.controller.Reshuffle(s.ctx, s.id)
	s.ErrorIs(err, model.ErrNotPlaying)

	err = s.controller.End(s.ctx, s.id)
	s.ErrorIs(err, model.ErrNotPlaying)
}

func (s *ControllerSuite) TestGetSessionUnknownConversation() {
	_, err := s.controller.GetSession(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Submit tests

func (s *ControllerSuite) TestSubmitClearsTwoByTwoBoard() {
	s.saveSettings(2, 2, 2, false)

	snap, err := s.controller.Start(s.ctx, s.id)
	s.Require().NoError(err)
	s.Equal(map[int]int{1: 2, 2: 2}, countIDs(snap.Grid))

	pairs := pairsByPattern(snap)
	s.Require().Len(pairs, 2)

	result, err := s.controller.Submit(s.ctx, s.id, pairs)
	s.Require().NoError(err)

	s.True(result.Cleared)
	s.Len(result.Accepted, 2)
	s.Empty(result.Rejected)

	after, err := s.controller.GetSession(s.ctx, s.id)
	s.Require().NoError(err)
	s.Equal(model.SessionStateIdle, after.State)
	s.Equal(model.RoundOutcomeCleared, after.LastOutcome)
	s.Contains(s.publisher.types(), model.EventRoundCleared)
}

func (s *ControllerSuite) TestSubmitRetriesPairsUnblockedInSameBatch() {
	s.saveSettings(3, 4, 5, false)
	_, err := s.controller.Start(s.ctx, s.id)
	s.Require().NoError(err)

	// The 1s are walled in until the 2s between them are removed
	s.installBoard([][]int{
		{4, 4, 4, 4},
		{4, 1, 2, 1},
		{4, 5, 2, 5},
	}, 5)

	blocked := model.Pair{A: model.Coordinate{Row: 2, Col: 2}, B: model.Coordinate{Row: 2, Col: 4}}
	opener := model.Pair{A: model.Coordinate{Row: 2, Col: 3}, B: model.Coordinate{Row: 3, Col: 3}}
	mismatch := model.Pair{A: model.Coordinate{Row: 1, Col: 1}, B: model.Coordinate{Row: 3, Col: 2}}

	result, err := s.controller.Submit(s.ctx, s.id, []model.Pair{blocked, opener, mismatch})
	s.Require().NoError(err)

	s.Require().Len(result.Accepted, 2)
	s.Equal(opener, result.Accepted[0].Pair)
	s.Equal(blocked, result.Accepted[1].Pair)
	s.Equal(0, result.Accepted[1].Path.Bends())

	s.Require().Len(result.Rejected, 1)
	s.Equal(mismatch, result.Rejected[0].Pair)
	s.Equal(model.ReasonPatternMismatch, result.Rejected[0].Reason)
	s.Equal(3, result.Passes)
	s.False(result.Cleared)

	snap, err := s.controller.GetSession(s.ctx, s.id)
	s.Require().NoError(err)
	s.Equal(8, snap.TilesRemaining)
	s.Equal(model.SessionStatePlaying, snap.State)
}

func (s *ControllerSuite) TestSubmitRejectsDuplicateWithinBatch() {
	s.saveSettings(2, 4, 2, false)
	_, err := s.controller.Start(s.ctx, s.id)
	s.Require().NoError(err)

	s.installBoard([][]int{
		{1, 1, 2, 2},
		{2, 2, 1, 1},
	}, 2)

	first := model.Pair{A: model.Coordinate{Row: 1, Col: 1}, B: model.Coordinate{Row: 1, Col: 2}}
	reuse := model.Pair{A: model.Coordinate{Row: 1, Col: 2}, B: model.Coordinate{Row: 2, Col: 3}}

	result, err := s.controller.Submit(s.ctx, s.id, []model.Pair{first, reuse})
	s.Require().NoError(err)

	s.Require().Len(result.Accepted, 1)
	s.Equal(first, result.Accepted[0].Pair)
	s.Require().Len(result.Rejected, 1)
	// The retry pass sees the removed tile as empty
	s.Equal(model.ReasonEmptyCell, result.Rejected[0].Reason)
}

func (s *ControllerSuite) TestSubmitReportsMalformedPairs() {
	_, err := s.controller.Start(s.ctx, s.id)
	s.Require().NoError(err)

	decoded := model.DecodeOrderTokens([]string{"abc", "1"}, 8)
	result, err := s.controller.Submit(s.ctx, s.id, decoded.Pairs)
	s.Require().NoError(err)

	s.Empty(result.Accepted)
	s.Require().Len(result.Rejected, 1)
	s.Equal(model.ReasonNotANumber, result.Rejected[0].Reason)
	s.Equal(1, result.Passes)
}

func (s *ControllerSuite) TestSubmitOrdersDecodesAgainstBoardWidth() {
	s.saveSettings(2, 4, 2, false)
	_, err := s.controller.Start(s.ctx, s.id)
	s.Require().NoError(err)

	s.installBoard([][]int{
		{1, 1, 2, 2},
		{2, 2, 1, 1},
	}, 2)

	// Orders 2 and 3 are the 2s on the first row; the trailing 7 is dangling
	result, err := s.controller.SubmitOrders(s.ctx, s.id, []string{"2", "3", "7"})
	s.Require().NoError(err)

	s.True(result.Dangling)
	s.Require().Len(result.Accepted, 1)
	s.Equal(model.Pair{A: model.Coordinate{Row: 1, Col: 3}, B: model.Coordinate{Row: 1, Col: 4}}, result.Accepted[0].Pair)
}

func (s *ControllerSuite) TestSubmitOrdersFailsWhenNotPlaying() {
	_, err := s.controller.SubmitOrders(s.ctx, s.id, []string{"0", "1"})
	s.ErrorIs(err, model.ErrNotPlaying)
}

func (s *ControllerSuite) TestSubmitScoresTimedRound() {
	s.controller = s.newController(Config{
		BendPolicy:        pathfind.DefaultBendPolicy(),
		PerPairTimeBudget: 10 * time.Second,
	})
	s.saveSettings(2, 2, 2, true)

	snap, err := s.controller.Start(s.ctx, s.id)
	s.Require().NoError(err)
	pairs := pairsByPattern(snap)
	s.Require().Len(pairs, 2)

	s.clock.Advance(1 * time.Second)
	result, err := s.controller.Submit(s.ctx, s.id, pairs[:1])
	s.Require().NoError(err)
	s.Equal(10, result.Score)
	s.False(result.Cleared)

	s.clock.Advance(2 * time.Second)
	result, err = s.controller.Submit(s.ctx, s.id, pairs[1:])
	s.Require().NoError(err)

	// 10 + (10 + 5 combo) + 17 seconds left
	s.True(result.Cleared)
	s.Equal(42, result.Score)
	s.True(result.NewRecord)
	s.Equal(0, s.clock.PendingTimers())

	settings, err := s.storage.GetSettings(s.ctx, s.id)
	s.Require().NoError(err)
	s.Equal(42, settings.MaxScore)
}

func (s *ControllerSuite) TestUntimedWinDoesNotRecordScore() {
	s.saveSettings(2, 2, 2, false)
	snap, err := s.controller.Start(s.ctx, s.id)
	s.Require().NoError(err)

	result, err := s.controller.Submit(s.ctx, s.id, pairsByPattern(snap))
	s.Require().NoError(err)
	s.True(result.Cleared)
	s.Equal(0, result.Score)
	s.False(result.NewRecord)

	scores, err := s.storage.TopScores(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(scores)
}

// Reshuffle and end

func (s *ControllerSuite) TestReshuffleKeepsTiles() {
	s.saveSettings(4, 4, 4, false)
	before, err := s.controller.Start(s.ctx, s.id)
	s.Require().NoError(err)

	after, err := s.controller.Reshuffle(s.ctx, s.id)
	s.Require().NoError(err)

	s.Equal(model.SessionStatePlaying, after.State)
	s.Equal(before.TilesRemaining, after.TilesRemaining)
	s.Equal(countIDs(before.Grid), countIDs(after.Grid))
	s.Contains(s.publisher.types(), model.EventBoardShuffled)
}

func (s *ControllerSuite) TestEndReturnsToIdle() {
	s.saveSettings(2, 2, 2, true)
	_, err := s.controller.Start(s.ctx, s.id)
	s.Require().NoError(err)
	s.Equal(1, s.clock.PendingTimers())

	s.Require().NoError(s.controller.End(s.ctx, s.id))

	snap, err := s.controller.GetSession(s.ctx, s.id)
	s.Require().NoError(err)
	s.Equal(model.SessionStateIdle, snap.State)
	s.Equal(model.RoundOutcomeEnded, snap.LastOutcome)
	s.Nil(snap.Grid)
	s.Equal(0, s.clock.PendingTimers())
}

// Timeout tests

func (s *ControllerSuite) TestTimeoutEndsRound() {
	s.saveSettings(2, 2, 2, true)
	snap, err := s.controller.Start(s.ctx, s.id)
	s.Require().NoError(err)
	s.Equal(100*time.Millisecond, snap.TimeRemaining)

	s.clock.Advance(99 * time.Millisecond)
	snap, err = s.controller.GetSession(s.ctx, s.id)
	s.Require().NoError(err)
	s.Equal(model.SessionStatePlaying, snap.State)

	s.clock.Advance(2 * time.Millisecond)
	snap, err = s.controller.GetSession(s.ctx, s.id)
	s.Require().NoError(err)
	s.Equal(model.SessionStateIdle, snap.State)
	s.Equal(model.RoundOutcomeTimedOut, snap.LastOutcome)
	s.Contains(s.publisher.types(), model.EventRoundTimedOut)
}

func (s *ControllerSuite) TestStaleTimeoutIsIgnored() {
	s.saveSettings(2, 2, 2, true)
	_, err := s.controller.Start(s.ctx, s.id)
	s.Require().NoError(err)
	s.Require().NoError(s.controller.End(s.ctx, s.id))

	_, err = s.controller.Start(s.ctx, s.id)
	s.Require().NoError(err)

	// A late callback from round 1 must not end round 2
	s.controller.handleTimeout(s.id, 1)

	snap, err := s.controller.GetSession(s.ctx, s.id)
	s.Require().NoError(err)
	s.Equal(model.SessionStatePlaying, snap.State)
	s.Equal(model.RoundID(2), snap.RoundID)
}

func (s *ControllerSuite) TestTimeoutAfterClearIsIgnored() {
	s.saveSettings(2, 2, 2, true)
	snap, err := s.controller.Start(s.ctx, s.id)
	s.Require().NoError(err)

	result, err := s.controller.Submit(s.ctx, s.id, pairsByPattern(snap))
	s.Require().NoError(err)
	s.Require().True(result.Cleared)

	s.controller.handleTimeout(s.id, 1)
	s.clock.Advance(time.Second)

	after, err := s.controller.GetSession(s.ctx, s.id)
	s.Require().NoError(err)
	s.Equal(model.RoundOutcomeCleared, after.LastOutcome)
}

// Settings tests

func (s *ControllerSuite) TestSettingsDefaultWhenUnset() {
	settings, err := s.controller.GetSettings(s.ctx, s.id)
	s.Require().NoError(err)
	s.Equal(model.DefaultSettings(s.id), settings)
}

func (s *ControllerSuite) TestSetSize() {
	settings, err := s.controller.SetSize(s.ctx, s.id, 4, 6)
	s.Require().NoError(err)
	s.Equal(4, settings.Rows)
	s.Equal(6, settings.Cols)

	stored, err := s.storage.GetSettings(s.ctx, s.id)
	s.Require().NoError(err)
	s.Equal(settings, stored)
}

func (s *ControllerSuite) TestSetSizeRejectsInvalidDimensions() {
	_, err := s.controller.SetSize(s.ctx, s.id, 3, 3)
	s.ErrorIs(err, model.ErrOddCellCount)

	_, err = s.controller.SetSize(s.ctx, s.id, 1, 4)
	s.ErrorIs(err, model.ErrInvalidDimensions)
}

func (s *ControllerSuite) TestSetPatternTypes() {
	settings, err := s.controller.SetPatternTypes(s.ctx, s.id, 12)
	s.Require().NoError(err)
	s.Equal(12, settings.MaxPatternTypes)

	_, err = s.controller.SetPatternTypes(s.ctx, s.id, 0)
	s.ErrorIs(err, model.ErrPatternTypesOutOfRange)
}

func (s *ControllerSuite) TestToggleTimed() {
	settings, err := s.controller.ToggleTimed(s.ctx, s.id)
	s.Require().NoError(err)
	s.True(settings.TimedMode)

	settings, err = s.controller.ToggleTimed(s.ctx, s.id)
	s.Require().NoError(err)
	s.False(settings.TimedMode)
}

func (s *ControllerSuite) TestResetMaxScore() {
	_, err := s.storage.RecordScore(s.ctx, s.id, 50)
	s.Require().NoError(err)

	settings, err := s.controller.ResetMaxScore(s.ctx, s.id)
	s.Require().NoError(err)
	s.Equal(0, settings.MaxScore)
}

func (s *ControllerSuite) TestSettingsLockedWhilePlaying() {
	_, err := s.controller.Start(s.ctx, s.id)
	s.Require().NoError(err)

	_, err = s.controller.SetSize(s.ctx, s.id, 4, 4)
	s.ErrorIs(err, model.ErrSettingsLocked)
	_, err = s.controller.SetPatternTypes(s.ctx, s.id, 4)
	s.ErrorIs(err, model.ErrSettingsLocked)
	_, err = s.controller.ToggleTimed(s.ctx, s.id)
	s.ErrorIs(err, model.ErrSettingsLocked)
	_, err = s.controller.ResetMaxScore(s.ctx, s.id)
	s.ErrorIs(err, model.ErrSettingsLocked)

	// Reading is still allowed
	_, err = s.controller.GetSettings(s.ctx, s.id)
	s.NoError(err)
}

func (s *ControllerSuite) TestHintSuggestsSimplestPair() {
	s.saveSettings(2, 4, 2, false)
	_, err := s.controller.Start(s.ctx, s.id)
	s.Require().NoError(err)

	s.installBoard([][]int{
		{1, 1, 2, 2},
		{2, 2, 1, 1},
	}, 2)

	hint, err := s.controller.Hint(s.ctx, s.id)
	s.Require().NoError(err)
	s.True(hint.Found)
	s.Equal(model.Pair{A: model.Coordinate{Row: 1, Col: 1}, B: model.Coordinate{Row: 1, Col: 2}}, hint.Pair)
	s.Equal(0, hint.Path.Bends())
	s.Equal(4, hint.Cols)
	s.Greater(hint.Linkable, 1)

	// Asking for a hint leaves the board alone
	snap, err := s.controller.GetSession(s.ctx, s.id)
	s.Require().NoError(err)
	s.Equal(8, snap.TilesRemaining)
}

func (s *ControllerSuite) TestHintWhenIdle() {
	_, err := s.controller.Hint(s.ctx, s.id)
	s.ErrorIs(err, model.ErrNotPlaying)
}

func countIDs(grid [][]int) map[int]int {
	counts := make(map[int]int)
	for _, row := range grid {
		for _, id := range row {
			if id != model.Empty {
				counts[id]++
			}
		}
	}
	return counts
}
