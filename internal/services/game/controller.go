package game

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mcoot/linkgame/internal/dependencies/clock"
	"github.com/mcoot/linkgame/internal/model"
	"github.com/mcoot/linkgame/internal/services/board"
	"github.com/mcoot/linkgame/internal/services/hint"
	"github.com/mcoot/linkgame/internal/services/move"
	"github.com/mcoot/linkgame/internal/services/pathfind"
	"github.com/mcoot/linkgame/internal/services/scoring"
	"github.com/mcoot/linkgame/internal/storage"
)

// Publisher receives game events as they happen
type Publisher interface {
	Publish(event model.Event)
}

// Config holds the rules that apply to every conversation
type Config struct {
	BendPolicy        pathfind.BendPolicy
	PerPairTimeBudget time.Duration // timed mode allows this much per pair on the board
}

// DefaultConfig returns the standard rules
func DefaultConfig() Config {
	return Config{
		BendPolicy:        pathfind.DefaultBendPolicy(),
		PerPairTimeBudget: 10 * time.Second,
	}
}

// Controller manages the session state machine and round flow
type Controller struct {
	cfg            Config
	storage        storage.Storage
	boardService   *board.Service
	validator      *move.Validator
	scoringService *scoring.Service
	hintService    *hint.Service
	clock          clock.Clock
	publisher      Publisher
	registry       *Registry
	logger         *slog.Logger
}

// NewController creates a new GameController. hintStrategy and publisher may be nil.
func NewController(
	cfg Config,
	storage storage.Storage,
	boardService *board.Service,
	scoringService *scoring.Service,
	hintStrategy hint.Strategy,
	clock clock.Clock,
	publisher Publisher,
	logger *slog.Logger,
) *Controller {
	finder := pathfind.NewFinder(cfg.BendPolicy)
	return &Controller{
		cfg:            cfg,
		storage:        storage,
		boardService:   boardService,
		validator:      move.NewValidator(finder),
		scoringService: scoringService,
		hintService:    hint.New(finder, hintStrategy, logger),
		clock:          clock,
		publisher:      publisher,
		registry:       NewRegistry(),
		logger:         logger,
	}
}

// Close cancels every pending round timeout
func (c *Controller) Close() {
	c.registry.Close()
}

// Start begins a new round sized by the conversation's settings
func (c *Controller) Start(ctx context.Context, id model.ConversationID) (*model.SessionSnapshot, error) {
	e := c.registry.acquire(id)
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s.IsPlaying() {
		return nil, model.ErrAlreadyPlaying
	}

	settings, err := c.loadSettings(ctx, id)
	if err != nil {
		return nil, err
	}

	b, err := c.boardService.Generate(settings.Rows, settings.Cols, settings.MaxPatternTypes)
	if err != nil {
		return nil, err
	}
	patterns, err := c.boardService.PickPatterns(settings.MaxPatternTypes)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	s.RoundCounter++
	round := &model.Round{
		ID:        s.RoundCounter,
		Board:     b,
		Patterns:  patterns,
		StartedAt: now,
		Timed:     settings.TimedMode,
	}
	s.Round = round
	s.State = model.SessionStatePlaying

	e.stopTimer()
	if round.Timed {
		round.TimeLimit = scoring.TimeLimit(b.Rows, b.Cols, c.cfg.PerPairTimeBudget)
		roundID := round.ID
		e.timer = c.clock.AfterFunc(round.TimeLimit, func() {
			c.handleTimeout(id, roundID)
		})
	}

	c.logger.Info("round started",
		slog.String("conversation_id", string(id)),
		slog.Uint64("round", uint64(round.ID)),
		slog.Int("rows", b.Rows),
		slog.Int("cols", b.Cols),
		slog.Int("pattern_types", settings.MaxPatternTypes),
		slog.Bool("timed", round.Timed),
		slog.Duration("time_limit", round.TimeLimit),
	)

	c.publish(model.Event{
		Type:           model.EventRoundStarted,
		Timestamp:      now,
		ConversationID: id,
		RoundID:        round.ID,
		Payload: model.RoundStartedPayload{
			Rows:      b.Rows,
			Cols:      b.Cols,
			Patterns:  patterns,
			TimeLimit: round.TimeLimit,
		},
	})

	return snapshot(s, now), nil
}

// Submit applies a batch of pairs to the live board. Pairs rejected in one
// pass are retried after the accepted pairs are removed, until a pass
// accepts nothing new.
func (c *Controller) Submit(ctx context.Context, id model.ConversationID, pairs []model.Pair) (*model.MoveResult, error) {
	e := c.registry.acquire(id)
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.session.IsPlaying() {
		return nil, model.ErrNotPlaying
	}
	return c.submit(ctx, e, pairs), nil
}

// SubmitOrders decodes raw cell-order tokens against the live board's width
// and submits the resulting pairs
func (c *Controller) SubmitOrders(ctx context.Context, id model.ConversationID, tokens []string) (*model.MoveResult, error) {
	e := c.registry.acquire(id)
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.session.IsPlaying() {
		return nil, model.ErrNotPlaying
	}

	decoded := model.DecodeOrderTokens(tokens, e.session.Round.Board.Cols)
	result := c.submit(ctx, e, decoded.Pairs)
	result.Dangling = decoded.Dangling
	return result, nil
}

// submit runs the batch against the live round; the caller holds e.mu
func (c *Controller) submit(ctx context.Context, e *entry, pairs []model.Pair) *model.MoveResult {
	s := e.session
	id := s.ConversationID
	round := s.Round
	now := c.clock.Now()
	result := &model.MoveResult{RoundID: round.ID, Cols: round.Board.Cols}

	pending := pairs
	for len(pending) > 0 {
		result.Passes++
		accepted, rejected := model.SplitVerdicts(c.validator.CheckBatch(round.Board, pending))
		for _, a := range accepted {
			round.Board.Remove(a.Pair.A, a.Pair.B)
		}
		result.Accepted = append(result.Accepted, accepted...)
		result.Rejected = rejected
		if len(accepted) == 0 {
			break
		}

		pending = make([]model.Pair, len(rejected))
		for i, r := range rejected {
			pending[i] = r.Pair
		}
	}

	c.logger.Debug("moves checked",
		slog.String("conversation_id", string(id)),
		slog.Uint64("round", uint64(round.ID)),
		slog.Int("submitted", len(pairs)),
		slog.Int("accepted", len(result.Accepted)),
		slog.Int("rejected", len(result.Rejected)),
		slog.Int("passes", result.Passes),
	)

	if len(result.Accepted) == 0 {
		result.Score = round.Score
		return result
	}

	c.scoringService.ScoreLinks(round, len(result.Accepted), now)
	c.publish(model.Event{
		Type:           model.EventTilesLinked,
		Timestamp:      now,
		ConversationID: id,
		RoundID:        round.ID,
		Payload: model.TilesLinkedPayload{
			Pairs:          linkedPairs(result.Accepted),
			TilesRemaining: round.Board.TileCount(),
			Score:          round.Score,
		},
	})

	if round.Board.IsClear() {
		result.Cleared = true
		c.scoringService.ClearBonus(round, now)
		if round.Timed {
			result.NewRecord = c.recordScore(ctx, id, round.Score)
		}
		result.Score = round.Score
		c.finish(e, model.RoundOutcomeCleared, result.NewRecord)
		return result
	}

	result.Score = round.Score
	return result
}

// Reshuffle reassigns the remaining tiles among the occupied cells
func (c *Controller) Reshuffle(ctx context.Context, id model.ConversationID) (*model.SessionSnapshot, error) {
	e := c.registry.acquire(id)
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if !s.IsPlaying() {
		return nil, model.ErrNotPlaying
	}

	now := c.clock.Now()
	c.boardService.Shuffle(s.Round.Board)

	c.logger.Info("board shuffled",
		slog.String("conversation_id", string(id)),
		slog.Uint64("round", uint64(s.Round.ID)),
		slog.Int("tiles_remaining", s.Round.Board.TileCount()),
	)
	c.publish(model.Event{
		Type:           model.EventBoardShuffled,
		Timestamp:      now,
		ConversationID: id,
		RoundID:        s.Round.ID,
	})

	return snapshot(s, now), nil
}

// End stops the live round and discards its board
func (c *Controller) End(ctx context.Context, id model.ConversationID) error {
	e := c.registry.acquire(id)
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.session.IsPlaying() {
		return model.ErrNotPlaying
	}
	c.finish(e, model.RoundOutcomeEnded, false)
	return nil
}

// Hint suggests a pair that can be linked on the live board
func (c *Controller) Hint(ctx context.Context, id model.ConversationID) (*model.Hint, error) {
	e := c.registry.acquire(id)
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.session.IsPlaying() {
		return nil, model.ErrNotPlaying
	}

	round := e.session.Round
	suggestion, linkable, found := c.hintService.Suggest(round.Board)
	return &model.Hint{
		RoundID:  round.ID,
		Cols:     round.Board.Cols,
		Found:    found,
		Pair:     suggestion.Pair,
		Path:     suggestion.Path,
		Linkable: linkable,
	}, nil
}

// GetSession returns a snapshot of the conversation's session
func (c *Controller) GetSession(ctx context.Context, id model.ConversationID) (*model.SessionSnapshot, error) {
	e, err := c.registry.lookup(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshot(e.session, c.clock.Now()), nil
}

// handleTimeout ends roundID if it is still the live round
func (c *Controller) handleTimeout(id model.ConversationID, roundID model.RoundID) {
	e, err := c.registry.lookup(id)
	if err != nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.session.IsCurrentRound(roundID) {
		c.logger.Debug("stale round timeout ignored",
			slog.String("conversation_id", string(id)),
			slog.Uint64("round", uint64(roundID)),
		)
		return
	}
	e.timer = nil
	c.finish(e, model.RoundOutcomeTimedOut, false)
}

// finish moves the session back to Idle and announces how the round ended
func (c *Controller) finish(e *entry, outcome model.RoundOutcome, newRecord bool) {
	s := e.session
	round := s.Round
	e.stopTimer()

	s.State = model.SessionStateIdle
	s.LastOutcome = outcome
	s.Round = nil

	c.logger.Info("round finished",
		slog.String("conversation_id", string(s.ConversationID)),
		slog.Uint64("round", uint64(round.ID)),
		slog.String("outcome", string(outcome)),
		slog.Int("score", round.Score),
		slog.Bool("new_record", newRecord),
	)

	eventType := model.EventRoundEnded
	switch outcome {
	case model.RoundOutcomeCleared:
		eventType = model.EventRoundCleared
	case model.RoundOutcomeTimedOut:
		eventType = model.EventRoundTimedOut
	}
	c.publish(model.Event{
		Type:           eventType,
		Timestamp:      c.clock.Now(),
		ConversationID: s.ConversationID,
		RoundID:        round.ID,
		Payload: model.RoundOverPayload{
			Outcome:   outcome,
			Score:     round.Score,
			NewRecord: newRecord,
		},
	})
}

// recordScore persists a winning score; a storage failure is logged and
// does not undo the win
func (c *Controller) recordScore(ctx context.Context, id model.ConversationID, score int) bool {
	newRecord, err := c.storage.RecordScore(ctx, id, score)
	if err != nil {
		c.logger.Error("failed to record score",
			slog.String("conversation_id", string(id)),
			slog.Int("score", score),
			slog.String("error", err.Error()),
		)
		return false
	}
	return newRecord
}

// loadSettings returns stored settings, or defaults for a new conversation
func (c *Controller) loadSettings(ctx context.Context, id model.ConversationID) (*model.Settings, error) {
	settings, err := c.storage.GetSettings(ctx, id)
	if errors.Is(err, model.ErrSettingsNotFound) {
		return model.DefaultSettings(id), nil
	}
	return settings, err
}

func (c *Controller) publish(event model.Event) {
	if c.publisher != nil {
		c.publisher.Publish(event)
	}
}

func linkedPairs(accepted []model.Accepted) []model.LinkedPair {
	pairs := make([]model.LinkedPair, len(accepted))
	for i, a := range accepted {
		pairs[i] = model.LinkedPair{
			A:       a.Pair.A,
			B:       a.Pair.B,
			Corners: a.Path.Corners(),
		}
	}
	return pairs
}

func snapshot(s *model.Session, now time.Time) *model.SessionSnapshot {
	snap := &model.SessionSnapshot{
		ConversationID: s.ConversationID,
		State:          s.State,
		RoundID:        s.RoundCounter,
		LastOutcome:    s.LastOutcome,
	}
	if s.Round == nil {
		return snap
	}

	r := s.Round
	snap.Rows = r.Board.Rows
	snap.Cols = r.Board.Cols
	snap.Grid = r.Board.Interior()
	snap.Patterns = append([]string(nil), r.Patterns...)
	snap.TilesRemaining = r.Board.TileCount()
	snap.Timed = r.Timed
	snap.Score = r.Score
	snap.TimeRemaining = r.TimeRemaining(now)
	return snap
}
