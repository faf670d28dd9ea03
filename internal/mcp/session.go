package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/peterkuimelis/cardcrawl/internal/combat"
	"github.com/peterkuimelis/cardcrawl/internal/log"
	"github.com/peterkuimelis/cardcrawl/internal/view"
	"go.uber.org/zap"
)

// DecisionType identifies what the run is waiting for.
type DecisionType string

const (
	DecisionChooseRoom   DecisionType = "choose_room"
	DecisionChooseAction DecisionType = "choose_action"
	DecisionGameOver     DecisionType = "game_over"
)

// RoomsPerFloor is the number of rooms offered between encounters.
const RoomsPerFloor = 3

var (
	ErrWrongDecision = errors.New("wrong decision")
	ErrInvalidChoice = errors.New("invalid choice")
)

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events   []view.EventView `json:"events"`
	State    *view.RunView    `json:"state,omitempty"`
	Pending  *PendingView     `json:"pending,omitempty"`
	GameOver bool             `json:"game_over"`
	Result   string           `json:"result,omitempty"`
	Seed     int64            `json:"seed,omitempty"`
}

// PendingView is the decision the caller must make next.
type PendingView struct {
	Type    DecisionType      `json:"type"`
	Actions []view.ActionView `json:"actions,omitempty"`
	Rooms   []string          `json:"rooms,omitempty"`
}

// Session holds one run driven through MCP tools. All methods are safe for
// concurrent use.
type Session struct {
	engine *combat.Engine
	logger *zap.Logger
	seed   int64

	mu      sync.Mutex
	run     *combat.RunState
	actions []combat.Action
	events  *log.MemoryLogger
}

// NewSession starts a run for the hero and deals the first rooms.
func NewSession(engine *combat.Engine, logger *zap.Logger, hero string, seed int64) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	run, err := engine.StartRun(hero, seed)
	if err != nil {
		return nil, fmt.Errorf("start run: %w", err)
	}
	s := &Session{
		engine: engine,
		logger: logger,
		seed:   seed,
		run:    run,
		events: log.NewMemoryLogger(),
	}
	s.advance()
	logger.Info("run started", zap.String("hero", hero), zap.Int64("seed", seed))
	return s, nil
}

// collect moves queued events from the run into the session buffer.
func (s *Session) collect() {
	log.Drain(&s.run.VisualQueue, s.events)
	if s.run.Combat != nil {
		log.Drain(&s.run.Combat.VisualQueue, s.events)
	}
}

// drainEvents returns the buffered events and clears the buffer.
func (s *Session) drainEvents() []view.EventView {
	events := view.Events(s.events.Events())
	s.events = log.NewMemoryLogger()
	return events
}

// over reports whether the run has ended.
func (s *Session) over() bool {
	return s.run.Hero.CurrentHealth <= 0
}

// snapshot builds the response for the current state, draining events.
func (s *Session) snapshot() *ToolResponse {
	resp := &ToolResponse{
		Events: s.drainEvents(),
		State:  view.BuildRunView(s.engine, s.run),
		Seed:   s.seed,
	}
	switch pending := s.pending(); pending.Type {
	case DecisionGameOver:
		resp.GameOver = true
		resp.Result = fmt.Sprintf("Defeated on floor %d with %d gold.", s.run.Floor, s.run.Gold)
	default:
		resp.Pending = pending
	}
	return resp
}

// State returns the current state and any events not yet reported.
func (s *Session) State() *ToolResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// ChooseRoom enters one of the offered rooms.
func (s *Session) ChooseRoom(id string) (*ToolResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t := s.pending().Type; t != DecisionChooseRoom {
		return nil, fmt.Errorf("%w: pending decision is %q", ErrWrongDecision, t)
	}
	if !slices.ContainsFunc(s.run.RoomChoices, func(r combat.Room) bool { return r.ID == id }) {
		return nil, fmt.Errorf("%w: room %q is not on offer", ErrInvalidChoice, id)
	}
	s.apply(combat.Action{Type: combat.ActionSelectRoom, Room: id})
	s.advance()
	return s.snapshot(), nil
}

// TakeAction performs the action at index in the pending action list.
func (s *Session) TakeAction(index int) (*ToolResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t := s.pending().Type; t != DecisionChooseAction {
		return nil, fmt.Errorf("%w: pending decision is %q", ErrWrongDecision, t)
	}
	if index < 0 || index >= len(s.actions) {
		return nil, fmt.Errorf("%w: index %d, must be 0-%d", ErrInvalidChoice, index, len(s.actions)-1)
	}
	s.apply(s.actions[index])
	s.advance()
	return s.snapshot(), nil
}

// AutoTurn lets the autopilot play the rest of the current turn.
func (s *Session) AutoTurn() (*ToolResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t := s.pending().Type; t != DecisionChooseAction {
		return nil, fmt.Errorf("%w: pending decision is %q", ErrWrongDecision, t)
	}
	s.run = s.engine.AutoTurn(s.run)
	s.collect()
	s.advance()
	return s.snapshot(), nil
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
