package mcp

import (
	"github.com/peterkuimelis/cardcrawl/internal/combat"
	"github.com/peterkuimelis/cardcrawl/internal/view"
	"go.uber.org/zap"
)

// maxAdvanceSteps bounds the automatic steps taken between two decisions.
const maxAdvanceSteps = 4

// apply dispatches one action and collects its events.
func (s *Session) apply(a combat.Action) {
	s.logger.Debug("apply", zap.Stringer("action", a))
	s.run = s.engine.ApplyAction(s.run, a)
	s.collect()
}

// advance runs everything that needs no decision: enemy turns after the
// player ends a turn, and fresh room choices once no combat is running.
func (s *Session) advance() {
	for range maxAdvanceSteps {
		st := s.run.Combat
		switch {
		case st != nil && st.Phase == combat.PhaseEnemyTurn:
			s.run = s.engine.FinishRound(s.run)
			s.collect()
		case !s.run.InCombat() && len(s.run.RoomChoices) == 0 && !s.over():
			s.apply(combat.Action{Type: combat.ActionDealRoomChoices, Amount: RoomsPerFloor})
			if len(s.run.RoomChoices) == 0 {
				s.logger.Warn("no rooms to deal")
				return
			}
		default:
			return
		}
	}
}

// pending derives the decision the run waits for and refreshes the legal
// action list.
func (s *Session) pending() *PendingView {
	s.actions = nil
	switch {
	case s.over():
		return &PendingView{Type: DecisionGameOver}
	case s.run.InCombat():
		s.actions = s.engine.LegalActions(s.run.Combat)
		return &PendingView{Type: DecisionChooseAction, Actions: view.Actions(s.actions)}
	default:
		pv := &PendingView{Type: DecisionChooseRoom}
		for _, r := range s.run.RoomChoices {
			pv.Rooms = append(pv.Rooms, r.ID)
		}
		return pv
	}
}
