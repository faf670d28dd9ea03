package combat

import (
	"context"

	"github.com/looplab/fsm"
	"github.com/peterkuimelis/cardcrawl/internal/log"
	"go.uber.org/zap"
)

// Phase machine events.
const (
	eventEndTurn   = "endTurn"
	eventStartTurn = "startTurn"
	eventWin       = "win"
	eventLose      = "lose"
)

var phaseEvents = fsm.Events{
	{Name: eventEndTurn, Src: []string{PhasePlayerTurn.String()}, Dst: PhaseEnemyTurn.String()},
	{Name: eventStartTurn, Src: []string{PhaseEnemyTurn.String()}, Dst: PhasePlayerTurn.String()},
	{Name: eventWin, Src: []string{PhasePlayerTurn.String(), PhaseEnemyTurn.String()}, Dst: PhaseVictory.String()},
	{Name: eventLose, Src: []string{PhasePlayerTurn.String(), PhaseEnemyTurn.String(), PhaseVictory.String()}, Dst: PhaseDefeat.String()},
}

// newPhaseMachine builds a machine positioned at the given phase. The phase
// itself lives in the state so it survives cloning and snapshots.
func newPhaseMachine(p Phase) *fsm.FSM {
	return fsm.NewFSM(p.String(), phaseEvents, fsm.Callbacks{})
}

// CanTransition reports whether the event is legal from the current phase.
func (cs *CombatState) CanTransition(event string) bool {
	return newPhaseMachine(cs.Phase).Can(event)
}

// transition fires a phase event. Illegal transitions are ignored.
func (e *Engine) transition(st *CombatState, event string) bool {
	m := newPhaseMachine(st.Phase)
	if err := m.Event(context.Background(), event); err != nil {
		e.skip("phase transition rejected",
			zap.String("phase", st.Phase.String()),
			zap.String("event", event),
			zap.Error(err))
		return false
	}
	next, ok := parsePhase(m.Current())
	if !ok {
		return false
	}
	from := st.Phase
	st.Phase = next
	st.emit(log.NewPhaseChangeEvent(from.String(), next.String()))
	return true
}
