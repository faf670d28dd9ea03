package combat

import "fmt"

// maxCardsPerTurn bounds the autopilot against zero-cost loops.
const maxCardsPerTurn = 30

// NextPlay picks the card the autopilot would play: the first affordable,
// playable card in hand. Attacks aim at the weakest enemy. ok is false
// when nothing can be played.
func (e *Engine) NextPlay(st *CombatState) (Action, bool) {
	if st == nil || st.Phase != PhasePlayerTurn {
		return Action{}, false
	}
	for _, c := range st.Hand {
		def := e.cardDef(c)
		if def == nil || def.Unplayable || e.EffectiveCost(c) > st.Player.Energy {
			continue
		}
		target := ""
		if def.Type == CardTypeAttack {
			target = firstOr(e.resolveKeyword(st, TargetWeakestEnemy, EffectContext{}), "")
		}
		return Action{Type: ActionPlayCard, Card: c.UID, Target: target, Desc: "play " + def.Name}, true
	}
	return Action{}, false
}

// LegalActions lists what the player may do now: each affordable, playable
// card in hand, once per live enemy for cards aimed at a single enemy,
// followed by ending the turn.
func (e *Engine) LegalActions(st *CombatState) []Action {
	if st == nil || st.Phase != PhasePlayerTurn {
		return nil
	}
	var out []Action
	for _, c := range st.Hand {
		def := e.cardDef(c)
		if def == nil || def.Unplayable || e.EffectiveCost(c) > st.Player.Energy {
			continue
		}
		name := def.Name
		if c.Upgraded {
			name += "+"
		}
		if aimed(def) && len(st.Enemies) > 1 {
			for _, en := range st.Enemies {
				out = append(out, Action{Type: ActionPlayCard, Card: c.UID, Target: en.ID,
					Desc: fmt.Sprintf("play %s (%d) at %s", name, e.EffectiveCost(c), en.ID)})
			}
			continue
		}
		out = append(out, Action{Type: ActionPlayCard, Card: c.UID,
			Desc: fmt.Sprintf("play %s (%d)", name, e.EffectiveCost(c))})
	}
	return append(out, Action{Type: ActionEndTurn, Desc: "end turn"})
}

func aimed(def *CardDefinition) bool {
	return def.Target == TargetEnemy || (def.Target == "" && def.Type == CardTypeAttack)
}

// AutoTurn plays cards until nothing is affordable, then ends the turn.
func (e *Engine) AutoTurn(run *RunState) *RunState {
	for range maxCardsPerTurn {
		if run.Combat == nil || run.Combat.Phase != PhasePlayerTurn {
			return run
		}
		a, ok := e.NextPlay(run.Combat)
		if !ok {
			break
		}
		next := e.ApplyAction(run, a)
		if len(next.Combat.Hand) == len(run.Combat.Hand) && next.Combat.Stats.CardsPlayed == run.Combat.Stats.CardsPlayed {
			break
		}
		run = next
	}
	if run.Combat != nil && run.Combat.Phase == PhasePlayerTurn {
		run = e.ApplyAction(run, Action{Type: ActionEndTurn})
	}
	return run
}

// FinishRound lets every living enemy act in order and starts the next
// player turn.
func (e *Engine) FinishRound(run *RunState) *RunState {
	if run.Combat == nil || run.Combat.Phase != PhaseEnemyTurn {
		return run
	}
	ids := make([]string, len(run.Combat.Enemies))
	for i, en := range run.Combat.Enemies {
		ids[i] = en.ID
	}
	for _, id := range ids {
		if run.Combat.Phase != PhaseEnemyTurn {
			return run
		}
		run = e.ApplyAction(run, Action{Type: ActionEnemyAction, Target: id})
	}
	return e.ApplyAction(run, Action{Type: ActionStartTurn})
}

// AutoPlay drives a combat to its end, or until maxTurns player turns have
// passed.
func (e *Engine) AutoPlay(run *RunState, maxTurns int) *RunState {
	for run.InCombat() && run.Combat.Turn <= maxTurns {
		run = e.AutoTurn(run)
		run = e.FinishRound(run)
	}
	return run
}
