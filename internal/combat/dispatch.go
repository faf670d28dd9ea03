package combat

import (
	"slices"

	"github.com/peterkuimelis/cardcrawl/internal/log"
	"go.uber.org/zap"
)

// ApplyAction returns the run after applying the action. The input is never
// modified. Every action is total: unknown ids and failed preconditions
// leave the state unchanged apart from effects already applied.
func (e *Engine) ApplyAction(run *RunState, a Action) *RunState {
	if run == nil {
		return nil
	}
	next := run.Clone()
	e.apply(next, a)
	return next
}

func (e *Engine) apply(run *RunState, a Action) {
	switch a.Type {
	case ActionSelectRoom:
		e.selectRoom(run, a.Room)
		return
	case ActionDealRoomChoices:
		e.dealRoomChoices(run, a.Rooms, a.Amount)
		return
	case ActionStartCombat:
		e.startCombat(run, a.Enemies, Room{ID: a.Room, Kind: RoomCombat})
		return
	}

	st := run.Combat
	if st.Over() {
		e.skip("no active combat", zap.Stringer("action", a.Type))
		return
	}

	switch a.Type {
	case ActionSpendEnergy:
		if a.Amount > 0 {
			e.changeEnergy(st, -a.Amount)
		}
	case ActionGainEnergy:
		if a.Amount > 0 {
			e.changeEnergy(st, a.Amount)
		}
	case ActionStartTurn:
		e.startTurn(st)
	case ActionEndTurn:
		e.endTurn(st)
	case ActionDamage:
		opts := DamageOptions{Element: a.Element, Piercing: a.Piercing}
		e.dealDamage(st, entityOrPlayer(a.Target), a.Amount, opts, false, 0)
	case ActionHeal:
		e.heal(st, entityOrPlayer(a.Target), a.Amount, 0)
	case ActionAddBlock:
		e.gainBlock(st, entityOrPlayer(a.Target), a.Amount, false)
	case ActionPlayCard:
		e.playCard(st, a.Card, a.Target)
	case ActionDrawCards:
		e.drawCards(st, a.Amount)
	case ActionApplyPower:
		e.applyPower(st, entityOrPlayer(a.Target), a.Power, a.Amount)
	case ActionEnemyAction:
		e.enemyAction(st, a.Target)
	default:
		e.skip("unknown action", zap.Int("type", int(a.Type)))
	}

	if st.Over() && !st.Settled {
		e.settle(run)
	}
}

func entityOrPlayer(id string) string {
	if id == "" {
		return PlayerID
	}
	return id
}

// --- Turn structure ---

// startTurn moves from the enemy turn to the next player turn.
func (e *Engine) startTurn(st *CombatState) {
	if !e.transition(st, eventStartTurn) {
		return
	}
	st.Turn++
	st.Acted = nil
	if !e.passive(st, PlayerID).RetainBlock {
		st.Player.Block = 0
	}
	e.beginPlayerTurn(st)
}

// beginPlayerTurn refills energy, draws the hand and fires onTurnStart.
// The first turn of a combat enters here directly, keeping any block
// granted at combat start.
func (e *Engine) beginPlayerTurn(st *CombatState) {
	st.CardsPlayedThisTurn = 0
	pass := e.passive(st, PlayerID)
	carry := 0
	if pass.RetainEnergy {
		carry = st.Player.Energy
	}
	st.Player.Energy = st.Player.MaxEnergy + carry
	st.emit(log.NewTurnEvent(st.Turn))

	e.drawCards(st, e.handSize)
	e.fireTrigger(st, PlayerID, OnTurnStart, EffectContext{})
}

// endTurn fires onTurnEnd, clears the hand and hands control to the enemies.
func (e *Engine) endTurn(st *CombatState) {
	if st.Phase != PhasePlayerTurn {
		e.skip("endTurn outside player turn", zap.Stringer("phase", st.Phase))
		return
	}
	e.fireTrigger(st, PlayerID, OnTurnEnd, EffectContext{})
	if st.Phase.Terminal() {
		return
	}

	hand := st.Hand
	st.Hand = nil
	for _, c := range hand {
		def := e.cardDef(c)
		switch {
		case c.Retain || (def != nil && def.Retain):
			c.Retain = false
			st.Hand = append(st.Hand, c)
		case def != nil && def.Ethereal:
			st.ExhaustPile = append(st.ExhaustPile, c)
			st.emit(log.NewExhaustEvent(c.UID, def.Name, "ethereal"))
		default:
			st.DiscardPile = append(st.DiscardPile, c)
		}
	}
	for _, p := range []Pile{PileHand, PileDraw, PileDiscard, PileExhaust} {
		for _, c := range *st.pile(p) {
			c.TurnCostModifier = 0
		}
	}

	st.Acted = nil
	e.transition(st, eventEndTurn)
}

// enemyAction runs one enemy's turn during the enemy phase. Each enemy acts
// at most once per enemy turn.
func (e *Engine) enemyAction(st *CombatState, id string) {
	if st.Phase != PhaseEnemyTurn {
		e.skip("enemyAction outside enemy turn", zap.Stringer("phase", st.Phase))
		return
	}
	if slices.Contains(st.Acted, id) {
		e.skip("enemy already acted", zap.String("enemy", id))
		return
	}
	if st.Enemy(id) != nil {
		st.Acted = append(st.Acted, id)
	}
	e.enemyTurn(st, id)
}

// playCard pays for and resolves a card from the hand.
func (e *Engine) playCard(st *CombatState, uid, target string) {
	if st.Phase != PhasePlayerTurn {
		e.skip("playCard outside player turn", zap.Stringer("phase", st.Phase))
		return
	}
	card := st.HandCard(uid)
	if card == nil {
		e.skip("card not in hand", zap.String("card", uid))
		return
	}
	def := e.cardDef(card)
	if def == nil || def.Unplayable {
		e.skip("card not playable", zap.String("card", card.DefinitionID))
		return
	}
	cost := e.EffectiveCost(card)
	if st.Player.Energy < cost {
		e.skip("not enough energy", zap.String("card", card.DefinitionID),
			zap.Int("cost", cost), zap.Int("energy", st.Player.Energy))
		return
	}
	if target == "" {
		target = firstOr(st.opponents(PlayerID), "")
	} else if ent := st.Entity(target); ent == nil || !ent.Alive() {
		e.skip("card target missing", zap.String("target", target))
		return
	}

	e.changeEnergy(st, -cost)
	st.takeCard(uid)
	e.resolveCard(st, card, target, cost, false, 0)
}
