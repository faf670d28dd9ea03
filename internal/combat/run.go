package combat

import (
	"errors"
	"fmt"
	"slices"

	"github.com/peterkuimelis/cardcrawl/internal/log"
	"go.uber.org/zap"
)

// RestHealPercent is the share of max health a rest room restores.
const RestHealPercent = 30

// ErrUnknownContent is returned when a run is built from ids the registry
// does not define.
var ErrUnknownContent = errors.New("unknown content")

// NewRun creates a run for a hero with the given deck and relics. Card
// uids are drawn from the seeded dice.
func NewRun(hero Hero, deck []DeckCard, relics []string, seed int64) *RunState {
	run := &RunState{
		Hero:   hero,
		Relics: slices.Clone(relics),
		Dice:   NewDice(seed),
	}
	if run.Hero.CurrentHealth == 0 {
		run.Hero.CurrentHealth = run.Hero.MaxHealth
	}
	for _, entry := range deck {
		for range max(1, entry.Count) {
			run.Deck = append(run.Deck, NewCard(&run.Dice, entry.Card, entry.Upgraded))
		}
	}
	return run
}

// StartRun creates a run from a hero definition in the registry.
func (e *Engine) StartRun(heroID string, seed int64) (*RunState, error) {
	def, ok := e.reg.Hero(heroID)
	if !ok {
		return nil, fmt.Errorf("hero %q: %w", heroID, ErrUnknownContent)
	}
	deck, ok := e.reg.Deck(def.Deck)
	if !ok {
		return nil, fmt.Errorf("deck %q of hero %q: %w", def.Deck, heroID, ErrUnknownContent)
	}
	hero := Hero{Name: def.Name, MaxHealth: def.MaxHealth, MaxEnergy: def.MaxEnergy}
	return NewRun(hero, deck, def.Relics, seed), nil
}

// emit appends a run-level event (room flow) to the run's queue.
func (rs *RunState) emit(ev log.VisualEvent) {
	rs.EventSeq++
	ev.Seq = rs.EventSeq
	ev.Turn = rs.Floor
	ev.Phase = "map"
	rs.VisualQueue = append(rs.VisualQueue, ev)
}

// dealRoomChoices replaces the rooms on offer. Without explicit rooms,
// count distinct rooms are drawn from the registry with the run's dice.
func (e *Engine) dealRoomChoices(run *RunState, rooms []Room, count int) {
	if run.InCombat() {
		e.skip("dealRoomChoices during combat")
		return
	}
	if len(rooms) == 0 {
		rooms = e.drawRooms(run, count)
	}
	run.RoomChoices = make([]Room, len(rooms))
	ids := make([]string, len(rooms))
	for i, r := range rooms {
		r.Enemies = slices.Clone(r.Enemies)
		run.RoomChoices[i] = r
		ids[i] = r.ID
	}
	run.emit(log.NewRoomChoicesEvent(ids))
}

func (e *Engine) drawRooms(run *RunState, count int) []Room {
	ids := e.reg.RoomIDs()
	run.Dice.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	rooms := make([]Room, 0, count)
	for _, id := range ids[:min(max(0, count), len(ids))] {
		room, _ := e.reg.Room(id)
		rooms = append(rooms, room)
	}
	return rooms
}

// selectRoom enters one of the offered rooms.
func (e *Engine) selectRoom(run *RunState, id string) {
	if run.InCombat() {
		e.skip("selectRoom during combat", zap.String("room", id))
		return
	}
	i := slices.IndexFunc(run.RoomChoices, func(r Room) bool { return r.ID == id })
	if i < 0 {
		e.skip("room not on offer", zap.String("room", id))
		return
	}
	room := run.RoomChoices[i]
	run.RoomChoices = nil
	run.CurrentRoom = room.ID
	run.emit(log.NewRoomSelectedEvent(room.ID, string(room.Kind)))

	switch {
	case room.Kind.HasCombat():
		e.startCombat(run, room.Enemies, room)
	case room.Kind == RoomRest:
		amount := run.Hero.MaxHealth * RestHealPercent / 100
		run.Hero.CurrentHealth = min(run.Hero.MaxHealth, run.Hero.CurrentHealth+amount)
		run.Floor++
	case room.Kind == RoomTreasure:
		run.Gold += room.Gold
		run.Stats.GoldEarned += room.Gold
		run.Floor++
	default:
		run.Floor++
	}
}

// startCombat begins an encounter against the given enemy definitions.
func (e *Engine) startCombat(run *RunState, enemyIDs []string, room Room) {
	if run.InCombat() {
		e.skip("startCombat during combat")
		return
	}
	var defs []*EnemyDefinition
	var names []string
	for _, id := range enemyIDs {
		def, ok := e.reg.Enemy(id)
		if !ok {
			e.skip("unknown enemy", zap.String("enemy", id))
			continue
		}
		defs = append(defs, def)
		names = append(names, def.Name)
	}
	if len(defs) == 0 {
		e.skip("startCombat without enemies")
		return
	}

	reward := room.Gold
	if reward == 0 {
		for _, def := range defs {
			reward += def.Gold
		}
	}
	st := &CombatState{
		Phase: PhasePlayerTurn,
		Turn:  1,
		Player: &Player{
			Entity: Entity{
				ID:            PlayerID,
				CurrentHealth: run.Hero.CurrentHealth,
				MaxHealth:     run.Hero.MaxHealth,
				Powers:        make(map[string]*PowerInstance),
			},
			MaxEnergy: run.Hero.MaxEnergy,
		},
		Relics: slices.Clone(run.Relics),
		RoomID: room.ID,
		Reward: reward,
		Dice:   run.Dice,
	}
	st.emit(log.NewCombatStartEvent(names))
	for _, def := range defs {
		e.spawnEnemy(st, def)
	}

	st.DrawPile = cloneCards(run.Deck)
	e.shuffleDraw(st)
	// Innate cards go on top, keeping their shuffled order.
	var innate, rest []*CardInstance
	for _, c := range st.DrawPile {
		if def := e.cardDef(c); def != nil && def.Innate {
			innate = append(innate, c)
		} else {
			rest = append(rest, c)
		}
	}
	st.DrawPile = append(rest, innate...)

	run.Combat = st
	run.CurrentRoom = room.ID
	run.Stats.Combats++

	e.fireTrigger(st, PlayerID, OnCombatStart, EffectContext{})
	for _, en := range slices.Clone(st.Enemies) {
		e.fireTrigger(st, en.ID, OnCombatStart, EffectContext{})
	}
	if st.Phase.Terminal() {
		e.settle(run)
		return
	}
	e.beginPlayerTurn(st)
	if st.Phase.Terminal() {
		e.settle(run)
	}
}

// settle closes a finished combat: onCombatEnd fires, hero health is
// written back, the gold reward is paid and statistics roll into the run.
func (e *Engine) settle(run *RunState) {
	st := run.Combat
	if st == nil || st.Settled {
		return
	}
	st.Settled = true
	victory := st.Phase == PhaseVictory

	e.fireTrigger(st, PlayerID, OnCombatEnd, EffectContext{})
	st.emit(log.NewCombatEndEvent(st.Phase.String()))
	run.Hero.CurrentHealth = max(0, st.Player.CurrentHealth)

	if victory && st.Reward > 0 {
		e.gainGold(st, st.Reward, EffectContext{})
	}
	run.Gold += st.Stats.GoldGained
	run.Dice = st.Dice

	run.Stats.DamageDealt += st.Stats.DamageDealt
	run.Stats.DamageTaken += st.Stats.DamageTaken
	run.Stats.EnemiesKilled += st.Stats.EnemiesKilled
	run.Stats.CardsPlayed += st.Stats.CardsPlayed
	run.Stats.Combos += st.Stats.Combos
	run.Stats.GoldEarned += st.Stats.GoldGained
	if victory {
		run.Stats.Victories++
		run.Floor++
	}
}
