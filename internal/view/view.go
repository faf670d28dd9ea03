// Package view turns run and combat state into the flat JSON shapes read by
// the CLI and MCP surfaces.
package view

import (
	"fmt"

	"github.com/peterkuimelis/cardcrawl/internal/combat"
	"github.com/peterkuimelis/cardcrawl/internal/log"
)

// EventView is a visual event as sent to a client.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Type    string `json:"type"`
	Source  string `json:"source,omitempty"`
	Target  string `json:"target,omitempty"`
	Card    string `json:"card,omitempty"`
	Amount  int    `json:"amount,omitempty"`
	Details string `json:"details"`
}

// ActionView is a numbered action choice.
type ActionView struct {
	Index int    `json:"index"`
	Desc  string `json:"desc"`
}

// CardView describes a card in hand.
type CardView struct {
	UID      string `json:"uid"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Cost     int    `json:"cost"`
	Upgraded bool   `json:"upgraded,omitempty"`
	Text     string `json:"text,omitempty"`
}

// PowerView is one held power.
type PowerView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

// EntityView shows the defenses and statuses of the player or an enemy.
type EntityView struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	HP        int         `json:"hp"`
	MaxHP     int         `json:"max_hp"`
	Block     int         `json:"block,omitempty"`
	Barrier   int         `json:"barrier,omitempty"`
	Powers    []PowerView `json:"powers,omitempty"`
	Intent    string      `json:"intent,omitempty"`
	Energy    int         `json:"energy,omitempty"`
	MaxEnergy int         `json:"max_energy,omitempty"`
}

// CombatView is one encounter from the player's perspective.
type CombatView struct {
	Turn         int                `json:"turn"`
	Phase        string             `json:"phase"`
	Player       EntityView         `json:"player"`
	Enemies      []EntityView       `json:"enemies"`
	Hand         []CardView         `json:"hand"`
	DrawCount    int                `json:"draw_count"`
	DiscardCount int                `json:"discard_count"`
	ExhaustCount int                `json:"exhaust_count"`
	Stats        combat.CombatStats `json:"stats"`
}

// RunView is the whole run.
type RunView struct {
	Hero        combat.Hero     `json:"hero"`
	Gold        int             `json:"gold"`
	Floor       int             `json:"floor"`
	DeckCount   int             `json:"deck_count"`
	Relics      []string        `json:"relics,omitempty"`
	RoomChoices []string        `json:"room_choices,omitempty"`
	Combat      *CombatView     `json:"combat,omitempty"`
	Stats       combat.RunStats `json:"stats"`
}

// BuildRunView snapshots a run. Definitions are looked up through the
// engine's registry for display names.
func BuildRunView(e *combat.Engine, run *combat.RunState) *RunView {
	if run == nil {
		return nil
	}
	rv := &RunView{
		Hero:      run.Hero,
		Gold:      run.Gold,
		Floor:     run.Floor,
		DeckCount: len(run.Deck),
		Stats:     run.Stats,
	}
	reg := e.Registry()
	for _, id := range run.Relics {
		name := id
		if rel, ok := reg.Relic(id); ok {
			name = rel.Name
		}
		rv.Relics = append(rv.Relics, name)
	}
	for _, room := range run.RoomChoices {
		rv.RoomChoices = append(rv.RoomChoices, fmt.Sprintf("%s (%s)", room.ID, room.Kind))
	}
	rv.Combat = BuildCombatView(e, run.Combat)
	return rv
}

// BuildCombatView snapshots a combat.
func BuildCombatView(e *combat.Engine, st *combat.CombatState) *CombatView {
	if st == nil {
		return nil
	}
	reg := e.Registry()
	cv := &CombatView{
		Turn:         st.Turn,
		Phase:        st.Phase.String(),
		Enemies:      []EntityView{},
		Hand:         []CardView{},
		DrawCount:    len(st.DrawPile),
		DiscardCount: len(st.DiscardPile),
		ExhaustCount: len(st.ExhaustPile),
		Stats:        st.Stats,
	}
	if st.Player != nil {
		cv.Player = entityView(reg, &st.Player.Entity, "You")
		cv.Player.Energy = st.Player.Energy
		cv.Player.MaxEnergy = st.Player.MaxEnergy
	}
	for _, en := range st.Enemies {
		ev := entityView(reg, &en.Entity, en.Name)
		ev.Intent = FormatIntent(en.Intent)
		cv.Enemies = append(cv.Enemies, ev)
	}
	for _, c := range st.Hand {
		cv.Hand = append(cv.Hand, cardView(e, c))
	}
	return cv
}

func entityView(reg *combat.Registry, ent *combat.Entity, name string) EntityView {
	ev := EntityView{
		ID:      ent.ID,
		Name:    name,
		HP:      ent.CurrentHealth,
		MaxHP:   ent.MaxHealth,
		Block:   ent.Block,
		Barrier: ent.Barrier,
	}
	for _, id := range ent.PowerIDs() {
		pname := id
		if def, ok := reg.Power(id); ok && def.Name != "" {
			pname = def.Name
		}
		ev.Powers = append(ev.Powers, PowerView{ID: id, Name: pname, Amount: ent.Stacks(id)})
	}
	return ev
}

func cardView(e *combat.Engine, c *combat.CardInstance) CardView {
	cv := CardView{
		UID:      c.UID,
		ID:       c.DefinitionID,
		Name:     c.DefinitionID,
		Cost:     e.EffectiveCost(c),
		Upgraded: c.Upgraded,
	}
	if def, ok := e.Registry().Card(c.DefinitionID); ok {
		cv.Name = def.Name
		cv.Type = string(def.Type)
		cv.Text = def.Description
		if c.Upgraded && def.Upgrade != nil && def.Upgrade.Description != "" {
			cv.Text = def.Upgrade.Description
		}
	}
	return cv
}

// FormatIntent renders an enemy intent as a short label.
func FormatIntent(in combat.Intent) string {
	switch {
	case in.Label != "":
		return in.Label
	case in.Type == combat.IntentAttack && in.Times > 1:
		return fmt.Sprintf("attack %dx%d", in.Value, in.Times)
	case in.Value > 0:
		return fmt.Sprintf("%s %d", in.Type, in.Value)
	default:
		return string(in.Type)
	}
}

// Events converts visual events for a client.
func Events(events []log.VisualEvent) []EventView {
	out := make([]EventView, 0, len(events))
	for _, ev := range events {
		out = append(out, EventView{
			Seq:     ev.Seq,
			Turn:    ev.Turn,
			Phase:   ev.Phase,
			Type:    ev.Type.String(),
			Source:  ev.Source,
			Target:  ev.Target,
			Card:    ev.Card,
			Amount:  ev.Amount,
			Details: ev.Details,
		})
	}
	return out
}

// Actions numbers a list of actions.
func Actions(actions []combat.Action) []ActionView {
	out := make([]ActionView, 0, len(actions))
	for i, a := range actions {
		out = append(out, ActionView{Index: i, Desc: a.String()})
	}
	return out
}
