package view

import (
	"fmt"
	"io"
	"strings"
)

// RenderCombat draws a combat view as a text panel.
func RenderCombat(w io.Writer, cv *CombatView) {
	if cv == nil {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════╗")
	for _, en := range cv.Enemies {
		fmt.Fprintf(w, "║  %-14s %s  intent: %s\n", en.Name, formatEntity(en), en.Intent)
	}
	fmt.Fprintln(w, "║──────────────────────────────────────────────────────")
	p := cv.Player
	fmt.Fprintf(w, "║  YOU            %s  energy %d/%d\n", formatEntity(p), p.Energy, p.MaxEnergy)
	fmt.Fprintf(w, "║  Draw: %d  Discard: %d  Exhaust: %d\n", cv.DrawCount, cv.DiscardCount, cv.ExhaustCount)
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════╝")
	fmt.Fprintf(w, "Turn %d | %s\n", cv.Turn, cv.Phase)

	if len(cv.Hand) > 0 {
		fmt.Fprintf(w, "\nHand: ")
		for i, c := range cv.Hand {
			name := c.Name
			if c.Upgraded {
				name += "+"
			}
			fmt.Fprintf(w, "[%d] %s (%d)  ", i+1, name, c.Cost)
		}
		fmt.Fprintln(w)
	}
}

func formatEntity(ev EntityView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "HP %d/%d", ev.HP, ev.MaxHP)
	if ev.Block > 0 {
		fmt.Fprintf(&sb, "  block %d", ev.Block)
	}
	if ev.Barrier > 0 {
		fmt.Fprintf(&sb, "  barrier %d", ev.Barrier)
	}
	for _, p := range ev.Powers {
		fmt.Fprintf(&sb, "  %s:%d", p.Name, p.Amount)
	}
	return sb.String()
}

// RenderActions lists numbered actions, 1-based for humans.
func RenderActions(w io.Writer, actions []ActionView) {
	fmt.Fprintln(w, "\nActions:")
	for _, a := range actions {
		fmt.Fprintf(w, "  %d) %s\n", a.Index+1, a.Desc)
	}
}

// RenderRun draws the persistent part of a run.
func RenderRun(w io.Writer, rv *RunView) {
	if rv == nil {
		return
	}
	fmt.Fprintf(w, "%s  HP %d/%d  Gold %d  Floor %d  Deck %d\n",
		rv.Hero.Name, rv.Hero.CurrentHealth, rv.Hero.MaxHealth, rv.Gold, rv.Floor, rv.DeckCount)
	if len(rv.Relics) > 0 {
		fmt.Fprintf(w, "Relics: %s\n", strings.Join(rv.Relics, ", "))
	}
	if len(rv.RoomChoices) > 0 {
		fmt.Fprintf(w, "Rooms: %s\n", strings.Join(rv.RoomChoices, " | "))
	}
}

// RenderSummary prints the closing banner of a finished combat.
func RenderSummary(w io.Writer, cv *CombatView) {
	if cv == nil {
		return
	}
	s := cv.Stats
	fmt.Fprintln(w)
	fmt.Fprintln(w, "═══════════════════════════════════")
	fmt.Fprintf(w, "          %s\n", strings.ToUpper(cv.Phase))
	fmt.Fprintln(w, "═══════════════════════════════════")
	fmt.Fprintf(w, "Turns: %d  Cards played: %d  Combos: %d\n", cv.Turn, s.CardsPlayed, s.Combos)
	fmt.Fprintf(w, "Damage dealt: %d  taken: %d  Block gained: %d\n", s.DamageDealt, s.DamageTaken, s.BlockGained)
	fmt.Fprintf(w, "Enemies killed: %d  Gold: %d\n", s.EnemiesKilled, s.GoldGained)
	fmt.Fprintln(w, "═══════════════════════════════════")
}
