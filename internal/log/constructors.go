package log

import (
	"fmt"
	"strings"
)

// Constructors leave Turn, Phase and Seq unset; the combat state stamps them
// when the event is queued.

func NewPhaseChangeEvent(from, to string) VisualEvent {
	return VisualEvent{
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase %s → %s", from, to),
	}
}

func NewTurnEvent(turn int) VisualEvent {
	return VisualEvent{
		Type:    EventNewTurn,
		Amount:  turn,
		Details: fmt.Sprintf("=== Turn %d ===", turn),
	}
}

func NewCombatStartEvent(enemies []string) VisualEvent {
	return VisualEvent{
		Type:    EventCombatStart,
		Details: fmt.Sprintf("Combat begins against %s", strings.Join(enemies, ", ")),
	}
}

func NewCombatEndEvent(result string) VisualEvent {
	return VisualEvent{
		Type:    EventCombatEnd,
		Details: fmt.Sprintf("Combat ends (%s)", result),
	}
}

func NewCardPlayedEvent(cardUID, cardName, target string, cost int) VisualEvent {
	details := fmt.Sprintf("Player plays %s (cost %d)", cardName, cost)
	if target != "" {
		details += " → " + target
	}
	return VisualEvent{
		Type:    EventCardPlayed,
		Source:  "player",
		Target:  target,
		Card:    cardUID,
		Amount:  cost,
		Details: details,
	}
}

func NewDrawEvent(cardUID, cardName string) VisualEvent {
	return VisualEvent{
		Type:    EventDraw,
		Card:    cardUID,
		Details: fmt.Sprintf("Player draws %s", cardName),
	}
}

func NewShuffleEvent(count int) VisualEvent {
	return VisualEvent{
		Type:    EventShuffle,
		Amount:  count,
		Details: fmt.Sprintf("Draw pile shuffled (%d cards)", count),
	}
}

func NewDiscardEvent(cardUID, cardName, reason string) VisualEvent {
	return VisualEvent{
		Type:    EventDiscard,
		Card:    cardUID,
		Details: fmt.Sprintf("%s is discarded (%s)", cardName, reason),
	}
}

func NewExhaustEvent(cardUID, cardName, reason string) VisualEvent {
	return VisualEvent{
		Type:    EventExhaust,
		Card:    cardUID,
		Details: fmt.Sprintf("%s is exhausted (%s)", cardName, reason),
	}
}

func NewRetainEvent(cardUID, cardName string) VisualEvent {
	return VisualEvent{
		Type:    EventRetain,
		Card:    cardUID,
		Details: fmt.Sprintf("%s will be retained", cardName),
	}
}

func NewScryEvent(looked, discarded int) VisualEvent {
	return VisualEvent{
		Type:    EventScry,
		Amount:  looked,
		Details: fmt.Sprintf("Scry %d: %d discarded", looked, discarded),
	}
}

func NewTutorEvent(cardUID, cardName, pile string) VisualEvent {
	return VisualEvent{
		Type:    EventTutor,
		Card:    cardUID,
		Details: fmt.Sprintf("%s is fetched from %s", cardName, pile),
	}
}

func NewUpgradeEvent(cardUID, cardName string) VisualEvent {
	return VisualEvent{
		Type:    EventUpgrade,
		Card:    cardUID,
		Details: fmt.Sprintf("%s is upgraded", cardName),
	}
}

func NewTransformEvent(cardUID, from, to string) VisualEvent {
	return VisualEvent{
		Type:    EventTransform,
		Card:    cardUID,
		Details: fmt.Sprintf("%s transforms into %s", from, to),
	}
}

func NewCostChangeEvent(cardUID, cardName string, cost int) VisualEvent {
	return VisualEvent{
		Type:    EventCostChange,
		Card:    cardUID,
		Amount:  cost,
		Details: fmt.Sprintf("%s now costs %d", cardName, cost),
	}
}

func NewDamageEvent(source, target string, amount, toHealth, oldHP, newHP int) VisualEvent {
	if source == "" {
		source = "environment"
	}
	return VisualEvent{
		Type:    EventDamage,
		Source:  source,
		Target:  target,
		Amount:  amount,
		Details: fmt.Sprintf("%s hits %s for %d (%d to health, HP %d → %d)", source, target, amount, toHealth, oldHP, newHP),
	}
}

func NewBlockEvent(target string, amount, total int) VisualEvent {
	return VisualEvent{
		Type:    EventBlock,
		Target:  target,
		Amount:  amount,
		Details: fmt.Sprintf("%s gains %d block (%d)", target, amount, total),
	}
}

func NewBarrierEvent(target string, amount, total int) VisualEvent {
	return VisualEvent{
		Type:    EventBarrier,
		Target:  target,
		Amount:  amount,
		Details: fmt.Sprintf("%s gains %d barrier (%d)", target, amount, total),
	}
}

func NewHealEvent(target string, amount, oldHP, newHP int) VisualEvent {
	return VisualEvent{
		Type:    EventHeal,
		Target:  target,
		Amount:  amount,
		Details: fmt.Sprintf("%s heals %d (HP %d → %d)", target, amount, oldHP, newHP),
	}
}

func NewEnergyEvent(delta, total int) VisualEvent {
	return VisualEvent{
		Type:    EventEnergy,
		Target:  "player",
		Amount:  delta,
		Details: fmt.Sprintf("Player energy %+d (%d)", delta, total),
	}
}

func NewGoldEvent(amount int) VisualEvent {
	return VisualEvent{
		Type:    EventGold,
		Target:  "player",
		Amount:  amount,
		Details: fmt.Sprintf("Player gains %d gold", amount),
	}
}

func NewDeathEvent(target, killer string) VisualEvent {
	if killer == "" {
		killer = "environment"
	}
	return VisualEvent{
		Type:    EventDeath,
		Source:  killer,
		Target:  target,
		Details: fmt.Sprintf("%s is slain by %s", target, killer),
	}
}

func NewComboEvent(source, target, combo string, amount int) VisualEvent {
	return VisualEvent{
		Type:    EventCombo,
		Source:  source,
		Target:  target,
		Amount:  amount,
		Details: fmt.Sprintf("%s! %s takes %d", strings.ToUpper(combo), target, amount),
	}
}

func NewPowerAppliedEvent(target, power string, delta, total int) VisualEvent {
	return VisualEvent{
		Type:    EventPowerApplied,
		Target:  target,
		Amount:  delta,
		Details: fmt.Sprintf("%s: %s %+d (%d)", target, power, delta, total),
	}
}

func NewPowerRemovedEvent(target, power string) VisualEvent {
	return VisualEvent{
		Type:    EventPowerRemoved,
		Target:  target,
		Details: fmt.Sprintf("%s loses %s", target, power),
	}
}

func NewPowerTriggeredEvent(owner, power, trigger string, stacks int) VisualEvent {
	return VisualEvent{
		Type:    EventPowerTriggered,
		Source:  owner,
		Amount:  stacks,
		Details: fmt.Sprintf("%s's %s triggers (%s, %d)", owner, power, trigger, stacks),
	}
}

func NewRelicTriggeredEvent(relic, trigger string) VisualEvent {
	return VisualEvent{
		Type:    EventRelicTriggered,
		Source:  "player",
		Details: fmt.Sprintf("Relic %s triggers (%s)", relic, trigger),
	}
}

func NewIntentEvent(enemy, intent string, value, times int) VisualEvent {
	details := fmt.Sprintf("%s intends to %s", enemy, intent)
	if value > 0 {
		details += fmt.Sprintf(" %d", value)
	}
	if times > 1 {
		details += fmt.Sprintf("x%d", times)
	}
	return VisualEvent{
		Type:    EventIntent,
		Source:  enemy,
		Amount:  value,
		Times:   times,
		Details: details,
	}
}

func NewEnemyAbilityEvent(enemy, ability string) VisualEvent {
	return VisualEvent{
		Type:    EventEnemyAbility,
		Source:  enemy,
		Details: fmt.Sprintf("%s uses %s", enemy, ability),
	}
}

func NewEnemyUltimateEvent(enemy, ultimate string) VisualEvent {
	return VisualEvent{
		Type:    EventEnemyUltimate,
		Source:  enemy,
		Details: fmt.Sprintf("%s unleashes %s!", enemy, ultimate),
	}
}

func NewConditionalTriggerEvent(source, branch string) VisualEvent {
	return VisualEvent{
		Type:    EventConditionalTrigger,
		Source:  source,
		Branch:  branch,
		Details: fmt.Sprintf("Condition resolved: %s branch", branch),
	}
}

func NewRepeatEffectEvent(source string, times, current int) VisualEvent {
	return VisualEvent{
		Type:    EventRepeatEffect,
		Source:  source,
		Times:   times,
		Current: current,
		Details: fmt.Sprintf("Repeat %d/%d", current, times),
	}
}

func NewRandomChoiceEvent(source string, choice, options int) VisualEvent {
	return VisualEvent{
		Type:    EventRandomChoice,
		Source:  source,
		Amount:  choice,
		Details: fmt.Sprintf("Random choice %d of %d", choice+1, options),
	}
}

func NewVictoryEvent() VisualEvent {
	return VisualEvent{
		Type:    EventVictory,
		Details: "Victory! All enemies defeated",
	}
}

func NewDefeatEvent() VisualEvent {
	return VisualEvent{
		Type:    EventDefeat,
		Details: "Defeat! The player has fallen",
	}
}

func NewRoomChoicesEvent(rooms []string) VisualEvent {
	return VisualEvent{
		Type:    EventRoomChoices,
		Amount:  len(rooms),
		Details: fmt.Sprintf("Rooms ahead: %s", strings.Join(rooms, ", ")),
	}
}

func NewRoomSelectedEvent(room, kind string) VisualEvent {
	return VisualEvent{
		Type:    EventRoomSelected,
		Target:  room,
		Details: fmt.Sprintf("Entering %s (%s)", room, kind),
	}
}
