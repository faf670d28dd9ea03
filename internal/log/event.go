package log

import "fmt"

// EventType enumerates all presentation-relevant combat events.
type EventType int

const (
	EventPhaseChange EventType = iota
	EventNewTurn
	EventCombatStart
	EventCombatEnd
	EventCardPlayed
	EventDraw
	EventShuffle
	EventDiscard
	EventExhaust
	EventRetain
	EventScry
	EventTutor
	EventUpgrade
	EventTransform
	EventCostChange
	EventDamage
	EventBlock
	EventBarrier
	EventHeal
	EventEnergy
	EventGold
	EventDeath
	EventCombo
	EventPowerApplied
	EventPowerRemoved
	EventPowerTriggered
	EventRelicTriggered
	EventIntent
	EventEnemyAbility
	EventEnemyUltimate
	EventConditionalTrigger
	EventRepeatEffect
	EventRandomChoice
	EventVictory
	EventDefeat
	EventRoomChoices
	EventRoomSelected
)

var eventNames = map[EventType]string{
	EventPhaseChange:        "phaseChange",
	EventNewTurn:            "newTurn",
	EventCombatStart:        "combatStart",
	EventCombatEnd:          "combatEnd",
	EventCardPlayed:         "cardPlayed",
	EventDraw:               "draw",
	EventShuffle:            "shuffle",
	EventDiscard:            "discard",
	EventExhaust:            "exhaust",
	EventRetain:             "retain",
	EventScry:               "scry",
	EventTutor:              "tutor",
	EventUpgrade:            "upgrade",
	EventTransform:          "transform",
	EventCostChange:         "costChange",
	EventDamage:             "damage",
	EventBlock:              "block",
	EventBarrier:            "barrier",
	EventHeal:               "heal",
	EventEnergy:             "energy",
	EventGold:               "gold",
	EventDeath:              "death",
	EventCombo:              "combo",
	EventPowerApplied:       "powerApplied",
	EventPowerRemoved:       "powerRemoved",
	EventPowerTriggered:     "powerTriggered",
	EventRelicTriggered:     "relicTriggered",
	EventIntent:             "intent",
	EventEnemyAbility:       "enemyAbility",
	EventEnemyUltimate:      "enemyUltimate",
	EventConditionalTrigger: "conditionalTrigger",
	EventRepeatEffect:       "repeatEffect",
	EventRandomChoice:       "randomChoice",
	EventVictory:            "victory",
	EventDefeat:             "defeat",
	EventRoomChoices:        "roomChoices",
	EventRoomSelected:       "roomSelected",
}

func (e EventType) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the event type by name so snapshots stay readable.
func (e EventType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText decodes an event type name.
func (e *EventType) UnmarshalText(text []byte) error {
	for t, name := range eventNames {
		if name == string(text) {
			*e = t
			return nil
		}
	}
	return fmt.Errorf("unknown event type %q", text)
}

// VisualEvent is a single entry of a combat's visual queue. The presentation
// layer replays these in Seq order after every dispatched action.
type VisualEvent struct {
	Seq     int       `json:"seq"`
	Turn    int       `json:"turn"`
	Phase   string    `json:"phase"`
	Type    EventType `json:"type"`
	Source  string    `json:"source,omitempty"`
	Target  string    `json:"target,omitempty"`
	Card    string    `json:"card,omitempty"`
	Amount  int       `json:"amount,omitempty"`
	Branch  string    `json:"branch,omitempty"`  // conditionalTrigger: "then" or "else"
	Times   int       `json:"times,omitempty"`   // repeatEffect: total iterations
	Current int       `json:"current,omitempty"` // repeatEffect: 1-based iteration
	Details string    `json:"details"`
}
