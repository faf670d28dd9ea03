package content

import "gopkg.in/yaml.v3"

// File is the top-level YAML structure. A content directory may split the
// sections across any number of files.
type File struct {
	Cards   []CardEntry  `yaml:"cards"`
	Powers  []PowerEntry `yaml:"powers"`
	Enemies []EnemyEntry `yaml:"enemies"`
	Relics  []RelicEntry `yaml:"relics"`
	Rooms   []RoomEntry  `yaml:"rooms"`
	Decks   []DeckEntry  `yaml:"decks"`
	Heroes  []HeroEntry  `yaml:"heroes"`
}

type CardEntry struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Type        string      `yaml:"type"`
	Rarity      string      `yaml:"rarity"`
	Element     string      `yaml:"element"`
	Cost        int         `yaml:"cost"`
	Target      string      `yaml:"target"`
	Effects     []yaml.Node `yaml:"effects"`
	Upgrade     *struct {
		Cost        *int        `yaml:"cost"`
		Description string      `yaml:"description"`
		Effects     []yaml.Node `yaml:"effects"`
	} `yaml:"upgrade"`
	Exhaust    bool `yaml:"exhaust"`
	Ethereal   bool `yaml:"ethereal"`
	Retain     bool `yaml:"retain"`
	Innate     bool `yaml:"innate"`
	Unplayable bool `yaml:"unplayable"`
}

type TriggerEntry struct {
	Event   string      `yaml:"event"`
	Effects []yaml.Node `yaml:"effects"`
}

type PassiveEntry struct {
	DamageReduction int  `yaml:"damageReduction"`
	RetainBlock     bool `yaml:"retainBlock"`
	RetainEnergy    bool `yaml:"retainEnergy"`
}

type PowerEntry struct {
	ID           string         `yaml:"id"`
	Name         string         `yaml:"name"`
	Description  string         `yaml:"description"`
	Stack        string         `yaml:"stack"`
	RemoveAtZero bool           `yaml:"removeAtZero"`
	Debuff       bool           `yaml:"debuff"`
	Triggers     []TriggerEntry `yaml:"triggers"`
	Passive      PassiveEntry   `yaml:"passive"`
}

type RelicEntry struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Triggers    []TriggerEntry `yaml:"triggers"`
	Passive     PassiveEntry   `yaml:"passive"`
}

type PatternEntry struct {
	Intent  string      `yaml:"intent"`
	Value   int         `yaml:"value"`
	Times   int         `yaml:"times"`
	Label   string      `yaml:"label"`
	Effects []yaml.Node `yaml:"effects"`
}

type EnemyEntry struct {
	ID              string         `yaml:"id"`
	Name            string         `yaml:"name"`
	MaxHealth       int            `yaml:"maxHealth"`
	Element         string         `yaml:"element"`
	Vulnerabilities []string       `yaml:"vulnerabilities"`
	Resistances     []string       `yaml:"resistances"`
	Powers          map[string]int `yaml:"powers"`
	Pattern         []PatternEntry `yaml:"pattern"`
	EnergyPerTurn   int            `yaml:"energyPerTurn"`
	Gold            int            `yaml:"gold"`
	Ability         *struct {
		Name     string      `yaml:"name"`
		Cost     int         `yaml:"cost"`
		Cooldown int         `yaml:"cooldown"`
		Effects  []yaml.Node `yaml:"effects"`
	} `yaml:"ability"`
	Ultimate *struct {
		Name    string      `yaml:"name"`
		Trigger string      `yaml:"trigger"`
		Value   int         `yaml:"value"`
		Effects []yaml.Node `yaml:"effects"`
	} `yaml:"ultimate"`
}

type RoomEntry struct {
	ID      string   `yaml:"id"`
	Kind    string   `yaml:"kind"`
	Enemies []string `yaml:"enemies"`
	Gold    int      `yaml:"gold"`
}

type DeckEntry struct {
	ID    string `yaml:"id"`
	Cards []struct {
		Card     string `yaml:"card"`
		Count    int    `yaml:"count"`
		Upgraded bool   `yaml:"upgraded"`
	} `yaml:"cards"`
}

type HeroEntry struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	MaxHealth int      `yaml:"maxHealth"`
	MaxEnergy int      `yaml:"maxEnergy"`
	Deck      string   `yaml:"deck"`
	Relics    []string `yaml:"relics"`
}
