package combat

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/google/uuid"
)

// Dice is the deterministic random source of a run.
//
// # Determinism
//
// Every roll derives a fresh generator from (Seed, Rolls) and then advances
// Rolls, so two states with the same Dice produce the same sequence of
// shuffles, random choices and card uids. Dice is a plain value and is
// copied along with the state it belongs to.
type Dice struct {
	Seed  int64  `json:"seed"`
	Rolls uint64 `json:"rolls"`
}

// NewDice returns dice positioned at the start of the seed's sequence.
func NewDice(seed int64) Dice {
	return Dice{Seed: seed}
}

// source derives the generator for the next roll and advances the cursor.
func (d *Dice) source() *rand.ChaCha8 {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[0:8], uint64(d.Seed))
	binary.LittleEndian.PutUint64(key[8:16], d.Rolls)
	d.Rolls++
	return rand.NewChaCha8(key)
}

// Intn returns a value in [0, n). Non-positive n yields 0 without rolling.
func (d *Dice) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.New(d.source()).IntN(n)
}

// Shuffle permutes n elements using swap.
func (d *Dice) Shuffle(n int, swap func(i, j int)) {
	if n < 2 {
		return
	}
	rand.New(d.source()).Shuffle(n, swap)
}

// Weighted returns an index drawn proportionally to weights. Non-positive
// weights never win; if no weight is positive the draw is uniform.
func (d *Dice) Weighted(weights []int) int {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return d.Intn(len(weights))
	}
	roll := d.Intn(total)
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if roll < w {
			return i
		}
		roll -= w
	}
	return len(weights) - 1
}

// UID returns a version 4 uuid drawn from the dice.
func (d *Dice) UID() string {
	id, err := uuid.NewRandomFromReader(d.source())
	if err != nil {
		// ChaCha8 reads never fail.
		return uuid.Nil.String()
	}
	return id.String()
}
