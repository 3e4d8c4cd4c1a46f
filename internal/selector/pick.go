package selector

import (
	"math"
	"math/rand/v2"

	"github.com/starford/randomnote/internal/models"
)

// Rand is a uniform source of floats in [0, 1).
type Rand interface {
	Float64() float64
}

type defaultRand struct{}

func (defaultRand) Float64() float64 { return rand.Float64() }

// Pick chooses one note uniformly at random. ok is false for an empty slice.
func Pick(notes []models.Note, r Rand) (models.Note, bool) {
	if len(notes) == 0 {
		return models.Note{}, false
	}
	return notes[index(r.Float64(), len(notes))], true
}

func index(f float64, n int) int {
	i := int(math.Floor(f * float64(n)))
	// Guard against sources that return exactly 1 or negatives.
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
