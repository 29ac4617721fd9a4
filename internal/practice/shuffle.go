package practice

import (
	"math/rand"

	"avshort/internal/models"
)

// Shuffle returns a uniform random permutation of shortcuts using a
// Fisher-Yates pass over a copy; the input slice is left untouched.
// The random source is injectable so tests can seed it.
func Shuffle(shortcuts []models.Shortcut, rng *rand.Rand) []models.Shortcut {
	shuffled := make([]models.Shortcut, len(shortcuts))
	copy(shuffled, shortcuts)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}
