package practice

import (
	"math/rand"
	"testing"

	"avshort/internal/models"
)

func testShortcuts(n int) []models.Shortcut {
	shortcuts := make([]models.Shortcut, n)
	for i := range shortcuts {
		shortcuts[i] = models.Shortcut{ID: int64(i + 1), Term: string(rune('A' + i))}
	}
	return shortcuts
}

func TestShuffleIsPermutation(t *testing.T) {
	for _, n := range []int{1, 2, 5, 20, 100} {
		shortcuts := testShortcuts(n)
		rng := rand.New(rand.NewSource(int64(n)))

		shuffled := Shuffle(shortcuts, rng)

		if len(shuffled) != n {
			t.Fatalf("n=%d: got %d shortcuts back", n, len(shuffled))
		}

		seen := make(map[int64]int)
		for _, s := range shuffled {
			seen[s.ID]++
		}
		for _, s := range shortcuts {
			if seen[s.ID] != 1 {
				t.Errorf("n=%d: shortcut %d appears %d times, want exactly once", n, s.ID, seen[s.ID])
			}
		}
	}
}

func TestShuffleDoesNotMutateInput(t *testing.T) {
	shortcuts := testShortcuts(10)
	original := make([]models.Shortcut, len(shortcuts))
	copy(original, shortcuts)

	Shuffle(shortcuts, rand.New(rand.NewSource(42)))

	for i := range shortcuts {
		if shortcuts[i].ID != original[i].ID {
			t.Fatalf("input slice mutated at index %d", i)
		}
	}
}

func TestShuffleDeterministicWithSeed(t *testing.T) {
	shortcuts := testShortcuts(12)

	first := Shuffle(shortcuts, rand.New(rand.NewSource(7)))
	second := Shuffle(shortcuts, rand.New(rand.NewSource(7)))

	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("same seed produced different orders at index %d", i)
		}
	}
}
