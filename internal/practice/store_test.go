package practice

import (
	"math/rand"
	"testing"
	"time"
)

func TestStorePutGetDelete(t *testing.T) {
	store := NewStore()

	if store.Get("nobody") != nil {
		t.Error("Get() on empty store should return nil")
	}

	session, err := NewSession(testShortcuts(3), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	active := &Active{Session: session, Scope: Scope{GroupID: 7, Name: "Chapter 1"}, StartedAt: time.Now()}
	store.Put("player", active)

	if got := store.Get("player"); got != active {
		t.Error("Get() did not return the stored session")
	}

	store.Delete("player")
	if store.Get("player") != nil {
		t.Error("Get() after Delete() should return nil")
	}
}

func TestStoreSweep(t *testing.T) {
	store := NewStore()
	session, err := NewSession(testShortcuts(2), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	store.Put("stale", &Active{Session: session, StartedAt: time.Now().Add(-3 * time.Hour)})
	store.Put("fresh", &Active{Session: session, StartedAt: time.Now()})

	if removed := store.Sweep(2 * time.Hour); removed != 1 {
		t.Errorf("Sweep() removed %d sessions, want 1", removed)
	}
	if store.Get("stale") != nil {
		t.Error("stale session survived the sweep")
	}
	if store.Get("fresh") == nil {
		t.Error("fresh session was swept")
	}
}
