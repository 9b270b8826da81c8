// Package tasks holds the task bookkeeping for a single game. Tasks carry a
// name and a completion rate and are driven by minigames; they implement no
// gameplay themselves beyond what is needed to sync their state.
package tasks

import (
	"sync"

	"github.com/google/uuid"

	"github.com/skeldnet/skeld/internal/core/geometry"
)

// State is the game context handed to a minigame when it begins: where the
// interacting player stands, as a convex shape for hit-testing.
type State struct {
	Player geometry.Circle
}

// Info is the synchronizable part of a task.
type Info struct {
	Name       string
	Completion float32
}

// Minigame drives a task. Implementations are instantiated once and keep
// their state for as long as the same task is active; Begin should reset
// that state to handle a player backing out and returning.
type Minigame interface {
	// Begin starts the minigame, before anything is shown to the player.
	// The minigame may initialize its parent task through info.
	Begin(state State, info *Info)
}

// Task pairs task info with the minigame that controls it. Completion
// updates bump a version counter and mark the task dirty so the sync loop
// can pick up changes without diffing.
type Task struct {
	id       uuid.UUID
	minigame Minigame

	mu      sync.RWMutex
	info    Info
	version uint64
	dirty   bool
}

// New creates a task controlled by the given minigame.
func New(name string, minigame Minigame) *Task {
	return &Task{
		id:       uuid.New(),
		minigame: minigame,
		info:     Info{Name: name},
		version:  1,
		// A new task is dirty so the first sync tick announces it.
		dirty: true,
	}
}

func (t *Task) ID() uuid.UUID {
	return t.id
}

func (t *Task) Name() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.info.Name
}

// Completion returns the task's completion rate. A rate of 1 means the
// task is complete.
func (t *Task) Completion() float32 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.info.Completion
}

// Complete reports whether the task has reached full completion.
func (t *Task) Complete() bool {
	return t.Completion() >= 1
}

// Begin starts the task's minigame. The minigame receives the mutable task
// info for the duration of the call only.
func (t *Task) Begin(state State) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.minigame.Begin(state, &t.info)
	t.bumpLocked()
}

// SetCompletion updates the completion rate, clamped to [0, 1].
func (t *Task) SetCompletion(v float32) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.info.Completion == v {
		return
	}
	t.info.Completion = v
	t.bumpLocked()
}

// Version returns the task's change counter.
func (t *Task) Version() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.version
}

// IsDirty reports whether the task changed since MarkClean.
func (t *Task) IsDirty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dirty
}

// MarkClean clears the dirty flag, typically after the task was synced.
func (t *Task) MarkClean() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dirty = false
}

// Snapshot captures the task's current sync state.
func (t *Task) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return Snapshot{
		ID:         t.id,
		Name:       t.info.Name,
		Completion: t.info.Completion,
		Version:    t.version,
	}
}

// snapshotAndClean captures the sync state and clears the dirty flag under
// one lock. Splitting the two would let an update land in between and be
// wiped by the clean without ever reaching a snapshot.
func (t *Task) snapshotAndClean() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.dirty = false
	return Snapshot{
		ID:         t.id,
		Name:       t.info.Name,
		Completion: t.info.Completion,
		Version:    t.version,
	}
}

func (t *Task) bumpLocked() {
	t.version++
	t.dirty = true
}
