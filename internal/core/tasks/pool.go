package tasks

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skeldnet/skeld/internal/core/observability/log"
)

// Pool holds every task in a single game. Clients share the pool and sync
// against it, so additions keep a stable order for deterministic snapshots.
type Pool struct {
	mu     sync.RWMutex
	tasks  map[uuid.UUID]*Task
	order  []uuid.UUID
	logger log.Log
}

// NewPool creates an empty task pool.
func NewPool(logger log.Log) *Pool {
	if logger == nil {
		logger = log.Provide()
	}

	return &Pool{
		tasks:  make(map[uuid.UUID]*Task),
		logger: logger,
	}
}

// Add registers a task with the pool.
func (p *Pool) Add(task *Task) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.tasks[task.ID()]; exists {
		return
	}

	p.tasks[task.ID()] = task
	p.order = append(p.order, task.ID())

	p.logger.Debug("task added",
		zap.String("task_id", task.ID().String()),
		zap.String("name", task.Name()))
}

// Get returns a task by id.
func (p *Pool) Get(id uuid.UUID) (*Task, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	task, ok := p.tasks[id]
	return task, ok
}

// Len returns the number of tasks in the pool.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.order)
}

// Progress returns the mean completion across all tasks, the value behind
// the task bar. An empty pool reports zero progress.
func (p *Pool) Progress() float32 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if len(p.order) == 0 {
		return 0
	}

	var sum float32
	for _, id := range p.order {
		sum += p.tasks[id].Completion()
	}
	return sum / float32(len(p.order))
}

// Snapshots returns a snapshot of every task in insertion order.
func (p *Pool) Snapshots() []Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]Snapshot, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.tasks[id].Snapshot())
	}
	return out
}

// DirtySnapshots returns snapshots of tasks that changed since the last
// sync, marking them clean. The sync loop drains this on every tick.
func (p *Pool) DirtySnapshots() []Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []Snapshot
	for _, id := range p.order {
		task := p.tasks[id]
		if !task.IsDirty() {
			continue
		}
		out = append(out, task.snapshotAndClean())
	}
	return out
}
