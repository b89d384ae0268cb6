// Package tasks is the progress registry the UI layer polls to render
// long-running launcher work (launch preparation, asset revalidation).
package tasks

import (
	"sync"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a tracked task.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Task is one tracked unit of work.
type Task struct {
	ID      string
	Label   string
	Status  Status
	Message string
}

// Registry tracks tasks by id. All methods hold the lock only around the
// map operation itself.
type Registry struct {
	mu    sync.Mutex
	tasks map[string]Task
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tasks: make(map[string]Task)}
}

// Create registers a new running task and returns its id.
func (r *Registry) Create(label string) string {
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[id] = Task{ID: id, Label: label, Status: StatusRunning}
	r.order = append(r.order, id)
	return id
}

// Update sets a task's status and message. Unknown ids are ignored; the
// task may have been removed by a concurrent observer.
func (r *Registry) Update(id string, status Status, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return
	}
	task.Status = status
	task.Message = message
	r.tasks[id] = task
}

// Remove drops a task from the registry.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tasks, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Snapshot returns the live tasks in creation order.
func (r *Registry) Snapshot() []Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Task, 0, len(r.order))
	for _, id := range r.order {
		if task, ok := r.tasks[id]; ok {
			out = append(out, task)
		}
	}
	return out
}
