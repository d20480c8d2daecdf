package tasks

import (
	"fmt"
	"sort"

	"github.com/irisforge/irisd/internal/store"
)

// document is the on-disk shape of data/tasks.json: a map keyed by the
// string form of the task id, plus the next id to allocate.
type document struct {
	Tasks  map[string]Task `json:"tasks"`
	NextID int             `json:"next_id"`
}

// Repository is an id-assigning collection of Tasks backed by a Store.
// Every mutating call persists the full tasks map atomically.
type Repository struct {
	store *store.Store[document]
}

// NewRepository returns a Repository persisting to path (typically
// data/tasks.json).
func NewRepository(path string) *Repository {
	return &Repository{store: store.New[document](path)}
}

func key(id int) string { return fmt.Sprintf("%d", id) }

// Create allocates the next id, builds a PENDING Task for goal, persists
// it, and returns it.
func (r *Repository) Create(goal string) (Task, error) {
	var created Task
	err := r.store.Update(func(doc document) (document, error) {
		if doc.Tasks == nil {
			doc.Tasks = map[string]Task{}
		}
		if doc.NextID == 0 {
			doc.NextID = 1
		}
		id := doc.NextID
		doc.NextID++

		now := nowFunc()
		created = Task{
			ID:        id,
			Goal:      goal,
			Status:    Pending,
			CreatedAt: now,
			UpdatedAt: now,
			Memory:    map[string]any{},
		}
		doc.Tasks[key(id)] = created
		return doc, nil
	})
	return created, err
}

// Get returns the Task with the given id.
func (r *Repository) Get(id int) (Task, error) {
	doc, err := r.store.Load()
	if err != nil {
		return Task{}, err
	}
	t, ok := doc.Tasks[key(id)]
	if !ok {
		return Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return t, nil
}

// ListAll returns every Task sorted by id ascending.
func (r *Repository) ListAll() ([]Task, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	out := make([]Task, 0, len(doc.Tasks))
	for _, t := range doc.Tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Update persists the full state of an existing task. It fails if the
// task does not already exist.
func (r *Repository) Update(t Task) error {
	return r.store.Update(func(doc document) (document, error) {
		if doc.Tasks == nil {
			return doc, fmt.Errorf("task %d: %w", t.ID, ErrNotFound)
		}
		if _, ok := doc.Tasks[key(t.ID)]; !ok {
			return doc, fmt.Errorf("task %d: %w", t.ID, ErrNotFound)
		}
		doc.Tasks[key(t.ID)] = t
		return doc, nil
	})
}

// Delete removes a task by id, reporting whether it existed.
func (r *Repository) Delete(id int) (bool, error) {
	existed := false
	err := r.store.Update(func(doc document) (document, error) {
		if doc.Tasks == nil {
			return doc, nil
		}
		if _, ok := doc.Tasks[key(id)]; ok {
			existed = true
			delete(doc.Tasks, key(id))
		}
		return doc, nil
	})
	return existed, err
}
