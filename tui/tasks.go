package tui

import (
	"context"

	"github.com/google/uuid"
	"github.com/ionut-t/leetshell/logging"
)

// Task is a handle on background work started with Go.
type Task struct {
	ID    uuid.UUID
	Name  string
	Owner uuid.UUID // uuid.Nil for app level work
}

type completion struct {
	task  *Task
	apply func()
}

// Work runs off the scheduler goroutine. It must not touch screen state;
// instead it returns a function that does, which the scheduler applies
// between ticks. A nil result only marks the owner dirty.
type Work func(ctx context.Context) func()

// Go starts work on behalf of owner (nil for the app itself). The result is
// applied only while owner is the active screen: it waits while another
// screen is on top and is dropped once owner has been popped.
func (a *App) Go(owner Screen, name string, work Work) *Task {
	t := &Task{ID: uuid.New(), Name: name}
	if owner != nil {
		t.Owner = owner.ID()
	}
	a.tasks[t.ID] = t
	a.wg.Add(1)
	logging.Debug("task %s started (%s)", t.Name, t.ID)

	go func() {
		defer a.wg.Done()
		var apply func()
		defer func() {
			if r := recover(); r != nil {
				logging.Error("task %s: %v", t.Name, recovered(r))
				apply = nil
			}
			select {
			case a.completions <- completion{task: t, apply: apply}:
			case <-a.ctx.Done():
			}
		}()
		apply = work(a.ctx)
	}()
	return t
}

// PendingTasks is the number of tasks whose result has not been applied or
// dropped yet.
func (a *App) PendingTasks() int {
	return len(a.tasks)
}

// applyCompletions is the point where background results become visible.
// Each result is applied whole, so a render never sees half an update.
func (a *App) applyCompletions() {
	pending := a.deferred
	a.deferred = nil

drain:
	for {
		select {
		case c := <-a.completions:
			pending = append(pending, c)
		default:
			break drain
		}
	}

	for _, c := range pending {
		a.complete(c)
	}
}

func (a *App) complete(c completion) {
	t := c.task
	active := a.Active()

	switch {
	case t.Owner == uuid.Nil:
	case active != nil && active.ID() == t.Owner:
	case a.contains(t.Owner):
		a.deferred = append(a.deferred, c)
		return
	default:
		logging.Debug("task %s finished after its screen was closed", t.Name)
		delete(a.tasks, t.ID)
		return
	}

	delete(a.tasks, t.ID)
	logging.Debug("task %s finished", t.Name)
	if c.apply != nil {
		a.applySafely(t, c.apply)
	}
	if s := a.Active(); s != nil {
		s.Invalidate()
	}
}

func (a *App) applySafely(t *Task, apply func()) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("task %s result: %v", t.Name, recovered(r))
		}
	}()
	apply()
}
