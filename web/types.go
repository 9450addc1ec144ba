package web

import "taskboard/domain"

// TaskStore abstracts the task collection for handlers.
type TaskStore interface {
	List() []domain.Task
	Find(id int64) (domain.Task, bool)
	Create(title string) domain.Task
	Update(id int64, title string) (domain.Task, bool)
	Delete(id int64) bool
}

// Renderer produces the HTML for a named view. Implementations resolve
// all view names at startup; a per-request render failure is a bug.
type Renderer interface {
	Render(view string, data any) (string, error)
}

// Emitter receives telemetry events once the response shape is
// resolved. Implementations must not block the request path; a slow
// sink drops events instead of stalling request completion.
type Emitter interface {
	Emit(Event)
}
