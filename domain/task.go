package domain

// Task is a single entry in the task list. Ids are assigned by the
// store, are unique for the lifetime of the process and never change
// after creation; additional mutable fields may be added without
// touching identity.
type Task struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}
