package domain

// EventKind names a category of change notification published after a
// successful mutation. Created/updated events carry the full record,
// deleted events carry the record id as a plain string.
type EventKind string

const (
	EventProjectCreated EventKind = "PROJECT_CREATED"
	EventProjectUpdated EventKind = "PROJECT_UPDATED"
	EventProjectDeleted EventKind = "PROJECT_DELETED"
	EventTaskCreated    EventKind = "TASK_CREATED"
	EventTaskUpdated    EventKind = "TASK_UPDATED"
	EventTaskDeleted    EventKind = "TASK_DELETED"
)

// EventKinds returns every kind the system publishes.
func EventKinds() []EventKind {
	return []EventKind{
		EventProjectCreated,
		EventProjectUpdated,
		EventProjectDeleted,
		EventTaskCreated,
		EventTaskUpdated,
		EventTaskDeleted,
	}
}
