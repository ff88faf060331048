package usecase

import "github.com/taskboard/backend/domain"

// EventPublisher abstracts the notification bus so use cases stay
// transport-agnostic. Publishing is fire-and-forget.
type EventPublisher interface {
	Publish(kind domain.EventKind, payload interface{})
}
