package models

// Event types published to the events topic.
const (
	EventAccountRegistered = "account.registered"
	EventPostCreated       = "post.created"
	EventPostUpdated       = "post.updated"
	EventPostDeleted       = "post.deleted"
)

// Event represents a domain event, including its type, subject and timestamp.
type Event struct {
	EventID   string `json:"event_id"`   // EventID is a unique identifier for the event.
	Type      string `json:"type"`       // Type is one of the Event* constants.
	SubjectID string `json:"subject_id"` // SubjectID is the account or post the event is about.
	ActorID   string `json:"actor_id"`   // ActorID is the account that caused the event.
	Timestamp int64  `json:"timestamp"`  // Timestamp is the Unix time (in seconds) of the event.
}
