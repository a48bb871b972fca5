package obj

// EventKind identifies something that happened to the player during a tick.
type EventKind string

const (
	EventJumped           EventKind = "jumped"
	EventLanded           EventKind = "landed"
	EventPlatformSpawned  EventKind = "platform_spawned"
	EventPlatformRejected EventKind = "platform_rejected"
	EventPlatformEvicted  EventKind = "platform_evicted"
	EventPlatformFalling  EventKind = "platform_falling"
	EventPlatformRemoved  EventKind = "platform_removed"
)

// Event is emitted by the player; Platform is set for platform events.
type Event struct {
	Kind     EventKind
	Platform *Platform
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
