package switcher

const (
	VOLUME_ENTER EventType = iota
	VOLUME_STAY
	VOLUME_EXIT
	EFFECTIVE_CHANGED
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Containment events
type VolumeEnterEvent struct {
	Volume   string
	Priority float64
}

func (e VolumeEnterEvent) Type() EventType { return VOLUME_ENTER }

type VolumeStayEvent struct {
	Volume   string
	Priority float64
}

func (e VolumeStayEvent) Type() EventType { return VOLUME_STAY }

type VolumeExitEvent struct {
	Volume string
}

func (e VolumeExitEvent) Type() EventType { return VOLUME_EXIT }

// EffectiveChangedEvent is sent when the highest priority volume containing
// the observer changes. Names are empty when no volume applies.
type EffectiveChangedEvent struct {
	Previous string
	Current  string
}

func (e EffectiveChangedEvent) Type() EventType { return EFFECTIVE_CHANGED }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Containment tracking for Enter/Stay/Exit detection
	previousInside map[string]bool
	currentInside  map[string]bool
	priorities     map[string]float64

	effective string
}

func NewEvents() Events {
	return Events{
		listeners:      make(map[EventType][]EventListener),
		buffer:         make([]Event, 0, 32),
		previousInside: make(map[string]bool),
		currentInside:  make(map[string]bool),
		priorities:     make(map[string]float64),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordSnapshot is called after each rebuild to record the volumes
// containing the observer
func (e *Events) recordSnapshot(snapshot *Snapshot) {
	clear(e.currentInside)
	for name, status := range snapshot.statuses {
		if status.Inside {
			e.currentInside[name] = true
			e.priorities[name] = status.Priority
		}
	}

	if effective, _ := snapshot.Effective(); effective != e.effective {
		e.buffer = append(e.buffer, EffectiveChangedEvent{Previous: e.effective, Current: effective})
		e.effective = effective
	}
}

// processContainmentEvents compares current and previous containment to
// detect Enter/Stay/Exit
func (e *Events) processContainmentEvents() {
	for name := range e.currentInside {
		if e.previousInside[name] {
			e.buffer = append(e.buffer, VolumeStayEvent{Volume: name, Priority: e.priorities[name]})
		} else {
			e.buffer = append(e.buffer, VolumeEnterEvent{Volume: name, Priority: e.priorities[name]})
		}
	}

	for name := range e.previousInside {
		if !e.currentInside[name] {
			e.buffer = append(e.buffer, VolumeExitEvent{Volume: name})
			delete(e.priorities, name)
		}
	}

	// Swap for next frame
	e.previousInside, e.currentInside = e.currentInside, e.previousInside
	clear(e.currentInside)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processContainmentEvents()

	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
