package game

import (
	"github.com/go-gl/mathgl/mgl64"

	"arena/internal/world"
)

type EventType int

const (
	EventStarted EventType = iota
	EventPaused
	EventResumed
	EventShot
	EventDryFire
	EventTargetDestroyed
	EventTimerTick
	EventSessionEnded
)

type Event struct {
	Type    EventType
	Target  world.ObjectID
	Point   mgl64.Vec3
	Outcome Outcome
	Value   int // ammo left, seconds left or destroyed count depending on Type
}

type EventHandler func(Event)

// EventBus fans events out synchronously, in subscription order.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
