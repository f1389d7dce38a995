package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/spritestudio"
)

// AnimationEventType is the Donburi event type for animation lifecycle
// events. Subscribe to it to react to clips starting, ending and
// switching.
var AnimationEventType = events.NewEventType[spritestudio.Event]()

type donburiSink struct {
	world donburi.World
}

// NewEventSink creates an EventSink that publishes to AnimationEventType
// in world. Events are queued until ProcessEvents runs.
func NewEventSink(world donburi.World) spritestudio.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitAnimationEvent(event spritestudio.Event) {
	AnimationEventType.Publish(s.world, event)
}

// EventEntity returns the Donburi entity an event refers to.
func EventEntity(event spritestudio.Event) donburi.Entity {
	return donburi.Entity(event.Entity)
}

func entityID(e donburi.Entity) spritestudio.Entity {
	return spritestudio.Entity(e)
}
