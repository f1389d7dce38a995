package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/spritestudio"
)

func TestNewEventSink(t *testing.T) {
	world := donburi.NewWorld()
	require.NotNil(t, NewEventSink(world))
}

func TestEventSink_PublishesQueuedEvents(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewEventSink(world)

	var received []spritestudio.Event
	AnimationEventType.Subscribe(world, func(w donburi.World, e spritestudio.Event) {
		received = append(received, e)
	})

	sink.EmitAnimationEvent(spritestudio.Event{Type: spritestudio.EventEnd, Entity: 42, File: 1, Pack: "hero", Animation: "walk"})
	sink.EmitAnimationEvent(spritestudio.Event{Type: spritestudio.EventChangeKey, Entity: 42, File: 1, Pack: "hero", Animation: "idle"})

	assert.Empty(t, received, "events are queued until processed")
	AnimationEventType.ProcessEvents(world)

	require.Len(t, received, 2)
	assert.Equal(t, spritestudio.EventEnd, received[0].Type)
	assert.Equal(t, "walk", received[0].Animation)
	assert.Equal(t, spritestudio.EventChangeKey, received[1].Type)
	assert.Equal(t, "idle", received[1].Animation)
}

func TestEventSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewEventSink(world)

	var count1, count2 int
	AnimationEventType.Subscribe(world, func(w donburi.World, e spritestudio.Event) { count1++ })
	AnimationEventType.Subscribe(world, func(w donburi.World, e spritestudio.Event) { count2++ })

	sink.EmitAnimationEvent(spritestudio.Event{Type: spritestudio.EventStart})
	events.ProcessAllEvents(world)

	assert.Equal(t, 1, count1)
	assert.Equal(t, 1, count2)
}

func TestEventEntity_RoundTrip(t *testing.T) {
	world := donburi.NewWorld()
	e := world.Create(Placement)
	ev := spritestudio.Event{Entity: entityID(e)}
	assert.Equal(t, e, EventEntity(ev))
}
