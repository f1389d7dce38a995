// Package ecs runs spritestudio players inside a [Donburi] world.
//
// Entities carry an [Animation] player, a [Placement] and a [Nodes] slot;
// [Tint], [Transition] and the [RootMotion] tag are optional. [System.Update]
// advances, transitions and evaluates every such entity and publishes
// lifecycle events to [AnimationEventType].
//
// Usage:
//
//	sys := ecs.NewSystem(store)
//	e := ecs.NewAnimated(world, key, spritestudio.NewPlacement(160, 120), ecs.RootMotion)
//	ecs.Animation.Get(world.Entry(e)).Time.Play(1)
//
//	// each tick
//	if err := sys.Update(world, dt); err != nil { ... }
//	events.ProcessAllEvents(world)
//	sys.Draw(world, screen, renderer)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
