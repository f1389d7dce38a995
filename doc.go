// Package spritestudio evaluates SpriteStudio-style 2D part animations.
//
// Given an authored rig (a [Pack] of parts) and one of its [Animation]s,
// the package samples every part's keyframe timelines at a frame and
// composites them parent before child into a renderer-agnostic tree of
// resolved [Node]s: world matrix, tint, visibility, sprite cell, flip,
// user payload and vertex deform. Instance parts play other animations
// inline and produce nested sub-trees.
//
// # Assets
//
// A [Store] maps [FileID]s to decoded [Data] and to the sprite sheets a
// render adapter registers for them. Asset data is immutable once built
// and may be shared by any number of entities.
//
//	data, err := spritestudio.DecodeData(src)
//	if err != nil { ... }
//	store := spritestudio.NewStore()
//	store.AddData(1, data)
//
// # Playback
//
// Per-entity state is a [Player]: an [AnimationTime] clock and the current
// [PlayKey]. Each tick, advance the clock, run the transition hook and
// evaluate:
//
//	p := spritestudio.NewPlayer(spritestudio.PlayKey{File: 1, Pack: "hero", Animation: "idle"})
//	p.Time.Play(1)
//
//	p.Advance(dt)
//	p.Transition(store, entity, hook, ctx, &events)
//	nodes, err := p.Evaluate(store, spritestudio.NewRoot(placement, nil))
//
// A [TransitionFunc] decides what plays next; nil restarts an exhausted
// clip. Transitions emit [EventStart], [EventEnd] and [EventChangeKey] to an
// [EventSink].
//
// # Root motion
//
// Translation authored on the top-level root part is left out of the
// composited hierarchy. [RootMotion] and [Player.RootMotion] report it as a
// per-tick delta so the caller can move the entity itself.
//
// # Errors
//
// Missing packs, animations, sheets and cells are not errors: they are
// logged when [SetDebug] is on and contribute nothing. The only evaluation
// error is [ErrUnsupportedInterpolation] for Hermite and Bezier keyframes.
//
// # Hot reload
//
// A [Watcher] re-decodes documents when they change on disk and delivers
// each result as a [Reload]. Apply it with [Store.AddData] between ticks.
//
// The render subpackage draws node trees with Ebitengine and the ecs
// subpackage runs players as donburi systems. cmd/ssview ties both together.
package spritestudio
