package ecs

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/phanxgames/spritestudio"
	"github.com/phanxgames/spritestudio/render"
)

// System drives every animated entity of a world: it advances clocks, runs
// transitions, applies root motion and rebuilds node trees, in that order.
type System struct {
	Store *spritestudio.Store
	// Transition is the hook for entities without a Transition component.
	// Nil restarts exhausted clips.
	Transition spritestudio.TransitionFunc
	// Context is handed to hooks that have none of their own.
	Context any

	query *donburi.Query
	sink  spritestudio.EventSink
	world donburi.World
	trees []*spritestudio.Nodes
}

// NewSystem creates a system reading assets from store.
func NewSystem(store *spritestudio.Store) *System {
	return &System{
		Store: store,
		query: donburi.NewQuery(filter.Contains(Animation, Placement, Nodes)),
	}
}

func (s *System) eventSink(w donburi.World) spritestudio.EventSink {
	if s.sink == nil || s.world != w {
		s.world = w
		s.sink = NewEventSink(w)
	}
	return s.sink
}

// Update advances every animated entity by dt seconds. Events are published
// to AnimationEventType; call events.ProcessAllEvents to deliver them.
// Entities that fail to evaluate keep a nil tree and their errors are
// joined into the result.
func (s *System) Update(w donburi.World, dt float64) error {
	sink := s.eventSink(w)
	var errs []error
	s.query.Each(w, func(entry *donburi.Entry) {
		p := Animation.Get(entry)
		id := entityID(entry.Entity())

		p.Advance(dt)

		hook, ctx := s.Transition, s.Context
		if entry.HasComponent(Transition) {
			td := Transition.Get(entry)
			if td.Hook != nil {
				hook = td.Hook
			}
			if td.Context != nil {
				ctx = td.Context
			}
		}
		p.Transition(s.Store, id, hook, ctx, sink)

		placement := Placement.Get(entry)
		if entry.HasComponent(RootMotion) {
			dx, dy, err := p.RootMotion(s.Store)
			if err != nil {
				errs = append(errs, fmt.Errorf("entity %d root motion: %w", id, err))
			}
			placement.X += dx * placement.ScaleX
			placement.Y += dy * placement.ScaleY
		}

		var tint *spritestudio.LinearColor
		if entry.HasComponent(Tint) {
			tint = Tint.Get(entry)
		}
		tree, err := p.Evaluate(s.Store, spritestudio.NewRoot(*placement, tint))
		if err != nil {
			errs = append(errs, fmt.Errorf("entity %d: %w", id, err))
			tree = nil
		}
		Nodes.Get(entry).Tree = tree
	})
	return errors.Join(errs...)
}

// Draw draws the trees built by the last Update with r.
func (s *System) Draw(w donburi.World, dst *ebiten.Image, r *render.Renderer) {
	s.trees = s.trees[:0]
	s.query.Each(w, func(entry *donburi.Entry) {
		if tree := Nodes.Get(entry).Tree; tree != nil {
			s.trees = append(s.trees, tree)
		}
	})
	r.Draw(dst, s.trees...)
}
