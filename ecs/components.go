package ecs

import (
	"github.com/yohamta/donburi"

	"github.com/phanxgames/spritestudio"
)

// Animation holds an entity's player: clock and current key.
var Animation = donburi.NewComponentType[spritestudio.Player]()

// Placement is the entity's world placement, the root of its hierarchy.
var Placement = donburi.NewComponentType[spritestudio.Placement]()

// Tint is an optional color multiplied into every part.
var Tint = donburi.NewComponentType[spritestudio.LinearColor]()

// NodesData holds the tree resolved on the last update. Tree is nil when
// the key does not resolve or the clip is exhausted.
type NodesData struct {
	Tree *spritestudio.Nodes
}

// Nodes receives the resolved node tree each update.
var Nodes = donburi.NewComponentType[NodesData]()

// TransitionData overrides the system's transition hook for one entity.
type TransitionData struct {
	Hook    spritestudio.TransitionFunc
	Context any
}

// Transition is an optional per-entity transition hook.
var Transition = donburi.NewComponentType[TransitionData]()

// RootMotion marks entities whose Placement follows their root part's
// authored translation.
var RootMotion = donburi.NewTag()

// NewAnimated creates an entity playing key at placement. extra components
// (Tint, Transition, RootMotion) are added as well.
func NewAnimated(w donburi.World, key spritestudio.PlayKey, placement spritestudio.Placement, extra ...donburi.IComponentType) donburi.Entity {
	comps := append([]donburi.IComponentType{Animation, Placement, Nodes}, extra...)
	e := w.Create(comps...)
	entry := w.Entry(e)
	Animation.SetValue(entry, *spritestudio.NewPlayer(key))
	Placement.SetValue(entry, placement)
	if entry.HasComponent(Tint) {
		Tint.SetValue(entry, spritestudio.ColorWhite)
	}
	return e
}
