package spritestudio

import "math"

// Animation is one clip: a set of per-part timelines sharing an fps and a
// total frame count. Animations are immutable once built and safe to share
// between any number of players.
type Animation struct {
	fps        int
	totalFrame int
	parts      []PartTimeline
}

// FPS returns the authored frames per second.
func (a *Animation) FPS() int {
	return a.fps
}

// TotalFrame returns the exclusive upper bound of valid frames.
func (a *Animation) TotalFrame() int {
	return a.totalFrame
}

// PartCount returns the number of part timelines.
func (a *Animation) PartCount() int {
	return len(a.parts)
}

// TotalSeconds returns the clip length in seconds.
func (a *Animation) TotalSeconds() float64 {
	if a.fps <= 0 {
		return 0
	}
	return float64(a.totalFrame) / float64(a.fps)
}

// SecToFrame converts a play time to a frame index (floor).
func (a *Animation) SecToFrame(seconds float64) int {
	return secToFrame(seconds, float64(a.fps))
}

// SecToFrameLoop is SecToFrame wrapped into [0, TotalFrame).
func (a *Animation) SecToFrameLoop(seconds float64) int {
	if a.totalFrame <= 0 {
		return 0
	}
	return a.SecToFrame(seconds) % a.totalFrame
}

// FrameToSec converts a frame index to the play time at which it starts.
func (a *Animation) FrameToSec(frame int) float64 {
	if a.fps <= 0 {
		return 0
	}
	return float64(frame) / float64(a.fps)
}

func secToFrame(seconds, fps float64) int {
	f := math.Floor(seconds * fps)
	if f < 0 {
		return 0
	}
	return int(f)
}

func (a *Animation) part(partID int) *PartTimeline {
	if partID < 0 || partID >= len(a.parts) {
		debugf("part %d not found (animation has %d)", partID, len(a.parts))
		return nil
	}
	return &a.parts[partID]
}

// Hide reports whether the part is hidden at frame. Parts without a hide
// keyframe, and unknown parts, are hidden.
func (a *Animation) Hide(partID, frame int) bool {
	p := a.part(partID)
	if p == nil {
		return true
	}
	return p.hidden(frame)
}

// Cell returns the part's sprite cell at frame, if any.
func (a *Animation) Cell(partID, frame int) (Cell, bool) {
	p := a.part(partID)
	if p == nil {
		return Cell{}, false
	}
	return p.Cell.Step(frame)
}

// LocalTransform samples the part's local transform at frame. Unauthored
// components take their defaults (position 0, scale 1, rotation 0).
func (a *Animation) LocalTransform(partID, frame int) (Transform, error) {
	p := a.part(partID)
	if p == nil {
		return IdentityTransform, nil
	}
	return p.localTransform(frame)
}

// LocalColor samples the part's local color (rgb from the color timeline,
// alpha from the alpha timeline). Defaults to white.
func (a *Animation) LocalColor(partID, frame int) (LinearColor, error) {
	p := a.part(partID)
	if p == nil {
		return ColorWhite, nil
	}
	return p.localColor(frame)
}

// Flip returns the part's horizontal and vertical flip flags at frame.
func (a *Animation) Flip(partID, frame int) (h, v bool) {
	p := a.part(partID)
	if p == nil {
		return false, false
	}
	return p.FlipH.StepOr(frame, false), p.FlipV.StepOr(frame, false)
}

// User returns the part's user payload at frame, if any.
func (a *Animation) User(partID, frame int) (User, bool) {
	p := a.part(partID)
	if p == nil {
		return User{}, false
	}
	return p.User.Step(frame)
}

// Instance returns the part's instance key at frame together with the frame
// the key was set at.
func (a *Animation) Instance(partID, frame int) (key InstanceKey, keyFrame int, ok bool) {
	p := a.part(partID)
	if p == nil {
		return key, 0, false
	}
	return p.Instance.StepWithFrame(frame)
}

// Vertex samples the part's vertex deform offsets at frame, if authored.
func (a *Animation) Vertex(partID, frame int) (*VertexKey, error) {
	p := a.part(partID)
	if p == nil {
		return nil, nil
	}
	return p.vertex(frame)
}

// AnimationBuilder assembles an Animation part by part.
//
//	b := NewAnimationBuilder(2, 30, 30)
//	b.Part(1).PosX.Add(0, InterpolationLinear, 10)
//	anim := b.Build()
type AnimationBuilder struct {
	fps        int
	totalFrame int
	parts      []PartTimelineBuilder
}

// NewAnimationBuilder creates a builder for an animation over partCount parts.
func NewAnimationBuilder(partCount, totalFrame, fps int) *AnimationBuilder {
	return &AnimationBuilder{
		fps:        fps,
		totalFrame: totalFrame,
		parts:      make([]PartTimelineBuilder, partCount),
	}
}

// Part returns the timeline builder for partID. Panics if partID is out of
// range.
func (b *AnimationBuilder) Part(partID int) *PartTimelineBuilder {
	if partID < 0 || partID >= len(b.parts) {
		panic("spritestudio: animation builder part out of range")
	}
	return &b.parts[partID]
}

// Build sorts every timeline and returns the immutable Animation.
func (b *AnimationBuilder) Build() *Animation {
	a := &Animation{
		fps:        b.fps,
		totalFrame: b.totalFrame,
		parts:      make([]PartTimeline, len(b.parts)),
	}
	for i := range b.parts {
		a.parts[i] = b.parts[i].Build()
	}
	return a
}
