package spritestudio

import "sort"

// KeyFrame is one authored value of one attribute at one frame.
type KeyFrame[V any] struct {
	Frame         int
	Interpolation Interpolation
	Value         V
}

// Timeline is an ordered, immutable sequence of keyframes for one attribute
// of one part. Build one with a TimelineBuilder.
type Timeline[V any] struct {
	keys []KeyFrame[V]
}

// Len returns the number of keyframes.
func (t *Timeline[V]) Len() int {
	return len(t.keys)
}

// IsEmpty reports whether the attribute was never authored.
func (t *Timeline[V]) IsEmpty() bool {
	return len(t.keys) == 0
}

// Keys returns the keyframes in ascending frame order. The returned slice
// MUST NOT be mutated.
func (t *Timeline[V]) Keys() []KeyFrame[V] {
	return t.keys
}

// leftIndex returns the index of the last keyframe with Frame <= frame, or -1.
func (t *Timeline[V]) leftIndex(frame int) int {
	// first index with Frame > frame
	i := sort.Search(len(t.keys), func(i int) bool { return t.keys[i].Frame > frame })
	return i - 1
}

// Step returns the value of the last keyframe at or before frame. ok is
// false when no such keyframe exists.
func (t *Timeline[V]) Step(frame int) (v V, ok bool) {
	v, _, ok = t.StepWithFrame(frame)
	return v, ok
}

// StepOr is Step with a caller-supplied default for frames before the first
// keyframe.
func (t *Timeline[V]) StepOr(frame int, def V) V {
	if v, ok := t.Step(frame); ok {
		return v
	}
	return def
}

// StepWithFrame is Step that also reports the frame the returned keyframe
// was set at.
func (t *Timeline[V]) StepWithFrame(frame int) (v V, keyFrame int, ok bool) {
	i := t.leftIndex(frame)
	if i < 0 {
		return v, 0, false
	}
	k := &t.keys[i]
	return k.Value, k.Frame, true
}

// Interpolate blends between the keyframes bracketing frame using the left
// keyframe's easing. With no keyframe after frame the left value is held.
// ok is false when no keyframe exists at or before frame.
func (t *Timeline[V]) Interpolate(frame int, lerp func(from, to V, rate float64) V) (v V, ok bool, err error) {
	i := t.leftIndex(frame)
	if i < 0 {
		return v, false, nil
	}
	left := &t.keys[i]
	if i+1 >= len(t.keys) {
		return left.Value, true, nil
	}
	right := &t.keys[i+1]
	rate, err := easingRate(left.Frame, right.Frame, frame, left.Interpolation)
	if err != nil {
		return v, false, err
	}
	return lerp(left.Value, right.Value, rate), true, nil
}

func easingRate(left, right, current int, fn Interpolation) (float64, error) {
	if left == right {
		return 1, nil
	}
	t := float64(current-left) / float64(right-left)
	return fn.CalcRate(t)
}

func lerpFloat(from, to, rate float64) float64 {
	return from + (to-from)*rate
}

// TimelineBuilder collects keyframes in any order and sorts them on Build.
type TimelineBuilder[V any] struct {
	keys []KeyFrame[V]
}

// Add appends a keyframe. Negative frames are clamped to 0.
func (b *TimelineBuilder[V]) Add(frame int, interpolation Interpolation, value V) {
	if frame < 0 {
		frame = 0
	}
	b.keys = append(b.keys, KeyFrame[V]{Frame: frame, Interpolation: interpolation, Value: value})
}

// Build sorts the collected keyframes by frame and returns the timeline.
// Keyframes sharing a frame keep their insertion order; the later one wins
// when sampling. The builder is reset.
func (b *TimelineBuilder[V]) Build() Timeline[V] {
	keys := b.keys
	b.keys = nil
	sort.SliceStable(keys, func(i, j int) bool { return keys[i].Frame < keys[j].Frame })
	return Timeline[V]{keys: keys}
}
