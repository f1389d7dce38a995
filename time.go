package spritestudio

import "fmt"

// AnimationTime is a per-entity play clock with two states. While playing
// it advances by delta*speed each tick. While stopped it can hold a
// scheduled resume: the remaining stop duration counts down, and when it
// runs out the clock resumes, replaying the excess time at play speed.
type AnimationTime struct {
	playing bool
	// current time while playing, stopped time while stopped
	current float64
	prev    float64
	hasPrev bool
	speed   float64

	stopFor   float64
	scheduled bool
}

// NewAnimationTime returns a stopped clock at time 0 with speed 1.
func NewAnimationTime() AnimationTime {
	return AnimationTime{speed: 1}
}

// IsPlaying reports whether the clock is advancing.
func (t *AnimationTime) IsPlaying() bool {
	return t.playing
}

// IsStopped reports whether the clock is stopped.
func (t *AnimationTime) IsStopped() bool {
	return !t.playing
}

// Play starts or continues playback. A stopped clock resumes from its
// stopped time. A speed <= 0 keeps the current speed.
func (t *AnimationTime) Play(speed float64) {
	if speed > 0 {
		t.speed = speed
	}
	if !t.playing {
		t.playing = true
		t.hasPrev = false
	}
	t.scheduled = false
}

// Stop freezes the clock at its current time.
func (t *AnimationTime) Stop() {
	t.playing = false
	t.hasPrev = false
	t.scheduled = false
	debugf("stop: stopped_time = %.2f", t.current)
}

// StopFor freezes the clock and schedules it to resume after d seconds of
// ticks.
func (t *AnimationTime) StopFor(d float64) {
	t.Stop()
	t.stopFor = d
	t.scheduled = true
}

// PlayTime returns the current time while playing or the stopped time while
// stopped.
func (t *AnimationTime) PlayTime() float64 {
	return t.current
}

// PrevTime returns the time before the last advance. ok is false while
// stopped or right after the time was set directly.
func (t *AnimationTime) PrevTime() (float64, bool) {
	if !t.playing || !t.hasPrev {
		return 0, false
	}
	return t.prev, true
}

// PlaySpeed returns the playback speed multiplier.
func (t *AnimationTime) PlaySpeed() float64 {
	return t.speed
}

// StopRemaining returns the remaining scheduled stop duration.
func (t *AnimationTime) StopRemaining() (float64, bool) {
	if t.playing || !t.scheduled {
		return 0, false
	}
	return t.stopFor, true
}

// PlayFrame converts the play time to a frame at the given fps.
func (t *AnimationTime) PlayFrame(fps float64) int {
	return secToFrame(t.current, fps)
}

// PrevFrame converts the previous time to a frame at the given fps.
func (t *AnimationTime) PrevFrame(fps float64) (int, bool) {
	prev, ok := t.PrevTime()
	if !ok {
		return 0, false
	}
	return secToFrame(prev, fps), true
}

// SetPlaySpeed changes the speed of a playing clock. It is a no-op (logged)
// while stopped.
func (t *AnimationTime) SetPlaySpeed(speed float64) {
	if !t.playing {
		debugf("play speed set failed: %v", t)
		return
	}
	t.speed = speed
}

func (t *AnimationTime) setSpeed(speed float64) {
	t.speed = speed
}

// SetPlayTime jumps to the given time. A playing clock forgets its previous
// time so no motion is reported across the jump.
func (t *AnimationTime) SetPlayTime(time float64) {
	t.current = time
	t.hasPrev = false
}

// AddTime advances the clock by one tick of delta seconds.
func (t *AnimationTime) AddTime(delta float64) {
	switch {
	case t.playing:
		t.prev, t.hasPrev = t.current, true
		t.current += delta * t.speed
	case t.scheduled:
		if t.stopFor > delta {
			t.stopFor -= delta
			return
		}
		t.resume((delta - t.stopFor) * t.speed)
	}
}

// resume ends a scheduled stop, moving the clock forward by excess.
func (t *AnimationTime) resume(excess float64) {
	t.current += excess
	t.prev, t.hasPrev = t.current, true
	t.playing = true
	t.scheduled = false
	t.stopFor = 0
	debugf("end stop: start from %.3f", t.current)
}

// AddSeconds advances the clock by delta seconds regardless of play speed.
// A scheduled stop counts down by the same amount.
func (t *AnimationTime) AddSeconds(delta float64) {
	switch {
	case t.playing:
		t.prev, t.hasPrev = t.current, true
		t.current += delta
	case t.scheduled:
		if t.stopFor > delta {
			t.stopFor -= delta
			return
		}
		t.resume(delta - t.stopFor)
	}
}

func (t AnimationTime) String() string {
	if t.playing {
		return fmt.Sprintf("Play{current: %.3f, speed: %.2f}", t.current, t.speed)
	}
	if t.scheduled {
		return fmt.Sprintf("Stop{stopped: %.3f, remaining: %.3f, speed: %.2f}", t.current, t.stopFor, t.speed)
	}
	return fmt.Sprintf("Stop{stopped: %.3f, speed: %.2f}", t.current, t.speed)
}
