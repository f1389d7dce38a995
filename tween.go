package spritestudio

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 values simultaneously. Create one via
// TweenPlaySpeed or TweenTint and call Update(dt) each tick.
//
// There is no global tween manager; callers call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	apply  [4]func(float64)
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to their
// targets.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.apply[i](float64(val))
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

func (g *TweenGroup) add(from, to float64, duration float32, fn ease.TweenFunc, apply func(float64)) {
	g.tweens[g.count] = gween.New(float32(from), float32(to), duration, fn)
	g.apply[g.count] = apply
	g.count++
}

// TweenPlaySpeed ramps t's play speed to the target value over duration
// seconds, e.g. for slow-motion. The speed is updated whether t is playing
// or stopped, so a stopped clock resumes at the tweened speed.
func TweenPlaySpeed(t *AnimationTime, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(t.PlaySpeed(), to, duration, fn, t.setSpeed)
	return g
}

// TweenTint animates all four components of c to the target color.
func TweenTint(c *LinearColor, to LinearColor, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(c.R, to.R, duration, fn, func(v float64) { c.R = v })
	g.add(c.G, to.G, duration, fn, func(v float64) { c.G = v })
	g.add(c.B, to.B, duration, fn, func(v float64) { c.B = v })
	g.add(c.A, to.A, duration, fn, func(v float64) { c.A = v })
	return g
}
