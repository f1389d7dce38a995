package spritestudio

// Entity identifies the owner of a Player to transition hooks and event
// consumers. Adapters map their own entity ids onto it.
type Entity uint64

// PlayKey identifies the animation an entity is sampling.
type PlayKey struct {
	File      FileID
	Pack      string // empty when unset
	Animation string // empty when unset
}

// Ref returns the pack/animation part of the key. ok is false unless both
// are set.
func (k PlayKey) Ref() (AnimationRef, bool) {
	if k.Pack == "" || k.Animation == "" {
		return AnimationRef{}, false
	}
	return AnimationRef{Pack: k.Pack, Animation: k.Animation}, true
}

// EventType identifies a kind of animation event.
type EventType uint8

const (
	EventStart     EventType = iota // fires on the first tick after a key is set externally
	EventEnd                        // fires when a clip finishes or is replaced
	EventChangeKey                  // fires when a transition switches to a new key
)

func (t EventType) String() string {
	switch t {
	case EventStart:
		return "Start"
	case EventEnd:
		return "End"
	case EventChangeKey:
		return "ChangeKey"
	}
	return "Unknown"
}

// Event is an animation lifecycle notification.
type Event struct {
	Type      EventType
	Entity    Entity
	File      FileID
	Pack      string
	Animation string
}

// EventSink receives animation events.
type EventSink interface {
	EmitAnimationEvent(event Event)
}

// EventBuffer is an EventSink that collects events in order.
type EventBuffer []Event

// EmitAnimationEvent appends the event.
func (b *EventBuffer) EmitAnimationEvent(event Event) {
	*b = append(*b, event)
}

// TransitionInput is what a transition hook sees each tick.
type TransitionInput struct {
	Entity Entity
	// Rest is the number of frames left in the clip; meaningless when
	// Exhausted.
	Rest      int
	Exhausted bool
	Current   AnimationRef
	// User is the root part's user payload at the current frame.
	User    *User
	Context any
}

// NextKey is a transition hook's decision: the animation to play next and
// the frame to start it at.
type NextKey struct {
	Pack      string
	Animation string
	Frame     int
}

// TransitionFunc decides what plays next. Returning false keeps the current
// key.
type TransitionFunc func(in TransitionInput) (NextKey, bool)

// DefaultTransition restarts an exhausted clip from frame 0 and otherwise
// keeps playing.
func DefaultTransition(in TransitionInput) (NextKey, bool) {
	if !in.Exhausted {
		return NextKey{}, false
	}
	debugf("default next key: %s 0", in.Current)
	return NextKey{Pack: in.Current.Pack, Animation: in.Current.Animation}, true
}

// Player is one entity's animation slot: its clock and current key.
type Player struct {
	Time AnimationTime
	key  PlayKey

	// keyChanged is set by SetKey so the next tick announces the new key.
	keyChanged bool
}

// NewPlayer returns a stopped player with the given key.
func NewPlayer(key PlayKey) *Player {
	p := &Player{Time: NewAnimationTime()}
	p.SetKey(key)
	return p
}

// Key returns the current key.
func (p *Player) Key() PlayKey {
	return p.key
}

// SetKey switches to a new key from outside the state machine. A Start
// event is emitted on the next Transition call.
func (p *Player) SetKey(key PlayKey) {
	p.key = key
	p.keyChanged = true
}

// Advance ticks the clock by delta seconds.
func (p *Player) Advance(delta float64) {
	p.Time.AddTime(delta)
}

// Transition runs one tick of the transition state machine: it samples the
// current frame, asks hook what plays next and emits events to sink. hook
// may be nil for DefaultTransition and sink may be nil. Stopped players and
// players whose key cannot be resolved are skipped.
func (p *Player) Transition(s *Store, entity Entity, hook TransitionFunc, ctx any, sink EventSink) {
	ref, ok := p.key.Ref()
	if !ok {
		return
	}
	emit := func(t EventType, pack, anim string) {
		if sink != nil {
			sink.EmitAnimationEvent(Event{Type: t, Entity: entity, File: p.key.File, Pack: pack, Animation: anim})
		}
	}
	if !p.Time.IsPlaying() {
		return
	}
	if p.keyChanged {
		p.keyChanged = false
		emit(EventStart, ref.Pack, ref.Animation)
	}
	_, anim, ok := s.Lookup(p.key.File, ref)
	if !ok {
		return
	}
	if hook == nil {
		hook = DefaultTransition
	}

	fps := float64(anim.FPS())
	frame := p.Time.PlayFrame(fps)
	in := TransitionInput{
		Entity:    entity,
		Exhausted: frame >= anim.TotalFrame(),
		Current:   ref,
		Context:   ctx,
	}
	if !in.Exhausted {
		in.Rest = anim.TotalFrame() - frame
	}
	if u, ok := anim.User(RootPartID, frame); ok {
		in.User = &u
	}

	next, ok := hook(in)
	if !ok {
		if in.Exhausted {
			emit(EventEnd, ref.Pack, ref.Animation)
		}
		return
	}

	// overshoot past the current frame carries into the next clip
	nextTime := float64(next.Frame) / fps
	offset := p.Time.PlayTime() - float64(frame)/fps
	p.Time.SetPlayTime(nextTime + offset)
	p.key.Pack, p.key.Animation = next.Pack, next.Animation

	emit(EventEnd, ref.Pack, ref.Animation)
	emit(EventChangeKey, next.Pack, next.Animation)
}

// Evaluate composes the node tree for the player's current time and key.
// It returns nil when the key does not resolve or the clip is exhausted.
func (p *Player) Evaluate(s *Store, root Root) (*Nodes, error) {
	return s.Evaluate(p.key, p.Time.PlayTime(), root)
}

// RootMotion returns the root translation delta since the previous tick.
func (p *Player) RootMotion(s *Store) (dx, dy float64, err error) {
	if !p.Time.IsPlaying() {
		return 0, 0, nil
	}
	ref, ok := p.key.Ref()
	if !ok {
		return 0, 0, nil
	}
	_, anim, ok := s.Lookup(p.key.File, ref)
	if !ok {
		return 0, 0, nil
	}
	fps := float64(anim.FPS())
	cur := p.Time.PlayFrame(fps)
	prev, hasPrev := p.Time.PrevFrame(fps)
	return RootMotion(anim, prev, hasPrev, cur)
}
