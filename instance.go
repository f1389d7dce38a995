package spritestudio

// InstanceKey describes how an instance part plays its referenced
// animation, on a clock independent of the host's.
type InstanceKey struct {
	// Independent instances are spawned as their own entities by the
	// caller and are never composited inline.
	Independent bool
	// LoopNum is the number of passes to play; nil loops forever.
	LoopNum     *int
	StartOffset int
	EndOffset   int
	Reverse     bool
	PingPong    bool
	SpeedRate   float64
}

// Infinite reports whether the instance loops forever.
func (k InstanceKey) Infinite() bool {
	return k.LoopNum == nil
}

// InstanceKeyBuilder sets instance parameters with the authoring tool's
// defaults for anything left unset.
type InstanceKeyBuilder struct {
	infinity    *bool
	speedRate   *float64
	independent *bool
	loopNum     *int
	startOffset *int
	endOffset   *int
	reverse     *bool
	pingPong    *bool
}

func (b InstanceKeyBuilder) Infinity(v bool) InstanceKeyBuilder     { b.infinity = &v; return b }
func (b InstanceKeyBuilder) SpeedRate(v float64) InstanceKeyBuilder { b.speedRate = &v; return b }
func (b InstanceKeyBuilder) Independent(v bool) InstanceKeyBuilder  { b.independent = &v; return b }
func (b InstanceKeyBuilder) LoopNum(v int) InstanceKeyBuilder       { b.loopNum = &v; return b }
func (b InstanceKeyBuilder) StartOffset(v int) InstanceKeyBuilder   { b.startOffset = &v; return b }
func (b InstanceKeyBuilder) EndOffset(v int) InstanceKeyBuilder     { b.endOffset = &v; return b }
func (b InstanceKeyBuilder) Reverse(v bool) InstanceKeyBuilder      { b.reverse = &v; return b }
func (b InstanceKeyBuilder) PingPong(v bool) InstanceKeyBuilder     { b.pingPong = &v; return b }

// NextKey returns a builder whose start offset is advanced by one frame.
// Independent instances have no successor.
func (b InstanceKeyBuilder) NextKey() (InstanceKeyBuilder, bool) {
	if b.independent != nil && *b.independent {
		return InstanceKeyBuilder{}, false
	}
	next := b
	if b.startOffset != nil {
		v := *b.startOffset + 1
		next.startOffset = &v
	}
	return next, true
}

// Build returns the InstanceKey. Defaults: speed 1, offsets 0, not
// independent, not reversed, no pingpong. Infinity clears LoopNum.
func (b InstanceKeyBuilder) Build() InstanceKey {
	k := InstanceKey{SpeedRate: 1}
	if b.speedRate != nil {
		k.SpeedRate = *b.speedRate
	}
	if b.independent != nil {
		k.Independent = *b.independent
	}
	if b.loopNum != nil && (b.infinity == nil || !*b.infinity) {
		n := *b.loopNum
		k.LoopNum = &n
	}
	if b.startOffset != nil {
		k.StartOffset = *b.startOffset
	}
	if b.endOffset != nil {
		k.EndOffset = *b.endOffset
	}
	if b.reverse != nil {
		k.Reverse = *b.reverse
	}
	if b.pingPong != nil {
		k.PingPong = *b.pingPong
	}
	return k
}

// InstanceFrame computes the frame to sample inside an instance's referenced
// animation. keySetFrame is the host frame the instance keyframe began at,
// currentFrame the host's current frame and totalFrame the referenced
// animation's length. ok is false when the instance has played all of its
// loops or the playable window is empty.
func InstanceFrame(keySetFrame, currentFrame, totalFrame int, key InstanceKey) (frame int, ok bool) {
	endFrame := totalFrame - key.EndOffset
	elapsed := currentFrame - keySetFrame
	if elapsed < 0 {
		return 0, false
	}
	rawPlayFrame := int(float64(elapsed) * key.SpeedRate)
	if rawPlayFrame < 0 {
		rawPlayFrame = 0
	}
	segment := endFrame - key.StartOffset + 1
	if segment <= 0 {
		return 0, false
	}
	playedLoops := rawPlayFrame / segment
	pos := rawPlayFrame % segment
	if key.LoopNum != nil && playedLoops >= *key.LoopNum {
		return 0, false
	}
	if key.Reverse || (playedLoops%2 == 1 && key.PingPong) {
		pos = segment - pos
	}
	return pos + key.StartOffset, true
}
