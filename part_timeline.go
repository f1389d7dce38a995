package spritestudio

import "math"

// PartTimeline holds one independent timeline per animated attribute of a
// part. Attributes that were never authored are empty timelines.
type PartTimeline struct {
	Hide   Timeline[bool]
	Cell   Timeline[Cell]
	PosX   Timeline[float64]
	PosY   Timeline[float64]
	PosZ   Timeline[float64]
	ScaleX Timeline[float64]
	ScaleY Timeline[float64]
	// Rotation keyframes are authored in degrees.
	Rotation Timeline[float64]
	FlipH    Timeline[bool]
	FlipV    Timeline[bool]
	Alpha    Timeline[float64]
	Color    Timeline[LinearColor]
	User     Timeline[User]
	Instance Timeline[InstanceKey]
	Vertex   Timeline[VertexKey]
}

// hidden reports the part's hide flag. A part with no hide keyframe at or
// before frame is hidden.
func (p *PartTimeline) hidden(frame int) bool {
	return p.Hide.StepOr(frame, true)
}

func (p *PartTimeline) float(t *Timeline[float64], frame int, def float64) (float64, error) {
	v, ok, err := t.Interpolate(frame, lerpFloat)
	if err != nil {
		return 0, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

func (p *PartTimeline) localTransform(frame int) (Transform, error) {
	var (
		tr  Transform
		err error
		deg float64
	)
	if tr.X, err = p.float(&p.PosX, frame, 0); err != nil {
		return tr, err
	}
	if tr.Y, err = p.float(&p.PosY, frame, 0); err != nil {
		return tr, err
	}
	if tr.Z, err = p.float(&p.PosZ, frame, 0); err != nil {
		return tr, err
	}
	if tr.ScaleX, err = p.float(&p.ScaleX, frame, 1); err != nil {
		return tr, err
	}
	if tr.ScaleY, err = p.float(&p.ScaleY, frame, 1); err != nil {
		return tr, err
	}
	if deg, err = p.float(&p.Rotation, frame, 0); err != nil {
		return tr, err
	}
	tr.Rotation = deg * math.Pi / 180
	return tr, nil
}

func (p *PartTimeline) localColor(frame int) (LinearColor, error) {
	c, ok, err := p.Color.Interpolate(frame, LinearColor.Lerp)
	if err != nil {
		return ColorWhite, err
	}
	if !ok {
		c = ColorWhite
	}
	if c.A, err = p.float(&p.Alpha, frame, 1); err != nil {
		return ColorWhite, err
	}
	return c, nil
}

func (p *PartTimeline) vertex(frame int) (*VertexKey, error) {
	v, ok, err := p.Vertex.Interpolate(frame, VertexKey.Lerp)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

// PartTimelineBuilder collects keyframes for each attribute of one part.
type PartTimelineBuilder struct {
	Hide     TimelineBuilder[bool]
	Cell     TimelineBuilder[Cell]
	PosX     TimelineBuilder[float64]
	PosY     TimelineBuilder[float64]
	PosZ     TimelineBuilder[float64]
	ScaleX   TimelineBuilder[float64]
	ScaleY   TimelineBuilder[float64]
	Rotation TimelineBuilder[float64]
	FlipH    TimelineBuilder[bool]
	FlipV    TimelineBuilder[bool]
	Alpha    TimelineBuilder[float64]
	Color    TimelineBuilder[LinearColor]
	User     TimelineBuilder[User]
	Instance TimelineBuilder[InstanceKey]
	Vertex   TimelineBuilder[VertexKey]
}

// Build sorts every attribute's keyframes and returns the part timeline.
func (b *PartTimelineBuilder) Build() PartTimeline {
	return PartTimeline{
		Hide:     b.Hide.Build(),
		Cell:     b.Cell.Build(),
		PosX:     b.PosX.Build(),
		PosY:     b.PosY.Build(),
		PosZ:     b.PosZ.Build(),
		ScaleX:   b.ScaleX.Build(),
		ScaleY:   b.ScaleY.Build(),
		Rotation: b.Rotation.Build(),
		FlipH:    b.FlipH.Build(),
		FlipV:    b.FlipV.Build(),
		Alpha:    b.Alpha.Build(),
		Color:    b.Color.Build(),
		User:     b.User.Build(),
		Instance: b.Instance.Build(),
		Vertex:   b.Vertex.Build(),
	}
}
