package spritestudio

// RootMotion returns the change of the root part's local translation from
// prevFrame to curFrame. Without a previous frame the delta is measured
// from the origin.
func RootMotion(anim *Animation, prevFrame int, hasPrev bool, curFrame int) (dx, dy float64, err error) {
	cur, err := anim.LocalTransform(RootPartID, curFrame)
	if err != nil {
		return 0, 0, err
	}
	prev := IdentityTransform
	if hasPrev {
		if prev, err = anim.LocalTransform(RootPartID, prevFrame); err != nil {
			return 0, 0, err
		}
	}
	return cur.X - prev.X, cur.Y - prev.Y, nil
}
