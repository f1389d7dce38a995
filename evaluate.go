package spritestudio

// Evaluate composes the node tree of key at play time t (seconds). It
// returns nil without error when the key does not resolve or t is past the
// end of the clip.
func (s *Store) Evaluate(key PlayKey, t float64, root Root) (*Nodes, error) {
	ref, ok := key.Ref()
	if !ok {
		return nil, nil
	}
	pack, anim, ok := s.Lookup(key.File, ref)
	if !ok {
		return nil, nil
	}
	return s.compose(composeRequest{
		file:  key.File,
		ref:   ref,
		pack:  pack,
		anim:  anim,
		frame: anim.SecToFrame(t),
		root:  root,
	})
}

// EvaluateRange composes one tree per frame in [floor(start*fps),
// floor(end*fps)), clamped to the clip. Frames are returned in order.
func (s *Store) EvaluateRange(key PlayKey, start, end float64, root Root) ([]*Nodes, error) {
	ref, ok := key.Ref()
	if !ok {
		return nil, nil
	}
	pack, anim, ok := s.Lookup(key.File, ref)
	if !ok {
		return nil, nil
	}
	from, to := anim.SecToFrame(start), anim.SecToFrame(end)
	if to > anim.TotalFrame() {
		to = anim.TotalFrame()
	}
	var out []*Nodes
	for f := from; f < to; f++ {
		ns, err := s.compose(composeRequest{file: key.File, ref: ref, pack: pack, anim: anim, frame: f, root: root})
		if err != nil {
			return nil, err
		}
		out = append(out, ns)
	}
	return out, nil
}
