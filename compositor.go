package spritestudio

import "sort"

// Node is the resolved state of one part at one frame.
type Node struct {
	PartID int
	Name   string
	Type   PartType
	// Local is the part's sampled local transform. For the top-level root
	// part it still carries the authored translation even though the
	// matrix excludes it (see RootMotion).
	Local  Transform
	Matrix Matrix
	Color  LinearColor
	Hidden bool
	FlipH  bool
	FlipV  bool
	Bounds BoundsShape

	User   *User
	Cell   *Cell
	Sheet  Sheet // nil when the cell's sheet is not loaded
	Vertex *VertexKey
}

// Z returns the node's world-space depth.
func (n *Node) Z() float64 {
	return n.Matrix.Tz
}

// Nodes is the resolved tree for one animation at one frame: a flat list of
// part nodes sorted by depth, and the sub-trees of inline instance parts.
type Nodes struct {
	File      FileID
	Ref       AnimationRef
	Frame     int
	HostPart  int // instance part this tree hangs off; NoParent at top level
	nodes     []Node
	byPart    []int
	Instances []*Nodes
}

// Nodes returns the part nodes in draw order (ascending world z). The
// returned slice MUST NOT be mutated.
func (ns *Nodes) Nodes() []Node {
	return ns.nodes
}

// Len returns the number of part nodes at this level.
func (ns *Nodes) Len() int {
	return len(ns.nodes)
}

// Node returns the node of the given part.
func (ns *Nodes) Node(partID int) (*Node, bool) {
	if partID < 0 || partID >= len(ns.byPart) {
		return nil, false
	}
	return &ns.nodes[ns.byPart[partID]], true
}

// minZ is the depth of the front-most-drawn (first) node.
func (ns *Nodes) minZ() float64 {
	if len(ns.nodes) == 0 {
		return 0
	}
	return ns.nodes[0].Z()
}

// Walk visits every node of the tree, this level first and then each
// instance sub-tree, depth first.
func (ns *Nodes) Walk(fn func(tree *Nodes, n *Node)) {
	for i := range ns.nodes {
		fn(ns, &ns.nodes[i])
	}
	for _, sub := range ns.Instances {
		sub.Walk(fn)
	}
}

// composeRequest carries the inputs shared by one compositing pass.
type composeRequest struct {
	file  FileID
	ref   AnimationRef
	pack  *Pack
	anim  *Animation
	frame int
	root  Root
	depth int
}

// Compose resolves every part of pack for anim at frame. It returns nil
// without error when frame is past the end of the clip. The only error is
// ErrUnsupportedInterpolation from a timeline.
func (s *Store) Compose(file FileID, ref AnimationRef, frame int, root Root) (*Nodes, error) {
	pack, anim, ok := s.Lookup(file, ref)
	if !ok {
		return nil, nil
	}
	return s.compose(composeRequest{file: file, ref: ref, pack: pack, anim: anim, frame: frame, root: root})
}

func (s *Store) compose(req composeRequest) (*Nodes, error) {
	anim := req.anim
	if req.frame < 0 || req.frame >= anim.TotalFrame() {
		return nil, nil
	}
	parts := req.pack.Parts()
	ns := &Nodes{
		File:     req.file,
		Ref:      req.ref,
		Frame:    req.frame,
		HostPart: NoParent,
		nodes:    make([]Node, 0, len(parts)),
		byPart:   make([]int, len(parts)),
	}

	for i := range parts {
		part := &parts[i]
		frame := req.frame

		parentMatrix, parentColor, parentHidden := req.root.Matrix, req.root.Color, false
		if part.HasParent() {
			p := &ns.nodes[part.Parent]
			parentMatrix, parentColor, parentHidden = p.Matrix, p.Color, p.Hidden
		}

		local, err := anim.LocalTransform(part.ID, frame)
		if err != nil {
			return nil, err
		}
		localMatrix := local
		if req.depth == 0 && part.ID == RootPartID {
			// root motion is applied to the entity, not the hierarchy
			localMatrix.X, localMatrix.Y = 0, 0
		}
		localColor, err := anim.LocalColor(part.ID, frame)
		if err != nil {
			return nil, err
		}

		n := Node{
			PartID: part.ID,
			Name:   part.Name,
			Type:   part.Type,
			Local:  local,
			Matrix: parentMatrix.Mul(localMatrix.Matrix()),
			Color:  parentColor.Mul(localColor),
			Hidden: parentHidden || anim.Hide(part.ID, frame),
			Bounds: part.Bounds,
		}
		n.FlipH, n.FlipV = anim.Flip(part.ID, frame)

		if u, ok := anim.User(part.ID, frame); ok {
			n.User = &u
		}
		if n.Vertex, err = anim.Vertex(part.ID, frame); err != nil {
			return nil, err
		}
		s.resolveSprite(req, &n)

		ns.byPart[part.ID] = len(ns.nodes)
		ns.nodes = append(ns.nodes, n)

		sub, err := s.composeInstance(req, part, &ns.nodes[len(ns.nodes)-1])
		if err != nil {
			return nil, err
		}
		if sub != nil {
			ns.Instances = append(ns.Instances, sub)
		}
	}

	ns.sortByDepth()
	return ns, nil
}

// resolveSprite fills the node's cell from the frame's cell keyframe, or the
// setup animation's frame 0, and looks up its sheet.
func (s *Store) resolveSprite(req composeRequest, n *Node) {
	cell, ok := req.anim.Cell(n.PartID, req.frame)
	if !ok {
		cell, ok = req.pack.setupCell(n.PartID)
	}
	if !ok {
		return
	}
	n.Cell = &cell
	sheet, ok := s.Sheet(req.file, cell.MapID)
	if !ok {
		debugf("sprite sheet %d of file %d not found (part %q)", cell.MapID, req.file, n.Name)
		return
	}
	if cell.CellID < 0 || cell.CellID >= sheet.CellCount() {
		debugf("cell %d out of range for sheet %d of file %d (part %q)", cell.CellID, cell.MapID, req.file, n.Name)
		return
	}
	n.Sheet = sheet
}

// composeInstance resolves the sub-tree of an inline instance part using
// the host node's composited matrix and color as its root.
func (s *Store) composeInstance(req composeRequest, part *PartInfo, host *Node) (*Nodes, error) {
	if part.Ref == nil {
		return nil, nil
	}
	key, keyFrame, ok := req.anim.Instance(part.ID, req.frame)
	if !ok || key.Independent {
		return nil, nil
	}
	if req.depth+1 > s.maxDepth() {
		debugf("instance depth %d exceeded at %s part %q", s.maxDepth(), req.ref, part.Name)
		return nil, nil
	}
	pack, anim, ok := s.Lookup(req.file, *part.Ref)
	if !ok {
		return nil, nil
	}
	frame, ok := InstanceFrame(keyFrame, req.frame, anim.TotalFrame(), key)
	if !ok {
		return nil, nil
	}
	sub, err := s.compose(composeRequest{
		file:  req.file,
		ref:   *part.Ref,
		pack:  pack,
		anim:  anim,
		frame: frame,
		root:  Root{Matrix: host.Matrix, Color: host.Color},
		depth: req.depth + 1,
	})
	if err != nil || sub == nil {
		return nil, err
	}
	sub.HostPart = part.ID
	return sub, nil
}

// sortByDepth orders nodes by ascending world z (stable, so declaration
// order breaks ties) and instance sub-trees by their first node's z.
func (ns *Nodes) sortByDepth() {
	sort.SliceStable(ns.nodes, func(i, j int) bool { return ns.nodes[i].Z() < ns.nodes[j].Z() })
	for i := range ns.nodes {
		ns.byPart[ns.nodes[i].PartID] = i
	}
	sort.SliceStable(ns.Instances, func(i, j int) bool { return ns.Instances[i].minZ() < ns.Instances[j].minZ() })
}
