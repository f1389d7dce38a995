package spritestudio

import "github.com/kamstrup/intmap"

// Sheet is a sprite sheet handle owned by the render side. The core only
// needs to know how many cells it holds.
type Sheet interface {
	CellCount() int
}

// DefaultMaxInstanceDepth bounds instance recursion.
const DefaultMaxInstanceDepth = 8

type storeEntry struct {
	data   *Data
	sheets []Sheet
}

// Store is the asset table mapping file ids to animation data and sprite
// sheets. It is filled by a loader and then only read while evaluating;
// a Store that is no longer written is safe for concurrent evaluation.
type Store struct {
	files *intmap.Map[FileID, *storeEntry]

	// MaxInstanceDepth bounds nested instance resolution. Zero means
	// DefaultMaxInstanceDepth.
	MaxInstanceDepth int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{files: intmap.New[FileID, *storeEntry](16)}
}

func (s *Store) entry(id FileID) *storeEntry {
	e, ok := s.files.Get(id)
	if !ok {
		e = &storeEntry{}
		s.files.Put(id, e)
	}
	return e
}

// AddData registers the animation data of a file, replacing any previous.
func (s *Store) AddData(id FileID, data *Data) {
	s.entry(id).data = data
}

// AddSheets appends sprite sheets to a file. Sheets are indexed by their
// map id in insertion order.
func (s *Store) AddSheets(id FileID, sheets ...Sheet) {
	e := s.entry(id)
	e.sheets = append(e.sheets, sheets...)
}

// Data returns a file's animation data.
func (s *Store) Data(id FileID) (*Data, bool) {
	e, ok := s.files.Get(id)
	if !ok || e.data == nil {
		return nil, false
	}
	return e.data, true
}

// Sheet returns the sprite sheet with the given map id of a file.
func (s *Store) Sheet(id FileID, mapID int) (Sheet, bool) {
	e, ok := s.files.Get(id)
	if !ok || mapID < 0 || mapID >= len(e.sheets) {
		return nil, false
	}
	return e.sheets[mapID], true
}

// Lookup resolves the pack and animation a key points at. Missing pieces
// are logged and reported as not found.
func (s *Store) Lookup(file FileID, ref AnimationRef) (*Pack, *Animation, bool) {
	data, ok := s.Data(file)
	if !ok {
		debugf("file %d not found", file)
		return nil, nil, false
	}
	pack, anim, ok := data.Lookup(ref)
	if !ok {
		debugf("animation %s not found in file %d", ref, file)
		return nil, nil, false
	}
	return pack, anim, true
}

// Unload drops a file's data and sheets. Entities still holding keys into
// the file simply stop resolving.
func (s *Store) Unload(id FileID) bool {
	if _, ok := s.files.Get(id); !ok {
		return false
	}
	s.files.Del(id)
	debugf("unloaded file %d", id)
	return true
}

// Len returns the number of registered files.
func (s *Store) Len() int {
	return s.files.Len()
}

func (s *Store) maxDepth() int {
	if s.MaxInstanceDepth > 0 {
		return s.MaxInstanceDepth
	}
	return DefaultMaxInstanceDepth
}
