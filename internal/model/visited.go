package model

// VisitedSet records which blocks were already processed during one
// traversal phase. It carries no data beyond membership and is not safe for
// concurrent use.
type VisitedSet struct {
	ids map[BlockID]struct{}
}

// NewVisitedSet returns an empty set.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{ids: make(map[BlockID]struct{})}
}

// Has reports whether id was added.
func (s *VisitedSet) Has(id BlockID) bool {
	_, ok := s.ids[id]
	return ok
}

// Add records id. It returns false if id was already present.
func (s *VisitedSet) Add(id BlockID) bool {
	if s.Has(id) {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Len returns the number of recorded ids.
func (s *VisitedSet) Len() int {
	return len(s.ids)
}
