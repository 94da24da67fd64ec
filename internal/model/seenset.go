package model

import "sort"

// SeenSet is the set of posting IDs that have already been notified.
// Membership only ever grows; there is no Remove.
type SeenSet struct {
	ids map[string]struct{}
}

// NewSeenSet returns a set holding the given IDs. Duplicates collapse.
func NewSeenSet(ids ...string) SeenSet {
	s := SeenSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s SeenSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Add inserts id and reports whether the set grew.
func (s *SeenSet) Add(id string) bool {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Union adds every id and returns how many were not already present.
func (s *SeenSet) Union(ids ...string) int {
	added := 0
	for _, id := range ids {
		if s.Add(id) {
			added++
		}
	}
	return added
}

// Len returns the number of IDs in the set.
func (s SeenSet) Len() int {
	return len(s.ids)
}

// Slice returns the IDs in sorted order.
func (s SeenSet) Slice() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both sets hold exactly the same IDs.
func (s SeenSet) Equal(other SeenSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for id := range s.ids {
		if !other.Has(id) {
			return false
		}
	}
	return true
}
