package graph

import "github.com/vecgraph/vecgraph/core"

// EdgeSet is the set of neighbors of a single node.
//
// It has plain set semantics: no duplicates, no ordering. The zero value
// (nil) is a valid empty set for reads; use NewEdgeSet or make before
// inserting.
type EdgeSet map[core.ElementID]struct{}

// NewEdgeSet builds an EdgeSet from the given ids.
func NewEdgeSet(ids ...core.ElementID) EdgeSet {
	s := make(EdgeSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is in the set.
func (s EdgeSet) Contains(id core.ElementID) bool {
	_, ok := s[id]
	return ok
}

// Insert adds id to the set.
func (s EdgeSet) Insert(id core.ElementID) {
	s[id] = struct{}{}
}

// Remove deletes id from the set. No-op if absent.
func (s EdgeSet) Remove(id core.ElementID) {
	delete(s, id)
}

// Len returns the number of neighbors.
func (s EdgeSet) Len() int {
	return len(s)
}

// Clone returns a deep copy of the set.
func (s EdgeSet) Clone() EdgeSet {
	c := make(EdgeSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Values returns the set members as a slice in unspecified order.
func (s EdgeSet) Values() []core.ElementID {
	out := make([]core.ElementID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}

// Equal reports whether both sets contain exactly the same members.
func (s EdgeSet) Equal(other EdgeSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if _, ok := other[id]; !ok {
			return false
		}
	}
	return true
}
