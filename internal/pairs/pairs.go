// Package pairs holds the ordered, editable list of control point pairs the
// user is building, along with which pair is currently selected.
package pairs

import (
	"fmt"

	"trailmapper/internal/geom"
)

// Set is not safe for concurrent use; the UI update loop owns it.
type Set struct {
	pairs    []geom.PointPair
	selected int
}

// New returns a set holding one empty pair, #1, selected.
func New() *Set {
	return &Set{pairs: []geom.PointPair{{ID: 1}}, selected: 1}
}

// Len returns the number of pairs.
func (s *Set) Len() int { return len(s.pairs) }

// Pairs returns a snapshot; later edits to the set do not show through.
func (s *Set) Pairs() []geom.PointPair {
	out := make([]geom.PointPair, len(s.pairs))
	for i, p := range s.pairs {
		out[i] = geom.PointPair{ID: p.ID}
		if p.Source != nil {
			src := *p.Source
			out[i].Source = &src
		}
		if p.Target != nil {
			tgt := *p.Target
			out[i].Target = &tgt
		}
	}
	return out
}

// SelectedID returns the id of the selected pair.
func (s *Set) SelectedID() int { return s.selected }

// Selected returns the selected pair.
func (s *Set) Selected() (geom.PointPair, bool) {
	i := s.index(s.selected)
	if i < 0 {
		return geom.PointPair{}, false
	}
	return s.pairs[i], true
}

// Counts returns the total and complete pair counts.
func (s *Set) Counts() (total, complete int) {
	for _, p := range s.pairs {
		if p.Complete() {
			complete++
		}
	}
	return len(s.pairs), complete
}

// Add appends an empty pair with the next free id and selects it.
func (s *Set) Add() int {
	id := 1
	for _, p := range s.pairs {
		if p.ID >= id {
			id = p.ID + 1
		}
	}
	s.pairs = append(s.pairs, geom.PointPair{ID: id})
	s.selected = id
	return id
}

// Select makes id the selected pair.
func (s *Set) Select(id int) error {
	if s.index(id) < 0 {
		return fmt.Errorf("pairs: no pair #%d", id)
	}
	s.selected = id
	return nil
}

// SelectNext moves the selection by delta positions, wrapping around.
func (s *Set) SelectNext(delta int) int {
	if len(s.pairs) == 0 {
		return 0
	}
	i := s.index(s.selected)
	if i < 0 {
		i = 0
	}
	n := len(s.pairs)
	i = ((i+delta)%n + n) % n
	s.selected = s.pairs[i].ID
	return s.selected
}

// SetSource records the image point on the selected pair.
func (s *Set) SetSource(p geom.ImagePoint) error {
	i := s.index(s.selected)
	if i < 0 {
		return fmt.Errorf("pairs: no pair selected")
	}
	s.pairs[i].Source = &p
	return nil
}

// SetTarget records the map point on the selected pair.
func (s *Set) SetTarget(g geom.GeoPoint) error {
	i := s.index(s.selected)
	if i < 0 {
		return fmt.Errorf("pairs: no pair selected")
	}
	s.pairs[i].Target = &g
	return nil
}

// ClearSelected removes both points from the selected pair but keeps its id.
func (s *Set) ClearSelected() {
	if i := s.index(s.selected); i >= 0 {
		s.pairs[i].Source = nil
		s.pairs[i].Target = nil
	}
}

// Replace swaps in an imported list and selects its first pair. An empty list
// resets the set to a single empty pair.
func (s *Set) Replace(pairs []geom.PointPair) {
	if len(pairs) == 0 {
		*s = *New()
		return
	}
	s.pairs = append([]geom.PointPair(nil), pairs...)
	s.selected = s.pairs[0].ID
}

// AssignTargets fills targets in pair order, starting at the first pair without
// a target, and appends new pairs once the existing ones run out.
// It returns how many targets were placed.
func (s *Set) AssignTargets(targets []geom.GeoPoint) int {
	n := 0
	for i := range s.pairs {
		if n == len(targets) {
			return n
		}
		if s.pairs[i].Target != nil {
			continue
		}
		g := targets[n]
		s.pairs[i].Target = &g
		n++
	}
	for ; n < len(targets); n++ {
		s.Add()
		g := targets[n]
		s.pairs[len(s.pairs)-1].Target = &g
	}
	return n
}

func (s *Set) index(id int) int {
	for i, p := range s.pairs {
		if p.ID == id {
			return i
		}
	}
	return -1
}
