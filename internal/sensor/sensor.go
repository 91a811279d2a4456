// Package sensor reports when moving bodies start overlapping fixed sensor
// regions. It plays the part of an engine's trigger-enter callbacks: a pair is
// reported once, on the pass where it begins to overlap, and again only after
// it has separated.
package sensor

import "chosenoffset.com/driftfield/internal/core/geom"

// Collider pairs a key with its current box.
type Collider[K comparable] struct {
	Key K
	Box geom.Rect
}

// Contact is a mover that started overlapping a sensor on this pass.
type Contact[A, B comparable] struct {
	Mover  A
	Sensor B
}

type pair[A, B comparable] struct {
	mover  A
	sensor B
}

// Detector tracks which pairs overlapped on the previous pass.
type Detector[A, B comparable] struct {
	inside   map[pair[A, B]]struct{}
	next     map[pair[A, B]]struct{}
	contacts []Contact[A, B]
}

func NewDetector[A, B comparable]() *Detector[A, B] {
	return &Detector[A, B]{
		inside: make(map[pair[A, B]]struct{}),
		next:   make(map[pair[A, B]]struct{}),
	}
}

// Enter runs one pass and returns the pairs that began overlapping, ordered by
// mover then sensor. The returned slice is reused by the next call.
func (d *Detector[A, B]) Enter(movers []Collider[A], sensors []Collider[B]) []Contact[A, B] {
	clear(d.next)
	d.contacts = d.contacts[:0]

	for _, m := range movers {
		for _, s := range sensors {
			if !m.Box.Overlaps(s.Box) {
				continue
			}
			k := pair[A, B]{mover: m.Key, sensor: s.Key}
			d.next[k] = struct{}{}
			if _, was := d.inside[k]; !was {
				d.contacts = append(d.contacts, Contact[A, B]{Mover: m.Key, Sensor: s.Key})
			}
		}
	}

	d.inside, d.next = d.next, d.inside
	return d.contacts
}

// Inside reports whether the pair overlapped on the last pass.
func (d *Detector[A, B]) Inside(mover A, sensor B) bool {
	_, ok := d.inside[pair[A, B]{mover: mover, sensor: sensor}]
	return ok
}

// Forget drops every tracked overlap of mover, so its next overlap is reported
// as an entry. Call it when a mover key is recycled.
func (d *Detector[A, B]) Forget(mover A) {
	for k := range d.inside {
		if k.mover == mover {
			delete(d.inside, k)
		}
	}
}

// Reset forgets all tracked overlaps.
func (d *Detector[A, B]) Reset() {
	clear(d.inside)
	clear(d.next)
	d.contacts = d.contacts[:0]
}
