package pool

import (
	"github.com/google/uuid"

	"chosenoffset.com/driftfield/internal/core/geom"
)

// Releaser routes an item back to the pool that created it.
type Releaser[T any] interface {
	Release(item T)
}

// Item is the capability set a type needs to live in a Pool. Concrete types
// implement it directly, usually by embedding Entry and adding SetPosition and
// Release.
type Item[T any] interface {
	comparable

	// Init is called exactly once, when the pool creates the item.
	Init(owner Releaser[T], name string)
	// Release hands the item back to its owner.
	Release()

	Name() string
	SetPosition(p geom.Vec2)
	SetAttached(attached bool)
	SetEnabled(enabled bool)
}

// Entry carries the bookkeeping every pooled item needs. Embed it by value.
type Entry[T any] struct {
	id       uuid.UUID
	name     string
	owner    Releaser[T]
	attached bool
	enabled  bool
}

// Init records identity and the owning pool.
func (e *Entry[T]) Init(owner Releaser[T], name string) {
	e.id = uuid.New()
	e.name = name
	e.owner = owner
}

func (e *Entry[T]) ID() uuid.UUID {
	return e.id
}

func (e *Entry[T]) Name() string {
	return e.name
}

// Owner returns the pool that created the item, or nil for items built
// outside a pool.
func (e *Entry[T]) Owner() Releaser[T] {
	return e.owner
}

// SetAttached parks the item in (true) or detaches it from (false) the pool's
// holding area.
func (e *Entry[T]) SetAttached(attached bool) {
	e.attached = attached
}

func (e *Entry[T]) Attached() bool {
	return e.attached
}

// SetEnabled toggles whether the item takes part in per-tick updates.
func (e *Entry[T]) SetEnabled(enabled bool) {
	e.enabled = enabled
}

func (e *Entry[T]) Enabled() bool {
	return e.enabled
}
