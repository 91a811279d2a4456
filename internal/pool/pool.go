// Package pool provides a reusable-instance allocator for gameplay objects.
//
// A Pool hands out items with Acquire and takes them back with Release. Items
// are created on demand and never destroyed while the pool is alive, so steady
// state play does not allocate. Released items are reused most-recently-released
// first.
//
// Pools are not safe for concurrent use; they are driven from the simulation tick.
package pool

import (
	"fmt"

	"go.uber.org/zap"

	"chosenoffset.com/driftfield/internal/core/geom"
)

// Config describes how a pool builds and parks its items.
type Config[T any] struct {
	// New builds a fresh, uninitialized item. Required.
	New func() T
	// Origin is where released items are parked.
	Origin geom.Vec2
	// Capacity items are created up front into the released set.
	Capacity int
	// Name is used for the pool and as the prefix of item names.
	Name string
	// DisableOnRelease disables items while they sit in the pool.
	DisableOnRelease bool
	Logger           *zap.Logger
}

// Stats is a snapshot of pool occupancy.
type Stats struct {
	Name     string
	Created  int
	Acquired int
	Released int
}

// Pool owns every item it creates. Each item is either acquired (handed out)
// or released (available), never both.
type Pool[T Item[T]] struct {
	name             string
	origin           geom.Vec2
	newItem          func() T
	disableOnRelease bool

	items       []T
	acquired    []T
	acquiredIdx map[T]int
	released    []T

	base *zap.Logger
	log  *zap.Logger
}

// New creates a pool and pre-warms cfg.Capacity items. A missing factory or a
// negative capacity is a programming error and panics.
func New[T Item[T]](cfg Config[T]) *Pool[T] {
	if cfg.New == nil {
		panic("pool: Config.New is required")
	}
	if cfg.Capacity < 0 {
		panic(fmt.Sprintf("pool: negative capacity %d", cfg.Capacity))
	}

	name := cfg.Name
	if name == "" {
		var zero T
		name = fmt.Sprintf("%T", zero)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pool[T]{
		name:             name,
		origin:           cfg.Origin,
		newItem:          cfg.New,
		disableOnRelease: cfg.DisableOnRelease,
		items:            make([]T, 0, cfg.Capacity),
		acquired:         make([]T, 0, cfg.Capacity),
		acquiredIdx:      make(map[T]int, cfg.Capacity),
		released:         make([]T, 0, cfg.Capacity),
		base:             logger.Named("pool"),
	}
	p.log = p.base.With(zap.String("pool", name))

	for i := 0; i < cfg.Capacity; i++ {
		p.released = append(p.released, p.create())
	}

	return p
}

// SetName renames the pool. Existing items keep their names.
func (p *Pool[T]) SetName(name string) *Pool[T] {
	p.name = name
	p.log = p.base.With(zap.String("pool", name))
	return p
}

// SetDisableOnRelease toggles the disable-while-released policy for
// subsequent Acquire and Release calls.
func (p *Pool[T]) SetDisableOnRelease(disable bool) *Pool[T] {
	p.disableOnRelease = disable
	return p
}

// Acquire returns an available item, creating one if the pool is empty.
func (p *Pool[T]) Acquire() T {
	var item T
	if n := len(p.released); n > 0 {
		item = p.released[n-1]
		var zero T
		p.released[n-1] = zero
		p.released = p.released[:n-1]
	} else {
		item = p.create()
		p.log.Debug("pool grew", zap.Int("created", len(p.items)))
	}

	p.acquiredIdx[item] = len(p.acquired)
	p.acquired = append(p.acquired, item)

	item.SetAttached(false)
	if p.disableOnRelease {
		item.SetEnabled(true)
	}

	return item
}

// Release returns item to the pool. Releasing an item that is not currently
// acquired from this pool logs a warning and changes nothing.
func (p *Pool[T]) Release(item T) {
	idx, ok := p.acquiredIdx[item]
	if !ok {
		p.log.Warn("ignoring release of item not acquired from this pool",
			zap.String("item", p.itemName(item)))
		return
	}

	last := len(p.acquired) - 1
	if idx != last {
		moved := p.acquired[last]
		p.acquired[idx] = moved
		p.acquiredIdx[moved] = idx
	}
	var zero T
	p.acquired[last] = zero
	p.acquired = p.acquired[:last]
	delete(p.acquiredIdx, item)

	p.released = append(p.released, item)

	item.SetAttached(true)
	item.SetPosition(p.origin)
	if p.disableOnRelease {
		item.SetEnabled(false)
	}
}

// IsAcquired reports whether item is currently handed out by this pool.
func (p *Pool[T]) IsAcquired(item T) bool {
	_, ok := p.acquiredIdx[item]
	return ok
}

// AppendAcquired appends the acquired items to dst. The result is a snapshot,
// safe to iterate while releasing.
func (p *Pool[T]) AppendAcquired(dst []T) []T {
	return append(dst, p.acquired...)
}

// Len is the number of items ever created.
func (p *Pool[T]) Len() int {
	return len(p.items)
}

func (p *Pool[T]) NumAcquired() int {
	return len(p.acquired)
}

func (p *Pool[T]) NumReleased() int {
	return len(p.released)
}

func (p *Pool[T]) Name() string {
	return p.name
}

func (p *Pool[T]) Origin() geom.Vec2 {
	return p.origin
}

func (p *Pool[T]) Stats() Stats {
	return Stats{
		Name:     p.name,
		Created:  len(p.items),
		Acquired: len(p.acquired),
		Released: len(p.released),
	}
}

func (p *Pool[T]) create() T {
	item := p.newItem()
	item.Init(p, fmt.Sprintf("%s %d", p.name, len(p.items)))
	item.SetAttached(true)
	item.SetPosition(p.origin)
	item.SetEnabled(!p.disableOnRelease)
	p.items = append(p.items, item)
	return item
}

func (p *Pool[T]) itemName(item T) string {
	var zero T
	if item == zero {
		return "<nil>"
	}
	return item.Name()
}
